package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/hashicorp/go-hclog"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/haneulpalette/haneul/internal/batch"
	"github.com/haneulpalette/haneul/internal/compression"
	imgutil "github.com/haneulpalette/haneul/internal/image"
	"github.com/haneulpalette/haneul/internal/pipeline"
	"github.com/haneulpalette/haneul/internal/recommend"
	httputil "github.com/haneulpalette/haneul/internal/util/http"
	"github.com/haneulpalette/haneul/internal/util/imagecache"
)

type analyzeOptions struct {
	format     string
	output     string
	preview    bool
	workers    int
	canvasSize int
	stride     int
	cache      bool
	cacheDir   string
}

func newAnalyzeCmd() *cobra.Command {
	opts := &analyzeOptions{}
	cmd := &cobra.Command{
		Use:   "analyze <image|directory|archive|url>",
		Short: "Analyse a portrait and recommend colours",
		Long: `Analyse a front-facing portrait. The image is letterboxed onto a square
canvas, the cheek and neck are sampled to classify undertone, depth and
brightness, and the skin silhouette gives a coarse face shape.

Supported image formats: JPEG, PNG, GIF, WebP

Examples:
  # Analyse a single portrait
  haneul analyze selfie.jpg

  # Emit the full report as JSON
  haneul analyze --format json selfie.jpg

  # Analyse every image in a directory with 8 workers
  haneul analyze --workers 8 ./photos

  # Analyse the images inside an archive (zip, tar, tar.gz, tar.xz, tar.bz2)
  haneul analyze portraits.tar.xz

  # Fetch and analyse a remote image
  haneul analyze https://example.com/portrait.png`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnalyze(cmd, args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.format, "format", "f", formatText, "output format (text, json)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default: stdout)")
	cmd.Flags().BoolVar(&opts.preview, "preview", false, "show colour swatches (default: on when stdout is a terminal)")
	cmd.Flags().IntVarP(&opts.workers, "workers", "w", 0, "concurrent analyses for directories (default: number of CPUs)")
	cmd.Flags().IntVar(&opts.canvasSize, "canvas-size", imgutil.DefaultCanvasSize, "side of the square analysis canvas in pixels")
	cmd.Flags().IntVar(&opts.stride, "stride", 4, "face-shape grid stride in pixels")
	cmd.Flags().BoolVar(&opts.cache, "cache", false, "keep downloaded images in the user cache directory")
	cmd.Flags().StringVar(&opts.cacheDir, "cache-dir", "", "cache directory for downloaded images (implies --cache)")
	return cmd
}

// pipelineConfig merges environment overrides under explicitly set flags.
func (o *analyzeOptions) pipelineConfig(cmd *cobra.Command) (pipeline.Config, error) {
	cfg := pipeline.DefaultConfig()

	size, err := envInt(envCanvasSize, o.canvasSize)
	if err != nil {
		return cfg, err
	}
	if cmd.Flags().Changed("canvas-size") {
		size = o.canvasSize
	}
	stride, err := envInt(envGridStride, o.stride)
	if err != nil {
		return cfg, err
	}
	if cmd.Flags().Changed("stride") {
		stride = o.stride
	}

	cfg.CanvasSize = size
	cfg.Analysis.GridStride = stride
	return cfg, nil
}

func runAnalyze(cmd *cobra.Command, target string, opts *analyzeOptions) error {
	logger := newLogger(cmd)

	if err := validFormat(opts.format); err != nil {
		return err
	}
	archive := compression.IsArchive(target) && !imgutil.IsURL(target)
	if !archive {
		if err := imgutil.ValidateImagePath(target); err != nil {
			return fmt.Errorf("invalid image path: %w", err)
		}
	}

	cfg, err := opts.pipelineConfig(cmd)
	if err != nil {
		return err
	}
	loader := imgutil.NewSmartLoader(httputil.FetchOptions{})
	if opts.cache || opts.cacheDir != "" {
		cache, err := imagecache.New(opts.cacheDir, httputil.FetchOptions{})
		if err != nil {
			return err
		}
		logger.Debug("caching downloads", "dir", cache.Dir())
		loader.WithCache(cache)
	}
	p, err := pipeline.New(cfg, loader)
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	preview := opts.preview
	if !cmd.Flags().Changed("preview") {
		preview = opts.output == "" && writesToTerminal(cmd.OutOrStdout())
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	var out string
	if info, statErr := os.Stat(target); statErr == nil && info.IsDir() {
		out, err = analyzeDirectory(ctx, cmd.ErrOrStderr(), logger, p, target, opts, preview)
	} else if archive {
		out, err = analyzeArchive(ctx, cmd.ErrOrStderr(), logger, p, target, opts, preview)
	} else {
		out, err = analyzeOne(ctx, logger, p, target, opts.format, preview)
	}
	if err != nil {
		return err
	}

	if opts.output == "" {
		_, err = io.WriteString(cmd.OutOrStdout(), out)
		return err
	}
	if err := os.WriteFile(opts.output, []byte(out), 0o644); err != nil { // #nosec G306 - report is not sensitive
		return fmt.Errorf("failed to write output file: %w", err)
	}
	logger.Info("wrote report", "path", opts.output)
	return nil
}

func analyzeOne(ctx context.Context, logger hclog.Logger, p *pipeline.Pipeline, target, format string, preview bool) (string, error) {
	logger.Debug("analysing image", "path", target, "canvas", p.CanvasSize())
	rep, err := p.Load(ctx, target)
	if err != nil {
		return "", fmt.Errorf("failed to analyse %s: %w", target, err)
	}
	logger.Debug("analysis complete",
		"undertone", rep.Undertone.String(),
		"depth", rep.Depth.String(),
		"brightness", rep.Brightness.String(),
		"face_shape", rep.FaceShape.Name())
	return formatReport(rep, format, preview)
}

func analyzeDirectory(ctx context.Context, progress io.Writer, logger hclog.Logger, p *pipeline.Pipeline, dir string, opts *analyzeOptions, preview bool) (string, error) {
	paths, err := imgutil.ScanDirectoryForImages(dir)
	if err != nil {
		return "", err
	}
	logger.Debug("analysing directory", "path", dir, "images", len(paths), "workers", opts.workers)
	return runBatch(ctx, progress, logger, paths, opts, preview, p.Load)
}

func analyzeArchive(ctx context.Context, progress io.Writer, logger hclog.Logger, p *pipeline.Pipeline, archive string, opts *analyzeOptions, preview bool) (string, error) {
	entries, err := compression.ReadFile(archive, compression.Options{Match: imgutil.HasImageExtension})
	if err != nil {
		return "", err
	}
	if len(entries) == 0 {
		return "", fmt.Errorf("no supported image files found in archive: %s", archive)
	}
	logger.Debug("analysing archive", "path", archive, "images", len(entries), "workers", opts.workers)

	names := make([]string, len(entries))
	data := make(map[string][]byte, len(entries))
	for i, e := range entries {
		names[i] = e.Name
		data[e.Name] = e.Data
	}
	return runBatch(ctx, progress, logger, names, opts, preview, func(_ context.Context, name string) (recommend.Report, error) {
		img, err := imgutil.DecodeBytes(data[name])
		if err != nil {
			return recommend.Report{}, err
		}
		return p.Process(img)
	})
}

// runBatch analyses every input with a progress bar on the progress writer.
func runBatch(ctx context.Context, progress io.Writer, logger hclog.Logger, inputs []string, opts *analyzeOptions, preview bool,
	fn func(context.Context, string) (recommend.Report, error)) (string, error) {
	bar := progressbar.NewOptions(len(inputs),
		progressbar.OptionSetDescription("Analysing"),
		progressbar.OptionSetWriter(progress),
		progressbar.OptionShowCount(),
		progressbar.OptionClearOnFinish(),
		progressbar.OptionSetVisibility(logger.IsInfo() && writesToTerminal(progress)),
	)

	items := batch.Run(ctx, inputs, batch.Options{
		Workers: opts.workers,
		OnDone: func(input string, err error) {
			if err != nil {
				logger.Warn("image failed", "input", input, "error", err)
			}
			_ = bar.Add(1)
		},
	}, fn)
	_ = bar.Finish()

	if failed := batch.Failed(items); failed == len(items) {
		return "", fmt.Errorf("all %d images failed, first error: %w", failed, items[0].Err)
	}
	return formatBatch(items, opts.format, preview)
}

// writesToTerminal reports whether w is a file attached to a terminal.
func writesToTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd())) // #nosec G115 - file descriptors fit in int
}
