package cli

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	imgutil "github.com/haneulpalette/haneul/internal/image"
	"github.com/haneulpalette/haneul/internal/pipeline"
	"github.com/haneulpalette/haneul/internal/server"
)

const defaultListen = ":7860"

func newServeCmd() *cobra.Command {
	var (
		listen     string
		canvasSize int
		maxBody    int64
	)
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the analysis over HTTP",
		Long: `Start the HTTP backend.

  GET  /         status probe
  POST /analyze  multipart field "file", or JSON {"image": "<base64>"}

The listen address defaults to $HANEUL_LISTEN, then :7860.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			logger := newLogger(cmd)

			if !cmd.Flags().Changed("listen") {
				listen = envString(envListen, defaultListen)
			}
			size, err := envInt(envCanvasSize, canvasSize)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("canvas-size") {
				size = canvasSize
			}

			cfg := pipeline.DefaultConfig()
			cfg.CanvasSize = size
			p, err := pipeline.New(cfg, nil)
			if err != nil {
				return err
			}
			srv, err := server.New(server.Config{
				Addr:         listen,
				Processor:    p,
				Logger:       logger,
				MaxBodyBytes: maxBody,
			})
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return srv.ListenAndServe(ctx)
		},
	}

	cmd.Flags().StringVarP(&listen, "listen", "l", defaultListen, "listen address")
	cmd.Flags().IntVar(&canvasSize, "canvas-size", imgutil.DefaultCanvasSize, "side of the square analysis canvas in pixels")
	cmd.Flags().Int64Var(&maxBody, "max-body", server.DefaultMaxBodyBytes, "largest accepted request body in bytes")
	return cmd
}
