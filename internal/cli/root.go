// Package cli provides the command-line interface for Haneul.
package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	"github.com/haneulpalette/haneul/internal/version"
)

// Environment overrides. Flags set explicitly win over these.
const (
	envCanvasSize = "HANEUL_CANVAS_SIZE"
	envGridStride = "HANEUL_GRID_STRIDE"
	envListen     = "HANEUL_LISTEN"
)

// NewRootCmd builds the command tree. Each call returns a fresh tree so
// tests can execute commands in isolation.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "haneul",
		Short: "Personal colour analysis from a portrait",
		Long: `Haneul estimates skin undertone, depth and brightness from a front-facing
portrait, guesses the face shape, and suggests a matching colour palette,
makeup and outfit colours.

Run "haneul analyze" on an image, a directory of images or a URL, or
"haneul serve" to expose the same analysis over HTTP.`,
		Version:      version.Version,
		SilenceUsage: true,
	}

	root.PersistentFlags().BoolP("verbose", "v", false, "enable debug logging")
	root.PersistentFlags().BoolP("quiet", "q", false, "only log errors")
	root.SetVersionTemplate(version.String() + "\n")

	root.AddCommand(
		newAnalyzeCmd(),
		newPaletteCmd(),
		newServeCmd(),
		newVersionCmd(),
	)
	return root
}

// newLogger returns the command logger. --quiet wins over --verbose.
func newLogger(cmd *cobra.Command) hclog.Logger {
	level := hclog.Info
	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		level = hclog.Debug
	}
	if quiet, _ := cmd.Flags().GetBool("quiet"); quiet {
		level = hclog.Error
	}
	return hclog.New(&hclog.LoggerOptions{
		Name:   "haneul",
		Output: cmd.ErrOrStderr(),
		Level:  level,
	})
}

// envInt returns the integer in env var name, or def when unset.
func envInt(name string, def int) (int, error) {
	raw, ok := os.LookupEnv(name)
	if !ok || raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", name, err)
	}
	return v, nil
}

// envString returns env var name, or def when unset.
func envString(name, def string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return def
}

func newVersionCmd() *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			if !asJSON {
				fmt.Fprintln(out, version.String())
				return nil
			}
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(version.Get())
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print as JSON")
	return cmd
}
