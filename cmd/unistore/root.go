// File: cmd/unistore/root.go
package main

import (
	"context"
	"fmt"
	"io"

	"unistore/internal/config"
	"unistore/internal/flags"
	"unistore/internal/logger"
	"unistore/internal/ui/prompt"

	"github.com/spf13/cobra"
)

type rootFlags struct {
	debug       bool
	configPath  string
	metricsFile string
}

// Holds what outlives a single command run: the parsed global flags and the built app
type cli struct {
	flags rootFlags
	app   *appContainer
}

func (c *cli) newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "unistore",
		Short: "Unistore moves files to and from cloud object storage.",
		Long: `A unified CLI to upload, download, delete and pre-sign objects on AWS S3,
Google Cloud Storage, Azure Blob Storage and Cloudflare R2. Configure your
providers once and use the same commands against any of them.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := config.LoadDotEnv(); err != nil {
				return err
			}

			log := logger.NewLogger(c.flags.debug)
			prompter := prompt.NewStandardPrompter(cmd.InOrStdin(), cmd.OutOrStdout())

			app, err := newApp(c.flags.configPath, prompter, log)
			if err != nil {
				return fmt.Errorf("failed to initialize application: %w", err)
			}
			c.app = app
			cmd.SetContext(contextWithApp(cmd.Context(), app))
			return nil
		},
	}

	rootCmd.PersistentFlags().BoolVarP(&c.flags.debug, flags.Debug, flags.DebugShort, false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVar(&c.flags.configPath, flags.Config, "", "Path to the config file (default ~/.config/unistore/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&c.flags.metricsFile, flags.MetricsFile, "", "Write Prometheus metrics to this file when the command exits")

	rootCmd.AddCommand(newConfigCmd(), newObjectCmd(), newProvidersCmd())
	return rootCmd
}

// Runs the command line and returns the process exit code. Metrics are written even when the
// command fails so that failed operations are recorded.
func Execute(ctx context.Context, args []string) int {
	return execute(ctx, args, nil, nil, nil)
}

func execute(ctx context.Context, args []string, in io.Reader, out, errOut io.Writer) int {
	c := &cli{}
	rootCmd := c.newRootCmd()
	rootCmd.SetArgs(args)
	if in != nil {
		rootCmd.SetIn(in)
	}
	if out != nil {
		rootCmd.SetOut(out)
	}
	if errOut != nil {
		rootCmd.SetErr(errOut)
	}

	runErr := rootCmd.ExecuteContext(ctx)

	if c.flags.metricsFile != "" && c.app != nil {
		if err := c.app.Metrics.WriteTextFile(c.flags.metricsFile); err != nil {
			rootCmd.PrintErrln("Error:", err)
			return 1
		}
	}

	if runErr != nil {
		rootCmd.PrintErrln("Error:", runErr)
		return 1
	}
	return 0
}
