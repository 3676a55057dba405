// Package commands implements the CLI commands for the lunaria tracker.
package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.trai.ch/lunaria/internal/app"
	"go.trai.ch/lunaria/internal/build"
	"go.trai.ch/lunaria/internal/core/domain"
)

// Application represents the application logic interface.
type Application interface {
	Run(ctx context.Context, opts app.RunOptions) ([]domain.ResolutionResult, error)
	CleanCache(ctx context.Context, workDir, configPath string) error
}

// LogSwitcher is implemented by loggers whose format and verbosity can change at runtime.
type LogSwitcher interface {
	SetJSON(enable bool)
	SetVerbose(enable bool)
}

// ProgressSwitcher is implemented by telemetry that can render per-file progress.
type ProgressSwitcher interface {
	SetProgressOutput(w io.Writer)
}

// CLI represents the command line interface for lunaria.
type CLI struct {
	app      Application
	logs     LogSwitcher
	progress ProgressSwitcher
	rootCmd  *cobra.Command
}

// New creates a new CLI instance with the given app.
// logs and progress may be nil when the logger or telemetry cannot be reconfigured.
func New(a Application, logs LogSwitcher, progress ProgressSwitcher) *CLI {
	rootCmd := &cobra.Command{
		Use:           "lunaria",
		Short:         "Track localization freshness from git history",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       build.Version,
	}

	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"{{.Name}} version {{.Version}} (commit: %s, date: %s)\n",
		build.Commit,
		build.Date,
	))

	rootCmd.PersistentFlags().StringP("config", "c", "", "Path to configuration file (default: discovered lunaria.yml)")
	rootCmd.PersistentFlags().Bool("json-logs", false, "Write logs as JSON")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable debug logging")

	c := &CLI{
		app:      a,
		logs:     logs,
		progress: progress,
		rootCmd:  rootCmd,
	}

	rootCmd.PersistentPreRunE = c.configureLogging

	rootCmd.AddCommand(c.newTrackCmd())
	rootCmd.AddCommand(c.newCacheCmd())
	rootCmd.AddCommand(c.newVersionCmd())

	return c
}

func (c *CLI) configureLogging(cmd *cobra.Command, _ []string) error {
	if c.logs == nil {
		return nil
	}

	jsonLogs, err := cmd.Flags().GetBool("json-logs")
	if err != nil {
		return err
	}
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		return err
	}

	c.logs.SetJSON(jsonLogs)
	c.logs.SetVerbose(verbose)
	return nil
}

// Execute runs the root command with the given context.
func (c *CLI) Execute(ctx context.Context) error {
	c.rootCmd.SetContext(ctx)
	return c.rootCmd.Execute()
}

// SetArgs sets the arguments for the root command. Used for testing.
func (c *CLI) SetArgs(args []string) {
	c.rootCmd.SetArgs(args)
}

// SetOutput sets the output and error streams for the root command. Used for testing.
func (c *CLI) SetOutput(out, err io.Writer) {
	c.rootCmd.SetOut(out)
	c.rootCmd.SetErr(err)
}

func configPath(cmd *cobra.Command) (string, error) {
	return cmd.Flags().GetString("config")
}
