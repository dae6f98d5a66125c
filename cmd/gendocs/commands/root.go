// Package commands implements the CLI commands for gendocs.
package commands

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.trai.ch/gendocs/internal/build"
	"go.trai.ch/gendocs/internal/core/domain"
	"go.trai.ch/zerr"
)

// EnvPrefix prefixes the environment variables bound to global flags.
const EnvPrefix = "GENDOCS"

const (
	flagConfig    = "config"
	flagLogFormat = "log-format"
	flagProgress  = "progress"

	logFormatPretty = "pretty"
	logFormatJSON   = "json"
)

// Application represents the application logic interface.
type Application interface {
	Generate(ctx context.Context, configPath string) error
	Check(ctx context.Context, configPath string) error
	Watch(ctx context.Context, configPath string) error
	Clean(ctx context.Context, configPath string) error
}

// LogConfigurer switches the log output format.
type LogConfigurer interface {
	SetJSON(enabled bool)
}

// ProgressReporter prints finished units of work while a command runs.
type ProgressReporter interface {
	ShowProgress(w io.Writer)
}

// CLI represents the command line interface for gendocs.
type CLI struct {
	app      Application
	logs     LogConfigurer
	progress ProgressReporter
	env      *viper.Viper
	rootCmd *cobra.Command
}

// New creates a new CLI instance with the given app.
func New(a Application, logs LogConfigurer, progress ProgressReporter) *CLI {
	rootCmd := &cobra.Command{
		Use:           "gendocs",
		Short:         "Generate Markdown documentation from source docstrings",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       build.Version,
		Args:          cobra.NoArgs,
	}

	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"{{.Name}} version {{.Version}} (commit: %s, date: %s)\n",
		build.Commit,
		build.Date,
	))
	rootCmd.InitDefaultVersionFlag()
	rootCmd.Flags().Lookup("version").Usage = "Print the application version"

	rootCmd.InitDefaultHelpFlag()
	rootCmd.Flags().Lookup("help").Usage = "Show help for command"

	rootCmd.PersistentFlags().StringP(flagConfig, "c", domain.DefaultConfigFile, "Path to the manifest")
	rootCmd.PersistentFlags().String(flagLogFormat, logFormatPretty, "Log format: pretty or json")
	rootCmd.PersistentFlags().Bool(flagProgress, false, "Print each page and file as it is finished")

	env := viper.New()
	env.SetEnvPrefix(EnvPrefix)
	env.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	env.AutomaticEnv()
	_ = env.BindPFlag(flagConfig, rootCmd.PersistentFlags().Lookup(flagConfig))
	_ = env.BindPFlag(flagLogFormat, rootCmd.PersistentFlags().Lookup(flagLogFormat))
	_ = env.BindPFlag(flagProgress, rootCmd.PersistentFlags().Lookup(flagProgress))

	c := &CLI{
		app:      a,
		logs:     logs,
		progress: progress,
		env:      env,
		rootCmd:  rootCmd,
	}

	rootCmd.PersistentPreRunE = c.configureOutput
	rootCmd.RunE = c.runGenerate

	rootCmd.AddCommand(c.newGenerateCmd())
	rootCmd.AddCommand(c.newCheckCmd())
	rootCmd.AddCommand(c.newWatchCmd())
	rootCmd.AddCommand(c.newCleanCmd())
	rootCmd.AddCommand(c.newVersionCmd())

	return c
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

// configPath returns the manifest path from the flag or GENDOCS_CONFIG.
func (c *CLI) configPath() string {
	return c.env.GetString(flagConfig)
}

func (c *CLI) configureOutput(cmd *cobra.Command, _ []string) error {
	if err := c.configureLogs(); err != nil {
		return err
	}
	if c.env.GetBool(flagProgress) {
		c.progress.ShowProgress(cmd.ErrOrStderr())
	} else {
		c.progress.ShowProgress(nil)
	}
	return nil
}

func (c *CLI) configureLogs() error {
	switch format := c.env.GetString(flagLogFormat); format {
	case logFormatPretty:
		c.logs.SetJSON(false)
	case logFormatJSON:
		c.logs.SetJSON(true)
	default:
		return zerr.With(zerr.New("unknown log format "+format), "allowed", logFormatPretty+", "+logFormatJSON)
	}
	return nil
}
