package cmd

import (
	"errors"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/lyraproj/osgi-index/internal/logger"
)

const (
	// LogLevelFlag selects the log level, one of debug, info, warn, error.
	LogLevelFlag = "log-level"
	// LogPrettyFlag enables human readable console logs instead of JSON.
	LogPrettyFlag = "log-pretty"
	// EnvFileFlag names a dotenv file that is loaded before flags are evaluated.
	EnvFileFlag = "env-file"

	// LogLevelEnv is consulted when the log level flag is not set.
	LogLevelEnv    = "OSGI_INDEX_LOG_LEVEL"
	defaultEnvFile = ".env"
)

// Execute runs the root command. It is called by main.main().
func Execute() {
	if err := New().Execute(); err != nil {
		os.Exit(1)
	}
}

func New() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "osgi-index [sub-command]",
		Short: "Build OSGi repository indexes from bundles",
		Long: `osgi-index analyzes OSGi bundles and writes an OSGi Repository XML index
describing their capabilities and requirements.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
		PersistentPreRunE: loadEnv,
		DisableAutoGenTag: true,
		SilenceUsage:      true,
	}

	cmd.PersistentFlags().String(LogLevelFlag, "info", "log level (debug, info, warn, error)")
	cmd.PersistentFlags().Bool(LogPrettyFlag, false, "human readable log output")
	cmd.PersistentFlags().String(EnvFileFlag, "", "dotenv file to load (defaults to .env when present)")

	cmd.AddCommand(newIndexCommand())
	cmd.AddCommand(newRangeCommand())
	return cmd
}

func loadEnv(cmd *cobra.Command, _ []string) error {
	file, err := cmd.Flags().GetString(EnvFileFlag)
	if err != nil {
		return err
	}
	if file != "" {
		return godotenv.Load(file)
	}
	if err := godotenv.Load(defaultEnvFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

// newLogger creates the logger configured by the persistent flags, writing to stderr.
func newLogger(cmd *cobra.Command) (*logger.Logger, error) {
	level, err := cmd.Flags().GetString(LogLevelFlag)
	if err != nil {
		return nil, err
	}
	if !cmd.Flags().Changed(LogLevelFlag) {
		if env := os.Getenv(LogLevelEnv); env != "" {
			level = env
		}
	}
	pretty, err := cmd.Flags().GetBool(LogPrettyFlag)
	if err != nil {
		return nil, err
	}
	return logger.NewLogger(logger.Config{Level: level, Pretty: pretty, Output: cmd.ErrOrStderr()}), nil
}
