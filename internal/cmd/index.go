package cmd

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/lyraproj/osgi-index/indexer"
)

const (
	FlagOutput      = "output"
	FlagName        = "name"
	FlagIncrement   = "increment"
	FlagRootDir     = "root-dir"
	FlagConcurrency = "concurrency"
	FlagFailFast    = "fail-fast"
	FlagInclude     = "include"
	FlagPretty      = "pretty"
	FlagCompress    = "compress"
	FlagConfig      = "config"
	FlagNoMaven     = "no-maven"

	// stdoutOutput writes the index to standard output.
	stdoutOutput = "-"
)

func newIndexCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "index [flags] [roots...]",
		Short: "Index the bundles found under the given files and directories",
		Long: `Analyze every bundle found under the given roots and write an OSGi Repository
index. Roots default to the current directory. Files that cannot be analyzed are
skipped and logged unless --fail-fast is given.

Values from --config are overridden by explicitly set flags.`,
		Example: `osgi-index index --output repo/index.xml.gz --name "My Repository" repo/`,
		RunE:    runIndex,
	}
	cmd.Flags().StringP(FlagOutput, "o", "index.xml", `output file, "-" for standard output`)
	cmd.Flags().String(FlagName, indexer.DefaultName, "repository name")
	cmd.Flags().Int64(FlagIncrement, 0, "repository increment, defaults to the current time in milliseconds")
	cmd.Flags().String(FlagRootDir, "", "directory content URLs are relative to, defaults to the output directory")
	cmd.Flags().Int(FlagConcurrency, 0, "number of files analyzed in parallel, defaults to GOMAXPROCS")
	cmd.Flags().Bool(FlagFailFast, false, "abort on the first file that cannot be analyzed")
	cmd.Flags().StringSlice(FlagInclude, indexer.DefaultIncludes, "glob patterns selecting files by name")
	cmd.Flags().Bool(FlagPretty, false, "indent the XML output")
	cmd.Flags().Bool(FlagCompress, false, "gzip the output, implied by a .gz output file")
	cmd.Flags().String(FlagConfig, "", "YAML configuration file")
	cmd.Flags().Bool(FlagNoMaven, false, "do not add maven.coordinates capabilities")
	return cmd
}

func runIndex(cmd *cobra.Command, args []string) error {
	log, err := newLogger(cmd)
	if err != nil {
		return err
	}
	cfg, err := indexConfig(cmd.Flags())
	if err != nil {
		return err
	}
	output, err := cmd.Flags().GetString(FlagOutput)
	if err != nil {
		return err
	}
	if output != stdoutOutput {
		if cfg.RootDir == "" {
			cfg.RootDir = filepath.Dir(output)
		}
		if strings.HasSuffix(output, ".gz") {
			cfg.Compress = true
		}
	}
	if len(args) == 0 {
		args = []string{"."}
	}

	x, err := indexer.New(*cfg, log)
	if err != nil {
		return err
	}
	report, err := x.Index(cmd.Context(), args...)
	if err != nil {
		return fmt.Errorf("building index: %w", err)
	}
	if output == stdoutOutput {
		return x.Write(cmd.OutOrStdout(), report.Repository)
	}
	if err := x.WriteFile(output, report.Repository); err != nil {
		return fmt.Errorf("writing %s: %w", output, err)
	}
	log.Info().Str("output", output).Int("resources", len(report.Repository.Resources)).Msg("Index written")
	return nil
}

// indexConfig loads the configuration file, if any, and applies the flags that were set.
func indexConfig(flags *pflag.FlagSet) (*indexer.Config, error) {
	cfg := &indexer.Config{}
	if file, err := flags.GetString(FlagConfig); err != nil {
		return nil, err
	} else if file != "" {
		if cfg, err = indexer.LoadConfig(file); err != nil {
			return nil, err
		}
	}

	var err error
	if cfg.Name == "" || flags.Changed(FlagName) {
		if cfg.Name, err = flags.GetString(FlagName); err != nil {
			return nil, err
		}
	}
	if flags.Changed(FlagIncrement) {
		if cfg.Increment, err = flags.GetInt64(FlagIncrement); err != nil {
			return nil, err
		}
	}
	if flags.Changed(FlagRootDir) {
		if cfg.RootDir, err = flags.GetString(FlagRootDir); err != nil {
			return nil, err
		}
	}
	if flags.Changed(FlagConcurrency) {
		if cfg.Concurrency, err = flags.GetInt(FlagConcurrency); err != nil {
			return nil, err
		}
	}
	if len(cfg.Includes) == 0 || flags.Changed(FlagInclude) {
		if cfg.Includes, err = flags.GetStringSlice(FlagInclude); err != nil {
			return nil, err
		}
	}
	for _, b := range []struct {
		flag   string
		target *bool
	}{
		{FlagFailFast, &cfg.FailFast},
		{FlagPretty, &cfg.Pretty},
		{FlagCompress, &cfg.Compress},
	} {
		if flags.Changed(b.flag) {
			if *b.target, err = flags.GetBool(b.flag); err != nil {
				return nil, err
			}
		}
	}
	if flags.Changed(FlagNoMaven) {
		noMaven, err := flags.GetBool(FlagNoMaven)
		if err != nil {
			return nil, err
		}
		enabled := !noMaven
		cfg.MavenCoordinates = &enabled
	}
	return cfg, nil
}
