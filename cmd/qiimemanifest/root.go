package main

import (
	"context"
	"fmt"
	"io"
	"os/signal"
	"runtime"
	"runtime/debug"
	"strings"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	pflag "github.com/spf13/pflag"

	"github.com/bft-labs/qiimemanifest/internal/app"
	"github.com/bft-labs/qiimemanifest/internal/cliconfig"
)

const longHelp = `
Generate a QIIME 2 paired-end manifest from a directory of FASTQ files.

Forward and reverse reads are selected with the --frtag and --rrtag glob
patterns. The sample identifier is the file name with the literal end of the
pattern removed, e.g. A_R1.fastq with *R1.fastq is sample A. Reads are paired
by sample identifier; a forward read without a reverse mate, or two files with
the same identifier, is an error.

Configuration is read from --config (default $HOME/.qiimemanifest/config.toml),
then QIIMEMANIFEST_* environment variables, then flags.
`

var exampleUsage = strings.TrimSpace(`
  qiimemanifest -d ./reads -o ./QIIME2_manifest.txt
  qiimemanifest -d ./reads --frtag '*_R1_001.fastq.gz' --rrtag '*_R2_001.fastq.gz' --absolute
  qiimemanifest -d ./reads -o - | column -t
  qiimemanifest -d ./reads --watch
`)

func getVersion() string {
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		return info.Main.Version
	}
	return "dev"
}

// newRootCommand builds the CLI with a fresh default configuration. The logger
// is replaced once the verbosity is known so execute reports errors at the
// chosen level.
func newRootCommand(stderr io.Writer, log *zerolog.Logger) *cobra.Command {
	cfg := cliconfig.DefaultConfig()
	var cfgPath string

	root := &cobra.Command{
		Use:           "qiimemanifest",
		Short:         "Generate a QIIME 2 paired-end manifest from FASTQ files",
		Long:          strings.TrimSpace(longHelp),
		Example:       exampleUsage,
		Version:       fmt.Sprintf("%s %s/%s", getVersion(), runtime.GOOS, runtime.GOARCH),
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfgFile := cfgPath
			if cfgFile == "" {
				cfgFile = cliconfig.DefaultConfigPath()
			}

			changed := map[string]bool{}
			cmd.Flags().Visit(func(f *pflag.Flag) { changed[f.Name] = true })

			if cfgFile != "" && cliconfig.FileExists(cfgFile) {
				fc, err := cliconfig.LoadFileConfig(cfgFile)
				if err != nil {
					return fmt.Errorf("load config: %w", err)
				}
				if err := cliconfig.ApplyFileConfig(&cfg, fc, changed); err != nil {
					return err
				}
			} else if cfgPath != "" {
				return fmt.Errorf("config file %s not found", cfgPath)
			}

			// Environment overrides the file; flags override both.
			if err := cliconfig.ApplyEnvConfig(&cfg, changed); err != nil {
				return err
			}

			if err := cfg.Validate(); err != nil {
				return err
			}

			*log = cliconfig.NewLogger(stderr, cfg.Verbose)
			log.Debug().Interface("config", cfg).Msg("configuration")

			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			return app.Run(ctx, cfg, cmd.OutOrStdout(), *log)
		},
	}

	root.Flags().StringVar(&cfgPath, "config", "", "path to config file (default: $HOME/.qiimemanifest/config.toml)")
	root.Flags().StringVarP(&cfg.Dir, "dir", "d", cfg.Dir, "directory containing the .fastq read files")
	root.Flags().StringVarP(&cfg.Output, "output", "o", cfg.Output, `output manifest file ("-" for stdout)`)
	root.Flags().StringVar(&cfg.ForwardTag, "frtag", cfg.ForwardTag, "glob pattern selecting forward read files")
	root.Flags().StringVar(&cfg.ReverseTag, "rrtag", cfg.ReverseTag, "glob pattern selecting reverse read files")

	root.Flags().BoolVar(&cfg.AllowEmpty, "allow-empty", cfg.AllowEmpty, "write a header-only manifest when no reads are found")
	root.Flags().BoolVar(&cfg.Absolute, "absolute", cfg.Absolute, "write absolute file paths")

	root.Flags().BoolVar(&cfg.Watch, "watch", cfg.Watch, "keep running and rewrite the manifest when read files change")
	root.Flags().DurationVar(&cfg.Debounce, "debounce", cfg.Debounce, "quiet period before rewriting in watch mode")

	root.Flags().BoolVarP(&cfg.Verbose, "verbose", "v", cfg.Verbose, "log every read file")

	return root
}

// execute runs the command line args and returns the process exit code.
func execute(args []string, stdout, stderr io.Writer) int {
	log := cliconfig.NewLogger(stderr, false)

	root := newRootCommand(stderr, &log)
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	if err := root.Execute(); err != nil {
		log.Error().Err(err).Msg("qiimemanifest")
		return 1
	}
	return 0
}
