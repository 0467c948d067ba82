// Package app runs the manifest generator for a resolved configuration.
package app

import (
	"context"
	"io"

	"github.com/rs/zerolog"

	"github.com/bft-labs/qiimemanifest/internal/cliconfig"
	"github.com/bft-labs/qiimemanifest/internal/manifest"
	"github.com/bft-labs/qiimemanifest/internal/watch"
)

// Run generates the manifest described by cfg. Without cfg.Watch it returns
// after a single build; with it, Run blocks until ctx is canceled.
// The manifest goes to stdout when cfg.Output is "-".
func Run(ctx context.Context, cfg cliconfig.Config, stdout io.Writer, logger zerolog.Logger) error {
	fwd, rev, err := cfg.Tags()
	if err != nil {
		return err
	}

	b := manifest.New(fwd, rev,
		manifest.WithLogger(logger),
		manifest.WithAllowEmpty(cfg.AllowEmpty),
		manifest.WithAbsolutePaths(cfg.Absolute),
	)
	regenerate := func() error {
		return generate(b, cfg.Dir, cfg.Output, stdout, logger)
	}

	if !cfg.Watch {
		return regenerate()
	}

	w := watch.New(watch.Config{
		Dir:      cfg.Dir,
		Output:   cfg.Output,
		Tags:     []manifest.Tag{fwd, rev},
		Debounce: cfg.Debounce,
	}, regenerate, logger)
	return w.Run(ctx)
}

func generate(b *manifest.Builder, dir, output string, stdout io.Writer, logger zerolog.Logger) error {
	res, err := b.BuildDir(dir)
	if err != nil {
		return err
	}

	if output == cliconfig.StdoutOutput {
		return manifest.Write(stdout, res.Manifest)
	}
	if err := manifest.WriteFile(output, res.Manifest); err != nil {
		return err
	}
	logger.Info().Str("output", output).Int("samples", res.Manifest.Len()).Msg("manifest written")
	return nil
}
