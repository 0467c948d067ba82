package manifest

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/bft-labs/qiimemanifest/internal/domain"
)

// Result is the outcome of a successful build.
type Result struct {
	Manifest *domain.Manifest

	// Orphans are reverse reads whose sample has no forward read.
	// They are left out of the manifest.
	Orphans []domain.ReadFile
}

// Builder pairs forward and reverse read files into a manifest.
type Builder struct {
	forward Tag
	reverse Tag
	opts    options
}

// New creates a Builder for the given forward and reverse tags.
func New(forward, reverse Tag, opts ...Option) *Builder {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &Builder{forward: forward, reverse: reverse, opts: o}
}

// Build pairs forward and reverse reads with the default options.
func Build(forward, reverse []string, fwdTag, revTag Tag) (*domain.Manifest, error) {
	res, err := New(fwdTag, revTag).Build(forward, reverse)
	if err != nil {
		return nil, err
	}
	return res.Manifest, nil
}

// BuildDir scans dir for reads matching both tags and pairs them.
func (b *Builder) BuildDir(dir string) (*Result, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, &domain.InputNotFoundError{Dir: dir, Err: err}
	}
	if !info.IsDir() {
		return nil, &domain.InputNotFoundError{Dir: dir, Err: errors.New("not a directory")}
	}

	forward, err := Scan(dir, b.forward)
	if err != nil {
		return nil, err
	}
	reverse, err := Scan(dir, b.reverse)
	if err != nil {
		return nil, err
	}
	b.opts.logger.Debug().
		Str("dir", dir).
		Int("forward", len(forward)).
		Int("reverse", len(reverse)).
		Msg("scanned read files")

	return b.build(dir, forward, reverse)
}

// Build pairs the given forward and reverse paths by sample identifier.
// Neither input slice is modified.
func (b *Builder) Build(forward, reverse []string) (*Result, error) {
	return b.build("", forward, reverse)
}

func (b *Builder) build(dir string, forward, reverse []string) (*Result, error) {
	if len(forward) == 0 && !b.opts.allowEmpty {
		return nil, &domain.InputNotFoundError{
			Dir:      dir,
			Patterns: []string{b.forward.Pattern, b.reverse.Pattern},
		}
	}

	fwdReads, _, err := b.index(domain.Forward, b.forward, forward)
	if err != nil {
		return nil, err
	}
	_, revByID, err := b.index(domain.Reverse, b.reverse, reverse)
	if err != nil {
		return nil, err
	}

	m := &domain.Manifest{Pairs: make([]domain.SamplePair, 0, len(fwdReads))}
	for _, fwd := range fwdReads {
		rev, ok := revByID[fwd.SampleID]
		if !ok {
			return nil, &domain.MissingMateError{SampleID: fwd.SampleID, Forward: fwd.Path}
		}
		pair, err := domain.NewSamplePair(fwd, rev)
		if err != nil {
			return nil, err
		}
		m.Pairs = append(m.Pairs, pair)
		delete(revByID, fwd.SampleID)
	}

	res := &Result{Manifest: m}
	for _, rev := range revByID {
		res.Orphans = append(res.Orphans, rev)
	}
	sort.Slice(res.Orphans, func(i, j int) bool { return res.Orphans[i].Path < res.Orphans[j].Path })
	for _, o := range res.Orphans {
		b.opts.logger.Warn().Str("sample", o.SampleID).Str("path", o.Path).Msg("reverse read has no forward mate, skipping")
	}

	b.opts.logger.Info().Int("samples", m.Len()).Int("orphans", len(res.Orphans)).Msg("manifest built")
	return res, nil
}

// index derives identifiers for paths in lexicographic order. The returned
// slice preserves that order; the map is keyed by sample identifier.
func (b *Builder) index(side domain.Side, tag Tag, paths []string) ([]domain.ReadFile, map[string]domain.ReadFile, error) {
	sorted := make([]string, len(paths))
	copy(sorted, paths)
	sort.Strings(sorted)

	reads := make([]domain.ReadFile, 0, len(sorted))
	byID := make(map[string]domain.ReadFile, len(sorted))
	for _, p := range sorted {
		if b.opts.absolutePaths {
			abs, err := filepath.Abs(p)
			if err != nil {
				return nil, nil, fmt.Errorf("absolute path of %s: %w", p, err)
			}
			p = abs
		}
		id, err := tag.SampleID(p)
		if err != nil {
			return nil, nil, fmt.Errorf("%s read: %w", side, err)
		}
		if prev, ok := byID[id]; ok {
			return nil, nil, &domain.DuplicateIdentifierError{Side: side, SampleID: id, First: prev.Path, Second: p}
		}
		rf := domain.ReadFile{Path: p, SampleID: id}
		byID[id] = rf
		reads = append(reads, rf)
		b.opts.logger.Debug().Str("side", string(side)).Str("sample", id).Str("path", p).Msg("read file")
	}
	return reads, byID, nil
}
