package domain

import (
	"fmt"
	"strings"
)

// Header is the fixed first line of every manifest.
const Header = "sample-id\tforward-absolute-filepath\treverse-absolute-filepath"

// ReadFile is a sequencing read file and the sample identifier derived from its name.
type ReadFile struct {
	Path     string
	SampleID string
}

// SamplePair holds the forward and reverse reads of a single sample.
// Both reads always carry the same SampleID.
type SamplePair struct {
	SampleID string
	Forward  ReadFile
	Reverse  ReadFile
}

// NewSamplePair pairs two reads, rejecting reads of different samples.
func NewSamplePair(fwd, rev ReadFile) (SamplePair, error) {
	if fwd.SampleID != rev.SampleID {
		return SamplePair{}, fmt.Errorf("%w: forward %q is sample %q, reverse %q is sample %q",
			ErrMismatchedPair, fwd.Path, fwd.SampleID, rev.Path, rev.SampleID)
	}
	return SamplePair{SampleID: fwd.SampleID, Forward: fwd, Reverse: rev}, nil
}

// Row renders the pair as a tab separated manifest row.
func (p SamplePair) Row() string {
	return p.SampleID + "\t" + p.Forward.Path + "\t" + p.Reverse.Path
}

// Manifest is an ordered list of sample pairs. It is built once and not mutated afterwards.
type Manifest struct {
	Pairs []SamplePair
}

// Len returns the number of sample rows, excluding the header.
func (m *Manifest) Len() int {
	return len(m.Pairs)
}

// Lines returns the header followed by one row per pair.
func (m *Manifest) Lines() []string {
	lines := make([]string, 0, len(m.Pairs)+1)
	lines = append(lines, Header)
	for _, p := range m.Pairs {
		lines = append(lines, p.Row())
	}
	return lines
}

// String returns the manifest text: lines joined by '\n' with no trailing newline.
func (m *Manifest) String() string {
	return strings.Join(m.Lines(), "\n")
}
