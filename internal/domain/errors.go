package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Domain errors represent error conditions while building a manifest.
var (
	// ErrInputNotFound is matched by every InputNotFoundError.
	ErrInputNotFound = errors.New("qiimemanifest: input not found")

	// ErrInvalidTag is returned when a tag cannot be used to derive sample identifiers.
	ErrInvalidTag = errors.New("qiimemanifest: invalid tag")

	// ErrMismatchedPair is returned when a pair is assembled from reads of different samples.
	ErrMismatchedPair = errors.New("qiimemanifest: mismatched pair")
)

// Side identifies which read direction a file belongs to.
type Side string

const (
	// Forward marks files selected by the forward tag (R1).
	Forward Side = "forward"
	// Reverse marks files selected by the reverse tag (R2).
	Reverse Side = "reverse"
)

// InputNotFoundError reports a missing input directory or an empty file set.
type InputNotFoundError struct {
	Dir      string
	Patterns []string
	// Err is the underlying file system error, if any.
	Err error
}

func (e *InputNotFoundError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("input directory %q: %v", e.Dir, e.Err)
	}
	if e.Dir == "" {
		return fmt.Sprintf("no input files matching %s", strings.Join(e.Patterns, ", "))
	}
	return fmt.Sprintf("no input files found in %q matching %s", e.Dir, strings.Join(e.Patterns, ", "))
}

// Is makes errors.Is(err, ErrInputNotFound) succeed.
func (e *InputNotFoundError) Is(target error) bool { return target == ErrInputNotFound }

func (e *InputNotFoundError) Unwrap() error { return e.Err }

// MissingMateError reports a forward read whose sample has no reverse read.
type MissingMateError struct {
	SampleID string
	Forward  string
}

func (e *MissingMateError) Error() string {
	return fmt.Sprintf("missing pair: sample %q (%s) has no reverse read", e.SampleID, e.Forward)
}

// DuplicateIdentifierError reports two files on the same side that derive the
// same sample identifier.
type DuplicateIdentifierError struct {
	Side     Side
	SampleID string
	First    string
	Second   string
}

func (e *DuplicateIdentifierError) Error() string {
	return fmt.Sprintf("duplicate %s sample identifier %q: %s and %s", e.Side, e.SampleID, e.First, e.Second)
}
