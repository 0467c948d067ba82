package manifest

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/bft-labs/qiimemanifest/internal/domain"
)

// separators are trimmed from the end of an identifier after the suffix is removed,
// so that "A_R1.fastq" yields "A" rather than "A_".
const separators = "_.-"

// Tag is a glob pattern selecting the reads of one direction, e.g. "*R1.fastq".
//
// A tag is a run of leading wildcards ('*', '?' or a [class]) followed by
// literal text only, e.g. "*_R1_001.fastq.gz". Identifiers are the file name
// with that literal suffix removed, so the matched width of the wildcards
// never matters.
type Tag struct {
	Pattern string
	suffix  string
}

// ParseTag validates pattern and extracts its literal suffix.
func ParseTag(pattern string) (Tag, error) {
	if pattern == "" {
		return Tag{}, fmt.Errorf("%w: empty pattern", domain.ErrInvalidTag)
	}
	if strings.ContainsRune(pattern, filepath.Separator) || strings.ContainsRune(pattern, '/') {
		return Tag{}, fmt.Errorf("%w: %q must match file names, not paths", domain.ErrInvalidTag, pattern)
	}
	if strings.ContainsRune(pattern, '\\') {
		return Tag{}, fmt.Errorf("%w: %q: escapes are not supported", domain.ErrInvalidTag, pattern)
	}
	if _, err := filepath.Match(pattern, ""); err != nil {
		return Tag{}, fmt.Errorf("%w: %q: %v", domain.ErrInvalidTag, pattern, err)
	}

	suffix, err := literalSuffix(pattern)
	if err != nil {
		return Tag{}, fmt.Errorf("%w: %q %v", domain.ErrInvalidTag, pattern, err)
	}
	return Tag{Pattern: pattern, suffix: suffix}, nil
}

// literalSuffix skips the leading wildcards of pattern and returns the rest,
// which must not contain further wildcards.
func literalSuffix(pattern string) (string, error) {
	i := 0
	for i < len(pattern) {
		switch pattern[i] {
		case '*', '?':
			i++
		case '[':
			end := strings.IndexByte(pattern[i+1:], ']')
			if end < 0 {
				return "", errors.New("has an unterminated character class")
			}
			i += end + 2
		default:
			suffix := pattern[i:]
			if strings.ContainsAny(suffix, "*?[") {
				return "", errors.New("may only use wildcards before the literal suffix")
			}
			return suffix, nil
		}
	}
	return "", errors.New("must end with literal text")
}

// MustParseTag is like ParseTag but panics on error.
func MustParseTag(pattern string) Tag {
	t, err := ParseTag(pattern)
	if err != nil {
		panic(err)
	}
	return t
}

// Suffix returns the literal suffix removed from file names.
func (t Tag) Suffix() string { return t.suffix }

// String returns the glob pattern.
func (t Tag) String() string { return t.Pattern }

// Match reports whether the base name of path matches the pattern.
func (t Tag) Match(path string) bool {
	ok, _ := filepath.Match(t.Pattern, filepath.Base(path))
	return ok
}

// SampleID derives the sample identifier of path.
func (t Tag) SampleID(path string) (string, error) {
	name := filepath.Base(path)
	if !strings.HasSuffix(name, t.suffix) {
		return "", fmt.Errorf("%w: %q does not end with %q", domain.ErrInvalidTag, name, t.suffix)
	}
	id := strings.TrimRight(strings.TrimSuffix(name, t.suffix), separators)
	if id == "" {
		return "", fmt.Errorf("%w: %q leaves an empty sample identifier", domain.ErrInvalidTag, name)
	}
	return id, nil
}
