// Package qiimemanifest generates QIIME 2 paired-end manifests from directories
// of FASTQ files.
//
// Example usage:
//
//	m, err := qiimemanifest.GenerateDir("./reads", "*R1.fastq", "*R2.fastq")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := qiimemanifest.WriteFile("QIIME2_manifest.txt", m); err != nil {
//	    log.Fatal(err)
//	}
package qiimemanifest

import (
	"github.com/bft-labs/qiimemanifest/internal/domain"
	"github.com/bft-labs/qiimemanifest/internal/manifest"
)

// Manifest is an ordered list of sample pairs preceded by the fixed header.
type Manifest = domain.Manifest

// SamplePair holds the forward and reverse reads of one sample.
type SamplePair = domain.SamplePair

// Error types returned by Generate and GenerateDir. Use errors.As to inspect them.
type (
	InputNotFoundError       = domain.InputNotFoundError
	MissingMateError         = domain.MissingMateError
	DuplicateIdentifierError = domain.DuplicateIdentifierError
)

// Sentinel errors, usable with errors.Is.
var (
	ErrInputNotFound = domain.ErrInputNotFound
	ErrInvalidTag    = domain.ErrInvalidTag
)

// Header is the first line of every manifest.
const Header = domain.Header

// Generate pairs the given forward and reverse read paths. The tags are glob
// patterns such as "*R1.fastq"; their literal ending is stripped from each file
// name to form the sample identifier.
func Generate(forward, reverse []string, forwardTag, reverseTag string) (*Manifest, error) {
	fwd, rev, err := parseTags(forwardTag, reverseTag)
	if err != nil {
		return nil, err
	}
	return manifest.Build(forward, reverse, fwd, rev)
}

// GenerateDir scans dir for reads matching the tags and pairs them.
func GenerateDir(dir, forwardTag, reverseTag string) (*Manifest, error) {
	fwd, rev, err := parseTags(forwardTag, reverseTag)
	if err != nil {
		return nil, err
	}
	res, err := manifest.New(fwd, rev).BuildDir(dir)
	if err != nil {
		return nil, err
	}
	return res.Manifest, nil
}

// WriteFile atomically replaces path with the manifest text.
func WriteFile(path string, m *Manifest) error {
	return manifest.WriteFile(path, m)
}

func parseTags(forwardTag, reverseTag string) (manifest.Tag, manifest.Tag, error) {
	fwd, err := manifest.ParseTag(forwardTag)
	if err != nil {
		return manifest.Tag{}, manifest.Tag{}, err
	}
	rev, err := manifest.ParseTag(reverseTag)
	if err != nil {
		return manifest.Tag{}, manifest.Tag{}, err
	}
	return fwd, rev, nil
}
