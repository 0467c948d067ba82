// Package domain contains the core entities of the manifest generator.
//
// It has no dependencies on the file system, logging or the command line and
// holds only the pairing rules and the manifest text layout.
//
// # Entities
//
//   - [ReadFile]: a sequencing read file path plus its derived sample identifier
//   - [SamplePair]: the forward and reverse reads of one sample
//   - [Manifest]: the ordered sample rows preceded by the fixed header
//
// Errors returned by the builder are defined in errors.go and can be checked
// with errors.Is and errors.As.
package domain
