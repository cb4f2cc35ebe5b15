// Package id generates identifiers for records that are not numbered by the database.
package id

import (
	"fmt"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

// Prefixes for generated identifiers.
const (
	PrefixRun     = "run" // Generation runs
	PrefixRequest = "req" // Request correlation ids
)

// Size is the length of the random part of an identifier.
const Size = 21

// Generate returns prefix-nanoid, e.g. "run-V1StGXR8_Z5jdHi6B-myT".
// Fails only when the system cannot provide secure randomness.
func Generate(prefix string) (string, error) {
	n, err := gonanoid.New(Size)
	if err != nil {
		return "", fmt.Errorf("generate nanoid: %w", err)
	}
	return prefix + "-" + n, nil
}

// NewRunID returns an identifier for a generation run.
func NewRunID() (string, error) {
	return Generate(PrefixRun)
}

// MustGenerate is like Generate but panics on failure.
func MustGenerate(prefix string) string {
	id, err := Generate(prefix)
	if err != nil {
		panic(fmt.Sprintf("failed to generate ID: %v", err))
	}
	return id
}
