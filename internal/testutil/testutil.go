// Package testutil provides shared fixtures for sfxzip tests.
package testutil

import (
	"math/rand"
	"time"
)

// FixedTime returns a deterministic timestamp inside the DOS datetime
// range. It is constructed in the local timezone so the encoded header
// fields are identical in every environment, even though the underlying
// instant differs.
func FixedTime() time.Time {
	return time.Date(2021, time.May, 4, 12, 30, 40, 0, time.Local)
}

// Incompressible returns n pseudorandom bytes from a fixed seed. Neither
// deflate nor bzip2 can shrink them, which tests use to trigger the
// store fallback.
func Incompressible(n int) []byte {
	rnd := rand.New(rand.NewSource(42)) //nolint:gosec // deterministic test data
	b := make([]byte, n)
	rnd.Read(b)
	return b
}

// Compressible returns n bytes of highly repetitive content that every
// supported method shrinks.
func Compressible(n int) []byte {
	b := make([]byte, n)
	for i := range b {
		b[i] = "abcabcab"[i%8]
	}
	return b
}
