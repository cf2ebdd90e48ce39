// Package testutil carries small assertion helpers for tests: a
// package-level *testing.T set once per test via SetT, then NoErr/Err
// calls that fail immediately without the caller threading t through
// every helper function. The module's current tests use testify's
// require instead and do not import this package.
package testutil

import "testing"

var currentT *testing.T

// SetT registers t as the target of subsequent NoErr/Err calls. Call it
// at the top of each test, or of each helper that itself calls NoErr/Err.
func SetT(t *testing.T) {
	currentT = t
}

// NoErr fails the current test if err is non-nil.
func NoErr(err error) {
	if err != nil {
		currentT.Helper()
		currentT.Fatalf("unexpected error: %v", err)
	}
}

// Err fails the current test if err is nil.
func Err(err error) {
	if err == nil {
		currentT.Helper()
		currentT.Fatal("expected an error, got nil")
	}
}
