// Package testenv provides general test utilities.
package testenv

import (
	"math/rand"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// MakeAR creates testify assert and require objects.
func MakeAR(t require.TestingT) (*assert.Assertions, *require.Assertions) {
	return assert.New(t), require.New(t)
}

// RandBytes fills []byte with non-crypto-safe random bytes.
func RandBytes(p []byte) {
	rand.New(rand.NewSource(rand.Int63())).Read(p)
}

// BytesEqual asserts that actual bytes equals expected bytes.
// It considers nil slice and zero-length slice to be the same.
func BytesEqual(a *assert.Assertions, expected, actual []byte, msgAndArgs ...any) bool {
	if len(expected) == 0 && len(actual) == 0 {
		return true
	}
	return a.Equal(expected, actual, msgAndArgs...)
}
