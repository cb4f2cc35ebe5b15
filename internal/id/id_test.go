package id

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func isURLSafe(r rune) bool {
	return (r >= 'A' && r <= 'Z') ||
		(r >= 'a' && r <= 'z') ||
		(r >= '0' && r <= '9') ||
		r == '_' || r == '-'
}

func TestGenerate_Format(t *testing.T) {
	for _, prefix := range []string{PrefixRun, PrefixRequest, "custom"} {
		t.Run(prefix, func(t *testing.T) {
			id, err := Generate(prefix)
			require.NoError(t, err)

			require.True(t, strings.HasPrefix(id, prefix+"-"))
			random := strings.TrimPrefix(id, prefix+"-")
			assert.Len(t, random, Size)
			for _, r := range random {
				assert.True(t, isURLSafe(r), "character %q should be URL-safe", r)
			}
		})
	}
}

func TestGenerate_Uniqueness(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		id, err := NewRunID()
		require.NoError(t, err)
		assert.False(t, seen[id], "duplicate id %s", id)
		seen[id] = true
	}
}

func TestNewRunID(t *testing.T) {
	id, err := NewRunID()
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(id, "run-"))
	assert.Equal(t, len("run-")+Size, len(id))
}

func TestMustGenerate(t *testing.T) {
	id := MustGenerate(PrefixRequest)
	assert.True(t, strings.HasPrefix(id, "req-"))
}
