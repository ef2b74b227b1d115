package utils

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUUIDGenerator_Generate_IsValidUUID(t *testing.T) {
	g := NewUUIDGenerator()

	id := g.Generate()
	_, err := uuid.Parse(id)
	require.NoError(t, err)
}

func TestUUIDGenerator_Generate_Unique(t *testing.T) {
	g := NewUUIDGenerator()

	seen := make(map[string]struct{}, 1000)
	for i := 0; i < 1000; i++ {
		id := g.Generate()
		_, dup := seen[id]
		require.False(t, dup, "duplicate id generated: %s", id)
		seen[id] = struct{}{}
	}
}

func TestUUIDGenerator_Short_Length(t *testing.T) {
	g := NewUUIDGenerator()

	assert.Len(t, g.Short(), 8)
}

func TestUUIDGenerator_Short_UniqueWithinOneMillisecond(t *testing.T) {
	g := NewUUIDGenerator()

	// The V7 timestamp prefix does not vary between back-to-back calls,
	// so the suffix must come from the random section.
	seen := make(map[string]struct{}, 1000)
	for i := 0; i < 1000; i++ {
		s := g.Short()
		_, dup := seen[s]
		require.False(t, dup, "duplicate short id: %s", s)
		seen[s] = struct{}{}
	}
}
