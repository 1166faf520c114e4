package engine

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUUIDv7Generator(t *testing.T) {
	var g UUIDv7Generator
	a, b := g.Generate(), g.Generate()

	id, err := uuid.Parse(a)
	require.NoError(t, err)
	assert.Equal(t, uuid.Version(7), id.Version())
	assert.NotEqual(t, a, b)
}

func TestFixedGenerator(t *testing.T) {
	g := NewFixedGenerator("act", "first", "second")

	assert.Equal(t, "first", g.Generate())
	assert.Equal(t, "second", g.Generate())
	assert.Equal(t, "act-3", g.Generate())
	assert.Equal(t, "act-4", g.Generate())
}
