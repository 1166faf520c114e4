package random

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeeded_Deterministic(t *testing.T) {
	a, b := New(42), New(42)
	for i := 0; i < 50; i++ {
		assert.Equal(t, a.Float64(), b.Float64())
		assert.Equal(t, a.IntN(10), b.IntN(10))
	}

	pa, pb := make([]byte, 16), make([]byte, 16)
	_, err := a.Read(pa)
	require.NoError(t, err)
	_, err = b.Read(pb)
	require.NoError(t, err)
	assert.Equal(t, pa, pb)
}

func TestSeeded_DifferentSeedsDiverge(t *testing.T) {
	a, b := New(1), New(2)
	same := true
	for i := 0; i < 10; i++ {
		if a.Float64() != b.Float64() {
			same = false
		}
	}
	assert.False(t, same)
}

func TestSeeded_Ranges(t *testing.T) {
	s := New(7)
	for i := 0; i < 1000; i++ {
		f := s.Float64()
		assert.GreaterOrEqual(t, f, 0.0)
		assert.Less(t, f, 1.0)
		n := s.IntN(5)
		assert.GreaterOrEqual(t, n, 0)
		assert.Less(t, n, 5)
	}
	assert.Equal(t, 0, s.IntN(0))
	assert.Equal(t, 0, s.IntN(-3))
}

func TestFromSeed(t *testing.T) {
	s, err := FromSeed(99)
	require.NoError(t, err)
	assert.Equal(t, int64(99), s.Seed())

	s, err = FromSeed(0)
	require.NoError(t, err)
	assert.NotNil(t, s)
}
