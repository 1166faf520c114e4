package engine

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/triviarpg/internal/game"
)

func TestArgs_Int(t *testing.T) {
	tests := []struct {
		name    string
		value   any
		want    int
		wantErr bool
	}{
		{name: "int", value: 5, want: 5},
		{name: "int64", value: int64(-3), want: -3},
		{name: "integral float", value: 7.0, want: 7},
		{name: "fractional float", value: 7.5, wantErr: true},
		{name: "json number", value: json.Number("12"), want: 12},
		{name: "string", value: " 42 ", want: 42},
		{name: "bad string", value: "many", wantErr: true},
		{name: "bool", value: true, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Args{"n": tt.value}.Int("n")
			if tt.wantErr {
				require.ErrorIs(t, err, game.ErrInvalidReference)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestArgs_Missing(t *testing.T) {
	a := Args{}

	_, err := a.Int("amount")
	require.Error(t, err)
	var ge *game.Error
	require.ErrorAs(t, err, &ge)
	assert.Equal(t, "amount", ge.Details["arg"])

	n, err := a.IntOr("amount", 9)
	require.NoError(t, err)
	assert.Equal(t, 9, n)

	b, err := a.OptionalBool("darkMode")
	require.NoError(t, err)
	assert.Nil(t, b)
}

func TestArgs_Strings(t *testing.T) {
	got, err := Args{"ids": "a, b,,c"}.Strings("ids")
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, got)

	got, err = Args{"ids": []any{"x", "y"}}.Strings("ids")
	require.NoError(t, err)
	assert.Equal(t, []string{"x", "y"}, got)

	_, err = Args{"ids": []any{"x", 1}}.Strings("ids")
	assert.ErrorIs(t, err, game.ErrInvalidReference)
}

func TestArgs_KindAndRarity(t *testing.T) {
	a := Args{"kind": "armor", "rarity": "legendary", "bad": "shield"}

	kind, err := a.Kind("kind")
	require.NoError(t, err)
	assert.Equal(t, game.KindArmor, kind)

	r, err := a.Rarity("rarity")
	require.NoError(t, err)
	assert.Equal(t, game.Legendary, r)

	_, err = a.Kind("bad")
	assert.ErrorIs(t, err, game.ErrInvalidReference)
}

func TestArgs_BoolFromString(t *testing.T) {
	b, err := Args{"hit": "false"}.BoolOr("hit", true)
	require.NoError(t, err)
	assert.False(t, b)

	_, err = Args{"hit": "maybe"}.BoolOr("hit", true)
	assert.ErrorIs(t, err, game.ErrInvalidReference)
}
