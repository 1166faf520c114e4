package snapshot

import (
	"context"
	"errors"
	"fmt"

	"github.com/roach88/triviarpg/internal/game"
)

// DefaultKey is the storage key of the single save slot.
const DefaultKey = "gameState"

// ErrNotFound is returned by a KV when the key has no value.
var ErrNotFound = errors.New("key not found")

// KV is the byte-oriented storage a snapshot is written to.
type KV interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

// Adapter saves and loads one GameState under a fixed key.
type Adapter struct {
	kv  KV
	key string
}

// NewAdapter returns an adapter for key, or DefaultKey when key is empty.
func NewAdapter(kv KV, key string) *Adapter {
	if key == "" {
		key = DefaultKey
	}
	return &Adapter{kv: kv, key: key}
}

func (a *Adapter) Key() string { return a.key }

func (a *Adapter) Save(ctx context.Context, s *game.GameState) error {
	data, err := Encode(s)
	if err != nil {
		return err
	}
	if err := a.kv.Set(ctx, a.key, data); err != nil {
		return fmt.Errorf("save %s: %w", a.key, err)
	}
	return nil
}

// Load returns the saved state, or nil and no error when nothing is saved.
func (a *Adapter) Load(ctx context.Context) (*game.GameState, error) {
	data, err := a.kv.Get(ctx, a.key)
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", a.key, err)
	}
	return Decode(data)
}

// Clear deletes the save. Clearing an absent save is not an error.
func (a *Adapter) Clear(ctx context.Context) error {
	if err := a.kv.Delete(ctx, a.key); err != nil && !errors.Is(err, ErrNotFound) {
		return fmt.Errorf("clear %s: %w", a.key, err)
	}
	return nil
}
