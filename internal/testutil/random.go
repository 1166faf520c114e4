package testutil

import "sync"

// ScriptedSource replays predetermined draws. Once a script runs out, Float64
// returns Fallback and IntN returns 0. Read fills bytes from a counter so ids
// stay distinct and reproducible.
type ScriptedSource struct {
	mu       sync.Mutex
	floats   []float64
	ints     []int
	counter  byte
	Fallback float64
}

// NewScriptedSource creates a source that returns floats in order.
func NewScriptedSource(floats ...float64) *ScriptedSource {
	return &ScriptedSource{floats: floats, Fallback: 0.5}
}

// WithInts queues values for IntN. Each value is reduced modulo n.
func (s *ScriptedSource) WithInts(ints ...int) *ScriptedSource {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ints = append(s.ints, ints...)
	return s
}

func (s *ScriptedSource) Float64() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.floats) == 0 {
		return s.Fallback
	}
	f := s.floats[0]
	s.floats = s.floats[1:]
	return f
}

func (s *ScriptedSource) IntN(n int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if n <= 0 || len(s.ints) == 0 {
		return 0
	}
	v := s.ints[0]
	s.ints = s.ints[1:]
	if v < 0 {
		v = -v
	}
	return v % n
}

func (s *ScriptedSource) Read(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.counter++
	for i := range p {
		p[i] = s.counter + byte(i)
	}
	return len(p), nil
}

// Remaining reports how many scripted floats have not been consumed.
func (s *ScriptedSource) Remaining() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.floats)
}
