// Package engine owns the game state and applies every change to it.
//
// ARCHITECTURE:
//
// Single Writer:
// All actions are serialized by one mutex. An action runs to completion,
// including its journal write, before the next begins, so concurrent
// callers observe the same total order the journal records.
//
// Copy-on-Write:
// An action works on a deep copy of the live state. On success the copy
// replaces the live state; on failure it is dropped, which is why a
// rejected action never leaves partial changes behind. Readers get their
// own copies through Snapshot and never share memory with the engine.
//
// Action Processing Flow:
// 1. The caller invokes a typed method (or Invoke with Args)
// 2. apply stamps the attempt with the next seq from Clock
// 3. The garden is settled up to now, then the domain function runs
// 4. On success lastSaveTime moves to now and the commit hook fires
// 5. The attempt is journaled with its canonical-JSON args
//
// Collaborators (clock, random source, question provider, journal,
// persister) are injected through EngineOption values so tests can pin
// time and randomness.
//
// CRITICAL PATTERNS:
//
// Logical Clock:
// Journal order comes from the seq counter, never from wall time.
//
// Determinism:
// With a fixed wall clock, a seeded source and a FixedGenerator, the same
// actions produce the same states and the same journal.
package engine
