// Package game defines the trivia RPG state tree and the rules shared by every
// subsystem that mutates it.
//
// GameState is a plain data tree. It is owned by the engine, which clones it
// before every action and swaps the clone in only when the action succeeds.
// The helpers in this package (RecomputeStats, GrantExperience, the Spend*
// methods) operate on whatever *GameState they are handed and never retain it.
//
// # Derived stats
//
// PlayerStats.Atk, Def and MaxHP are never written directly. Every code path
// that changes equipment, research, relics or garden growth ends with a call
// to RecomputeStats, which derives them from the base values:
//
//	atk   = baseAtk + weapon + Σ relic(weapon) + research*10
//	def   = baseDef + armor  + Σ relic(armor)  + research*10
//	maxHp = baseHp  + research*10 + garden bonus
//
// Broken equipment (durability 0) contributes nothing.
//
// # Failures
//
// Rule violations are reported as *Error values carrying one of four codes
// (insufficient funds, invalid reference, capacity exceeded, precondition not
// met). Callers compare with errors.Is against the Err* sentinels.
package game
