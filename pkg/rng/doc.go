// Package rng implements the deterministic primitives every prediction is
// built on: a bit-exact port of the reference runtime's subtractive
// pseudo-random generator and the XXH32-based seed derivation the game
// uses from version 1.4 onward.
//
// Generators are value types. A mechanic constructs one on its stack from
// a derived seed, consumes draws in the game's exact order, and lets it
// go out of scope; nothing here is shared or locked.
package rng
