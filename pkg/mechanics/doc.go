// Package mechanics reimplements, draw for draw, the game procedures the
// predictor reproduces: daily luck and the saloon dish, tomorrow's
// weather, the scheduled night event, the traveling cart stock, geode
// contents, and per-floor mine attributes.
//
// Every procedure constructs a fresh rng.Subtractive from a derived seed
// and consumes it in the game's exact order and quantity — including
// draws whose results are discarded. Changing the order or count of draws
// anywhere in this package changes predictions for every seed, so the
// shapes here follow the reference behavior even where it looks odd.
// All functions are total and pure: no shared state, no errors, safe to
// call concurrently for different or identical inputs.
package mechanics
