package mechanics

import (
	"valley-oracle/pkg/rng"
	"valley-oracle/pkg/version"
)

// seedFor derives an RNG seed from a five-value tuple: the additive sum
// of the tuple before the mechanic's hash cutoff, XXH32 over it at or
// after. Night events and geodes keep the same tuple shape across the
// boundary and go through here; mine floors and the cart change argument
// shape between eras and branch at their call sites instead.
func seedFor(v, cutoff version.Version, a, b, c, d, e int32) int32 {
	if v.Before(cutoff) {
		return a + b + c + d + e
	}
	return rng.HashSeed(a, b, c, d, e)
}
