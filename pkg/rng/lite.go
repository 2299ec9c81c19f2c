package rng

// NewLite constructs a generator whose first eight draws match New(seed)
// exactly, skipping the tail of the final shuffle pass. The first eight
// draws read and write only slots 1..8 and 22..29; the last shuffle pass
// settles those slots once it has processed index 29, so everything past
// that index is dead work for callers that stop within eight draws.
//
// The mine-floor predicates are the hot path that motivates this: a seed
// search over a floor range constructs one generator per floor and never
// consumes more than a handful of draws from each.
//
// Draws beyond the eighth are undefined; use New when in doubt.
func NewLite(seed int32) Subtractive {
	var g Subtractive
	g.fill(seed)
	g.shuffle(4, 29)
	g.inext = 0
	g.inextp = 21
	return g
}
