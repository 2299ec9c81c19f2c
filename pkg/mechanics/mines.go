package mechanics

import (
	"valley-oracle/pkg/rng"
	"valley-oracle/pkg/version"
)

// FloorRecord carries the per-floor attributes. The three booleans are
// computed independently from one shared generator; slime infestation is
// folded into IsMonster for query purposes.
type FloorRecord struct {
	Floor      int  `json:"floor"`
	IsMonster  bool `json:"is_monster"`
	IsDark     bool `json:"is_dark"`
	IsMushroom bool `json:"is_mushroom"`
}

// mushroomMinLevel is the first floor on which mushroom levels can spawn.
const mushroomMinLevel = 81

// infestable reports whether a level can host a monster or slime floor:
// level mod 40 in [6, 29], except 19.
func infestable(level int) bool {
	m := level % 40
	return m >= 6 && m <= 29 && m != 19
}

// MineFloor computes the attributes of one floor on one day. The draw
// order is fixed: infestation gate, infestation kind, a 1.6 probe, fog,
// darkness, mushrooms. Every floor costs one fresh generator and at most
// five draws, which is what the lite constructor exists for.
func MineFloor(gameSeed int32, day, level int, v version.Version) FloorRecord {
	var seed int32
	if v.Before(version.V1_4) {
		seed = int32(day) + int32(level) + gameSeed/2
	} else {
		seed = rng.HashSeed(int32(day), gameSeed/2, int32(level)*100, 0, 0)
	}
	g := rng.NewLite(seed)

	rec := FloorRecord{Floor: level}

	gate := g.NextDouble()
	infested := infestable(level) && gate < 0.044
	if infested {
		// Below 0.5 is a monster floor, at or above a slime floor; both
		// count as "monster" for the floor queries.
		g.NextDouble()
		rec.IsMonster = true
	}

	if v.AtLeast(version.V1_6) {
		g.NextDouble() // extra probe ahead of the lighting draws
	}
	g.NextDouble() // fog, unused by the queries but it advances the state
	rec.IsDark = g.NextDouble() < 0.15 && level > 5

	if level >= mushroomMinLevel && !infested {
		rec.IsMushroom = g.NextDouble() < 0.035
	}

	return rec
}

// MineFloors computes records for every level in [lo, hi], one fresh
// generator per floor. Inverted ranges yield an empty result.
func MineFloors(gameSeed int32, day, lo, hi int, v version.Version) []FloorRecord {
	if lo > hi {
		return nil
	}
	out := make([]FloorRecord, 0, hi-lo+1)
	for level := lo; level <= hi; level++ {
		out = append(out, MineFloor(gameSeed, day, level, v))
	}
	return out
}
