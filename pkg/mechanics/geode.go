package mechanics

import (
	"valley-oracle/pkg/rng"
	"valley-oracle/pkg/tables"
	"valley-oracle/pkg/version"
)

// GeodeType selects a cracking table.
type GeodeType string

const (
	GeodeRegular GeodeType = "regular"
	GeodeFrozen  GeodeType = "frozen"
	GeodeMagma   GeodeType = "magma"
	GeodeOmni    GeodeType = "omni"
	GeodeTrove   GeodeType = "trove"
	GeodeCoconut GeodeType = "coconut"
)

// GeodeTypes lists the accepted wire values.
var GeodeTypes = []GeodeType{GeodeRegular, GeodeFrozen, GeodeMagma, GeodeOmni, GeodeTrove, GeodeCoconut}

// Valid reports whether t is a known geode type.
func (t GeodeType) Valid() bool {
	for _, known := range GeodeTypes {
		if t == known {
			return true
		}
	}
	return false
}

// GeodeResult is the item produced by cracking one geode.
type GeodeResult struct {
	ID       int32 `json:"id"`
	Quantity int32 `json:"quantity"`
}

// Geode predicts the contents of the n-th geode cracked on a save
// (n >= 1). playerID participates in seeding only from 1.6 onward; pass
// zero when the save's unique player id is unknown.
func Geode(gameSeed int32, n int, typ GeodeType, v version.Version, playerID int32) GeodeResult {
	var pid int32
	if v.AtLeast(version.V1_6) {
		pid = playerID / 2
	}
	g := rng.New(seedFor(v, version.V1_6, int32(n), gameSeed/2, pid, 0, 0))

	if v.AtLeast(version.V1_4) {
		for i, w := 0, g.NextIn(1, 10); int32(i) < w; i++ {
			g.NextDouble()
		}
		for i, w := 0, g.NextIn(1, 10); int32(i) < w; i++ {
			g.NextDouble()
		}
	}
	if v.AtLeast(version.V1_5) {
		g.NextDouble() // Qi-bean probe
	}

	// Troves and golden coconuts never roll the ore side.
	if typ == GeodeTrove || typ == GeodeCoconut {
		return treasure(&g, typ, n, v)
	}

	r := g.NextDouble()
	// The comparison inverted between 1.5 and 1.6; both are reproduced,
	// not reconciled.
	if v.AtLeast(version.V1_6) {
		if r < 0.5 {
			return treasure(&g, typ, n, v)
		}
	} else if r >= 0.5 {
		return treasure(&g, typ, n, v)
	}
	return oreSide(&g, typ)
}

// oreSide reproduces the stone/clay/mineral-ore branch: three stack-size
// draws first, then the split between construction materials and ore.
func oreSide(g *rng.Subtractive, typ GeodeType) GeodeResult {
	ore := tables.OreIDs()

	stack := g.NextIn(0, 3)*2 + 1
	if g.NextDouble() < 0.1 {
		stack = 10
	}
	if g.NextDouble() < 0.01 {
		stack = 20
	}

	if g.NextDouble() < 0.5 {
		switch g.NextIn(0, 4) {
		case 0, 1:
			return GeodeResult{ID: ore.Stone, Quantity: stack}
		case 2:
			return GeodeResult{ID: ore.Clay, Quantity: 1}
		default:
			switch typ {
			case GeodeFrozen:
				return GeodeResult{ID: ore.FrozenTear, Quantity: 1}
			case GeodeMagma:
				return GeodeResult{ID: ore.FireQuartz, Quantity: 1}
			case GeodeOmni:
				switch g.NextIn(0, 3) {
				case 0:
					return GeodeResult{ID: ore.EarthCrystal, Quantity: 1}
				case 1:
					return GeodeResult{ID: ore.FrozenTear, Quantity: 1}
				default:
					return GeodeResult{ID: ore.FireQuartz, Quantity: 1}
				}
			default:
				return GeodeResult{ID: ore.EarthCrystal, Quantity: 1}
			}
		}
	}

	switch typ {
	case GeodeFrozen:
		switch g.NextIn(0, 3) {
		case 0:
			return GeodeResult{ID: ore.Copper, Quantity: stack}
		case 1:
			return GeodeResult{ID: ore.Iron, Quantity: stack}
		default:
			return GeodeResult{ID: ore.Gold, Quantity: stack}
		}
	case GeodeMagma:
		switch g.NextIn(0, 3) {
		case 0:
			return GeodeResult{ID: ore.Iron, Quantity: stack}
		case 1:
			return GeodeResult{ID: ore.Gold, Quantity: stack}
		default:
			return GeodeResult{ID: ore.Iridium, Quantity: stack}
		}
	case GeodeOmni:
		switch g.NextIn(0, 4) {
		case 0:
			return GeodeResult{ID: ore.Copper, Quantity: stack}
		case 1:
			return GeodeResult{ID: ore.Iron, Quantity: stack}
		case 2:
			return GeodeResult{ID: ore.Gold, Quantity: stack}
		default:
			return GeodeResult{ID: ore.Iridium, Quantity: stack}
		}
	default:
		switch g.NextIn(0, 3) {
		case 0:
			return GeodeResult{ID: ore.Copper, Quantity: stack}
		case 1:
			return GeodeResult{ID: ore.Iron, Quantity: stack}
		default:
			return GeodeResult{ID: ore.Coal, Quantity: stack}
		}
	}
}

// treasure samples the per-type drop table, with the 1.6 omni prismatic
// special case ahead of the table draw.
func treasure(g *rng.Subtractive, typ GeodeType, n int, v version.Version) GeodeResult {
	if typ == GeodeOmni && v.AtLeast(version.V1_6) && n > 15 && g.NextDouble() < 0.008 {
		return GeodeResult{ID: tables.OreIDs().PrismaticShard, Quantity: 1}
	}

	list := tables.GeodeTreasures(string(typ))
	item := list[g.NextIn(0, int32(len(list)))]

	qty := int32(1)
	if typ == GeodeCoconut {
		qty = tables.CoconutQuantity(item)
	}
	return GeodeResult{ID: item, Quantity: qty}
}
