package mechanics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"valley-oracle/pkg/tables"
	"valley-oracle/pkg/version"
)

// possibleDrops returns every id a geode type can legally produce.
func possibleDrops(typ GeodeType) map[int32]bool {
	out := make(map[int32]bool)
	for _, id := range tables.GeodeTreasures(string(typ)) {
		out[id] = true
	}
	if typ == GeodeTrove || typ == GeodeCoconut {
		return out
	}
	ore := tables.OreIDs()
	for _, id := range []int32{ore.Stone, ore.Clay, ore.Coal, ore.Copper,
		ore.Iron, ore.Gold, ore.Iridium, ore.EarthCrystal, ore.FrozenTear,
		ore.FireQuartz, ore.PrismaticShard} {
		out[id] = true
	}
	return out
}

func TestGeode_DropsComeFromTypeTables(t *testing.T) {
	for _, typ := range GeodeTypes {
		legal := possibleDrops(typ)
		for _, v := range version.Supported {
			for n := 1; n <= 100; n++ {
				res := Geode(12345, n, typ, v, 0)
				require.Truef(t, legal[res.ID], "type %s version %s n %d produced %d",
					typ, v, n, res.ID)
				require.Positive(t, res.Quantity)
			}
		}
	}
}

func TestGeode_Deterministic(t *testing.T) {
	for _, typ := range GeodeTypes {
		for n := 1; n <= 20; n++ {
			assert.Equal(t, Geode(777, n, typ, version.V1_6, 0), Geode(777, n, typ, version.V1_6, 0))
		}
	}
}

func TestGeode_VersionChangesSequence(t *testing.T) {
	// 1.5 seeds additively, 1.6 through the hash; over a run of indexes
	// the two sequences must differ.
	var diverged bool
	for n := 1; n <= 50; n++ {
		if Geode(12345, n, GeodeOmni, version.V1_5, 0) != Geode(12345, n, GeodeOmni, version.V1_6, 0) {
			diverged = true
			break
		}
	}
	assert.True(t, diverged)
}

func TestGeode_PlayerIDOnlyMattersOn16(t *testing.T) {
	for n := 1; n <= 30; n++ {
		assert.Equal(t,
			Geode(555, n, GeodeRegular, version.V1_5, 0),
			Geode(555, n, GeodeRegular, version.V1_5, 99999),
			"player id must not affect pre-1.6 seeding")
	}

	var differs bool
	for n := 1; n <= 50; n++ {
		if Geode(555, n, GeodeRegular, version.V1_6, 0) != Geode(555, n, GeodeRegular, version.V1_6, 99999) {
			differs = true
			break
		}
	}
	assert.True(t, differs, "player id must participate in 1.6 seeding")
}

func TestGeode_TrovesSkipOreSide(t *testing.T) {
	treasures := make(map[int32]bool)
	for _, id := range tables.GeodeTreasures("trove") {
		treasures[id] = true
	}
	for n := 1; n <= 200; n++ {
		res := Geode(98765, n, GeodeTrove, version.V1_5, 0)
		require.True(t, treasures[res.ID], "trove produced non-treasure %d", res.ID)
		require.Equal(t, int32(1), res.Quantity)
	}
}

func TestGeode_CoconutQuantities(t *testing.T) {
	for n := 1; n <= 200; n++ {
		res := Geode(13579, n, GeodeCoconut, version.V1_6, 0)
		assert.Equal(t, tables.CoconutQuantity(res.ID), res.Quantity)
	}
}

func TestGeodeType_Valid(t *testing.T) {
	for _, typ := range GeodeTypes {
		assert.True(t, typ.Valid())
	}
	assert.False(t, GeodeType("lava").Valid())
	assert.False(t, GeodeType("").Valid())
}
