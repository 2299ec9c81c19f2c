package mechanics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"valley-oracle/pkg/tables"
	"valley-oracle/pkg/version"
)

func TestCart_NonCartDayIsNil(t *testing.T) {
	for _, v := range version.Supported {
		assert.Nil(t, Cart(12345, 1, v), "version %s", v)
		assert.Nil(t, Cart(12345, 3, v), "version %s", v)
	}
}

func TestCart_TenSlotsAndLegalQuantities(t *testing.T) {
	for _, v := range version.Supported {
		for _, day := range []int{5, 7, 12, 14} {
			cart := Cart(12345, day, v)
			require.Lenf(t, cart, 10, "version %s day %d", v, day)
			for _, item := range cart {
				assert.Contains(t, []int32{1, 5}, item.Quantity)
				assert.Positive(t, item.Price)
				assert.GreaterOrEqual(t, item.Price, int32(100), "floor is 1*100")
			}
		}
	}
}

func TestCart_Pre14UsesRollTable(t *testing.T) {
	cart := Cart(999, 5, version.V1_3)
	require.Len(t, cart, 10)
	// Every slot must be reachable through the dense roll table.
	reachable := make(map[int32]bool)
	for roll := int32(2); roll <= 789; roll++ {
		reachable[tables.RollToID(roll)] = true
	}
	for _, item := range cart {
		assert.True(t, reachable[item.ID], "id %d not in roll table image", item.ID)
	}
}

func TestCart_14SlotsDistinctAndLegal(t *testing.T) {
	for _, v := range []version.Version{version.V1_4, version.V1_5, version.V1_5_3} {
		for seed := int32(1); seed <= 200; seed++ {
			cart := Cart(seed, 7, v)
			require.Len(t, cart, 10)
			seen := make(map[int32]bool)
			for _, item := range cart {
				assert.False(t, seen[item.ID], "duplicate id %d seed %d", item.ID, seed)
				seen[item.ID] = true
				assert.True(t, tables.IsCartLegal14(item.ID), "illegal id %d", item.ID)
			}
		}
	}
}

func TestCart_16SlotsDistinctAndFiltered(t *testing.T) {
	byID := make(map[int32]tables.Object)
	for _, o := range tables.Objects16() {
		byID[o.ID] = o
	}

	for seed := int32(1); seed <= 200; seed++ {
		cart := Cart(seed, 5, version.V1_6)
		require.Len(t, cart, 10)
		seen := make(map[int32]bool)
		for _, item := range cart {
			require.False(t, seen[item.ID], "duplicate id %d seed %d", item.ID, seed)
			seen[item.ID] = true

			o, ok := byID[item.ID]
			require.Truef(t, ok, "id %d not in catalog", item.ID)
			assert.Positive(t, o.Price)
			assert.False(t, o.Offlimits)
			assert.Negative(t, o.Category)
			assert.NotEqual(t, int32(-999), o.Category)
			assert.False(t, o.TypeExcluded())
		}
	}
}

func TestCart_Deterministic(t *testing.T) {
	for _, v := range version.Supported {
		assert.Equal(t, Cart(31337, 7, v), Cart(31337, 7, v), "version %s", v)
	}
}

func TestCart_VersionsDiverge(t *testing.T) {
	// Three different selection algorithms over the same seed/day should
	// not agree on the full slot list.
	a := Cart(12345, 5, version.V1_3)
	b := Cart(12345, 5, version.V1_4)
	c := Cart(12345, 5, version.V1_6)
	assert.NotEqual(t, a, b)
	assert.NotEqual(t, b, c)
}

func TestCart_NightMarketOnlyOn16(t *testing.T) {
	day := 100 // winter 16, year 1; Tuesday
	require.Equal(t, 2, DayOfWeek(day))
	assert.Nil(t, Cart(12345, day, version.V1_5))
	assert.Len(t, Cart(12345, day, version.V1_6), 10)
}
