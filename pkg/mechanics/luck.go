package mechanics

import "valley-oracle/pkg/rng"

// Dish is the saloon dish of the day.
type Dish struct {
	ID       int32 `json:"id"`
	Quantity int32 `json:"quantity"`
}

// maxDailyLuck caps the luck roll; the raw draw reaches 0.100 but the
// game clamps there.
const maxDailyLuck = 0.1

// Dish ids the selection loop rejects and redraws. Some of these cannot
// be produced by the 194..239 roll at all; the set is carried verbatim
// because the membership test is part of the draw sequence.
var rejectedDishIDs = map[int32]bool{
	346: true,
	196: true,
	216: true,
	224: true,
	206: true,
	395: true,
	217: true,
}

// dayRoll replays the morning RNG for a day: the advance for the previous
// day-of-month, the dish selection, the quantity draws, one discarded
// object-constructor sample, and finally the luck roll. Dish and luck
// share this generator, so both come from one replay and the dish query
// is simply a prefix of the luck query.
func dayRoll(gameSeed int32, day int) (Dish, float64) {
	g := rng.New(gameSeed/100 + int32(day-1)*10 + 1)

	if day > 1 {
		for i, n := 0, DayOfMonth(day-1); i < n; i++ {
			g.NextDouble()
		}
	}

	dish := g.NextIn(194, 240)
	for rejectedDishIDs[dish] {
		dish = g.NextIn(194, 240)
	}

	var bonus int32
	if g.NextDouble() < 0.08 {
		bonus = 10
	}
	qty := g.NextIn(1, 4+bonus)

	g.NextDouble() // object constructor sample

	roll := g.NextIn(-100, 101)
	luck := float64(roll) / 1000.0
	if luck > maxDailyLuck {
		luck = maxDailyLuck
	}

	return Dish{ID: dish, Quantity: qty}, luck
}

// DailyLuck returns the day's luck in [-0.1, 0.1].
func DailyLuck(gameSeed int32, day int) float64 {
	_, luck := dayRoll(gameSeed, day)
	return luck
}

// DishOfDay returns the saloon dish and its stocked quantity.
func DishOfDay(gameSeed int32, day int) Dish {
	dish, _ := dayRoll(gameSeed, day)
	return dish
}
