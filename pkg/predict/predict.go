// Package predict is the public prediction surface: range-style queries
// over days, geode sequences, and mine floors, all thin compositions of
// pkg/mechanics. Inverted ranges are normalized to empty results; negative
// counts and indexes are programmer errors and fail loudly.
package predict

import (
	"fmt"

	"valley-oracle/pkg/mechanics"
	"valley-oracle/pkg/version"
)

// DayPrediction bundles everything rolled for a single day. Cart is nil
// on days the traveling cart does not appear.
type DayPrediction struct {
	Day        int                  `json:"day"`
	Info       string               `json:"info"`
	Luck       float64              `json:"luck"`
	Dish       mechanics.Dish       `json:"dish"`
	Weather    mechanics.Weather    `json:"weather"`
	NightEvent mechanics.NightEvent `json:"night_event"`
	Cart       []mechanics.CartItem `json:"cart,omitempty"`
}

// DayLuck pairs a day with its luck value.
type DayLuck struct {
	Day  int     `json:"day"`
	Luck float64 `json:"luck"`
}

// DayDish pairs a day with its saloon dish.
type DayDish struct {
	Day  int            `json:"day"`
	Dish mechanics.Dish `json:"dish"`
}

// DayWeather pairs a day with its forecast.
type DayWeather struct {
	Day     int               `json:"day"`
	Weather mechanics.Weather `json:"weather"`
}

// DayEvent pairs a day with its scheduled night event.
type DayEvent struct {
	Day   int                  `json:"day"`
	Event mechanics.NightEvent `json:"event"`
}

// DayCart pairs a cart day with its ten slots.
type DayCart struct {
	Day   int                  `json:"day"`
	Items []mechanics.CartItem `json:"items"`
}

// Day predicts everything for one (seed, day).
func Day(seed int32, day int, v version.Version) DayPrediction {
	return DayPrediction{
		Day:        day,
		Info:       mechanics.DayInfo(day),
		Luck:       mechanics.DailyLuck(seed, day),
		Dish:       mechanics.DishOfDay(seed, day),
		Weather:    mechanics.WeatherFor(seed, day, v),
		NightEvent: mechanics.NightEventFor(seed, day, v),
		Cart:       mechanics.Cart(seed, day, v),
	}
}

// LuckRange predicts luck for every day in [dayLo, dayHi].
func LuckRange(seed int32, dayLo, dayHi int) []DayLuck {
	out := make([]DayLuck, 0, rangeLen(dayLo, dayHi))
	for day := dayLo; day <= dayHi; day++ {
		out = append(out, DayLuck{Day: day, Luck: mechanics.DailyLuck(seed, day)})
	}
	return out
}

// DishRange predicts the saloon dish for every day in [dayLo, dayHi].
func DishRange(seed int32, dayLo, dayHi int) []DayDish {
	out := make([]DayDish, 0, rangeLen(dayLo, dayHi))
	for day := dayLo; day <= dayHi; day++ {
		out = append(out, DayDish{Day: day, Dish: mechanics.DishOfDay(seed, day)})
	}
	return out
}

// WeatherRange predicts weather for every day in [dayLo, dayHi].
func WeatherRange(seed int32, dayLo, dayHi int, v version.Version) []DayWeather {
	out := make([]DayWeather, 0, rangeLen(dayLo, dayHi))
	for day := dayLo; day <= dayHi; day++ {
		out = append(out, DayWeather{Day: day, Weather: mechanics.WeatherFor(seed, day, v)})
	}
	return out
}

// NightEventsRange predicts the night event for every day in [dayLo, dayHi].
func NightEventsRange(seed int32, dayLo, dayHi int, v version.Version) []DayEvent {
	out := make([]DayEvent, 0, rangeLen(dayLo, dayHi))
	for day := dayLo; day <= dayHi; day++ {
		out = append(out, DayEvent{Day: day, Event: mechanics.NightEventFor(seed, day, v)})
	}
	return out
}

// CartRange predicts the cart for every cart day in [dayLo, dayHi];
// non-cart days are skipped, not emitted empty.
func CartRange(seed int32, dayLo, dayHi int, v version.Version) []DayCart {
	var out []DayCart
	for day := dayLo; day <= dayHi; day++ {
		if items := mechanics.Cart(seed, day, v); items != nil {
			out = append(out, DayCart{Day: day, Items: items})
		}
	}
	return out
}

// Geodes predicts `count` consecutive geodes of one type starting at
// index `start` (1-based).
func Geodes(seed int32, start, count int, typ mechanics.GeodeType, v version.Version) ([]mechanics.GeodeResult, error) {
	if start < 1 {
		return nil, fmt.Errorf("geode index must be >= 1, have %d", start)
	}
	if count < 0 {
		return nil, fmt.Errorf("geode count must be >= 0, have %d", count)
	}
	if !typ.Valid() {
		return nil, fmt.Errorf("unknown geode type %q", typ)
	}

	out := make([]mechanics.GeodeResult, 0, count)
	for n := start; n < start+count; n++ {
		out = append(out, mechanics.Geode(seed, n, typ, v, 0))
	}
	return out, nil
}

// MineFloors returns the full floor records for [floorLo, floorHi].
func MineFloors(seed int32, day, floorLo, floorHi int, v version.Version) []mechanics.FloorRecord {
	return mechanics.MineFloors(seed, day, floorLo, floorHi, v)
}

// FindMonsterFloors returns the levels in [floorLo, floorHi] flagged as
// monster (or slime) floors.
func FindMonsterFloors(seed int32, day, floorLo, floorHi int, v version.Version) []int {
	return filterFloors(seed, day, floorLo, floorHi, v, func(r mechanics.FloorRecord) bool {
		return r.IsMonster
	})
}

// FindDarkFloors returns the levels in [floorLo, floorHi] flagged dark.
func FindDarkFloors(seed int32, day, floorLo, floorHi int, v version.Version) []int {
	return filterFloors(seed, day, floorLo, floorHi, v, func(r mechanics.FloorRecord) bool {
		return r.IsDark
	})
}

// FindMushroomFloors returns the levels in [floorLo, floorHi] flagged as
// mushroom floors.
func FindMushroomFloors(seed int32, day, floorLo, floorHi int, v version.Version) []int {
	return filterFloors(seed, day, floorLo, floorHi, v, func(r mechanics.FloorRecord) bool {
		return r.IsMushroom
	})
}

// FindItemInCart scans forward from day 1 for the first cart stocking the
// item, returning its day and price. found is false when maxDays passes
// without a hit.
func FindItemInCart(seed int32, itemID int32, maxDays int, v version.Version) (day int, price int32, found bool) {
	for d := 1; d <= maxDays; d++ {
		for _, item := range mechanics.Cart(seed, d, v) {
			if item.ID == itemID {
				return d, item.Price, true
			}
		}
	}
	return 0, 0, false
}

func filterFloors(seed int32, day, lo, hi int, v version.Version, keep func(mechanics.FloorRecord) bool) []int {
	var out []int
	for _, rec := range mechanics.MineFloors(seed, day, lo, hi, v) {
		if keep(rec) {
			out = append(out, rec.Floor)
		}
	}
	return out
}

func rangeLen(lo, hi int) int {
	if hi < lo {
		return 0
	}
	return hi - lo + 1
}
