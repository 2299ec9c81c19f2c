package search

import (
	"valley-oracle/pkg/mechanics"
	"valley-oracle/pkg/predict"
	"valley-oracle/pkg/version"
)

// Evaluator tests one seed against a parsed filter. It holds only the
// game version, so a single value is safe to use from many goroutines.
type Evaluator struct {
	Version version.Version
}

// Matches reports whether the seed satisfies the filter.
func (e Evaluator) Matches(root *Group, seed int32) bool {
	return e.evalGroup(root, seed)
}

func (e Evaluator) evalGroup(g *Group, seed int32) bool {
	if g.Logic == LogicOr {
		for _, child := range g.Children {
			if e.evalNode(child, seed) {
				return true
			}
		}
		return false
	}
	for _, child := range g.Children {
		if !e.evalNode(child, seed) {
			return false
		}
	}
	return true
}

func (e Evaluator) evalNode(n Node, seed int32) bool {
	if n.Group != nil {
		return e.evalGroup(n.Group, seed)
	}
	return e.evalCondition(n.Condition, seed)
}

// evalCondition iterates the condition's day range and succeeds on the
// first satisfying day. Inverted ranges simply iterate zero days.
func (e Evaluator) evalCondition(c *Condition, seed int32) bool {
	switch c.Type {
	case CondDailyLuck:
		for day := c.DayStart; day <= c.DayEnd; day++ {
			luck := mechanics.DailyLuck(seed, day)
			if luck >= c.MinLuck && luck <= c.MaxLuck {
				return true
			}
		}

	case CondNightEvent:
		for day := c.DayStart; day <= c.DayEnd; day++ {
			ev := mechanics.NightEventFor(seed, day, e.Version)
			if c.EventType == "any" {
				if ev != mechanics.EventNone {
					return true
				}
			} else if ev == mechanics.NightEvent(c.EventType) {
				return true
			}
		}

	case CondCartItem:
		for day := c.DayStart; day <= c.DayEnd; day++ {
			if !mechanics.IsCartDay(day, e.Version) {
				continue
			}
			for _, item := range mechanics.Cart(seed, day, e.Version) {
				if item.ID != c.ItemID {
					continue
				}
				if c.MaxPrice != nil && item.Price > *c.MaxPrice {
					continue
				}
				return true
			}
		}

	case CondGeode:
		res := mechanics.Geode(seed, c.GeodeNumber, c.GeodeType, e.Version, 0)
		for _, want := range c.TargetItems {
			if res.ID == want {
				return true
			}
		}

	case CondDishOfDay:
		for day := c.DayStart; day <= c.DayEnd; day++ {
			if mechanics.DishOfDay(seed, day).ID == c.DishID {
				return true
			}
		}

	case CondWeather:
		for day := c.DayStart; day <= c.DayEnd; day++ {
			w := mechanics.WeatherFor(seed, day, e.Version)
			if c.WeatherType == "any" {
				if !w.IsSunny() {
					return true
				}
			} else if w == mechanics.Weather(c.WeatherType) {
				return true
			}
		}

	case CondMineFloor:
		for day := c.DayStart; day <= c.DayEnd; day++ {
			if e.mineFloorDayOK(c, seed, day) {
				return true
			}
		}
	}

	return false
}

func (e Evaluator) mineFloorDayOK(c *Condition, seed int32, day int) bool {
	if c.NoMonsters && len(predict.FindMonsterFloors(seed, day, c.FloorStart, c.FloorEnd, e.Version)) > 0 {
		return false
	}
	if c.NoDark && len(predict.FindDarkFloors(seed, day, c.FloorStart, c.FloorEnd, e.Version)) > 0 {
		return false
	}
	if c.HasMushroom {
		lo := max(c.FloorStart, 81)
		if len(predict.FindMushroomFloors(seed, day, lo, c.FloorEnd, e.Version)) == 0 {
			return false
		}
	}
	return true
}
