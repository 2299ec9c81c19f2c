// Package search implements the filter language and the bounded seed
// search loop: a JSON filter is parsed once into an AST, evaluated per
// seed as a short-circuiting tagged-variant walk, and driven over a seed
// interval with progress and match callbacks for cooperative control.
package search

import (
	"encoding/json"
	"fmt"

	"valley-oracle/pkg/mechanics"
)

// Logic tags a filter node on the wire.
type Logic string

const (
	LogicAnd Logic = "and"
	LogicOr  Logic = "or"

	logicCondition Logic = "condition"
)

// ConditionType tags a leaf condition.
type ConditionType string

const (
	CondDailyLuck  ConditionType = "daily_luck"
	CondNightEvent ConditionType = "night_event"
	CondCartItem   ConditionType = "cart_item"
	CondGeode      ConditionType = "geode"
	CondDishOfDay  ConditionType = "dish_of_day"
	CondWeather    ConditionType = "weather"
	CondMineFloor  ConditionType = "mine_floor"
)

// Group is an AND/OR over child nodes. An AND with no children is true;
// an OR with no children is false.
type Group struct {
	Logic    Logic
	Children []Node
}

// Node is either a nested group or a leaf condition; exactly one field
// is set.
type Node struct {
	Group     *Group
	Condition *Condition
}

// Condition is a leaf test. Only the fields for its Type are meaningful.
type Condition struct {
	Type ConditionType

	DayStart int
	DayEnd   int

	MinLuck float64
	MaxLuck float64

	EventType string

	ItemID   int32
	MaxPrice *int32

	GeodeNumber int
	GeodeType   mechanics.GeodeType
	TargetItems []int32

	DishID int32

	WeatherType string

	FloorStart  int
	FloorEnd    int
	NoMonsters  bool
	NoDark      bool
	HasMushroom bool
}

// ParseError is a structured filter rejection naming the offending node.
type ParseError struct {
	Path    string
	Message string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("filter: %s: %s", e.Path, e.Message)
}

func parseErrf(path, format string, args ...interface{}) error {
	return &ParseError{Path: path, Message: fmt.Sprintf(format, args...)}
}

// rawNode mirrors the wire shape of both groups and conditions. Pointer
// fields distinguish absent from zero so missing required fields can be
// reported precisely.
type rawNode struct {
	Logic      *string           `json:"logic"`
	Conditions []json.RawMessage `json:"conditions"`

	Type *string `json:"type"`

	DayStart *int `json:"day_start"`
	DayEnd   *int `json:"day_end"`

	MinLuck *float64 `json:"min_luck"`
	MaxLuck *float64 `json:"max_luck"`

	EventType *string `json:"event_type"`

	ItemID   *int32 `json:"item_id"`
	MaxPrice *int32 `json:"max_price"`

	GeodeNumber *int     `json:"geode_number"`
	GeodeType   *string  `json:"geode_type"`
	TargetItems *[]int32 `json:"target_items"`

	DishID *int32 `json:"dish_id"`

	WeatherType *string `json:"weather_type"`

	FloorStart  *int  `json:"floor_start"`
	FloorEnd    *int  `json:"floor_end"`
	NoMonsters  *bool `json:"no_monsters"`
	NoDark      *bool `json:"no_dark"`
	HasMushroom *bool `json:"has_mushroom"`
}

// Parse converts filter JSON into an AST, or returns a *ParseError
// identifying the offending node. The root must be a group.
func Parse(data []byte) (*Group, error) {
	node, err := parseNode(data, "$")
	if err != nil {
		return nil, err
	}
	if node.Group == nil {
		return nil, parseErrf("$", "root must be a group with logic \"and\" or \"or\"")
	}
	return node.Group, nil
}

func parseNode(data json.RawMessage, path string) (Node, error) {
	var raw rawNode
	if err := json.Unmarshal(data, &raw); err != nil {
		return Node{}, parseErrf(path, "malformed node: %v", err)
	}
	if raw.Logic == nil {
		return Node{}, parseErrf(path, "missing required field \"logic\"")
	}

	switch Logic(*raw.Logic) {
	case LogicAnd, LogicOr:
		group := &Group{Logic: Logic(*raw.Logic)}
		for i, child := range raw.Conditions {
			node, err := parseNode(child, fmt.Sprintf("%s.conditions[%d]", path, i))
			if err != nil {
				return Node{}, err
			}
			group.Children = append(group.Children, node)
		}
		return Node{Group: group}, nil
	case logicCondition:
		cond, err := parseCondition(&raw, path)
		if err != nil {
			return Node{}, err
		}
		return Node{Condition: cond}, nil
	default:
		return Node{}, parseErrf(path, "unknown logic %q", *raw.Logic)
	}
}

var knownEventTargets = map[string]bool{
	"any": true, "fairy": true, "witch": true, "meteor": true,
	"ufo": true, "owl": true, "earthquake": true,
}

var knownWeatherTargets = map[string]bool{
	"any": true, "sun": true, "rain": true, "storm": true,
	"snow": true, "wind": true, "festival": true,
}

func parseCondition(raw *rawNode, path string) (*Condition, error) {
	if raw.Type == nil {
		return nil, parseErrf(path, "missing required field \"type\"")
	}
	cond := &Condition{Type: ConditionType(*raw.Type)}

	dayRange := func() error {
		if raw.DayStart == nil {
			return parseErrf(path, "missing required field \"day_start\"")
		}
		if raw.DayEnd == nil {
			return parseErrf(path, "missing required field \"day_end\"")
		}
		if *raw.DayStart < 1 || *raw.DayEnd < 1 {
			return parseErrf(path, "day range must be positive, have [%d, %d]", *raw.DayStart, *raw.DayEnd)
		}
		cond.DayStart, cond.DayEnd = *raw.DayStart, *raw.DayEnd
		return nil
	}

	switch cond.Type {
	case CondDailyLuck:
		if err := dayRange(); err != nil {
			return nil, err
		}
		if raw.MinLuck == nil || raw.MaxLuck == nil {
			return nil, parseErrf(path, "daily_luck requires \"min_luck\" and \"max_luck\"")
		}
		cond.MinLuck, cond.MaxLuck = *raw.MinLuck, *raw.MaxLuck

	case CondNightEvent:
		if err := dayRange(); err != nil {
			return nil, err
		}
		if raw.EventType == nil {
			return nil, parseErrf(path, "missing required field \"event_type\"")
		}
		if !knownEventTargets[*raw.EventType] {
			return nil, parseErrf(path, "unknown event_type %q", *raw.EventType)
		}
		cond.EventType = *raw.EventType

	case CondCartItem:
		if err := dayRange(); err != nil {
			return nil, err
		}
		if raw.ItemID == nil {
			return nil, parseErrf(path, "missing required field \"item_id\"")
		}
		cond.ItemID = *raw.ItemID
		cond.MaxPrice = raw.MaxPrice

	case CondGeode:
		if raw.GeodeNumber == nil {
			return nil, parseErrf(path, "missing required field \"geode_number\"")
		}
		if *raw.GeodeNumber < 1 {
			return nil, parseErrf(path, "geode_number must be >= 1, have %d", *raw.GeodeNumber)
		}
		if raw.GeodeType == nil {
			return nil, parseErrf(path, "missing required field \"geode_type\"")
		}
		if !mechanics.GeodeType(*raw.GeodeType).Valid() {
			return nil, parseErrf(path, "unknown geode_type %q", *raw.GeodeType)
		}
		if raw.TargetItems == nil {
			return nil, parseErrf(path, "missing required field \"target_items\"")
		}
		cond.GeodeNumber = *raw.GeodeNumber
		cond.GeodeType = mechanics.GeodeType(*raw.GeodeType)
		cond.TargetItems = *raw.TargetItems

	case CondDishOfDay:
		if err := dayRange(); err != nil {
			return nil, err
		}
		if raw.DishID == nil {
			return nil, parseErrf(path, "missing required field \"dish_id\"")
		}
		cond.DishID = *raw.DishID

	case CondWeather:
		if err := dayRange(); err != nil {
			return nil, err
		}
		if raw.WeatherType == nil {
			return nil, parseErrf(path, "missing required field \"weather_type\"")
		}
		if !knownWeatherTargets[*raw.WeatherType] {
			return nil, parseErrf(path, "unknown weather_type %q", *raw.WeatherType)
		}
		cond.WeatherType = *raw.WeatherType

	case CondMineFloor:
		if err := dayRange(); err != nil {
			return nil, err
		}
		if raw.FloorStart == nil || raw.FloorEnd == nil {
			return nil, parseErrf(path, "mine_floor requires \"floor_start\" and \"floor_end\"")
		}
		cond.FloorStart, cond.FloorEnd = *raw.FloorStart, *raw.FloorEnd
		if raw.NoMonsters != nil {
			cond.NoMonsters = *raw.NoMonsters
		}
		if raw.NoDark != nil {
			cond.NoDark = *raw.NoDark
		}
		if raw.HasMushroom != nil {
			cond.HasMushroom = *raw.HasMushroom
		}

	default:
		return nil, parseErrf(path, "unknown condition type %q", *raw.Type)
	}

	return cond, nil
}
