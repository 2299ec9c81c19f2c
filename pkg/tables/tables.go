// Package tables holds the static per-version item catalogs: the ordered
// object list driving the 1.6 cart shuffle, the legal-item set for the
// 1.4/1.5 cart, the dense pre-1.4 roll-to-id table, and the geode drop
// tables. All of it is generated data compiled into the binary, parsed
// exactly once at package init, and read-only afterwards.
package tables

import (
	"embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed data/*.yaml
var dataFS embed.FS

// Object is one row of the 1.6 catalog. The position of a row in the
// catalog is an observable contract: the cart shuffle draws one key per
// row in catalog order, including rows it then rejects.
type Object struct {
	ID        int32  `yaml:"id"`
	Price     int32  `yaml:"price"`
	Offlimits bool   `yaml:"offlimits"`
	Category  int32  `yaml:"category"`
	Type      string `yaml:"type"`
}

// TypeExcluded reports whether the object's type bars it from the 1.6
// cart regardless of price.
func (o Object) TypeExcluded() bool {
	switch o.Type {
	case "Arch", "Minerals", "Quest":
		return true
	}
	return false
}

// Ore holds the ids the geode ore branch can produce.
type Ore struct {
	Stone          int32 `yaml:"stone"`
	Clay           int32 `yaml:"clay"`
	Coal           int32 `yaml:"coal"`
	Copper         int32 `yaml:"copper"`
	Iron           int32 `yaml:"iron"`
	Gold           int32 `yaml:"gold"`
	Iridium        int32 `yaml:"iridium"`
	EarthCrystal   int32 `yaml:"earth_crystal"`
	FrozenTear     int32 `yaml:"frozen_tear"`
	FireQuartz     int32 `yaml:"fire_quartz"`
	Quartz         int32 `yaml:"quartz"`
	PrismaticShard int32 `yaml:"prismatic_shard"`
}

var (
	objects16   []Object
	priceByID   map[int32]int32
	cartLegal14 map[int32]bool
	rollToID    []int32

	geodeTreasures map[string][]int32
	coconutQty     map[int32]int32
	ore            Ore
)

func init() {
	if err := load(); err != nil {
		// Embedded data failing to parse is a build defect, not a
		// runtime condition.
		panic(fmt.Sprintf("tables: %v", err))
	}
}

func load() error {
	var objDoc struct {
		Objects []Object `yaml:"objects"`
	}
	if err := unmarshalFile("data/objects_1_6.yaml", &objDoc); err != nil {
		return err
	}
	objects16 = objDoc.Objects

	priceByID = make(map[int32]int32, len(objects16))
	for _, o := range objects16 {
		priceByID[o.ID] = o.Price
	}

	var legalDoc struct {
		Items [][]int32 `yaml:"items"`
	}
	if err := unmarshalFile("data/cart_legal_1_4.yaml", &legalDoc); err != nil {
		return err
	}
	cartLegal14 = make(map[int32]bool)
	for _, row := range legalDoc.Items {
		for _, id := range row {
			cartLegal14[id] = true
		}
	}

	var rollDoc struct {
		Rolls [][]int32 `yaml:"rolls"`
	}
	if err := unmarshalFile("data/cart_roll_pre14.yaml", &rollDoc); err != nil {
		return err
	}
	rollToID = rollToID[:0]
	for _, row := range rollDoc.Rolls {
		rollToID = append(rollToID, row...)
	}
	if len(rollToID) != 788 {
		return fmt.Errorf("cart_roll_pre14: want 788 entries, have %d", len(rollToID))
	}

	var geodeDoc struct {
		Ore               Ore                `yaml:"ore"`
		Treasures         map[string][]int32 `yaml:"treasures"`
		CoconutQuantities map[int32]int32    `yaml:"coconut_quantities"`
	}
	if err := unmarshalFile("data/geodes.yaml", &geodeDoc); err != nil {
		return err
	}
	ore = geodeDoc.Ore
	geodeTreasures = geodeDoc.Treasures
	coconutQty = geodeDoc.CoconutQuantities

	return nil
}

func unmarshalFile(name string, out interface{}) error {
	data, err := dataFS.ReadFile(name)
	if err != nil {
		return fmt.Errorf("read %s: %w", name, err)
	}
	if err := yaml.Unmarshal(data, out); err != nil {
		return fmt.Errorf("parse %s: %w", name, err)
	}
	return nil
}

// Objects16 returns the ordered 1.6 catalog. Callers must not mutate the
// returned slice.
func Objects16() []Object {
	return objects16
}

// PriceOf returns the catalog price for an item id, or 0 for unknown ids.
func PriceOf(id int32) int32 {
	return priceByID[id]
}

// IsCartLegal14 reports membership in the 1.4/1.5 legal cart set.
func IsCartLegal14(id int32) bool {
	return cartLegal14[id]
}

// CartLegal14Size returns the number of ids in the 1.4/1.5 legal set.
func CartLegal14Size() int {
	return len(cartLegal14)
}

// RollToID maps a pre-1.4 cart roll in [2, 789] to its item id.
func RollToID(roll int32) int32 {
	return rollToID[roll-2]
}

// GeodeTreasures returns the treasure-side drop list for a geode type
// name (regular, frozen, magma, omni, trove, coconut). Callers must not
// mutate the returned slice.
func GeodeTreasures(geodeType string) []int32 {
	return geodeTreasures[geodeType]
}

// CoconutQuantity returns the stack size a golden-coconut drop carries,
// defaulting to 1.
func CoconutQuantity(id int32) int32 {
	if q, ok := coconutQty[id]; ok {
		return q
	}
	return 1
}

// OreIDs returns the ore-branch id table.
func OreIDs() Ore {
	return ore
}
