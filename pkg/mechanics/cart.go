package mechanics

import (
	"sort"

	"github.com/sirupsen/logrus"

	"valley-oracle/pkg/rng"
	"valley-oracle/pkg/tables"
	"valley-oracle/pkg/version"
)

// CartItem is one of the ten traveling-cart slots.
type CartItem struct {
	ID       int32 `json:"id"`
	Price    int32 `json:"price"`
	Quantity int32 `json:"quantity"`
}

const cartSlots = 10

// Cart returns the ten cart slots for a day, or nil when the cart is not
// present. Slot order matches the game's fill order.
func Cart(gameSeed int32, day int, v version.Version) []CartItem {
	if !IsCartDay(day, v) {
		return nil
	}
	switch {
	case v.Before(version.V1_4):
		return cartPre14(gameSeed, day)
	case v.Before(version.V1_6):
		return cart14(gameSeed, day)
	default:
		return cart16(gameSeed, day)
	}
}

// priceAndQuantity performs the three post-selection draws every version
// shares. All three happen for every slot even when the caller only wants
// the item id.
func priceAndQuantity(g *rng.Subtractive, id int32) (int32, int32) {
	p1 := g.NextIn(1, 11)
	p2 := g.NextIn(3, 6)
	price := p1 * 100
	if base := p2 * tables.PriceOf(id); base > price {
		price = base
	}

	qty := int32(1)
	if g.NextDouble() < 0.1 {
		qty = 5
	}
	return price, qty
}

// cartPre14 fills the cart through the dense roll-to-id table. No
// duplicate prevention; repeated slots are legal.
func cartPre14(gameSeed int32, day int) []CartItem {
	g := rng.New(gameSeed + int32(day))

	items := make([]CartItem, 0, cartSlots)
	for slot := 0; slot < cartSlots; slot++ {
		id := tables.RollToID(g.NextIn(2, 790))
		price, qty := priceAndQuantity(&g, id)
		items = append(items, CartItem{ID: id, Price: price, Quantity: qty})
	}
	return items
}

// cart14 fills the cart under the 1.4/1.5 rules: one roll per slot,
// walked forward modulo 790 until it lands on a legal, not-yet-stocked
// id.
func cart14(gameSeed int32, day int) []CartItem {
	g := rng.New(gameSeed + int32(day))

	used := make(map[int32]bool, cartSlots)
	items := make([]CartItem, 0, cartSlots)
	for slot := 0; slot < cartSlots; slot++ {
		id := g.NextIn(2, 790)
		for !tables.IsCartLegal14(id) || used[id] {
			id = (id + 1) % 790
		}
		used[id] = true

		price, qty := priceAndQuantity(&g, id)
		items = append(items, CartItem{ID: id, Price: price, Quantity: qty})
	}
	return items
}

// cart16 fills the cart with the 1.6 whole-catalog shuffle: one key draw
// per catalog row in catalog order — rows the price/offlimits checks then
// reject still consume their draw, because the game's dictionary insert
// happens after the draw. On key collisions the later row silently
// overwrites the earlier one, reproducing the reference map behavior.
func cart16(gameSeed int32, day int) []CartItem {
	g := rng.New(rng.HashSeed(int32(day), gameSeed/2, 0, 0, 0))

	byKey := make(map[int32]tables.Object)
	keys := make([]int32, 0, len(tables.Objects16()))
	for _, o := range tables.Objects16() {
		key := g.Next()
		if o.Price <= 0 || o.Offlimits {
			continue
		}
		if _, clash := byKey[key]; clash {
			if logrus.IsLevelEnabled(logrus.DebugLevel) {
				logrus.WithFields(logrus.Fields{
					"key": key,
					"id":  o.ID,
				}).Debug("cart shuffle key collision, later entry wins")
			}
		} else {
			keys = append(keys, key)
		}
		byKey[key] = o
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })

	selected := make([]int32, 0, cartSlots)
	for _, key := range keys {
		o := byKey[key]
		if o.Category >= 0 || o.Category == -999 || o.TypeExcluded() {
			continue
		}
		selected = append(selected, o.ID)
		if len(selected) == cartSlots {
			break
		}
	}

	items := make([]CartItem, 0, len(selected))
	for _, id := range selected {
		price, qty := priceAndQuantity(&g, id)
		items = append(items, CartItem{ID: id, Price: price, Quantity: qty})
	}
	return items
}
