package orderbook

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PriceLevel holds every resting order at one price, in arrival order.
// Orders are appended as they arrive and sequences are assigned
// monotonically, so slice order is time-priority order.
type PriceLevel struct {
	Price  decimal.Decimal
	orders []*Order
}

func newPriceLevel(price decimal.Decimal) *PriceLevel {
	return &PriceLevel{Price: price}
}

func (pl *PriceLevel) add(order *Order) {
	pl.orders = append(pl.orders, order)
}

// remove deletes the order with the given id, preserving arrival order of
// the remainder. It reports whether the id was present.
func (pl *PriceLevel) remove(id uuid.UUID) bool {
	for i, o := range pl.orders {
		if o.ID == id {
			pl.orders = append(pl.orders[:i], pl.orders[i+1:]...)
			return true
		}
	}
	return false
}

// Len returns the number of resting orders at this level.
func (pl *PriceLevel) Len() int {
	return len(pl.orders)
}

// Orders returns the level's orders in arrival order. The slice is a copy
// but the pointed-to orders are the store's live records.
func (pl *PriceLevel) Orders() []*Order {
	out := make([]*Order, len(pl.orders))
	copy(out, pl.orders)
	return out
}

// Volume returns the total resting amount at this level.
func (pl *PriceLevel) Volume() decimal.Decimal {
	total := decimal.Zero
	for _, o := range pl.orders {
		total = total.Add(o.Amount)
	}
	return total
}
