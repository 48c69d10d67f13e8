// Package orderbook implements the price-indexed store of resting orders for
// a single instrument. Each side is kept in a B-tree ordered by price, with
// FIFO price levels inside, so best-price lookups and marketable range scans
// stay logarithmic in the number of levels.
//
// The store is not safe for concurrent use; the matching engine serializes
// access to it.
package orderbook

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tidwall/btree"

	apperrors "github.com/corex-exchange/matchbook/pkg/errors"
)

// Book is the order book store for one instrument. It owns two price-indexed
// collections of resting orders and the arrival sequence counter.
type Book struct {
	symbol string
	asks   *btree.BTreeG[*PriceLevel]
	bids   *btree.BTreeG[*PriceLevel]
	seq    uint64
}

func levelLess(a, b *PriceLevel) bool {
	return a.Price.LessThan(b.Price)
}

// New creates an empty book for the given instrument symbol.
func New(symbol string) *Book {
	return &Book{
		symbol: symbol,
		asks:   btree.NewBTreeG(levelLess),
		bids:   btree.NewBTreeG(levelLess),
	}
}

// Symbol returns the instrument this book represents.
func (b *Book) Symbol() string { return b.symbol }

// NextSequence returns the next arrival sequence number.
func (b *Book) NextSequence() uint64 {
	b.seq++
	return b.seq
}

func (b *Book) sideIndex(side Side) *btree.BTreeG[*PriceLevel] {
	if side == SideAsk {
		return b.asks
	}
	return b.bids
}

// Insert adds a resting order under order.Price on its side and returns the
// order id. A zero ID gets a fresh uuid and a zero Sequence gets the next
// arrival number; callers replaying known orders may pre-set both.
// Inserting a non-positive amount or price is an invariant violation:
// callers must filter fully-consumed orders before insertion.
func (b *Book) Insert(order *Order) (uuid.UUID, error) {
	if order == nil {
		return uuid.Nil, apperrors.Invariantf("insert of nil order")
	}
	if !order.Side.Valid() {
		return uuid.Nil, apperrors.Invariantf("insert with unknown side %q", order.Side)
	}
	if !order.Amount.IsPositive() {
		return uuid.Nil, apperrors.Invariantf("insert with non-positive amount %s", order.Amount)
	}
	if !order.Price.IsPositive() {
		return uuid.Nil, apperrors.Invariantf("insert with non-positive price %s", order.Price)
	}

	if order.ID == uuid.Nil {
		order.ID = uuid.New()
	}
	if order.Sequence == 0 {
		order.Sequence = b.NextSequence()
	}

	index := b.sideIndex(order.Side)
	level, ok := index.Get(&PriceLevel{Price: order.Price})
	if !ok {
		level = newPriceLevel(order.Price)
		index.Set(level)
	}
	level.add(order)

	return order.ID, nil
}

// Remove deletes the order with the given id from the price level on the
// given side. The price key itself is removed once its level drains empty.
// A missing level or id is reported as a not-found error; the engine never
// asks the store to remove an order it did not just observe, so hitting it
// means a caller-logic bug.
func (b *Book) Remove(side Side, price decimal.Decimal, id uuid.UUID) error {
	index := b.sideIndex(side)
	level, ok := index.Get(&PriceLevel{Price: price})
	if !ok {
		return apperrors.NotFoundf("no %s level at price %s", side, price)
	}
	if !level.remove(id) {
		return apperrors.NotFoundf("order %s not at %s level %s", id, side, price)
	}
	if level.Len() == 0 {
		index.Delete(level)
	}
	return nil
}

// Marketable returns the resting counter-side orders an incoming order at
// the given limit price can match: for an incoming ask, bids priced at or
// above it; for an incoming bid, asks priced at or below it. The result is
// ordered by price priority for the taker (highest bid first, lowest ask
// first) and by arrival sequence within a level. The returned pointers are
// the store's live records; the matching loop decrements them in place.
func (b *Book) Marketable(side Side, price decimal.Decimal) []*Order {
	var out []*Order
	if side == SideAsk {
		b.bids.Reverse(func(level *PriceLevel) bool {
			if level.Price.LessThan(price) {
				return false
			}
			out = append(out, level.orders...)
			return true
		})
	} else {
		b.asks.Scan(func(level *PriceLevel) bool {
			if level.Price.GreaterThan(price) {
				return false
			}
			out = append(out, level.orders...)
			return true
		})
	}
	return out
}

// BestAsk returns the lowest resting ask price, if any.
func (b *Book) BestAsk() (decimal.Decimal, bool) {
	if level, ok := b.asks.Min(); ok {
		return level.Price, true
	}
	return decimal.Zero, false
}

// BestBid returns the highest resting bid price, if any.
func (b *Book) BestBid() (decimal.Decimal, bool) {
	if level, ok := b.bids.Max(); ok {
		return level.Price, true
	}
	return decimal.Zero, false
}

// Depth returns the number of resting orders on one side.
func (b *Book) Depth(side Side) int {
	count := 0
	b.sideIndex(side).Scan(func(level *PriceLevel) bool {
		count += level.Len()
		return true
	})
	return count
}

// Volume returns the total resting amount on one side.
func (b *Book) Volume(side Side) decimal.Decimal {
	total := decimal.Zero
	b.sideIndex(side).Scan(func(level *PriceLevel) bool {
		total = total.Add(level.Volume())
		return true
	})
	return total
}

// Snapshot is a point-in-time copy of all resting orders, asks ascending and
// bids descending by price, grouped by level in arrival order.
type Snapshot struct {
	Asks []Order
	Bids []Order
}

// Snapshot returns a read-only copy of the book. Orders are copied by value
// so later matching cannot mutate a snapshot already handed out.
func (b *Book) Snapshot() Snapshot {
	snap := Snapshot{
		Asks: make([]Order, 0, b.Depth(SideAsk)),
		Bids: make([]Order, 0, b.Depth(SideBid)),
	}
	b.asks.Scan(func(level *PriceLevel) bool {
		for _, o := range level.orders {
			snap.Asks = append(snap.Asks, *o)
		}
		return true
	})
	b.bids.Reverse(func(level *PriceLevel) bool {
		for _, o := range level.orders {
			snap.Bids = append(snap.Bids, *o)
		}
		return true
	})
	return snap
}
