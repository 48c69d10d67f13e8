package orderbook

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Side tags an order as resting on the ask or the bid side of the book.
// Side is modeled separately from the amount so that the remaining size is
// always a non-negative magnitude; the signed-amount encoding of the HTTP
// API stops at the transport boundary.
type Side string

const (
	SideAsk Side = "ask"
	SideBid Side = "bid"
)

// Opposite returns the counter side an incoming order matches against.
func (s Side) Opposite() Side {
	if s == SideAsk {
		return SideBid
	}
	return SideAsk
}

// Valid reports whether s is one of the two known sides.
func (s Side) Valid() bool {
	return s == SideAsk || s == SideBid
}

// Order is a resting order. Amount is the remaining magnitude and stays
// strictly positive for as long as the order is held by the book; the store
// removes an order the moment its amount reaches zero. Sequence is the
// book-wide arrival counter used for the time-priority tie-break.
type Order struct {
	ID       uuid.UUID       `json:"id"`
	Side     Side            `json:"side"`
	Price    decimal.Decimal `json:"price"`
	Amount   decimal.Decimal `json:"amount"`
	Sequence uint64          `json:"sequence"`
}
