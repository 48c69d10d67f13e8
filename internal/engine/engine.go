// Package engine implements price/time-priority matching over the order book
// store. Submit is the only mutating entry point and runs to completion under
// the engine lock, so no other submission or snapshot can observe a
// half-matched book.
package engine

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/corex-exchange/matchbook/internal/orderbook"
	"github.com/corex-exchange/matchbook/pkg/metrics"
)

// Status is the execution outcome of one Submit call. Rejection happens at
// the validation boundary and never reaches the engine, so it has no status
// here.
type Status string

const (
	// StatusPending means nothing matched and the whole order now rests.
	StatusPending Status = "PENDING"
	// StatusPartiallyFilled means some amount matched and the remainder rests.
	StatusPartiallyFilled Status = "PARTIALLY_FILLED"
	// StatusFilled means the incoming order was consumed entirely.
	StatusFilled Status = "FILLED"
)

// Fill records one exchange against a resting order.
type Fill struct {
	MakerID uuid.UUID
	Price   decimal.Decimal
	Amount  decimal.Decimal
}

// ExecutionResult reports the outcome of submitting one order. ID is the
// resting order's id when a remainder was booked, or a fresh identifier when
// the order filled completely and nothing persists.
type ExecutionResult struct {
	ID             uuid.UUID
	Side           orderbook.Side
	Price          decimal.Decimal
	OriginalAmount decimal.Decimal
	Status         Status
	Fills          []Fill
}

// Engine matches incoming orders against a single book. The RWMutex gives
// the consistency discipline the book needs: Submit holds the write lock for
// the whole match-mutate-insert cycle, reads hold the read lock.
type Engine struct {
	mu     sync.RWMutex
	book   *orderbook.Book
	logger *zap.Logger
}

// New creates an engine over the given book.
func New(book *orderbook.Book, logger *zap.Logger) *Engine {
	return &Engine{
		book:   book,
		logger: logger.Named("engine"),
	}
}

// Submit matches one validated incoming order against the book and returns
// its execution result. Matching walks the marketable counter-side orders in
// price-then-arrival priority, decrements matched orders in place, removes
// the fully consumed ones, and books any unmatched remainder as a new
// resting order. An error here is always an invariant violation, never a
// condition a valid order can trigger.
func (e *Engine) Submit(side orderbook.Side, price, amount decimal.Decimal) (*ExecutionResult, error) {
	start := time.Now()

	e.mu.Lock()
	defer e.mu.Unlock()

	result := &ExecutionResult{
		Side:           side,
		Price:          price,
		OriginalAmount: amount,
	}

	remaining := amount
	var consumed []*orderbook.Order

	for _, candidate := range e.book.Marketable(side, price) {
		if !remaining.IsPositive() {
			break
		}
		exchanged := decimal.Min(remaining, candidate.Amount)
		remaining = remaining.Sub(exchanged)
		candidate.Amount = candidate.Amount.Sub(exchanged)

		result.Fills = append(result.Fills, Fill{
			MakerID: candidate.ID,
			Price:   candidate.Price,
			Amount:  exchanged,
		})
		if candidate.Amount.IsZero() {
			consumed = append(consumed, candidate)
		}
	}

	for _, order := range consumed {
		if err := e.book.Remove(side.Opposite(), order.Price, order.ID); err != nil {
			e.logger.Error("failed to remove consumed order",
				zap.String("order_id", order.ID.String()),
				zap.Error(err))
			return nil, err
		}
	}

	if remaining.IsPositive() {
		id, err := e.book.Insert(&orderbook.Order{
			Side:   side,
			Price:  price,
			Amount: remaining,
		})
		if err != nil {
			return nil, err
		}
		result.ID = id
	} else {
		// Fully filled: nothing rests, but the result still carries an id.
		result.ID = uuid.New()
	}

	switch {
	case remaining.IsZero():
		result.Status = StatusFilled
	case remaining.Equal(amount):
		result.Status = StatusPending
	default:
		result.Status = StatusPartiallyFilled
	}

	e.observe(result, time.Since(start))

	return result, nil
}

// Snapshot returns a consistent point-in-time view of the book. It never
// observes a partially applied Submit.
func (e *Engine) Snapshot() orderbook.Snapshot {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.book.Snapshot()
}

// BestPrices returns the current best bid and ask, zero when a side is empty.
func (e *Engine) BestPrices() (bid, ask decimal.Decimal) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	bid, _ = e.book.BestBid()
	ask, _ = e.book.BestAsk()
	return bid, ask
}

func (e *Engine) observe(result *ExecutionResult, elapsed time.Duration) {
	metrics.OrdersSubmitted.WithLabelValues(string(result.Side), string(result.Status)).Inc()
	metrics.MatchLatency.Observe(elapsed.Seconds())
	metrics.Fills.Add(float64(len(result.Fills)))
	metrics.RestingOrders.WithLabelValues(string(orderbook.SideAsk)).Set(float64(e.book.Depth(orderbook.SideAsk)))
	metrics.RestingOrders.WithLabelValues(string(orderbook.SideBid)).Set(float64(e.book.Depth(orderbook.SideBid)))

	e.logger.Debug("order matched",
		zap.String("order_id", result.ID.String()),
		zap.String("side", string(result.Side)),
		zap.String("price", result.Price.String()),
		zap.String("amount", result.OriginalAmount.String()),
		zap.String("status", string(result.Status)),
		zap.Int("fills", len(result.Fills)),
		zap.Duration("elapsed", elapsed))
}
