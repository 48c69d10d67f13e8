package server

import (
	"encoding/json"

	"github.com/shopspring/decimal"

	"github.com/corex-exchange/matchbook/internal/engine"
	"github.com/corex-exchange/matchbook/internal/orderbook"
)

// errorsResponse is the 400 body: a flat list of human-readable messages.
type errorsResponse struct {
	Errors []string `json:"errors"`
}

// submitResponse flattens an execution result onto the legacy wire shape.
// Amount carries the signed original amount: negative for asks.
type submitResponse struct {
	ID     string      `json:"id"`
	Price  json.Number `json:"price"`
	Amount json.Number `json:"amount"`
	Status string      `json:"status"`
}

// bookEntry is one resting order in the orderbook response. Sequence numbers
// are internal and never exposed.
type bookEntry struct {
	ID     string      `json:"id"`
	Price  json.Number `json:"price"`
	Amount json.Number `json:"amount"`
}

type orderBookResponse struct {
	Asks []bookEntry `json:"asks"`
	Bids []bookEntry `json:"bids"`
}

// number renders a decimal as a bare JSON number, as the legacy API did.
func number(d decimal.Decimal) json.Number {
	return json.Number(d.String())
}

func signedAmount(side orderbook.Side, amount decimal.Decimal) decimal.Decimal {
	if side == orderbook.SideAsk {
		return amount.Neg()
	}
	return amount
}

func newSubmitResponse(result *engine.ExecutionResult) submitResponse {
	return submitResponse{
		ID:     result.ID.String(),
		Price:  number(result.Price),
		Amount: number(signedAmount(result.Side, result.OriginalAmount)),
		Status: string(result.Status),
	}
}

func newOrderBookResponse(snap orderbook.Snapshot) orderBookResponse {
	resp := orderBookResponse{
		Asks: make([]bookEntry, 0, len(snap.Asks)),
		Bids: make([]bookEntry, 0, len(snap.Bids)),
	}
	for _, o := range snap.Asks {
		resp.Asks = append(resp.Asks, bookEntry{
			ID:     o.ID.String(),
			Price:  number(o.Price),
			Amount: number(signedAmount(o.Side, o.Amount)),
		})
	}
	for _, o := range snap.Bids {
		resp.Bids = append(resp.Bids, bookEntry{
			ID:     o.ID.String(),
			Price:  number(o.Price),
			Amount: number(o.Amount),
		})
	}
	return resp
}
