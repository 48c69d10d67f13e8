// Package validation screens raw order payloads before they reach the
// matching engine. The engine trusts its input completely, so every check the
// engine depends on lives here, and the error texts are kept compatible with
// the legacy API word for word.
package validation

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/corex-exchange/matchbook/internal/orderbook"
	apperrors "github.com/corex-exchange/matchbook/pkg/errors"
)

const (
	msgNoOrder         = "No order specified"
	msgAmountMandatory = "Field amount is mandatory"
	msgAmountNotNumber = "Field amount is not a number"
	msgPriceMandatory  = "Field price is mandatory"
	msgPriceNotNumber  = "Field price is not a number"
	msgPricePositive   = "Field price should be greater than 0"
)

// RawOrder is the submit payload before validation. Fields stay as raw JSON
// so a wrong type is reported as a validation message instead of a decode
// failure.
type RawOrder struct {
	Amount json.RawMessage `json:"amount"`
	Price  json.RawMessage `json:"price"`
}

// NewOrder is a validated order ready for the engine: side tag plus
// non-negative magnitude instead of the wire's signed amount.
type NewOrder struct {
	Side   orderbook.Side
	Price  decimal.Decimal
	Amount decimal.Decimal
}

// Validator checks order payload shape and range. MinAmount is the strict
// lower bound on the amount magnitude (legacy default 100).
type Validator struct {
	minAmount decimal.Decimal
}

func New(minAmount decimal.Decimal) *Validator {
	return &Validator{minAmount: minAmount}
}

type numberState int

const (
	numberMissing numberState = iota
	numberInvalid
	numberOK
)

// parseNumber distinguishes an absent or null field from a present value of
// the wrong type, matching how the legacy validator told "mandatory" apart
// from "not a number".
func parseNumber(raw json.RawMessage) (decimal.Decimal, numberState) {
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return decimal.Zero, numberMissing
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err != nil {
		return decimal.Zero, numberInvalid
	}
	d, err := decimal.NewFromString(n.String())
	if err != nil {
		return decimal.Zero, numberInvalid
	}
	return d, numberOK
}

// ValidateNewOrder returns the list of human-readable problems with the
// payload, empty when the order is valid. Amount problems are listed before
// price problems.
func (v *Validator) ValidateNewOrder(raw *RawOrder) []string {
	if raw == nil {
		return []string{msgNoOrder}
	}

	var errs []string

	amount, amountState := parseNumber(raw.Amount)
	switch {
	case amountState == numberMissing:
		errs = append(errs, msgAmountMandatory)
	case amountState == numberInvalid:
		errs = append(errs, msgAmountNotNumber)
	case amount.IsZero():
		// The legacy API treated a zero amount as an absent one.
		errs = append(errs, msgAmountMandatory)
	case amount.Abs().LessThanOrEqual(v.minAmount):
		errs = append(errs, v.amountRangeMessage())
	}

	price, priceState := parseNumber(raw.Price)
	switch {
	case priceState == numberMissing:
		errs = append(errs, msgPriceMandatory)
	case priceState == numberInvalid:
		errs = append(errs, msgPriceNotNumber)
	case !price.IsPositive():
		errs = append(errs, msgPricePositive)
	}

	return errs
}

func (v *Validator) amountRangeMessage() string {
	return fmt.Sprintf("Field amount should be > %s or < -%s", v.minAmount, v.minAmount)
}

// ParseOrder converts a payload that already passed ValidateNewOrder into a
// side-tagged order: a negative wire amount is an ask, a positive one a bid.
// Calling it with an unvalidated payload is a caller bug.
func (v *Validator) ParseOrder(raw *RawOrder) (*NewOrder, error) {
	amount, amountState := parseNumber(raw.Amount)
	price, priceState := parseNumber(raw.Price)
	if amountState != numberOK || priceState != numberOK {
		return nil, apperrors.Invariantf("parse of unvalidated order payload")
	}

	side := orderbook.SideBid
	if amount.IsNegative() {
		side = orderbook.SideAsk
	}

	return &NewOrder{
		Side:   side,
		Price:  price,
		Amount: amount.Abs(),
	}, nil
}
