package validation

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/corex-exchange/matchbook/internal/orderbook"
	apperrors "github.com/corex-exchange/matchbook/pkg/errors"
)

func newTestValidator() *Validator {
	return New(decimal.NewFromInt(100))
}

func rawOrder(t *testing.T, body string) *RawOrder {
	t.Helper()
	var raw RawOrder
	require.NoError(t, json.Unmarshal([]byte(body), &raw))
	return &raw
}

func TestValidator_NoOrder(t *testing.T) {
	v := newTestValidator()

	assert.Equal(t, []string{"No order specified"}, v.ValidateNewOrder(nil))
}

func TestValidator_MandatoryFields(t *testing.T) {
	v := newTestValidator()

	errs := v.ValidateNewOrder(rawOrder(t, `{}`))

	assert.Equal(t, []string{
		"Field amount is mandatory",
		"Field price is mandatory",
	}, errs)
}

func TestValidator_NullFieldsAreMandatory(t *testing.T) {
	v := newTestValidator()

	errs := v.ValidateNewOrder(rawOrder(t, `{"amount": null, "price": null}`))

	assert.Equal(t, []string{
		"Field amount is mandatory",
		"Field price is mandatory",
	}, errs)
}

func TestValidator_WrongTypes(t *testing.T) {
	v := newTestValidator()

	errs := v.ValidateNewOrder(rawOrder(t, `{"amount": "wrong type", "price": "wrong type"}`))

	assert.Equal(t, []string{
		"Field amount is not a number",
		"Field price is not a number",
	}, errs)
}

func TestValidator_AmountMagnitudeThreshold(t *testing.T) {
	v := newTestValidator()

	for _, amount := range []string{"10", "100", "-100", "-10", "0.5"} {
		errs := v.ValidateNewOrder(rawOrder(t, `{"amount": `+amount+`, "price": 100}`))
		assert.Equal(t, []string{"Field amount should be > 100 or < -100"}, errs, "amount %s", amount)
	}

	for _, amount := range []string{"101", "-101", "100.01", "-100.01"} {
		errs := v.ValidateNewOrder(rawOrder(t, `{"amount": `+amount+`, "price": 100}`))
		assert.Empty(t, errs, "amount %s", amount)
	}
}

func TestValidator_ZeroAmountIsMandatory(t *testing.T) {
	v := newTestValidator()

	errs := v.ValidateNewOrder(rawOrder(t, `{"amount": 0, "price": 100}`))

	assert.Equal(t, []string{"Field amount is mandatory"}, errs)
}

func TestValidator_PriceMustBePositive(t *testing.T) {
	v := newTestValidator()

	for _, price := range []string{"0", "-1", "-0.01"} {
		errs := v.ValidateNewOrder(rawOrder(t, `{"amount": 200, "price": `+price+`}`))
		assert.Equal(t, []string{"Field price should be greater than 0"}, errs, "price %s", price)
	}
}

func TestValidator_ThresholdFromConfiguration(t *testing.T) {
	v := New(decimal.NewFromInt(10))

	errs := v.ValidateNewOrder(rawOrder(t, `{"amount": 10, "price": 100}`))
	assert.Equal(t, []string{"Field amount should be > 10 or < -10"}, errs)

	assert.Empty(t, v.ValidateNewOrder(rawOrder(t, `{"amount": 11, "price": 100}`)))
}

func TestValidator_ParseOrderSides(t *testing.T) {
	v := newTestValidator()

	ask, err := v.ParseOrder(rawOrder(t, `{"amount": -150, "price": 99.5}`))
	require.NoError(t, err)
	assert.Equal(t, orderbook.SideAsk, ask.Side)
	assert.True(t, ask.Amount.Equal(decimal.NewFromInt(150)))
	assert.True(t, ask.Price.Equal(decimal.RequireFromString("99.5")))

	bid, err := v.ParseOrder(rawOrder(t, `{"amount": 150, "price": 100}`))
	require.NoError(t, err)
	assert.Equal(t, orderbook.SideBid, bid.Side)
	assert.True(t, bid.Amount.Equal(decimal.NewFromInt(150)))
}

func TestValidator_ParseOrderRejectsUnvalidatedPayload(t *testing.T) {
	v := newTestValidator()

	_, err := v.ParseOrder(rawOrder(t, `{"amount": "nope", "price": 100}`))
	require.Error(t, err)
	assert.True(t, apperrors.IsInvariant(err))
}
