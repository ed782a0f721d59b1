package entities_test

import (
	"testing"

	"venues/entities"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestMoneyMul(t *testing.T) {
	price := entities.NewMoney(decimal.RequireFromString("40.50"), "USD")

	total := price.Mul(3)

	assert.True(t, total.Amount.Equal(decimal.RequireFromString("121.50")))
	assert.Equal(t, "USD", total.Currency)
	assert.True(t, price.Amount.Equal(decimal.RequireFromString("40.50")), "Mul must not mutate the receiver")
}

func TestMoneyIsZero(t *testing.T) {
	assert.True(t, entities.Money{}.IsZero())
	assert.False(t, entities.NewMoney(decimal.NewFromInt(1), "USD").IsZero())
}
