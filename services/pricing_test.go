package services_test

import (
	"testing"

	"storefront-service/models"
	"storefront-service/services"

	"github.com/stretchr/testify/assert"
)

const threshold = 150

func TestComputeQuote_FullPayment(t *testing.T) {
	items := []models.CartItem{
		{ID: "p1", Name: "Classic Cheesecake", Price: 30, Quantity: 2},
	}

	quote := services.ComputeQuote(items, threshold)

	assert.False(t, quote.HasCustomItems)
	assert.Equal(t, 60.0, quote.Subtotal)
	assert.Equal(t, int64(6000), quote.AmountDueCents)
	assert.Equal(t, 0.0, quote.DepositAmount)
}

func TestComputeQuote_DepositMode(t *testing.T) {
	items := []models.CartItem{
		{ID: "p1", Name: "Strawberry Cheesecake", Price: 40, Quantity: 1},
		{ID: "p2", Name: "Custom Wedding Cake", Price: 200, Quantity: 1},
	}

	quote := services.ComputeQuote(items, threshold)

	// Deposit covers half the custom items only; the $40 cheesecake is
	// settled at delivery along with the balance.
	assert.True(t, quote.HasCustomItems)
	assert.Equal(t, 240.0, quote.Subtotal)
	assert.Equal(t, int64(10000), quote.AmountDueCents)
	assert.Equal(t, 100.0, quote.DepositAmount)
}

func TestComputeQuote_ThresholdIsInclusive(t *testing.T) {
	items := []models.CartItem{
		{ID: "p1", Name: "Celebration Cake", Price: 150, Quantity: 1},
	}

	quote := services.ComputeQuote(items, threshold)

	assert.True(t, quote.HasCustomItems)
	assert.Equal(t, int64(7500), quote.AmountDueCents)
}

func TestComputeQuote_FractionalPricesRoundUp(t *testing.T) {
	items := []models.CartItem{
		{ID: "p1", Name: "Slice", Price: 6.333, Quantity: 3},
	}

	quote := services.ComputeQuote(items, threshold)

	assert.False(t, quote.HasCustomItems)
	assert.Equal(t, int64(1900), quote.AmountDueCents)
}

func TestComputeQuote_DepositIgnoresStandardItems(t *testing.T) {
	items := []models.CartItem{
		{ID: "p1", Name: "Custom Cake", Price: 175, Quantity: 2},
		{ID: "p2", Name: "Cheesecake", Price: 55, Quantity: 4},
	}

	quote := services.ComputeQuote(items, threshold)

	assert.True(t, quote.HasCustomItems)
	// 50% of 350, not of 570
	assert.Equal(t, int64(17500), quote.AmountDueCents)
	assert.Equal(t, 175.0, quote.DepositAmount)
	assert.Equal(t, 570.0, quote.Subtotal)
}
