package services

import (
	"math"

	"storefront-service/models"
)

// Custom orders are charged a 50% deposit up front; the balance is settled
// at delivery.
const depositRate = 0.5

// Quote is the result of pricing a cart.
type Quote struct {
	// Subtotal is the full cart subtotal in dollars.
	Subtotal float64
	// HasCustomItems is true when any line item meets the deposit threshold.
	HasCustomItems bool
	// DepositAmount is the deposit in dollars; zero in full-payment mode.
	DepositAmount float64
	// AmountDueCents is what gets charged now, in minor currency units.
	AmountDueCents int64
}

// ComputeQuote prices a cart. Any item priced at or above threshold marks
// the order as custom: the charge collected now is half the summed price of
// only the custom items, rounded up to the cent. Otherwise the full subtotal
// is collected.
func ComputeQuote(items []models.CartItem, threshold float64) Quote {
	var subtotal, customTotal float64
	hasCustom := false

	for _, item := range items {
		line := item.Price * float64(item.Quantity)
		subtotal += line
		if item.Price >= threshold {
			hasCustom = true
			customTotal += line
		}
	}

	quote := Quote{
		Subtotal:       subtotal,
		HasCustomItems: hasCustom,
	}

	if hasCustom {
		depositCents := int64(math.Ceil(customTotal * depositRate * 100))
		quote.DepositAmount = float64(depositCents) / 100
		quote.AmountDueCents = depositCents
	} else {
		quote.AmountDueCents = int64(math.Ceil(subtotal * 100))
	}

	return quote
}

// UnitAmountCents converts a unit price in dollars to minor units, rounding up.
func UnitAmountCents(price float64) int64 {
	return int64(math.Ceil(price * 100))
}
