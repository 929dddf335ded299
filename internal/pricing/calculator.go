// Package pricing combines a product, its selection, and a quantity into unit
// and line prices. Rounding to two decimal places happens only at these
// display boundaries; intermediate sums keep full precision.
package pricing

import (
	"github.com/Ahmad-Arslan-10/Steakaway/internal/catalog"
	"github.com/Ahmad-Arslan-10/Steakaway/internal/selection"
	"github.com/shopspring/decimal"
)

// MinQuantity is the floor every cart line clamps to.
const MinQuantity = 1

// UnitPrice computes the price of one unit under the given selection.
// Customization pricing replaces the base price: for customizable products
// the base price is "from" display pricing only.
func UnitPrice(product catalog.Product, state *selection.State) decimal.Decimal {
	if !product.Customizable() {
		return product.BasePrice
	}
	return selection.PriceOf(state, product.Groups)
}

// LineTotal multiplies a unit price by the quantity, rounded for display.
func LineTotal(unitPrice decimal.Decimal, quantity int) decimal.Decimal {
	return unitPrice.Mul(decimal.NewFromInt(int64(quantity))).Round(2)
}

// ClampQuantity enforces the minimum of one unit. Callers treat a decrement
// below the floor as a removal signal, never as a pricing input.
func ClampQuantity(quantity int) int {
	if quantity < MinQuantity {
		return MinQuantity
	}
	return quantity
}
