// Package cart owns the ordered collection of cart lines and their derived
// totals. Lines are frozen copies of product data plus a selection snapshot;
// nothing outside this package mutates them. All mutators are total on valid
// input: missing fingerprints and sub-minimum quantities degrade to no-ops or
// removals, never errors.
package cart

import (
	"github.com/Ahmad-Arslan-10/Steakaway/internal/pricing"
	"github.com/Ahmad-Arslan-10/Steakaway/internal/selection"
	"github.com/shopspring/decimal"
)

// DuplicatePolicy controls what Add does when the new line's fingerprint
// collides with an existing one.
type DuplicatePolicy int

const (
	// MergeQuantities folds a colliding add into the existing line by summing
	// quantities, keeping the no-two-lines-share-a-fingerprint invariant.
	MergeQuantities DuplicatePolicy = iota
	// AppendDuplicates preserves the legacy behavior: every add is a distinct
	// line and the fingerprint additionally covers the quantity at creation.
	AppendDuplicates
)

// DefaultTaxRate matches the 16% order tax applied at checkout.
var DefaultTaxRate = decimal.New(16, -2)

// Line is one cart entry: a product instance with a specific customization
// and quantity. Fields other than Quantity never change after creation.
type Line struct {
	Fingerprint string             `json:"fingerprint"`
	ProductID   string             `json:"product_id"`
	Name        string             `json:"name"`
	Image       string             `json:"image"`
	UnitPrice   decimal.Decimal    `json:"unit_price"`
	Quantity    int                `json:"quantity"`
	Selections  selection.Snapshot `json:"selections,omitempty"`
}

// AddInput carries everything a new line freezes at add time.
type AddInput struct {
	ProductID  string
	Name       string
	Image      string
	UnitPrice  decimal.Decimal
	Quantity   int
	Selections selection.Snapshot
}

// Options configures a cart.
type Options struct {
	TaxRate decimal.Decimal
	Policy  DuplicatePolicy
}

// Cart is the ordered line collection for one session. Insertion order is
// display order.
type Cart struct {
	taxRate decimal.Decimal
	policy  DuplicatePolicy
	lines   []Line
}

// New builds an empty cart with the given tax rate and duplicate policy.
func New(opts Options) *Cart {
	return &Cart{taxRate: opts.TaxRate, policy: opts.Policy}
}

// Add appends or merges a line and returns the resulting line.
func (c *Cart) Add(input AddInput) Line {
	quantity := pricing.ClampQuantity(input.Quantity)
	selections := cloneSnapshot(input.Selections)

	if c.policy == AppendDuplicates {
		line := Line{
			Fingerprint: fingerprintWithQuantity(input.ProductID, selections, quantity),
			ProductID:   input.ProductID,
			Name:        input.Name,
			Image:       input.Image,
			UnitPrice:   input.UnitPrice,
			Quantity:    quantity,
			Selections:  selections,
		}
		c.lines = append(c.lines, line)
		return line
	}

	fingerprint := Fingerprint(input.ProductID, selections)
	for i := range c.lines {
		if c.lines[i].Fingerprint == fingerprint {
			c.lines[i].Quantity += quantity
			return c.lines[i]
		}
	}

	line := Line{
		Fingerprint: fingerprint,
		ProductID:   input.ProductID,
		Name:        input.Name,
		Image:       input.Image,
		UnitPrice:   input.UnitPrice,
		Quantity:    quantity,
		Selections:  selections,
	}
	c.lines = append(c.lines, line)
	return line
}

// UpdateQuantity replaces the line's quantity; anything below the minimum is
// a removal signal. Unknown fingerprints are a no-op.
func (c *Cart) UpdateQuantity(fingerprint string, quantity int) {
	if quantity < pricing.MinQuantity {
		c.Remove(fingerprint)
		return
	}
	for i := range c.lines {
		if c.lines[i].Fingerprint == fingerprint {
			c.lines[i].Quantity = quantity
			return
		}
	}
}

// Remove deletes the first line with the fingerprint; missing is a no-op.
func (c *Cart) Remove(fingerprint string) {
	for i := range c.lines {
		if c.lines[i].Fingerprint == fingerprint {
			c.lines = append(c.lines[:i], c.lines[i+1:]...)
			return
		}
	}
}

// Clear empties the cart, used after successful checkout.
func (c *Cart) Clear() {
	c.lines = nil
}

// Line returns the first line matching the fingerprint.
func (c *Cart) Line(fingerprint string) (Line, bool) {
	for _, line := range c.lines {
		if line.Fingerprint == fingerprint {
			return line, true
		}
	}
	return Line{}, false
}

// Lines returns the lines in display order. Callers must treat the result as
// read-only.
func (c *Cart) Lines() []Line {
	out := make([]Line, len(c.lines))
	copy(out, c.lines)
	return out
}

// Len returns the number of lines.
func (c *Cart) Len() int {
	return len(c.lines)
}

// Subtotal sums unit price times quantity over all lines, rounded for display.
func (c *Cart) Subtotal() decimal.Decimal {
	return c.rawSubtotal().Round(2)
}

// Tax applies the configured rate to the unrounded subtotal.
func (c *Cart) Tax() decimal.Decimal {
	return c.rawSubtotal().Mul(c.taxRate).Round(2)
}

// GrandTotal is subtotal plus tax.
func (c *Cart) GrandTotal() decimal.Decimal {
	multiplier := decimal.NewFromInt(1).Add(c.taxRate)
	return c.rawSubtotal().Mul(multiplier).Round(2)
}

// TotalItemCount sums quantities across lines, driving the cart badge.
func (c *Cart) TotalItemCount() int {
	count := 0
	for _, line := range c.lines {
		count += line.Quantity
	}
	return count
}

// Restore replaces the cart's content from a persisted snapshot.
func (c *Cart) Restore(lines []Line) {
	c.lines = make([]Line, len(lines))
	copy(c.lines, lines)
}

func (c *Cart) rawSubtotal() decimal.Decimal {
	// Intermediate sums stay unrounded so repeated option surcharges cannot
	// compound rounding error.
	total := decimal.Zero
	for _, line := range c.lines {
		total = total.Add(line.UnitPrice.Mul(decimal.NewFromInt(int64(line.Quantity))))
	}
	return total
}

func cloneSnapshot(snap selection.Snapshot) selection.Snapshot {
	if snap == nil {
		return nil
	}
	out := make(selection.Snapshot, len(snap))
	for group, labels := range snap {
		copied := make([]string, len(labels))
		copy(copied, labels)
		out[group] = copied
	}
	return out
}
