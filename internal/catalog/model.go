// Package catalog holds the immutable product catalog: categories, products,
// and the customization groups that drive selection and pricing. The catalog
// is loaded once, validated, and shared read-only with every consumer.
package catalog

import (
	"strings"

	"github.com/shopspring/decimal"
)

// GroupKind tags a customization group's selection semantics explicitly,
// replacing the legacy convention of sniffing "Ad-On" out of the group name.
type GroupKind string

const (
	// GroupSingleRequired groups keep exactly one option selected at all times.
	GroupSingleRequired GroupKind = "single_required"
	// GroupMultiOptional groups allow zero or more independently toggled options.
	GroupMultiOptional GroupKind = "multi_optional"
)

// multiSelectTokens mark legacy catalogs that encode kind in the group name.
var multiSelectTokens = []string{"Ad-On", "Ad - On"}

// KindFromName derives the group kind for catalogs that predate the explicit tag.
func KindFromName(name string) GroupKind {
	for _, token := range multiSelectTokens {
		if strings.Contains(name, token) {
			return GroupMultiOptional
		}
	}
	return GroupSingleRequired
}

// Option is one selectable label inside a group. Bare labels carry a zero
// price; priced options add a surcharge on top of the selection price.
type Option struct {
	Label string
	Price decimal.Decimal
}

// Group is a named, ordered set of options attached to a product.
type Group struct {
	Name    string
	Kind    GroupKind
	Options []Option
}

// Required reports whether the group must always have exactly one selection.
func (g Group) Required() bool {
	return g.Kind == GroupSingleRequired
}

// MultiSelect reports whether options toggle independently.
func (g Group) MultiSelect() bool {
	return g.Kind == GroupMultiOptional
}

// Option looks up an option by its label.
func (g Group) Option(label string) (Option, bool) {
	for _, opt := range g.Options {
		if opt.Label == label {
			return opt, true
		}
	}
	return Option{}, false
}

// Product is one menu entry. BasePrice is informational "from" pricing when
// the product carries customization groups.
type Product struct {
	ID          string
	Name        string
	Description string
	BasePrice   decimal.Decimal
	Image       string
	Groups      []Group
}

// Customizable reports whether the product carries customization groups.
func (p Product) Customizable() bool {
	return len(p.Groups) > 0
}

// Group looks up a customization group by name.
func (p Product) Group(name string) (Group, bool) {
	for _, group := range p.Groups {
		if group.Name == name {
			return group, true
		}
	}
	return Group{}, false
}

// Category is an ordered slice of the menu as displayed.
type Category struct {
	Name     string
	Products []Product
}

// Catalog is the validated, read-only menu.
type Catalog struct {
	categories []Category
	byID       map[string]Product
}

// Categories returns the menu in display order.
func (c *Catalog) Categories() []Category {
	return c.categories
}

// Product resolves a product by id.
func (c *Catalog) Product(id string) (Product, bool) {
	product, ok := c.byID[id]
	return product, ok
}

// Len returns the total product count.
func (c *Catalog) Len() int {
	return len(c.byID)
}

// Search returns every product whose name contains the query as a
// case-insensitive substring, flattened across categories in display
// order. An empty query matches everything.
func (c *Catalog) Search(query string) []Product {
	needle := strings.ToLower(strings.TrimSpace(query))
	results := make([]Product, 0, len(c.byID))
	for _, category := range c.categories {
		for _, product := range category.Products {
			if needle == "" || strings.Contains(strings.ToLower(product.Name), needle) {
				results = append(results, product)
			}
		}
	}
	return results
}
