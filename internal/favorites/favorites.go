// Package favorites keeps a per-user set of bookmarked menu products.
//
// Membership is keyed by product id only. The display fields on each
// item are cached from the catalog at toggle time so favorite lists can
// render without a catalog lookup.
package favorites

import (
	"github.com/shopspring/decimal"
)

// Item is a favorited product with the display fields cached when it
// was added.
type Item struct {
	ProductID string          `json:"product_id"`
	Name      string          `json:"name"`
	Image     string          `json:"image,omitempty"`
	Price     decimal.Decimal `json:"price"`
}

// Set is an insertion-ordered favorites collection. It is not safe for
// concurrent use; sessions serialize access to it.
type Set struct {
	items []Item
	index map[string]int
}

func NewSet() *Set {
	return &Set{index: make(map[string]int)}
}

// Toggle adds the product when absent and removes it when present.
// It reports whether the product is a favorite after the call.
func (s *Set) Toggle(item Item) bool {
	if _, ok := s.index[item.ProductID]; ok {
		s.remove(item.ProductID)
		return false
	}
	s.index[item.ProductID] = len(s.items)
	s.items = append(s.items, item)
	return true
}

func (s *Set) Contains(productID string) bool {
	_, ok := s.index[productID]
	return ok
}

// List returns the favorites in the order they were added.
func (s *Set) List() []Item {
	out := make([]Item, len(s.items))
	copy(out, s.items)
	return out
}

func (s *Set) Len() int {
	return len(s.items)
}

// Restore replaces the set contents, deduplicating by product id.
// Later entries win, matching how a toggle sequence would behave.
func (s *Set) Restore(items []Item) {
	s.items = s.items[:0]
	s.index = make(map[string]int, len(items))
	for _, item := range items {
		if at, ok := s.index[item.ProductID]; ok {
			s.items[at] = item
			continue
		}
		s.index[item.ProductID] = len(s.items)
		s.items = append(s.items, item)
	}
}

func (s *Set) remove(productID string) {
	at := s.index[productID]
	s.items = append(s.items[:at], s.items[at+1:]...)
	delete(s.index, productID)
	for i := at; i < len(s.items); i++ {
		s.index[s.items[i].ProductID] = i
	}
}
