// Package selection drives the per-product selection state machine: required
// single-select groups always hold exactly one label, optional multi-select
// groups toggle labels independently, and the selection alone determines the
// customized unit price.
package selection

import (
	"fmt"
	"sort"

	"github.com/Ahmad-Arslan-10/Steakaway/internal/catalog"
	pkgerrors "github.com/Ahmad-Arslan-10/Steakaway/pkg/errors"
	"github.com/shopspring/decimal"
)

// State tracks the chosen labels for one product-detail session.
type State struct {
	single map[string]string
	multi  map[string]map[string]struct{}
}

// Snapshot is the frozen, deterministic form of a State: group name to sorted
// selected labels. Cart lines store snapshots, never live states.
type Snapshot map[string][]string

// Initialize returns a state with every required group defaulted to its first
// option, plus the starting unit price: the base price for plain products, or
// the sum of the required defaults' prices for customizable ones.
func Initialize(product catalog.Product) (*State, decimal.Decimal) {
	state := newState()
	if !product.Customizable() {
		return state, product.BasePrice
	}

	starting := decimal.Zero
	for _, group := range product.Groups {
		if !group.Required() {
			continue
		}
		first := group.Options[0]
		state.single[group.Name] = first.Label
		starting = starting.Add(first.Price)
	}
	return state, starting
}

// Select applies one user choice: replacement for single-select groups, a
// toggle for multi-select groups. The state is left untouched on error.
func (s *State) Select(product catalog.Product, groupName, label string) error {
	group, ok := product.Group(groupName)
	if !ok {
		return unknownGroup(groupName)
	}
	if _, ok := group.Option(label); !ok {
		return unknownOption(groupName, label)
	}

	if group.MultiSelect() {
		chosen := s.multi[groupName]
		if chosen == nil {
			chosen = make(map[string]struct{})
			s.multi[groupName] = chosen
		}
		if _, selected := chosen[label]; selected {
			delete(chosen, label)
		} else {
			chosen[label] = struct{}{}
		}
		return nil
	}

	s.single[groupName] = label
	return nil
}

// Selected returns the chosen labels for a group, sorted for multi-select.
func (s *State) Selected(groupName string) []string {
	if label, ok := s.single[groupName]; ok {
		return []string{label}
	}
	chosen, ok := s.multi[groupName]
	if !ok || len(chosen) == 0 {
		return nil
	}
	labels := make([]string, 0, len(chosen))
	for label := range chosen {
		labels = append(labels, label)
	}
	sort.Strings(labels)
	return labels
}

// PriceOf sums the price of every selected option across the given groups.
func PriceOf(s *State, groups []catalog.Group) decimal.Decimal {
	total := decimal.Zero
	for _, group := range groups {
		if group.MultiSelect() {
			for label := range s.multi[group.Name] {
				if opt, ok := group.Option(label); ok {
					total = total.Add(opt.Price)
				}
			}
			continue
		}
		if label, ok := s.single[group.Name]; ok {
			if opt, ok := group.Option(label); ok {
				total = total.Add(opt.Price)
			}
		}
	}
	return total
}

// Snapshot freezes the state into its canonical serializable form.
func (s *State) Snapshot() Snapshot {
	snap := make(Snapshot, len(s.single)+len(s.multi))
	for group, label := range s.single {
		snap[group] = []string{label}
	}
	for group, chosen := range s.multi {
		if len(chosen) == 0 {
			continue
		}
		labels := make([]string, 0, len(chosen))
		for label := range chosen {
			labels = append(labels, label)
		}
		sort.Strings(labels)
		snap[group] = labels
	}
	return snap
}

// FromSnapshot rebuilds a validated state from its frozen form. Every group
// and label must exist on the product, required groups must carry exactly one
// label, and required groups absent from the snapshot are an error.
func FromSnapshot(product catalog.Product, snap Snapshot) (*State, error) {
	state := newState()

	for groupName, labels := range snap {
		group, ok := product.Group(groupName)
		if !ok {
			return nil, unknownGroup(groupName)
		}
		if group.Required() && len(labels) != 1 {
			return nil, pkgerrors.New(pkgerrors.CodeSelection,
				fmt.Sprintf("group %q requires exactly one selection", groupName))
		}
		for _, label := range labels {
			if _, ok := group.Option(label); !ok {
				return nil, unknownOption(groupName, label)
			}
			if group.MultiSelect() {
				if state.multi[groupName] == nil {
					state.multi[groupName] = make(map[string]struct{})
				}
				state.multi[groupName][label] = struct{}{}
			} else {
				state.single[groupName] = label
			}
		}
	}

	for _, group := range product.Groups {
		if group.Required() {
			if _, ok := state.single[group.Name]; !ok {
				return nil, pkgerrors.New(pkgerrors.CodeSelection,
					fmt.Sprintf("group %q requires a selection", group.Name))
			}
		}
	}
	return state, nil
}

func newState() *State {
	return &State{
		single: make(map[string]string),
		multi:  make(map[string]map[string]struct{}),
	}
}

func unknownGroup(name string) *pkgerrors.Error {
	return pkgerrors.New(pkgerrors.CodeSelection, fmt.Sprintf("unknown group %q", name))
}

func unknownOption(group, label string) *pkgerrors.Error {
	return pkgerrors.New(pkgerrors.CodeSelection, fmt.Sprintf("unknown option %q in group %q", label, group))
}
