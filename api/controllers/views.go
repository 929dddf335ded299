package controllers

import (
	"encoding/json"
	"fmt"

	"github.com/Ahmad-Arslan-10/Steakaway/internal/cart"
	"github.com/Ahmad-Arslan-10/Steakaway/internal/catalog"
	"github.com/Ahmad-Arslan-10/Steakaway/internal/favorites"
	"github.com/Ahmad-Arslan-10/Steakaway/internal/pricing"
	"github.com/Ahmad-Arslan-10/Steakaway/internal/selection"
)

// selectionsPayload accepts the wire shape clients send for selections:
// one label for single-select groups, a label array for multi-select
// groups. Both normalize to label slices.
type selectionsPayload map[string][]string

func (p *selectionsPayload) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	out := make(map[string][]string, len(raw))
	for group, value := range raw {
		var single string
		if err := json.Unmarshal(value, &single); err == nil {
			out[group] = []string{single}
			continue
		}
		var many []string
		if err := json.Unmarshal(value, &many); err != nil {
			return fmt.Errorf("selections for %q must be a label or an array of labels", group)
		}
		out[group] = many
	}
	*p = out
	return nil
}

func (p selectionsPayload) snapshot() selection.Snapshot {
	if p == nil {
		return selection.Snapshot{}
	}
	return selection.Snapshot(p)
}

type optionView struct {
	Label string `json:"label"`
	Price string `json:"price"`
}

type groupView struct {
	Name    string       `json:"name"`
	Kind    string       `json:"kind"`
	Options []optionView `json:"options"`
}

type productView struct {
	ID           string      `json:"id"`
	Name         string      `json:"name"`
	Description  string      `json:"description,omitempty"`
	BasePrice    string      `json:"base_price"`
	Image        string      `json:"image,omitempty"`
	Customizable bool        `json:"customizable"`
	Groups       []groupView `json:"groups,omitempty"`
}

type productDetailView struct {
	productView
	DefaultSelections selection.Snapshot `json:"default_selections"`
	StartingPrice     string             `json:"starting_price"`
}

type categoryView struct {
	Name     string        `json:"name"`
	Products []productView `json:"products"`
}

type cartLineView struct {
	Fingerprint string             `json:"fingerprint"`
	ProductID   string             `json:"product_id"`
	Name        string             `json:"name"`
	Image       string             `json:"image,omitempty"`
	UnitPrice   string             `json:"unit_price"`
	Quantity    int                `json:"quantity"`
	LineTotal   string             `json:"line_total"`
	Selections  selection.Snapshot `json:"selections,omitempty"`
}

type cartView struct {
	Lines      []cartLineView `json:"lines"`
	Subtotal   string         `json:"subtotal"`
	Tax        string         `json:"tax"`
	GrandTotal string         `json:"grand_total"`
	ItemCount  int            `json:"item_count"`
}

type favoriteView struct {
	ProductID string `json:"product_id"`
	Name      string `json:"name"`
	Image     string `json:"image,omitempty"`
	Price     string `json:"price"`
}

func newProductView(product catalog.Product) productView {
	view := productView{
		ID:           product.ID,
		Name:         product.Name,
		Description:  product.Description,
		BasePrice:    product.BasePrice.StringFixed(2),
		Image:        product.Image,
		Customizable: product.Customizable(),
	}
	for _, group := range product.Groups {
		groupV := groupView{Name: group.Name, Kind: string(group.Kind)}
		for _, opt := range group.Options {
			groupV.Options = append(groupV.Options, optionView{
				Label: opt.Label,
				Price: opt.Price.StringFixed(2),
			})
		}
		view.Groups = append(view.Groups, groupV)
	}
	return view
}

func newProductDetailView(product catalog.Product) productDetailView {
	state, startingPrice := selection.Initialize(product)
	return productDetailView{
		productView:       newProductView(product),
		DefaultSelections: state.Snapshot(),
		StartingPrice:     startingPrice.StringFixed(2),
	}
}

func newCartView(c *cart.Cart) cartView {
	view := cartView{
		Lines:      []cartLineView{},
		Subtotal:   c.Subtotal().StringFixed(2),
		Tax:        c.Tax().StringFixed(2),
		GrandTotal: c.GrandTotal().StringFixed(2),
		ItemCount:  c.TotalItemCount(),
	}
	for _, line := range c.Lines() {
		view.Lines = append(view.Lines, cartLineView{
			Fingerprint: line.Fingerprint,
			ProductID:   line.ProductID,
			Name:        line.Name,
			Image:       line.Image,
			UnitPrice:   line.UnitPrice.StringFixed(2),
			Quantity:    line.Quantity,
			LineTotal:   pricing.LineTotal(line.UnitPrice, line.Quantity).StringFixed(2),
			Selections:  line.Selections,
		})
	}
	return view
}

func newFavoriteViews(items []favorites.Item) []favoriteView {
	views := make([]favoriteView, 0, len(items))
	for _, item := range items {
		views = append(views, favoriteView{
			ProductID: item.ProductID,
			Name:      item.Name,
			Image:     item.Image,
			Price:     item.Price.StringFixed(2),
		})
	}
	return views
}
