package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/Ahmad-Arslan-10/Steakaway/api/responses"
	"github.com/Ahmad-Arslan-10/Steakaway/api/validators"
	"github.com/Ahmad-Arslan-10/Steakaway/internal/cart"
	"github.com/Ahmad-Arslan-10/Steakaway/internal/catalog"
	"github.com/Ahmad-Arslan-10/Steakaway/internal/pricing"
	"github.com/Ahmad-Arslan-10/Steakaway/internal/selection"
	pkgerrors "github.com/Ahmad-Arslan-10/Steakaway/pkg/errors"
	"github.com/Ahmad-Arslan-10/Steakaway/pkg/logger"
)

// MenuList returns the full menu grouped by category.
func MenuList(menu *catalog.Catalog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		categories := make([]categoryView, 0, len(menu.Categories()))
		for _, category := range menu.Categories() {
			view := categoryView{Name: category.Name, Products: make([]productView, 0, len(category.Products))}
			for _, product := range category.Products {
				view.Products = append(view.Products, newProductView(product))
			}
			categories = append(categories, view)
		}
		responses.WriteSuccess(w, map[string]any{"categories": categories})
	}
}

// MenuSearch filters products by a case-insensitive name substring.
// An empty query returns the whole menu flattened.
func MenuSearch(menu *catalog.Catalog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query := strings.TrimSpace(r.URL.Query().Get("q"))

		results := menu.Search(query)
		views := make([]productView, 0, len(results))
		for _, product := range results {
			views = append(views, newProductView(product))
		}

		responses.WriteSuccess(w, map[string]any{
			"query":    query,
			"products": views,
		})
	}
}

// MenuProduct returns one product with its default selections and the
// price those defaults produce.
func MenuProduct(menu *catalog.Catalog, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		product, ok := menu.Product(chi.URLParam(r, "productID"))
		if !ok {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeNotFound, "product not found"))
			return
		}

		responses.WriteSuccess(w, newProductDetailView(product))
	}
}

type quotePayload struct {
	Selections selectionsPayload `json:"selections"`
	Quantity   int               `json:"quantity" validate:"omitempty,min=1"`
}

type quoteResponse struct {
	ProductID   string             `json:"product_id"`
	Fingerprint string             `json:"fingerprint"`
	Selections  selection.Snapshot `json:"selections"`
	UnitPrice   string             `json:"unit_price"`
	Quantity    int                `json:"quantity"`
	LineTotal   string             `json:"line_total"`
}

// MenuQuote prices a customization without touching the cart. Unknown
// groups or labels and missing required groups are rejected.
func MenuQuote(menu *catalog.Catalog, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		product, ok := menu.Product(chi.URLParam(r, "productID"))
		if !ok {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeNotFound, "product not found"))
			return
		}

		var payload quotePayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		state, err := selection.FromSnapshot(product, payload.Selections.snapshot())
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		quantity := pricing.ClampQuantity(payload.Quantity)
		unitPrice := pricing.UnitPrice(product, state)
		snapshot := state.Snapshot()

		responses.WriteSuccess(w, quoteResponse{
			ProductID:   product.ID,
			Fingerprint: cart.Fingerprint(product.ID, snapshot),
			Selections:  snapshot,
			UnitPrice:   unitPrice.StringFixed(2),
			Quantity:    quantity,
			LineTotal:   pricing.LineTotal(unitPrice, quantity).StringFixed(2),
		})
	}
}
