package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Ahmad-Arslan-10/Steakaway/api/middleware"
	"github.com/Ahmad-Arslan-10/Steakaway/api/responses"
	"github.com/Ahmad-Arslan-10/Steakaway/api/validators"
	"github.com/Ahmad-Arslan-10/Steakaway/internal/cart"
	"github.com/Ahmad-Arslan-10/Steakaway/internal/catalog"
	"github.com/Ahmad-Arslan-10/Steakaway/internal/pricing"
	"github.com/Ahmad-Arslan-10/Steakaway/internal/selection"
	"github.com/Ahmad-Arslan-10/Steakaway/internal/session"
	pkgerrors "github.com/Ahmad-Arslan-10/Steakaway/pkg/errors"
	"github.com/Ahmad-Arslan-10/Steakaway/pkg/logger"
	"github.com/Ahmad-Arslan-10/Steakaway/pkg/metrics"
)

// CartFetch returns the session's cart with computed totals.
func CartFetch(logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		sess := middleware.SessionFromContext(ctx)
		if sess == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "session is not established"))
			return
		}

		sess.Lock()
		view := newCartView(sess.Cart)
		sess.Unlock()

		responses.WriteSuccess(w, view)
	}
}

type cartAddPayload struct {
	ProductID  string            `json:"product_id" validate:"required"`
	Selections selectionsPayload `json:"selections"`
	Quantity   int               `json:"quantity" validate:"omitempty,min=1"`
}

// CartAdd validates the customization, prices it, and adds the line.
func CartAdd(menu *catalog.Catalog, sessions *session.Manager, m *metrics.EngineMetrics, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		sess := middleware.SessionFromContext(ctx)
		if sess == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "session is not established"))
			return
		}

		var payload cartAddPayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		product, ok := menu.Product(payload.ProductID)
		if !ok {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeNotFound, "product not found"))
			return
		}

		state, err := selection.FromSnapshot(product, payload.Selections.snapshot())
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		sess.Lock()
		sess.Cart.Add(cart.AddInput{
			ProductID:  product.ID,
			Name:       product.Name,
			Image:      product.Image,
			UnitPrice:  pricing.UnitPrice(product, state),
			Quantity:   pricing.ClampQuantity(payload.Quantity),
			Selections: state.Snapshot(),
		})
		err = sessions.PersistCart(ctx, sess)
		view := newCartView(sess.Cart)
		sess.Unlock()

		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		m.IncCartMutation("add")
		responses.WriteSuccessStatus(w, http.StatusCreated, view)
	}
}

// Quantity is a pointer so an omitted field is a validation error
// rather than an implicit zero, which would silently remove the line.
type cartQuantityPayload struct {
	Quantity *int `json:"quantity" validate:"required,min=0"`
}

// CartUpdateQuantity sets a line's quantity. Anything below one removes
// the line.
func CartUpdateQuantity(sessions *session.Manager, m *metrics.EngineMetrics, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		sess := middleware.SessionFromContext(ctx)
		if sess == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "session is not established"))
			return
		}

		var payload cartQuantityPayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		fingerprint := chi.URLParam(r, "fingerprint")

		sess.Lock()
		sess.Cart.UpdateQuantity(fingerprint, *payload.Quantity)
		err := sessions.PersistCart(ctx, sess)
		view := newCartView(sess.Cart)
		sess.Unlock()

		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		m.IncCartMutation("update_quantity")
		responses.WriteSuccess(w, view)
	}
}

// CartRemove deletes a line by fingerprint.
func CartRemove(sessions *session.Manager, m *metrics.EngineMetrics, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		sess := middleware.SessionFromContext(ctx)
		if sess == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "session is not established"))
			return
		}

		fingerprint := chi.URLParam(r, "fingerprint")

		sess.Lock()
		sess.Cart.Remove(fingerprint)
		err := sessions.PersistCart(ctx, sess)
		view := newCartView(sess.Cart)
		sess.Unlock()

		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		m.IncCartMutation("remove")
		responses.WriteSuccess(w, view)
	}
}

// CartClear empties the cart.
func CartClear(sessions *session.Manager, m *metrics.EngineMetrics, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		sess := middleware.SessionFromContext(ctx)
		if sess == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "session is not established"))
			return
		}

		sess.Lock()
		sess.Cart.Clear()
		err := sessions.PersistCart(ctx, sess)
		view := newCartView(sess.Cart)
		sess.Unlock()

		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		m.IncCartMutation("clear")
		responses.WriteSuccess(w, view)
	}
}
