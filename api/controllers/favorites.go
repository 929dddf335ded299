package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Ahmad-Arslan-10/Steakaway/api/middleware"
	"github.com/Ahmad-Arslan-10/Steakaway/api/responses"
	"github.com/Ahmad-Arslan-10/Steakaway/internal/catalog"
	"github.com/Ahmad-Arslan-10/Steakaway/internal/favorites"
	"github.com/Ahmad-Arslan-10/Steakaway/internal/selection"
	"github.com/Ahmad-Arslan-10/Steakaway/internal/session"
	pkgerrors "github.com/Ahmad-Arslan-10/Steakaway/pkg/errors"
	"github.com/Ahmad-Arslan-10/Steakaway/pkg/logger"
	"github.com/Ahmad-Arslan-10/Steakaway/pkg/metrics"
)

// FavoritesList returns the session's favorites in the order added.
func FavoritesList(logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		sess := middleware.SessionFromContext(ctx)
		if sess == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "session is not established"))
			return
		}

		sess.Lock()
		items := sess.Favorites.List()
		sess.Unlock()

		responses.WriteSuccess(w, map[string]any{"items": newFavoriteViews(items)})
	}
}

type favoriteToggleResponse struct {
	ProductID string         `json:"product_id"`
	Favorited bool           `json:"favorited"`
	Items     []favoriteView `json:"items"`
}

// FavoritesToggle flips a product's favorite status. The cached display
// price is the product's default-selection price.
func FavoritesToggle(menu *catalog.Catalog, sessions *session.Manager, m *metrics.EngineMetrics, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		sess := middleware.SessionFromContext(ctx)
		if sess == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "session is not established"))
			return
		}

		product, ok := menu.Product(chi.URLParam(r, "productID"))
		if !ok {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeNotFound, "product not found"))
			return
		}

		_, price := selection.Initialize(product)

		sess.Lock()
		favorited := sess.Favorites.Toggle(favorites.Item{
			ProductID: product.ID,
			Name:      product.Name,
			Image:     product.Image,
			Price:     price,
		})
		err := sessions.PersistFavorites(ctx, sess)
		items := sess.Favorites.List()
		sess.Unlock()

		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		outcome := "removed"
		if favorited {
			outcome = "added"
		}
		m.IncFavoriteToggle(outcome)

		responses.WriteSuccess(w, favoriteToggleResponse{
			ProductID: product.ID,
			Favorited: favorited,
			Items:     newFavoriteViews(items),
		})
	}
}
