package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Ahmad-Arslan-10/Steakaway/api/controllers"
	"github.com/Ahmad-Arslan-10/Steakaway/api/middleware"
	"github.com/Ahmad-Arslan-10/Steakaway/internal/catalog"
	"github.com/Ahmad-Arslan-10/Steakaway/internal/session"
	"github.com/Ahmad-Arslan-10/Steakaway/pkg/config"
	"github.com/Ahmad-Arslan-10/Steakaway/pkg/logger"
	"github.com/Ahmad-Arslan-10/Steakaway/pkg/metrics"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	menu *catalog.Catalog,
	sessions *session.Manager,
	store controllers.Pinger,
	engineMetrics *metrics.EngineMetrics,
) http.Handler {
	r := chi.NewRouter()

	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, store, logg))
	})

	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/auth/login", controllers.Login(cfg.JWT, sessions, logg))

		r.Get("/menu", controllers.MenuList(menu))
		r.Get("/menu/search", controllers.MenuSearch(menu))
		r.Route("/menu/products/{productID}", func(r chi.Router) {
			r.Get("/", controllers.MenuProduct(menu, logg))
			r.Post("/quote", controllers.MenuQuote(menu, logg))
		})

		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(cfg.JWT, sessions, logg))

			r.Post("/auth/logout", controllers.Logout(sessions, logg))

			r.Route("/cart", func(r chi.Router) {
				r.Get("/", controllers.CartFetch(logg))
				r.Delete("/", controllers.CartClear(sessions, engineMetrics, logg))
				r.Post("/items", controllers.CartAdd(menu, sessions, engineMetrics, logg))
				r.Patch("/items/{fingerprint}", controllers.CartUpdateQuantity(sessions, engineMetrics, logg))
				r.Delete("/items/{fingerprint}", controllers.CartRemove(sessions, engineMetrics, logg))
			})

			r.Route("/favorites", func(r chi.Router) {
				r.Get("/", controllers.FavoritesList(logg))
				r.Post("/{productID}/toggle", controllers.FavoritesToggle(menu, sessions, engineMetrics, logg))
			})
		})
	})

	return r
}
