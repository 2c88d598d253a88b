package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jrbautista/tindahan-pos/api/controllers"
	"github.com/jrbautista/tindahan-pos/api/middleware"
	cartsvc "github.com/jrbautista/tindahan-pos/internal/cart"
	"github.com/jrbautista/tindahan-pos/internal/catalog"
	checkoutsvc "github.com/jrbautista/tindahan-pos/internal/checkout"
	"github.com/jrbautista/tindahan-pos/internal/customers"
	"github.com/jrbautista/tindahan-pos/internal/transactions"
	"github.com/jrbautista/tindahan-pos/pkg/config"
	"github.com/jrbautista/tindahan-pos/pkg/enums"
	"github.com/jrbautista/tindahan-pos/pkg/logger"
	"github.com/jrbautista/tindahan-pos/pkg/session"
)

// Deps bundles everything the router needs.
type Deps struct {
	Config       *config.Config
	Logger       *logger.Logger
	DBPinger     controllers.Pinger
	RedisPinger  controllers.Pinger
	Registry     *prometheus.Registry
	Sessions     session.Manager
	Catalog      catalog.Service
	Customers    customers.Service
	Cart         cartsvc.Service
	Checkout     checkoutsvc.Service
	Transactions transactions.Service
}

func NewRouter(deps Deps) http.Handler {
	cfg := deps.Config
	logg := deps.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, deps.DBPinger, deps.RedisPinger))
	})

	if deps.Registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(deps.Registry, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, logg))

		r.Get("/session/token", controllers.SessionToken(deps.Sessions, logg))

		r.Get("/products", controllers.ProductsList(deps.Catalog, logg))
		r.Get("/products/barcode/{code}", controllers.ProductByBarcode(deps.Catalog, logg))

		r.Get("/customers", controllers.CustomersList(deps.Customers, logg))
		r.Get("/customers/{id}", controllers.CustomerGet(deps.Customers, logg))

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", controllers.CartView(deps.Cart, logg))

			// Mutations must carry the session's current anti-replay token.
			r.Group(func(r chi.Router) {
				r.Use(middleware.ReplayGuard(deps.Sessions, logg))
				r.Post("/items", controllers.CartAddItem(deps.Cart, logg))
				r.Patch("/items/{index}", controllers.CartUpdateItem(deps.Cart, logg))
				r.Delete("/items/{index}", controllers.CartRemoveItem(deps.Cart, logg))
			})
		})

		// Checkout verifies and rotates the token itself.
		r.Post("/checkout", controllers.Checkout(deps.Checkout, logg))

		r.Get("/transactions", controllers.TransactionsList(deps.Transactions, logg))
		r.Get("/transactions/{id}", controllers.TransactionGet(deps.Transactions, logg))

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireRole(string(enums.UserRoleAdmin), logg))
			r.Post("/credits/{id}/mark-paid", controllers.CreditMarkPaid(deps.Transactions, logg))
		})
	})

	return r
}
