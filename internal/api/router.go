package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/openshelf/catalog-api/internal/api/middleware"
	"github.com/openshelf/catalog-api/internal/api/shared"
)

// NewRouter assembles the HTTP routing tree for the catalog API.
func NewRouter(
	productHandler *ProductHandler,
	userHandler *UserHandler,
	logger *slog.Logger,
) chi.Router {
	r := chi.NewRouter()

	// Standard middleware stack
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.NewTraceMiddleware(logger))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		shared.RespondWithJSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api", func(r chi.Router) {
		r.Route("/products", func(r chi.Router) {
			r.Post("/", productHandler.RegisterProduct)
			r.Get("/", productHandler.ListProducts)
			r.Get("/price-range", productHandler.ListProductsByPriceRange)
			r.Get("/low-stock", productHandler.ListLowStockProducts)

			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", productHandler.GetProduct)
				r.Put("/", productHandler.ReplaceProduct)
				r.Delete("/", productHandler.DeleteProduct)
				r.Post("/stock/adjustments", productHandler.AdjustStock)
				r.Put("/stock", productHandler.ReplaceStock)
				r.Put("/price", productHandler.SetPrice)
			})
		})

		r.Route("/users", func(r chi.Router) {
			r.Post("/", userHandler.CreateUser)
			r.Get("/", userHandler.ListUsers)

			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", userHandler.GetUser)
				r.Put("/", userHandler.UpdateUser)
				r.Patch("/", userHandler.PatchUser)
				r.Delete("/", userHandler.DeleteUser)
			})
		})
	})

	return r
}
