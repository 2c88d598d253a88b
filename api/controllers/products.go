package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/jrbautista/tindahan-pos/api/responses"
	"github.com/jrbautista/tindahan-pos/internal/catalog"
	pkgerrors "github.com/jrbautista/tindahan-pos/pkg/errors"
	"github.com/jrbautista/tindahan-pos/pkg/logger"
)

// ProductsList serves the register grid grouped by category.
func ProductsList(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		groups, err := svc.ListProducts(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]any{"categories": groups})
	}
}

// ProductByBarcode resolves scanner input to a product.
func ProductByBarcode(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		product, err := svc.FindByBarcode(r.Context(), chi.URLParam(r, "code"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, product)
	}
}
