package controllers

import (
	"net/http"

	"github.com/jrbautista/tindahan-pos/api/responses"
	"github.com/jrbautista/tindahan-pos/api/validators"
	"github.com/jrbautista/tindahan-pos/internal/customers"
	pkgerrors "github.com/jrbautista/tindahan-pos/pkg/errors"
	"github.com/jrbautista/tindahan-pos/pkg/logger"
)

// CustomersList serves the member picker with outstanding balances attached.
func CustomersList(svc customers.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "customer service unavailable"))
			return
		}

		list, err := svc.List(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]any{"customers": list})
	}
}

// CustomerGet returns one customer with their unpaid balance.
func CustomerGet(svc customers.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "customer service unavailable"))
			return
		}

		id, err := validators.ParsePathID(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		customer, err := svc.Get(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, customer)
	}
}
