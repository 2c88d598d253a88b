package controllers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jrbautista/tindahan-pos/api/middleware"
	"github.com/jrbautista/tindahan-pos/api/responses"
	"github.com/jrbautista/tindahan-pos/api/validators"
	checkoutsvc "github.com/jrbautista/tindahan-pos/internal/checkout"
	"github.com/jrbautista/tindahan-pos/pkg/enums"
	pkgerrors "github.com/jrbautista/tindahan-pos/pkg/errors"
	"github.com/jrbautista/tindahan-pos/pkg/logger"
)

type checkoutRequest struct {
	CustomerType   string          `json:"customer_type" validate:"omitempty,oneof=walkin member"`
	CustomerID     *int64          `json:"customer_id" validate:"omitempty,min=1"`
	PaymentMethod  string          `json:"payment_method"`
	AmountReceived json.RawMessage `json:"amount_received"`
	Token          string          `json:"token"`
}

// parseAmount coerces the tendered amount to a decimal. Absent or
// malformed values count as zero so the sale fails on payment math, not
// on parsing.
func parseAmount(raw json.RawMessage) decimal.Decimal {
	value := strings.Trim(strings.TrimSpace(string(raw)), `"`)
	if value == "" || value == "null" {
		return decimal.Zero
	}
	amount, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.Zero
	}
	return amount
}

// Checkout commits the session cart as a sale. The anti-replay token rides
// either the X-CSRF-Token header or the body's token field.
func Checkout(svc checkoutsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "checkout service unavailable"))
			return
		}

		var payload checkoutRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		token := r.Header.Get("X-CSRF-Token")
		if token == "" {
			token = payload.Token
		}

		input := checkoutsvc.Input{
			CustomerType:   enums.ParseCustomerType(payload.CustomerType),
			CustomerID:     payload.CustomerID,
			PaymentMethod:  enums.ParsePaymentMethod(payload.PaymentMethod),
			AmountReceived: parseAmount(payload.AmountReceived),
			Token:          token,
		}

		receipt, err := svc.Execute(
			r.Context(),
			middleware.SessionIDFromContext(r.Context()),
			middleware.CashierIDFromContext(r.Context()),
			input,
		)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, receipt)
	}
}
