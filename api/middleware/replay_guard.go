package middleware

import (
	"context"
	"net/http"

	"github.com/jrbautista/tindahan-pos/api/responses"
	pkgerrors "github.com/jrbautista/tindahan-pos/pkg/errors"
	"github.com/jrbautista/tindahan-pos/pkg/logger"
)

const csrfTokenHeader = "X-CSRF-Token"

type tokenVerifier interface {
	Verify(ctx context.Context, sessionID, presented string) error
}

// ReplayGuard requires the session's current anti-replay token on mutating
// requests. Cart mutations only verify the token; the checkout path rotates
// it, so a resubmitted checkout form is rejected here or in the service.
func ReplayGuard(tokens tokenVerifier, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sessionID := SessionIDFromContext(r.Context())
			if sessionID == "" {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing session"))
				return
			}

			presented := r.Header.Get(csrfTokenHeader)
			if err := tokens.Verify(r.Context(), sessionID, presented); err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
