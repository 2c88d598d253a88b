package controllers

import (
	"net/http"

	"github.com/jrbautista/tindahan-pos/api/middleware"
	"github.com/jrbautista/tindahan-pos/api/responses"
	pkgerrors "github.com/jrbautista/tindahan-pos/pkg/errors"
	"github.com/jrbautista/tindahan-pos/pkg/logger"
	"github.com/jrbautista/tindahan-pos/pkg/session"
)

// SessionToken returns the session's current anti-replay token, minting one
// when the session is fresh. The register UI calls this on load and after
// any checkout response that carries no next token.
func SessionToken(tokens session.Manager, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if tokens == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "session manager unavailable"))
			return
		}

		sessionID := middleware.SessionIDFromContext(r.Context())
		token, err := tokens.Ensure(r.Context(), sessionID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"token": token})
	}
}
