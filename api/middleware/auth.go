package middleware

import (
	"net/http"
	"strings"

	"github.com/jrbautista/tindahan-pos/api/responses"
	pkgauth "github.com/jrbautista/tindahan-pos/pkg/auth"
	"github.com/jrbautista/tindahan-pos/pkg/config"
	pkgerrors "github.com/jrbautista/tindahan-pos/pkg/errors"
	"github.com/jrbautista/tindahan-pos/pkg/logger"
)

// Auth validates a bearer token and seeds the request context with the
// cashier identity and register session.
func Auth(cfg config.JWTConfig, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := strings.TrimSpace(r.Header.Get("Authorization"))
			if raw == "" {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing credentials"))
				return
			}

			token := raw
			if strings.HasPrefix(strings.ToLower(token), "bearer ") {
				token = strings.TrimSpace(token[7:])
			}
			if token == "" {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing credentials"))
				return
			}

			claims, err := pkgauth.ParseAccessToken(cfg, token)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "invalid token"))
				return
			}
			if claims.SessionID == "" {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing session id"))
				return
			}

			ctx := WithCashierID(r.Context(), claims.CashierID)
			ctx = WithRole(ctx, string(claims.Role))
			ctx = WithSessionID(ctx, claims.SessionID)

			if logg != nil {
				ctx = logg.WithFields(ctx, map[string]any{
					"cashier_id": claims.CashierID,
					"actor_role": string(claims.Role),
					"session_id": claims.SessionID,
				})
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
