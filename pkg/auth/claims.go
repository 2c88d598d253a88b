package auth

import (
	"github.com/golang-jwt/jwt/v5"

	"github.com/jrbautista/tindahan-pos/pkg/enums"
)

// AccessTokenPayload captures the data available when minting a JWT for a
// register operator. SessionID keys the operator's cart and anti-replay
// token in Redis.
type AccessTokenPayload struct {
	CashierID int64
	Username  string
	Role      enums.UserRole
	SessionID string
}

// AccessTokenClaims represents the typed JWT issued to the register UI.
type AccessTokenClaims struct {
	CashierID int64          `json:"cashier_id"`
	Username  string         `json:"username"`
	Role      enums.UserRole `json:"role"`
	SessionID string         `json:"session_id"`
	jwt.RegisteredClaims
}
