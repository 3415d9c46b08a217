package jwt

import "github.com/golang-jwt/jwt/v5"

// Claims carried by every access token issued to an admin session.
type Claims struct {
	IdentityID int64    `json:"identity_id"`
	Roles      []string `json:"roles"`
	jwt.RegisteredClaims
}
