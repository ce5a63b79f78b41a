package utils

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims carry the authenticated wallet address. The role claim is
// informational only; authorization always re-reads the stored role.
type Claims struct {
	Address string `json:"addr"`
	Role    string `json:"role"`
	jwt.RegisteredClaims
}

func SignJWT(secret string, address string, role string, expiresMin int) (string, error) {
	now := time.Now()
	claims := Claims{
		Address: address,
		Role:    role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(expiresMin) * time.Minute)),
		},
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(secret))
}
