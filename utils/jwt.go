package utils

import (
	"errors"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Principal kinds carried in the token. A user token authenticates a
// reader/writer account, an admin token a back-office account.
const (
	KindUser  = "user"
	KindAdmin = "admin"
)

const tokenTTL = 72 * time.Hour

type Claims struct {
	ID   uint   `json:"id"`
	Role string `json:"role"`
	Kind string `json:"kind"`
	jwt.RegisteredClaims
}

func secret() []byte {
	return []byte(os.Getenv("JWT_SECRET"))
}

// GenerateToken mints a signed token for the given principal. Role and
// kind travel inside the signature, so the server never trusts
// client-supplied role headers.
func GenerateToken(id uint, role, kind string) (string, error) {
	now := time.Now()
	claims := Claims{
		ID:   id,
		Role: role,
		Kind: kind,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(tokenTTL)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret())
}

// VerifyToken parses and validates a token string and returns its claims.
func VerifyToken(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return secret(), nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}
