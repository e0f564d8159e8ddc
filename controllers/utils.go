package controllers

import (
	"time"

	"github.com/golang-jwt/jwt/v4"
)

// GenerateSessionToken signs an HS256 token whose subject is the session id.
func GenerateSessionToken(sessionID string, secret string) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   sessionID,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour * 72)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	})
	return token.SignedString([]byte(secret))
}
