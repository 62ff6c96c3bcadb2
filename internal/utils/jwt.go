package utils // package utils provides helper functions for token creation and hashing

import (
	"time" // time utilities for generating expirations

	"github.com/golang-jwt/jwt/v5" // JWT library for creating signed tokens
)

// SigninToken represents a signed JWT along with its expiry. The Token
// field contains the serialized JWT string. Exp stores the expiration
// timestamp as a time.Time. The token is returned once at signin and
// presented in the Authorization header on protected endpoints for its
// whole validity window; there is no refresh flow.
type SigninToken struct {
	Token string    // the serialized JWT string
	Exp   time.Time // the UTC expiration time
}

// NewSigninToken builds and signs an HS256 JWT for a user. It takes the
// signing secret, the user ID, the user's email, and a TTL in days. The
// JWT carries the identity claims the API boundary needs (user_id and
// email) plus the standard expiration (exp) and issued at (iat) claims.
func NewSigninToken(secret string, userID int64, email string, ttlDays int) (SigninToken, error) {
	exp := time.Now().UTC().Add(time.Duration(ttlDays) * 24 * time.Hour)
	claims := jwt.MapClaims{
		"user_id": userID,
		"email":   email,
		"exp":     exp.Unix(),
		"iat":     time.Now().UTC().Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString([]byte(secret))
	if err != nil {
		return SigninToken{}, err
	}
	return SigninToken{Token: signed, Exp: exp}, nil
}
