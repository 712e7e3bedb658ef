// Package auth issues and checks the bearer tokens used by the API.
package auth

import (
	"crypto/rand"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

type Claims struct {
	UserID   uint   `json:"user_id"`
	Nickname string `json:"nickname"`
	Admin    bool   `json:"admin,omitempty"`
	jwt.RegisteredClaims
}

type Tokens struct {
	key []byte
	ttl time.Duration
}

// NewTokens creates a token issuer. An empty secret gets a random key,
// which invalidates all sessions on restart.
func NewTokens(secret string, ttl time.Duration) *Tokens {
	key := []byte(secret)

	if len(key) == 0 {
		key = make([]byte, 32)
		_, _ = rand.Read(key)
	}

	if ttl <= 0 {
		ttl = time.Hour * 24
	}

	return &Tokens{key: key, ttl: ttl}
}

func (t *Tokens) Generate(userID uint, nickname string, admin bool) (string, error) {
	now := time.Now()

	claims := &Claims{
		UserID:   userID,
		Nickname: nickname,
		Admin:    admin,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(t.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    "govtt",
		},
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.key)
}

func (t *Tokens) Validate(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}

		return t.key, nil
	})

	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims, nil
	}

	return nil, jwt.ErrSignatureInvalid
}
