// Package guard protects destructive operations behind a shared confirmation code
// or a short-lived admin token obtained with that code.
package guard

import (
	"crypto/subtle"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	DefaultCode     = "deletethis"
	DefaultTokenTTL = 15 * time.Minute

	issuer = "teamboard"
	scope  = "matches:delete"
)

var (
	ErrWrongCode      = errors.New("The code is incorrect.")
	ErrInvalidToken   = errors.New("invalid admin token")
	ErrExpiredToken   = errors.New("admin token has expired")
	ErrTokensDisabled = errors.New("admin tokens are not configured")
)

type adminClaims struct {
	jwt.RegisteredClaims
	Scope string `json:"scope"`
}

// Guard checks confirmation codes and issues/validates admin tokens.
type Guard struct {
	code   []byte
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// New creates a guard. An empty code falls back to DefaultCode; an empty secret disables tokens.
func New(code, secret string, ttl time.Duration) *Guard {
	if code == "" {
		code = DefaultCode
	}
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	return &Guard{
		code:   []byte(code),
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}
}

func (g *Guard) TokensEnabled() bool { return len(g.secret) > 0 }

// CheckCode compares code with the configured one in constant time.
func (g *Guard) CheckCode(code string) error {
	if subtle.ConstantTimeCompare([]byte(code), g.code) != 1 {
		return ErrWrongCode
	}
	return nil
}

// IssueToken exchanges a correct code for a signed admin token and its expiry.
func (g *Guard) IssueToken(code string) (string, time.Time, error) {
	if err := g.CheckCode(code); err != nil {
		return "", time.Time{}, err
	}
	if !g.TokensEnabled() {
		return "", time.Time{}, ErrTokensDisabled
	}
	now := g.now()
	expiresAt := now.Add(g.ttl)
	claims := &adminClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Issuer:    issuer,
			Subject:   "admin",
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		Scope: scope,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(g.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, expiresAt, nil
}

// ValidateToken checks signature, expiry, issuer and scope of an admin token.
func (g *Guard) ValidateToken(tokenString string) error {
	if !g.TokensEnabled() {
		return ErrTokensDisabled
	}
	token, err := jwt.ParseWithClaims(tokenString, &adminClaims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return g.secret, nil
	}, jwt.WithTimeFunc(g.now), jwt.WithIssuer(issuer))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return ErrExpiredToken
		}
		return ErrInvalidToken
	}
	claims, ok := token.Claims.(*adminClaims)
	if !ok || !token.Valid || claims.Scope != scope {
		return ErrInvalidToken
	}
	return nil
}

// Authorize accepts either a valid admin token or the confirmation code.
// A token, when present and tokens are enabled, takes precedence over the code.
func (g *Guard) Authorize(code, token string) error {
	if token != "" && g.TokensEnabled() {
		return g.ValidateToken(token)
	}
	return g.CheckCode(code)
}
