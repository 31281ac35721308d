// Package auth issues and verifies signed session tokens.
package auth

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Session verification failures. The auth gate collapses all of these into a
// single uniform unauthenticated response; they stay distinct here for logs
// and metrics.
var (
	ErrMissingToken     = errors.New("session token missing")
	ErrMalformedToken   = errors.New("session token malformed")
	ErrInvalidSignature = errors.New("session token signature invalid")
	ErrExpiredToken     = errors.New("session token expired")
)

// SessionTTL is how long an issued session token stays valid.
const SessionTTL = 7 * 24 * time.Hour

// SessionCookieName is the cookie the session token rides in.
const SessionCookieName = "jwt"

// Issuer mints and verifies session tokens. The signing secret is injected at
// construction; nothing in this package reads process environment.
type Issuer struct {
	secret   []byte
	issuer   string
	audience string
	ttl      time.Duration
}

// NewIssuer returns an Issuer signing with the given secret.
func NewIssuer(secret string) *Issuer {
	return &Issuer{
		secret:   []byte(secret),
		issuer:   "babel-api",
		audience: "babel-client",
		ttl:      SessionTTL,
	}
}

// Issue creates a signed session token for the given user ID. Every call
// embeds a fresh issuance timestamp and JWT ID, so two tokens for the same
// user are never byte-identical.
func (i *Issuer) Issue(userID uint) (string, error) {
	if len(i.secret) == 0 {
		return "", fmt.Errorf("signing secret not configured")
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"sub": strconv.FormatUint(uint64(userID), 10),
		"iss": i.issuer,
		"aud": i.audience,
		"exp": now.Add(i.ttl).Unix(),
		"iat": now.Unix(),
		"nbf": now.Unix(),
		"jti": generateJTI(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(i.secret)
}

// Verify checks a session token and returns the user ID it was issued to.
// Failures are classified as missing, malformed, tampered, or expired.
func (i *Issuer) Verify(tokenString string) (uint, error) {
	if tokenString == "" {
		return 0, ErrMissingToken
	}

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return i.secret, nil
	})
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return 0, ErrExpiredToken
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return 0, ErrInvalidSignature
		default:
			return 0, ErrMalformedToken
		}
	}
	if !token.Valid {
		return 0, ErrMalformedToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, ErrMalformedToken
	}

	if issuer, issuerOk := claims["iss"].(string); !issuerOk || issuer != i.issuer {
		return 0, ErrMalformedToken
	}
	if audience, audienceOk := claims["aud"].(string); !audienceOk || audience != i.audience {
		return 0, ErrMalformedToken
	}

	sub, ok := claims["sub"].(string)
	if !ok {
		return 0, ErrMalformedToken
	}
	userID, err := strconv.ParseUint(sub, 10, 32)
	if err != nil || userID == 0 {
		return 0, ErrMalformedToken
	}

	return uint(userID), nil
}

// generateJTI creates a unique JWT ID to keep each issuance distinct.
func generateJTI() string {
	return fmt.Sprintf("%d-%s", time.Now().Unix(), uuid.New().String()[:8])
}
