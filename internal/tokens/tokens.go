// Package tokens is the signing codec for access and refresh tokens.
// Both kinds are HS256 JWTs; refresh tokens additionally carry a uuid
// JTI so every issued token is unique even for the same subject+expiry.
package tokens

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var ErrInvalidToken = errors.New("invalid token")

type AccessClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

type RefreshClaims struct {
	jwt.RegisteredClaims
}

type Codec struct {
	AccessSecret  []byte
	RefreshSecret []byte
}

func (c *Codec) GenerateAccess(username, role string, ttl time.Duration) (string, time.Time, error) {
	exp := time.Now().Add(ttl)
	claims := AccessClaims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   username,
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.AccessSecret)
	if err != nil {
		return "", time.Time{}, err
	}
	return token, exp, nil
}

func (c *Codec) GenerateRefresh(username string, ttl time.Duration) (string, time.Time, error) {
	exp := time.Now().Add(ttl)
	claims := RefreshClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   username,
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(exp),
			ID:        uuid.NewString(),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.RefreshSecret)
	if err != nil {
		return "", time.Time{}, err
	}
	return token, exp, nil
}

func (c *Codec) AccessClaims(tokenStr string) (*AccessClaims, error) {
	var claims AccessClaims
	if err := parse(tokenStr, &claims, c.AccessSecret); err != nil {
		return nil, err
	}
	return &claims, nil
}

func (c *Codec) RefreshClaims(tokenStr string) (*RefreshClaims, error) {
	var claims RefreshClaims
	if err := parse(tokenStr, &claims, c.RefreshSecret); err != nil {
		return nil, err
	}
	return &claims, nil
}

func (c *Codec) AccessSubject(tokenStr string) (string, error) {
	claims, err := c.AccessClaims(tokenStr)
	if err != nil {
		return "", err
	}
	return claims.Subject, nil
}

func (c *Codec) RefreshSubject(tokenStr string) (string, error) {
	claims, err := c.RefreshClaims(tokenStr)
	if err != nil {
		return "", err
	}
	return claims.Subject, nil
}

// AccessExpiry reads the expiry of a possibly already expired token:
// logout must still be able to record the denylist window for a token
// that timed out between issue and surrender.
func (c *Codec) AccessExpiry(tokenStr string) (time.Time, error) {
	var claims AccessClaims
	_, err := jwt.ParseWithClaims(tokenStr, &claims, func(t *jwt.Token) (any, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, errors.New("unexpected sign method")
		}
		return c.AccessSecret, nil
	}, jwt.WithoutClaimsValidation())
	if err != nil || claims.ExpiresAt == nil {
		return time.Time{}, ErrInvalidToken
	}
	return claims.ExpiresAt.Time, nil
}

// ValidAccess reports whether tokenStr is a live, correctly signed
// access token belonging to username. Expiry is compared strictly
// against the current time, no skew allowance.
func (c *Codec) ValidAccess(tokenStr, username string) bool {
	claims, err := c.AccessClaims(tokenStr)
	return err == nil && claims.Subject == username
}

func (c *Codec) ValidRefresh(tokenStr, username string) bool {
	claims, err := c.RefreshClaims(tokenStr)
	return err == nil && claims.Subject == username
}

func parse(tokenStr string, claims jwt.Claims, secret []byte) error {
	tkn, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (any, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, errors.New("unexpected sign method")
		}
		return secret, nil
	})
	if err != nil || !tkn.Valid {
		return ErrInvalidToken
	}
	return nil
}

// Digest is the stored form of a token: the raw signed string never
// touches the database.
func Digest(s string) string {
	sum := sha256.Sum256([]byte(s))
	return hex.EncodeToString(sum[:])
}
