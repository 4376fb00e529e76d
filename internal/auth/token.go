// Package auth issues and verifies the HS256 session tokens handed out on
// login and registration.
package auth

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/reservaya/api/internal/clock"
)

var ErrInvalidToken = errors.New("invalid token")

const DefaultTTL = 72 * time.Hour

type Claims struct {
	Email string `json:"email"`
	Name  string `json:"name"`
	jwt.RegisteredClaims
}

type Issuer struct {
	secret []byte
	ttl    time.Duration
	clock  clock.Clock
}

func NewIssuer(secret []byte, ttl time.Duration, clk clock.Clock) *Issuer {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Issuer{secret: secret, ttl: ttl, clock: clk}
}

// Issue signs a token for the user. Tokens issued at different instants
// differ even for the same user.
func (i *Issuer) Issue(userID, email, name string) (string, error) {
	now := i.clock.Now()
	claims := Claims{
		Email: email,
		Name:  name,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        strconv.FormatInt(now.UnixNano(), 10),
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(i.ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(i.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

func (i *Issuer) Parse(raw string) (Claims, error) {
	var claims Claims
	parser := jwt.Parser{ValidMethods: []string{jwt.SigningMethodHS256.Alg()}, SkipClaimsValidation: true}
	token, err := parser.ParseWithClaims(raw, &claims, func(*jwt.Token) (interface{}, error) {
		return i.secret, nil
	})
	if err != nil || !token.Valid {
		return Claims{}, ErrInvalidToken
	}
	if claims.ExpiresAt != nil && !i.clock.Now().Before(claims.ExpiresAt.Time) {
		return Claims{}, ErrInvalidToken
	}
	return claims, nil
}
