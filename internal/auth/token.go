package auth

import (
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/reklik/reklik-server/internal/model"
)

// Claims is the payload of a session token. The role claim is the sole
// basis for downstream authorization decisions, so the claim set here must
// stay in sync with what the JWT middleware expects.
type Claims struct {
	jwt.RegisteredClaims
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// UserID parses the subject claim back into a user ID.
func (c *Claims) UserID() (uint64, error) {
	return strconv.ParseUint(c.Subject, 10, 64)
}

// TokenIssuer builds and signs HS256 session tokens, and validates tokens
// it previously issued. The same symmetric secret is used for both.
type TokenIssuer struct {
	secret   string
	issuer   string
	audience string
	ttl      time.Duration
}

// NewTokenIssuer returns an issuer stamping iss/aud on every token, with
// expiry ttlMin minutes after issuance.
func NewTokenIssuer(secret, issuer, audience string, ttlMin int) *TokenIssuer {
	return &TokenIssuer{
		secret:   secret,
		issuer:   issuer,
		audience: audience,
		ttl:      time.Duration(ttlMin) * time.Minute,
	}
}

// Issue signs a session token for u and returns it with its absolute
// expiry. exp is exactly iat + the configured TTL. An empty signing secret
// is a configuration fault, never a silently unsigned token.
func (i *TokenIssuer) Issue(u model.User) (string, time.Time, error) {
	if i.secret == "" {
		return "", time.Time{}, ErrConfiguration
	}
	now := time.Now().UTC()
	exp := now.Add(i.ttl)
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatUint(u.ID, 10),
			Issuer:    i.issuer,
			Audience:  jwt.ClaimStrings{i.audience},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
		Name:  u.Name,
		Email: u.Email,
		Role:  u.Role,
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(i.secret))
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign session token: %w", err)
	}
	return signed, exp, nil
}

// Parse validates a previously issued token: signature, issuer, audience
// and expiry. It is used by the JWT middleware; the claims it returns are
// trusted downstream.
func (i *TokenIssuer) Parse(raw string) (*Claims, error) {
	claims := &Claims{}
	tok, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return []byte(i.secret), nil
	},
		jwt.WithIssuer(i.issuer),
		jwt.WithAudience(i.audience),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, fmt.Errorf("parse session token: %w", err)
	}
	if !tok.Valid {
		return nil, fmt.Errorf("session token is invalid")
	}
	return claims, nil
}
