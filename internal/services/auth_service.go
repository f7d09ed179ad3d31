package services

import (
	"errors"
	"fmt"
	"time"

	"foodcourt/internal/domain"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrUnauthorized = errors.New("unauthorized access")
	ErrForbidden    = errors.New("forbidden access")
)

type sessionClaims struct {
	Identity domain.Identity `json:"identity"`
	jwt.RegisteredClaims
}

// TokenService signs and verifies session tokens. Tokens are not stored;
// validity is exactly the signature and its exp claim.
type TokenService struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewTokenService(secret string, ttl time.Duration) *TokenService {
	return &TokenService{secret: []byte(secret), ttl: ttl, now: time.Now}
}

func (s *TokenService) TTL() time.Duration { return s.ttl }

// Issue signs identity with an expiry of now+ttl.
func (s *TokenService) Issue(identity domain.Identity) (string, error) {
	if len(identity) == 0 {
		return "", errors.New("empty identity payload")
	}
	now := s.now()
	claims := sessionClaims{
		Identity: identity,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

// Verify returns the identity the token was issued for. Any failure,
// including an absent token, is ErrUnauthorized.
func (s *TokenService) Verify(raw string) (domain.Identity, error) {
	if raw == "" {
		return nil, ErrUnauthorized
	}
	var claims sessionClaims
	_, err := jwt.ParseWithClaims(raw, &claims, func(t *jwt.Token) (any, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnauthorized, err)
	}
	if len(claims.Identity) == 0 {
		return nil, fmt.Errorf("%w: token carries no identity", ErrUnauthorized)
	}
	return claims.Identity, nil
}
