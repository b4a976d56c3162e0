package jwt

import (
	"errors"
	"fmt"
	"time"

	"bookstore-api/internal/core/domain"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrTokenExpired = domain.ErrTokenExpired
	ErrTokenInvalid = domain.ErrTokenInvalid
)

// Claims represents the access token claims
type Claims struct {
	UserID uint     `json:"user_id"`
	Roles  []string `json:"role,omitempty"`
	jwt.RegisteredClaims
}

// Manager issues and validates HS256 access tokens
type Manager struct {
	key      []byte
	issuer   string
	validity time.Duration
	now      func() time.Time
}

// NewManager creates a token manager. An empty key is a configuration
// error: the manager is never built, so unsigned tokens cannot be issued.
func NewManager(key, issuer string, validity time.Duration) (*Manager, error) {
	if key == "" {
		return nil, fmt.Errorf("%w: jwt signing key is empty", domain.ErrConfiguration)
	}
	if issuer == "" {
		return nil, fmt.Errorf("%w: jwt issuer is empty", domain.ErrConfiguration)
	}
	if validity <= 0 {
		return nil, fmt.Errorf("%w: token validity must be positive, got %s", domain.ErrConfiguration, validity)
	}
	return &Manager{
		key:      []byte(key),
		issuer:   issuer,
		validity: validity,
		now:      time.Now,
	}, nil
}

// Validity returns the configured token lifetime
func (m *Manager) Validity() time.Duration {
	return m.validity
}

// Issue mints a signed access token for a verified identity and its roles
func (m *Manager) Issue(identity domain.Identity, roles []string) (string, error) {
	now := m.now()

	claims := Claims{
		UserID: identity.ID,
		Roles:  append([]string(nil), roles...),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   identity.Email,
			ID:        uuid.New().String(),
			Issuer:    m.issuer,
			Audience:  jwt.ClaimStrings{m.issuer},
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.validity)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.key)
}

// Validate checks signature, issuer, audience and expiry, and returns the claims
func (m *Manager) Validate(tokenString string) (*Claims, error) {
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(m.issuer),
		jwt.WithAudience(m.issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(m.now),
	)

	token, err := parser.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrTokenInvalid
		}
		return m.key, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, fmt.Errorf("%w: %v", ErrTokenInvalid, err)
	}

	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims, nil
	}

	return nil, ErrTokenInvalid
}

// Authenticate validates a bearer token and resolves the calling principal.
// Every failure is reported as domain.ErrUnauthenticated.
func (m *Manager) Authenticate(tokenString string) (*domain.Principal, error) {
	if tokenString == "" {
		return nil, fmt.Errorf("%w: access token required", domain.ErrUnauthenticated)
	}
	claims, err := m.Validate(tokenString)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrUnauthenticated, err)
	}
	return &domain.Principal{
		UserID:  claims.UserID,
		Subject: claims.Subject,
		TokenID: claims.ID,
		Roles:   claims.Roles,
	}, nil
}
