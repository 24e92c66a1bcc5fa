package session

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// CookieName is the cookie holding the signed session token.
const CookieName = "muni_session"

var (
	// ErrInvalidToken covers missing, malformed or badly signed tokens.
	ErrInvalidToken = errors.New("invalid session token")
	// ErrExpired means the session outlived its absolute lifetime.
	ErrExpired = errors.New("session expired")
)

// Principal is the authenticated identity reconstructed from the signed
// cookie on every request. The CSRF token is minted once per login; issuing
// a new session rotates it.
type Principal struct {
	Username  string
	Role      string
	LoginAt   time.Time
	SessionID string
	CSRFToken string
}

// Manager issues and verifies session tokens. The lifetime is absolute:
// it is measured from login, not from last activity.
type Manager struct {
	secret []byte
	ttl    time.Duration
}

// NewManager builds a Manager signing with the given secret.
func NewManager(secret string, ttl time.Duration) *Manager {
	return &Manager{secret: []byte(secret), ttl: ttl}
}

// TTL returns the absolute session lifetime.
func (m *Manager) TTL() time.Duration { return m.ttl }

// Issue mints a fresh signed token for the given account. A new session ID
// and CSRF secret are generated on every call.
func (m *Manager) Issue(username, role string, now time.Time) (string, Principal, error) {
	principal := Principal{
		Username:  username,
		Role:      role,
		LoginAt:   now,
		SessionID: uuid.NewString(),
		CSRFToken: uuid.NewString(),
	}

	claims := jwt.MapClaims{
		"sub":  principal.Username,
		"role": principal.Role,
		"sid":  principal.SessionID,
		"csrf": principal.CSRFToken,
		"iat":  principal.LoginAt.Unix(),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", Principal{}, fmt.Errorf("failed to sign session token: %w", err)
	}

	return signed, principal, nil
}

// Parse verifies the token signature and reconstructs the principal.
// It returns ErrExpired once the absolute lifetime has elapsed.
func (m *Manager) Parse(tokenString string, now time.Time) (Principal, error) {
	if tokenString == "" {
		return Principal{}, ErrInvalidToken
	}

	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method")
		}
		return m.secret, nil
	})
	if err != nil || !token.Valid {
		return Principal{}, ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return Principal{}, ErrInvalidToken
	}

	principal := Principal{
		Username:  stringClaim(claims, "sub"),
		Role:      stringClaim(claims, "role"),
		SessionID: stringClaim(claims, "sid"),
		CSRFToken: stringClaim(claims, "csrf"),
	}
	if principal.Username == "" || principal.Role == "" {
		return Principal{}, ErrInvalidToken
	}

	issuedAt, ok := claims["iat"].(float64)
	if !ok {
		return Principal{}, ErrInvalidToken
	}
	principal.LoginAt = time.Unix(int64(issuedAt), 0)

	if m.ttl > 0 && now.Sub(principal.LoginAt) > m.ttl {
		return principal, ErrExpired
	}

	return principal, nil
}

func stringClaim(claims jwt.MapClaims, key string) string {
	if value, ok := claims[key].(string); ok {
		return value
	}
	return ""
}
