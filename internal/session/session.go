// Package session keeps the wizard instance id in a signed cookie.
package session

import (
	"crypto/rand"
	"crypto/sha256"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/hkdf"
)

// CookieName is the name of the wizard session cookie.
const CookieName = "wisp_wizard"

var (
	ErrInvalidToken = errors.New("invalid or expired session")
	ErrNoSession    = errors.New("no wizard session")
)

const keyInfo = "wispgen wizard session v1"

// Manager signs and verifies wizard session tokens.
type Manager struct {
	key    []byte
	ttl    time.Duration
	secure bool
	now    func() time.Time
}

// Claims carries the draft a browser is working on.
type Claims struct {
	DraftID string `json:"draft_id"`
	jwt.RegisteredClaims
}

// Option configures a Manager.
type Option func(*Manager)

// WithSecureCookie marks cookies as HTTPS only.
func WithSecureCookie(secure bool) Option {
	return func(m *Manager) { m.secure = secure }
}

// WithClock overrides the time source used for expiry.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) { m.now = now }
}

// NewManager derives the signing key from secret. An empty secret gets a
// random one, which invalidates sessions on restart.
func NewManager(secret string, ttl time.Duration, opts ...Option) (*Manager, error) {
	ikm := []byte(secret)
	if len(ikm) == 0 {
		ikm = make([]byte, 32)
		if _, err := rand.Read(ikm); err != nil {
			return nil, fmt.Errorf("failed to generate session secret: %w", err)
		}
		slog.Warn("No session secret configured, using a random one")
	}

	key := make([]byte, 32)
	if _, err := io.ReadFull(hkdf.New(sha256.New, ikm, nil, []byte(keyInfo)), key); err != nil {
		return nil, fmt.Errorf("failed to derive session key: %w", err)
	}

	m := &Manager{key: key, ttl: ttl, now: time.Now}
	for _, opt := range opts {
		opt(m)
	}
	return m, nil
}

// Generate creates a signed token for draftID.
func (m *Manager) Generate(draftID string) (string, error) {
	now := m.now()
	claims := &Claims{
		DraftID: draftID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.key)
	if err != nil {
		return "", fmt.Errorf("failed to sign session: %w", err)
	}
	return signed, nil
}

// Validate parses token and returns the draft id it carries.
func (m *Manager) Validate(token string) (string, error) {
	parsed, err := jwt.ParseWithClaims(token, &Claims{},
		func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
			}
			return m.key, nil
		},
		jwt.WithTimeFunc(m.now),
	)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid || claims.DraftID == "" {
		return "", ErrInvalidToken
	}
	return claims.DraftID, nil
}

// Set writes the session cookie for draftID.
func (m *Manager) Set(w http.ResponseWriter, draftID string) error {
	token, err := m.Generate(draftID)
	if err != nil {
		return err
	}
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(m.ttl.Seconds()),
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

// DraftID reads the draft id from the request cookie. Returns ErrNoSession
// when there is no cookie and ErrInvalidToken when it does not verify.
func (m *Manager) DraftID(r *http.Request) (string, error) {
	c, err := r.Cookie(CookieName)
	if err != nil || c.Value == "" {
		return "", ErrNoSession
	}
	return m.Validate(c.Value)
}

// Clear removes the session cookie.
func (m *Manager) Clear(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	})
}
