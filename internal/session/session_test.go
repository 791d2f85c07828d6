package session

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestGenerateValidate(t *testing.T) {
	m, err := NewManager("test-secret", time.Hour)
	if err != nil {
		t.Fatalf("NewManager failed: %v", err)
	}

	token, err := m.Generate("draft-1")
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	id, err := m.Validate(token)
	if err != nil {
		t.Fatalf("Validate failed: %v", err)
	}
	if id != "draft-1" {
		t.Errorf("draft id = %q, want draft-1", id)
	}
}

func TestValidateRejects(t *testing.T) {
	now := time.Date(2026, time.May, 1, 12, 0, 0, 0, time.UTC)
	clock := func() time.Time { return now }

	m, _ := NewManager("secret-a", time.Hour, WithClock(clock))
	other, _ := NewManager("secret-b", time.Hour, WithClock(clock))

	token, err := m.Generate("draft-1")
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	if _, err := other.Validate(token); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("expected ErrInvalidToken for wrong key, got %v", err)
	}
	if _, err := m.Validate(token + "x"); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("expected ErrInvalidToken for tampered token, got %v", err)
	}

	now = now.Add(2 * time.Hour)
	if _, err := m.Validate(token); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("expected ErrInvalidToken for expired token, got %v", err)
	}
}

func TestRandomSecretsDiffer(t *testing.T) {
	a, _ := NewManager("", time.Hour)
	b, _ := NewManager("", time.Hour)

	token, _ := a.Generate("draft-1")
	if _, err := b.Validate(token); err == nil {
		t.Error("expected managers with random secrets to reject each other")
	}
}

func TestCookieRoundTrip(t *testing.T) {
	m, _ := NewManager("test-secret", time.Hour)

	rec := httptest.NewRecorder()
	if err := m.Set(rec, "draft-9"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	cookies := rec.Result().Cookies()
	if len(cookies) != 1 || !cookies[0].HttpOnly {
		t.Fatalf("unexpected cookies: %v", cookies)
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(cookies[0])
	id, err := m.DraftID(req)
	if err != nil || id != "draft-9" {
		t.Errorf("DraftID = %q, %v", id, err)
	}

	if _, err := m.DraftID(httptest.NewRequest(http.MethodGet, "/", nil)); !errors.Is(err, ErrNoSession) {
		t.Errorf("expected ErrNoSession, got %v", err)
	}

	rec = httptest.NewRecorder()
	m.Clear(rec)
	if c := rec.Result().Cookies(); len(c) != 1 || c[0].MaxAge >= 0 {
		t.Errorf("Clear cookies = %v", c)
	}
}
