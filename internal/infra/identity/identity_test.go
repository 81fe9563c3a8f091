package identity

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aadilmughal786/one-goal-sub006/internal/domain"
)

func TestUserID_RoundTrip(t *testing.T) {
	p := New("test-secret")

	tok, err := p.Token("user-1", time.Minute)
	if err != nil {
		t.Fatalf("Token() error: %v", err)
	}

	uid, err := p.UserID(context.Background(), tok)
	if err != nil {
		t.Fatalf("UserID() error: %v", err)
	}
	if uid != "user-1" {
		t.Errorf("UserID() = %q, want %q", uid, "user-1")
	}
}

func TestUserID_EmptyCredential(t *testing.T) {
	p := New("test-secret")
	_, err := p.UserID(context.Background(), "")
	if !errors.Is(err, domain.ErrNoAuthenticatedUser) {
		t.Errorf("error = %v, want ErrNoAuthenticatedUser", err)
	}
}

func TestUserID_WrongSecret(t *testing.T) {
	tok, err := New("secret-a").Token("user-1", time.Minute)
	if err != nil {
		t.Fatalf("Token() error: %v", err)
	}

	_, err = New("secret-b").UserID(context.Background(), tok)
	if !errors.Is(err, domain.ErrNoAuthenticatedUser) {
		t.Errorf("error = %v, want ErrNoAuthenticatedUser", err)
	}
}

func TestUserID_ExpiredToken(t *testing.T) {
	p := New("test-secret")
	tok, err := p.Token("user-1", -time.Minute)
	if err != nil {
		t.Fatalf("Token() error: %v", err)
	}

	_, err = p.UserID(context.Background(), tok)
	if !errors.Is(err, domain.ErrNoAuthenticatedUser) {
		t.Errorf("error = %v, want ErrNoAuthenticatedUser", err)
	}
}

func TestUserID_InsecureMode(t *testing.T) {
	p := New("")
	uid, err := p.UserID(context.Background(), "local-user")
	if err != nil {
		t.Fatalf("UserID() error: %v", err)
	}
	if uid != "local-user" {
		t.Errorf("UserID() = %q, want %q", uid, "local-user")
	}
}
