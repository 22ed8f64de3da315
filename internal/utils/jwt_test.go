package utils

import (
	"errors"
	"testing"
	"time"
)

func TestGenerateAndParseToken(t *testing.T) {
	issuer := NewTokenIssuer("secret", time.Hour)
	issued, err := issuer.GenerateToken(42)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if issued.JTI == "" {
		t.Fatal("missing jti")
	}

	claims, err := issuer.ParseToken(issued.Token)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if claims.Id != issued.JTI {
		t.Fatalf("jti: got %q want %q", claims.Id, issued.JTI)
	}
	id, err := claims.UserID()
	if err != nil || id != 42 {
		t.Fatalf("user id: got %d, %v", id, err)
	}
}

func TestTokensAreUnique(t *testing.T) {
	issuer := NewTokenIssuer("secret", time.Hour)
	a, _ := issuer.GenerateToken(1)
	b, _ := issuer.GenerateToken(1)
	if a.JTI == b.JTI || a.Token == b.Token {
		t.Fatal("two tokens for the same user must differ")
	}
}

func TestParseTokenRejects(t *testing.T) {
	issuer := NewTokenIssuer("secret", time.Hour)
	issued, _ := issuer.GenerateToken(1)

	other := NewTokenIssuer("other", time.Hour)
	if _, err := other.ParseToken(issued.Token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("wrong secret: got %v", err)
	}

	expired := NewTokenIssuer("secret", time.Hour)
	expired.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	old, _ := expired.GenerateToken(1)
	if _, err := issuer.ParseToken(old.Token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expired: got %v", err)
	}

	if _, err := issuer.ParseToken("not-a-token"); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("garbage: got %v", err)
	}
}
