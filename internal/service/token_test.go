package service

import (
	"StreamHub/internal/model"
	"StreamHub/pkg/apperr"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func testUser() *model.User {
	u := &model.User{Username: "alice", Role: model.RoleUser}
	u.ID = "user-1"
	return u
}

func TestTokenRoundTrip(t *testing.T) {
	m := NewTokenManager("test-secret-0123456789", time.Hour)
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	m.now = func() time.Time { return now }

	token, expiresAt, err := m.Sign(testUser())
	if err != nil {
		t.Fatal(err)
	}
	if !expiresAt.Equal(now.Add(time.Hour)) {
		t.Errorf("expiresAt = %v", expiresAt)
	}

	caller, err := m.Parse(token)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if caller.UserID != "user-1" || caller.Username != "alice" || caller.Role != model.RoleUser {
		t.Errorf("caller = %+v", caller)
	}
}

func TestTokenExpired(t *testing.T) {
	m := NewTokenManager("test-secret-0123456789", time.Hour)
	issued := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	m.now = func() time.Time { return issued }
	token, _, err := m.Sign(testUser())
	if err != nil {
		t.Fatal(err)
	}

	m.now = func() time.Time { return issued.Add(2 * time.Hour) }
	if _, err := m.Parse(token); !apperr.Is(err, apperr.KindUnauthorized) {
		t.Errorf("got %v, want unauthorized", err)
	}
}

func TestTokenWrongSecret(t *testing.T) {
	signer := NewTokenManager("test-secret-0123456789", time.Hour)
	token, _, err := signer.Sign(testUser())
	if err != nil {
		t.Fatal(err)
	}
	other := NewTokenManager("another-secret-9876543210", time.Hour)
	if _, err := other.Parse(token); !apperr.Is(err, apperr.KindUnauthorized) {
		t.Errorf("got %v, want unauthorized", err)
	}
}

func TestTokenRejectsOtherAlgorithms(t *testing.T) {
	m := NewTokenManager("test-secret-0123456789", time.Hour)
	claims := Claims{
		Username: "alice",
		Role:     model.RoleAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "user-1",
			Issuer:    tokenIssuer,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}

	none, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatal(err)
	}
	hs512, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte("test-secret-0123456789"))
	if err != nil {
		t.Fatal(err)
	}
	for name, token := range map[string]string{"none": none, "HS512": hs512, "garbage": "not.a.token"} {
		if _, err := m.Parse(token); !apperr.Is(err, apperr.KindUnauthorized) {
			t.Errorf("%s: got %v, want unauthorized", name, err)
		}
	}
}

func TestTokenRequiresIssuerAndExpiry(t *testing.T) {
	m := NewTokenManager("test-secret-0123456789", time.Hour)
	secret := []byte("test-secret-0123456789")

	noExpiry := Claims{Username: "alice", RegisteredClaims: jwt.RegisteredClaims{Subject: "user-1", Issuer: tokenIssuer}}
	wrongIssuer := Claims{Username: "alice", RegisteredClaims: jwt.RegisteredClaims{
		Subject: "user-1", Issuer: "someone-else", ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}}
	for name, claims := range map[string]Claims{"no expiry": noExpiry, "wrong issuer": wrongIssuer} {
		token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
		if err != nil {
			t.Fatal(err)
		}
		if _, err := m.Parse(token); !apperr.Is(err, apperr.KindUnauthorized) {
			t.Errorf("%s: got %v, want unauthorized", name, err)
		}
	}
}
