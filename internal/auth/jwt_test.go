// Vidfeed - Personalized Video Feed Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vidfeed

package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const testSecret = "this_is_a_very_long_secret_key_with_32_plus_characters"

func newTestManager(t *testing.T) *JWTManager {
	t.Helper()
	m, err := NewJWTManager(testSecret, time.Hour)
	if err != nil {
		t.Fatalf("NewJWTManager() error = %v", err)
	}
	return m
}

// signClaims signs arbitrary claims with testSecret.
func signClaims(t *testing.T, claims *Claims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("SignedString() error = %v", err)
	}
	return token
}

func TestNewJWTManager(t *testing.T) {
	tests := []struct {
		name        string
		secret      string
		timeout     time.Duration
		wantErr     bool
		wantTimeout time.Duration
	}{
		{name: "valid secret", secret: testSecret, timeout: time.Hour, wantTimeout: time.Hour},
		{name: "default timeout", secret: testSecret, timeout: 0, wantTimeout: 24 * time.Hour},
		{name: "empty secret", secret: "", timeout: time.Hour, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			manager, err := NewJWTManager(tt.secret, tt.timeout)
			if tt.wantErr {
				if err == nil {
					t.Error("NewJWTManager() expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("NewJWTManager() unexpected error = %v", err)
			}
			if manager.timeout != tt.wantTimeout {
				t.Errorf("timeout = %v, want %v", manager.timeout, tt.wantTimeout)
			}
		})
	}
}

func TestGenerateAndValidateToken(t *testing.T) {
	manager := newTestManager(t)

	token, err := manager.GenerateToken(42)
	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}

	claims, err := manager.ValidateToken(token)
	if err != nil {
		t.Fatalf("ValidateToken() error = %v", err)
	}
	if claims.ViewerID != 42 {
		t.Errorf("ViewerID = %d, want 42", claims.ViewerID)
	}
	if claims.ExpiresAt == nil || time.Until(claims.ExpiresAt.Time) <= 0 {
		t.Errorf("ExpiresAt = %v, want in the future", claims.ExpiresAt)
	}
}

func TestValidateTokenRejects(t *testing.T) {
	manager := newTestManager(t)

	otherManager, err := NewJWTManager("another_secret_that_is_also_32_chars_long", time.Hour)
	if err != nil {
		t.Fatalf("NewJWTManager() error = %v", err)
	}
	foreign, err := otherManager.GenerateToken(42)
	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}

	expired := signClaims(t, &Claims{
		ViewerID: 42,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
		},
	})

	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, &Claims{ViewerID: 42}).
		SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("SignedString(none) error = %v", err)
	}

	tests := []struct {
		name        string
		token       string
		wantExpired bool
	}{
		{name: "garbage", token: "not.a.token"},
		{name: "wrong secret", token: foreign},
		{name: "expired", token: expired, wantExpired: true},
		{name: "alg none", token: unsigned},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := manager.ValidateToken(tt.token)
			if err == nil {
				t.Fatal("ValidateToken() expected error, got nil")
			}
			if got := errors.Is(err, jwt.ErrTokenExpired); got != tt.wantExpired {
				t.Errorf("errors.Is(err, ErrTokenExpired) = %v, want %v (err = %v)", got, tt.wantExpired, err)
			}
		})
	}
}
