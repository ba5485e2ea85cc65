package util

import (
	"encoding/base64"
	"encoding/json"
	"strings"
	"testing"
	"time"
)

func TestJWTManagerGenerateAndParse(t *testing.T) {
	manager := NewJWTManager("top-secret", time.Minute)

	avatar := "https://cdn.example.com/a.png"
	token, expiresAt, err := manager.Generate(SessionClaims{
		UserID:        "user_123",
		Email:         "user@example.com",
		DisplayName:   "Traveler",
		Role:          "customer",
		Avatar:        &avatar,
		ProviderToken: "provider-token",
	})
	if err != nil {
		t.Fatalf("Generate returned error: %v", err)
	}
	if token == "" {
		t.Fatalf("expected token to be non-empty")
	}
	if expiresAt.Before(time.Now()) {
		t.Fatalf("expected expiry in the future")
	}

	claims, err := manager.Parse(token)
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if claims.UserID != "user_123" || claims.Subject != "user_123" {
		t.Fatalf("expected subject user_123, got %s/%s", claims.UserID, claims.Subject)
	}
	if claims.Avatar == nil || *claims.Avatar != avatar {
		t.Fatalf("expected avatar claim to be set")
	}
	if claims.ProviderToken != "provider-token" {
		t.Fatalf("expected provider token, got %q", claims.ProviderToken)
	}
}

func TestJWTManagerParseExpiredToken(t *testing.T) {
	manager := NewJWTManager("secret", time.Minute)
	issued := time.Now()
	manager.now = func() time.Time { return issued }
	token, _, err := manager.Generate(SessionClaims{UserID: "u"})
	if err != nil {
		t.Fatalf("Generate returned error: %v", err)
	}

	manager.now = func() time.Time { return issued.Add(2 * time.Minute) }
	if _, err := manager.Parse(token); err == nil {
		t.Fatalf("expected parse error for expired token")
	}
}

func TestJWTManagerRejectsForeignSecret(t *testing.T) {
	token, _, err := NewJWTManager("one", time.Minute).Generate(SessionClaims{UserID: "u"})
	if err != nil {
		t.Fatalf("Generate returned error: %v", err)
	}
	if _, err := NewJWTManager("two", time.Minute).Parse(token); err == nil {
		t.Fatalf("expected signature error")
	}
}

func TestJWTManagerWritesRegisteredSubject(t *testing.T) {
	token, _, err := NewJWTManager("secret", time.Minute).Generate(SessionClaims{UserID: "user_42", Email: "a@example.com"})
	if err != nil {
		t.Fatalf("Generate returned error: %v", err)
	}
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		t.Fatalf("expected 3 token segments, got %d", len(parts))
	}
	raw, err := base64.RawURLEncoding.DecodeString(parts[1])
	if err != nil {
		t.Fatalf("decode payload: %v", err)
	}
	var payload map[string]any
	if err := json.Unmarshal(raw, &payload); err != nil {
		t.Fatalf("unmarshal payload: %v", err)
	}
	if payload["sub"] != "user_42" {
		t.Fatalf("expected sub user_42, got %v", payload["sub"])
	}
	if payload["uid"] != "user_42" {
		t.Fatalf("expected uid user_42, got %v", payload["uid"])
	}
}
