package jwt

import (
	"testing"
	"time"

	"hospital-booking/config"

	"github.com/google/uuid"
)

func TestGenerateAndValidateToken(t *testing.T) {
	service := NewJWTService(config.JWTConfig{Secret: "test-secret", Expiry: 24 * time.Hour})
	userID := uuid.New()

	token, err := service.GenerateToken(userID)
	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}

	claims, err := service.ValidateToken(token)
	if err != nil {
		t.Fatalf("ValidateToken() error = %v", err)
	}
	if claims.UserID != userID {
		t.Errorf("UserID = %s, want %s", claims.UserID, userID)
	}

	remaining := time.Until(claims.ExpiresAt.Time)
	if remaining < 23*time.Hour || remaining > 24*time.Hour {
		t.Errorf("token lifetime = %s, want about 24h", remaining)
	}
}

func TestValidateExpiredToken(t *testing.T) {
	service := NewJWTService(config.JWTConfig{Secret: "test-secret", Expiry: -time.Minute})

	token, err := service.GenerateToken(uuid.New())
	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}

	if _, err := service.ValidateToken(token); err == nil {
		t.Error("ValidateToken() accepted an expired token")
	}
}

func TestValidateTokenWrongSecret(t *testing.T) {
	issuer := NewJWTService(config.JWTConfig{Secret: "secret-a", Expiry: time.Hour})
	verifier := NewJWTService(config.JWTConfig{Secret: "secret-b", Expiry: time.Hour})

	token, err := issuer.GenerateToken(uuid.New())
	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}

	if _, err := verifier.ValidateToken(token); err == nil {
		t.Error("ValidateToken() accepted a token signed with another secret")
	}
}

func TestValidateGarbageToken(t *testing.T) {
	service := NewJWTService(config.JWTConfig{Secret: "test-secret", Expiry: time.Hour})

	if _, err := service.ValidateToken("not-a-token"); err == nil {
		t.Error("ValidateToken() accepted garbage input")
	}
}
