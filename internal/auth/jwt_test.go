package auth

import (
	"testing"
	"time"

	"github.com/feitoo/makerboard/internal/models"
	"github.com/google/uuid"
)

func TestGenerateToken(t *testing.T) {
	secret := "test-secret"
	expiration := 1 * time.Hour

	maker := &models.Maker{
		ID:    uuid.New(),
		Login: "atelier@example.com",
	}

	tests := []struct {
		name       string
		maker      *models.Maker
		secret     string
		expiration time.Duration
		wantErr    bool
	}{
		{"valid maker", maker, secret, expiration, false},
		{"empty login", &models.Maker{ID: uuid.New()}, secret, expiration, false},
		{"nil UUID", &models.Maker{ID: uuid.Nil, Login: "x"}, secret, expiration, false},
		{"empty secret", maker, "", expiration, false},
		{"negative expiration", maker, secret, -1 * time.Hour, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token, err := GenerateToken(tt.maker, tt.secret, tt.expiration)
			if (err != nil) != tt.wantErr {
				t.Fatalf("GenerateToken() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && token == "" {
				t.Error("GenerateToken() returned empty token")
			}
		})
	}
}

func TestValidateToken(t *testing.T) {
	secret := "test-secret"
	maker := &models.Maker{ID: uuid.New(), Login: "atelier@example.com"}

	t.Run("valid token round trip", func(t *testing.T) {
		token, err := GenerateToken(maker, secret, time.Hour)
		if err != nil {
			t.Fatalf("GenerateToken() error = %v", err)
		}

		claims, err := ValidateToken(token, secret)
		if err != nil {
			t.Fatalf("ValidateToken() error = %v", err)
		}
		if claims.MakerID != maker.ID {
			t.Errorf("MakerID = %s, want %s", claims.MakerID, maker.ID)
		}
		if claims.Login != maker.Login {
			t.Errorf("Login = %s, want %s", claims.Login, maker.Login)
		}
	})

	t.Run("wrong secret", func(t *testing.T) {
		token, _ := GenerateToken(maker, secret, time.Hour)
		if _, err := ValidateToken(token, "other-secret"); err == nil {
			t.Error("expected error for wrong secret")
		}
	})

	t.Run("expired token", func(t *testing.T) {
		token, _ := GenerateToken(maker, secret, -time.Hour)
		if _, err := ValidateToken(token, secret); err == nil {
			t.Error("expected error for expired token")
		}
	})

	t.Run("garbage token", func(t *testing.T) {
		if _, err := ValidateToken("not.a.token", secret); err == nil {
			t.Error("expected error for malformed token")
		}
	})
}
