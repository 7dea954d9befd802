package auth

import (
	"strings"
	"testing"
)

func TestHashPassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
	}{
		{"valid password", "password123"},
		{"empty password", ""}, // bcrypt accepts empty input
		{"special characters", "p@ssw0rd!#$%"},
		{"unicode password", "señha123"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hash, err := HashPassword(tt.password)
			if err != nil {
				t.Fatalf("HashPassword() error = %v", err)
			}
			if hash == "" {
				t.Error("HashPassword() returned empty hash")
			}
			if !strings.HasPrefix(hash, "$2a$") && !strings.HasPrefix(hash, "$2b$") {
				t.Errorf("HashPassword() hash doesn't look like bcrypt: %s", hash)
			}
			if hash == tt.password {
				t.Error("HashPassword() returned password as hash")
			}
		})
	}
}

func TestHashPasswordConsistency(t *testing.T) {
	password := "test123"

	hash1, err := HashPassword(password)
	if err != nil {
		t.Fatalf("HashPassword() error = %v", err)
	}
	hash2, err := HashPassword(password)
	if err != nil {
		t.Fatalf("HashPassword() error = %v", err)
	}

	// Salted, so hashes differ, but both must verify.
	if hash1 == hash2 {
		t.Error("HashPassword() produced identical hashes for same password")
	}
	if !CheckPassword(password, hash1) {
		t.Error("CheckPassword() failed for hash1")
	}
	if !CheckPassword(password, hash2) {
		t.Error("CheckPassword() failed for hash2")
	}
}

func TestCheckPassword(t *testing.T) {
	correct := "correct123"
	hash, err := HashPassword(correct)
	if err != nil {
		t.Fatalf("HashPassword() error = %v", err)
	}

	tests := []struct {
		name     string
		password string
		hash     string
		want     bool
	}{
		{"correct password", correct, hash, true},
		{"wrong password", "wrong123", hash, false},
		{"empty password", "", hash, false},
		{"empty hash", correct, "", false},
		{"garbage hash", correct, "not-a-hash", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CheckPassword(tt.password, tt.hash); got != tt.want {
				t.Errorf("CheckPassword() = %v, want %v", got, tt.want)
			}
		})
	}
}
