package models

import (
	"time"

	"github.com/google/uuid"
)

// Maker is a service provider account on the marketplace.
type Maker struct {
	ID           uuid.UUID `db:"id"`
	Login        string    `db:"login"`
	PasswordHash string    `db:"password_hash"`
	DisplayName  string    `db:"display_name"`
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`
}

// RegisterRequest - maker registration payload.
type RegisterRequest struct {
	Login       string `json:"login"`
	Password    string `json:"password"`
	DisplayName string `json:"displayName"`
}

// LoginRequest - maker authentication payload.
type LoginRequest struct {
	Login    string `json:"login"`
	Password string `json:"password"`
}
