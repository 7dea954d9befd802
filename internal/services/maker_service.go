package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/feitoo/makerboard/internal/auth"
	"github.com/feitoo/makerboard/internal/models"
	"github.com/feitoo/makerboard/internal/storage"
	"github.com/google/uuid"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmptyCredentials   = errors.New("login and password are required")
)

// MakerService defines maker account operations.
type MakerService interface {
	Register(ctx context.Context, login, password, displayName string) (*models.Maker, string, error)
	Login(ctx context.Context, login, password string) (*models.Maker, string, error)
	GetProfile(ctx context.Context, makerID uuid.UUID) (*models.Maker, error)
}

// MakerServiceImpl implements MakerService.
type MakerServiceImpl struct {
	makerStorage    MakerStorage
	jwtSecret       string
	tokenExpiration time.Duration
}

// NewMakerService creates a new MakerService.
func NewMakerService(makerStorage MakerStorage, jwtSecret string, tokenExpiration time.Duration) *MakerServiceImpl {
	return &MakerServiceImpl{
		makerStorage:    makerStorage,
		jwtSecret:       jwtSecret,
		tokenExpiration: tokenExpiration,
	}
}

// Register creates a new maker account and issues a token.
func (s *MakerServiceImpl) Register(ctx context.Context, login, password, displayName string) (*models.Maker, string, error) {
	if login == "" || password == "" {
		return nil, "", ErrEmptyCredentials
	}

	passwordHash, err := auth.HashPassword(password)
	if err != nil {
		return nil, "", fmt.Errorf("failed to hash password: %w", err)
	}

	maker := &models.Maker{
		ID:           uuid.New(),
		Login:        login,
		PasswordHash: passwordHash,
		DisplayName:  displayName,
	}

	if err := s.makerStorage.Create(ctx, maker); err != nil {
		if errors.Is(err, storage.ErrLoginExists) {
			return nil, "", storage.ErrLoginExists
		}
		return nil, "", fmt.Errorf("failed to create maker: %w", err)
	}

	token, err := s.generateToken(maker)
	if err != nil {
		return nil, "", fmt.Errorf("failed to generate token: %w", err)
	}

	return maker, token, nil
}

// Login authenticates a maker and issues a token.
func (s *MakerServiceImpl) Login(ctx context.Context, login, password string) (*models.Maker, string, error) {
	if login == "" || password == "" {
		return nil, "", ErrEmptyCredentials
	}

	maker, err := s.makerStorage.GetByLogin(ctx, login)
	if err != nil {
		if errors.Is(err, storage.ErrMakerNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", fmt.Errorf("failed to get maker: %w", err)
	}

	if !auth.CheckPassword(password, maker.PasswordHash) {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.generateToken(maker)
	if err != nil {
		return nil, "", fmt.Errorf("failed to generate token: %w", err)
	}

	return maker, token, nil
}

// GetProfile returns a maker's account record.
func (s *MakerServiceImpl) GetProfile(ctx context.Context, makerID uuid.UUID) (*models.Maker, error) {
	maker, err := s.makerStorage.GetByID(ctx, makerID)
	if err != nil {
		if errors.Is(err, storage.ErrMakerNotFound) {
			return nil, storage.ErrMakerNotFound
		}
		return nil, fmt.Errorf("failed to get maker: %w", err)
	}
	return maker, nil
}

func (s *MakerServiceImpl) generateToken(maker *models.Maker) (string, error) {
	exp := s.tokenExpiration
	if exp <= 0 {
		exp = 24 * time.Hour
	}
	return auth.GenerateToken(maker, s.jwtSecret, exp)
}
