package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/feitoo/makerboard/internal/models"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrMakerNotFound = errors.New("maker not found")
	ErrLoginExists   = errors.New("login already exists")
)

// MakerStorage defines maker account persistence.
type MakerStorage interface {
	Create(ctx context.Context, maker *models.Maker) error
	GetByLogin(ctx context.Context, login string) (*models.Maker, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Maker, error)
}

// PostgresMakerStorage implements MakerStorage for PostgreSQL.
type PostgresMakerStorage struct {
	pool *pgxpool.Pool
}

// NewPostgresMakerStorage creates a new PostgresMakerStorage.
func NewPostgresMakerStorage(pool *pgxpool.Pool) *PostgresMakerStorage {
	return &PostgresMakerStorage{pool: pool}
}

// Create inserts a new maker account.
func (s *PostgresMakerStorage) Create(ctx context.Context, maker *models.Maker) error {
	query := `
		INSERT INTO makers (id, login, password_hash, display_name, created_at, updated_at)
		VALUES ($1, $2, $3, $4, NOW(), NOW())
		RETURNING created_at, updated_at
	`

	if maker.ID == uuid.Nil {
		maker.ID = uuid.New()
	}

	err := s.pool.QueryRow(ctx, query,
		maker.ID,
		maker.Login,
		maker.PasswordHash,
		maker.DisplayName,
	).Scan(&maker.CreatedAt, &maker.UpdatedAt)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation
			return ErrLoginExists
		}
		return fmt.Errorf("failed to create maker: %w", err)
	}

	return nil
}

// GetByLogin finds a maker by login.
func (s *PostgresMakerStorage) GetByLogin(ctx context.Context, login string) (*models.Maker, error) {
	return s.getBy(ctx, `WHERE login = $1`, login)
}

// GetByID finds a maker by ID.
func (s *PostgresMakerStorage) GetByID(ctx context.Context, id uuid.UUID) (*models.Maker, error) {
	return s.getBy(ctx, `WHERE id = $1`, id)
}

func (s *PostgresMakerStorage) getBy(ctx context.Context, where string, arg any) (*models.Maker, error) {
	query := `
		SELECT id, login, password_hash, display_name, created_at, updated_at
		FROM makers
	` + where

	maker := &models.Maker{}
	err := s.pool.QueryRow(ctx, query, arg).Scan(
		&maker.ID,
		&maker.Login,
		&maker.PasswordHash,
		&maker.DisplayName,
		&maker.CreatedAt,
		&maker.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrMakerNotFound
		}
		return nil, fmt.Errorf("failed to get maker: %w", err)
	}

	return maker, nil
}
