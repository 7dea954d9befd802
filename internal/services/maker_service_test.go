package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/feitoo/makerboard/internal/auth"
	"github.com/feitoo/makerboard/internal/models"
	"github.com/feitoo/makerboard/internal/storage"
	"github.com/google/uuid"
)

const testSecret = "test-secret"

func TestMakerService_Register(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		var created *models.Maker
		svc := NewMakerService(&storage.MockMakerStorage{
			CreateFunc: func(ctx context.Context, maker *models.Maker) error {
				created = maker
				return nil
			},
		}, testSecret, time.Hour)

		maker, token, err := svc.Register(ctx, "ateliezinho", "senha-forte", "Ateliêzinho 3D")
		if err != nil {
			t.Fatalf("Register() error = %v", err)
		}
		if token == "" {
			t.Error("expected a token")
		}
		if created == nil || created.Login != "ateliezinho" {
			t.Errorf("stored maker = %+v", created)
		}
		if created.PasswordHash == "senha-forte" {
			t.Error("password stored in plain text")
		}
		if maker.DisplayName != "Ateliêzinho 3D" {
			t.Errorf("display name = %q", maker.DisplayName)
		}

		claims, err := auth.ValidateToken(token, testSecret)
		if err != nil {
			t.Fatalf("issued token does not validate: %v", err)
		}
		if claims.MakerID != maker.ID {
			t.Errorf("token maker id = %s, want %s", claims.MakerID, maker.ID)
		}
	})

	t.Run("empty credentials", func(t *testing.T) {
		svc := NewMakerService(&storage.MockMakerStorage{}, testSecret, time.Hour)
		if _, _, err := svc.Register(ctx, "", "pw", ""); !errors.Is(err, ErrEmptyCredentials) {
			t.Errorf("empty login: got %v", err)
		}
		if _, _, err := svc.Register(ctx, "login", "", ""); !errors.Is(err, ErrEmptyCredentials) {
			t.Errorf("empty password: got %v", err)
		}
	})

	t.Run("login taken", func(t *testing.T) {
		svc := NewMakerService(&storage.MockMakerStorage{
			CreateFunc: func(ctx context.Context, maker *models.Maker) error {
				return storage.ErrLoginExists
			},
		}, testSecret, time.Hour)

		_, _, err := svc.Register(ctx, "ateliezinho", "senha-forte", "")
		if !errors.Is(err, storage.ErrLoginExists) {
			t.Fatalf("expected ErrLoginExists, got %v", err)
		}
	})
}

func TestMakerService_Login(t *testing.T) {
	ctx := context.Background()

	hash, err := auth.HashPassword("senha-forte")
	if err != nil {
		t.Fatalf("HashPassword() error = %v", err)
	}
	existing := &models.Maker{
		ID:           uuid.New(),
		Login:        "ateliezinho",
		PasswordHash: hash,
	}
	store := &storage.MockMakerStorage{
		GetByLoginFunc: func(ctx context.Context, login string) (*models.Maker, error) {
			if login == existing.Login {
				return existing, nil
			}
			return nil, storage.ErrMakerNotFound
		},
	}
	svc := NewMakerService(store, testSecret, time.Hour)

	t.Run("success", func(t *testing.T) {
		maker, token, err := svc.Login(ctx, "ateliezinho", "senha-forte")
		if err != nil {
			t.Fatalf("Login() error = %v", err)
		}
		if maker.ID != existing.ID {
			t.Errorf("maker id = %s", maker.ID)
		}
		if _, err := auth.ValidateToken(token, testSecret); err != nil {
			t.Errorf("issued token does not validate: %v", err)
		}
	})

	t.Run("wrong password", func(t *testing.T) {
		_, _, err := svc.Login(ctx, "ateliezinho", "senha-errada")
		if !errors.Is(err, ErrInvalidCredentials) {
			t.Fatalf("expected ErrInvalidCredentials, got %v", err)
		}
	})

	t.Run("unknown login", func(t *testing.T) {
		_, _, err := svc.Login(ctx, "desconhecido", "senha-forte")
		if !errors.Is(err, ErrInvalidCredentials) {
			t.Fatalf("expected ErrInvalidCredentials, got %v", err)
		}
	})
}

func TestMakerService_GetProfile(t *testing.T) {
	ctx := context.Background()
	existing := &models.Maker{ID: uuid.New(), Login: "ateliezinho"}

	svc := NewMakerService(&storage.MockMakerStorage{
		GetByIDFunc: func(ctx context.Context, id uuid.UUID) (*models.Maker, error) {
			if id == existing.ID {
				return existing, nil
			}
			return nil, storage.ErrMakerNotFound
		},
	}, testSecret, time.Hour)

	maker, err := svc.GetProfile(ctx, existing.ID)
	if err != nil {
		t.Fatalf("GetProfile() error = %v", err)
	}
	if maker.Login != "ateliezinho" {
		t.Errorf("login = %q", maker.Login)
	}

	if _, err := svc.GetProfile(ctx, uuid.New()); !errors.Is(err, storage.ErrMakerNotFound) {
		t.Fatalf("expected ErrMakerNotFound, got %v", err)
	}
}
