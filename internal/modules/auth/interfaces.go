package auth

import (
	"context"

	"gorm.io/gorm"

	"marketplace/internal/domain"
)

// UserRepositoryInterface — only the methods the auth service uses
type UserRepositoryInterface interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	DB() *gorm.DB // for the user+profile registration transaction
}

// TokenRepositoryInterface — get-or-create storage for opaque bearer keys
type TokenRepositoryInterface interface {
	GetOrCreate(ctx context.Context, userID int64, gen func() (string, error)) (*domain.AuthToken, error)
}
