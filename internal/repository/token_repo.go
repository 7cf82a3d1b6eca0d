package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"marketplace/internal/domain"
)

type TokenRepository struct {
	db *gorm.DB
}

func NewTokenRepository(db *gorm.DB) *TokenRepository {
	return &TokenRepository{db: db}
}

// GetOrCreate returns the user's token, minting one through gen only when the
// user has none yet. The insert rides on the unique user_id constraint with a
// do-nothing conflict clause, so concurrent logins for the same user converge
// on a single key instead of failing with a duplicate-key error.
func (r *TokenRepository) GetOrCreate(ctx context.Context, userID int64, gen func() (string, error)) (*domain.AuthToken, error) {
	var t domain.AuthToken
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&t).Error
	if err == nil {
		return &t, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	key, err := gen()
	if err != nil {
		return nil, err
	}
	t = domain.AuthToken{UserID: userID, Key: key}
	err = r.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "user_id"}}, DoNothing: true}).
		Create(&t).Error
	if err != nil {
		return nil, err
	}

	// re-read in case a concurrent insert won the conflict
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&t).Error; err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *TokenRepository) GetByKey(ctx context.Context, key string) (*domain.AuthToken, error) {
	var t domain.AuthToken
	if err := r.db.WithContext(ctx).Where("key = ?", key).First(&t).Error; err != nil {
		return nil, err
	}
	return &t, nil
}
