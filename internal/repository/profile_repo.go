package repository

import (
	"context"

	"gorm.io/gorm"

	"marketplace/internal/domain"
)

type ProfileRepository struct {
	db *gorm.DB
}

func NewProfileRepository(db *gorm.DB) *ProfileRepository {
	return &ProfileRepository{db: db}
}

func (r *ProfileRepository) GetByID(ctx context.Context, id int64) (*domain.Profile, error) {
	var p domain.Profile
	if err := r.db.WithContext(ctx).Preload("User").First(&p, id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *ProfileRepository) GetByUserID(ctx context.Context, userID int64) (*domain.Profile, error) {
	var p domain.Profile
	err := r.db.WithContext(ctx).Preload("User").
		Where("user_id = ?", userID).
		First(&p).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *ProfileRepository) ListByType(ctx context.Context, t domain.UserType) ([]domain.Profile, error) {
	var profiles []domain.Profile
	err := r.db.WithContext(ctx).Preload("User").
		Joins("JOIN users ON users.id = profiles.user_id").
		Where("users.type = ?", t).
		Order("profiles.id").
		Find(&profiles).Error
	return profiles, err
}

func (r *ProfileRepository) Update(ctx context.Context, p *domain.Profile) error {
	return r.db.WithContext(ctx).Omit("User").Save(p).Error
}

func (r *ProfileRepository) CountByUserType(ctx context.Context, t domain.UserType) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.Profile{}).
		Joins("JOIN users ON users.id = profiles.user_id").
		Where("users.type = ?", t).
		Count(&count).Error
	return count, err
}
