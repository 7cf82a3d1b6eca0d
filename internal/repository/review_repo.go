package repository

import (
	"context"

	"gorm.io/gorm"

	"marketplace/internal/domain"
)

type ReviewRepository struct {
	db *gorm.DB
}

func NewReviewRepository(db *gorm.DB) *ReviewRepository {
	return &ReviewRepository{db: db}
}

func (r *ReviewRepository) Create(ctx context.Context, rv *domain.Review) error {
	return r.db.WithContext(ctx).Create(rv).Error
}

func (r *ReviewRepository) GetByID(ctx context.Context, id int64) (*domain.Review, error) {
	var rv domain.Review
	if err := r.db.WithContext(ctx).First(&rv, id).Error; err != nil {
		return nil, err
	}
	return &rv, nil
}

func (r *ReviewRepository) List(ctx context.Context) ([]domain.Review, error) {
	var reviews []domain.Review
	err := r.db.WithContext(ctx).Order("created_at DESC").Find(&reviews).Error
	return reviews, err
}

func (r *ReviewRepository) Update(ctx context.Context, rv *domain.Review) error {
	return r.db.WithContext(ctx).Save(rv).Error
}

func (r *ReviewRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&domain.Review{}, id).Error
}

func (r *ReviewRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.Review{}).Count(&count).Error
	return count, err
}

// AverageRating returns the mean rating across all reviews, 0 when there are
// none.
func (r *ReviewRepository) AverageRating(ctx context.Context) (float64, error) {
	var avg *float64
	err := r.db.WithContext(ctx).Model(&domain.Review{}).
		Select("AVG(rating)").
		Scan(&avg).Error
	if err != nil || avg == nil {
		return 0, err
	}
	return *avg, nil
}
