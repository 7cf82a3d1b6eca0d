package repository

import (
	"context"

	"gorm.io/gorm"

	"marketplace/internal/domain"
)

type OrderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

func (r *OrderRepository) Create(ctx context.Context, o *domain.Order) error {
	return r.db.WithContext(ctx).Create(o).Error
}

func (r *OrderRepository) GetByID(ctx context.Context, id int64) (*domain.Order, error) {
	var o domain.Order
	if err := r.db.WithContext(ctx).First(&o, id).Error; err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *OrderRepository) Exists(ctx context.Context, id int64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.Order{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

// ListForUser returns the orders the user participates in on either side of
// the purchase.
func (r *OrderRepository) ListForUser(ctx context.Context, userID int64) ([]domain.Order, error) {
	var orders []domain.Order
	err := r.db.WithContext(ctx).
		Where("customer_user_id = ? OR business_user_id = ?", userID, userID).
		Order("created_at DESC").
		Find(&orders).Error
	return orders, err
}

func (r *OrderRepository) UpdateStatus(ctx context.Context, id int64, status domain.OrderStatus) (*domain.Order, error) {
	if err := r.db.WithContext(ctx).Model(&domain.Order{}).
		Where("id = ?", id).
		Update("status", status).Error; err != nil {
		return nil, err
	}
	return r.GetByID(ctx, id)
}

func (r *OrderRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&domain.Order{}, id).Error
}

func (r *OrderRepository) CountByBusinessAndStatus(ctx context.Context, businessUserID int64, status domain.OrderStatus) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.Order{}).
		Where("business_user_id = ? AND status = ?", businessUserID, status).
		Count(&count).Error
	return count, err
}
