package repository

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"marketplace/internal/domain"
)

type OfferRepository struct {
	db *gorm.DB
}

func NewOfferRepository(db *gorm.DB) *OfferRepository {
	return &OfferRepository{db: db}
}

// Aggregates over the child tiers, evaluated in SQL so that filtering and
// ordering by the derived values stays consistent with pagination.
const (
	minPriceExpr    = "(SELECT MIN(od.price) FROM offer_details od WHERE od.offer_id = offers.id)"
	minDeliveryExpr = "(SELECT MIN(od.delivery_time_in_days) FROM offer_details od WHERE od.offer_id = offers.id)"
)

// OfferFilter narrows and orders the offer listing.
type OfferFilter struct {
	CreatorID       *int64
	Search          string
	Ordering        string // created_at, updated_at, min_price; "-" prefix for descending
	MaxDeliveryTime *int
	Limit           int
	Offset          int
}

func (r *OfferRepository) Create(ctx context.Context, o *domain.Offer) error {
	return r.db.WithContext(ctx).Create(o).Error
}

func (r *OfferRepository) GetByID(ctx context.Context, id int64) (*domain.Offer, error) {
	var o domain.Offer
	err := r.db.WithContext(ctx).
		Preload("Details").
		Preload("BusinessUser").
		First(&o, id).Error
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *OfferRepository) List(ctx context.Context, f OfferFilter) ([]domain.Offer, int64, error) {
	q := r.db.WithContext(ctx).Model(&domain.Offer{})

	if f.CreatorID != nil {
		q = q.Where("business_user_id = ?", *f.CreatorID)
	}
	if f.Search != "" {
		pattern := "%" + strings.ToLower(f.Search) + "%"
		q = q.Where("LOWER(title) LIKE ? OR LOWER(description) LIKE ?", pattern, pattern)
	}
	if f.MaxDeliveryTime != nil {
		q = q.Where(minDeliveryExpr+" <= ?", *f.MaxDeliveryTime)
	}

	var count int64
	if err := q.Count(&count).Error; err != nil {
		return nil, 0, err
	}

	q = q.Order(orderingExpr(f.Ordering))
	if f.Limit > 0 {
		q = q.Limit(f.Limit).Offset(f.Offset)
	}

	var offers []domain.Offer
	err := q.Preload("Details").Preload("BusinessUser").Find(&offers).Error
	return offers, count, err
}

func orderingExpr(ordering string) string {
	dir := "ASC"
	col := ordering
	if strings.HasPrefix(col, "-") {
		dir = "DESC"
		col = col[1:]
	}
	switch col {
	case "created_at", "updated_at":
		return "offers." + col + " " + dir
	case "min_price":
		return minPriceExpr + " " + dir
	default:
		return "offers.created_at DESC"
	}
}

// Update persists the offer's own fields and, when details is non-nil,
// replaces the full detail set: the existing rows are deleted and the given
// ones recreated, never merged.
func (r *OfferRepository) Update(ctx context.Context, o *domain.Offer, details []domain.OfferDetail) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Details", "BusinessUser").Save(o).Error; err != nil {
			return err
		}
		if details == nil {
			return nil
		}
		if err := tx.Where("offer_id = ?", o.ID).Delete(&domain.OfferDetail{}).Error; err != nil {
			return err
		}
		for i := range details {
			details[i].ID = 0
			details[i].OfferID = o.ID
		}
		if len(details) > 0 {
			if err := tx.Create(&details).Error; err != nil {
				return err
			}
		}
		o.Details = details
		return nil
	})
}

func (r *OfferRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("offer_id = ?", id).Delete(&domain.OfferDetail{}).Error; err != nil {
			return err
		}
		return tx.Delete(&domain.Offer{}, id).Error
	})
}

func (r *OfferRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.Offer{}).Count(&count).Error
	return count, err
}

func (r *OfferRepository) GetDetail(ctx context.Context, id int64) (*domain.OfferDetail, error) {
	var d domain.OfferDetail
	if err := r.db.WithContext(ctx).First(&d, id).Error; err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *OfferRepository) ListDetails(ctx context.Context) ([]domain.OfferDetail, error) {
	var details []domain.OfferDetail
	err := r.db.WithContext(ctx).Order("id").Find(&details).Error
	return details, err
}
