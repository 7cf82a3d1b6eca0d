package order

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"marketplace/internal/domain"
	"marketplace/internal/policy"
	"marketplace/internal/repository"
)

type Service struct {
	orders *repository.OrderRepository
	offers *repository.OfferRepository
	users  *repository.UserRepository
}

func NewService(orders *repository.OrderRepository, offers *repository.OfferRepository, users *repository.UserRepository) *Service {
	return &Service{orders: orders, offers: offers, users: users}
}

// Create places an order for the given offer detail. The tier fields are
// snapshotted onto the order so later offer edits leave it untouched.
func (s *Service) Create(ctx context.Context, actor policy.Actor, req CreateOrderRequest) (*OrderResponse, error) {
	switch policy.CustomerWrite(actor) {
	case policy.Allow:
	case policy.Unauthorized:
		return nil, ErrUnauthorized
	default:
		return nil, ErrForbidden
	}

	detail, err := s.offers.GetDetail(ctx, req.OfferDetailID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidDetail
		}
		return nil, err
	}
	offer, err := s.offers.GetByID(ctx, detail.OfferID)
	if err != nil {
		return nil, err
	}

	o := &domain.Order{
		CustomerUserID:     actor.ID,
		BusinessUserID:     offer.BusinessUserID,
		OfferDetailID:      detail.ID,
		Title:              detail.Title,
		Revisions:          detail.Revisions,
		DeliveryTimeInDays: detail.DeliveryTimeInDays,
		Price:              detail.Price,
		Features:           detail.Features,
		OfferType:          detail.OfferType,
		Status:             domain.StatusInProgress,
	}
	if err := s.orders.Create(ctx, o); err != nil {
		return nil, err
	}
	return toResponse(o), nil
}

// ListForUser returns all orders where the caller is either side.
func (s *Service) ListForUser(ctx context.Context, userID int64) ([]OrderResponse, error) {
	orders, err := s.orders.ListForUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := make([]OrderResponse, 0, len(orders))
	for i := range orders {
		out = append(out, *toResponse(&orders[i]))
	}
	return out, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*OrderResponse, error) {
	o, err := s.orders.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return toResponse(o), nil
}

// UpdateStatus moves an order through its lifecycle. Missing orders are
// reported before any permission failure.
func (s *Service) UpdateStatus(ctx context.Context, actor policy.Actor, id int64, status string) (*OrderResponse, error) {
	exists, err := s.orders.Exists(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.decide(policy.OrderMutation(actor, policy.OrderUpdate, exists)); err != nil {
		return nil, err
	}
	if !domain.ValidOrderStatus(domain.OrderStatus(status)) {
		return nil, ErrInvalidStatus
	}

	o, err := s.orders.UpdateStatus(ctx, id, domain.OrderStatus(status))
	if err != nil {
		return nil, err
	}
	return toResponse(o), nil
}

func (s *Service) Delete(ctx context.Context, actor policy.Actor, id int64) error {
	exists, err := s.orders.Exists(ctx, id)
	if err != nil {
		return err
	}
	if err := s.decide(policy.OrderMutation(actor, policy.OrderDelete, exists)); err != nil {
		return err
	}
	return s.orders.Delete(ctx, id)
}

// CountInProgress counts running orders for a business user.
func (s *Service) CountInProgress(ctx context.Context, businessUserID int64) (int64, error) {
	return s.countForBusiness(ctx, businessUserID, domain.StatusInProgress)
}

// CountCompleted counts completed orders for a business user.
func (s *Service) CountCompleted(ctx context.Context, businessUserID int64) (int64, error) {
	return s.countForBusiness(ctx, businessUserID, domain.StatusCompleted)
}

func (s *Service) countForBusiness(ctx context.Context, businessUserID int64, status domain.OrderStatus) (int64, error) {
	ok, err := s.users.IsBusinessUser(ctx, businessUserID)
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, ErrBusinessNotFound
	}
	return s.orders.CountByBusinessAndStatus(ctx, businessUserID, status)
}

func (s *Service) decide(d policy.Decision) error {
	switch d {
	case policy.Allow:
		return nil
	case policy.Unauthorized:
		return ErrUnauthorized
	case policy.NotFound:
		return ErrNotFound
	default:
		return ErrForbidden
	}
}
