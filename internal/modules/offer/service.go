package offer

import (
	"context"
	"errors"
	"io"

	"gorm.io/gorm"

	"marketplace/internal/domain"
	"marketplace/internal/policy"
	"marketplace/internal/repository"
	"marketplace/internal/storage"
)

type Service struct {
	offers *repository.OfferRepository
	files  storage.FileStore
}

func NewService(offers *repository.OfferRepository, files storage.FileStore) *Service {
	return &Service{offers: offers, files: files}
}

// ListQuery mirrors the query parameters of GET /offers/.
type ListQuery struct {
	CreatorID       *int64
	Search          string
	Ordering        string
	MaxDeliveryTime *int
	Limit           int
	Offset          int
}

func (s *Service) List(ctx context.Context, q ListQuery) ([]OfferResponse, int64, error) {
	offers, count, err := s.offers.List(ctx, repository.OfferFilter{
		CreatorID:       q.CreatorID,
		Search:          q.Search,
		Ordering:        q.Ordering,
		MaxDeliveryTime: q.MaxDeliveryTime,
		Limit:           q.Limit,
		Offset:          q.Offset,
	})
	if err != nil {
		return nil, 0, err
	}

	out := make([]OfferResponse, 0, len(offers))
	for i := range offers {
		out = append(out, toOfferResponse(&offers[i]))
	}
	return out, count, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*OfferResponse, error) {
	o, err := s.offers.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	resp := toOfferResponse(o)
	return &resp, nil
}

// Create builds the offer with its nested tiers in one insert. Business
// accounts only; every tier must name its offer_type or the whole write is
// rejected.
func (s *Service) Create(ctx context.Context, actor policy.Actor, req CreateOfferRequest) (*OfferResponse, error) {
	switch policy.BusinessWrite(actor) {
	case policy.Unauthorized:
		return nil, ErrUnauthorized
	case policy.Forbidden:
		return nil, ErrForbidden
	}

	if verr := validateDetails(req.Details); verr != nil {
		return nil, verr
	}

	o := &domain.Offer{
		BusinessUserID: actor.ID,
		Title:          req.Title,
		Image:          req.Image,
		Description:    req.Description,
		Details:        toDomainDetails(req.Details),
	}
	if err := s.offers.Create(ctx, o); err != nil {
		return nil, err
	}
	return s.Get(ctx, o.ID)
}

// Update edits the offer's own fields; a present details list replaces the
// stored tiers wholesale. Missing and foreign offers both answer not-found.
func (s *Service) Update(ctx context.Context, actor policy.Actor, id int64, req UpdateOfferRequest) (*OfferResponse, error) {
	o, err := s.load(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	var details []domain.OfferDetail
	if req.Details != nil {
		if verr := validateDetails(*req.Details); verr != nil {
			return nil, verr
		}
		details = toDomainDetails(*req.Details)
	}

	if req.Title != nil {
		o.Title = *req.Title
	}
	if req.Description != nil {
		o.Description = *req.Description
	}
	if req.Image != nil {
		o.Image = *req.Image
	}

	if err := s.offers.Update(ctx, o, details); err != nil {
		return nil, err
	}
	return s.Get(ctx, id)
}

func (s *Service) Delete(ctx context.Context, actor policy.Actor, id int64) error {
	o, err := s.load(ctx, actor, id)
	if err != nil {
		return err
	}
	return s.offers.Delete(ctx, o.ID)
}

// SaveImage stores an offer image through the file store; owner only.
func (s *Service) SaveImage(ctx context.Context, actor policy.Actor, id int64, filename string, r io.Reader, size int64) (string, error) {
	o, err := s.load(ctx, actor, id)
	if err != nil {
		return "", err
	}

	url, err := s.files.Save(ctx, "offer_images", filename, r, size)
	if err != nil {
		return "", err
	}
	o.Image = url
	if err := s.offers.Update(ctx, o, nil); err != nil {
		return "", err
	}
	return url, nil
}

func (s *Service) GetDetail(ctx context.Context, id int64) (*DetailResponse, error) {
	d, err := s.offers.GetDetail(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	resp := toDetailResponse(d)
	return &resp, nil
}

func (s *Service) ListDetails(ctx context.Context) ([]DetailResponse, error) {
	details, err := s.offers.ListDetails(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]DetailResponse, 0, len(details))
	for i := range details {
		out = append(out, toDetailResponse(&details[i]))
	}
	return out, nil
}

// load fetches the offer for a mutation. Per the ownership policy a missing
// or foreign offer is indistinguishable from the caller's point of view.
func (s *Service) load(ctx context.Context, actor policy.Actor, id int64) (*domain.Offer, error) {
	o, err := s.offers.GetByID(ctx, id)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	switch policy.OfferMutate(actor, o) {
	case policy.Allow:
		return o, nil
	case policy.Unauthorized:
		return nil, ErrUnauthorized
	case policy.NotFound:
		return nil, ErrNotFound
	default:
		return nil, ErrForbidden
	}
}
