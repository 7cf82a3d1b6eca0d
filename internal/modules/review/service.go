package review

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"marketplace/internal/domain"
	"marketplace/internal/policy"
	"marketplace/internal/repository"
)

type Service struct {
	reviews *repository.ReviewRepository
	users   *repository.UserRepository
}

func NewService(reviews *repository.ReviewRepository, users *repository.UserRepository) *Service {
	return &Service{reviews: reviews, users: users}
}

func (s *Service) List(ctx context.Context) ([]ReviewResponse, error) {
	reviews, err := s.reviews.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]ReviewResponse, 0, len(reviews))
	for i := range reviews {
		out = append(out, *toResponse(&reviews[i]))
	}
	return out, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*ReviewResponse, error) {
	r, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}
	return toResponse(r), nil
}

// Create stores a customer's review. The reviewer comes from the
// authenticated identity and the reviewed user must hold the business type
// right now, not at some earlier point.
func (s *Service) Create(ctx context.Context, actor policy.Actor, req CreateReviewRequest) (*ReviewResponse, error) {
	switch policy.CustomerWrite(actor) {
	case policy.Allow:
	case policy.Unauthorized:
		return nil, ErrUnauthorized
	default:
		return nil, ErrForbidden
	}
	if verr := validateCreate(req); verr != nil {
		return nil, verr
	}

	target, err := s.users.GetByID(ctx, req.BusinessUser)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if target == nil || target.Type != domain.TypeBusiness {
		return nil, &ValidationError{Fields: map[string]string{
			"business_user": "Business user not found.",
		}}
	}

	r := &domain.Review{
		BusinessUserID: req.BusinessUser,
		ReviewerID:     actor.ID,
		Rating:         *req.Rating,
		Description:    req.Description,
	}
	if err := s.reviews.Create(ctx, r); err != nil {
		return nil, err
	}
	return toResponse(r), nil
}

// Update edits a review, original reviewer only.
func (s *Service) Update(ctx context.Context, actor policy.Actor, id int64, req UpdateReviewRequest) (*ReviewResponse, error) {
	r, err := s.getForMutation(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if verr := validateUpdate(req); verr != nil {
		return nil, verr
	}

	if req.Rating != nil {
		r.Rating = *req.Rating
	}
	if req.Description != nil {
		r.Description = *req.Description
	}
	if err := s.reviews.Update(ctx, r); err != nil {
		return nil, err
	}
	return toResponse(r), nil
}

func (s *Service) Delete(ctx context.Context, actor policy.Actor, id int64) error {
	r, err := s.getForMutation(ctx, actor, id)
	if err != nil {
		return err
	}
	return s.reviews.Delete(ctx, r.ID)
}

func (s *Service) get(ctx context.Context, id int64) (*domain.Review, error) {
	r, err := s.reviews.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return r, nil
}

func (s *Service) getForMutation(ctx context.Context, actor policy.Actor, id int64) (*domain.Review, error) {
	r, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}
	switch policy.ReviewMutate(actor, r) {
	case policy.Allow:
		return r, nil
	case policy.Unauthorized:
		return nil, ErrUnauthorized
	case policy.NotFound:
		return nil, ErrNotFound
	default:
		return nil, ErrForbidden
	}
}

func validateCreate(req CreateReviewRequest) *ValidationError {
	fields := map[string]string{}
	if req.Rating == nil {
		fields["rating"] = "Rating must be an integer."
	} else if *req.Rating < 1 {
		fields["rating"] = "Rating must be at least 1."
	}
	if req.Description == "" {
		fields["description"] = "This field is required."
	}
	if len(fields) == 0 {
		return nil
	}
	return &ValidationError{Fields: fields}
}

// validateUpdate treats nil as "field not supplied": partial updates may omit
// either field but may not set one to an invalid value.
func validateUpdate(req UpdateReviewRequest) *ValidationError {
	fields := map[string]string{}
	if req.Rating != nil && *req.Rating < 1 {
		fields["rating"] = "Rating must be at least 1."
	}
	if req.Description != nil && *req.Description == "" {
		fields["description"] = "This field is required."
	}
	if len(fields) == 0 {
		return nil
	}
	return &ValidationError{Fields: fields}
}
