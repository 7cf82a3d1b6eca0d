package review

import (
	"time"

	"marketplace/internal/domain"
)

// Rating is a pointer so a missing or non-integer value can be told apart
// from a present-but-too-low one and get its own error message.
type CreateReviewRequest struct {
	BusinessUser int64  `json:"business_user"`
	Rating       *int   `json:"rating"`
	Description  string `json:"description"`
}

type UpdateReviewRequest struct {
	Rating      *int    `json:"rating"`
	Description *string `json:"description"`
}

type ReviewResponse struct {
	ID           int64     `json:"id"`
	BusinessUser int64     `json:"business_user"`
	Reviewer     int64     `json:"reviewer"`
	Rating       int       `json:"rating"`
	Description  string    `json:"description"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func toResponse(r *domain.Review) *ReviewResponse {
	return &ReviewResponse{
		ID:           r.ID,
		BusinessUser: r.BusinessUserID,
		Reviewer:     r.ReviewerID,
		Rating:       r.Rating,
		Description:  r.Description,
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}
}
