package profile

import (
	"time"

	"marketplace/internal/domain"
)

// ProfileResponse flattens the profile together with the owning user's public
// fields. Credentials never appear here.
type ProfileResponse struct {
	User         int64     `json:"user"`
	Username     string    `json:"username"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	File         string    `json:"file,omitempty"`
	Location     string    `json:"location,omitempty"`
	Tel          string    `json:"tel,omitempty"`
	Description  string    `json:"description,omitempty"`
	WorkingHours string    `json:"working_hours,omitempty"`
	Type         string    `json:"type"`
	Email        string    `json:"email"`
	CreatedAt    time.Time `json:"created_at"`
}

// UpdateProfileRequest carries both the mutable user fields and the profile
// fields; nil pointers leave the stored value untouched.
type UpdateProfileRequest struct {
	FirstName    *string `json:"first_name" validate:"omitempty,max=150"`
	LastName     *string `json:"last_name" validate:"omitempty,max=150"`
	Email        *string `json:"email" validate:"omitempty,email"`
	Location     *string `json:"location"`
	Tel          *string `json:"tel" validate:"omitempty,max=30"`
	Description  *string `json:"description"`
	WorkingHours *string `json:"working_hours"`
}

func toResponse(p *domain.Profile) ProfileResponse {
	resp := ProfileResponse{
		File:         p.File,
		Location:     p.Location,
		Tel:          p.Tel,
		Description:  p.Description,
		WorkingHours: p.WorkingHours,
	}
	if p.User != nil {
		resp.User = p.User.ID
		resp.Username = p.User.Username
		resp.FirstName = p.User.FirstName
		resp.LastName = p.User.LastName
		resp.Type = string(p.User.Type)
		resp.Email = p.User.Email
		resp.CreatedAt = p.User.CreatedAt
	}
	return resp
}
