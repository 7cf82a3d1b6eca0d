package profile

import (
	"context"
	"errors"
	"io"

	"gorm.io/gorm"

	"marketplace/internal/domain"
	"marketplace/internal/repository"
	"marketplace/internal/storage"
)

type Service struct {
	profiles *repository.ProfileRepository
	users    *repository.UserRepository
	files    storage.FileStore
}

func NewService(profiles *repository.ProfileRepository, users *repository.UserRepository, files storage.FileStore) *Service {
	return &Service{profiles: profiles, users: users, files: files}
}

func (s *Service) Get(ctx context.Context, id int64) (*ProfileResponse, error) {
	p, err := s.profiles.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	resp := toResponse(p)
	return &resp, nil
}

// Update applies the user-side and profile-side fields in one transaction.
// Only the profile owner may update.
func (s *Service) Update(ctx context.Context, actorID, id int64, req UpdateProfileRequest) (*ProfileResponse, error) {
	p, err := s.profiles.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if p.UserID != actorID {
		return nil, ErrForbidden
	}

	err = s.users.DB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if req.FirstName != nil || req.LastName != nil || req.Email != nil {
			updates := map[string]any{}
			if req.FirstName != nil {
				updates["first_name"] = *req.FirstName
			}
			if req.LastName != nil {
				updates["last_name"] = *req.LastName
			}
			if req.Email != nil {
				updates["email"] = *req.Email
			}
			if err := tx.Model(&domain.User{}).Where("id = ?", p.UserID).Updates(updates).Error; err != nil {
				return err
			}
		}

		if req.Location != nil {
			p.Location = *req.Location
		}
		if req.Tel != nil {
			p.Tel = *req.Tel
		}
		if req.Description != nil {
			p.Description = *req.Description
		}
		if req.WorkingHours != nil {
			p.WorkingHours = *req.WorkingHours
		}
		return tx.Omit("User").Save(p).Error
	})
	if err != nil {
		return nil, err
	}

	fresh, err := s.profiles.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := toResponse(fresh)
	return &resp, nil
}

func (s *Service) ListByType(ctx context.Context, t string) ([]ProfileResponse, error) {
	userType := domain.UserType(t)
	if !domain.ValidUserType(userType) {
		return nil, ErrInvalidType
	}

	profiles, err := s.profiles.ListByType(ctx, userType)
	if err != nil {
		return nil, err
	}
	out := make([]ProfileResponse, 0, len(profiles))
	for i := range profiles {
		out = append(out, toResponse(&profiles[i]))
	}
	return out, nil
}

// SaveImage stores the uploaded picture and records its URL on the profile.
func (s *Service) SaveImage(ctx context.Context, actorID, id int64, filename string, r io.Reader, size int64) (string, error) {
	p, err := s.profiles.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrNotFound
		}
		return "", err
	}
	if p.UserID != actorID {
		return "", ErrForbidden
	}

	url, err := s.files.Save(ctx, "profile_pictures", filename, r, size)
	if err != nil {
		return "", err
	}

	p.File = url
	if err := s.profiles.Update(ctx, p); err != nil {
		return "", err
	}
	return url, nil
}
