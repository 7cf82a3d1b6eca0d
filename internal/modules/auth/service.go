package auth

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"marketplace/internal/domain"
)

// Service contains the registration and login logic.
type Service struct {
	users  UserRepositoryInterface
	tokens TokenRepositoryInterface
}

func NewService(users UserRepositoryInterface, tokens TokenRepositoryInterface) *Service {
	return &Service{users: users, tokens: tokens}
}

// Register creates the user and its profile in one transaction, then issues
// the opaque token. The profile row is an invariant of registration, not an
// afterthought: a user without a profile must never be observable.
func (s *Service) Register(ctx context.Context, req RegistrationRequest) (*domain.User, string, error) {
	userType := domain.UserType(strings.TrimSpace(req.Type))
	if !domain.ValidUserType(userType) {
		return nil, "", ErrInvalidUserType
	}

	exists, err := s.users.ExistsByUsername(ctx, req.Username)
	if err != nil {
		return nil, "", err
	}
	if exists {
		return nil, "", ErrUsernameTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", err
	}

	user := &domain.User{
		Username:     strings.TrimSpace(req.Username),
		Email:        strings.TrimSpace(req.Email),
		PasswordHash: string(hash),
		Type:         userType,
		IsActive:     true,
	}

	err = s.users.DB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(user).Error; err != nil {
			return err
		}
		return tx.Create(&domain.Profile{UserID: user.ID}).Error
	})
	if err != nil {
		return nil, "", err
	}

	token, err := s.tokens.GetOrCreate(ctx, user.ID, generateTokenKey)
	if err != nil {
		return nil, "", err
	}

	user.PasswordHash = ""
	return user, token.Key, nil
}

// Login verifies the credential pair against an active account and returns
// the user's token, reusing the existing key when one was issued before.
func (s *Service) Login(ctx context.Context, req LoginRequest) (*domain.User, string, error) {
	user, err := s.users.GetByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", err
	}

	if !user.IsActive {
		return nil, "", ErrAccountInactive
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.tokens.GetOrCreate(ctx, user.ID, generateTokenKey)
	if err != nil {
		return nil, "", err
	}

	user.PasswordHash = ""
	return user, token.Key, nil
}

func generateTokenKey() (string, error) {
	buf := make([]byte, 20)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
