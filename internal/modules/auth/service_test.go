package auth

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"marketplace/internal/database"
	"marketplace/internal/domain"
	"marketplace/internal/repository"
)

func setupService(t *testing.T) (*Service, *gorm.DB) {
	// shared-cache memory DSN so every pooled connection sees the same DB
	db, err := database.Connect(fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name()))
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	users := repository.NewUserRepository(db)
	tokens := repository.NewTokenRepository(db)
	return NewService(users, tokens), db
}

func TestRegister_CreatesUserProfileAndToken(t *testing.T) {
	svc, db := setupService(t)
	ctx := context.Background()

	user, token, err := svc.Register(ctx, RegistrationRequest{
		Username: "alice",
		Email:    "alice@example.com",
		Type:     "customer",
		Password: "secret123",
	})
	require.NoError(t, err)
	assert.NotZero(t, user.ID)
	assert.Equal(t, "alice", user.Username)
	assert.Equal(t, domain.TypeCustomer, user.Type)
	assert.NotEmpty(t, token)
	assert.Empty(t, user.PasswordHash)

	var profileCount int64
	db.Model(&domain.Profile{}).Where("user_id = ?", user.ID).Count(&profileCount)
	assert.Equal(t, int64(1), profileCount, "registration must create exactly one profile")

	var stored domain.User
	require.NoError(t, db.First(&stored, user.ID).Error)
	assert.NotEqual(t, "secret123", stored.PasswordHash)
	assert.NotEmpty(t, stored.PasswordHash)
}

func TestRegister_RejectsDuplicateUsername(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()

	_, _, err := svc.Register(ctx, RegistrationRequest{
		Username: "bob", Email: "bob@example.com", Type: "business", Password: "pw123456",
	})
	require.NoError(t, err)

	_, _, err = svc.Register(ctx, RegistrationRequest{
		Username: "bob", Email: "other@example.com", Type: "customer", Password: "pw123456",
	})
	assert.ErrorIs(t, err, ErrUsernameTaken)
}

func TestRegister_RejectsUnknownType(t *testing.T) {
	svc, _ := setupService(t)

	_, _, err := svc.Register(context.Background(), RegistrationRequest{
		Username: "eve", Email: "eve@example.com", Type: "admin", Password: "pw123456",
	})
	assert.ErrorIs(t, err, ErrInvalidUserType)
}

func TestLogin_ReusesRegistrationToken(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()

	_, registerToken, err := svc.Register(ctx, RegistrationRequest{
		Username: "alice", Email: "alice@example.com", Type: "customer", Password: "secret123",
	})
	require.NoError(t, err)

	user, loginToken, err := svc.Login(ctx, LoginRequest{Username: "alice", Password: "secret123"})
	require.NoError(t, err)
	assert.Equal(t, registerToken, loginToken, "login must reuse the issued token")
	assert.Equal(t, "alice", user.Username)
	assert.Empty(t, user.PasswordHash)
}

func TestLogin_WrongPassword(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()

	_, _, err := svc.Register(ctx, RegistrationRequest{
		Username: "alice", Email: "alice@example.com", Type: "customer", Password: "secret123",
	})
	require.NoError(t, err)

	_, _, err = svc.Login(ctx, LoginRequest{Username: "alice", Password: "wrong"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogin_UnknownUser(t *testing.T) {
	svc, _ := setupService(t)

	_, _, err := svc.Login(context.Background(), LoginRequest{Username: "ghost", Password: "whatever"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogin_InactiveAccount(t *testing.T) {
	svc, db := setupService(t)
	ctx := context.Background()

	user, _, err := svc.Register(ctx, RegistrationRequest{
		Username: "sleepy", Email: "sleepy@example.com", Type: "business", Password: "secret123",
	})
	require.NoError(t, err)

	require.NoError(t, db.Model(&domain.User{}).Where("id = ?", user.ID).Update("is_active", false).Error)

	_, _, err = svc.Login(ctx, LoginRequest{Username: "sleepy", Password: "secret123"})
	assert.ErrorIs(t, err, ErrAccountInactive)
}
