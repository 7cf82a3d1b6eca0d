package stats

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

func setup(t *testing.T) (*Service, *gorm.DB) {
	db, err := database.Connect(fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name()))
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	svc := NewService(
		repository.NewReviewRepository(db),
		repository.NewProfileRepository(db),
		repository.NewOfferRepository(db),
	)
	return svc, db
}

func TestBaseInfo_EmptyPlatform(t *testing.T) {
	svc, _ := setup(t)

	info, err := svc.BaseInfo(context.Background())
	require.NoError(t, err)
	assert.Zero(t, info.ReviewCount)
	assert.Zero(t, info.AverageRating, "average must be 0 with no reviews, not NaN")
	assert.Zero(t, info.BusinessProfileCount)
	assert.Zero(t, info.OfferCount)
}

func TestBaseInfo_Aggregates(t *testing.T) {
	svc, db := setup(t)

	business := &domain.User{Username: "bob", Email: "bob@example.com", PasswordHash: "x", Type: domain.TypeBusiness, IsActive: true}
	customer := &domain.User{Username: "alice", Email: "alice@example.com", PasswordHash: "x", Type: domain.TypeCustomer, IsActive: true}
	require.NoError(t, db.Create(business).Error)
	require.NoError(t, db.Create(customer).Error)
	require.NoError(t, db.Create(&domain.Profile{UserID: business.ID}).Error)
	require.NoError(t, db.Create(&domain.Profile{UserID: customer.ID}).Error)

	require.NoError(t, db.Create(&domain.Offer{BusinessUserID: business.ID, Title: "Design"}).Error)
	require.NoError(t, db.Create(&domain.Review{BusinessUserID: business.ID, ReviewerID: customer.ID, Rating: 4}).Error)
	require.NoError(t, db.Create(&domain.Review{BusinessUserID: business.ID, ReviewerID: customer.ID, Rating: 5}).Error)

	info, err := svc.BaseInfo(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(2), info.ReviewCount)
	assert.InDelta(t, 4.5, info.AverageRating, 0.001)
	assert.Equal(t, int64(1), info.BusinessProfileCount, "only business profiles count")
	assert.Equal(t, int64(1), info.OfferCount)
}
