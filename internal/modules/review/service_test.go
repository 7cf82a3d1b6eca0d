package review

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"marketplace/internal/database"
	"marketplace/internal/domain"
	"marketplace/internal/policy"
	"marketplace/internal/repository"
)

func setup(t *testing.T) (*Service, *gorm.DB, *domain.User, *domain.User) {
	db, err := database.Connect(fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name()))
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	svc := NewService(repository.NewReviewRepository(db), repository.NewUserRepository(db))

	customer := &domain.User{Username: "alice", Email: "alice@example.com", PasswordHash: "x", Type: domain.TypeCustomer, IsActive: true}
	business := &domain.User{Username: "bob", Email: "bob@example.com", PasswordHash: "x", Type: domain.TypeBusiness, IsActive: true}
	require.NoError(t, db.Create(customer).Error)
	require.NoError(t, db.Create(business).Error)
	return svc, db, customer, business
}

func actorFor(u *domain.User) policy.Actor {
	return policy.Actor{ID: u.ID, Type: u.Type, Authenticated: true}
}

func intPtr(n int) *int { return &n }

func TestCreate_InjectsReviewer(t *testing.T) {
	svc, _, customer, business := setup(t)

	resp, err := svc.Create(context.Background(), actorFor(customer), CreateReviewRequest{
		BusinessUser: business.ID,
		Rating:       intPtr(5),
		Description:  "Great work.",
	})
	require.NoError(t, err)
	assert.Equal(t, customer.ID, resp.Reviewer)
	assert.Equal(t, business.ID, resp.BusinessUser)
	assert.Equal(t, 5, resp.Rating)
}

func TestCreate_RatingMessages(t *testing.T) {
	svc, _, customer, business := setup(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, actorFor(customer), CreateReviewRequest{
		BusinessUser: business.ID,
		Description:  "no rating",
	})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "Rating must be an integer.", verr.Fields["rating"])

	_, err = svc.Create(ctx, actorFor(customer), CreateReviewRequest{
		BusinessUser: business.ID,
		Rating:       intPtr(0),
		Description:  "too low",
	})
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "Rating must be at least 1.", verr.Fields["rating"])
}

func TestCreate_TargetMustBeBusinessNow(t *testing.T) {
	svc, db, customer, business := setup(t)
	ctx := context.Background()

	// reviewing another customer is rejected
	other := &domain.User{Username: "carol", Email: "carol@example.com", PasswordHash: "x", Type: domain.TypeCustomer, IsActive: true}
	require.NoError(t, db.Create(other).Error)

	_, err := svc.Create(ctx, actorFor(customer), CreateReviewRequest{
		BusinessUser: other.ID, Rating: intPtr(4), Description: "nope",
	})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "business_user")

	// the check reads the live row, not a cached role
	require.NoError(t, db.Model(&domain.User{}).Where("id = ?", business.ID).Update("type", "customer").Error)
	_, err = svc.Create(ctx, actorFor(customer), CreateReviewRequest{
		BusinessUser: business.ID, Rating: intPtr(4), Description: "nope",
	})
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "business_user")
}

func TestCreate_CustomerOnly(t *testing.T) {
	svc, _, _, business := setup(t)

	_, err := svc.Create(context.Background(), actorFor(business), CreateReviewRequest{
		BusinessUser: business.ID, Rating: intPtr(5), Description: "self praise",
	})
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = svc.Create(context.Background(), policy.Actor{}, CreateReviewRequest{
		BusinessUser: business.ID, Rating: intPtr(5), Description: "anon",
	})
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestUpdate_NonReviewerForbiddenAndUnchanged(t *testing.T) {
	svc, db, customer, business := setup(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, actorFor(customer), CreateReviewRequest{
		BusinessUser: business.ID, Rating: intPtr(5), Description: "Original text.",
	})
	require.NoError(t, err)

	intruder := &domain.User{Username: "mallory", Email: "mallory@example.com", PasswordHash: "x", Type: domain.TypeCustomer, IsActive: true}
	require.NoError(t, db.Create(intruder).Error)

	_, err = svc.Update(ctx, actorFor(intruder), created.ID, UpdateReviewRequest{Rating: intPtr(1)})
	assert.ErrorIs(t, err, ErrForbidden)

	var stored domain.Review
	require.NoError(t, db.First(&stored, created.ID).Error)
	assert.Equal(t, 5, stored.Rating, "a forbidden update must leave the row untouched")
	assert.Equal(t, "Original text.", stored.Description)
}

func TestUpdate_ByReviewer(t *testing.T) {
	svc, _, customer, business := setup(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, actorFor(customer), CreateReviewRequest{
		BusinessUser: business.ID, Rating: intPtr(3), Description: "Okay.",
	})
	require.NoError(t, err)

	updated, err := svc.Update(ctx, actorFor(customer), created.ID, UpdateReviewRequest{Rating: intPtr(5)})
	require.NoError(t, err)
	assert.Equal(t, 5, updated.Rating)
	assert.Equal(t, "Okay.", updated.Description, "omitted fields stay")

	_, err = svc.Update(ctx, actorFor(customer), created.ID, UpdateReviewRequest{Rating: intPtr(0)})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "Rating must be at least 1.", verr.Fields["rating"])
}

func TestDelete_ReviewerOnly(t *testing.T) {
	svc, db, customer, business := setup(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, actorFor(customer), CreateReviewRequest{
		BusinessUser: business.ID, Rating: intPtr(2), Description: "Meh.",
	})
	require.NoError(t, err)

	err = svc.Delete(ctx, actorFor(business), created.ID)
	assert.ErrorIs(t, err, ErrForbidden)

	require.NoError(t, svc.Delete(ctx, actorFor(customer), created.ID))

	var count int64
	db.Model(&domain.Review{}).Count(&count)
	assert.Zero(t, count)
}

func TestMutate_MissingReview(t *testing.T) {
	svc, _, customer, _ := setup(t)

	_, err := svc.Update(context.Background(), actorFor(customer), 99999, UpdateReviewRequest{Rating: intPtr(3)})
	assert.ErrorIs(t, err, ErrNotFound)
}
