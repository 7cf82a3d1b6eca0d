package order

import (
	"context"
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"marketplace/internal/database"
	"marketplace/internal/domain"
	"marketplace/internal/policy"
	"marketplace/internal/repository"
)

type fixture struct {
	svc      *Service
	db       *gorm.DB
	customer *domain.User
	business *domain.User
	detail   *domain.OfferDetail
}

func setup(t *testing.T) *fixture {
	db, err := database.Connect(fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name()))
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	svc := NewService(
		repository.NewOrderRepository(db),
		repository.NewOfferRepository(db),
		repository.NewUserRepository(db),
	)

	customer := &domain.User{Username: "alice", Email: "alice@example.com", PasswordHash: "x", Type: domain.TypeCustomer, IsActive: true}
	business := &domain.User{Username: "bob", Email: "bob@example.com", PasswordHash: "x", Type: domain.TypeBusiness, IsActive: true}
	require.NoError(t, db.Create(customer).Error)
	require.NoError(t, db.Create(business).Error)

	offer := &domain.Offer{BusinessUserID: business.ID, Title: "Website Design"}
	require.NoError(t, db.Create(offer).Error)
	detail := &domain.OfferDetail{
		OfferID:            offer.ID,
		Title:              "Basic Design",
		Revisions:          2,
		DeliveryTimeInDays: 7,
		Price:              decimal.NewFromInt(10),
		Features:           []string{"Responsive layout"},
		OfferType:          domain.TierBasic,
	}
	require.NoError(t, db.Create(detail).Error)

	return &fixture{svc: svc, db: db, customer: customer, business: business, detail: detail}
}

func actorFor(u *domain.User) policy.Actor {
	return policy.Actor{ID: u.ID, Type: u.Type, IsStaff: u.IsStaff, Authenticated: true}
}

func TestCreate_SnapshotsDetail(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	resp, err := f.svc.Create(ctx, actorFor(f.customer), CreateOrderRequest{OfferDetailID: f.detail.ID})
	require.NoError(t, err)

	assert.Equal(t, f.customer.ID, resp.CustomerUser)
	assert.Equal(t, f.business.ID, resp.BusinessUser)
	assert.Equal(t, "Basic Design", resp.Title)
	assert.True(t, resp.Price.Equal(decimal.NewFromInt(10)))
	assert.Equal(t, 7, resp.DeliveryTimeInDays)
	assert.Equal(t, domain.StatusInProgress, resp.Status)
}

func TestCreate_SnapshotSurvivesDetailEdits(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	resp, err := f.svc.Create(ctx, actorFor(f.customer), CreateOrderRequest{OfferDetailID: f.detail.ID})
	require.NoError(t, err)

	// reprice the tier after the order exists
	require.NoError(t, f.db.Model(&domain.OfferDetail{}).
		Where("id = ?", f.detail.ID).
		Updates(map[string]interface{}{"price": "999", "delivery_time_in_days": 1}).Error)

	got, err := f.svc.Get(ctx, resp.ID)
	require.NoError(t, err)
	assert.True(t, got.Price.Equal(decimal.NewFromInt(10)), "order keeps the price at purchase time")
	assert.Equal(t, 7, got.DeliveryTimeInDays)
}

func TestCreate_UnknownDetail(t *testing.T) {
	f := setup(t)

	_, err := f.svc.Create(context.Background(), actorFor(f.customer), CreateOrderRequest{OfferDetailID: 99999})
	assert.ErrorIs(t, err, ErrInvalidDetail)
}

func TestCreate_BusinessAccountRejected(t *testing.T) {
	f := setup(t)

	_, err := f.svc.Create(context.Background(), actorFor(f.business), CreateOrderRequest{OfferDetailID: f.detail.ID})
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestUpdateStatus_Lifecycle(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	resp, err := f.svc.Create(ctx, actorFor(f.customer), CreateOrderRequest{OfferDetailID: f.detail.ID})
	require.NoError(t, err)

	updated, err := f.svc.UpdateStatus(ctx, actorFor(f.business), resp.ID, "completed")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCompleted, updated.Status)

	_, err = f.svc.UpdateStatus(ctx, actorFor(f.business), resp.ID, "shipped")
	assert.ErrorIs(t, err, ErrInvalidStatus)

	_, err = f.svc.UpdateStatus(ctx, actorFor(f.customer), resp.ID, "cancelled")
	assert.ErrorIs(t, err, ErrForbidden, "only business accounts move orders")
}

func TestMutation_NotFoundBeforePermission(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	actors := []policy.Actor{
		{},                    // anonymous
		actorFor(f.customer),  // wrong role
		actorFor(f.business),  // right role for update
	}
	for _, a := range actors {
		_, err := f.svc.UpdateStatus(ctx, a, 99999, "completed")
		assert.ErrorIs(t, err, ErrNotFound)

		err = f.svc.Delete(ctx, a, 99999)
		assert.ErrorIs(t, err, ErrNotFound)
	}
}

func TestDelete_StaffOnly(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	resp, err := f.svc.Create(ctx, actorFor(f.customer), CreateOrderRequest{OfferDetailID: f.detail.ID})
	require.NoError(t, err)

	err = f.svc.Delete(ctx, actorFor(f.business), resp.ID)
	assert.ErrorIs(t, err, ErrForbidden)

	staff := actorFor(f.customer)
	staff.IsStaff = true
	require.NoError(t, f.svc.Delete(ctx, staff, resp.ID))

	_, err = f.svc.Get(ctx, resp.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCounts(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	first, err := f.svc.Create(ctx, actorFor(f.customer), CreateOrderRequest{OfferDetailID: f.detail.ID})
	require.NoError(t, err)
	_, err = f.svc.Create(ctx, actorFor(f.customer), CreateOrderRequest{OfferDetailID: f.detail.ID})
	require.NoError(t, err)

	n, err := f.svc.CountInProgress(ctx, f.business.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	_, err = f.svc.UpdateStatus(ctx, actorFor(f.business), first.ID, "completed")
	require.NoError(t, err)

	n, err = f.svc.CountInProgress(ctx, f.business.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	n, err = f.svc.CountCompleted(ctx, f.business.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestCounts_NonBusinessID(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	_, err := f.svc.CountInProgress(ctx, f.customer.ID)
	assert.ErrorIs(t, err, ErrBusinessNotFound)

	_, err = f.svc.CountCompleted(ctx, 99999)
	assert.ErrorIs(t, err, ErrBusinessNotFound)
}

func TestListForUser_EitherSide(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	_, err := f.svc.Create(ctx, actorFor(f.customer), CreateOrderRequest{OfferDetailID: f.detail.ID})
	require.NoError(t, err)

	asCustomer, err := f.svc.ListForUser(ctx, f.customer.ID)
	require.NoError(t, err)
	assert.Len(t, asCustomer, 1)

	asBusiness, err := f.svc.ListForUser(ctx, f.business.ID)
	require.NoError(t, err)
	assert.Len(t, asBusiness, 1)

	other, err := f.svc.ListForUser(ctx, 99999)
	require.NoError(t, err)
	assert.Empty(t, other)
}
