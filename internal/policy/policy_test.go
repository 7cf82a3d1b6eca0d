package policy

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"marketplace/internal/domain"
)

var (
	anon     = Actor{}
	customer = Actor{ID: 1, Type: domain.TypeCustomer, Authenticated: true}
	business = Actor{ID: 2, Type: domain.TypeBusiness, Authenticated: true}
	staff    = Actor{ID: 3, Type: domain.TypeCustomer, IsStaff: true, Authenticated: true}
)

func TestCustomerWrite(t *testing.T) {
	assert.Equal(t, Unauthorized, CustomerWrite(anon))
	assert.Equal(t, Forbidden, CustomerWrite(business))
	assert.Equal(t, Allow, CustomerWrite(customer))
}

func TestBusinessWrite(t *testing.T) {
	assert.Equal(t, Unauthorized, BusinessWrite(anon))
	assert.Equal(t, Forbidden, BusinessWrite(customer))
	assert.Equal(t, Allow, BusinessWrite(business))
}

func TestReviewMutate(t *testing.T) {
	review := &domain.Review{ID: 10, ReviewerID: customer.ID, BusinessUserID: business.ID}

	assert.Equal(t, Unauthorized, ReviewMutate(anon, review))
	assert.Equal(t, NotFound, ReviewMutate(customer, nil))
	assert.Equal(t, Allow, ReviewMutate(customer, review))

	other := Actor{ID: 99, Type: domain.TypeCustomer, Authenticated: true}
	assert.Equal(t, Forbidden, ReviewMutate(other, review))
}

func TestOfferMutate_HidesForeignOffers(t *testing.T) {
	offer := &domain.Offer{ID: 5, BusinessUserID: business.ID}

	assert.Equal(t, Unauthorized, OfferMutate(anon, offer))
	assert.Equal(t, Allow, OfferMutate(business, offer))
	assert.Equal(t, NotFound, OfferMutate(business, nil))

	// another business user must not learn the offer exists
	other := Actor{ID: 77, Type: domain.TypeBusiness, Authenticated: true}
	assert.Equal(t, NotFound, OfferMutate(other, offer))
}

func TestOrderMutation_NotFoundBeforePermission(t *testing.T) {
	// a missing order is NotFound for every caller, credentials or not
	for _, a := range []Actor{anon, customer, business, staff} {
		assert.Equal(t, NotFound, OrderMutation(a, OrderUpdate, false))
		assert.Equal(t, NotFound, OrderMutation(a, OrderDelete, false))
	}
}

func TestOrderMutation_Update(t *testing.T) {
	assert.Equal(t, Unauthorized, OrderMutation(anon, OrderUpdate, true))
	assert.Equal(t, Forbidden, OrderMutation(customer, OrderUpdate, true))
	assert.Equal(t, Allow, OrderMutation(business, OrderUpdate, true))
}

func TestOrderMutation_Delete(t *testing.T) {
	assert.Equal(t, Unauthorized, OrderMutation(anon, OrderDelete, true))
	assert.Equal(t, Forbidden, OrderMutation(customer, OrderDelete, true))
	assert.Equal(t, Forbidden, OrderMutation(business, OrderDelete, true))
	assert.Equal(t, Allow, OrderMutation(staff, OrderDelete, true))
}
