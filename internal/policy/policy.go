// Package policy holds the pure access-control predicates. Every decision is
// a function of the requesting actor and, where relevant, the target row; no
// predicate touches the database or the request beyond what it is handed.
package policy

import "marketplace/internal/domain"

// Actor is the authenticated (or anonymous) identity behind a request.
type Actor struct {
	ID            int64
	Type          domain.UserType
	IsStaff       bool
	Authenticated bool
}

// Decision is the outcome of a policy check. NotFound exists as a first-class
// outcome because the order path signals a missing target before any
// permission answer, and offer ownership checks hide foreign offers entirely.
type Decision int

const (
	Allow Decision = iota
	Unauthorized
	Forbidden
	NotFound
)

// OrderAction distinguishes the two mutation paths on /orders/{id}/.
type OrderAction int

const (
	OrderUpdate OrderAction = iota
	OrderDelete
)

// CustomerWrite permits mutations reserved to customer accounts.
func CustomerWrite(a Actor) Decision {
	if !a.Authenticated {
		return Unauthorized
	}
	if a.Type != domain.TypeCustomer {
		return Forbidden
	}
	return Allow
}

// BusinessWrite permits mutations reserved to business accounts.
func BusinessWrite(a Actor) Decision {
	if !a.Authenticated {
		return Unauthorized
	}
	if a.Type != domain.TypeBusiness {
		return Forbidden
	}
	return Allow
}

// ReviewMutate permits changes to a review only for its original reviewer.
func ReviewMutate(a Actor, r *domain.Review) Decision {
	if !a.Authenticated {
		return Unauthorized
	}
	if r == nil {
		return NotFound
	}
	if r.ReviewerID != a.ID {
		return Forbidden
	}
	return Allow
}

// OfferMutate permits changes to an offer only for the owning business user.
// A nonexistent or foreign offer surfaces as NotFound, never Forbidden, so
// write attempts cannot probe for the existence of other users' offers.
func OfferMutate(a Actor, o *domain.Offer) Decision {
	if !a.Authenticated {
		return Unauthorized
	}
	if o == nil || o.BusinessUserID != a.ID {
		return NotFound
	}
	return Allow
}

// OrderMutation decides update/delete on an order. The existence check comes
// first: a missing order is NotFound for every caller, authenticated or not,
// before any permission is considered. Update then requires a business
// account (any business account, not just the owning one), delete requires a
// staff account.
func OrderMutation(a Actor, action OrderAction, exists bool) Decision {
	if !exists {
		return NotFound
	}

	switch action {
	case OrderUpdate:
		return BusinessWrite(a)
	case OrderDelete:
		if !a.Authenticated {
			return Unauthorized
		}
		if !a.IsStaff {
			return Forbidden
		}
		return Allow
	}
	return Forbidden
}
