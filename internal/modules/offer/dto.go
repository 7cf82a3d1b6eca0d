package offer

import (
	"fmt"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"marketplace/internal/domain"
)

// DetailPayload is one tier in a create/update request.
type DetailPayload struct {
	Title              string          `json:"title"`
	Revisions          int             `json:"revisions"`
	DeliveryTimeInDays int             `json:"delivery_time_in_days"`
	Price              decimal.Decimal `json:"price"`
	Features           []string        `json:"features"`
	OfferType          string          `json:"offer_type"`
}

type CreateOfferRequest struct {
	Title       string          `json:"title" validate:"required"`
	Description string          `json:"description"`
	Image       string          `json:"image"`
	Details     []DetailPayload `json:"details"`
}

// UpdateOfferRequest uses pointers so an absent field stays untouched. A
// present details list replaces the entire stored set.
type UpdateOfferRequest struct {
	Title       *string          `json:"title"`
	Description *string          `json:"description"`
	Image       *string          `json:"image"`
	Details     *[]DetailPayload `json:"details"`
}

// DetailLink is the compact child representation embedded in offer reads.
type DetailLink struct {
	ID  int64  `json:"id"`
	URL string `json:"url"`
}

// UserDetails is the owner summary: name fields only, no credentials.
type UserDetails struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Username  string `json:"username"`
}

type OfferResponse struct {
	ID              int64            `json:"id"`
	User            int64            `json:"user"`
	Title           string           `json:"title"`
	Image           string           `json:"image,omitempty"`
	Description     string           `json:"description"`
	CreatedAt       time.Time        `json:"created_at"`
	UpdatedAt       time.Time        `json:"updated_at"`
	Details         []DetailLink     `json:"details"`
	MinPrice        *decimal.Decimal `json:"min_price"`
	MinDeliveryTime *int             `json:"min_delivery_time"`
	UserDetails     *UserDetails     `json:"user_details,omitempty"`
}

type DetailResponse struct {
	ID                 int64           `json:"id"`
	Title              string          `json:"title"`
	Revisions          int             `json:"revisions"`
	DeliveryTimeInDays int             `json:"delivery_time_in_days"`
	Price              decimal.Decimal `json:"price"`
	Features           []string        `json:"features"`
	OfferType          string          `json:"offer_type"`
}

func toOfferResponse(o *domain.Offer) OfferResponse {
	resp := OfferResponse{
		ID:          o.ID,
		User:        o.BusinessUserID,
		Title:       o.Title,
		Image:       o.Image,
		Description: o.Description,
		CreatedAt:   o.CreatedAt,
		UpdatedAt:   o.UpdatedAt,
		Details:     make([]DetailLink, 0, len(o.Details)),
	}

	for i := range o.Details {
		d := &o.Details[i]
		resp.Details = append(resp.Details, DetailLink{
			ID:  d.ID,
			URL: fmt.Sprintf("/api/offerdetails/%d/", d.ID),
		})
		if resp.MinPrice == nil || d.Price.LessThan(*resp.MinPrice) {
			p := d.Price
			resp.MinPrice = &p
		}
		if resp.MinDeliveryTime == nil || d.DeliveryTimeInDays < *resp.MinDeliveryTime {
			t := d.DeliveryTimeInDays
			resp.MinDeliveryTime = &t
		}
	}

	if o.BusinessUser != nil {
		resp.UserDetails = &UserDetails{
			FirstName: o.BusinessUser.FirstName,
			LastName:  o.BusinessUser.LastName,
			Username:  o.BusinessUser.Username,
		}
	}
	return resp
}

func toDetailResponse(d *domain.OfferDetail) DetailResponse {
	features := d.Features
	if features == nil {
		features = []string{}
	}
	return DetailResponse{
		ID:                 d.ID,
		Title:              d.Title,
		Revisions:          d.Revisions,
		DeliveryTimeInDays: d.DeliveryTimeInDays,
		Price:              d.Price,
		Features:           features,
		OfferType:          string(d.OfferType),
	}
}

func toDomainDetails(payloads []DetailPayload) []domain.OfferDetail {
	details := make([]domain.OfferDetail, 0, len(payloads))
	for _, p := range payloads {
		features := p.Features
		if features == nil {
			features = []string{}
		}
		details = append(details, domain.OfferDetail{
			Title:              p.Title,
			Revisions:          p.Revisions,
			DeliveryTimeInDays: p.DeliveryTimeInDays,
			Price:              p.Price,
			Features:           features,
			OfferType:          domain.OfferType(p.OfferType),
		})
	}
	return details
}

// validateDetails rejects the whole write when any entry misses its tier
// identifier, reporting errors per payload index.
func validateDetails(payloads []DetailPayload) *DetailValidationError {
	errs := map[string]map[string]string{}
	for i, p := range payloads {
		if p.OfferType == "" {
			errs[strconv.Itoa(i)] = map[string]string{"offer_type": "This field is required."}
			continue
		}
		if !domain.ValidOfferType(domain.OfferType(p.OfferType)) {
			errs[strconv.Itoa(i)] = map[string]string{"offer_type": "Value must be one of: basic, standard, premium."}
		}
	}
	if len(errs) > 0 {
		return &DetailValidationError{Details: errs}
	}
	return nil
}
