package order

import (
	"time"

	"github.com/shopspring/decimal"

	"marketplace/internal/domain"
)

type CreateOrderRequest struct {
	OfferDetailID int64 `json:"offer_detail_id" validate:"required"`
}

type UpdateOrderRequest struct {
	Status string `json:"status" validate:"required"`
}

type OrderResponse struct {
	ID                 int64              `json:"id"`
	CustomerUser       int64              `json:"customer_user"`
	BusinessUser       int64              `json:"business_user"`
	Title              string             `json:"title"`
	Revisions          int                `json:"revisions"`
	DeliveryTimeInDays int                `json:"delivery_time_in_days"`
	Price              decimal.Decimal    `json:"price"`
	Features           []string           `json:"features"`
	OfferType          domain.OfferType   `json:"offer_type"`
	Status             domain.OrderStatus `json:"status"`
	CreatedAt          time.Time          `json:"created_at"`
	UpdatedAt          time.Time          `json:"updated_at"`
}

func toResponse(o *domain.Order) *OrderResponse {
	features := o.Features
	if features == nil {
		features = []string{}
	}
	return &OrderResponse{
		ID:                 o.ID,
		CustomerUser:       o.CustomerUserID,
		BusinessUser:       o.BusinessUserID,
		Title:              o.Title,
		Revisions:          o.Revisions,
		DeliveryTimeInDays: o.DeliveryTimeInDays,
		Price:              o.Price,
		Features:           features,
		OfferType:          o.OfferType,
		Status:             o.Status,
		CreatedAt:          o.CreatedAt,
		UpdatedAt:          o.UpdatedAt,
	}
}
