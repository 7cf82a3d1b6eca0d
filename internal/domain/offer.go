package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Prices go over the wire as JSON numbers, not quoted strings.
func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

type OfferType string

const (
	TierBasic    OfferType = "basic"
	TierStandard OfferType = "standard"
	TierPremium  OfferType = "premium"
)

func ValidOfferType(t OfferType) bool {
	return t == TierBasic || t == TierStandard || t == TierPremium
}

// Offer is a business user's service listing. Tiered pricing lives in the
// child OfferDetail rows, which are cascade-deleted with the offer.
type Offer struct {
	ID             int64         `json:"id" gorm:"primaryKey"`
	BusinessUserID int64         `json:"business_user" gorm:"index;not null"`
	BusinessUser   *User         `json:"-" gorm:"foreignKey:BusinessUserID"`
	Title          string        `json:"title" gorm:"size:255"`
	Image          string        `json:"image,omitempty" gorm:"size:512"`
	Description    string        `json:"description"`
	Details        []OfferDetail `json:"details" gorm:"foreignKey:OfferID;constraint:OnDelete:CASCADE"`
	CreatedAt      time.Time     `json:"created_at"`
	UpdatedAt      time.Time     `json:"updated_at"`
}

// OfferDetail is one priced tier (basic/standard/premium) of an offer.
// Nothing enforces at most one detail per tier; that is a business rule the
// data model deliberately leaves open.
type OfferDetail struct {
	ID                 int64           `json:"id" gorm:"primaryKey"`
	OfferID            int64           `json:"offer_id" gorm:"index;not null"`
	Title              string          `json:"title" gorm:"size:255"`
	Revisions          int             `json:"revisions" gorm:"default:0"`
	DeliveryTimeInDays int             `json:"delivery_time_in_days"`
	Price              decimal.Decimal `json:"price" gorm:"type:decimal(10,2)"`
	Features           []string        `json:"features" gorm:"serializer:json"`
	OfferType          OfferType       `json:"offer_type" gorm:"size:10"`
}
