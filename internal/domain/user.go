package domain

import "time"

type UserType string

const (
	TypeBusiness UserType = "business"
	TypeCustomer UserType = "customer"
)

// ValidUserType reports whether t is one of the two closed account types.
func ValidUserType(t UserType) bool {
	return t == TypeBusiness || t == TypeCustomer
}

type User struct {
	ID           int64     `json:"id" gorm:"primaryKey"`
	Username     string    `json:"username" gorm:"uniqueIndex;size:150;not null"`
	Email        string    `json:"email" gorm:"size:254"`
	PasswordHash string    `json:"-" gorm:"not null"`
	FirstName    string    `json:"first_name" gorm:"size:150"`
	LastName     string    `json:"last_name" gorm:"size:150"`
	Type         UserType  `json:"type" gorm:"size:20;default:customer;index"`
	IsActive     bool      `json:"is_active" gorm:"default:true"`
	IsStaff      bool      `json:"-" gorm:"default:false"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
