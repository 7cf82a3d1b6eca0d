package domain

import "time"

// Profile holds the extended contact/bio information attached one-to-one to a
// user. Every registered user owns exactly one profile; it is created in the
// same transaction as the user itself.
type Profile struct {
	ID           int64     `json:"id" gorm:"primaryKey"`
	UserID       int64     `json:"user_id" gorm:"uniqueIndex;not null"`
	User         *User     `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	File         string    `json:"file,omitempty" gorm:"size:512"`
	Location     string    `json:"location,omitempty" gorm:"size:255"`
	Tel          string    `json:"tel,omitempty" gorm:"size:30"`
	Description  string    `json:"description,omitempty"`
	WorkingHours string    `json:"working_hours,omitempty" gorm:"size:100"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
