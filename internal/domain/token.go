package domain

import "time"

// AuthToken is the opaque bearer credential issued at registration and login.
// One row per user; logins reuse the existing key (get-or-create), so
// concurrent logins converge on a single token.
type AuthToken struct {
	ID        int64     `json:"-" gorm:"primaryKey"`
	UserID    int64     `json:"-" gorm:"uniqueIndex;not null"`
	Key       string    `json:"-" gorm:"uniqueIndex;size:64;not null"`
	CreatedAt time.Time `json:"-"`
}
