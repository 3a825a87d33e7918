package models

import "gorm.io/gorm"

// AuthToken is the opaque bearer credential bound to exactly one user.
// Issuing a new token for a user replaces the previous row, so at most one
// key is valid per account at any time.
type AuthToken struct {
	gorm.Model
	Key    string `gorm:"uniqueIndex;not null"`
	UserID uint   `gorm:"uniqueIndex;not null"`
	User   *User  `gorm:"foreignKey:UserID"`
}
