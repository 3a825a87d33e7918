package models

import "gorm.io/gorm"

type Recipe struct {
	gorm.Model
	Title       string  `gorm:"not null" json:"title"`
	TimeMinutes int     `gorm:"not null;default:0" json:"time_minutes"`
	Price       float64 `gorm:"type:numeric(7,2);not null;default:0" json:"price"`
	Link        string  `json:"link"`
	OwnerID     uint    `gorm:"not null;index" json:"owner_id"`
	Owner       *User   `gorm:"foreignKey:OwnerID" json:"owner,omitempty"`

	Tags        []Tag        `gorm:"many2many:recipe_tags" json:"tags"`
	Ingredients []Ingredient `gorm:"many2many:recipe_ingredients" json:"ingredients"`
}
