package models

import "time"

// Game represents a game in the catalog.
//
// Deletes are hard deletes: removing a game removes its reviews through the
// ON DELETE CASCADE constraint in one statement.
type Game struct {
	ID          uint    `gorm:"primaryKey"`
	Name        string  `gorm:"size:255;not null;index"`
	Description *string `gorm:"type:text"`
	Company     *string `gorm:"size:255;index"`
	Genre       *string `gorm:"size:255;index"`
	Image       *string `gorm:"size:512"`
	ReleaseYear *int    `gorm:"index"`
	Duration    int     `gorm:"not null"`
	MinAge      *int
	MinPlayers  int     `gorm:"not null"`
	MaxPlayers  int     `gorm:"not null"`

	// Derived from the review set; NULL while the game has no reviews.
	// Written only by rating.Recompute, never from request input.
	AvgRating *float64 `gorm:"index"`

	CreatedAt time.Time
	UpdatedAt time.Time

	Reviews []Review `gorm:"foreignKey:GameID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}
