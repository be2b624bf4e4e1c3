package models

import "time"

// Review represents a user review of a game. A review belongs to exactly
// one game and its rating feeds into the game's average rating.
type Review struct {
	ID      uint    `gorm:"primaryKey"`
	GameID  uint    `gorm:"not null;index"`
	Rating  int     `gorm:"not null;index"`
	Comment *string `gorm:"type:text"`

	CreatedAt time.Time
	UpdatedAt time.Time

	Game Game `gorm:"foreignKey:GameID"`
}
