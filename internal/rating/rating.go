// Package rating maintains the derived average rating of a game. The
// recompute is the only writer of Game.AvgRating and is shared by every
// review mutation path so the rounding policy stays in one place.
package rating

import (
	"math"

	"gamecatalog/backend/internal/models"

	"gorm.io/gorm"
)

// Average returns the mean of the given ratings rounded half away from zero
// to one decimal place, or nil for an empty set.
func Average(ratings []int) *float64 {
	if len(ratings) == 0 {
		return nil
	}
	sum := 0
	for _, r := range ratings {
		sum += r
	}
	avg := math.Round(float64(sum)/float64(len(ratings))*10) / 10
	return &avg
}

// Recompute reloads the game's current review set and persists the resulting
// average. Call it inside the same transaction as the review mutation so a
// concurrent reader never sees a review without its effect on the average.
func Recompute(tx *gorm.DB, gameID uint) error {
	var ratings []int
	if err := tx.Model(&models.Review{}).
		Where("game_id = ?", gameID).
		Pluck("rating", &ratings).Error; err != nil {
		return err
	}

	return tx.Model(&models.Game{}).
		Where("id = ?", gameID).
		Update("avg_rating", Average(ratings)).Error
}
