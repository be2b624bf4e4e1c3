package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"gamecatalog/backend/internal/database"
	"gamecatalog/backend/internal/logger"
	"gamecatalog/backend/internal/models"
	"gamecatalog/backend/internal/rating"
	"gamecatalog/backend/internal/validation"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"gorm.io/gorm"
)

// region --- DTOs ---

// ReviewInput is the request body for creating and patching reviews.
// game_id is fixed at creation; a review for another game is a new review.
// It binds as a signed int so a zero or negative id flows through to the
// game lookup and comes back as not-found, the same as any other missing id.
type ReviewInput struct {
	GameID  *int    `json:"game_id"`
	Rating  *int    `json:"rating"`
	Comment *string `json:"comment"`
}

func (in *ReviewInput) toModel() (models.Review, validation.Errors) {
	var errs validation.Errors
	review := models.Review{Comment: in.Comment}

	if in.GameID == nil {
		errs = append(errs, validation.FieldError{Field: "game_id", Message: "is required"})
	} else if *in.GameID > 0 {
		review.GameID = uint(*in.GameID)
	}
	if in.Rating == nil {
		errs = append(errs, validation.FieldError{Field: "rating", Message: "is required"})
	} else {
		review.Rating = *in.Rating
	}

	return review, errs
}

type ReviewResponse struct {
	ID        uint      `json:"id"`
	GameID    uint      `json:"game_id"`
	Rating    int       `json:"rating"`
	Comment   *string   `json:"comment"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ReviewWithGameResponse is the single-review read shape, embedding the
// parent game.
type ReviewWithGameResponse struct {
	ReviewResponse
	Game GameResponse `json:"game"`
}

func newReviewResponse(review models.Review) ReviewResponse {
	return ReviewResponse{
		ID:        review.ID,
		GameID:    review.GameID,
		Rating:    review.Rating,
		Comment:   review.Comment,
		CreatedAt: review.CreatedAt,
		UpdatedAt: review.UpdatedAt,
	}
}

// endregion

// region --- Handlers ---

// CreateReview godoc
// @Summary      Create a new review
// @Description  Creates a review for an existing game and refreshes the game's average rating.
// @Tags         reviews
// @Accept       json
// @Produce      json
// @Param        input body ReviewInput true "Review Info"
// @Success      201  {object}  ReviewResponse
// @Failure      404  {object}  ErrorResponse "Game not found"
// @Failure      422  {object}  ValidationErrorResponse
// @Router       /reviews [post]
func CreateReview(c *gin.Context) {
	var input ReviewInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondValidation(c, bindError(err))
		return
	}

	review, errs := input.toModel()
	if errs = mergeViolations(errs, validation.ValidateReview(&review)); errs != nil {
		respondValidation(c, errs)
		return
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		var game models.Game
		if err := tx.First(&game, review.GameID).Error; err != nil {
			return err
		}
		if err := tx.Create(&review).Error; err != nil {
			return err
		}
		return rating.Recompute(tx, review.GameID)
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Game not found"})
			return
		}
		logger.Errorf("create review: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create review"})
		return
	}

	c.JSON(http.StatusCreated, newReviewResponse(review))
}

// GetReviews godoc
// @Summary      Get a list of reviews
// @Description  Retrieves reviews ordered by id, optionally filtered by game.
// @Tags         reviews
// @Produce      json
// @Param        filter[game_id]  query  int  false  "Only reviews of this game"
// @Param        offset  query  int  false  "Rows to skip"        default(0)
// @Param        limit   query  int  false  "Max rows to return"  default(100)
// @Success      200  {array}   ReviewResponse
// @Failure      422  {object}  ValidationErrorResponse
// @Router       /reviews [get]
func GetReviews(c *gin.Context) {
	params, errs := parseListParams(c)

	query := database.DB.Model(&models.Review{})
	if gameID := queryID(c, "filter[game_id]", &errs); gameID != nil {
		query = query.Where("game_id = ?", *gameID)
	}

	if errs != nil {
		respondValidation(c, errs)
		return
	}

	var reviews []models.Review
	err := query.Order("id ASC").Offset(params.Offset).Limit(params.Limit).Find(&reviews).Error
	if err != nil {
		logger.Errorf("list reviews: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve reviews"})
		return
	}

	response := make([]ReviewResponse, 0, len(reviews))
	for _, review := range reviews {
		response = append(response, newReviewResponse(review))
	}
	c.JSON(http.StatusOK, response)
}

// GetReviewByID godoc
// @Summary      Get a single review by ID
// @Description  Retrieves a review including its game.
// @Tags         reviews
// @Produce      json
// @Param        id path int true "Review ID"
// @Success      200 {object} ReviewWithGameResponse
// @Failure      404 {object} ErrorResponse "Review not found"
// @Router       /reviews/{id} [get]
func GetReviewByID(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("id"))

	var review models.Review
	if err := database.DB.Preload("Game").First(&review, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Review not found"})
			return
		}
		logger.Errorf("get review %d: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve review"})
		return
	}

	c.JSON(http.StatusOK, ReviewWithGameResponse{
		ReviewResponse: newReviewResponse(review),
		Game:           newGameResponse(review.Game),
	})
}

// UpdateReview godoc
// @Summary      Update a review
// @Description  Applies a partial update and refreshes the game's average rating.
// @Tags         reviews
// @Accept       json
// @Produce      json
// @Param        id    path      int         true  "Review ID"
// @Param        input body      ReviewInput true  "Fields to change"
// @Success      200   {object}  ReviewResponse
// @Failure      404   {object}  ErrorResponse "Review not found"
// @Failure      422   {object}  ValidationErrorResponse
// @Router       /reviews/{id} [patch]
func UpdateReview(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("id"))

	var review models.Review
	if err := database.DB.First(&review, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Review not found"})
			return
		}
		logger.Errorf("get review %d: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve review"})
		return
	}

	var input ReviewInput
	if err := c.ShouldBindBodyWith(&input, binding.JSON); err != nil {
		respondValidation(c, bindError(err))
		return
	}
	var raw map[string]json.RawMessage
	if err := c.ShouldBindBodyWith(&raw, binding.JSON); err != nil {
		respondValidation(c, bindError(err))
		return
	}

	// game_id is ignored on update, like any other unknown key.
	var errs validation.Errors
	if _, ok := raw["rating"]; ok {
		if input.Rating == nil {
			errs = append(errs, validation.FieldError{Field: "rating", Message: "is required"})
		} else {
			review.Rating = *input.Rating
		}
	}
	if _, ok := raw["comment"]; ok {
		review.Comment = input.Comment
	}

	if errs = mergeViolations(errs, validation.ValidateReview(&review)); errs != nil {
		respondValidation(c, errs)
		return
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(&review).Error; err != nil {
			return err
		}
		return rating.Recompute(tx, review.GameID)
	})
	if err != nil {
		logger.Errorf("update review %d: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update review"})
		return
	}

	c.JSON(http.StatusOK, newReviewResponse(review))
}

// DeleteReview godoc
// @Summary      Delete a review
// @Description  Deletes a review and refreshes the game's average rating from the remaining reviews.
// @Tags         reviews
// @Produce      json
// @Param        id path int true "Review ID"
// @Success      200 {object} DeleteResponse
// @Failure      404 {object} ErrorResponse "Review not found"
// @Router       /reviews/{id} [delete]
func DeleteReview(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("id"))

	var review models.Review
	if err := database.DB.First(&review, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Review not found"})
			return
		}
		logger.Errorf("get review %d: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve review"})
		return
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&review).Error; err != nil {
			return err
		}
		return rating.Recompute(tx, review.GameID)
	})
	if err != nil {
		logger.Errorf("delete review %d: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete review"})
		return
	}

	c.JSON(http.StatusOK, DeleteResponse{OK: true})
}

// endregion
