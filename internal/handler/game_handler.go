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
	"gamecatalog/backend/internal/validation"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"gorm.io/gorm"
)

// region --- DTOs ---

// GameInput is the request body for creating and patching games. Every field
// is a pointer so an omitted key, an explicit null and a zero value are
// distinguishable on PATCH.
type GameInput struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Company     *string `json:"company"`
	Genre       *string `json:"genre"`
	Image       *string `json:"image"`
	ReleaseYear *int    `json:"release_year"`
	Duration    *int    `json:"duration"`
	MinAge      *int    `json:"min_age"`
	MinPlayers  *int    `json:"min_players"`
	MaxPlayers  *int    `json:"max_players"`
}

// toModel builds a game from a create body, reporting required fields that
// were not supplied. Numeric and cross-field rules are left to the
// validation package.
func (in *GameInput) toModel() (models.Game, validation.Errors) {
	var errs validation.Errors
	game := models.Game{
		Description: in.Description,
		Company:     in.Company,
		Genre:       in.Genre,
		Image:       in.Image,
		ReleaseYear: in.ReleaseYear,
		MinAge:      in.MinAge,
	}

	required := func(field string) {
		errs = append(errs, validation.FieldError{Field: field, Message: "is required"})
	}

	if in.Name == nil {
		required("name")
	} else {
		game.Name = *in.Name
	}
	if in.Duration == nil {
		required("duration")
	} else {
		game.Duration = *in.Duration
	}
	if in.MinPlayers == nil {
		required("min_players")
	} else {
		game.MinPlayers = *in.MinPlayers
	}
	if in.MaxPlayers == nil {
		required("max_players")
	} else {
		game.MaxPlayers = *in.MaxPlayers
	}

	return game, errs
}

type GameResponse struct {
	ID          uint      `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description"`
	Company     *string   `json:"company"`
	Genre       *string   `json:"genre"`
	Image       *string   `json:"image"`
	ReleaseYear *int      `json:"release_year"`
	Duration    int       `json:"duration"`
	MinAge      *int      `json:"min_age"`
	MinPlayers  int       `json:"min_players"`
	MaxPlayers  int       `json:"max_players"`
	AvgRating   *float64  `json:"avg_rating"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// GameWithReviewsResponse is the single-game read shape, embedding the
// game's reviews.
type GameWithReviewsResponse struct {
	GameResponse
	Reviews []ReviewResponse `json:"reviews"`
}

func newGameResponse(game models.Game) GameResponse {
	return GameResponse{
		ID:          game.ID,
		Name:        game.Name,
		Description: game.Description,
		Company:     game.Company,
		Genre:       game.Genre,
		Image:       game.Image,
		ReleaseYear: game.ReleaseYear,
		Duration:    game.Duration,
		MinAge:      game.MinAge,
		MinPlayers:  game.MinPlayers,
		MaxPlayers:  game.MaxPlayers,
		AvgRating:   game.AvgRating,
		CreatedAt:   game.CreatedAt,
		UpdatedAt:   game.UpdatedAt,
	}
}

func newGameWithReviewsResponse(game models.Game) GameWithReviewsResponse {
	reviews := make([]ReviewResponse, 0, len(game.Reviews))
	for _, review := range game.Reviews {
		reviews = append(reviews, newReviewResponse(review))
	}
	return GameWithReviewsResponse{
		GameResponse: newGameResponse(game),
		Reviews:      reviews,
	}
}

// endregion

// region --- Handlers ---

// CreateGame godoc
// @Summary      Create a new game
// @Description  Creates a new game in the catalog.
// @Tags         games
// @Accept       json
// @Produce      json
// @Param        input body GameInput true "Game Info"
// @Success      201  {object}  GameResponse
// @Failure      422  {object}  ValidationErrorResponse
// @Router       /games [post]
func CreateGame(c *gin.Context) {
	var input GameInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondValidation(c, bindError(err))
		return
	}

	game, errs := input.toModel()
	if errs = mergeViolations(errs, validation.ValidateGame(&game)); errs != nil {
		respondValidation(c, errs)
		return
	}

	if err := database.DB.Create(&game).Error; err != nil {
		logger.Errorf("create game: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create game"})
		return
	}

	c.JSON(http.StatusCreated, newGameResponse(game))
}

// GetGames godoc
// @Summary      Get a list of games
// @Description  Retrieves games ordered by id, with optional filtering by name and average-rating range.
// @Tags         games
// @Produce      json
// @Param        filter[name]            query  string  false  "Exact name match"
// @Param        filter[avg_rating][ge]  query  number  false  "Average rating lower bound (inclusive)"
// @Param        filter[avg_rating][le]  query  number  false  "Average rating upper bound (inclusive)"
// @Param        offset  query  int  false  "Rows to skip"       default(0)
// @Param        limit   query  int  false  "Max rows to return"  default(100)
// @Success      200  {array}   GameResponse
// @Failure      422  {object}  ValidationErrorResponse
// @Router       /games [get]
func GetGames(c *gin.Context) {
	params, errs := parseListParams(c)

	query := database.DB.Model(&models.Game{})
	if name, ok := c.GetQuery("filter[name]"); ok {
		if name == "" {
			errs = append(errs, validation.FieldError{Field: "filter[name]", Message: "must not be empty"})
		} else {
			query = query.Where("name = ?", name)
		}
	}
	if ge := queryFloat(c, "filter[avg_rating][ge]", 0, 5, &errs); ge != nil {
		query = query.Where("avg_rating >= ?", *ge)
	}
	if le := queryFloat(c, "filter[avg_rating][le]", 0, 5, &errs); le != nil {
		query = query.Where("avg_rating <= ?", *le)
	}

	if errs != nil {
		respondValidation(c, errs)
		return
	}

	var games []models.Game
	err := query.Order("id ASC").Offset(params.Offset).Limit(params.Limit).Find(&games).Error
	if err != nil {
		logger.Errorf("list games: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve games"})
		return
	}

	response := make([]GameResponse, 0, len(games))
	for _, game := range games {
		response = append(response, newGameResponse(game))
	}
	c.JSON(http.StatusOK, response)
}

// GetGameByID godoc
// @Summary      Get a single game by ID
// @Description  Retrieves a game including its reviews.
// @Tags         games
// @Produce      json
// @Param        id path int true "Game ID"
// @Success      200 {object} GameWithReviewsResponse
// @Failure      404 {object} ErrorResponse "Game not found"
// @Router       /games/{id} [get]
func GetGameByID(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("id"))

	var game models.Game
	err := database.DB.Preload("Reviews", func(db *gorm.DB) *gorm.DB {
		return db.Order("reviews.id ASC")
	}).First(&game, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Game not found"})
			return
		}
		logger.Errorf("get game %d: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve game"})
		return
	}

	c.JSON(http.StatusOK, newGameWithReviewsResponse(game))
}

// UpdateGame godoc
// @Summary      Update a game
// @Description  Applies a partial update; the merged record is re-validated with the create rules.
// @Tags         games
// @Accept       json
// @Produce      json
// @Param        id    path      int       true  "Game ID"
// @Param        input body      GameInput true  "Fields to change"
// @Success      200   {object}  GameResponse
// @Failure      404   {object}  ErrorResponse "Game not found"
// @Failure      422   {object}  ValidationErrorResponse
// @Router       /games/{id} [patch]
func UpdateGame(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("id"))

	var game models.Game
	if err := database.DB.First(&game, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Game not found"})
			return
		}
		logger.Errorf("get game %d: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve game"})
		return
	}

	var input GameInput
	if err := c.ShouldBindBodyWith(&input, binding.JSON); err != nil {
		respondValidation(c, bindError(err))
		return
	}
	var raw map[string]json.RawMessage
	if err := c.ShouldBindBodyWith(&raw, binding.JSON); err != nil {
		respondValidation(c, bindError(err))
		return
	}

	errs := applyGamePatch(&game, &input, raw)
	if errs = mergeViolations(errs, validation.ValidateGame(&game)); errs != nil {
		respondValidation(c, errs)
		return
	}

	if err := database.DB.Save(&game).Error; err != nil {
		logger.Errorf("update game %d: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update game"})
		return
	}

	c.JSON(http.StatusOK, newGameResponse(game))
}

// applyGamePatch merges supplied fields into the stored record. Keys absent
// from the body keep their prior values; an explicit null clears optional
// fields and is a violation on required ones. avg_rating is derived and
// never client-writable, so it is ignored here.
func applyGamePatch(game *models.Game, in *GameInput, raw map[string]json.RawMessage) validation.Errors {
	var errs validation.Errors

	requiredNull := func(field string) {
		errs = append(errs, validation.FieldError{Field: field, Message: "is required"})
	}

	if _, ok := raw["name"]; ok {
		if in.Name == nil {
			requiredNull("name")
		} else {
			game.Name = *in.Name
		}
	}
	if _, ok := raw["duration"]; ok {
		if in.Duration == nil {
			requiredNull("duration")
		} else {
			game.Duration = *in.Duration
		}
	}
	if _, ok := raw["min_players"]; ok {
		if in.MinPlayers == nil {
			requiredNull("min_players")
		} else {
			game.MinPlayers = *in.MinPlayers
		}
	}
	if _, ok := raw["max_players"]; ok {
		if in.MaxPlayers == nil {
			requiredNull("max_players")
		} else {
			game.MaxPlayers = *in.MaxPlayers
		}
	}

	if _, ok := raw["description"]; ok {
		game.Description = in.Description
	}
	if _, ok := raw["company"]; ok {
		game.Company = in.Company
	}
	if _, ok := raw["genre"]; ok {
		game.Genre = in.Genre
	}
	if _, ok := raw["image"]; ok {
		game.Image = in.Image
	}
	if _, ok := raw["release_year"]; ok {
		game.ReleaseYear = in.ReleaseYear
	}
	if _, ok := raw["min_age"]; ok {
		game.MinAge = in.MinAge
	}

	return errs
}

// DeleteGame godoc
// @Summary      Delete a game
// @Description  Deletes a game and all of its reviews.
// @Tags         games
// @Produce      json
// @Param        id path int true "Game ID"
// @Success      200 {object} DeleteResponse
// @Failure      404 {object} ErrorResponse "Game not found"
// @Router       /games/{id} [delete]
func DeleteGame(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("id"))

	// Reviews go with the game via ON DELETE CASCADE, in the same statement.
	result := database.DB.Delete(&models.Game{}, id)
	if result.Error != nil {
		logger.Errorf("delete game %d: %v", id, result.Error)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete game"})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Game not found"})
		return
	}

	c.JSON(http.StatusOK, DeleteResponse{OK: true})
}

// endregion
