package handler_test

import (
	"fmt"
	"net/http"
	"testing"

	"gamecatalog/backend/internal/handler"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateReview(t *testing.T) {
	router := setupRouter(t)
	gameID := createGame(t, router, "Azul")

	w := doJSON(t, router, http.MethodPost, "/reviews", map[string]interface{}{
		"game_id": gameID,
		"rating":  4,
		"comment": "Tiles everywhere",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp handler.ReviewResponse
	decodeBody(t, w, &resp)
	assert.NotZero(t, resp.ID)
	assert.Equal(t, gameID, resp.GameID)
	assert.Equal(t, 4, resp.Rating)
	require.NotNil(t, resp.Comment)
	assert.Equal(t, "Tiles everywhere", *resp.Comment)

	// The aggregate reflects the new review immediately.
	game := fetchGame(t, router, gameID)
	require.NotNil(t, game.AvgRating)
	assert.Equal(t, 4.0, *game.AvgRating)
}

func TestCreateReviewGameMissing(t *testing.T) {
	router := setupRouter(t)

	// Every flavor of nonexistent id is not-found, never a validation failure.
	for _, gameID := range []int{999, 0, -5} {
		w := doJSON(t, router, http.MethodPost, "/reviews", map[string]interface{}{
			"game_id": gameID,
			"rating":  4,
		})
		require.Equal(t, http.StatusNotFound, w.Code, "game_id %d: %s", gameID, w.Body.String())

		var resp handler.ErrorResponse
		decodeBody(t, w, &resp)
		assert.Equal(t, "Game not found", resp.Error)
	}
}

func TestCreateReviewInvalid(t *testing.T) {
	router := setupRouter(t)
	gameID := createGame(t, router, "Azul")

	for _, r := range []int{0, 6, -1} {
		w := doJSON(t, router, http.MethodPost, "/reviews", map[string]interface{}{
			"game_id": gameID,
			"rating":  r,
		})
		require.Equal(t, http.StatusUnprocessableEntity, w.Code, "rating %d should be rejected", r)
		assert.Contains(t, violatedFields(t, w), "rating")
	}

	// Missing fields are all reported at once.
	w := doJSON(t, router, http.MethodPost, "/reviews", map[string]interface{}{})
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	got := violatedFields(t, w)
	assert.Contains(t, got, "game_id")
	assert.Contains(t, got, "rating")
}

func TestGetReviews(t *testing.T) {
	router := setupRouter(t)
	a := createGame(t, router, "Game A")
	b := createGame(t, router, "Game B")

	r1 := createReview(t, router, a, 5)
	r2 := createReview(t, router, b, 3)
	r3 := createReview(t, router, a, 4)

	listIDs := func(query string) []uint {
		w := doJSON(t, router, http.MethodGet, "/reviews"+query, nil)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		var resp []handler.ReviewResponse
		decodeBody(t, w, &resp)
		ids := make([]uint, len(resp))
		for i, r := range resp {
			ids[i] = r.ID
		}
		return ids
	}

	assert.Equal(t, []uint{r1, r2, r3}, listIDs(""))
	assert.Equal(t, []uint{r1, r3}, listIDs(fmt.Sprintf("?filter[game_id]=%d", a)))
	assert.Equal(t, []uint{r2}, listIDs(fmt.Sprintf("?filter[game_id]=%d", b)))
	assert.Empty(t, listIDs("?filter[game_id]=999"))
	assert.Equal(t, []uint{r2, r3}, listIDs("?offset=1"))
	assert.Equal(t, []uint{r1}, listIDs("?limit=1"))
}

func TestGetReviewsInvalidParams(t *testing.T) {
	router := setupRouter(t)

	cases := []struct {
		name  string
		query string
		field string
	}{
		{"non-numeric game filter", "?filter[game_id]=abc", "filter[game_id]"},
		{"zero game filter", "?filter[game_id]=0", "filter[game_id]"},
		{"negative offset", "?offset=-1", "offset"},
		{"limit above cap", "?limit=200", "limit"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := doJSON(t, router, http.MethodGet, "/reviews"+tc.query, nil)
			require.Equal(t, http.StatusUnprocessableEntity, w.Code, w.Body.String())
			assert.Contains(t, violatedFields(t, w), tc.field)
		})
	}
}

func TestGetReviewByID(t *testing.T) {
	router := setupRouter(t)
	gameID := createGame(t, router, "Cascadia")
	reviewID := createReview(t, router, gameID, 5)

	w := doJSON(t, router, http.MethodGet, fmt.Sprintf("/reviews/%d", reviewID), nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp handler.ReviewWithGameResponse
	decodeBody(t, w, &resp)
	assert.Equal(t, reviewID, resp.ID)
	assert.Equal(t, 5, resp.Rating)
	assert.Equal(t, gameID, resp.Game.ID)
	assert.Equal(t, "Cascadia", resp.Game.Name)

	w = doJSON(t, router, http.MethodGet, "/reviews/999", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUpdateReview(t *testing.T) {
	router := setupRouter(t)
	gameID := createGame(t, router, "Azul")
	reviewID := createReview(t, router, gameID, 2)
	createReview(t, router, gameID, 4)

	w := doJSON(t, router, http.MethodPatch, fmt.Sprintf("/reviews/%d", reviewID), map[string]interface{}{
		"rating": 5,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp handler.ReviewResponse
	decodeBody(t, w, &resp)
	assert.Equal(t, 5, resp.Rating)

	// (5 + 4) / 2
	game := fetchGame(t, router, gameID)
	require.NotNil(t, game.AvgRating)
	assert.Equal(t, 4.5, *game.AvgRating)
}

func TestUpdateReviewInvalid(t *testing.T) {
	router := setupRouter(t)
	gameID := createGame(t, router, "Azul")
	reviewID := createReview(t, router, gameID, 3)

	// rating is semantically required: an explicit null is rejected.
	w := doJSON(t, router, http.MethodPatch, fmt.Sprintf("/reviews/%d", reviewID), map[string]interface{}{
		"rating": nil,
	})
	require.Equal(t, http.StatusUnprocessableEntity, w.Code, w.Body.String())
	assert.Contains(t, violatedFields(t, w), "rating")

	for _, r := range []int{0, 6} {
		w := doJSON(t, router, http.MethodPatch, fmt.Sprintf("/reviews/%d", reviewID), map[string]interface{}{
			"rating": r,
		})
		require.Equal(t, http.StatusUnprocessableEntity, w.Code, "rating %d should be rejected", r)
	}

	// Failed updates leave the aggregate untouched.
	game := fetchGame(t, router, gameID)
	require.NotNil(t, game.AvgRating)
	assert.Equal(t, 3.0, *game.AvgRating)
}

func TestUpdateReviewClearsComment(t *testing.T) {
	router := setupRouter(t)
	gameID := createGame(t, router, "Azul")

	w := doJSON(t, router, http.MethodPost, "/reviews", map[string]interface{}{
		"game_id": gameID,
		"rating":  4,
		"comment": "Great",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	var created handler.ReviewResponse
	decodeBody(t, w, &created)

	w = doJSON(t, router, http.MethodPatch, fmt.Sprintf("/reviews/%d", created.ID), map[string]interface{}{
		"comment": nil,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp handler.ReviewResponse
	decodeBody(t, w, &resp)
	assert.Nil(t, resp.Comment)
	assert.Equal(t, 4, resp.Rating)
}

func TestUpdateReviewNotFound(t *testing.T) {
	router := setupRouter(t)

	w := doJSON(t, router, http.MethodPatch, "/reviews/999", map[string]interface{}{"rating": 5})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeleteReview(t *testing.T) {
	router := setupRouter(t)
	gameID := createGame(t, router, "Azul")
	first := createReview(t, router, gameID, 5)
	second := createReview(t, router, gameID, 3)

	w := doJSON(t, router, http.MethodDelete, fmt.Sprintf("/reviews/%d", second), nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp handler.DeleteResponse
	decodeBody(t, w, &resp)
	assert.True(t, resp.OK)

	// Average recomputed from the post-delete set.
	game := fetchGame(t, router, gameID)
	require.NotNil(t, game.AvgRating)
	assert.Equal(t, 5.0, *game.AvgRating)

	// Deleting the last review resets the average to null.
	w = doJSON(t, router, http.MethodDelete, fmt.Sprintf("/reviews/%d", first), nil)
	require.Equal(t, http.StatusOK, w.Code)

	game = fetchGame(t, router, gameID)
	assert.Nil(t, game.AvgRating)
}

func TestDeleteReviewNotFound(t *testing.T) {
	router := setupRouter(t)

	w := doJSON(t, router, http.MethodDelete, "/reviews/999", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
