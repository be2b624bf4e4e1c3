package handler_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"gamecatalog/backend/internal/database"
	"gamecatalog/backend/internal/handler"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

// setupRouter mounts the real routes on a fresh in-memory database.
func setupRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := database.ConnectTest()
	require.NoError(t, err)
	database.DB = db

	router := gin.New()
	handler.RegisterRoutes(router)
	return router
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), out))
}

// violatedFields extracts the field names from a 422 response body.
func violatedFields(t *testing.T, w *httptest.ResponseRecorder) []string {
	t.Helper()
	var resp handler.ValidationErrorResponse
	decodeBody(t, w, &resp)

	out := make([]string, len(resp.Errors))
	for i, fe := range resp.Errors {
		out[i] = fe.Field
	}
	return out
}

func gameBody(name string) map[string]interface{} {
	return map[string]interface{}{
		"name":        name,
		"duration":    60,
		"min_players": 2,
		"max_players": 4,
	}
}

func createGame(t *testing.T, router *gin.Engine, name string) uint {
	t.Helper()
	w := doJSON(t, router, http.MethodPost, "/games", gameBody(name))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp handler.GameResponse
	decodeBody(t, w, &resp)
	return resp.ID
}

func createReview(t *testing.T, router *gin.Engine, gameID uint, reviewRating int) uint {
	t.Helper()
	w := doJSON(t, router, http.MethodPost, "/reviews", map[string]interface{}{
		"game_id": gameID,
		"rating":  reviewRating,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp handler.ReviewResponse
	decodeBody(t, w, &resp)
	return resp.ID
}

func fetchGame(t *testing.T, router *gin.Engine, id uint) handler.GameWithReviewsResponse {
	t.Helper()
	w := doJSON(t, router, http.MethodGet, fmt.Sprintf("/games/%d", id), nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp handler.GameWithReviewsResponse
	decodeBody(t, w, &resp)
	return resp
}
