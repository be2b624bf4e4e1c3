package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes mounts the API routes on the router. Kept separate from
// main so tests can run the same routes against a test database.
func RegisterRoutes(router *gin.Engine) {
	// Health check endpoint
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
		})
	})

	gameRoutes := router.Group("/games")
	{
		gameRoutes.POST("", CreateGame)
		gameRoutes.GET("", GetGames)
		gameRoutes.GET("/:id", GetGameByID)
		gameRoutes.PATCH("/:id", UpdateGame)
		gameRoutes.DELETE("/:id", DeleteGame)
	}

	reviewRoutes := router.Group("/reviews")
	{
		reviewRoutes.POST("", CreateReview)
		reviewRoutes.GET("", GetReviews)
		reviewRoutes.GET("/:id", GetReviewByID)
		reviewRoutes.PATCH("/:id", UpdateReview)
		reviewRoutes.DELETE("/:id", DeleteReview)
	}
}
