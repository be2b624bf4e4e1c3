package main

import (
	"gamecatalog/backend/internal/config"
	"gamecatalog/backend/internal/database"
	"gamecatalog/backend/internal/handler"
	"gamecatalog/backend/internal/logger"

	"github.com/gin-gonic/gin"

	// Swagger imports
	_ "gamecatalog/backend/docs" // This is important for swag to find the generated docs

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func init() {
	config.LoadConfig()
}

// @title           Game Catalog API
// @version         1.0
// @description     CRUD API for games and game reviews with a maintained average rating per game.
// @host            localhost:8080
// @BasePath        /
func main() {
	// Connect to the database
	database.Connect(config.AppConfig.DSN())

	router := gin.Default()

	// Swagger route
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	handler.RegisterRoutes(router)

	logger.Infof("Server is running on %s", config.AppConfig.ServerAddr)
	logger.Infof("Swagger UI is available at http://localhost%s/swagger/index.html", config.AppConfig.ServerAddr)
	if err := router.Run(config.AppConfig.ServerAddr); err != nil {
		logger.Fatalf("server exited: %v", err)
	}
}
