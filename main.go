package main

import (
	"log"
	"os"

	"core"
	"ulti-elo-api/config"
	_ "ulti-elo-api/docs" // Swagger docs

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// @title           Ulti Elo API
// @version         1.0
// @description     Per-player per-team skill rating service with retroactive match editing

// @license.name  MIT
// @license.url   http://opensource.org/licenses/MIT

// @host      localhost:8080
// @BasePath  /

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	config.ConnectDatabase()

	r := gin.Default()
	r.Use(cors.Default())

	coreModule := core.NewModule(config.DB)
	coreModule.SetupRoutes(r)

	if err := coreModule.StartScheduler(); err != nil {
		log.Printf("Failed to start scheduler: %v", err)
	}
	defer coreModule.StopScheduler()

	// Swagger endpoint
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	r.GET("/health", healthHandler)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("Server starting on port %s", port)
	r.Run(":" + port)
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Message  string `json:"message" example:"Server is running"`
	Database string `json:"database" example:"connected"`
}

// @Summary Health Check
// @Description Check if the server is running and database is connected
// @Tags health
// @Produce json
// @Success 200 {object} HealthResponse
// @Router /health [get]
func healthHandler(c *gin.Context) {
	status := "connected"
	if sqlDB, err := config.DB.DB(); err != nil || sqlDB.Ping() != nil {
		status = "unreachable"
	}
	c.JSON(200, HealthResponse{
		Message:  "Server is running",
		Database: status,
	})
}
