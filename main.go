package main

import (
	"net/http"
	"os"
	"time"

	"github.com/fizzbuzzhq/fizzbuzz-backend/config"
	"github.com/fizzbuzzhq/fizzbuzz-backend/controllers"
	"github.com/fizzbuzzhq/fizzbuzz-backend/routes"
	"github.com/fizzbuzzhq/fizzbuzz-backend/services"
	"github.com/fizzbuzzhq/fizzbuzz-backend/utils/logger"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

// initEnv loads .env file and validates required vars
func initEnv() {
	if err := godotenv.Load(); err != nil {
		logger.Info("No .env file found, reading environment variables")
	}

	if os.Getenv("DATABASE_URL") == "" {
		logger.Fatalf("DATABASE_URL is required in .env or environment")
	}
}

// setupRouter initializes Gin routes and middleware
func setupRouter(games *controllers.GameController, sessions *controllers.SessionController, stream *services.SessionStream) *gin.Engine {
	r := gin.Default() // installs Logger and Recovery

	// CORS middleware
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000"}, // frontend origin
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Setup REST routes
	routes.SetupRoutes(r, games, sessions, stream)

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "timestamp": time.Now()})
	})

	return r
}

func main() {
	// Load env variables
	initEnv()

	// Connect to database
	db := config.SetupDatabase()

	// Wire services and controllers
	gameService := services.NewGameService(db)
	sessionService := services.NewSessionService(db)

	router := setupRouter(
		controllers.NewGameController(gameService),
		controllers.NewSessionController(sessionService),
		services.NewSessionStream(sessionService),
	)

	// Start server
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	logger.Infof("FizzBuzz backend starting on port %s", port)
	if err := router.Run(":" + port); err != nil {
		logger.Fatalf("Failed to start server: %v", err)
	}
}
