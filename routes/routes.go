package routes

import (
	"github.com/fizzbuzzhq/fizzbuzz-backend/controllers"
	"github.com/fizzbuzzhq/fizzbuzz-backend/services"
	"github.com/gin-gonic/gin"
)

func SetupRoutes(r *gin.Engine, games *controllers.GameController, sessions *controllers.SessionController, stream *services.SessionStream) {
	// ----------------------
	// Game definition routes
	// ----------------------
	r.GET("/game", games.List)            // List all games
	r.GET("/game/:id", games.Get)         // Get game with rules
	r.GET("/game/:id/rules", games.Rules) // Get rules only
	r.POST("/game", games.Create)         // Create game
	r.DELETE("/game/:id", games.Delete)   // Delete game, cascades

	// ----------------------
	// Session routes
	// ----------------------
	r.POST("/session", sessions.Start)                   // Start play session
	r.GET("/session/:id", sessions.Get)                  // Current session state
	r.POST("/session/:id/answer", sessions.SubmitAnswer) // Score an answer

	// ----------------------
	// Live session feed
	// ----------------------
	r.GET("/ws/session/:id", stream.Handle)
}
