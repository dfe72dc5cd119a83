package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/fizzbuzzhq/fizzbuzz-backend/models"
	"github.com/fizzbuzzhq/fizzbuzz-backend/services"
	"github.com/fizzbuzzhq/fizzbuzz-backend/utils/logger"
	"github.com/gin-gonic/gin"
)

// GameController maps game definition operations onto HTTP.
type GameController struct {
	games *services.GameService
}

func NewGameController(games *services.GameService) *GameController {
	return &GameController{games: games}
}

func parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid id"})
		return 0, false
	}
	return uint(id), true
}

// List returns all game definitions
func (ctl *GameController) List(c *gin.Context) {
	games, err := ctl.games.ListGames()
	if err != nil {
		logger.Errorf("list games: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve games"})
		return
	}
	if games == nil {
		games = []models.GameDefinition{}
	}
	c.JSON(http.StatusOK, games)
}

// Get returns a single game definition with its rules
func (ctl *GameController) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	game, err := ctl.games.GetGame(id)
	if err != nil {
		logger.Errorf("get game %d: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve game"})
		return
	}
	if game == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Game not found"})
		return
	}
	c.JSON(http.StatusOK, game)
}

// Rules returns the rule list of a game. Absent game and empty rule
// list both map to 404, the distinction stays internal.
func (ctl *GameController) Rules(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	rules, found, err := ctl.games.GetGameRules(id)
	if err != nil {
		logger.Errorf("get rules for game %d: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve game rules"})
		return
	}
	if !found || len(rules) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Game not found"})
		return
	}
	c.JSON(http.StatusOK, rules)
}

// Create validates and stores a new game definition
func (ctl *GameController) Create(c *gin.Context) {
	var req models.CreateGameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	game, err := ctl.games.CreateGame(req)
	switch {
	case errors.Is(err, services.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrDuplicateName):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case err != nil:
		logger.Errorf("create game: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create game"})
	default:
		c.JSON(http.StatusCreated, game)
	}
}

// Delete removes a game with its rules and sessions
func (ctl *GameController) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	deleted, err := ctl.games.DeleteGame(id)
	if err != nil {
		logger.Errorf("delete game %d: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete game"})
		return
	}
	if !deleted {
		c.JSON(http.StatusNotFound, gin.H{"error": "Game not found"})
		return
	}
	c.Status(http.StatusNoContent)
}
