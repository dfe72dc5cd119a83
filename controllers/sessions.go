package controllers

import (
	"net/http"

	"github.com/fizzbuzzhq/fizzbuzz-backend/models"
	"github.com/fizzbuzzhq/fizzbuzz-backend/services"
	"github.com/fizzbuzzhq/fizzbuzz-backend/utils/logger"
	"github.com/gin-gonic/gin"
)

// SessionController maps session operations onto HTTP. Not-found comes
// back from the service as a nil state, never as an error.
type SessionController struct {
	sessions *services.SessionService
}

func NewSessionController(sessions *services.SessionService) *SessionController {
	return &SessionController{sessions: sessions}
}

// Start begins a play session against an existing game
func (ctl *SessionController) Start(c *gin.Context) {
	var req models.StartSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	state, err := ctl.sessions.StartSession(req)
	if err != nil {
		logger.Errorf("start session for game %d: %v", req.GameDefinitionID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to start session"})
		return
	}
	if state == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Game not found"})
		return
	}
	c.JSON(http.StatusOK, state)
}

// Get reports the current session state
func (ctl *SessionController) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	state, err := ctl.sessions.GetSession(id)
	if err != nil {
		logger.Errorf("get session %d: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve session"})
		return
	}
	if state == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Session not found"})
		return
	}
	c.JSON(http.StatusOK, state)
}

// SubmitAnswer scores an answer and serves the next number
func (ctl *SessionController) SubmitAnswer(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req models.SubmitAnswerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	state, err := ctl.sessions.SubmitAnswer(id, req)
	if err != nil {
		logger.Errorf("submit answer for session %d: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to submit answer"})
		return
	}
	if state == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Session not found"})
		return
	}
	c.JSON(http.StatusOK, state)
}
