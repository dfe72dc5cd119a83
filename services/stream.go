package services

import (
	"net/http"
	"strconv"
	"time"

	"github.com/fizzbuzzhq/fizzbuzz-backend/utils/logger"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// SessionStream pushes a session's state over a websocket once per
// second, a read-only projection of the session engine for clients
// that want a live countdown instead of polling.
type SessionStream struct {
	sessions *SessionService
}

func NewSessionStream(sessions *SessionService) *SessionStream {
	return &SessionStream{sessions: sessions}
}

// Handle upgrades the connection and streams until the session ends or
// the peer goes away.
func (st *SessionStream) Handle(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid session id"})
		return
	}

	state, err := st.sessions.GetSession(uint(id))
	if err != nil {
		logger.Errorf("stream session %d: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve session"})
		return
	}
	if state == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Session not found"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logger.Errorf("[WS] upgrade error: %v", err)
		return
	}
	logger.Infof("[WS] client attached to session %d", id)

	go st.run(conn, uint(id))
}

func (st *SessionStream) run(conn *websocket.Conn, id uint) {
	defer conn.Close()

	// Drain the read side so close frames from the peer are processed.
	go func() {
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		state, err := st.sessions.GetSession(id)
		if err != nil || state == nil {
			return
		}
		if err := conn.WriteJSON(state); err != nil {
			return
		}
		if state.Ended {
			return
		}
		<-ticker.C
	}
}
