package models

import (
	"time"

	"gorm.io/datatypes"
)

// GameSession is one timed play-through of a GameDefinition.
//
// NumbersServed stores the numbers already drawn as a JSON int array in
// draw order. The last element is the number currently shown to the
// player until it has been answered; whether the session has ended is
// never stored, it is recomputed from time and exhaustion on every read.
type GameSession struct {
	ID               uint `gorm:"primaryKey"`
	GameDefinitionID uint `gorm:"index"`
	GameDefinition   *GameDefinition
	StartTime        time.Time
	DurationSeconds  int
	ScoreCorrect     int
	ScoreIncorrect   int
	NumbersServed    datatypes.JSON `gorm:"type:json"`
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// StartSessionRequest is the POST /session body.
type StartSessionRequest struct {
	GameDefinitionID uint `json:"gameDefinitionId"`
	DurationSeconds  int  `json:"durationSeconds"`
}

// SubmitAnswerRequest is the POST /session/:id/answer body.
type SubmitAnswerRequest struct {
	Answer string `json:"answer"`
}

// SessionState is the external view of a session returned by every
// session endpoint. NextNumber is null once the session has ended or
// the range is exhausted.
type SessionState struct {
	SessionID        uint       `json:"sessionId"`
	GameDefinitionID uint       `json:"gameDefinitionId"`
	ScoreCorrect     int        `json:"scoreCorrect"`
	ScoreIncorrect   int        `json:"scoreIncorrect"`
	NextNumber       *int       `json:"nextNumber"`
	TimeLeftSeconds  int        `json:"timeLeftSeconds"`
	Ended            bool       `json:"ended"`
	Rules            []GameRule `json:"rules"`
}
