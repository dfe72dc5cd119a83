package services

import (
	"encoding/json"
	"errors"
	"math/rand"
	"sync"
	"time"

	"github.com/fizzbuzzhq/fizzbuzz-backend/game"
	"github.com/fizzbuzzhq/fizzbuzz-backend/models"
	"github.com/fizzbuzzhq/fizzbuzz-backend/utils/logger"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// SessionService runs timed play sessions against stored game
// definitions. Mutations of one session go through a per-session lock,
// so concurrent submits can neither draw the same number twice nor lose
// a score increment.
type SessionService struct {
	db  *gorm.DB
	now func() time.Time

	rngMu sync.Mutex
	rng   *rand.Rand

	mu    sync.Mutex
	locks map[uint]*sync.Mutex
}

func NewSessionService(db *gorm.DB) *SessionService {
	return &SessionService{
		db:    db,
		now:   time.Now,
		rng:   rand.New(rand.NewSource(time.Now().UnixNano())),
		locks: make(map[uint]*sync.Mutex),
	}
}

func (s *SessionService) sessionLock(id uint) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	lock, ok := s.locks[id]
	if !ok {
		lock = &sync.Mutex{}
		s.locks[id] = lock
	}
	return lock
}

// dropSessionLock forgets the lock of a session that no longer exists,
// so deleted sessions do not leak a mutex each.
func (s *SessionService) dropSessionLock(id uint) {
	s.mu.Lock()
	delete(s.locks, id)
	s.mu.Unlock()
}

// draw serializes access to the shared rng; *rand.Rand is not safe for
// concurrent use across sessions.
func (s *SessionService) draw(min, max int, served []int) (int, []int, bool) {
	s.rngMu.Lock()
	defer s.rngMu.Unlock()
	return game.DrawNext(min, max, served, s.rng)
}

// StartSession creates a session against an existing game definition
// and seeds it with its first drawn number. Returns nil when the game
// does not exist.
func (s *SessionService) StartSession(req models.StartSessionRequest) (*models.SessionState, error) {
	var def models.GameDefinition
	err := s.db.Preload("Rules", rulesInOrder).First(&def, req.GameDefinitionID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	served := []int{}
	next, served, ok := s.draw(def.MinNumber, def.MaxNumber, served)

	session := models.GameSession{
		GameDefinitionID: def.ID,
		StartTime:        s.now(),
		DurationSeconds:  req.DurationSeconds,
		NumbersServed:    encodeServed(served),
	}
	if err := s.db.Create(&session).Error; err != nil {
		return nil, err
	}
	logger.Infof("started session %d for game %d (%ds)", session.ID, def.ID, req.DurationSeconds)

	var nextNumber *int
	if ok {
		nextNumber = &next
	}
	return s.state(&session, &def, nextNumber, !ok), nil
}

// SubmitAnswer scores the submitted answer against the number the
// player was last shown, draws the next number and reports whether the
// session has ended. The score mutation is permanent even when this
// submission ends the session. Returns nil when the session does not
// exist.
func (s *SessionService) SubmitAnswer(id uint, req models.SubmitAnswerRequest) (*models.SessionState, error) {
	lock := s.sessionLock(id)
	lock.Lock()
	defer lock.Unlock()

	var session models.GameSession
	err := s.db.Preload("GameDefinition.Rules", rulesInOrder).First(&session, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		s.dropSessionLock(id)
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	def := session.GameDefinition

	served := decodeServed(session.NumbersServed)

	// -1 sits outside any valid range, so no rule can match and the
	// expected answer degrades to "-1". Cannot happen in practice since
	// start always seeds one number.
	lastNumber := -1
	if len(served) > 0 {
		lastNumber = served[len(served)-1]
	}
	expected := game.ExpectedAnswer(lastNumber, def.Rules)
	if game.AnswerMatches(req.Answer, expected) {
		session.ScoreCorrect++
	} else {
		session.ScoreIncorrect++
	}

	next, served, ok := s.draw(def.MinNumber, def.MaxNumber, served)
	session.NumbersServed = encodeServed(served)
	if err := s.db.Save(&session).Error; err != nil {
		return nil, err
	}

	elapsed := s.now().Sub(session.StartTime).Seconds()
	ended := elapsed > float64(session.DurationSeconds) ||
		len(served) >= def.RangeSize() ||
		!ok
	if ended {
		return s.state(&session, def, nil, true), nil
	}
	return s.state(&session, def, &next, false), nil
}

// GetSession reports a session's current state without mutating it.
// The pending number is fully derivable: more numbers served than
// answers scored means the last served number is still waiting for its
// answer. Returns nil when the session does not exist.
func (s *SessionService) GetSession(id uint) (*models.SessionState, error) {
	var session models.GameSession
	err := s.db.Preload("GameDefinition.Rules", rulesInOrder).First(&session, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	def := session.GameDefinition

	served := decodeServed(session.NumbersServed)
	answered := session.ScoreCorrect + session.ScoreIncorrect

	var nextNumber *int
	if len(served) > answered {
		n := served[len(served)-1]
		nextNumber = &n
	}

	elapsed := s.now().Sub(session.StartTime).Seconds()
	ended := elapsed > float64(session.DurationSeconds) || nextNumber == nil
	if ended {
		nextNumber = nil
	}
	return s.state(&session, def, nextNumber, ended), nil
}

// state assembles the external view. TimeLeftSeconds is clamped at
// zero.
func (s *SessionService) state(session *models.GameSession, def *models.GameDefinition, next *int, ended bool) *models.SessionState {
	left := session.DurationSeconds - int(s.now().Sub(session.StartTime).Seconds())
	if left < 0 {
		left = 0
	}
	return &models.SessionState{
		SessionID:        session.ID,
		GameDefinitionID: def.ID,
		ScoreCorrect:     session.ScoreCorrect,
		ScoreIncorrect:   session.ScoreIncorrect,
		NextNumber:       next,
		TimeLeftSeconds:  left,
		Ended:            ended,
		Rules:            def.Rules,
	}
}

func encodeServed(served []int) datatypes.JSON {
	b, _ := json.Marshal(served)
	return datatypes.JSON(b)
}

// decodeServed tolerates null and empty columns, both read as no
// numbers served yet.
func decodeServed(raw datatypes.JSON) []int {
	var served []int
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &served); err != nil {
			logger.Warnf("unreadable numbers_served column, treating as empty: %v", err)
		}
	}
	return served
}
