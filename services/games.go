package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/fizzbuzzhq/fizzbuzz-backend/models"
	"github.com/fizzbuzzhq/fizzbuzz-backend/utils/logger"
	"gorm.io/gorm"
)

// GameService owns validated game definitions and their rules.
type GameService struct {
	db *gorm.DB
}

func NewGameService(db *gorm.DB) *GameService {
	return &GameService{db: db}
}

// rulesInOrder keeps rule evaluation and display order stable.
func rulesInOrder(db *gorm.DB) *gorm.DB {
	return db.Order("game_rules.id")
}

// CreateGame validates and stores a definition together with its rules.
// Validation failures wrap ErrInvalidInput; a taken name returns
// ErrDuplicateName.
func (s *GameService) CreateGame(req models.CreateGameRequest) (*models.GameDefinition, error) {
	if req.MinNumber < 0 || req.MaxNumber < req.MinNumber {
		return nil, fmt.Errorf("%w: invalid number range", ErrInvalidInput)
	}
	if strings.TrimSpace(req.Name) == "" || strings.TrimSpace(req.Author) == "" {
		return nil, fmt.Errorf("%w: name and author are required", ErrInvalidInput)
	}
	if len(req.Rules) == 0 {
		return nil, fmt.Errorf("%w: at least one rule is required", ErrInvalidInput)
	}
	for _, r := range req.Rules {
		if r.Divisor <= 0 {
			return nil, fmt.Errorf("%w: rule divisor must be positive", ErrInvalidInput)
		}
		if strings.TrimSpace(r.Word) == "" {
			return nil, fmt.Errorf("%w: rule word is required", ErrInvalidInput)
		}
	}

	var count int64
	if err := s.db.Model(&models.GameDefinition{}).Where("name = ?", req.Name).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrDuplicateName
	}

	game := models.GameDefinition{
		Name:      req.Name,
		Author:    req.Author,
		MinNumber: req.MinNumber,
		MaxNumber: req.MaxNumber,
	}
	for _, r := range req.Rules {
		game.Rules = append(game.Rules, models.GameRule{Divisor: r.Divisor, Word: r.Word})
	}

	if err := s.db.Create(&game).Error; err != nil {
		return nil, err
	}
	logger.Infof("created game %d (%q) with %d rules", game.ID, game.Name, len(game.Rules))
	return &game, nil
}

// GetGame returns a definition with its rules, or nil when absent.
func (s *GameService) GetGame(id uint) (*models.GameDefinition, error) {
	var game models.GameDefinition
	err := s.db.Preload("Rules", rulesInOrder).First(&game, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &game, nil
}

// ListGames returns all stored definitions.
func (s *GameService) ListGames() ([]models.GameDefinition, error) {
	var games []models.GameDefinition
	if err := s.db.Preload("Rules", rulesInOrder).Find(&games).Error; err != nil {
		return nil, err
	}
	return games, nil
}

// GetGameRules reports a game's rules and, separately, whether the game
// exists at all. A game with zero rules cannot happen through CreateGame
// but the two signals stay distinct so the HTTP layer can decide.
func (s *GameService) GetGameRules(id uint) ([]models.GameRule, bool, error) {
	game, err := s.GetGame(id)
	if err != nil {
		return nil, false, err
	}
	if game == nil {
		return nil, false, nil
	}
	return game.Rules, true, nil
}

// DeleteGame removes a definition plus its rules and every session
// referencing it, in one transaction so no orphans survive a partial
// failure. Returns false when the game does not exist.
func (s *GameService) DeleteGame(id uint) (bool, error) {
	var game models.GameDefinition
	err := s.db.First(&game, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("game_definition_id = ?", id).Delete(&models.GameSession{}).Error; err != nil {
			return err
		}
		if err := tx.Where("game_definition_id = ?", id).Delete(&models.GameRule{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.GameDefinition{}, id).Error
	})
	if err != nil {
		return false, err
	}
	logger.Infof("deleted game %d with its rules and sessions", id)
	return true, nil
}
