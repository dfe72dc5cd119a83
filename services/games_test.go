package services

import (
	"errors"
	"testing"

	"github.com/fizzbuzzhq/fizzbuzz-backend/config"
	"github.com/fizzbuzzhq/fizzbuzz-backend/models"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// newTestDB opens an isolated in-memory database. Max one connection,
// otherwise the pool hands out separate empty memory databases.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("unwrap test db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := config.Migrate(db); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}
	return db
}

func validCreateRequest() models.CreateGameRequest {
	return models.CreateGameRequest{
		Name:      "Classic",
		Author:    "tester",
		MinNumber: 1,
		MaxNumber: 100,
		Rules: []models.RuleInput{
			{Divisor: 3, Word: "Fizz"},
			{Divisor: 5, Word: "Buzz"},
		},
	}
}

func TestCreateGame(t *testing.T) {
	svc := NewGameService(newTestDB(t))

	game, err := svc.CreateGame(validCreateRequest())
	if err != nil {
		t.Fatalf("CreateGame: %v", err)
	}
	if game.ID == 0 {
		t.Error("expected an assigned id")
	}
	if len(game.Rules) != 2 {
		t.Errorf("expected 2 rules, got %d", len(game.Rules))
	}

	stored, err := svc.GetGame(game.ID)
	if err != nil {
		t.Fatalf("GetGame: %v", err)
	}
	if stored == nil {
		t.Fatal("created game not found")
	}
	if stored.Name != "Classic" || stored.Author != "tester" {
		t.Errorf("stored game mismatch: %+v", stored)
	}
	if len(stored.Rules) != 2 || stored.Rules[0].Word != "Fizz" || stored.Rules[1].Word != "Buzz" {
		t.Errorf("stored rules mismatch: %+v", stored.Rules)
	}
}

func TestCreateGame_Validation(t *testing.T) {
	svc := NewGameService(newTestDB(t))

	tests := []struct {
		name   string
		mutate func(*models.CreateGameRequest)
	}{
		{"empty name", func(r *models.CreateGameRequest) { r.Name = "" }},
		{"blank name", func(r *models.CreateGameRequest) { r.Name = "   " }},
		{"empty author", func(r *models.CreateGameRequest) { r.Author = "" }},
		{"negative min", func(r *models.CreateGameRequest) { r.MinNumber = -1 }},
		{"max below min", func(r *models.CreateGameRequest) { r.MinNumber = 10; r.MaxNumber = 5 }},
		{"no rules", func(r *models.CreateGameRequest) { r.Rules = nil }},
		{"zero divisor", func(r *models.CreateGameRequest) { r.Rules[0].Divisor = 0 }},
		{"negative divisor", func(r *models.CreateGameRequest) { r.Rules[0].Divisor = -3 }},
		{"blank rule word", func(r *models.CreateGameRequest) { r.Rules[0].Word = " " }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validCreateRequest()
			tt.mutate(&req)
			if _, err := svc.CreateGame(req); !errors.Is(err, ErrInvalidInput) {
				t.Errorf("expected ErrInvalidInput, got %v", err)
			}
		})
	}
}

func TestCreateGame_DuplicateName(t *testing.T) {
	svc := NewGameService(newTestDB(t))

	if _, err := svc.CreateGame(validCreateRequest()); err != nil {
		t.Fatalf("first create: %v", err)
	}
	if _, err := svc.CreateGame(validCreateRequest()); !errors.Is(err, ErrDuplicateName) {
		t.Errorf("expected ErrDuplicateName, got %v", err)
	}
}

func TestGetGame_Absent(t *testing.T) {
	svc := NewGameService(newTestDB(t))

	game, err := svc.GetGame(999)
	if err != nil {
		t.Fatalf("GetGame: %v", err)
	}
	if game != nil {
		t.Errorf("expected nil for absent game, got %+v", game)
	}
}

func TestListGames(t *testing.T) {
	svc := NewGameService(newTestDB(t))

	req := validCreateRequest()
	if _, err := svc.CreateGame(req); err != nil {
		t.Fatalf("create: %v", err)
	}
	req.Name = "Variant"
	if _, err := svc.CreateGame(req); err != nil {
		t.Fatalf("create: %v", err)
	}

	games, err := svc.ListGames()
	if err != nil {
		t.Fatalf("ListGames: %v", err)
	}
	if len(games) != 2 {
		t.Errorf("expected 2 games, got %d", len(games))
	}
}

func TestGetGameRules(t *testing.T) {
	svc := NewGameService(newTestDB(t))

	game, err := svc.CreateGame(validCreateRequest())
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	rules, found, err := svc.GetGameRules(game.ID)
	if err != nil {
		t.Fatalf("GetGameRules: %v", err)
	}
	if !found {
		t.Error("expected existing game to be found")
	}
	if len(rules) != 2 {
		t.Errorf("expected 2 rules, got %d", len(rules))
	}

	_, found, err = svc.GetGameRules(999)
	if err != nil {
		t.Fatalf("GetGameRules absent: %v", err)
	}
	if found {
		t.Error("absent game reported as found")
	}
}

func TestDeleteGame_Cascades(t *testing.T) {
	db := newTestDB(t)
	games := NewGameService(db)
	sessions := NewSessionService(db)

	game, err := games.CreateGame(validCreateRequest())
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	state, err := sessions.StartSession(models.StartSessionRequest{
		GameDefinitionID: game.ID,
		DurationSeconds:  60,
	})
	if err != nil || state == nil {
		t.Fatalf("start session: state=%v err=%v", state, err)
	}

	deleted, err := games.DeleteGame(game.ID)
	if err != nil {
		t.Fatalf("DeleteGame: %v", err)
	}
	if !deleted {
		t.Fatal("expected delete to report true")
	}

	stored, err := games.GetGame(game.ID)
	if err != nil {
		t.Fatalf("GetGame after delete: %v", err)
	}
	if stored != nil {
		t.Error("game still present after delete")
	}

	var ruleCount, sessionCount int64
	db.Model(&models.GameRule{}).Where("game_definition_id = ?", game.ID).Count(&ruleCount)
	db.Model(&models.GameSession{}).Where("game_definition_id = ?", game.ID).Count(&sessionCount)
	if ruleCount != 0 {
		t.Errorf("%d orphaned rules left behind", ruleCount)
	}
	if sessionCount != 0 {
		t.Errorf("%d orphaned sessions left behind", sessionCount)
	}

	deleted, err = games.DeleteGame(game.ID)
	if err != nil {
		t.Fatalf("second delete: %v", err)
	}
	if deleted {
		t.Error("second delete of same id should report false")
	}
}
