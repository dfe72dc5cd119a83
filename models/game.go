package models

// GameDefinition is a named FizzBuzz variant: a number range plus a set
// of divisor/word rules.
type GameDefinition struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	Name      string     `gorm:"uniqueIndex;not null" json:"name"`
	Author    string     `gorm:"not null" json:"author"`
	MinNumber int        `json:"minNumber"`
	MaxNumber int        `json:"maxNumber"`
	Rules     []GameRule `gorm:"constraint:OnDelete:CASCADE" json:"rules"`
}

// GameRule is one divisor/word pair. Rules have no life of their own,
// they exist only inside their definition.
type GameRule struct {
	ID               uint   `gorm:"primaryKey" json:"-"`
	GameDefinitionID uint   `gorm:"index" json:"-"`
	Divisor          int    `json:"divisor"`
	Word             string `json:"word"`
}

// RangeSize is the count of numbers a session can serve.
func (g *GameDefinition) RangeSize() int {
	return g.MaxNumber - g.MinNumber + 1
}

// CreateGameRequest is the POST /game body.
type CreateGameRequest struct {
	Name      string      `json:"name"`
	Author    string      `json:"author"`
	MinNumber int         `json:"minNumber"`
	MaxNumber int         `json:"maxNumber"`
	Rules     []RuleInput `json:"rules"`
}

// RuleInput is one rule as submitted by the client.
type RuleInput struct {
	Divisor int    `json:"divisor"`
	Word    string `json:"word"`
}
