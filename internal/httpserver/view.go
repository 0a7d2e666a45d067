package httpserver

import "github.com/robalobadob/wordling/internal/game"

// gameView is the JSON shape handed to presentation clients. The target
// word only appears once the game is over.
type gameView struct {
	GameID       string       `json:"gameId"`
	CurrentGuess []string     `json:"currentGuess"`
	History      []game.Round `json:"history"`
	TriedLetters []string     `json:"triedLetters"`
	AttemptsUsed int          `json:"attemptsUsed"`
	MaxAttempts  int          `json:"maxAttempts"`
	WordLength   int          `json:"wordLength"`
	State        string       `json:"state"` // "playing" | "won" | "lost"
	IsOver       bool         `json:"isOver"`
	HasWon       bool         `json:"hasWon"`
	Target       string       `json:"target,omitempty"`
}

func newGameView(g game.Game) gameView {
	v := gameView{
		GameID:       g.ID,
		CurrentGuess: g.CurrentGuess,
		History:      g.History,
		TriedLetters: g.TriedLetters,
		AttemptsUsed: g.AttemptsUsed,
		MaxAttempts:  g.MaxAttempts,
		WordLength:   g.WordLength(),
		State:        g.State(),
		IsOver:       g.IsOver,
		HasWon:       g.HasWon,
	}
	if g.IsOver {
		v.Target = g.Target()
	}
	return v
}
