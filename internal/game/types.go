// internal/game/types.go
//
// Core type definitions for the Wordling game engine.
// Defines:
//   - Mark: per-letter feedback for a submitted guess (correct/almost/incorrect).
//   - Round: one completed submission (guess + feedback).
//   - Game: the full state of a single game session.
//   - Config: construction options.

package game

// Mark represents the evaluation result for a single letter in a guess.
// Possible values:
//   - "correct":   letter matches the target at the same position.
//   - "almost":    letter appears somewhere else in the target.
//   - "incorrect": letter does not appear in the target at all.
type Mark string

const (
	MarkCorrect   Mark = "correct"
	MarkAlmost    Mark = "almost"
	MarkIncorrect Mark = "incorrect"
)

// DefaultMaxAttempts is used when Config.MaxAttempts is zero.
const DefaultMaxAttempts = 4

// Round is a single completed submission.
type Round struct {
	Guess    []string `json:"guess"`
	Feedback []Mark   `json:"feedback"`
}

// Game holds the state of a single Wordling session.
//
// A Game is a value: every operation returns a new Game and leaves the
// receiver untouched. Slots in CurrentGuess hold one letter each; an empty
// string marks an empty slot.
type Game struct {
	ID           string   `json:"id"`           // Unique game identifier (random hex string).
	TargetWord   []string `json:"targetWord"`   // The answer, one letter per slot, display casing.
	MaxAttempts  int      `json:"maxAttempts"`  // Number of submissions allowed.
	CurrentGuess []string `json:"currentGuess"` // In-progress input, len == len(TargetWord).
	History      []Round  `json:"history"`      // Completed rounds, oldest first.
	TriedLetters []string `json:"triedLetters"` // Sorted, lowercase, de-duplicated.
	AttemptsUsed int      `json:"attemptsUsed"` // Always len(History).
	IsOver       bool     `json:"isOver"`       // True once won or out of attempts.
	HasWon       bool     `json:"hasWon"`       // True if a guess matched TargetWord.
}

// Source picks an index in [0, n). *math/rand.Rand satisfies it.
type Source interface {
	Intn(n int) int
}

// Config describes how a new game is built.
type Config struct {
	WordList    []string // Candidate answers; one is chosen through Source.
	MaxAttempts int      // Zero means DefaultMaxAttempts.
	Source      Source   // Nil means CryptoSource.
}
