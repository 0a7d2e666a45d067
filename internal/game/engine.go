// internal/game/engine.go
//
// Core game engine for a single Wordling session.
// Responsibilities:
//   - Create new games from a word list and a pluggable random source.
//   - Apply letter, backspace and submit actions as pure value transitions.
//   - Score guesses letter by letter against the full target word.
//   - Track state transitions: playing → won/lost.
//
// Notes:
//   - Invalid actions are no-ops, never errors; only construction can fail.
//   - Letter comparisons ignore case. Only the single-letter "I" keeps its
//     display casing.

package game

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"math/big"
	"sort"
	"strings"
)

var (
	ErrEmptyWordList      = errors.New("game: word list is empty")
	ErrInvalidMaxAttempts = errors.New("game: max attempts must be positive")
	ErrInvalidWord        = errors.New("game: word must be non-empty and alphabetic")
)

// New constructs a new game, choosing the target word from cfg.WordList.
func New(cfg Config) (Game, error) {
	if len(cfg.WordList) == 0 {
		return Game{}, ErrEmptyWordList
	}
	for _, w := range cfg.WordList {
		if !isAlphaWord(w) {
			return Game{}, fmt.Errorf("%w: %q", ErrInvalidWord, w)
		}
	}
	src := cfg.Source
	if src == nil {
		src = CryptoSource{}
	}
	return NewWithTarget(cfg.WordList[src.Intn(len(cfg.WordList))], cfg.MaxAttempts)
}

// NewWithTarget constructs a game with a fixed target word.
// maxAttempts of zero selects DefaultMaxAttempts.
func NewWithTarget(word string, maxAttempts int) (Game, error) {
	if !isAlphaWord(word) {
		return Game{}, fmt.Errorf("%w: %q", ErrInvalidWord, word)
	}
	if maxAttempts == 0 {
		maxAttempts = DefaultMaxAttempts
	}
	if maxAttempts < 0 {
		return Game{}, fmt.Errorf("%w: %d", ErrInvalidMaxAttempts, maxAttempts)
	}
	target := strings.Split(word, "")
	return Game{
		ID:           randomID(),
		TargetWord:   target,
		MaxAttempts:  maxAttempts,
		CurrentGuess: make([]string, len(target)),
		History:      []Round{},
		TriedLetters: []string{},
	}, nil
}

// InsertLetter places ch in the leftmost empty slot of the current guess.
// Non-letters, a full guess or a finished game leave the game unchanged.
func (g Game) InsertLetter(ch string) Game {
	if g.IsOver || !isLetter(ch) {
		return g
	}
	i := firstEmpty(g.CurrentGuess)
	if i < 0 {
		return g
	}
	next := g.clone()
	next.CurrentGuess[i] = g.displayLetter(ch)
	return next
}

// RemoveLastLetter clears the most recently filled slot.
func (g Game) RemoveLastLetter() Game {
	if g.IsOver || len(g.CurrentGuess) == 0 {
		return g
	}
	i := firstEmpty(g.CurrentGuess)
	switch {
	case i < 0:
		i = len(g.CurrentGuess) - 1
	case i == 0:
		// nothing typed yet
		return g
	default:
		i--
	}
	next := g.clone()
	next.CurrentGuess[i] = ""
	return next
}

// SubmitGuess scores a full guess, appends it to the history and decides
// whether the game is over. Incomplete guesses are ignored.
func (g Game) SubmitGuess() Game {
	if g.IsOver || firstEmpty(g.CurrentGuess) >= 0 {
		return g
	}

	feedback := Score(g.CurrentGuess, g.TargetWord)
	won := allCorrect(feedback)

	next := g.clone()
	next.History = append(next.History, Round{
		Guess:    cloneStrings(g.CurrentGuess),
		Feedback: feedback,
	})
	next.TriedLetters = mergeLetters(next.TriedLetters, g.CurrentGuess)
	next.HasWon = won
	next.IsOver = won || g.AttemptsUsed+1 >= g.MaxAttempts
	next.CurrentGuess = make([]string, len(g.TargetWord))
	next.AttemptsUsed = g.AttemptsUsed + 1
	return next
}

// HandleInput maps a raw key token onto one of the three actions.
func (g Game) HandleInput(key string) Game {
	if g.IsOver {
		return g
	}
	switch ParseKey(key) {
	case KeySubmit:
		return g.SubmitGuess()
	case KeyDelete:
		return g.RemoveLastLetter()
	case KeyLetter:
		return g.InsertLetter(key)
	}
	return g
}

// Score compares guess against target position by position.
//
// Each guess letter is checked on its own against the whole target, so a
// repeated guess letter can be marked almost more than once even when the
// target holds a single copy.
func Score(guess, target []string) []Mark {
	out := make([]Mark, len(guess))
	for i, letter := range guess {
		switch {
		case i < len(target) && strings.EqualFold(letter, target[i]):
			out[i] = MarkCorrect
		case containsFold(target, letter):
			out[i] = MarkAlmost
		default:
			out[i] = MarkIncorrect
		}
	}
	return out
}

// State reports a coarse string representation of the current game state.
func (g Game) State() string {
	if g.IsOver {
		if g.HasWon {
			return "won"
		}
		return "lost"
	}
	return "playing"
}

// Target returns the answer as a single string in display casing.
func (g Game) Target() string { return strings.Join(g.TargetWord, "") }

// GuessString returns the filled prefix of the current guess.
func (g Game) GuessString() string { return strings.Join(g.CurrentGuess, "") }

// WordLength is the number of letters in the target word.
func (g Game) WordLength() int { return len(g.TargetWord) }

// AttemptsLeft is the number of submissions still allowed.
func (g Game) AttemptsLeft() int {
	if g.IsOver {
		return 0
	}
	return g.MaxAttempts - g.AttemptsUsed
}

// HasTried reports whether letter was part of any submitted guess.
func (g Game) HasTried(letter string) bool {
	l := strings.ToLower(letter)
	i := sort.SearchStrings(g.TriedLetters, l)
	return i < len(g.TriedLetters) && g.TriedLetters[i] == l
}

// InTarget reports whether letter occurs anywhere in the target word.
func (g Game) InTarget(letter string) bool { return containsFold(g.TargetWord, letter) }

// clone deep-copies every slice so the receiver stays untouched.
func (g Game) clone() Game {
	next := g
	next.TargetWord = cloneStrings(g.TargetWord)
	next.CurrentGuess = cloneStrings(g.CurrentGuess)
	next.TriedLetters = cloneStrings(g.TriedLetters)
	next.History = make([]Round, len(g.History), len(g.History)+1)
	copy(next.History, g.History)
	return next
}

func cloneStrings(s []string) []string {
	return append(make([]string, 0, len(s)), s...)
}

// displayLetter lowercases ch, except "i" on a one-letter target which is
// shown as the pronoun "I".
func (g Game) displayLetter(ch string) string {
	if len(g.TargetWord) == 1 && strings.EqualFold(ch, "i") {
		return "I"
	}
	return strings.ToLower(ch)
}

// mergeLetters adds guess letters (lowercased) to a sorted set.
func mergeLetters(set []string, guess []string) []string {
	for _, l := range guess {
		l = strings.ToLower(l)
		i := sort.SearchStrings(set, l)
		if i < len(set) && set[i] == l {
			continue
		}
		set = append(set, "")
		copy(set[i+1:], set[i:])
		set[i] = l
	}
	return set
}

func firstEmpty(slots []string) int {
	for i, s := range slots {
		if s == "" {
			return i
		}
	}
	return -1
}

func containsFold(word []string, letter string) bool {
	for _, l := range word {
		if strings.EqualFold(l, letter) {
			return true
		}
	}
	return false
}

func allCorrect(m []Mark) bool {
	for _, x := range m {
		if x != MarkCorrect {
			return false
		}
	}
	return true
}

// isLetter reports whether s is exactly one ASCII letter.
func isLetter(s string) bool {
	if len(s) != 1 {
		return false
	}
	c := s[0]
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z'
}

// isAlphaWord reports whether s is non-empty and made only of ASCII letters.
func isAlphaWord(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if !isLetter(s[i : i+1]) {
			return false
		}
	}
	return true
}

// CryptoSource draws indexes from crypto/rand.
type CryptoSource struct{}

// Intn returns a uniformly random index in [0, n).
func (CryptoSource) Intn(n int) int {
	if n <= 1 {
		return 0
	}
	nBig, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		return 0
	}
	return int(nBig.Int64())
}

// randomID returns a compact 16-hex-char identifier.
func randomID() string {
	var b [8]byte
	_, _ = rand.Read(b[:])
	return hex.EncodeToString(b[:])
}
