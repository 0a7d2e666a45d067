// Package tui is a terminal front end for the game engine. It only reads
// game state and turns raw terminal bytes into key tokens; every state
// change goes through game.Game.HandleInput.
package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/muesli/termenv"

	"github.com/robalobadob/wordling/internal/game"
)

const (
	colorCorrect   = "#22c55e"
	colorAlmost    = "#eab308"
	colorIncorrect = "#6b7280"
	colorPending   = "#e5e7eb"
	colorHintHit   = "#16a34a"
	colorHintMiss  = "#d1d5db"
)

// hintsPerRow is how many words of the list share one line.
const hintsPerRow = 6

// lineBreak works in raw mode, where "\n" alone does not return the cursor.
const lineBreak = "\r\n"

// Renderer draws game state onto a termenv output.
type Renderer struct {
	out *termenv.Output
}

// NewRenderer writes to w with the given colour profile.
func NewRenderer(w io.Writer, profile termenv.Profile) *Renderer {
	return &Renderer{out: termenv.NewOutput(w, termenv.WithProfile(profile))}
}

// Draw clears the screen and renders the grid, tried letters, the word
// hints for the active list (if any) and the status.
func (r *Renderer) Draw(g game.Game, listName string, hints []string) {
	r.out.ClearScreen()
	var b strings.Builder

	b.WriteString(r.out.String(" WORDLING ").Bold().Reverse().String())
	if listName != "" {
		b.WriteString("  " + listName)
	}
	b.WriteString(lineBreak + lineBreak)

	for _, round := range g.History {
		for i, letter := range round.Guess {
			b.WriteString(r.tile(letter, round.Feedback[i]))
		}
		b.WriteString(lineBreak)
	}
	// rows still to play; no extra blank row once the game is over
	if !g.IsOver {
		for row := g.AttemptsUsed; row < g.MaxAttempts; row++ {
			for i := range g.CurrentGuess {
				letter := ""
				if row == g.AttemptsUsed {
					letter = g.CurrentGuess[i]
				}
				b.WriteString(r.tile(letter, ""))
			}
			b.WriteString(lineBreak)
		}
	}

	b.WriteString(lineBreak + "Tried: ")
	for c := 'a'; c <= 'z'; c++ {
		l := string(c)
		if g.HasTried(l) {
			b.WriteString(r.out.String(l).Bold().Underline().String())
		} else {
			b.WriteString(r.out.String(l).Faint().String())
		}
	}
	b.WriteString(lineBreak + lineBreak)
	if len(hints) > 0 {
		b.WriteString(r.wordHints(g, hints))
		b.WriteString(lineBreak)
	}
	b.WriteString(Status(g))
	b.WriteString(lineBreak)

	_, _ = io.WriteString(r.out, b.String())
}

// tile renders one grid cell, coloured by mark.
func (r *Renderer) tile(letter string, mark game.Mark) string {
	if letter == "" {
		letter = "_"
	}
	s := r.out.String(" " + letter + " ")
	switch mark {
	case game.MarkCorrect:
		s = s.Background(r.out.Color(colorCorrect)).Bold()
	case game.MarkAlmost:
		s = s.Background(r.out.Color(colorAlmost)).Bold()
	case game.MarkIncorrect:
		s = s.Background(r.out.Color(colorIncorrect))
	default:
		s = s.Foreground(r.out.Color(colorPending))
	}
	return s.String()
}

// hintState classifies a letter of a hint word.
type hintState int

const (
	hintUntried hintState = iota // not guessed yet
	hintHit                      // guessed and in the target
	hintMiss                     // guessed and not in the target
)

func letterHint(g game.Game, letter string) hintState {
	switch {
	case !g.HasTried(letter):
		return hintUntried
	case g.InTarget(letter):
		return hintHit
	}
	return hintMiss
}

// wordHints renders the word list with each letter styled by hintState.
func (r *Renderer) wordHints(g game.Game, words []string) string {
	var b strings.Builder
	b.WriteString(r.out.String("Words to guess").Bold().String())
	b.WriteString(lineBreak)
	for i, w := range words {
		if i > 0 && i%hintsPerRow == 0 {
			b.WriteString(lineBreak)
		}
		b.WriteString("  ")
		for _, c := range w {
			l := string(c)
			s := r.out.String(l)
			switch letterHint(g, l) {
			case hintHit:
				s = s.Foreground(r.out.Color(colorHintHit)).Bold()
			case hintMiss:
				s = s.Foreground(r.out.Color(colorHintMiss)).Bold()
			default:
				s = s.Faint()
			}
			b.WriteString(s.String())
		}
	}
	b.WriteString(lineBreak)
	return b.String()
}

// Status is the one-line message shown under the grid.
func Status(g game.Game) string {
	switch g.State() {
	case "won":
		return fmt.Sprintf("You guessed it right in %d! [n] new game  [q] quit", g.AttemptsUsed)
	case "lost":
		return fmt.Sprintf("Game over! The word was %q. [n] new game  [q] quit", g.Target())
	}
	return fmt.Sprintf("%d attempt(s) left. Type letters, Enter to submit, Backspace to delete, Esc to quit.", g.AttemptsLeft())
}
