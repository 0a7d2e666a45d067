package tui

import (
	"context"
	"errors"
	"io"

	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordling/internal/game"
)

// NewGameFunc builds a fresh game each time the player asks for one.
type NewGameFunc func() (game.Game, error)

// Player runs an interactive session: read keys, feed the engine, redraw.
type Player struct {
	in       io.Reader
	render   *Renderer
	newGame  NewGameFunc
	listName string
	hints    []string
}

// NewPlayer wires a key source, a renderer and a game factory. hints is the
// word list shown under the grid; nil hides it.
func NewPlayer(in io.Reader, render *Renderer, newGame NewGameFunc, listName string, hints []string) *Player {
	return &Player{in: in, render: render, newGame: newGame, listName: listName, hints: hints}
}

// Run plays until the user quits, the input ends or ctx is cancelled.
// It returns the last game shown.
func (p *Player) Run(ctx context.Context) (game.Game, error) {
	g, err := p.newGame()
	if err != nil {
		return game.Game{}, err
	}
	p.render.Draw(g, p.listName, p.hints)

	buf := make([]byte, 64)
	for {
		if err := ctx.Err(); err != nil {
			return g, err
		}
		n, err := p.in.Read(buf)

		var (
			quit    bool
			stepErr error
		)
		for _, key := range Keys(buf[:n]) {
			if g, quit, stepErr = p.step(g, key); quit || stepErr != nil {
				break
			}
		}
		if n > 0 {
			p.render.Draw(g, p.listName, p.hints)
		}
		switch {
		case stepErr != nil:
			return g, stepErr
		case quit, errors.Is(err, io.EOF):
			return g, nil
		case err != nil:
			return g, err
		}
	}
}

// step applies one key. Once the game is over only "n" (new game) and "q"
// (quit) mean anything.
func (p *Player) step(g game.Game, key string) (game.Game, bool, error) {
	if key == TokenQuit {
		return g, true, nil
	}
	if g.IsOver {
		switch key {
		case "q", "Q":
			return g, true, nil
		case "n", "N":
			next, err := p.newGame()
			if err != nil {
				return g, false, err
			}
			log.Debug().Str("gameId", next.ID).Msg("new game")
			return next, false, nil
		}
		return g, false, nil
	}
	next := g.HandleInput(key)
	if next.IsOver {
		log.Debug().Str("gameId", next.ID).Str("state", next.State()).Int("attempts", next.AttemptsUsed).Msg("game finished")
	}
	return next, false, nil
}
