package tui

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/wordling/internal/game"
)

func TestKeys(t *testing.T) {
	cases := []struct {
		in   string
		want []string
	}{
		{"cat\r", []string{"c", "a", "t", "enter"}},
		{"ab\x7f", []string{"a", "b", "backspace"}},
		{"x\x08", []string{"x", "backspace"}},
		{"\x1b[A\x1b[D", nil},
		{"\x1bOP", nil},
		{"\x1b", []string{"quit"}},
		{"\x03", []string{"quit"}},
		{"1 ?", nil},
		{"\x1bxq", []string{"q"}},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, Keys([]byte(tc.in)), "%q", tc.in)
	}
}

func fixedGame(word string, attempts int) NewGameFunc {
	return func() (game.Game, error) {
		return game.NewWithTarget(word, attempts)
	}
}

func TestRenderer_Draw(t *testing.T) {
	var buf bytes.Buffer
	r := NewRenderer(&buf, termenv.Ascii)

	g, err := game.NewWithTarget("cat", 3)
	require.NoError(t, err)
	g = g.HandleInput("d").HandleInput("o").HandleInput("g").HandleInput("enter").HandleInput("c")
	r.Draw(g, "Golden Words", nil)

	out := buf.String()
	assert.Contains(t, out, "WORDLING")
	assert.Contains(t, out, "Golden Words")
	assert.Contains(t, out, " d  o  g ")
	assert.Contains(t, out, " c  _  _ ")
	assert.Contains(t, out, "2 attempt(s) left")
	assert.Equal(t, 3, strings.Count(out, " _  _  _ ")+strings.Count(out, " c  _  _ ")+strings.Count(out, " d  o  g "))
}

func TestLetterHint(t *testing.T) {
	g, err := game.NewWithTarget("cat", 4)
	require.NoError(t, err)
	g = g.HandleInput("c").HandleInput("o").HandleInput("g").HandleInput("enter")

	assert.Equal(t, hintHit, letterHint(g, "c"))
	assert.Equal(t, hintHit, letterHint(g, "C"))
	assert.Equal(t, hintMiss, letterHint(g, "o"))
	assert.Equal(t, hintUntried, letterHint(g, "a"))
}

func TestRenderer_DrawHints(t *testing.T) {
	g, err := game.NewWithTarget("cat", 4)
	require.NoError(t, err)
	g = g.HandleInput("c").HandleInput("o").HandleInput("g").HandleInput("enter")
	hints := []string{"cat", "dog", "I", "her", "of", "see", "too"}

	var plain bytes.Buffer
	NewRenderer(&plain, termenv.Ascii).Draw(g, "Cats", hints)
	out := plain.String()
	assert.Contains(t, out, "Words to guess")
	assert.Contains(t, out, "  cat  dog  I  her  of  see\r\n  too\r\n")

	var none bytes.Buffer
	NewRenderer(&none, termenv.Ascii).Draw(g, "Cats", nil)
	assert.NotContains(t, none.String(), "Words to guess")

	var colored bytes.Buffer
	NewRenderer(&colored, termenv.ANSI256).Draw(g, "Cats", []string{"cog"})
	o := termenv.NewOutput(&bytes.Buffer{}, termenv.WithProfile(termenv.ANSI256))
	hit := o.String("c").Foreground(o.Color(colorHintHit)).Bold().String()
	miss := o.String("o").Foreground(o.Color(colorHintMiss)).Bold().String()
	assert.Contains(t, colored.String(), hit+miss+o.String("g").Foreground(o.Color(colorHintMiss)).Bold().String())
}

func TestStatus(t *testing.T) {
	g, _ := game.NewWithTarget("of", 1)
	lost := g.HandleInput("t").HandleInput("o").HandleInput("enter")
	assert.Contains(t, Status(lost), `The word was "of"`)

	won := g.HandleInput("o").HandleInput("f").HandleInput("enter")
	assert.Contains(t, Status(won), "You guessed it right in 1")
}

func TestPlayer_WinsAndQuits(t *testing.T) {
	var out bytes.Buffer
	p := NewPlayer(strings.NewReader("dog\rcax\x7ft\rq"), NewRenderer(&out, termenv.Ascii), fixedGame("cat", 4), "", nil)

	g, err := p.Run(context.Background())
	require.NoError(t, err)
	assert.True(t, g.HasWon)
	assert.Equal(t, 2, g.AttemptsUsed)
	assert.Contains(t, out.String(), "You guessed it right in 2")
}

func TestPlayer_NewGameAfterLoss(t *testing.T) {
	var out bytes.Buffer
	calls := 0
	newGame := func() (game.Game, error) {
		calls++
		return game.NewWithTarget("be", 1)
	}
	p := NewPlayer(strings.NewReader("xx\rnb"), NewRenderer(&out, termenv.Ascii), newGame, "", nil)

	g, err := p.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
	assert.False(t, g.IsOver)
	assert.Equal(t, []string{"b", ""}, g.CurrentGuess)
}

func TestPlayer_EscQuits(t *testing.T) {
	var out bytes.Buffer
	p := NewPlayer(strings.NewReader("ca\x1b"), NewRenderer(&out, termenv.Ascii), fixedGame("cat", 4), "", nil)
	g, err := p.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"c", "a", ""}, g.CurrentGuess)
}

func TestPlayer_Errors(t *testing.T) {
	boom := errors.New("boom")
	p := NewPlayer(strings.NewReader(""), NewRenderer(&bytes.Buffer{}, termenv.Ascii), func() (game.Game, error) {
		return game.Game{}, boom
	}, "", nil)
	_, err := p.Run(context.Background())
	assert.ErrorIs(t, err, boom)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	p = NewPlayer(strings.NewReader("abc"), NewRenderer(&bytes.Buffer{}, termenv.Ascii), fixedGame("cat", 4), "", nil)
	_, err = p.Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
