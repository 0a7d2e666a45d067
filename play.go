package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/robalobadob/wordling/internal/daily"
	"github.com/robalobadob/wordling/internal/game"
	"github.com/robalobadob/wordling/internal/tui"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play in the terminal",
	RunE: func(cmd *cobra.Command, args []string) error {
		listName, _ := cmd.Flags().GetString("list")
		if listName == "" {
			listName = cfg.WordList
		}
		attempts, _ := cmd.Flags().GetInt("attempts")
		if attempts == 0 {
			attempts = cfg.MaxAttempts
		}
		isDaily, _ := cmd.Flags().GetBool("daily")

		lists, err := loadLists()
		if err != nil {
			return err
		}
		list, err := lists.Get(listName)
		if err != nil {
			return err
		}

		newGame := func() (game.Game, error) {
			c := game.Config{WordList: list, MaxAttempts: attempts}
			if isDaily {
				c.Source = daily.Source{Date: time.Now(), Salt: cfg.DailySalt}
			}
			return game.New(c)
		}

		fd := int(os.Stdin.Fd())
		if !term.IsTerminal(fd) {
			return errors.New("play needs an interactive terminal")
		}
		old, err := term.MakeRaw(fd)
		if err != nil {
			return err
		}
		defer term.Restore(fd, old)

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		renderer := tui.NewRenderer(os.Stdout, termenv.EnvColorProfile())
		_, err = tui.NewPlayer(os.Stdin, renderer, newGame, listName, list).Run(ctx)
		return err
	},
}

var listsCmd = &cobra.Command{
	Use:   "lists",
	Short: "Print the available word lists",
	RunE: func(cmd *cobra.Command, args []string) error {
		lists, err := loadLists()
		if err != nil {
			return err
		}
		for _, name := range lists.Names() {
			l, err := lists.Get(name)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%-14s %3d words\n", name, len(l))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(playCmd, listsCmd)
	playCmd.Flags().StringP("list", "l", "", "Word list name (see: wordling lists); overrides WORD_LIST")
	playCmd.Flags().IntP("attempts", "a", 0, "Maximum attempts; overrides MAX_ATTEMPTS")
	playCmd.Flags().Bool("daily", false, "Play today's shared word")
}
