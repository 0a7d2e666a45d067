package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/robalobadob/wordling/internal/config"
	"github.com/robalobadob/wordling/internal/words"
)

var cfg config.Config

var rootCmd = &cobra.Command{
	Use:   "wordling",
	Short: "Wordling is a small word-guessing game",
	Long: `Guess the hidden word in a limited number of attempts.
Each guess marks letters as correct, almost (elsewhere in the word) or incorrect.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.Load()
		if err != nil {
			return err
		}
		cfg = loaded
		applyFlagOverrides(cmd)
		setupLogging(cmd)
		return nil
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().String("log-level", "", "Log level (debug, info, warn, error); overrides LOG_LEVEL")
	rootCmd.PersistentFlags().Bool("pretty", false, "Human-readable console logs")
	rootCmd.PersistentFlags().String("words-file", "", "Extra word lists (.yaml mapping or one word per line); overrides WORDS_FILE")
}

// applyFlagOverrides lets explicit flags win over environment values.
func applyFlagOverrides(cmd *cobra.Command) {
	if v, _ := cmd.Flags().GetString("log-level"); v != "" {
		cfg.LogLevel = v
	}
	if v, _ := cmd.Flags().GetString("words-file"); v != "" {
		cfg.WordsFile = v
	}
}

func setupLogging(cmd *cobra.Command) {
	if lvl, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}
	pretty, _ := cmd.Flags().GetBool("pretty")
	if pretty || term.IsTerminal(int(os.Stderr.Fd())) {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}
}

// loadLists returns the built-in lists plus any configured file.
func loadLists() (*words.Registry, error) {
	lists, err := words.Builtin()
	if err != nil {
		return nil, err
	}
	if cfg.WordsFile != "" {
		if err := lists.LoadFile(cfg.WordsFile); err != nil {
			return nil, err
		}
		log.Info().Str("file", cfg.WordsFile).Strs("lists", lists.Names()).Msg("loaded word lists")
	}
	return lists, nil
}
