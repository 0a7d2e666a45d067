package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/robalobadob/wordling/internal/httpserver"
	"github.com/robalobadob/wordling/internal/store"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	Long:  `Serves the game engine as a JSON API. Clients send raw key tokens and render the returned state.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if port, _ := cmd.Flags().GetString("port"); port != "" {
			cfg.Port = port
		}
		if backend, _ := cmd.Flags().GetString("store"); backend != "" {
			cfg.Store = backend
		}

		lists, err := loadLists()
		if err != nil {
			return err
		}
		if _, err := lists.Get(cfg.WordList); err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		st, err := store.Open(ctx, store.Config{
			Backend:       cfg.Store,
			RedisAddr:     cfg.RedisAddr,
			RedisPassword: cfg.RedisPassword,
			RedisDB:       cfg.RedisDB,
			SQLitePath:    cfg.SQLitePath,
			TTL:           cfg.SessionTTL,
		})
		if err != nil {
			return err
		}
		defer st.Close()
		if p, ok := st.(store.Purger); ok {
			go purgeLoop(ctx, p, cfg.SessionTTL)
		}

		srv := httpserver.New(st, lists, httpserver.Options{
			DefaultList:   cfg.WordList,
			MaxAttempts:   cfg.MaxAttempts,
			SessionSecret: cfg.SessionSecret,
			SessionTTL:    cfg.SessionTTL,
			ClientOrigin:  cfg.ClientOrigin,
			DailySalt:     cfg.DailySalt,
			SecureCookies: os.Getenv("NODE_ENV") == "production",
		})
		httpSrv := &http.Server{
			Addr:              ":" + cfg.Port,
			Handler:           srv.Handler(),
			ReadHeaderTimeout: 5 * time.Second,
		}

		serverErrors := make(chan error, 1)
		go func() {
			log.Info().Str("port", cfg.Port).Str("store", cfg.Store).Str("list", cfg.WordList).Msg("starting wordling server")
			serverErrors <- httpSrv.ListenAndServe()
		}()

		select {
		case err := <-serverErrors:
			if !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		case <-ctx.Done():
			log.Info().Msg("shutting down")
		}

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpSrv.Shutdown(shutdownCtx); err != nil {
			log.Warn().Err(err).Msg("graceful shutdown did not complete")
			return httpSrv.Close()
		}
		log.Info().Msg("server stopped")
		return nil
	},
}

// purgeLoop sweeps expired games every ttl/4 until ctx ends.
func purgeLoop(ctx context.Context, p store.Purger, ttl time.Duration) {
	if ttl < 4 {
		return
	}
	t := time.NewTicker(ttl / 4)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			n, err := p.PurgeExpired(ctx)
			if err != nil {
				log.Warn().Err(err).Msg("purge expired games")
				continue
			}
			if n > 0 {
				log.Debug().Int64("games", n).Msg("purged expired games")
			}
		}
	}
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringP("port", "p", "", "Port to listen on; overrides PORT")
	serveCmd.Flags().String("store", "", "Game store backend (memory, redis, sqlite); overrides STORE")
}
