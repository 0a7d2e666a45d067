// internal/httpserver/server.go
//
// HTTP server wiring for the Wordling backend.
// Responsibilities:
//   - Router + middleware (JSON, CORS, timeouts, panic recovery, request IDs).
//   - Public endpoints: "/", "/health", "/lists", "/metrics", POST /game/new.
//   - Session endpoints (require token): GET /game, POST /game/key,
//     POST /game/keys, DELETE /game.
//
// Notes:
//   - The server owns no timing or rendering. It forwards raw key tokens to
//     the engine and returns the resulting state.
//   - Engine no-ops (full guess, game over, unknown key) are not errors; the
//     unchanged state is returned with 200.

package httpserver

import (
	"encoding/json"
	"errors"
	"hash/fnv"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordling/internal/daily"
	"github.com/robalobadob/wordling/internal/game"
	"github.com/robalobadob/wordling/internal/store"
	"github.com/robalobadob/wordling/internal/words"
)

// maxKeysPerRequest bounds POST /game/keys batches.
const maxKeysPerRequest = 64

// gameLockStripes is the number of mutexes load-apply-save cycles are
// spread over, keyed by game ID.
const gameLockStripes = 64

// Options tunes a Server.
type Options struct {
	DefaultList   string
	MaxAttempts   int
	SessionSecret string
	SessionTTL    time.Duration
	ClientOrigin  string
	DailySalt     string
	SecureCookies bool
	Now           func() time.Time
}

// Server bundles router, game store, word lists and metrics.
type Server struct {
	r       *chi.Mux
	store   store.Store
	lists   *words.Registry
	opts    Options
	metrics *metrics
	locks   [gameLockStripes]sync.Mutex
}

// New constructs a Server, installs middleware, and registers routes.
func New(st store.Store, lists *words.Registry, opts Options) *Server {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.SessionTTL <= 0 {
		opts.SessionTTL = 24 * time.Hour
	}
	if opts.DefaultList == "" {
		opts.DefaultList = "Golden Words"
	}
	if opts.ClientOrigin == "" {
		opts.ClientOrigin = "http://localhost:5173"
	}
	s := &Server{r: chi.NewRouter(), store: st, lists: lists, opts: opts, metrics: newMetrics()}

	// --- middleware ---
	s.r.Use(chimw.RequestID)
	s.r.Use(chimw.RealIP)
	s.r.Use(chimw.Recoverer)
	s.r.Use(chimw.Timeout(10 * time.Second))
	s.r.Use(jsonContentType)
	s.r.Use(s.cors)

	// --- diagnostics ---
	s.r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"service":"wordling","endpoints":["/health","/lists","/metrics","POST /game/new","GET /game","POST /game/key","POST /game/keys","DELETE /game"]}`))
	})
	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"ok":true}`))
	})
	s.r.Get("/lists", s.handleLists)
	s.r.Method(http.MethodGet, "/metrics", s.metrics.handler())

	// --- game ---
	s.r.Post("/game/new", s.handleNewGame)
	s.r.Group(func(r chi.Router) {
		r.Use(s.requireSession)
		r.Get("/game", s.handleGetGame)
		r.Post("/game/key", s.handleKey)
		r.Post("/game/keys", s.handleKeys)
		r.Delete("/game", s.handleAbandon)
	})

	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not_found", "path": r.URL.Path})
	})

	return s
}

// Handler exposes the router (used by the HTTP server and tests).
func (s *Server) Handler() http.Handler { return s.r }

// ----------------------------- middleware ----------------------------------

// jsonContentType sets a default JSON Content-Type header on all responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

// cors enables credentialed CORS for the configured client origin.
func (s *Server) cors(next http.Handler) http.Handler {
	origin := s.opts.ClientOrigin
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Vary", "Origin")
		w.Header().Set("Access-Control-Allow-Origin", origin)
		w.Header().Set("Access-Control-Allow-Credentials", "true")
		w.Header().Set("Access-Control-Allow-Methods", "GET,POST,DELETE,OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// ------------------------------ LISTS --------------------------------------

type listInfo struct {
	Name string `json:"name"`
	Size int    `json:"size"`
}

func (s *Server) handleLists(w http.ResponseWriter, r *http.Request) {
	out := []listInfo{}
	for _, name := range s.lists.Names() {
		l, err := s.lists.Get(name)
		if err != nil {
			continue
		}
		out = append(out, listInfo{Name: name, Size: len(l)})
	}
	writeJSON(w, http.StatusOK, out)
}

// ------------------------------ GAME ---------------------------------------

// newGameReq/Res payloads for POST /game/new.
type newGameReq struct {
	List        string `json:"list"`        // word list name; default from Options
	MaxAttempts int    `json:"maxAttempts"` // 0 = server default
	Daily       bool   `json:"daily"`       // same word for everyone today
}
type newGameRes struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
	Game      gameView  `json:"game"`
}

// handleNewGame creates a game, stores it and issues a session token.
func (s *Server) handleNewGame(w http.ResponseWriter, r *http.Request) {
	var req newGameReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	if req.List == "" {
		req.List = s.opts.DefaultList
	}
	if req.MaxAttempts == 0 {
		req.MaxAttempts = s.opts.MaxAttempts
	}
	if req.MaxAttempts < 0 {
		writeError(w, http.StatusBadRequest, "invalid_max_attempts")
		return
	}

	list, err := s.lists.Get(req.List)
	if err != nil {
		writeError(w, http.StatusBadRequest, "unknown_list")
		return
	}

	cfg := game.Config{WordList: list, MaxAttempts: req.MaxAttempts}
	if req.Daily {
		cfg.Source = daily.Source{Date: s.opts.Now(), Salt: s.opts.DailySalt}
	}
	g, err := game.New(cfg)
	if err != nil {
		log.Error().Err(err).Str("list", req.List).Msg("create game")
		writeError(w, http.StatusBadRequest, "invalid_game")
		return
	}
	if err := s.store.Save(r.Context(), g); err != nil {
		log.Error().Err(err).Str("gameId", g.ID).Msg("save game")
		writeError(w, http.StatusInternalServerError, "save_failed")
		return
	}

	tok, exp, err := s.signToken(g.ID)
	if err != nil {
		log.Error().Err(err).Msg("sign session token")
		writeError(w, http.StatusInternalServerError, "sign_failed")
		return
	}
	s.setSessionCookie(w, tok, exp)
	s.metrics.started.WithLabelValues(req.List).Inc()
	log.Debug().Str("gameId", g.ID).Str("list", req.List).Bool("daily", req.Daily).
		Int("maxAttempts", g.MaxAttempts).Msg("game started")

	writeJSON(w, http.StatusOK, newGameRes{Token: tok, ExpiresAt: exp, Game: newGameView(g)})
}

func (s *Server) handleGetGame(w http.ResponseWriter, r *http.Request) {
	g, ok := s.loadGame(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, newGameView(g))
}

// keyReq/keysReq payloads for POST /game/key and POST /game/keys.
type keyReq struct {
	Key string `json:"key"`
}
type keysReq struct {
	Keys []string `json:"keys"`
}

func (s *Server) handleKey(w http.ResponseWriter, r *http.Request) {
	var req keyReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	s.applyKeys(w, r, []string{req.Key})
}

func (s *Server) handleKeys(w http.ResponseWriter, r *http.Request) {
	var req keysReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	if len(req.Keys) > maxKeysPerRequest {
		writeError(w, http.StatusBadRequest, "too_many_keys")
		return
	}
	s.applyKeys(w, r, req.Keys)
}

// lockGame serializes updates to one game; callers must Unlock.
func (s *Server) lockGame(id string) *sync.Mutex {
	h := fnv.New32a()
	_, _ = h.Write([]byte(id))
	mu := &s.locks[h.Sum32()%gameLockStripes]
	mu.Lock()
	return mu
}

// applyKeys feeds keys through the engine in order, saves the result and
// writes the new view.
func (s *Server) applyKeys(w http.ResponseWriter, r *http.Request, keys []string) {
	defer s.lockGame(sessionGameID(r)).Unlock()
	g, ok := s.loadGame(w, r)
	if !ok {
		return
	}
	wasOver := g.IsOver
	for _, k := range keys {
		s.metrics.keys.WithLabelValues(game.ParseKey(k).String()).Inc()
		g = g.HandleInput(k)
	}
	if err := s.store.Save(r.Context(), g); err != nil {
		log.Error().Err(err).Str("gameId", g.ID).Msg("save game")
		writeError(w, http.StatusInternalServerError, "save_failed")
		return
	}
	if !wasOver && g.IsOver {
		s.metrics.finished.WithLabelValues(g.State()).Inc()
		log.Debug().Str("gameId", g.ID).Str("state", g.State()).Int("attempts", g.AttemptsUsed).Msg("game finished")
	} else if !g.IsOver {
		log.Debug().Str("gameId", g.ID).Str("guess", g.GuessString()).Int("keys", len(keys)).Msg("keys applied")
	}
	writeJSON(w, http.StatusOK, newGameView(g))
}

// handleAbandon drops the session's game and clears the cookie.
func (s *Server) handleAbandon(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Delete(r.Context(), sessionGameID(r)); err != nil {
		log.Error().Err(err).Msg("delete game")
		writeError(w, http.StatusInternalServerError, "delete_failed")
		return
	}
	s.clearSessionCookie(w)
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

// loadGame fetches the session's game, writing an error response on failure.
func (s *Server) loadGame(w http.ResponseWriter, r *http.Request) (game.Game, bool) {
	gid := sessionGameID(r)
	g, err := s.store.Get(r.Context(), gid)
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "game_not_found")
		return game.Game{}, false
	}
	if err != nil {
		log.Error().Err(err).Str("gameId", gid).Msg("load game")
		writeError(w, http.StatusInternalServerError, "load_failed")
		return game.Game{}, false
	}
	return g, true
}

// ------------------------------- small util --------------------------------

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Warn().Err(err).Msg("encode response")
	}
}

func writeError(w http.ResponseWriter, status int, code string) {
	writeJSON(w, status, map[string]string{"error": code})
}
