// internal/httpserver/server.go
//
// HTTP server wiring for the timeline backend.
// Responsibilities:
//   - Router + middleware (request ids, access log, JSON, CORS, timeouts, panic recovery).
//   - Public endpoints: "/", "/health", "/dimensions".
//   - Regular game endpoints under /game, daily challenge under /daily.
//   - Auth + stats endpoints (when a database is configured).
//
// Notes:
//   - Every request runs as a "player": the logged-in user, or an anonymous
//     cookie id. Per-player records live in the kv store under player:<id>:.
//   - A nil DB disables accounts and the daily leaderboard; the game itself
//     keeps working on the kv store alone.
package httpserver

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/hlog"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/timeline/internal/config"
	"github.com/robalobadob/timeline/internal/daily"
	"github.com/robalobadob/timeline/internal/dimension"
	"github.com/robalobadob/timeline/internal/game"
	"github.com/robalobadob/timeline/internal/images"
	"github.com/robalobadob/timeline/internal/kv"
	"github.com/robalobadob/timeline/internal/pool"
	"github.com/robalobadob/timeline/internal/random"
	"github.com/robalobadob/timeline/internal/store"
)

// Deps are the collaborators a Server needs.
type Deps struct {
	Config     config.Config
	Sessions   store.Store
	Library    *pool.Library
	KV         kv.Store
	DB         *sql.DB // optional
	Prefetcher images.Prefetcher
	Location   *time.Location   // daily calendar; nil means time.Local
	Now        func() time.Time // nil means time.Now
	Source     random.Source    // regular-mode draws; nil means random.Rand
}

// Server bundles the router with its dependencies.
type Server struct {
	r     *chi.Mux
	deps  Deps
	board *daily.Leaderboard
}

// New constructs a Server, installs middleware, and registers routes.
func New(d Deps) *Server {
	if d.Location == nil {
		d.Location = time.Local
	}
	if d.Now == nil {
		d.Now = time.Now
	}
	if d.Source == nil {
		d.Source = random.Rand{}
	}
	if d.Prefetcher == nil {
		d.Prefetcher = images.Nop{}
	}
	s := &Server{r: chi.NewRouter(), deps: d}
	if d.DB != nil {
		s.board = daily.NewLeaderboard(d.DB)
	}

	// --- middleware ---
	s.r.Use(hlog.NewHandler(log.Logger))
	s.r.Use(hlog.RequestIDHandler("req_id", "X-Request-ID"))
	s.r.Use(hlog.AccessHandler(func(r *http.Request, status, size int, dur time.Duration) {
		hlog.FromRequest(r).Info().
			Str("method", r.Method).
			Stringer("url", r.URL).
			Int("status", status).
			Int("size", size).
			Dur("duration", dur).
			Msg("request")
	}))
	s.r.Use(chimw.RealIP)
	s.r.Use(chimw.Recoverer)
	s.r.Use(chimw.Timeout(10 * time.Second))
	s.r.Use(jsonContentType)
	s.r.Use(s.cors)

	// --- diagnostics ---
	s.r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"service":"timeline-go","endpoints":["/health","/dimensions","/game/*","/daily/*","/auth/*"]}`))
	})
	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"ok":true}`))
	})
	s.r.Get("/dimensions", s.handleDimensions)

	s.r.Group(func(r chi.Router) {
		r.Use(s.withOptionalAuth())
		s.mountGame(r)
		s.mountDaily(r)
		r.Get("/highscore", s.handleHighScore)
		r.Get("/share", s.handleShare)
	})

	if d.DB != nil {
		s.mountAuthRoutes()
	}

	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "not_found")
	})
	return s
}

// Handler exposes the router (used by main and tests).
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
	origin := s.deps.Config.ClientOrigin
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

// ------------------------------ helpers ------------------------------------

func writeJSON(w http.ResponseWriter, v any) {
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Warn().Err(err).Msg("encode response")
	}
}

func writeError(w http.ResponseWriter, status int, code string) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": code})
}

// writeGameError maps domain errors onto status codes.
func writeGameError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		writeError(w, http.StatusNotFound, "not_found")
	case errors.Is(err, pool.ErrUnknownDimension):
		writeError(w, http.StatusBadRequest, "unknown_dimension")
	case errors.Is(err, game.ErrIndexOutOfRange):
		writeError(w, http.StatusBadRequest, "index_out_of_range")
	case errors.Is(err, game.ErrNotPlaying), errors.Is(err, game.ErrNotStarted):
		writeError(w, http.StatusConflict, "not_playing")
	case errors.Is(err, game.ErrPoolTooSmall):
		writeError(w, http.StatusUnprocessableEntity, "pool_too_small")
	default:
		log.Error().Err(err).Msg("game request")
		writeError(w, http.StatusInternalServerError, "internal")
	}
}

// playerStore namespaces the shared kv store for one player.
func (s *Server) playerStore(playerID string) kv.Store {
	return kv.WithPrefix(s.deps.KV, "player:"+playerID+":")
}

func (s *Server) tracker(playerID string) *daily.Tracker {
	return daily.NewTracker(s.playerStore(playerID), s.deps.Location, s.deps.Now)
}

// site is the share URL without its scheme, e.g. "avi-trivia.netlify.app".
func (s *Server) site() string {
	u, err := url.Parse(s.deps.Config.ShareURL)
	if err != nil || u.Host == "" {
		return s.deps.Config.ShareURL
	}
	return u.Host
}

// -------------------------------- misc -------------------------------------

type dimensionInfo struct {
	Name        string `json:"name"`
	DisplayName string `json:"displayName"`
	Unit        string `json:"unit"`
	Emoji       string `json:"emoji"`
}

func (s *Server) handleDimensions(w http.ResponseWriter, r *http.Request) {
	cfg := s.deps.Library.Config()
	out := make([]dimensionInfo, 0, len(cfg.Dimensions))
	for _, m := range cfg.Dimensions {
		d := dimension.Get(m.Name)
		out = append(out, dimensionInfo{Name: m.Name, DisplayName: m.DisplayName, Unit: d.Unit, Emoji: dimension.EmojiFor(m.Name)})
	}
	writeJSON(w, map[string]any{"dimensions": out, "default": cfg.Default})
}

func (s *Server) handleHighScore(w http.ResponseWriter, r *http.Request) {
	pid := s.playerID(w, r)
	writeJSON(w, map[string]int{"highscore": game.LoadHighScore(r.Context(), s.playerStore(pid))})
}

func (s *Server) handleShare(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.ownedSession(w, r, r.URL.Query().Get("gameId"))
	if !ok {
		return
	}
	sess.Lock()
	defer sess.Unlock()
	g := sess.Game
	if g.Mode == game.ModeDaily {
		writeJSON(w, map[string]string{"text": daily.ShareText(sess.Date, g.Dimension.Name, g.Placements, s.deps.Config.ShareURL)})
		return
	}
	writeJSON(w, map[string]string{"text": game.ShareText(g.Score(), g.HighScore, s.site())})
}

// ownedSession loads a session and checks that the caller owns it.
// On failure the error response has already been written.
func (s *Server) ownedSession(w http.ResponseWriter, r *http.Request, id string) (*store.Session, bool) {
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing_game_id")
		return nil, false
	}
	sess, err := s.deps.Sessions.Get(r.Context(), id)
	if err != nil {
		writeGameError(w, err)
		return nil, false
	}
	if sess.Owner != s.playerID(w, r) {
		writeError(w, http.StatusNotFound, "not_found")
		return nil, false
	}
	return sess, true
}
