// internal/httpserver/routes_daily.go
//
// HTTP routes for the daily challenge.
//   - POST /daily/new         → deal today's game (or report it as already played)
//   - GET  /daily/result      → today's saved result
//   - GET  /daily/streak      → streak counter and recent history
//   - GET  /daily/share       → share text for today's result
//   - GET  /daily/leaderboard → top results for today (or ?date=YYYY-MM-DD)
//   - POST /daily/reset       → forget today's play (DEV_MODE only)
//
// Each player can finish the daily once per day. The completion marker in
// the player's kv records is authoritative; the leaderboard table is a
// second check when a database is configured. The player's in-progress
// daily session for today is reused so a reload does not deal a fresh game.
package httpserver

import (
	"context"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/timeline/internal/daily"
	"github.com/robalobadob/timeline/internal/game"
	"github.com/robalobadob/timeline/internal/store"
)

// mountDaily registers all /daily routes.
func (s *Server) mountDaily(r chi.Router) {
	r.Route("/daily", func(r chi.Router) {
		r.Post("/new", s.handleDailyNew)
		r.Get("/result", s.handleDailyResult)
		r.Get("/streak", s.handleDailyStreak)
		r.Get("/share", s.handleDailyShare)
		r.Get("/leaderboard", s.handleLeaderboard)
		if s.deps.Config.DevMode {
			r.Post("/reset", s.handleDailyReset)
		}
	})
}

type dailyNewRes struct {
	Date      string             `json:"date"`
	Dimension string             `json:"dimension"`
	Played    bool               `json:"played"`
	Result    *daily.SavedResult `json:"result,omitempty"`
	Game      *gameView          `json:"game,omitempty"`
}

func (s *Server) handleDailyNew(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	pid := s.playerID(w, r)
	tr := s.tracker(pid)
	today := tr.Today()
	date := daily.DateKey(today)
	name := daily.DimensionName(s.deps.Library.Names(), today)

	if s.alreadyPlayed(ctx, tr, pid, date) {
		res := dailyNewRes{Date: date, Dimension: name, Played: true}
		if saved, ok := tr.Saved(ctx); ok {
			res.Result = &saved
		}
		writeJSON(w, res)
		return
	}

	if sess, err := s.deps.Sessions.Current(ctx, pid, true); err == nil && sess.Date == date {
		sess.Lock()
		v := viewOf(sess.Game, date)
		sess.Unlock()
		writeJSON(w, dailyNewRes{Date: date, Dimension: name, Game: &v})
		return
	}

	cards, dim, err := s.deps.Library.Pool(name)
	if err != nil {
		writeGameError(w, err)
		return
	}
	userID := ""
	if me := userFrom(ctx); me != nil {
		userID = me.ID
	}
	g, err := daily.NewState(ctx, cards, dim, today, game.Options{
		Store:      s.playerStore(pid),
		Prefetcher: s.deps.Prefetcher,
		OnGameOver: s.finishDaily(pid, userID, tr, date),
	})
	if err != nil {
		writeGameError(w, err)
		return
	}
	sess := &store.Session{ID: g.ID, Owner: pid, Game: g, Daily: true, Date: date}
	if err := s.deps.Sessions.Save(ctx, sess); err != nil {
		log.Error().Err(err).Msg("save daily session")
		writeError(w, http.StatusInternalServerError, "save_failed")
		return
	}
	log.Info().Str("date", date).Str("dimension", name).Str("gameId", g.ID).Msg("daily dealt")

	v := viewOf(g, date)
	writeJSON(w, dailyNewRes{Date: date, Dimension: name, Game: &v})
}

func (s *Server) alreadyPlayed(ctx context.Context, tr *daily.Tracker, pid, date string) bool {
	if tr.Completed(ctx) {
		return true
	}
	if s.board == nil {
		return false
	}
	played, err := s.board.AlreadyPlayed(ctx, pid, date)
	if err != nil {
		log.Warn().Err(err).Str("player", pid).Msg("leaderboard lookup")
		return false
	}
	return played
}

// finishDaily records a finished daily game: streak and saved result in the
// player's records, a leaderboard row, and account stats.
func (s *Server) finishDaily(pid, userID string, tr *daily.Tracker, date string) func(context.Context, *game.State) {
	return func(ctx context.Context, g *game.State) {
		streak, err := tr.Finish(ctx, date, g)
		if err != nil {
			log.Warn().Err(err).Str("player", pid).Msg("record daily result")
		}
		if s.board != nil {
			err := s.board.InsertResult(ctx, daily.Entry{PlayerID: pid, Date: date, Dimension: g.Dimension.Name, Score: g.Score()})
			if err != nil {
				log.Warn().Err(err).Str("player", pid).Msg("insert daily result")
			}
		}
		s.bumpStats(ctx, userID, g.Score())
		log.Info().Str("date", date).Int("score", g.Score()).Int("streak", streak.Current).Msg("daily finished")
	}
}

func (s *Server) handleDailyResult(w http.ResponseWriter, r *http.Request) {
	saved, ok := s.tracker(s.playerID(w, r)).Saved(r.Context())
	if !ok {
		writeError(w, http.StatusNotFound, "not_found")
		return
	}
	writeJSON(w, saved)
}

func (s *Server) handleDailyStreak(w http.ResponseWriter, r *http.Request) {
	tr := s.tracker(s.playerID(w, r))
	ctx := r.Context()
	st := tr.Streak(ctx)
	writeJSON(w, map[string]any{
		"current":   st.Current,
		"history":   st.History,
		"completed": tr.Completed(ctx),
	})
}

func (s *Server) handleDailyShare(w http.ResponseWriter, r *http.Request) {
	saved, ok := s.tracker(s.playerID(w, r)).Saved(r.Context())
	if !ok {
		writeError(w, http.StatusNotFound, "not_found")
		return
	}
	writeJSON(w, map[string]string{
		"text": daily.ShareText(saved.Date, saved.DimensionName, saved.Placements, s.deps.Config.ShareURL),
	})
}

func (s *Server) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	if s.board == nil {
		writeError(w, http.StatusServiceUnavailable, "leaderboard_unavailable")
		return
	}
	date := r.URL.Query().Get("date")
	if date == "" {
		date = daily.DateKey(s.deps.Now().In(s.deps.Location))
	}
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	rows, err := s.board.Top(r.Context(), date, limit)
	if err != nil {
		log.Error().Err(err).Msg("leaderboard")
		writeError(w, http.StatusInternalServerError, "db_error")
		return
	}
	writeJSON(w, map[string]any{"date": date, "entries": rows})
}

func (s *Server) handleDailyReset(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	pid := s.playerID(w, r)
	if err := s.tracker(pid).ResetToday(ctx); err != nil {
		log.Warn().Err(err).Str("player", pid).Msg("reset daily")
		writeError(w, http.StatusInternalServerError, "reset_failed")
		return
	}
	if sess, err := s.deps.Sessions.Current(ctx, pid, true); err == nil {
		_ = s.deps.Sessions.Delete(ctx, sess.ID)
	}
	writeJSON(w, map[string]bool{"ok": true})
}
