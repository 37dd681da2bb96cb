// internal/httpserver/routes_game.go
//
// Regular (free play) endpoints:
//   - POST   /game/new       {dimension}          → deal a new game
//   - GET    /game/{id}                           → current view
//   - POST   /game/place     {gameId,index}       → drop Next at index
//   - POST   /game/move      {gameId,from,to}     → reorder the timeline
//   - POST   /game/rendered  {gameId}             → ack the misplaced-card feedback
//   - DELETE /game/{id}                           → abandon the session
//
// Daily sessions accept the same place/move/rendered calls. Dealing a new
// regular game replaces the player's previous one.
package httpserver

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/timeline/internal/game"
	"github.com/robalobadob/timeline/internal/store"
)

func (s *Server) mountGame(r chi.Router) {
	r.Route("/game", func(r chi.Router) {
		r.Post("/new", s.handleNewGame)
		r.Post("/place", s.handlePlace)
		r.Post("/move", s.handleMove)
		r.Post("/rendered", s.handleRendered)
		r.Get("/{id}", s.handleGetGame)
		r.Delete("/{id}", s.handleDeleteGame)
	})
}

type newGameReq struct {
	Dimension string `json:"dimension"`
}

func (s *Server) handleNewGame(w http.ResponseWriter, r *http.Request) {
	var req newGameReq
	// an empty body means the default dimension
	if err := decode(r, &req); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	name := req.Dimension
	if name == "" {
		name = s.deps.Library.Default()
	}
	cards, dim, err := s.deps.Library.Pool(name)
	if err != nil {
		writeGameError(w, err)
		return
	}

	pid := s.playerID(w, r)
	userID := ""
	if me := userFrom(r.Context()); me != nil {
		userID = me.ID
	}
	g, err := game.New(r.Context(), cards, dim, game.Options{
		Source:     s.deps.Source,
		Store:      s.playerStore(pid),
		Prefetcher: s.deps.Prefetcher,
		OnGameOver: func(ctx context.Context, g *game.State) {
			s.bumpStats(ctx, userID, g.Score())
		},
	})
	if err != nil {
		writeGameError(w, err)
		return
	}
	sess := &store.Session{ID: g.ID, Owner: pid, Game: g}
	if err := s.deps.Sessions.Save(r.Context(), sess); err != nil {
		log.Error().Err(err).Msg("save session")
		writeError(w, http.StatusInternalServerError, "save_failed")
		return
	}
	log.Debug().Str("gameId", g.ID).Str("dimension", dim.Name).Int("pool", len(cards)).Msg("regular game dealt")
	writeJSON(w, viewOf(g, ""))
}

func (s *Server) handleGetGame(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.ownedSession(w, r, chi.URLParam(r, "id"))
	if !ok {
		return
	}
	sess.Lock()
	defer sess.Unlock()
	writeJSON(w, viewOf(sess.Game, sess.Date))
}

type placeReq struct {
	GameID string `json:"gameId"`
	Index  int    `json:"index"`
}

func (s *Server) handlePlace(w http.ResponseWriter, r *http.Request) {
	var req placeReq
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	sess, ok := s.ownedSession(w, r, req.GameID)
	if !ok {
		return
	}
	sess.Lock()
	defer sess.Unlock()

	res, err := sess.Game.Place(r.Context(), req.Index)
	if err != nil {
		writeGameError(w, err)
		return
	}
	v := viewOf(sess.Game, sess.Date)
	v.Result = &res
	writeJSON(w, v)
}

type moveReq struct {
	GameID string `json:"gameId"`
	From   int    `json:"from"`
	To     int    `json:"to"`
}

func (s *Server) handleMove(w http.ResponseWriter, r *http.Request) {
	var req moveReq
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	sess, ok := s.ownedSession(w, r, req.GameID)
	if !ok {
		return
	}
	sess.Lock()
	defer sess.Unlock()

	if err := sess.Game.Move(req.From, req.To); err != nil {
		writeGameError(w, err)
		return
	}
	writeJSON(w, viewOf(sess.Game, sess.Date))
}

type gameRef struct {
	GameID string `json:"gameId"`
}

func (s *Server) handleRendered(w http.ResponseWriter, r *http.Request) {
	var req gameRef
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	sess, ok := s.ownedSession(w, r, req.GameID)
	if !ok {
		return
	}
	sess.Lock()
	defer sess.Unlock()
	sess.Game.MarkRendered()
	writeJSON(w, map[string]any{"badlyPlaced": sess.Game.BadlyPlaced})
}

func (s *Server) handleDeleteGame(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.ownedSession(w, r, chi.URLParam(r, "id"))
	if !ok {
		return
	}
	// Abandoning an unfinished daily lets the player deal it again; only a
	// finished daily is protected from replay.
	if err := s.deps.Sessions.Delete(r.Context(), sess.ID); err != nil {
		writeGameError(w, err)
		return
	}
	writeJSON(w, map[string]bool{"ok": true})
}
