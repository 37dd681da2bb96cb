package game

import (
	"context"
	"strconv"

	"github.com/rs/zerolog/log"

	"github.com/robalobadob/timeline/internal/kv"
)

// KeyHighScore is the storage key of the best score ever reached.
const KeyHighScore = "highscore"

// LoadHighScore reads the stored high score. Absence or bad data reads as 0.
func LoadHighScore(ctx context.Context, store kv.Store) int {
	if store == nil {
		return 0
	}
	v, ok, err := store.Get(ctx, KeyHighScore)
	if err != nil {
		log.Warn().Err(err).Msg("read highscore")
		return 0
	}
	if !ok {
		return 0
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0
	}
	return n
}

// recordHighScore persists the current score when it beats the best so far.
func (s *State) recordHighScore(ctx context.Context) {
	score := s.Score()
	if score <= s.HighScore {
		return
	}
	s.HighScore = score
	if s.opts.Store == nil {
		return
	}
	if err := s.opts.Store.Set(ctx, KeyHighScore, strconv.Itoa(score)); err != nil {
		log.Warn().Err(err).Int("score", score).Msg("write highscore")
	}
}
