package daily

import (
	"context"
	"database/sql"
	"time"
)

// Entry is one player's finished daily.
type Entry struct {
	PlayerID  string `json:"playerId"`
	Name      string `json:"name,omitempty"`
	Date      string `json:"date"`
	Dimension string `json:"dimension"`
	Score     int    `json:"score"`
	CreatedAt string `json:"createdAt"`
}

// Leaderboard persists daily results in the daily_results table,
// one row per (player_id, date).
type Leaderboard struct{ db *sql.DB }

func NewLeaderboard(db *sql.DB) *Leaderboard { return &Leaderboard{db: db} }

func (l *Leaderboard) AlreadyPlayed(ctx context.Context, playerID, date string) (bool, error) {
	var cnt int
	err := l.db.QueryRowContext(ctx,
		"SELECT COUNT(1) FROM daily_results WHERE player_id=? AND date=?",
		playerID, date,
	).Scan(&cnt)
	return cnt > 0, err
}

// InsertResult keeps the first result of the day; later inserts are ignored.
func (l *Leaderboard) InsertResult(ctx context.Context, e Entry) error {
	if e.CreatedAt == "" {
		e.CreatedAt = time.Now().UTC().Format(time.RFC3339Nano)
	}
	_, err := l.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO daily_results(player_id, date, dimension, score, created_at)
		VALUES(?,?,?,?,?)`, e.PlayerID, e.Date, e.Dimension, e.Score, e.CreatedAt,
	)
	return err
}

// Top lists the best results for date: highest score first, then earliest finish.
// Names come from the users table when the player has an account.
func (l *Leaderboard) Top(ctx context.Context, date string, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := l.db.QueryContext(ctx,
		`SELECT r.player_id, COALESCE(u.username, ''), r.date, r.dimension, r.score, r.created_at
		FROM daily_results r
		LEFT JOIN users u ON u.id = r.player_id
		WHERE r.date=?
		ORDER BY r.score DESC, r.created_at ASC
		LIMIT ?`, date, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]Entry, 0, limit)
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.PlayerID, &e.Name, &e.Date, &e.Dimension, &e.Score, &e.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
