// internal/daily/daily.go
//
// Date-derived inputs for the daily challenge.
// Every player on the same calendar day gets the same seed, the same
// dimension and therefore the same card sequence.
package daily

import (
	"time"

	"github.com/robalobadob/timeline/internal/dimension"
	"github.com/robalobadob/timeline/internal/random"
)

// DateKey returns YYYY-MM-DD in t's own location.
func DateKey(t time.Time) string {
	return t.Format("2006-01-02")
}

// Seed maps a calendar date to year*10000 + month*100 + day.
func Seed(t time.Time) int {
	y, m, d := t.Date()
	return y*10000 + int(m)*100 + d
}

// DimensionName picks the day's dimension from names with a fresh seeded
// stream. names must be in configuration order for every caller to agree.
func DimensionName(names []string, date time.Time) string {
	if len(names) == 0 {
		return dimension.Default
	}
	return random.Pick(random.NewSeeded(Seed(date)), names)
}
