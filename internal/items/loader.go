// internal/items/loader.go
//
// Reads newline-delimited JSON card data and prepares it for play.
//
// Decode:
//   - One JSON object per line; blank lines are skipped.
//   - Legacy records carry "year" instead of "value"; it is copied over.
//   - Records with neither are dropped.
//
// Filter (applied per dimension):
//   - label or description contains the value itself (gives the answer away)
//   - description mentions a century ("19th century", "3rd-century")
//   - id appears in the bad-card list
//   - display-formatted value already seen (two cards would look identical)
package items

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/robalobadob/timeline/internal/dimension"
)

// rawItem mirrors the on-disk shape, where value and year are both optional.
type rawItem struct {
	Item
	Value *float64 `json:"value"`
	Year  *float64 `json:"year"`
}

var centuryPattern = regexp.MustCompile(`(?i)(?:th|st|nd)[ -]century`)

// Decode parses NDJSON records from r.
func Decode(r io.Reader) ([]Item, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 4*1024*1024)

	var out []Item
	line, dropped := 0, 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" {
			continue
		}
		var raw rawItem
		if err := json.Unmarshal([]byte(text), &raw); err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		it := raw.Item
		switch {
		case raw.Value != nil && *raw.Value != 0:
			it.Value = *raw.Value
		case raw.Year != nil:
			it.Value = *raw.Year
		case raw.Value != nil:
			it.Value = 0
		default:
			dropped++
			continue
		}
		out = append(out, it)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	if dropped > 0 {
		log.Warn().Int("dropped", dropped).Msg("items without value or year")
	}
	return out, nil
}

// Filter removes cards unfit for play under dim. bad lists ids to exclude.
func Filter(list []Item, dim *dimension.Dimension, bad map[string]struct{}) []Item {
	seen := make(map[string]struct{}, len(list))
	out := make([]Item, 0, len(list))
	for _, it := range list {
		v := strconv.FormatFloat(it.Value, 'f', -1, 64)
		if strings.Contains(it.Label, v) || strings.Contains(it.Description, v) {
			continue
		}
		if centuryPattern.MatchString(it.Description) {
			continue
		}
		if _, ok := bad[it.ID]; ok {
			continue
		}
		shown := dim.Format(it.Value)
		if _, dup := seen[shown]; dup {
			continue
		}
		seen[shown] = struct{}{}
		out = append(out, it)
	}
	return out
}
