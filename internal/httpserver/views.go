package httpserver

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/robalobadob/timeline/internal/game"
	"github.com/robalobadob/timeline/internal/images"
	"github.com/robalobadob/timeline/internal/items"
)

// cardView is a card as the client sees it. Lookahead cards carry no value.
type cardView struct {
	ID          string   `json:"id"`
	Label       string   `json:"label"`
	Description string   `json:"description"`
	ImageURL    string   `json:"imageUrl,omitempty"`
	Property    string   `json:"property,omitempty"`
	Value       *float64 `json:"value,omitempty"`
	Display     string   `json:"display,omitempty"`
	Correct     *bool    `json:"correct,omitempty"`
}

type gameView struct {
	ID          string            `json:"id"`
	Mode        game.Mode         `json:"mode"`
	Dimension   string            `json:"dimension"`
	Status      game.Status       `json:"status"`
	Lives       int               `json:"lives"`
	Score       int               `json:"score"`
	HighScore   int               `json:"highscore"`
	Played      []cardView        `json:"played"`
	Next        *cardView         `json:"next"`
	NextButOne  *cardView         `json:"nextButOne"`
	BadlyPlaced *game.BadlyPlaced `json:"badlyPlaced"`
	Placements  []bool            `json:"placements"`
	Exhausted   bool              `json:"exhausted,omitempty"`
	Date        string            `json:"date,omitempty"`
	Result      *game.Placement   `json:"result,omitempty"`
}

func hiddenCard(g *game.State, it *items.Item) *cardView {
	if it == nil {
		return nil
	}
	return &cardView{
		ID:          it.ID,
		Label:       it.Label,
		Description: it.Description,
		ImageURL:    imageURL(it),
		Property:    g.Dimension.PropertyLabel(it.DatePropID),
	}
}

func imageURL(it *items.Item) string {
	if it.Image == "" {
		return ""
	}
	return images.WikimediaURL(it.Image, images.DefaultWidth)
}

func viewOf(g *game.State, date string) gameView {
	played := make([]cardView, len(g.Played))
	for i := range g.Played {
		p := g.Played[i]
		v := *hiddenCard(g, &p.Item)
		value, correct := p.Value, p.Correct
		v.Value, v.Correct = &value, &correct
		v.Display = g.Dimension.Format(p.Value)
		played[i] = v
	}
	placements := g.Placements
	if placements == nil {
		placements = []bool{}
	}
	return gameView{
		ID:          g.ID,
		Mode:        g.Mode,
		Dimension:   g.Dimension.Name,
		Status:      g.Status,
		Lives:       g.Lives,
		Score:       g.Score(),
		HighScore:   g.HighScore,
		Played:      played,
		Next:        hiddenCard(g, g.Next()),
		NextButOne:  hiddenCard(g, g.NextButOne()),
		BadlyPlaced: g.BadlyPlaced,
		Placements:  placements,
		Exhausted:   g.Exhausted,
		Date:        date,
	}
}

func decode(r *http.Request, v any) error {
	return json.NewDecoder(io.LimitReader(r.Body, 1<<16)).Decode(v)
}
