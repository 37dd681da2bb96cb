package game

import (
	"testing"

	"github.com/robalobadob/timeline/internal/dimension"
	"github.com/robalobadob/timeline/internal/items"
)

func timeline(values ...float64) []items.PlayedItem {
	out := make([]items.PlayedItem, len(values))
	for i, v := range values {
		out[i] = items.PlayedItem{Item: item(string(rune('a'+i)), v), Correct: true}
	}
	return out
}

func TestCheckCorrect(t *testing.T) {
	year := dimension.Get("year")
	played := timeline(1990, 2000, 2010)
	candidate := item("x", 2005)

	tests := []struct {
		index int
		want  Placement
	}{
		{0, Placement{Correct: false, Delta: 2}},
		{1, Placement{Correct: false, Delta: 1}},
		{2, Placement{Correct: true, Delta: 0}},
		{3, Placement{Correct: false, Delta: -1}},
	}
	for _, tt := range tests {
		if got := CheckCorrect(played, candidate, tt.index, year); got != tt.want {
			t.Errorf("CheckCorrect(index %d) = %+v, want %+v", tt.index, got, tt.want)
		}
	}
}

func TestCheckCorrectEqualValuesGoAfter(t *testing.T) {
	year := dimension.Get("year")
	played := timeline(2000)

	if got := CheckCorrect(played, item("x", 2000), 1, year); !got.Correct {
		t.Errorf("after an equal value: %+v, want correct", got)
	}
	if got := CheckCorrect(played, item("x", 2000), 0, year); got.Correct || got.Delta != 1 {
		t.Errorf("before an equal value: %+v, want delta 1", got)
	}
}

func TestCheckCorrectIgnoresTimelineOrder(t *testing.T) {
	year := dimension.Get("year")
	// a prior mistake left the timeline unsorted
	played := timeline(2010, 1990)

	got := CheckCorrect(played, item("x", 2000), 1, year)
	if !got.Correct {
		t.Errorf("got %+v, want correct at sorted position 1", got)
	}
}
