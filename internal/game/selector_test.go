package game

import (
	"testing"

	"github.com/robalobadob/timeline/internal/dimension"
	"github.com/robalobadob/timeline/internal/items"
)

func TestSelectWithinPeriod(t *testing.T) {
	year := dimension.Get("year")
	deck := []items.Item{item("a", 1500), item("b", 1900), item("c", 1950)}
	// period 2 (1800..2020), humans allowed, second candidate
	src := &script{vals: []float64{0.99, 0.9, 0.6}}

	got, ok := Select(deck, nil, year, src)
	if !ok || got.ID != "c" {
		t.Fatalf("Select = %q, %v; want c", got.ID, ok)
	}
	if src.i != 3 {
		t.Errorf("consumed %d draws, want 3", src.i)
	}
}

func TestSelectAvoidsHumans(t *testing.T) {
	year := dimension.Get("year")
	deck := []items.Item{item("h", 1900, items.HumanCategory), item("x", 1950)}
	src := &script{vals: []float64{0.99, 0.1, 0.0}}

	got, _ := Select(deck, nil, year, src)
	if got.ID != "x" {
		t.Errorf("Select = %q, want x", got.ID)
	}
}

func TestSelectSkipsTooClose(t *testing.T) {
	year := dimension.Get("year")
	deck := []items.Item{item("y", 1960), item("w", 2010)}
	placed := []items.Item{item("p", 1900)}
	src := &script{vals: []float64{0.99, 0.9, 0.0}}

	got, _ := Select(deck, placed, year, src)
	if got.ID != "w" {
		t.Errorf("Select = %q, want w", got.ID)
	}
}

func TestSelectFallsBackToWholeDeck(t *testing.T) {
	year := dimension.Get("year")
	deck := []items.Item{item("a", 1500), item("b", 1600)}
	// period 2 has no cards; the third draw picks from the whole deck
	src := &script{vals: []float64{0.99, 0.9, 0.5}}

	got, ok := Select(deck, nil, year, src)
	if !ok || got.ID != "b" {
		t.Fatalf("Select = %q, %v; want b", got.ID, ok)
	}
}

func TestSelectEmptyDeck(t *testing.T) {
	if _, ok := Select(nil, nil, dimension.Get("year"), &script{vals: []float64{0}}); ok {
		t.Error("empty deck must report ok=false")
	}
}
