// internal/items/item.go
//
// Core card types.
// Defines:
//   - Item: an immutable trivia fact with a numeric value along some dimension.
//   - PlayedItem: an Item on the timeline plus the point-in-time correctness of its drop.
package items

import "slices"

// HumanCategory marks items about people; the selector may skip them per draw.
const HumanCategory = "human"

// Item is a single card. Items are never mutated once loaded.
type Item struct {
	ID             string   `json:"id"`
	Label          string   `json:"label"`
	Description    string   `json:"description"`
	Value          float64  `json:"value"`
	Image          string   `json:"image"`
	InstanceOf     []string `json:"instance_of"`
	DatePropID     string   `json:"date_prop_id,omitempty"`
	NumSitelinks   int      `json:"num_sitelinks,omitempty"`
	PageViews      int      `json:"page_views,omitempty"`
	Occupations    []string `json:"occupations,omitempty"`
	WikipediaTitle string   `json:"wikipedia_title,omitempty"`
}

// IsHuman reports whether the item is tagged as a person.
func (it Item) IsHuman() bool {
	return slices.Contains(it.InstanceOf, HumanCategory)
}

// PlayedItem is an Item placed on the timeline.
// Correct is decided when the card is dropped and never recomputed.
type PlayedItem struct {
	Item
	Correct bool `json:"correct"`
}

// Values extracts the values of a list of items.
func Values(list []Item) []float64 {
	out := make([]float64, len(list))
	for i, it := range list {
		out[i] = it.Value
	}
	return out
}

// IndexOf returns the position of the item with id, or -1.
func IndexOf(list []Item, id string) int {
	return slices.IndexFunc(list, func(it Item) bool { return it.ID == id })
}

// Without returns list minus the item with id. The input slice is not modified.
func Without(list []Item, id string) []Item {
	i := IndexOf(list, id)
	if i < 0 {
		return list
	}
	out := make([]Item, 0, len(list)-1)
	out = append(out, list[:i]...)
	return append(out, list[i+1:]...)
}
