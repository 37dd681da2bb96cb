// internal/dimension/dimension.go
//
// Dimension describes a numeric ordering axis that cards are sorted along.
// Defines:
//   - Period: a [From,To] value range used to bias which "era" a card is drawn from.
//   - Dimension: comparison, display formatting, property labels, and periods.
//
// The catalog itself lives in catalog.go and is read-only.
package dimension

import "cmp"

// Period is an inclusive value range.
type Period struct {
	From float64 `json:"from"`
	To   float64 `json:"to"`
}

// Contains reports whether v lies inside the period (both ends inclusive).
func (p Period) Contains(v float64) bool {
	return v >= p.From && v <= p.To
}

// Dimension is a named ordering policy over item values.
type Dimension struct {
	Name  string // Catalog key ("year", "price", ...)
	Unit  string // Display unit ("years", "USD", ...)
	Emoji string // Share-text symbol

	// Periods bias the selector towards one value range per draw.
	// Empty means DefaultPeriods.
	Periods []Period

	// PercentDistance switches the too-close rule from an absolute
	// separation to one proportional to the candidate's value.
	PercentDistance bool

	format       func(float64) string
	labels       map[string]string
	defaultLabel string // "" means fall back to the property id itself
}

// DefaultPeriods apply to dimensions that declare none.
var DefaultPeriods = []Period{
	{-100000, 1000},
	{1000, 1800},
	{1800, 2020},
}

// Compare orders two values ascending.
func (d *Dimension) Compare(a, b float64) int {
	return cmp.Compare(a, b)
}

// Format renders a value for display.
func (d *Dimension) Format(v float64) string {
	if d.format == nil {
		return jsNumber(v)
	}
	return d.format(v)
}

// PropertyLabel maps a source property id (e.g. "P569") to a human label.
func (d *Dimension) PropertyLabel(propertyID string) string {
	if l, ok := d.labels[propertyID]; ok {
		return l
	}
	if d.defaultLabel == "" {
		return propertyID
	}
	return d.defaultLabel
}

// Buckets returns the periods used for sampling.
func (d *Dimension) Buckets() []Period {
	if len(d.Periods) == 0 {
		return DefaultPeriods
	}
	return d.Periods
}
