package dimension

import "math"

// Default is the dimension returned for unknown names.
const Default = "year"

// FallbackEmoji is used for dimensions without a dedicated symbol.
const FallbackEmoji = "📊"

var catalog = []*Dimension{
	{
		Name:  "year",
		Unit:  "years",
		Emoji: "📅",
		format: func(v float64) string {
			if v < -10000 {
				return grouped(v)
			}
			return jsNumber(v)
		},
		labels: map[string]string{
			"P575":  "discovered",
			"P7589": "date of assent",
			"P577":  "published",
			"P1191": "first performed",
			"P1619": "officially opened",
			"P571":  "created",
			"P1249": "earliest record",
			"P576":  "ended",
			"P8556": "became extinct",
			"P6949": "announced",
			"P1319": "earliest",
			"P569":  "born",
			"P570":  "died",
			"P582":  "ended",
			"P580":  "started",
			"P7125": "latest one",
			"P7124": "first one",
		},
		Periods: []Period{{-100000, 1000}, {1000, 1800}, {1800, 2020}},
	},
	{
		Name:            "price",
		Unit:            "USD",
		Emoji:           "💰",
		PercentDistance: true,
		format: func(v float64) string {
			switch {
			case v >= 1e9:
				return "$" + fixed(v/1e9, 1) + "B"
			case v >= 1e6:
				return "$" + fixed(v/1e6, 1) + "M"
			case v >= 1e3:
				return "$" + fixed(v/1e3, 0) + "K"
			}
			return "$" + grouped(v)
		},
		labels: map[string]string{
			"P2124": "price",
			"P2284": "purchase price",
			"P3002": "estimated value",
			"P2067": "mass market price",
		},
		defaultLabel: "price",
		Periods:      []Period{{0, 10000}, {10000, 100000}, {100000, 1000000000}},
	},
	{
		Name:  "speed",
		Unit:  "km/h",
		Emoji: "⚡",
		format: func(v float64) string {
			switch {
			case v >= 10000:
				return fixed(v/1000, 0) + "K km/h"
			case v >= 1000:
				return grouped(v) + " km/h"
			}
			return jsNumber(v) + " km/h"
		},
		labels:       map[string]string{"P2052": "top speed", "P2053": "max speed", "P8516": "cruising speed"},
		defaultLabel: "top speed",
		Periods:      []Period{{0, 100}, {100, 500}, {500, 50000}},
	},
	{
		Name:  "height",
		Unit:  "meters",
		Emoji: "📏",
		format: func(v float64) string {
			if v >= 1000 {
				return fixed(v/1000, 2) + " km"
			}
			return grouped(v) + " m"
		},
		labels:       map[string]string{"P2048": "height", "P2044": "elevation", "P2793": "structural height"},
		defaultLabel: "height",
		Periods:      []Period{{0, 200}, {200, 1000}, {1000, 10000}},
	},
	{
		Name:  "population",
		Unit:  "people",
		Emoji: "👥",
		format: func(v float64) string {
			switch {
			case v >= 1e9:
				return fixed(v/1e9, 2) + "B"
			case v >= 1e6:
				return fixed(v/1e6, 1) + "M"
			case v >= 1e3:
				return fixed(v/1e3, 0) + "K"
			}
			return grouped(v)
		},
		labels:       map[string]string{"P1082": "population", "P1539": "female population", "P1540": "male population"},
		defaultLabel: "population",
		Periods:      []Period{{0, 10000000}, {10000000, 100000000}, {100000000, 2000000000}},
	},
	{
		Name:  "weight",
		Unit:  "kg",
		Emoji: "⚖️",
		format: func(v float64) string {
			switch {
			case v >= 1e6:
				return fixed(v/1000, 0) + " tons"
			case v >= 1000:
				return fixed(v/1000, 1) + " tons"
			case v >= 1:
				return grouped(v) + " kg"
			}
			return fixed(v*1000, 0) + " g"
		},
		labels:       map[string]string{"P2067": "weight", "P2068": "mass", "P2128": "curb weight"},
		defaultLabel: "weight",
		Periods:      []Period{{0, 100}, {100, 10000}, {10000, 500000}},
	},
	{
		Name:  "preptime",
		Unit:  "minutes",
		Emoji: "🍳",
		format: func(v float64) string {
			switch {
			case v >= 1440:
				return wholeOrFixed(v/1440, "day", "days")
			case v >= 60:
				return wholeOrFixed(v/60, "hr", "hrs")
			}
			return jsNumber(v) + " min"
		},
		labels:       map[string]string{"P2781": "prep time"},
		defaultLabel: "prep time",
		Periods:      []Period{{0, 30}, {30, 120}, {120, 10000}},
	},
	{
		Name:  "lifespan",
		Unit:  "years",
		Emoji: "💓",
		format: func(v float64) string {
			if v == 1 {
				return "1 year"
			}
			return jsNumber(v) + " years"
		},
		labels:       map[string]string{"P2250": "lifespan"},
		defaultLabel: "lifespan",
		Periods:      []Period{{0, 20}, {20, 80}, {80, 500}},
	},
	{
		Name:  "distance",
		Unit:  "km",
		Emoji: "🗺️",
		format: func(v float64) string {
			switch {
			case v >= 1e9:
				return fixed(v/1e9, 0) + "B km"
			case v >= 1e6:
				return fixed(v/1e6, 0) + "M km"
			case v >= 1e3:
				return fixed(v/1e3, 0) + "K km"
			}
			return grouped(v) + " km"
		},
		labels:       map[string]string{"P2043": "distance"},
		defaultLabel: "distance",
		Periods:      []Period{{0, 10000}, {10000, 1000000}, {1000000, 1000000000000}},
	},
	{
		Name:         "temperature",
		Unit:         "°C",
		Emoji:        "🌡️",
		format:       func(v float64) string { return jsNumber(v) + "°C" },
		labels:       map[string]string{"P2076": "temperature"},
		defaultLabel: "temperature",
		Periods:      []Period{{-300, 0}, {0, 100}, {100, 100000}},
	},
	{
		Name:  "area",
		Unit:  "km²",
		Emoji: "📐",
		format: func(v float64) string {
			switch {
			case v >= 1e6:
				return fixed(v/1e6, 1) + "M km²"
			case v >= 1e3:
				return fixed(v/1e3, 0) + "K km²"
			}
			return grouped(v) + " km²"
		},
		labels:       map[string]string{"P2046": "area"},
		defaultLabel: "area",
		Periods:      []Period{{0, 1000}, {1000, 1000000}, {1000000, 20000000}},
	},
	{
		Name:  "depth",
		Unit:  "m",
		Emoji: "🌊",
		format: func(v float64) string {
			if v >= 1000 {
				return fixed(v/1000, 1) + " km"
			}
			return grouped(v) + " m"
		},
		labels:       map[string]string{"P4511": "depth"},
		defaultLabel: "depth",
		Periods:      []Period{{0, 500}, {500, 5000}, {5000, 15000}},
	},
	{
		Name:  "calories",
		Unit:  "cal",
		Emoji: "🍔",
		format: func(v float64) string {
			if v >= 1000 {
				return fixed(v/1000, 1) + "K cal"
			}
			return jsNumber(v) + " cal"
		},
		labels:       map[string]string{"P1109": "calories"},
		defaultLabel: "calories",
		Periods:      []Period{{0, 100}, {100, 500}, {500, 10000}},
	},
	{
		Name:  "duration",
		Unit:  "seconds",
		Emoji: "⏱️",
		format: func(v float64) string {
			switch {
			case v >= 3600:
				return wholeOrFixed(v/3600, "hr", "hrs")
			case v >= 60:
				m := v / 60
				if m == math.Floor(m) {
					return jsNumber(m) + " min"
				}
				return fixed(m, 1) + " min"
			}
			return jsNumber(v) + " sec"
		},
		labels:       map[string]string{"P2047": "duration"},
		defaultLabel: "duration",
		Periods:      []Period{{0, 60}, {60, 3600}, {3600, 100000}},
	},
	{
		Name:  "boxoffice",
		Unit:  "USD",
		Emoji: "🎬",
		format: func(v float64) string {
			switch {
			case v >= 1e9:
				return "$" + fixed(v/1e9, 1) + "B"
			case v >= 1e6:
				return "$" + fixed(v/1e6, 0) + "M"
			}
			return "$" + grouped(v)
		},
		labels:       map[string]string{"P2142": "box office"},
		defaultLabel: "box office",
		Periods:      []Period{{0, 500000000}, {500000000, 1500000000}, {1500000000, 5000000000}},
	},
	{
		Name:         "albumsales",
		Unit:         "copies",
		Emoji:        "💿",
		format:       copies,
		labels:       map[string]string{"P2142": "sales"},
		defaultLabel: "sales",
		Periods:      []Period{{0, 20000000}, {20000000, 40000000}, {40000000, 100000000}},
	},
	{
		Name:  "networth",
		Unit:  "USD",
		Emoji: "💎",
		format: func(v float64) string {
			switch {
			case v >= 1e12:
				return "$" + fixed(v/1e12, 1) + "T"
			case v >= 1e9:
				return "$" + fixed(v/1e9, 0) + "B"
			case v >= 1e6:
				return "$" + fixed(v/1e6, 0) + "M"
			}
			return "$" + grouped(v)
		},
		labels:       map[string]string{"P2218": "net worth"},
		defaultLabel: "net worth",
		Periods:      []Period{{0, 10000000000}, {10000000000, 100000000000}, {100000000000, 1000000000000}},
	},
	{
		Name:         "gamesales",
		Unit:         "copies",
		Emoji:        "🎮",
		format:       copies,
		labels:       map[string]string{"P2142": "sales"},
		defaultLabel: "sales",
		Periods:      []Period{{0, 50000000}, {50000000, 100000000}, {100000000, 500000000}},
	},
	{
		Name:  "followers",
		Unit:  "followers",
		Emoji: "👤",
		format: func(v float64) string {
			switch {
			case v >= 1e9:
				return fixed(v/1e9, 1) + "B"
			case v >= 1e6:
				return fixed(v/1e6, 0) + "M"
			case v >= 1e3:
				return fixed(v/1e3, 0) + "K"
			}
			return grouped(v)
		},
		labels:       map[string]string{"P8687": "followers"},
		defaultLabel: "followers",
		Periods:      []Period{{0, 100000000}, {100000000, 300000000}, {300000000, 1000000000}},
	},
	{
		Name:         "stadiums",
		Unit:         "seats",
		Emoji:        "🏟️",
		format:       func(v float64) string { return grouped(v) + " seats" },
		labels:       map[string]string{"P1083": "capacity"},
		defaultLabel: "capacity",
		Periods:      []Period{{0, 50000}, {50000, 80000}, {80000, 200000}},
	},
	{
		Name:         "horsepower",
		Unit:         "hp",
		Emoji:        "🏎️",
		format:       func(v float64) string { return grouped(v) + " hp" },
		labels:       map[string]string{"P2109": "horsepower"},
		defaultLabel: "horsepower",
		Periods:      []Period{{0, 300}, {300, 700}, {700, 2000}},
	},
	{
		Name:  "elevation",
		Unit:  "m",
		Emoji: "🏔️",
		format: func(v float64) string {
			if v >= 1000 {
				return fixed(v/1000, 2) + " km"
			}
			return grouped(v) + " m"
		},
		labels:       map[string]string{"P2044": "elevation"},
		defaultLabel: "elevation",
		Periods:      []Period{{0, 1000}, {1000, 2500}, {2500, 5000}},
	},
	{
		Name:         "founded",
		Unit:         "year",
		Emoji:        "🏛️",
		format:       jsNumber,
		labels:       map[string]string{"P571": "founded"},
		defaultLabel: "founded",
		Periods:      []Period{{0, 1900}, {1900, 1980}, {1980, 2030}},
	},
	{
		Name:  "oscars",
		Unit:  "wins",
		Emoji: "🏆",
		format: func(v float64) string {
			if v == 1 {
				return "1 win"
			}
			return jsNumber(v) + " wins"
		},
		labels:       map[string]string{"P166": "Oscar wins"},
		defaultLabel: "Oscar wins",
		Periods:      []Period{{0, 4}, {4, 8}, {8, 15}},
	},
	{
		Name:  "streams",
		Unit:  "streams",
		Emoji: "🎵",
		format: func(v float64) string {
			switch {
			case v >= 1e9:
				return fixed(v/1e9, 1) + "B"
			case v >= 1e6:
				return fixed(v/1e6, 0) + "M"
			}
			return grouped(v)
		},
		labels:       map[string]string{"P2142": "streams"},
		defaultLabel: "streams",
		Periods:      []Period{{0, 2000000000}, {2000000000, 4000000000}, {4000000000, 10000000000}},
	},
}

var byName = func() map[string]*Dimension {
	m := make(map[string]*Dimension, len(catalog))
	for _, d := range catalog {
		m[d.Name] = d
	}
	return m
}()

// Get returns the named dimension, or the default ("year") when unknown.
func Get(name string) *Dimension {
	if d, ok := byName[name]; ok {
		return d
	}
	return byName[Default]
}

// Lookup returns the named dimension and whether it exists.
func Lookup(name string) (*Dimension, bool) {
	d, ok := byName[name]
	return d, ok
}

// Names lists every catalog entry in declaration order.
func Names() []string {
	out := make([]string, len(catalog))
	for i, d := range catalog {
		out[i] = d.Name
	}
	return out
}

// EmojiFor returns the share symbol of a dimension name, or FallbackEmoji.
func EmojiFor(name string) string {
	if d, ok := byName[name]; ok && d.Emoji != "" {
		return d.Emoji
	}
	return FallbackEmoji
}

func copies(v float64) string {
	switch {
	case v >= 1e6:
		return fixed(v/1e6, 0) + "M copies"
	case v >= 1e3:
		return fixed(v/1e3, 0) + "K copies"
	}
	return grouped(v) + " copies"
}

// wholeOrFixed prints n as "2 hrs" when whole and "2.5 hrs" otherwise.
func wholeOrFixed(n float64, one, many string) string {
	if n == math.Floor(n) {
		return jsNumber(n) + " " + plural(n, one)
	}
	return fixed(n, 1) + " " + many
}
