// Package assets embeds the default card data so the server runs without
// a DATA_DIR.
package assets

import "embed"

// FS holds dimensions.json, bad_cards.json and data/*.jsonl.
//
//go:embed dimensions.json bad_cards.json data/*.jsonl
var FS embed.FS
