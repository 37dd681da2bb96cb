// internal/pool/pool.go
//
// Card pools per dimension.
//
// Responsibilities:
//   - Read the dimension config {dimensions:[{name,displayName,dataFile}], default}.
//   - Load a dimension's NDJSON data file on first use and keep it cached.
//   - Apply items.Filter with the bad-card list before the pool is handed out.
//
// Sources:
//   1. DATA_DIR, when set: dimensions.json, bad_cards.json and data files on disk.
//   2. Otherwise the embedded assets.FS.
//
// A missing dimensions.json falls back to a year-only config; a missing
// bad_cards.json means no ids are excluded.
package pool

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"slices"
	"sync"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/singleflight"

	"github.com/robalobadob/timeline/assets"
	"github.com/robalobadob/timeline/internal/dimension"
	"github.com/robalobadob/timeline/internal/items"
)

const (
	configFile   = "dimensions.json"
	badCardsFile = "bad_cards.json"
)

var ErrUnknownDimension = errors.New("pool: unknown dimension")

// Meta describes one playable dimension.
type Meta struct {
	Name        string `json:"name"`
	DisplayName string `json:"displayName"`
	DataFile    string `json:"dataFile"`
}

// Config is the parsed dimensions.json.
type Config struct {
	Dimensions []Meta `json:"dimensions"`
	Default    string `json:"default"`
}

// fallbackConfig is used when no dimensions.json can be read.
var fallbackConfig = Config{
	Dimensions: []Meta{{Name: dimension.Default, DisplayName: "Year", DataFile: "data/year.jsonl"}},
	Default:    dimension.Default,
}

// Library serves filtered pools. Safe for concurrent use.
type Library struct {
	fsys fs.FS
	cfg  Config
	bad  map[string]struct{}

	mu    sync.RWMutex
	pools map[string][]items.Item
	group singleflight.Group
}

// Open reads from dataDir, or from the embedded assets when dataDir is empty.
func Open(dataDir string) (*Library, error) {
	var fsys fs.FS = assets.FS
	if dataDir != "" {
		fsys = os.DirFS(dataDir)
	}
	return New(fsys)
}

// New builds a library over any filesystem laid out like assets.FS.
func New(fsys fs.FS) (*Library, error) {
	cfg, err := readConfig(fsys)
	if err != nil {
		return nil, err
	}
	bad, err := readBadCards(fsys)
	if err != nil {
		return nil, err
	}
	log.Info().Strs("dimensions", namesOf(cfg)).Str("default", cfg.Default).Int("badCards", len(bad)).Msg("card library ready")
	return &Library{fsys: fsys, cfg: cfg, bad: bad, pools: make(map[string][]items.Item)}, nil
}

func readConfig(fsys fs.FS) (Config, error) {
	raw, err := fs.ReadFile(fsys, configFile)
	if errors.Is(err, fs.ErrNotExist) {
		log.Warn().Msg("no dimensions.json, serving year only")
		return fallbackConfig, nil
	}
	if err != nil {
		return Config{}, fmt.Errorf("read %s: %w", configFile, err)
	}
	var cfg Config
	if err := json.Unmarshal(raw, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse %s: %w", configFile, err)
	}
	if len(cfg.Dimensions) == 0 {
		return fallbackConfig, nil
	}
	if cfg.Default == "" || !slices.ContainsFunc(cfg.Dimensions, func(m Meta) bool { return m.Name == cfg.Default }) {
		cfg.Default = cfg.Dimensions[0].Name
	}
	return cfg, nil
}

// readBadCards accepts an object keyed by id; the values are free-form notes.
func readBadCards(fsys fs.FS) (map[string]struct{}, error) {
	raw, err := fs.ReadFile(fsys, badCardsFile)
	if errors.Is(err, fs.ErrNotExist) {
		return map[string]struct{}{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", badCardsFile, err)
	}
	var notes map[string]json.RawMessage
	if err := json.Unmarshal(raw, &notes); err != nil {
		return nil, fmt.Errorf("parse %s: %w", badCardsFile, err)
	}
	bad := make(map[string]struct{}, len(notes))
	for id := range notes {
		bad[id] = struct{}{}
	}
	return bad, nil
}

func namesOf(cfg Config) []string {
	out := make([]string, len(cfg.Dimensions))
	for i, m := range cfg.Dimensions {
		out[i] = m.Name
	}
	return out
}

// Config returns the dimension config in file order.
func (l *Library) Config() Config { return l.cfg }

// Names lists configured dimension names in file order. The daily
// dimension pick depends on this order.
func (l *Library) Names() []string { return namesOf(l.cfg) }

// Default is the dimension used when a request names none.
func (l *Library) Default() string { return l.cfg.Default }

func (l *Library) meta(name string) (Meta, bool) {
	i := slices.IndexFunc(l.cfg.Dimensions, func(m Meta) bool { return m.Name == name })
	if i < 0 {
		return Meta{}, false
	}
	return l.cfg.Dimensions[i], true
}

// Pool returns the filtered cards for name together with its Dimension.
// The returned slice is shared; callers must not modify it.
func (l *Library) Pool(name string) ([]items.Item, *dimension.Dimension, error) {
	m, ok := l.meta(name)
	if !ok {
		return nil, nil, fmt.Errorf("%w: %q", ErrUnknownDimension, name)
	}
	dim := dimension.Get(name)

	l.mu.RLock()
	cached, ok := l.pools[name]
	l.mu.RUnlock()
	if ok {
		return cached, dim, nil
	}

	v, err, _ := l.group.Do(name, func() (any, error) {
		list, err := l.load(m, dim)
		if err != nil {
			return nil, err
		}
		l.mu.Lock()
		l.pools[name] = list
		l.mu.Unlock()
		return list, nil
	})
	if err != nil {
		return nil, nil, err
	}
	return v.([]items.Item), dim, nil
}

func (l *Library) load(m Meta, dim *dimension.Dimension) ([]items.Item, error) {
	f, err := l.fsys.Open(m.DataFile)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", m.DataFile, err)
	}
	defer f.Close()

	list, err := items.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", m.DataFile, err)
	}
	kept := items.Filter(list, dim, l.bad)
	log.Info().Str("dimension", m.Name).Int("read", len(list)).Int("kept", len(kept)).Msg("pool loaded")
	return kept, nil
}
