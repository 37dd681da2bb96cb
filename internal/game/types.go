// internal/game/types.go
//
// Core type definitions for the timeline game engine.
// Defines:
//   - Status: lifecycle of a session (not_started → playing → game_over).
//   - Mode: regular (random draws) or daily (pre-generated queue).
//   - Placement: the scorer's verdict on one drop.
//   - BadlyPlaced: UI feedback describing the latest incorrect drop.

package game

import "errors"

// Status is the coarse lifecycle state of a session.
type Status string

const (
	StatusNotStarted Status = "not_started"
	StatusPlaying    Status = "playing"
	StatusGameOver   Status = "game_over"
)

// Mode selects how the lookahead is refilled.
type Mode string

const (
	ModeRegular Mode = "regular"
	ModeDaily   Mode = "daily"
)

// StartingLives is the number of incorrect drops a player can absorb.
const StartingLives = 3

// Placement is the result of scoring one drop.
// Delta is the signed number of slots between the proposed and correct index.
type Placement struct {
	Correct bool `json:"correct"`
	Delta   int  `json:"delta"`
}

// BadlyPlaced describes the most recent incorrect drop.
// Rendered is a presentation sync flag and has no game meaning.
type BadlyPlaced struct {
	Index    int  `json:"index"`
	Delta    int  `json:"delta"`
	Rendered bool `json:"rendered"`
}

var (
	ErrPoolTooSmall    = errors.New("game: pool needs at least two items")
	ErrNotStarted      = errors.New("game: not started")
	ErrNotPlaying      = errors.New("game: not in progress")
	ErrIndexOutOfRange = errors.New("game: index out of range")
)
