package game

import (
	"fmt"
	"io"

	"github.com/google/uuid"
	"github.com/vmihailenco/msgpack/v5"
)

// Replay is a recorded match: one full-state snapshot per team turn plus
// the final position. Encoded with msgpack; compact enough to keep for
// every headless run.
type Replay struct {
	ID        string           `msgpack:"id"`
	Cols      int              `msgpack:"cols"`
	Rows      int              `msgpack:"rows"`
	Teams     int              `msgpack:"teams"`
	Obstacles []TileCoord      `msgpack:"obstacles"`
	Snapshots []ReplaySnapshot `msgpack:"snapshots"`
	Winner    int              `msgpack:"winner"` // -1 while undecided
}

// ReplaySnapshot captures the mutable match state at one moment.
type ReplaySnapshot struct {
	Turn       int               `msgpack:"turn"`
	Team       int               `msgpack:"team"`
	Phase      int               `msgpack:"phase"`
	Characters []ReplayCharacter `msgpack:"characters"`
	Flags      []ReplayFlag      `msgpack:"flags"`
}

// ReplayCharacter is the serialized per-character state.
type ReplayCharacter struct {
	Team    int    `msgpack:"team"`
	Class   string `msgpack:"class"`
	Col     int    `msgpack:"col"`
	Row     int    `msgpack:"row"`
	Health  int    `msgpack:"health"`
	HasFlag bool   `msgpack:"hasFlag,omitempty"`
}

// ReplayFlag is the serialized per-flag state.
type ReplayFlag struct {
	Team    int  `msgpack:"team"`
	Col     int  `msgpack:"col"`
	Row     int  `msgpack:"row"`
	Carried bool `msgpack:"carried,omitempty"`
}

// ReplayRecorder accumulates snapshots during a match. Attach one to
// GameState.Recorder to enable recording.
type ReplayRecorder struct {
	replay Replay
}

// NewReplayRecorder creates a recorder with a fresh match ID.
func NewReplayRecorder(cfg MatchConfig, level LevelData) *ReplayRecorder {
	return &ReplayRecorder{replay: Replay{
		ID:        uuid.NewString(),
		Cols:      level.Cols,
		Rows:      level.Rows,
		Teams:     cfg.Teams,
		Obstacles: level.Obstacles,
		Winner:    -1,
	}}
}

// ID returns the match identifier.
func (r *ReplayRecorder) ID() string { return r.replay.ID }

// Snapshot records the current match state. The state machine calls this
// at combat start, at each turn boundary, and when a winner is decided.
func (r *ReplayRecorder) Snapshot(s *GameState) {
	snap := ReplaySnapshot{
		Turn:  s.Turn,
		Team:  s.CurrentTeam,
		Phase: int(s.Phase),
	}
	for _, c := range s.Characters {
		snap.Characters = append(snap.Characters, ReplayCharacter{
			Team:    c.Team,
			Class:   c.Class.String(),
			Col:     c.Tile.Col,
			Row:     c.Tile.Row,
			Health:  c.Health,
			HasFlag: c.HasFlag,
		})
	}
	for _, f := range s.Flags {
		snap.Flags = append(snap.Flags, ReplayFlag{
			Team:    f.Team,
			Col:     f.Tile.Col,
			Row:     f.Tile.Row,
			Carried: f.Carried(),
		})
	}
	r.replay.Snapshots = append(r.replay.Snapshots, snap)
	if w, ok := s.Winner(); ok {
		r.replay.Winner = w
	}
}

// SnapshotCount returns how many snapshots were recorded.
func (r *ReplayRecorder) SnapshotCount() int { return len(r.replay.Snapshots) }

// Encode writes the recorded replay as msgpack.
func (r *ReplayRecorder) Encode(w io.Writer) error {
	if err := msgpack.NewEncoder(w).Encode(&r.replay); err != nil {
		return fmt.Errorf("replay: encode: %w", err)
	}
	return nil
}

// DecodeReplay reads a msgpack-encoded replay.
func DecodeReplay(rd io.Reader) (*Replay, error) {
	var rep Replay
	if err := msgpack.NewDecoder(rd).Decode(&rep); err != nil {
		return nil, fmt.Errorf("replay: decode: %w", err)
	}
	return &rep, nil
}
