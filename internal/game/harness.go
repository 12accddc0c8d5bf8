package game

import "fmt"

// Match is a headless harness around GameState: it owns the per-team AI
// planners and drives the frame loop without any Ebiten dependency. Used
// by tests and cmd/headless-match. Construction mirrors the frontend:
// options are applied in ordered passes (infrastructure, then characters,
// then planners).

type matchOptionKind int

const (
	optInfra     matchOptionKind = iota // config, level, seed, replay
	optCharacter                        // pre-placed characters (skips placement phase)
	optPlanner                          // AI planners
)

// MatchOption is a builder function applied to a Match during construction.
type MatchOption struct {
	kind matchOptionKind
	fn   func(*Match)
}

// WithConfig sets the match configuration.
func WithConfig(cfg MatchConfig) MatchOption {
	return MatchOption{optInfra, func(m *Match) { m.cfg = cfg }}
}

// WithLevel sets the level data.
func WithLevel(level LevelData) MatchOption {
	return MatchOption{optInfra, func(m *Match) { m.level = level }}
}

// WithSeed sets the base RNG seed for the planners.
func WithSeed(seed int64) MatchOption {
	return MatchOption{optInfra, func(m *Match) { m.seed = seed }}
}

// WithReplay enables replay recording.
func WithReplay() MatchOption {
	return MatchOption{optInfra, func(m *Match) { m.record = true }}
}

// WithCharacter pre-places a character, bypassing the placement phase.
// Using any WithCharacter option starts the match directly in combat.
func WithCharacter(team int, class CharacterClass, col, row int) MatchOption {
	return MatchOption{optCharacter, func(m *Match) {
		m.State.Characters = append(m.State.Characters, NewCharacter(team, T(col, row), class))
		m.State.placed[team]++
	}}
}

// WithAI attaches a planner to a team. Teams without one are driven
// externally (by tests or by the human player).
func WithAI(team int, d AIDifficulty) MatchOption {
	return MatchOption{optPlanner, func(m *Match) {
		m.Planners[team] = NewAIPlanner(team, d, m.seed+int64(team))
	}}
}

// Match drives one headless game.
type Match struct {
	State    *GameState
	Planners map[int]*AIPlanner

	cfg    MatchConfig
	level  LevelData
	seed   int64
	record bool
}

// NewMatch constructs a match from options in three ordered passes:
// infrastructure, pre-placed characters, planners.
func NewMatch(opts ...MatchOption) (*Match, error) {
	m := &Match{
		Planners: make(map[int]*AIPlanner),
		cfg:      DefaultConfig(),
		level:    DefaultLevel(),
		seed:     1,
	}
	for _, o := range opts {
		if o.kind == optInfra {
			o.fn(m)
		}
	}

	state, err := NewGameState(m.cfg, m.level)
	if err != nil {
		return nil, err
	}
	m.State = state
	if m.record {
		state.Recorder = NewReplayRecorder(m.cfg, m.level)
	}

	placedAny := false
	for _, o := range opts {
		if o.kind == optCharacter {
			o.fn(m)
			placedAny = true
		}
	}
	if placedAny {
		m.State.beginCombat()
	}

	for _, o := range opts {
		if o.kind == optPlanner {
			o.fn(m)
		}
	}
	return m, nil
}

// Step runs one frame: advance animation, then (when idle and it is an
// AI team's turn) pull and apply exactly one planner action. This is the
// same cadence the frontend uses.
func (m *Match) Step() {
	m.State.Tick()
	if m.State.IsAnimating() {
		return
	}
	if _, over := m.State.Winner(); over {
		return
	}
	planner, ok := m.Planners[m.State.CurrentTeam]
	if !ok {
		return
	}
	act := planner.NextAction(m.State)
	if err := m.State.OnAction(act); err != nil {
		// A queued action went stale; drop the queue and replan next frame.
		planner.Reset()
		m.State.Log.Add(m.State.Turn, -1, m.State.CurrentTeam, "ai", "rejected",
			fmt.Sprintf("%s: %v", act, err))
	}
}

// RunUntilIdle ticks animation to completion without issuing actions.
func (m *Match) RunUntilIdle() {
	for m.State.IsAnimating() {
		m.State.Tick()
	}
}

// Run steps frames until the match is decided, the configured turn limit
// is passed, or maxFrames elapses. Returns the winner, if any.
func (m *Match) Run(maxFrames int) (int, bool) {
	for frame := 0; frame < maxFrames; frame++ {
		if w, ok := m.State.Winner(); ok {
			m.RunUntilIdle()
			return w, true
		}
		if m.cfg.MaxTurns > 0 && m.State.Turn > m.cfg.MaxTurns {
			return -1, false
		}
		m.Step()
	}
	return m.State.Winner()
}
