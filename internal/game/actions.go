package game

import "fmt"

// Action is the closed set of requests the state machine accepts. Dispatch
// is exhaustive: an unhandled variant is a programming fault and panics.
type Action interface {
	isAction()
	String() string
}

// PlaceCharacterAction spawns a character on a legal placement tile.
type PlaceCharacterAction struct {
	Tile  TileCoord
	Class CharacterClass
}

// SelectCharacterAction selects a live, not-yet-finished character of the
// current team by arena index.
type SelectCharacterAction struct {
	Index int
}

// SelectCharacterStateAction moves the selected character into a sub-state
// (moving, aiming, throwing a grenade).
type SelectCharacterStateAction struct {
	State CharacterSubState
}

// SelectTileAction commits the pending sub-state to a tile: movement
// destination or grenade target.
type SelectTileAction struct {
	Tile TileCoord
}

// AimAction sets the selected character's aim angle (radians).
type AimAction struct {
	Angle float64
}

// ShootAction fires the selected character's weapon along its aim angle.
type ShootAction struct{}

// HealAction uses the selected character's heal ability on itself.
type HealAction struct{}

// EndTurnAction finishes the selected character's turn, or the whole
// team's when nothing is selected.
type EndTurnAction struct{}

func (PlaceCharacterAction) isAction()      {}
func (SelectCharacterAction) isAction()     {}
func (SelectCharacterStateAction) isAction() {}
func (SelectTileAction) isAction()          {}
func (AimAction) isAction()                 {}
func (ShootAction) isAction()               {}
func (HealAction) isAction()                {}
func (EndTurnAction) isAction()             {}

func (a PlaceCharacterAction) String() string {
	return fmt.Sprintf("place %s at %d,%d", a.Class, a.Tile.Col, a.Tile.Row)
}
func (a SelectCharacterAction) String() string { return fmt.Sprintf("select #%d", a.Index) }
func (a SelectCharacterStateAction) String() string {
	return fmt.Sprintf("sub-state %s", a.State)
}
func (a SelectTileAction) String() string { return fmt.Sprintf("tile %d,%d", a.Tile.Col, a.Tile.Row) }
func (a AimAction) String() string        { return fmt.Sprintf("aim %.3f", a.Angle) }
func (ShootAction) String() string        { return "shoot" }
func (HealAction) String() string         { return "heal" }
func (EndTurnAction) String() string      { return "end turn" }

// IllegalActionError rejects an action at the state-machine boundary
// before any mutation. Non-fatal and user-correctable.
type IllegalActionError struct {
	Reason string
}

func (e *IllegalActionError) Error() string { return "illegal action: " + e.Reason }

func illegalf(format string, args ...any) error {
	return &IllegalActionError{Reason: fmt.Sprintf(format, args...)}
}
