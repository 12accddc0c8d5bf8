package game

// AbilityKind distinguishes the closed ability variants.
type AbilityKind int

const (
	AbilityHeal    AbilityKind = iota // restore health to self
	AbilityGrenade                    // thrown splash charge
)

func (k AbilityKind) String() string {
	switch k {
	case AbilityHeal:
		return "heal"
	case AbilityGrenade:
		return "grenade"
	default:
		return "unknown"
	}
}

// Ability is a tagged variant: the payload fields that apply depend on Kind.
// Matched explicitly, never searched-and-cast.
type Ability struct {
	Kind         AbilityKind
	HealAmount   int               // heal only
	Grenade      ProjectileDetails // grenade only: splash parameters
	MaxRange     int               // grenade only: throw range in tiles
	UsesLeft     int
	Cooldown     int // turns between uses
	CooldownLeft int
	Free         bool // usable without consuming the turn's move or shot
}

// Ready reports whether the ability can be used right now.
func (a Ability) Ready() bool { return a.UsesLeft > 0 && a.CooldownLeft == 0 }

// Character is one squad member. Dead characters stay in the backing slice
// (stable identity for UI addressing) and are excluded from alive queries.
type Character struct {
	Team      int
	Tile      TileCoord
	Class     CharacterClass
	Stats     ClassStats
	Health    int
	AimAngle  float64
	HasMoved  bool
	HasShot   bool
	TurnOver  bool
	HasFlag   bool // carrying the enemy flag
	Abilities []Ability

	anim MoveAnim // presentation-only interpolation state
}

// NewCharacter creates a character of the given class at a tile.
func NewCharacter(team int, tile TileCoord, class CharacterClass) *Character {
	stats := StatsFor(class)
	c := &Character{
		Team:   team,
		Tile:   tile,
		Class:  class,
		Stats:  stats,
		Health: stats.MaxHealth,
	}
	switch class {
	case ClassScout:
		c.Abilities = []Ability{{
			Kind: AbilityHeal, HealAmount: 3, UsesLeft: 2, Cooldown: 2, Free: true,
		}}
	case ClassSoldier:
		c.Abilities = []Ability{{
			Kind:     AbilityGrenade,
			Grenade:  ProjectileDetails{Kind: ProjectileSplash, Damage: 6, BlastRadius: 1, Falloff: 0.5},
			MaxRange: 4,
			UsesLeft: 1,
			Cooldown: 1,
		}}
	case ClassDemolition:
		c.Abilities = []Ability{{
			Kind: AbilityHeal, HealAmount: 4, UsesLeft: 1, Cooldown: 3, Free: true,
		}}
	}
	return c
}

// Alive reports whether the character is still in play.
func (c *Character) Alive() bool { return c.Health > 0 }

// ApplyDamage reduces health, clamped at zero. Dead characters never go
// negative and are never resurrected.
func (c *Character) ApplyDamage(dmg int) {
	if !c.Alive() || dmg <= 0 {
		return
	}
	c.Health -= dmg
	if c.Health < 0 {
		c.Health = 0
	}
}

// ApplyHeal restores health, clamped at the class maximum.
func (c *Character) ApplyHeal(amount int) {
	if !c.Alive() || amount <= 0 {
		return
	}
	c.Health += amount
	if c.Health > c.Stats.MaxHealth {
		c.Health = c.Stats.MaxHealth
	}
}

// CanFire reports whether the character may still shoot this turn.
func (c *Character) CanFire() bool {
	if c.HasShot {
		return false
	}
	if c.HasMoved && !c.Stats.FireAfterMove {
		return false
	}
	return true
}

// FreeAbilityReady reports whether any movement-compatible ability is still
// usable. A character holding one is not auto turn-over'd.
func (c *Character) FreeAbilityReady() bool {
	for _, a := range c.Abilities {
		if a.Free && a.Ready() {
			return true
		}
	}
	return false
}

// AbilityIndex returns the index of the first ability of the given kind,
// or -1.
func (c *Character) AbilityIndex(kind AbilityKind) int {
	for i, a := range c.Abilities {
		if a.Kind == kind {
			return i
		}
	}
	return -1
}

// ResetTurn clears per-turn flags and ticks ability cooldowns. Health and
// position persist across turns.
func (c *Character) ResetTurn() {
	c.HasMoved = false
	c.HasShot = false
	c.TurnOver = false
	for i := range c.Abilities {
		if c.Abilities[i].CooldownLeft > 0 {
			c.Abilities[i].CooldownLeft--
		}
	}
}

// Center returns the canvas-space center of the character, following the
// movement interpolation while one is active.
func (c *Character) Center(g Grid) Vec {
	if c.anim.Active() {
		return c.anim.Pos()
	}
	return g.TileCenter(c.Tile)
}

// IsAnimating reports whether a presentation interpolation is in flight.
func (c *Character) IsAnimating() bool { return c.anim.Active() }
