package game

// ProjectileKind distinguishes the two projectile behaviors.
type ProjectileKind int

const (
	ProjectileBullet ProjectileKind = iota // direct damage, may ricochet
	ProjectileSplash                       // area damage, never ricochets
)

func (k ProjectileKind) String() string {
	switch k {
	case ProjectileBullet:
		return "bullet"
	case ProjectileSplash:
		return "splash"
	default:
		return "unknown"
	}
}

// ProjectileDetails is the closed projectile variant: a bullet with a
// ricochet budget, or a splash charge with a blast radius and per-tile
// damage falloff.
type ProjectileDetails struct {
	Kind        ProjectileKind
	Damage      int
	Ricochets   int     // bullet only: bounce budget
	BlastRadius int     // splash only: radius in tiles
	Falloff     float64 // splash only: damage multiplier per tile of distance
}

// CanRicochet reports whether this projectile reflects off obstacles.
func (p ProjectileDetails) CanRicochet() bool {
	return p.Kind == ProjectileBullet && p.Ricochets > 0
}

// CharacterClass selects a character's stat line and weapon.
type CharacterClass int

const (
	ClassScout      CharacterClass = iota // fast, fragile, weak straight shot
	ClassSoldier                          // balanced, one-bounce shot
	ClassDemolition                       // slow, splash weapon, no fire after moving
)

func (c CharacterClass) String() string {
	switch c {
	case ClassScout:
		return "scout"
	case ClassSoldier:
		return "soldier"
	case ClassDemolition:
		return "demolition"
	default:
		return "unknown"
	}
}

// ClassStats is the static stat line for one character class.
type ClassStats struct {
	MaxHealth     int
	MovesPerTurn  int
	Weapon        ProjectileDetails
	FireAfterMove bool // false: moving forfeits this turn's shot
}

// StatsFor returns the stat line for a class.
func StatsFor(c CharacterClass) ClassStats {
	switch c {
	case ClassScout:
		return ClassStats{
			MaxHealth:     8,
			MovesPerTurn:  6,
			Weapon:        ProjectileDetails{Kind: ProjectileBullet, Damage: 3},
			FireAfterMove: true,
		}
	case ClassSoldier:
		return ClassStats{
			MaxHealth:     10,
			MovesPerTurn:  4,
			Weapon:        ProjectileDetails{Kind: ProjectileBullet, Damage: 5, Ricochets: 1},
			FireAfterMove: true,
		}
	case ClassDemolition:
		return ClassStats{
			MaxHealth:     12,
			MovesPerTurn:  3,
			Weapon:        ProjectileDetails{Kind: ProjectileSplash, Damage: 10, BlastRadius: 1, Falloff: 0.5},
			FireAfterMove: false,
		}
	default:
		return StatsFor(ClassSoldier)
	}
}
