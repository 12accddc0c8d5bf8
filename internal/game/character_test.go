package game

import "testing"

func TestClassLoadouts(t *testing.T) {
	scout := NewCharacter(0, T(0, 0), ClassScout)
	if scout.AbilityIndex(AbilityHeal) < 0 {
		t.Fatal("scout has no heal")
	}
	if !scout.Abilities[0].Free {
		t.Fatal("scout heal should be movement-compatible")
	}

	soldier := NewCharacter(0, T(0, 0), ClassSoldier)
	if soldier.AbilityIndex(AbilityGrenade) < 0 {
		t.Fatal("soldier has no grenade")
	}
	if soldier.Stats.Weapon.Ricochets != 1 {
		t.Fatalf("soldier ricochets = %d, want 1", soldier.Stats.Weapon.Ricochets)
	}

	demo := NewCharacter(0, T(0, 0), ClassDemolition)
	if demo.Stats.Weapon.Kind != ProjectileSplash {
		t.Fatal("demolition weapon is not splash")
	}
	if demo.Stats.FireAfterMove {
		t.Fatal("demolition must not fire after moving")
	}
}

func TestCanFire(t *testing.T) {
	scout := NewCharacter(0, T(0, 0), ClassScout)
	if !scout.CanFire() {
		t.Fatal("fresh character cannot fire")
	}
	scout.HasMoved = true
	if !scout.CanFire() {
		t.Fatal("scout should fire after moving")
	}
	scout.HasShot = true
	if scout.CanFire() {
		t.Fatal("character fired twice")
	}

	demo := NewCharacter(0, T(0, 0), ClassDemolition)
	demo.HasMoved = true
	if demo.CanFire() {
		t.Fatal("demolition fired after moving")
	}
}

func TestApplyHealClamps(t *testing.T) {
	c := NewCharacter(0, T(0, 0), ClassSoldier)
	c.ApplyDamage(4)
	c.ApplyHeal(100)
	if c.Health != c.Stats.MaxHealth {
		t.Fatalf("hp = %d, want clamped at %d", c.Health, c.Stats.MaxHealth)
	}
}

func TestResetTurnTicksCooldowns(t *testing.T) {
	c := NewCharacter(0, T(0, 0), ClassScout)
	c.HasMoved = true
	c.HasShot = true
	c.TurnOver = true
	c.Abilities[0].CooldownLeft = 2

	c.ResetTurn()
	if c.HasMoved || c.HasShot || c.TurnOver {
		t.Fatal("per-turn flags survived the reset")
	}
	if c.Abilities[0].CooldownLeft != 1 {
		t.Fatalf("cooldown = %d, want 1", c.Abilities[0].CooldownLeft)
	}
	if c.FreeAbilityReady() {
		t.Fatal("ability on cooldown reported ready")
	}
	c.ResetTurn()
	if !c.FreeAbilityReady() {
		t.Fatal("ability should be ready once the cooldown expires")
	}
}
