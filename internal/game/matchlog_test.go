package game

import (
	"strings"
	"testing"
)

func TestMatchLogFilterAndCount(t *testing.T) {
	l := NewMatchLog()
	l.Add(1, 0, 0, "shot", "fired", "angle=0.000 targets=1")
	l.Add(1, 2, 1, "damage", "taken", "5 -> hp 5")
	l.Add(2, 0, 0, "shot", "ricochet", "off 6,3 budget=0")
	l.Add(2, 0, 0, "shot", "fired", "angle=1.571 targets=2")

	if got := l.Count("shot", ""); got != 3 {
		t.Fatalf("shot entries = %d, want 3", got)
	}
	if got := l.Count("shot", "fired"); got != 2 {
		t.Fatalf("fired entries = %d, want 2", got)
	}
	if got := l.Filter("damage", "taken"); len(got) != 1 || got[0].Character != 2 {
		t.Fatalf("damage filter = %+v", got)
	}
	if got := l.Count("flag", ""); got != 0 {
		t.Fatalf("flag entries = %d, want 0", got)
	}
}

func TestMatchLogEntryString(t *testing.T) {
	e := MatchLogEntry{Turn: 3, Character: 2, Team: 1, Category: "shot", Key: "ricochet", Value: "off 6,3"}
	s := e.String()
	for _, want := range []string{"[T=003]", "#2", "team1", "ricochet"} {
		if !strings.Contains(s, want) {
			t.Fatalf("entry %q missing %q", s, want)
		}
	}

	// Global events carry no character or team.
	g := MatchLogEntry{Turn: 1, Character: -1, Team: -1, Category: "phase", Key: "combat"}
	if !strings.Contains(g.String(), "--") {
		t.Fatalf("global entry %q should use placeholders", g.String())
	}
}

func TestBuildReport(t *testing.T) {
	m := mustMatch(t,
		WithLevel(openLevel(10, 6)),
		WithCharacter(0, ClassSoldier, 0, 0),
		WithCharacter(1, ClassScout, 9, 0),
	)
	s := m.State
	s.damageCharacter(1, 100, 0)

	rep := BuildReport(s)
	for _, want := range []string{"winner: team 0", "team 0:", "team 1:", "down", "soldier"} {
		if !strings.Contains(rep, want) {
			t.Fatalf("report missing %q:\n%s", want, rep)
		}
	}
}
