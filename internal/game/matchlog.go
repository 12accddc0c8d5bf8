package game

import (
	"fmt"
	"strings"
)

// MatchLogEntry is one recorded match event.
type MatchLogEntry struct {
	Turn      int
	Character int    // arena index, -1 for team/global events
	Team      int    // -1 for global events
	Category  string // placement, move, shot, damage, ability, flag, turn, phase, match
	Key       string
	Value     string
}

// String formats the entry as a fixed-width log line.
//
//	[T=003] #2  team1 shot      ricochet   off 6,3 budget=0
func (e MatchLogEntry) String() string {
	who := "--"
	if e.Character >= 0 {
		who = fmt.Sprintf("#%d", e.Character)
	}
	team := "--"
	if e.Team >= 0 {
		team = fmt.Sprintf("team%d", e.Team)
	}
	return fmt.Sprintf("[T=%03d] %-4s %-6s %-9s %-14s %s",
		e.Turn, who, team, e.Category, e.Key, e.Value)
}

// MatchLog collects structured match events. Unbounded and
// machine-readable, for the report builder and tests.
type MatchLog struct {
	entries []MatchLogEntry
}

// NewMatchLog creates an empty log.
func NewMatchLog() *MatchLog {
	return &MatchLog{}
}

// Add records a new entry.
func (l *MatchLog) Add(turn, character, team int, category, key, value string) {
	l.entries = append(l.entries, MatchLogEntry{
		Turn:      turn,
		Character: character,
		Team:      team,
		Category:  category,
		Key:       key,
		Value:     value,
	})
}

// Entries returns all recorded entries in order.
func (l *MatchLog) Entries() []MatchLogEntry { return l.entries }

// Filter returns the entries matching category (and key, unless empty).
func (l *MatchLog) Filter(category, key string) []MatchLogEntry {
	var out []MatchLogEntry
	for _, e := range l.entries {
		if e.Category != category {
			continue
		}
		if key != "" && e.Key != key {
			continue
		}
		out = append(out, e)
	}
	return out
}

// Count returns how many entries match category/key.
func (l *MatchLog) Count(category, key string) int {
	return len(l.Filter(category, key))
}

// Dump returns the whole log as one printable block.
func (l *MatchLog) Dump() string {
	var b strings.Builder
	for _, e := range l.entries {
		b.WriteString(e.String())
		b.WriteByte('\n')
	}
	return b.String()
}
