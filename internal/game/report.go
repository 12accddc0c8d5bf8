package game

import (
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
)

// TeamStats accumulates per-team combat statistics across a match.
type TeamStats struct {
	ShotsFired  int
	Hits        int
	DamageDealt int
	Kills       int
}

// BuildReport renders a human-readable end-of-match report.
func BuildReport(s *GameState) string {
	var b strings.Builder
	b.WriteString("=== Snag The Flag: Match Report ===\n")
	fmt.Fprintf(&b, "turns: %d  phase: %s\n", s.Turn, s.Phase)
	if winner, ok := s.Winner(); ok {
		fmt.Fprintf(&b, "winner: team %d\n", winner)
	} else {
		b.WriteString("winner: undecided\n")
	}
	b.WriteByte('\n')

	for team := 0; team < s.Config.Teams; team++ {
		st := s.Stats[team]
		alive := len(s.TeamCharacters(team))
		fmt.Fprintf(&b, "team %d: alive=%d/%d shots=%d hits=%d damage=%d kills=%d\n",
			team, alive, s.Config.SquadSize, st.ShotsFired, st.Hits, st.DamageDealt, st.Kills)
	}
	b.WriteByte('\n')

	for i, c := range s.Characters {
		status := fmt.Sprintf("hp %d/%d", c.Health, c.Stats.MaxHealth)
		if !c.Alive() {
			status = "down"
		}
		flag := ""
		if c.HasFlag {
			flag = " [flag]"
		}
		fmt.Fprintf(&b, "  #%d team%d %-10s at %d,%d  %s%s\n",
			i, c.Team, c.Class, c.Tile.Col, c.Tile.Row, status, flag)
	}
	return b.String()
}

// CopyReportToClipboard puts the match report on the system clipboard.
func CopyReportToClipboard(s *GameState) error {
	return clipboard.WriteAll(BuildReport(s))
}
