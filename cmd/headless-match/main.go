package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/cjqian/SnagTheFlag/internal/game"
)

type runResult struct {
	runIndex int
	seed     int64
	winner   int
	decided  bool
	turns    int
	shots    int
	kills    int
	replayID string
}

func main() {
	var runs int
	var maxTurns int
	var seedBase int64
	var seedStep int64
	var difficulty string
	var replayDir string

	flag.IntVar(&runs, "runs", 5, "number of headless AI-vs-AI matches")
	flag.IntVar(&maxTurns, "max-turns", 200, "turn limit per match")
	flag.Int64Var(&seedBase, "seed-base", 42, "planner RNG seed for run 1")
	flag.Int64Var(&seedStep, "seed-step", 1, "seed increment between runs")
	flag.StringVar(&difficulty, "difficulty", "medium", "AI difficulty: easy | medium | hard")
	flag.StringVar(&replayDir, "replay", "", "directory to write msgpack replays (empty = off)")
	flag.Parse()

	if runs <= 0 {
		fmt.Println("error: -runs must be > 0")
		os.Exit(1)
	}
	diff, err := game.ParseDifficulty(difficulty)
	if err != nil {
		fmt.Printf("error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("=== Headless Match Report ===\n")
	fmt.Printf("runs=%d max_turns=%d difficulty=%s seed_base=%d seed_step=%d\n\n",
		runs, maxTurns, difficulty, seedBase, seedStep)

	var results []runResult
	for i := 0; i < runs; i++ {
		seed := seedBase + int64(i)*seedStep
		res, err := runMatch(i+1, seed, maxTurns, diff, replayDir)
		if err != nil {
			fmt.Printf("run %d: error: %v\n", i+1, err)
			os.Exit(1)
		}
		results = append(results, res)
		printRun(res)
	}
	printAggregate(results)
}

func runMatch(runIndex int, seed int64, maxTurns int, diff game.AIDifficulty, replayDir string) (runResult, error) {
	cfg := game.DefaultConfig()
	cfg.Difficulty = diff.String()
	cfg.MaxTurns = maxTurns

	opts := []game.MatchOption{
		game.WithConfig(cfg),
		game.WithLevel(game.DefaultLevel()),
		game.WithSeed(seed),
		game.WithAI(0, diff),
		game.WithAI(1, diff),
	}
	if replayDir != "" {
		opts = append(opts, game.WithReplay())
	}
	m, err := game.NewMatch(opts...)
	if err != nil {
		return runResult{}, err
	}

	// Generous frame budget: every turn is a handful of actions plus
	// animation frames.
	winner, decided := m.Run(maxTurns * 4000)

	res := runResult{
		runIndex: runIndex,
		seed:     seed,
		winner:   winner,
		decided:  decided,
		turns:    m.State.Turn,
	}
	for _, st := range m.State.Stats {
		res.shots += st.ShotsFired
		res.kills += st.Kills
	}

	if rec := m.State.Recorder; rec != nil {
		res.replayID = rec.ID()
		path := fmt.Sprintf("%s/%s.replay", replayDir, rec.ID())
		f, err := os.Create(path) // #nosec G304 -- operator-supplied output dir
		if err != nil {
			return res, err
		}
		defer f.Close()
		if err := rec.Encode(f); err != nil {
			return res, err
		}
	}
	return res, nil
}

func printRun(r runResult) {
	outcome := "draw (turn limit)"
	if r.decided {
		outcome = fmt.Sprintf("team %d wins", r.winner)
	}
	fmt.Printf("run %d  seed=%-4d %-18s turns=%-3d shots=%-3d kills=%d",
		r.runIndex, r.seed, outcome, r.turns, r.shots, r.kills)
	if r.replayID != "" {
		fmt.Printf("  replay=%s", r.replayID)
	}
	fmt.Println()
}

func printAggregate(results []runResult) {
	wins := map[int]int{}
	draws := 0
	totalTurns := 0
	for _, r := range results {
		if r.decided {
			wins[r.winner]++
		} else {
			draws++
		}
		totalTurns += r.turns
	}
	fmt.Printf("\n--- aggregate over %d runs ---\n", len(results))
	for team := 0; team < 2; team++ {
		fmt.Printf("team %d wins: %d\n", team, wins[team])
	}
	fmt.Printf("draws: %d\n", draws)
	fmt.Printf("mean turns: %.1f\n", float64(totalTurns)/float64(len(results)))
}
