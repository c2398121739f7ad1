// Command headless-report plays every level with the autopilot at a fixed
// 60 Hz tick and prints per-run outcomes plus per-level aggregates drawn
// from the simulation log.
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/Garsondee/Quiz-Pursuit/internal/content"
	"github.com/Garsondee/Quiz-Pursuit/internal/game"
)

type runStats struct {
	levelIndex int
	levelName  string
	runIndex   int
	seed       int64
	summary    game.RunSummary
}

type levelAggregate struct {
	levelIndex int
	levelName  string
	runs       int
	cleared    int
	died       int
	timeouts   int
	clearTicks []int
	deaths     int
	incorrect  int
	shots      int
	hits       int
	pickups    int
	noPath     int
}

func main() {
	cmd := &cli.Command{
		Name:  "headless-report",
		Usage: "autopilot balance report for a level pack",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "runs", Value: 5, Usage: "runs per level"},
			&cli.IntFlag{Name: "ticks", Value: 3600, Usage: "tick budget per run"},
			&cli.Int64Flag{Name: "seed-base", Value: 42, Usage: "base RNG seed for run 1"},
			&cli.Int64Flag{Name: "seed-step", Value: 1, Usage: "seed increment between runs"},
			&cli.IntFlag{Name: "max-deaths", Value: 3, Usage: "deaths that end a run (0 = no limit)"},
			&cli.StringFlag{Name: "levels", Usage: "directory of YAML level packs (default: embedded pack)"},
			&cli.BoolFlag{Name: "quiet", Usage: "only print the aggregate"},
		},
		Action: run,
	}
	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}

func run(ctx context.Context, cmd *cli.Command) error {
	runs := cmd.Int("runs")
	ticks := cmd.Int("ticks")
	maxDeaths := cmd.Int("max-deaths")
	seedBase := cmd.Int64("seed-base")
	seedStep := cmd.Int64("seed-step")
	if runs <= 0 {
		return errors.New("--runs must be > 0")
	}
	if ticks <= 0 {
		return errors.New("--ticks must be > 0")
	}

	var src content.Source = content.EmbeddedSource{}
	if dir := cmd.String("levels"); dir != "" {
		src = content.DirSource{Dir: dir}
	}
	levels, err := src.Levels(ctx)
	if err != nil {
		return err
	}

	fmt.Printf("=== Headless Autopilot Report ===\n")
	fmt.Printf("levels=%d runs=%d ticks=%d max_deaths=%d seed_base=%d seed_step=%d\n\n",
		len(levels), runs, ticks, maxDeaths, seedBase, seedStep)

	all := make([]runStats, 0, len(levels)*runs)
	for li, desc := range levels {
		for r := 0; r < runs; r++ {
			seed := seedBase + int64(r)*seedStep
			rs, err := runLevel(li, desc, r+1, seed, ticks, maxDeaths)
			if err != nil {
				return err
			}
			all = append(all, rs)
			if !cmd.Bool("quiet") {
				printRun(rs)
			}
		}
	}
	printAggregate(aggregate(all))
	return nil
}

// runLevel plays one attempt until the level clears, the death limit is
// hit or the tick budget runs out.
func runLevel(levelIndex int, desc game.LevelDescriptor, runIndex int, seed int64, ticks, maxDeaths int) (runStats, error) {
	ts, err := game.NewTestSim(game.SimLevel(desc), game.SimSeed(seed))
	if err != nil {
		return runStats{}, fmt.Errorf("level %d: %w", levelIndex+1, err)
	}
	ap := game.NewAutopilot(ts.Engine)
	n := 0
	for n < ticks {
		ts.Step(ap.Next(game.SimDT))
		n++
		st := ts.Engine.State()
		if st.Cleared {
			break
		}
		if maxDeaths > 0 && st.Deaths >= maxDeaths {
			break
		}
	}
	return runStats{
		levelIndex: levelIndex,
		levelName:  desc.Name,
		runIndex:   runIndex,
		seed:       seed,
		summary:    game.SummarizeRun(ts.SimLog, n, maxDeaths),
	}, nil
}

func printRun(rs runStats) {
	s := rs.summary
	fmt.Printf("--- %s run %d (seed=%d) ---\n", rs.levelName, rs.runIndex, rs.seed)
	fmt.Printf("outcome=%s ticks=%d cleared_at=%d deaths=%d incorrect=%d\n",
		s.Outcome, s.Ticks, s.ClearedAt, s.Deaths, s.Incorrect)
	fmt.Printf("combat: shots=%d hits=%d hit_rate=%s pickups=%d\n",
		s.Shots, s.Hits, hitRate(s.Hits, s.Shots), s.Pickups)
	fmt.Printf("pathing: path_calcs=%d no_path=%d\n\n", s.PathCalcs, s.NoPathRuns)
}

// aggregate groups runs by level, keeping level order.
func aggregate(all []runStats) []levelAggregate {
	var out []levelAggregate
	byLevel := map[int]int{}
	for _, rs := range all {
		i, ok := byLevel[rs.levelIndex]
		if !ok {
			i = len(out)
			byLevel[rs.levelIndex] = i
			out = append(out, levelAggregate{levelIndex: rs.levelIndex, levelName: rs.levelName})
		}
		ag := &out[i]
		s := rs.summary
		ag.runs++
		switch s.Outcome {
		case game.OutcomeCleared:
			ag.cleared++
			ag.clearTicks = append(ag.clearTicks, s.ClearedAt)
		case game.OutcomeDied:
			ag.died++
		default:
			ag.timeouts++
		}
		ag.deaths += s.Deaths
		ag.incorrect += s.Incorrect
		ag.shots += s.Shots
		ag.hits += s.Hits
		ag.pickups += s.Pickups
		ag.noPath += s.NoPathRuns
	}
	return out
}

func printAggregate(levels []levelAggregate) {
	fmt.Println("=== Aggregate ===")
	var flagged []string
	for _, ag := range levels {
		fmt.Printf("%-10s clear=%d/%d died=%d timeout=%d avg_clear_tick=%s avg_deaths=%.1f avg_incorrect=%.1f hit_rate=%s avg_pickups=%.1f\n",
			ag.levelName, ag.cleared, ag.runs, ag.died, ag.timeouts,
			avgTickString(ag.clearTicks), avg(ag.deaths, ag.runs), avg(ag.incorrect, ag.runs),
			hitRate(ag.hits, ag.shots), avg(ag.pickups, ag.runs))
		if ag.cleared*2 < ag.runs {
			flagged = append(flagged, ag.levelName)
		}
	}
	if len(flagged) > 0 {
		fmt.Printf("\nlevels cleared in under half the runs: %s\n", strings.Join(flagged, ", "))
	}
}

func avg(sum int, n int) float64 {
	if n <= 0 {
		return 0
	}
	return float64(sum) / float64(n)
}

func avgTickString(vals []int) string {
	if len(vals) == 0 {
		return "n/a"
	}
	sum := 0
	for _, v := range vals {
		sum += v
	}
	return fmt.Sprintf("%.1f", float64(sum)/float64(len(vals)))
}

func hitRate(hits, shots int) string {
	if shots == 0 {
		return "n/a"
	}
	return fmt.Sprintf("%.0f%%", float64(hits)/float64(shots)*100)
}
