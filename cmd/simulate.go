package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"math/rand/v2"
	"slices"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/abhisek/algebriz/internal/mastery"
	"github.com/abhisek/algebriz/internal/problemgen"
	"github.com/abhisek/algebriz/internal/steps"
	"github.com/abhisek/algebriz/internal/tutor"
)

// maxTriesPerStep stops a simulated learner from looping forever at
// error rates close to 1.
const maxTriesPerStep = 20

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Run simulated learners concurrently against one engine",
	Long: "Simulate drives N learners through M problems each. At every step a\n" +
		"learner picks a wrong option with the given probability, retrying until\n" +
		"correct. Learners move up a level once ready.",
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		var sc simConfig
		f := cmd.Flags()
		sc.Learners, _ = f.GetInt("learners")
		sc.Problems, _ = f.GetInt("problems")
		sc.ErrorRate, _ = f.GetFloat64("error-rate")
		sc.Workers, _ = f.GetInt("workers")
		sc.Seed, _ = f.GetUint64("seed")
		journal, _ := f.GetBool("journal")
		if err := sc.validate(); err != nil {
			return err
		}

		logger := newLogger(cfg)
		ecfg := tutor.Config{
			Generator: problemgen.NewRandomGenerator(rand.New(rand.NewPCG(sc.Seed, 1))),
			Sequencer: steps.NewSequencer(rand.New(rand.NewPCG(sc.Seed, 2))),
			Logger:    logger,
		}
		if journal {
			st, err := openStore(cfg)
			if err != nil {
				return err
			}
			defer st.Close()
			ecfg.Events = st.EventRepo()
			ecfg.Snapshots = st.SnapshotRepo()
		}

		results, err := simulate(cmd.Context(), tutor.NewEngine(ecfg), sc, logger)
		if err != nil {
			return err
		}
		printSimulation(cmd.OutOrStdout(), results)
		return nil
	},
}

func init() {
	f := simulateCmd.Flags()
	f.Int("learners", 8, "Number of simulated learners")
	f.Int("problems", 10, "Problems per learner")
	f.Float64("error-rate", 0.3, "Probability of picking a wrong option, in [0,1)")
	f.Int("workers", 4, "Learners simulated at once")
	f.Uint64("seed", 1, "Random seed")
	f.Bool("journal", false, "Record simulated attempts in the journal")
}

type simConfig struct {
	Learners  int
	Problems  int
	ErrorRate float64
	Workers   int
	Seed      uint64
}

func (c simConfig) validate() error {
	switch {
	case c.Learners < 1:
		return fmt.Errorf("--learners must be at least 1")
	case c.Problems < 1:
		return fmt.Errorf("--problems must be at least 1")
	case c.ErrorRate < 0 || c.ErrorRate >= 1:
		return fmt.Errorf("--error-rate must be within [0,1), got %v", c.ErrorRate)
	case c.Workers < 1:
		return fmt.Errorf("--workers must be at least 1")
	}
	return nil
}

type simResult struct {
	Learner  string
	Solved   int
	Attempts int
	Correct  int
	Level    int
	Snapshot mastery.Snapshot
}

// simulate runs every learner on its own goroutine, bounded by Workers.
// The first engine error cancels the rest.
func simulate(ctx context.Context, engine *tutor.Engine, sc simConfig, logger *slog.Logger) ([]simResult, error) {
	results := make([]simResult, sc.Learners)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(sc.Workers)
	for i := range sc.Learners {
		g.Go(func() error {
			rng := rand.New(rand.NewPCG(sc.Seed, uint64(i)+100))
			r, err := simulateLearner(gctx, engine, fmt.Sprintf("sim-%03d", i+1), sc, rng)
			if err != nil {
				return err
			}
			logger.Debug("learner finished", "learner", r.Learner, "solved", r.Solved, "level", r.Level)
			results[i] = r
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func simulateLearner(ctx context.Context, engine *tutor.Engine, learner string, sc simConfig, rng *rand.Rand) (simResult, error) {
	res := simResult{Learner: learner, Level: 1}

	for range sc.Problems {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		p, err := engine.GenerateProblem(learner, res.Level)
		if err != nil {
			return res, fmt.Errorf("%s: %w", learner, err)
		}

		solved, err := playProblem(ctx, engine, learner, &p.Sequence, sc, rng, &res)
		if err != nil {
			return res, fmt.Errorf("%s: %w", learner, err)
		}
		if solved {
			res.Solved++
		}

		if engine.Snapshot(learner).ReadyForNextLevel() {
			res.Level++
		}
	}

	res.Snapshot = engine.Snapshot(learner)
	return res, nil
}

// playProblem answers seq step by step, retrying each step up to
// maxTriesPerStep times. It gives up on the problem at the first step that
// is never answered correctly.
func playProblem(ctx context.Context, engine *tutor.Engine, learner string, seq *steps.Sequence, sc simConfig, rng *rand.Rand, res *simResult) (bool, error) {
	if seq.Solved() {
		return true, nil
	}

	var last *tutor.Outcome
	for i, step := range seq.Steps {
		last = nil
		for range maxTriesPerStep {
			chosen := step.CorrectOperation
			if rng.Float64() < sc.ErrorRate {
				chosen = pickWrong(step, rng)
			}
			out, err := engine.ProcessResponse(ctx, learner, seq, i, chosen)
			if err != nil {
				return false, err
			}
			res.Attempts++
			if out.IsCorrect {
				res.Correct++
				last = out
				break
			}
		}
		if last == nil {
			return false, nil
		}
	}
	return last.IsSolved, nil
}

func pickWrong(step steps.Step, rng *rand.Rand) string {
	var wrong []string
	for _, o := range step.Options {
		if !o.Correct {
			wrong = append(wrong, o.Operation)
		}
	}
	if len(wrong) == 0 {
		return step.CorrectOperation
	}
	return wrong[rng.IntN(len(wrong))]
}

func printSimulation(w io.Writer, results []simResult) {
	fmt.Fprintf(w, "%-8s  %6s  %8s  %7s  %5s  %-13s  %-18s  %5s  %s\n",
		"Learner", "Solved", "Attempts", "Correct", "Level", "Stage", "Concept", "Mean", "Top mistake")
	fmt.Fprintln(w, strings.Repeat("─", 100))

	for _, r := range results {
		a := mastery.Assess(r.Snapshot)
		fmt.Fprintf(w, "%-8s  %6d  %8d  %6.0f%%  %5d  %-13s  %-18s  %5.2f  %s\n",
			r.Learner, r.Solved, r.Attempts, pct(r.Correct, r.Attempts), r.Level,
			a.Stage, a.Level.Label(), r.Snapshot.Mean(), topMistake(r.Snapshot.Errors))
	}
}

func pct(n, d int) float64 {
	if d == 0 {
		return 0
	}
	return 100 * float64(n) / float64(d)
}

// topMistake returns the most frequent error tag, ties broken by name.
func topMistake(errs map[string]int) string {
	if len(errs) == 0 {
		return "-"
	}
	tags := make([]string, 0, len(errs))
	for k := range errs {
		tags = append(tags, k)
	}
	slices.Sort(tags)
	best := tags[0]
	for _, t := range tags[1:] {
		if errs[t] > errs[best] {
			best = t
		}
	}
	return fmt.Sprintf("%s ×%d", best, errs[best])
}
