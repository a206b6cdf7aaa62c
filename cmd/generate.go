package cmd

import (
	"encoding/json"
	"fmt"
	"math/rand/v2"

	"github.com/spf13/cobra"

	"github.com/abhisek/algebriz/internal/mastery"
	"github.com/abhisek/algebriz/internal/problemgen"
	"github.com/abhisek/algebriz/internal/steps"
	"github.com/abhisek/algebriz/internal/tutor"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a problem and print it as JSON",
	Long: "Generate assesses a learner with the given mastery and prints the\n" +
		"resulting problem, step sequence included, as JSON.",
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		learner, _ := cmd.Flags().GetString("learner")
		score, _ := cmd.Flags().GetFloat64("mastery")
		seed, _ := cmd.Flags().GetUint64("seed")
		level := cfg.Level
		if cmd.Flags().Changed("level") {
			level, _ = cmd.Flags().GetInt("level")
		}
		if score < 0 || score > 1 {
			return fmt.Errorf("--mastery must be within [0,1], got %v", score)
		}

		ecfg := tutor.Config{Logger: newLogger(cfg)}
		if seed != 0 {
			ecfg.Generator = problemgen.NewRandomGenerator(rand.New(rand.NewPCG(seed, seed)))
			ecfg.Sequencer = steps.NewSequencer(rand.New(rand.NewPCG(seed, seed^0x5eed)))
		}
		engine := tutor.NewEngine(ecfg)

		if score > 0 {
			err := engine.Mastery().Update(learner, func(m *mastery.Model) error {
				m.Balance, m.Inverse, m.Solving = score, score, score
				return nil
			})
			if err != nil {
				return fmt.Errorf("seed mastery: %w", err)
			}
		}

		p, err := engine.GenerateProblem(learner, level)
		if err != nil {
			return err
		}

		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(p)
	},
}

func init() {
	f := generateCmd.Flags()
	f.String("learner", "learner", "Learner ID")
	f.Int("level", 1, "Requested difficulty level")
	f.Float64("mastery", 0, "Starting score for all three skills, in [0,1]")
	f.Uint64("seed", 0, "Random seed for a reproducible problem (0 = random)")
}
