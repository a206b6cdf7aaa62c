package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/abhisek/algebriz/internal/mastery"
	"github.com/abhisek/algebriz/internal/problemgen"
	"github.com/abhisek/algebriz/internal/steps"
	"github.com/abhisek/algebriz/internal/tutor"
)

const solveLearner = "solver"

var solveCmd = &cobra.Command{
	Use:   "solve <a> <b> <x>",
	Short: "Walk the correct path through a·x + b = c",
	Long: "Solve builds the step sequence for a·x + b = c with the given solution x\n" +
		"and replays the correct operation at every step.",
	Args: cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		var vals [3]int
		for i, arg := range args {
			n, err := strconv.Atoi(arg)
			if err != nil {
				return fmt.Errorf("invalid integer %q: %w", arg, err)
			}
			vals[i] = n
		}
		if vals[0] < 1 {
			return fmt.Errorf("coefficient a must be at least 1, got %d", vals[0])
		}

		eq := problemgen.NewEquation(vals[0], vals[1], vals[2])
		engine := tutor.NewEngine(tutor.Config{Logger: newLogger(cfg)})
		seq := steps.NewSequencer(nil).Build(eq, mastery.StageGuided, mastery.LevelSingleStep)

		outcomes, err := replay(cmd, engine, &seq)
		if err != nil {
			return err
		}

		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(struct {
				Sequence steps.Sequence  `json:"step_sequence"`
				Outcomes []*tutor.Outcome `json:"outcomes"`
			}{seq, outcomes})
		}
		printSolution(cmd.OutOrStdout(), &seq, outcomes)
		return nil
	},
}

func init() {
	solveCmd.Flags().Bool("json", false, "Print the sequence and outcomes as JSON")
}

// replay answers every step with its correct operation.
func replay(cmd *cobra.Command, engine *tutor.Engine, seq *steps.Sequence) ([]*tutor.Outcome, error) {
	if seq.Solved() {
		out, err := engine.ProcessResponse(cmd.Context(), solveLearner, seq, 0, "")
		if err != nil {
			return nil, err
		}
		return []*tutor.Outcome{out}, nil
	}

	outcomes := make([]*tutor.Outcome, 0, seq.Len())
	for i, step := range seq.Steps {
		out, err := engine.ProcessResponse(cmd.Context(), solveLearner, seq, i, step.CorrectOperation)
		if err != nil {
			return nil, fmt.Errorf("step %d: %w", i+1, err)
		}
		if !out.IsCorrect {
			return nil, fmt.Errorf("step %d: correct operation %q was rejected", i+1, step.CorrectOperation)
		}
		outcomes = append(outcomes, out)
	}
	return outcomes, nil
}

func printSolution(w io.Writer, seq *steps.Sequence, outcomes []*tutor.Outcome) {
	fmt.Fprintln(w, seq.Equation.Display())
	fmt.Fprintln(w)

	for i, step := range seq.Steps {
		fmt.Fprintf(w, "Step %d  %s\n", i+1, step.Title)
		fmt.Fprintf(w, "        %s\n", step.Question)
		if t := outcomes[i].Transformation; t != nil {
			fmt.Fprintf(w, "        %s = %s   %s   %s = %s\n",
				t.Before.Left, t.Before.Right, t.Operation, t.After.Left, t.After.Right)
		}
		fmt.Fprintf(w, "        %s\n\n", outcomes[i].Feedback)
	}

	last := outcomes[len(outcomes)-1]
	if last.Celebration != "" {
		fmt.Fprintln(w, last.Celebration)
	} else {
		fmt.Fprintln(w, last.Feedback)
	}
}
