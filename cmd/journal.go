package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/algebriz/internal/diagnosis"
	"github.com/abhisek/algebriz/internal/mastery"
	"github.com/abhisek/algebriz/internal/store"
)

var journalCmd = &cobra.Command{
	Use:   "journal",
	Short: "Inspect recorded attempts and mastery snapshots",
}

var journalListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent attempts, newest first",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		learner, _ := cmd.Flags().GetString("learner")
		since, _ := cmd.Flags().GetDuration("since")

		opts := store.QueryOpts{Limit: limit, Learner: learner}
		if since > 0 {
			opts.From = time.Now().Add(-since).UTC()
		}

		return withStore(cmd, func(s *store.Store) error {
			attempts, err := s.EventRepo().QueryAttempts(cmd.Context(), opts)
			if err != nil {
				return fmt.Errorf("query attempts: %w", err)
			}
			printAttempts(cmd.OutOrStdout(), attempts)
			return nil
		})
	},
}

var journalStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Summarize learners and their most common misconceptions",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		learner, _ := cmd.Flags().GetString("learner")

		return withStore(cmd, func(s *store.Store) error {
			return printJournalStats(cmd.Context(), cmd.OutOrStdout(), s, learner)
		})
	},
}

func init() {
	journalListCmd.Flags().IntP("limit", "n", 20, "Number of attempts to show")
	journalListCmd.Flags().String("learner", "", "Only show this learner")
	journalListCmd.Flags().Duration("since", 0, "Only show attempts newer than this (e.g. 24h)")

	journalStatsCmd.Flags().String("learner", "", "Break down one learner, including their latest snapshot")

	journalCmd.AddCommand(journalListCmd)
	journalCmd.AddCommand(journalStatsCmd)
}

func printAttempts(w io.Writer, attempts []store.AttemptEvent) {
	if len(attempts) == 0 {
		fmt.Fprintln(w, "No attempts recorded.")
		return
	}

	fmt.Fprintf(w, "%-5s  %-19s  %-12s  %-14s  %-4s  %-10s  %-2s  %s\n",
		"Seq", "Timestamp", "Learner", "Equation", "Step", "Chosen", "OK", "Misconception")
	fmt.Fprintln(w, strings.Repeat("─", 96))

	for _, a := range attempts {
		ok := "✓"
		if !a.Correct {
			ok = "✗"
		}
		fmt.Fprintf(w, "%-5d  %-19s  %-12s  %-14s  %-4d  %-10s  %-2s  %s\n",
			a.Sequence,
			a.Timestamp.Local().Format("2006-01-02 15:04:05"),
			truncate(a.LearnerID, 12),
			truncate(a.Equation, 14),
			a.StepIndex+1,
			truncate(a.Chosen, 10),
			ok,
			a.Misconception,
		)
	}
}

func printJournalStats(ctx context.Context, w io.Writer, s *store.Store, learner string) error {
	repo := s.EventRepo()

	summaries, err := repo.LearnerSummaries(ctx)
	if err != nil {
		return fmt.Errorf("summarize learners: %w", err)
	}
	if len(summaries) == 0 {
		fmt.Fprintln(w, "No attempts recorded.")
		return nil
	}

	fmt.Fprintln(w, "Learners")
	fmt.Fprintln(w, strings.Repeat("─", 60))
	fmt.Fprintf(w, "%-20s  %8s  %8s  %8s  %8s\n", "Learner", "Sessions", "Attempts", "Correct", "Accuracy")
	for _, ls := range summaries {
		if learner != "" && ls.LearnerID != learner {
			continue
		}
		fmt.Fprintf(w, "%-20s  %8d  %8d  %8d  %7.0f%%\n",
			truncate(ls.LearnerID, 20), ls.Sessions, ls.Attempts, ls.Correct, 100*ls.Accuracy())
	}

	counts, err := repo.MisconceptionCounts(ctx, learner)
	if err != nil {
		return fmt.Errorf("count misconceptions: %w", err)
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Misconceptions")
	fmt.Fprintln(w, strings.Repeat("─", 60))
	if len(counts) == 0 {
		fmt.Fprintln(w, "None recorded.")
	}
	for _, c := range counts {
		fmt.Fprintf(w, "%-48s  %6d\n", misconceptionLabel(c.Misconception), c.Count)
	}

	if learner == "" {
		return nil
	}

	snap, err := s.SnapshotRepo().Latest(ctx, learner)
	if err != nil {
		return fmt.Errorf("load snapshot: %w", err)
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Latest mastery snapshot")
	fmt.Fprintln(w, strings.Repeat("─", 60))
	if snap == nil {
		fmt.Fprintln(w, "None recorded.")
		return nil
	}
	m, err := decodeSnapshot(snap.Data)
	if err != nil {
		return err
	}
	a := mastery.Assess(m)
	fmt.Fprintf(w, "Recorded:  %s\n", snap.Timestamp.Local().Format("2006-01-02 15:04:05"))
	for _, sk := range mastery.Skills() {
		fmt.Fprintf(w, "%-26s %5.2f\n", sk.Label()+":", m.Score(sk))
	}
	fmt.Fprintf(w, "Stage:     %s\n", a.Stage)
	fmt.Fprintf(w, "Concept:   %s\n", a.Level.Label())
	fmt.Fprintf(w, "Streak:    %d\n", m.ConsecutiveCorrect)
	return nil
}

func decodeSnapshot(data map[string]any) (mastery.Snapshot, error) {
	var m mastery.Snapshot
	raw, err := json.Marshal(data)
	if err != nil {
		return m, fmt.Errorf("encode snapshot: %w", err)
	}
	if err := json.Unmarshal(raw, &m); err != nil {
		return m, fmt.Errorf("decode snapshot: %w", err)
	}
	return m, nil
}

func misconceptionLabel(tag string) string {
	if tag == mastery.UnknownError {
		return "Unclassified mistake"
	}
	if e := diagnosis.Lookup(diagnosis.Misconception(tag)); e != nil {
		return e.Label
	}
	return tag
}
