package cmd

import (
	"fmt"
	"log/slog"
	"os"

	tea "charm.land/bubbletea/v2"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/abhisek/algebriz/internal/app"
	"github.com/abhisek/algebriz/internal/diagnosis"
	"github.com/abhisek/algebriz/internal/llm"
	"github.com/abhisek/algebriz/internal/tutor"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Start an interactive practice session",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPlay(cmd)
	},
}

func init() {
	playCmd.Flags().String("learner", "", "Learner ID (default: ALGEBRIZ_LEARNER or a fresh ID)")
	playCmd.Flags().Int("level", 0, "Requested difficulty level (default from config)")
	playCmd.Flags().String("log-file", "", "Write logs to this file while the TUI runs")
}

// runPlay opens the journal, builds the engine and the optional LLM
// reviewer, and launches the TUI.
func runPlay(cmd *cobra.Command) error {
	ctx := cmd.Context()
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	// The TUI owns the terminal, so logs go to a file or nowhere.
	logger := slog.New(slog.DiscardHandler)
	if path, _ := cmd.Flags().GetString("log-file"); path != "" {
		f, err := tea.LogToFile(path, "algebriz")
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		defer f.Close()
		logger = cfg.Logger(f)
	}

	st, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	learner := cfg.LearnerID
	if l, _ := cmd.Flags().GetString("learner"); l != "" {
		learner = l
	}
	if learner == "" {
		learner = uuid.New().String()
	}
	level := cfg.Level
	if cmd.Flags().Changed("level") {
		level, _ = cmd.Flags().GetInt("level")
	}

	// Mastery lives in memory for this session only. Snapshots in the
	// journal are an audit trail and are not loaded back.
	engine := tutor.NewEngine(tutor.Config{
		Events:    st.EventRepo(),
		Snapshots: st.SnapshotRepo(),
		Logger:    logger,
	})

	opts := app.Options{
		Engine:        engine,
		LearnerID:     learner,
		Level:         level,
		Events:        st.EventRepo(),
		ReviewTimeout: cfg.LLM.Timeout,
	}

	if cfg.LLM.Enabled() {
		provider, err := llm.NewProvider(ctx, cfg.LLM, st.EventRepo(), logger)
		if err != nil {
			fmt.Fprintln(os.Stderr, "LLM provider not configured:", err)
			fmt.Fprintln(os.Stderr, "Second opinions will be unavailable.")
		} else {
			opts.Reviewer = diagnosis.NewReviewer(provider, diagnosis.DefaultReviewerConfig())
		}
	}

	return app.Run(opts)
}
