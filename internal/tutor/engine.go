package tutor

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"maps"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/algebriz/internal/diagnosis"
	"github.com/abhisek/algebriz/internal/mastery"
	"github.com/abhisek/algebriz/internal/problemgen"
	"github.com/abhisek/algebriz/internal/remediation"
	"github.com/abhisek/algebriz/internal/steps"
	"github.com/abhisek/algebriz/internal/store"
)

// InvalidChoiceFeedback is shown when the chosen operation is not one of
// the step's options.
const InvalidChoiceFeedback = "Invalid choice: pick one of the listed operations."

// snapshotsKept bounds the mastery snapshots journaled per learner.
const snapshotsKept = 20

// Config wires an Engine. Every field is optional.
type Config struct {
	Mastery   *mastery.Store
	Generator problemgen.Generator
	Sequencer *steps.Sequencer

	// Events and Snapshots journal attempts and solved-problem mastery.
	// Journal failures are logged, never returned.
	Events    store.EventRepo
	Snapshots store.SnapshotRepo
	SessionID string

	Logger *slog.Logger
}

// Engine runs learner interactions. It is safe for concurrent use;
// responses for the same learner are serialized by the mastery store.
type Engine struct {
	mastery   *mastery.Store
	gen       problemgen.Generator
	seq       *steps.Sequencer
	events    store.EventRepo
	snapshots store.SnapshotRepo
	sessionID string
	logger    *slog.Logger
}

// NewEngine creates an engine, filling unset fields with defaults.
func NewEngine(cfg Config) *Engine {
	e := &Engine{
		mastery:   cfg.Mastery,
		gen:       cfg.Generator,
		seq:       cfg.Sequencer,
		events:    cfg.Events,
		snapshots: cfg.Snapshots,
		sessionID: cfg.SessionID,
		logger:    cfg.Logger,
	}
	if e.mastery == nil {
		e.mastery = mastery.NewStore()
	}
	if e.gen == nil {
		e.gen = problemgen.NewRandomGenerator(nil)
	}
	if e.seq == nil {
		e.seq = steps.NewSequencer(nil)
	}
	if e.sessionID == "" {
		e.sessionID = uuid.New().String()
	}
	if e.logger == nil {
		e.logger = slog.New(slog.DiscardHandler)
	}
	return e
}

// SessionID identifies this engine's attempts in the journal.
func (e *Engine) SessionID() string { return e.sessionID }

// Mastery returns the engine's mastery store.
func (e *Engine) Mastery() *mastery.Store { return e.mastery }

// Snapshot returns a copy of the learner's mastery record.
func (e *Engine) Snapshot(learnerID string) mastery.Snapshot {
	return e.mastery.Snapshot(learnerID)
}

// GenerateProblem assesses the learner and builds a problem at the given
// difficulty level.
func (e *Engine) GenerateProblem(learnerID string, level int) (*Problem, error) {
	snap := e.mastery.Snapshot(learnerID)
	assessment := mastery.Assess(snap)
	difficulty := problemgen.EffectiveLevel(level, &snap)

	eq := e.gen.Generate(level, &snap)
	if err := problemgen.Validate(eq, problemgen.BandFor(difficulty), problemgen.DefaultValidators()); err != nil {
		return nil, fmt.Errorf("generate equation: %w", err)
	}
	seq := e.seq.Build(eq, assessment.Stage, assessment.Level)

	e.logger.Debug("problem generated",
		"learner", learnerID,
		"equation", eq.Display(),
		"stage", assessment.Stage,
		"level", assessment.Level,
		"difficulty", difficulty,
		"steps", seq.Len())

	return &Problem{
		DisplayText:       introFor(assessment.Level, eq),
		Equation:          eq,
		Sequence:          seq,
		CurrentStep:       0,
		Difficulty:        difficulty,
		Stage:             assessment.Stage,
		Level:             assessment.Level,
		Features:          mastery.FeaturesFor(assessment.Stage),
		Mastery:           snap,
		ReadyForNextLevel: snap.ReadyForNextLevel(),
	}, nil
}

// ProcessResponse grades the operation chosen at step index of seq and
// updates the learner's mastery. A sequence with no steps is already
// solved and any response completes it without touching mastery. An
// out-of-range index returns a *StepError and mutates nothing.
func (e *Engine) ProcessResponse(ctx context.Context, learnerID string, seq *steps.Sequence, index int, chosen string) (*Outcome, error) {
	if seq == nil {
		return nil, fmt.Errorf("process response: nil sequence")
	}
	if seq.Solved() {
		return &Outcome{
			IsCorrect: true,
			IsSolved:  true,
			Feedback:  fmt.Sprintf("x = %d is already isolated. Nothing to do!", seq.Equation.X),
			Mastery:   e.mastery.Snapshot(learnerID),
		}, nil
	}
	if index < 0 || index >= seq.Len() {
		return nil, &StepError{Index: index, Count: seq.Len()}
	}

	step := seq.Steps[index]
	var out *Outcome
	err := e.mastery.Update(learnerID, func(m *mastery.Model) error {
		if opt, ok := step.Match(chosen); ok && opt.Correct {
			out = e.correct(m, seq, index, step)
		} else {
			out = e.incorrect(m, seq, index, step, chosen)
		}
		out.Mastery = m.Snapshot()
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("update mastery: %w", err)
	}

	e.journal(ctx, learnerID, seq, index, step, chosen, out)
	return out, nil
}

// correct and incorrect take the position from the caller; step.Index is
// display metadata and may be stale on a resent sequence.
func (e *Engine) correct(m *mastery.Model, seq *steps.Sequence, index int, step steps.Step) *Outcome {
	opt, _ := step.CorrectOption()
	gain := m.RecordCorrect(step.Kind.Focus())

	out := &Outcome{
		IsCorrect:      true,
		Feedback:       opt.Explanation,
		Gain:           gain,
		Transformation: step.Transformation,
		Celebration:    step.Celebration,
	}
	if next := index + 1; next < seq.Len() {
		out.NextStep = &next
	} else {
		out.IsSolved = true
	}

	e.logger.Debug("correct response",
		"learner", m.LearnerID, "step", index, "gain", gain, "solved", out.IsSolved)
	return out
}

func (e *Engine) incorrect(m *mastery.Model, seq *steps.Sequence, index int, step steps.Step, chosen string) *Outcome {
	// History is taken before this attempt is counted.
	hist := diagnosis.History{
		Errors:             maps.Clone(m.Errors),
		TotalAttempts:      m.TotalAttempts,
		ConsecutiveCorrect: m.ConsecutiveCorrect,
	}
	ctx := diagnosis.Context{
		StepIndex: index,
		StepKind:  step.Kind,
		A:         seq.Equation.A,
		B:         seq.Equation.B,
		C:         seq.Equation.C,
	}
	hyps := diagnosis.Detect(step.CorrectOperation, chosen, ctx, hist)

	tag := mastery.UnknownError
	var top *diagnosis.Hypothesis
	if len(hyps) > 0 {
		top = &hyps[0]
		tag = string(top.Type)
	}
	m.RecordIncorrect(tag)

	payload := remediation.Generate(hyps, remediation.Profile{
		Style:              remediation.InferStyle(hist.Errors),
		TotalAttempts:      m.TotalAttempts,
		ConsecutiveCorrect: m.ConsecutiveCorrect,
	})

	next := index
	out := &Outcome{
		NextStep:      &next,
		Misconception: top,
		Hypotheses:    hyps,
		Remediation:   &payload,
	}
	if opt, ok := step.Match(chosen); ok {
		out.Feedback = opt.Explanation
	} else {
		out.Unrecognized = true
		out.Feedback = InvalidChoiceFeedback
	}

	e.logger.Debug("incorrect response",
		"learner", m.LearnerID,
		"step", index,
		"chosen", chosen,
		"misconception", tag,
		"hypotheses", len(hyps))
	return out
}

// journal records the attempt and, once the problem is solved, a mastery
// snapshot. Failures only reach the log.
func (e *Engine) journal(ctx context.Context, learnerID string, seq *steps.Sequence, index int, step steps.Step, chosen string, out *Outcome) {
	if e.events != nil {
		data := store.AttemptEventData{
			SessionID: e.sessionID,
			LearnerID: learnerID,
			Equation:  seq.Equation.Display(),
			StepIndex: index,
			StepKind:  string(step.Kind),
			Chosen:    chosen,
			Correct:   out.IsCorrect,
		}
		if !out.IsCorrect {
			data.Misconception = mastery.UnknownError
			if h := out.Misconception; h != nil {
				data.Misconception = string(h.Type)
				data.Confidence = h.Confidence
				data.Severity = h.Severity
			}
		}
		if err := e.events.AppendAttempt(ctx, data); err != nil {
			e.logger.Warn("failed to journal attempt", "learner", learnerID, "err", err)
		}
	}

	if e.snapshots != nil && out.IsSolved {
		if err := e.saveSnapshot(ctx, out.Mastery); err != nil {
			e.logger.Warn("failed to journal mastery snapshot", "learner", learnerID, "err", err)
		}
	}
}

func (e *Engine) saveSnapshot(ctx context.Context, snap mastery.Snapshot) error {
	raw, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}
	var data map[string]any
	if err := json.Unmarshal(raw, &data); err != nil {
		return fmt.Errorf("unmarshal snapshot: %w", err)
	}

	err = e.snapshots.Save(ctx, &store.MasterySnapshot{
		LearnerID: snap.LearnerID,
		Sequence:  int64(snap.TotalAttempts),
		Timestamp: time.Now().UTC(),
		Data:      data,
	})
	if err != nil {
		return err
	}
	return e.snapshots.Prune(ctx, snap.LearnerID, snapshotsKept)
}
