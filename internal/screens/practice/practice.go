// Package practice is the interactive solving screen: one equation at a
// time, one balance-preserving operation per step.
package practice

import (
	"context"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/algebriz/internal/diagnosis"
	"github.com/abhisek/algebriz/internal/mastery"
	"github.com/abhisek/algebriz/internal/router"
	"github.com/abhisek/algebriz/internal/screens/progress"
	"github.com/abhisek/algebriz/internal/steps"
	"github.com/abhisek/algebriz/internal/store"
	"github.com/abhisek/algebriz/internal/tutor"
	"github.com/abhisek/algebriz/internal/ui/components"
	"github.com/abhisek/algebriz/internal/ui/layout"
)

const defaultReviewTimeout = 20 * time.Second

// Config wires the practice screen.
type Config struct {
	Engine    *tutor.Engine
	LearnerID string
	Level     int

	// Reviewer, when set, is asked for a second opinion on wrong choices
	// the rule engine could not classify.
	Reviewer      *diagnosis.Reviewer
	ReviewTimeout time.Duration

	// Events feeds the progress screen's all-time tally. Optional.
	Events store.EventRepo
}

type phase int

const (
	phaseLoading phase = iota
	phaseQuestion
	phaseFeedback
)

// Screen implements router.Screen for a practice session.
type Screen struct {
	cfg Config

	phase       phase
	problem     *tutor.Problem
	step        int
	choice      components.MultiChoice
	input       components.TextInput
	freeForm    bool
	confirmQuit bool
	errMsg      string

	outcome    *tutor.Outcome
	lastChosen string

	// attempt counts submissions; reviews for older ones are dropped.
	attempt   int
	reviewing bool
	review    *diagnosis.Review
	reviewErr error

	answered int
	correct  int
	solved   int
}

var _ router.Screen = (*Screen)(nil)

// New creates a practice screen.
func New(cfg Config) *Screen {
	if cfg.ReviewTimeout <= 0 {
		cfg.ReviewTimeout = defaultReviewTimeout
	}
	return &Screen{cfg: cfg, input: newOperationInput()}
}

func newOperationInput() components.TextInput {
	return components.NewTextInput("e.g. -4 or ÷3", 12, operationRune)
}

// operationRune accepts the characters an operation can be typed with.
func operationRune(r rune) bool {
	if r >= '0' && r <= '9' {
		return true
	}
	return strings.ContainsRune("+-−*×/÷ ", r)
}

func (s *Screen) Init() tea.Cmd {
	return s.nextProblem()
}

func (s *Screen) Title() string {
	return "Practice"
}

func (s *Screen) KeyHints() []layout.KeyHint {
	switch {
	case s.errMsg != "":
		return []layout.KeyHint{{Key: "any key", Description: "Quit"}}
	case s.confirmQuit:
		return []layout.KeyHint{
			{Key: "Y", Description: "Quit"},
			{Key: "N", Description: "Keep going"},
		}
	case s.phase == phaseFeedback:
		return []layout.KeyHint{{Key: "any key", Description: "Continue"}}
	case s.phase == phaseQuestion && s.freeForm:
		return []layout.KeyHint{
			{Key: "Enter", Description: "Submit"},
			{Key: "Tab", Description: "Options"},
			{Key: "Esc", Description: "Quit"},
		}
	case s.phase == phaseQuestion:
		return []layout.KeyHint{
			{Key: "1-4", Description: "Choose"},
			{Key: "↑↓ Enter", Description: "Select"},
			{Key: "Tab", Description: "Type your own"},
			{Key: "P", Description: "Progress"},
			{Key: "Esc", Description: "Quit"},
		}
	}
	return nil
}

func (s *Screen) Update(msg tea.Msg) (router.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case problemReadyMsg:
		return s.handleProblemReady(msg)

	case reviewReadyMsg:
		if msg.Attempt == s.attempt {
			s.reviewing = false
			s.review, s.reviewErr = msg.Review, msg.Err
		}
		return s, nil

	case tea.KeyMsg:
		return s.handleKey(msg)
	}

	// Cursor blink and friends.
	if s.phase == phaseQuestion && s.freeForm {
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return s, cmd
	}
	return s, nil
}

// nextProblem generates a problem. Generation is synchronous and cheap, but
// going through a command keeps Update free of engine calls at startup.
func (s *Screen) nextProblem() tea.Cmd {
	engine, learner, level := s.cfg.Engine, s.cfg.LearnerID, s.cfg.Level
	return func() tea.Msg {
		p, err := engine.GenerateProblem(learner, level)
		return problemReadyMsg{Problem: p, Err: err}
	}
}

func (s *Screen) handleProblemReady(msg problemReadyMsg) (router.Screen, tea.Cmd) {
	if msg.Err != nil {
		s.errMsg = msg.Err.Error()
		return s, nil
	}
	s.problem = msg.Problem
	s.step = msg.Problem.CurrentStep
	s.phase = phaseQuestion
	s.setupStep()
	return s, nil
}

// setupStep builds the option list for the current step.
func (s *Screen) setupStep() {
	s.outcome = nil
	s.input = newOperationInput()
	if s.problem.Sequence.Solved() {
		s.choice = components.NewMultiChoice("", nil)
		return
	}

	step := s.problem.Sequence.Steps[s.step]
	choices := make([]components.Choice, len(step.Options))
	for i, o := range step.Options {
		choices[i] = components.Choice{Label: displayOperation(o.Operation), Detail: o.Description}
	}
	s.choice = components.NewMultiChoice(step.Question, choices)
}

func (s *Screen) handleKey(msg tea.KeyMsg) (router.Screen, tea.Cmd) {
	key := msg.String()

	if s.errMsg != "" {
		return s, tea.Quit
	}

	if s.confirmQuit {
		switch key {
		case "y", "Y":
			return s, tea.Quit
		case "n", "N", "esc":
			s.confirmQuit = false
		}
		return s, nil
	}

	switch s.phase {
	case phaseFeedback:
		return s.advance()
	case phaseQuestion:
	default:
		return s, nil
	}

	if key == "esc" {
		s.confirmQuit = true
		return s, nil
	}

	if s.problem.Sequence.Solved() {
		if key == "enter" {
			return s.submit("")
		}
		return s, nil
	}

	if s.freeForm {
		switch key {
		case "tab":
			s.freeForm = false
			return s, nil
		case "enter":
			if v := strings.TrimSpace(s.input.Value()); v != "" {
				return s.submit(v)
			}
			return s, nil
		}
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return s, cmd
	}

	switch key {
	case "tab":
		s.freeForm = true
		return s, s.input.Init()
	case "p", "P":
		snap := s.cfg.Engine.Snapshot(s.cfg.LearnerID)
		return s, func() tea.Msg {
			return router.PushScreenMsg{Screen: progress.New(snap, s.cfg.Events)}
		}
	}

	s.choice, _ = s.choice.Update(msg)
	if s.choice.Submitted {
		step := s.problem.Sequence.Steps[s.step]
		return s.submit(step.Options[s.choice.ChosenIndex].Operation)
	}
	return s, nil
}

// submit grades chosen at the current step.
func (s *Screen) submit(chosen string) (router.Screen, tea.Cmd) {
	before := s.cfg.Engine.Snapshot(s.cfg.LearnerID)

	out, err := s.cfg.Engine.ProcessResponse(context.Background(), s.cfg.LearnerID, &s.problem.Sequence, s.step, chosen)
	if err != nil {
		s.errMsg = err.Error()
		return s, nil
	}

	s.attempt++
	s.answered++
	s.outcome = out
	s.lastChosen = chosen
	s.review, s.reviewErr, s.reviewing = nil, nil, false
	s.phase = phaseFeedback

	if out.IsCorrect {
		s.correct++
		if out.IsSolved {
			s.solved++
		}
	}
	if s.choice.Submitted {
		s.choice.Mark(out.IsCorrect)
	}
	if s.freeForm {
		s.input.Submit(out.IsCorrect)
	}

	if !out.IsCorrect && out.Misconception == nil && s.cfg.Reviewer != nil {
		s.reviewing = true
		return s, s.requestReview(s.problem.Sequence.Steps[s.step], chosen, before)
	}
	return s, nil
}

// requestReview asks the reviewer about an unclassified wrong choice.
func (s *Screen) requestReview(step steps.Step, chosen string, before mastery.Snapshot) tea.Cmd {
	eq := s.problem.Equation
	req := &diagnosis.ReviewRequest{
		Equation: eq.Display(),
		Question: step.Question,
		Correct:  step.CorrectOperation,
		Chosen:   chosen,
		Indicators: diagnosis.Indicators(step.CorrectOperation, chosen,
			diagnosis.Context{StepIndex: step.Index, StepKind: step.Kind, A: eq.A, B: eq.B, C: eq.C},
			diagnosis.History{
				Errors:             before.Errors,
				TotalAttempts:      before.TotalAttempts,
				ConsecutiveCorrect: before.ConsecutiveCorrect,
			}),
	}

	reviewer, timeout, attempt := s.cfg.Reviewer, s.cfg.ReviewTimeout, s.attempt
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		review, err := reviewer.Review(ctx, req)
		return reviewReadyMsg{Attempt: attempt, Review: review, Err: err}
	}
}

// advance leaves the feedback view: on to the next step, the next problem,
// or another try at the same step.
func (s *Screen) advance() (router.Screen, tea.Cmd) {
	out := s.outcome
	switch {
	case out.IsSolved:
		s.phase = phaseLoading
		s.outcome = nil
		return s, s.nextProblem()
	case out.IsCorrect:
		s.step = *out.NextStep
		s.setupStep()
	default:
		s.outcome = nil
		s.choice.Reset()
		s.input.Clear()
	}
	s.phase = phaseQuestion
	return s, nil
}

// displayOperation renders an operation with typographic symbols, falling
// back to the raw text when it does not parse.
func displayOperation(op string) string {
	parsed, err := steps.ParseOperation(op)
	if err != nil {
		return op
	}
	return parsed.Display()
}
