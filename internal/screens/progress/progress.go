// Package progress shows a learner's mastery and error history.
package progress

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/algebriz/internal/diagnosis"
	"github.com/abhisek/algebriz/internal/mastery"
	"github.com/abhisek/algebriz/internal/router"
	"github.com/abhisek/algebriz/internal/store"
	"github.com/abhisek/algebriz/internal/ui/components"
	"github.com/abhisek/algebriz/internal/ui/layout"
	"github.com/abhisek/algebriz/internal/ui/theme"
)

// readyMarker is where the balance and inverse bars must cross before the
// learner is ready for the next level.
const readyMarker = 0.7

// countsLoadedMsg carries the journal's all-time misconception tally.
type countsLoadedMsg struct {
	Counts []store.MisconceptionCount
	Err    error
}

// Screen renders one learner's progress.
type Screen struct {
	snap   mastery.Snapshot
	events store.EventRepo

	counts    []store.MisconceptionCount
	countsErr error
	loaded    bool
}

var _ router.Screen = (*Screen)(nil)

// New creates a progress screen for snap. events may be nil, in which case
// only the in-memory record is shown.
func New(snap mastery.Snapshot, events store.EventRepo) *Screen {
	return &Screen{snap: snap, events: events}
}

func (s *Screen) Init() tea.Cmd {
	if s.events == nil {
		return nil
	}
	events, learner := s.events, s.snap.LearnerID
	return func() tea.Msg {
		counts, err := events.MisconceptionCounts(context.Background(), learner)
		return countsLoadedMsg{Counts: counts, Err: err}
	}
}

func (s *Screen) Title() string { return "Progress" }

func (s *Screen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{{Key: "Esc", Description: "Back to practice"}}
}

func (s *Screen) Update(msg tea.Msg) (router.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case countsLoadedMsg:
		s.counts, s.countsErr, s.loaded = msg.Counts, msg.Err, true
	case tea.KeyMsg:
		switch msg.String() {
		case "esc", "q", "p":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		}
	}
	return s, nil
}

func (s *Screen) View(width, height int) string {
	cw := min(width-8, 64)
	var b strings.Builder
	b.WriteString("\n")

	assessment := mastery.Assess(s.snap)
	b.WriteString(fmt.Sprintf("Stage %s   Level %s\n\n",
		theme.Stage(assessment.Stage),
		lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(assessment.Level.Label())))

	for _, sk := range mastery.Skills() {
		bar := components.ProgressBar{
			Label:       sk.Label(),
			LabelWidth:  12,
			Percent:     s.snap.Score(sk),
			ShowPercent: true,
			Width:       cw,
		}
		if sk != mastery.SkillSolving {
			bar.Marker = readyMarker
		}
		b.WriteString(bar.View() + "\n")
	}
	b.WriteString("\n")

	dim := lipgloss.NewStyle().Foreground(theme.TextDim)
	b.WriteString(dim.Render(fmt.Sprintf("Attempts %d   Streak %d",
		s.snap.TotalAttempts, s.snap.ConsecutiveCorrect)))
	if s.snap.ReadyForNextLevel() {
		b.WriteString("   " + theme.Correct.Render("Ready for the next level!"))
	}
	b.WriteString("\n\n")

	b.WriteString(theme.Body.Bold(true).Render("This session") + "\n")
	b.WriteString(renderTally(sessionTally(s.snap.Errors), dim) + "\n")

	if s.events != nil {
		b.WriteString(theme.Body.Bold(true).Render("All sessions") + "\n")
		switch {
		case !s.loaded:
			b.WriteString(dim.Render("  loading...") + "\n")
		case s.countsErr != nil:
			b.WriteString(theme.Incorrect.Render("  "+s.countsErr.Error()) + "\n")
		default:
			b.WriteString(renderTally(s.counts, dim))
		}
	}

	return lipgloss.PlaceHorizontal(width, lipgloss.Center, b.String())
}

// sessionTally orders the in-memory error counters like the journal query:
// most frequent first, then by name.
func sessionTally(errs map[string]int) []store.MisconceptionCount {
	out := make([]store.MisconceptionCount, 0, len(errs))
	for _, k := range slices.Sorted(maps.Keys(errs)) {
		out = append(out, store.MisconceptionCount{Misconception: k, Count: errs[k]})
	}
	slices.SortStableFunc(out, func(a, b store.MisconceptionCount) int { return b.Count - a.Count })
	return out
}

func renderTally(counts []store.MisconceptionCount, dim lipgloss.Style) string {
	if len(counts) == 0 {
		return dim.Render("  no mistakes recorded") + "\n"
	}
	var b strings.Builder
	for _, c := range counts {
		name := c.Misconception
		if e := diagnosis.Lookup(diagnosis.Misconception(name)); e != nil {
			name = e.Label
		}
		b.WriteString(fmt.Sprintf("  %-28s %s\n", name, dim.Render(fmt.Sprintf("×%d", c.Count))))
	}
	return b.String()
}
