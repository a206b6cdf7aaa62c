package progress

import (
	"context"
	"errors"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/google/go-cmp/cmp"

	"github.com/abhisek/algebriz/internal/mastery"
	"github.com/abhisek/algebriz/internal/router"
	"github.com/abhisek/algebriz/internal/store"
)

// countsRepo answers MisconceptionCounts only.
type countsRepo struct {
	store.EventRepo
	counts  []store.MisconceptionCount
	err     error
	learner string
}

func (r *countsRepo) MisconceptionCounts(_ context.Context, learnerID string) ([]store.MisconceptionCount, error) {
	r.learner = learnerID
	return r.counts, r.err
}

func snapshot() mastery.Snapshot {
	return mastery.Snapshot{
		LearnerID:          "ana",
		Balance:            0.8,
		Inverse:            0.75,
		Solving:            0.4,
		ConsecutiveCorrect: 3,
		TotalAttempts:      12,
		Errors: map[string]int{
			"sign_error":         1,
			"operation_reversal": 2,
			"equation_statement": 2,
		},
	}
}

func TestSessionTallyOrder(t *testing.T) {
	got := sessionTally(snapshot().Errors)
	want := []store.MisconceptionCount{
		{Misconception: "equation_statement", Count: 2},
		{Misconception: "operation_reversal", Count: 2},
		{Misconception: "sign_error", Count: 1},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("sessionTally mismatch (-want +got):\n%s", diff)
	}
}

func TestInitWithoutJournal(t *testing.T) {
	s := New(snapshot(), nil)
	if cmd := s.Init(); cmd != nil {
		t.Error("Init without a journal should not load anything")
	}
	if strings.Contains(s.View(100, 30), "All sessions") {
		t.Error("journal section shown without a journal")
	}
}

func TestViewShowsMasteryAndTallies(t *testing.T) {
	repo := &countsRepo{counts: []store.MisconceptionCount{{Misconception: "sign_error", Count: 7}}}
	s := New(snapshot(), repo)

	if v := s.View(100, 30); !strings.Contains(v, "loading...") {
		t.Errorf("expected loading placeholder before counts arrive, got:\n%s", v)
	}

	s.Update(s.Init()())
	if repo.learner != "ana" {
		t.Errorf("counts loaded for %q, want ana", repo.learner)
	}

	v := s.View(100, 30)
	for _, want := range []string{
		"Ready for the next level!",
		"Attempts 12",
		"Streak 3",
		"This session",
		"Equation as a calculation",
		"Operation reversal",
		"All sessions",
		"×7",
	} {
		if !strings.Contains(v, want) {
			t.Errorf("view missing %q:\n%s", want, v)
		}
	}
}

func TestViewShowsJournalError(t *testing.T) {
	s := New(mastery.Snapshot{LearnerID: "ana"}, &countsRepo{err: errors.New("disk gone")})
	s.Update(s.Init()())

	v := s.View(100, 30)
	if !strings.Contains(v, "disk gone") {
		t.Errorf("view missing journal error:\n%s", v)
	}
	if !strings.Contains(v, "no mistakes recorded") {
		t.Errorf("empty session tally not reported:\n%s", v)
	}
}

func TestKeysPopScreen(t *testing.T) {
	for _, key := range []tea.KeyPressMsg{
		{Code: tea.KeyEscape},
		{Code: 'q', Text: "q"},
		{Code: 'p', Text: "p"},
	} {
		s := New(snapshot(), nil)
		_, cmd := s.Update(key)
		if cmd == nil {
			t.Fatalf("%v: no command", key)
		}
		if _, ok := cmd().(router.PopScreenMsg); !ok {
			t.Errorf("%v: expected PopScreenMsg", key)
		}
	}
}
