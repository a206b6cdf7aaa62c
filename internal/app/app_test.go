package app

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/algebriz/internal/tutor"
)

func newTestModel() AppModel {
	return newAppModel(Options{Engine: tutor.NewEngine(tutor.Config{}), LearnerID: "ana", Level: 1})
}

func TestRunWithoutEngine(t *testing.T) {
	if err := Run(Options{}); err == nil {
		t.Error("Run without an engine should fail")
	}
}

func TestViewTooSmall(t *testing.T) {
	m := newTestModel()
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 40, Height: 10})

	out := updated.(AppModel).render()
	if !strings.Contains(out, "Terminal too small") {
		t.Errorf("render = %q, want size warning", out)
	}
}

func TestViewFramesActiveScreen(t *testing.T) {
	m := newTestModel()
	model, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	model, _ = model.Update(model.(AppModel).Init()())

	out := model.(AppModel).render()
	for _, want := range []string{"Algebriz", "Practice", "guided", "Esc", "="} {
		if !strings.Contains(out, want) {
			t.Errorf("frame missing %q", want)
		}
	}
	if !model.(AppModel).View().AltScreen {
		t.Error("expected alt screen")
	}
}

func TestCtrlCQuits(t *testing.T) {
	m := newTestModel()
	_, cmd := m.Update(tea.KeyPressMsg{Code: 'c', Mod: tea.ModCtrl})
	if cmd == nil {
		t.Fatal("ctrl+c should quit")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("ctrl+c should return tea.Quit")
	}
}
