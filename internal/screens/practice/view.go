package practice

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/algebriz/internal/diagnosis"
	"github.com/abhisek/algebriz/internal/remediation"
	"github.com/abhisek/algebriz/internal/steps"
	"github.com/abhisek/algebriz/internal/tutor"
	"github.com/abhisek/algebriz/internal/ui/layout"
	"github.com/abhisek/algebriz/internal/ui/theme"
)

var dim = lipgloss.NewStyle().Foreground(theme.TextDim)

func (s *Screen) View(width, height int) string {
	switch {
	case s.errMsg != "":
		return layout.Centered(lipgloss.NewStyle().Foreground(theme.Error), width,
			fmt.Sprintf("\n\n\nError: %s\n\nPress any key to quit.", s.errMsg))
	case s.confirmQuit:
		return renderQuitConfirm(width)
	case s.phase == phaseLoading || s.problem == nil:
		return layout.Centered(dim, width, "\n\n\nBalancing the scales...")
	case s.phase == phaseFeedback:
		return s.renderFeedback(width)
	}
	return s.renderQuestion(width)
}

func (s *Screen) renderInfoLine(width int) string {
	p := s.problem
	left := lipgloss.NewStyle().
		Foreground(theme.Secondary).
		Bold(true).
		Render(fmt.Sprintf("  %s · level %d", p.Level.Label(), p.Difficulty))

	stepInfo := "solved"
	if n := p.Sequence.Len(); n > 0 {
		stepInfo = fmt.Sprintf("step %d/%d", s.step+1, n)
	}
	right := dim.Render(fmt.Sprintf("%s   %s %d/%d   solved %d",
		stepInfo,
		lipgloss.NewStyle().Foreground(theme.Success).Render("✓"),
		s.correct, s.answered, s.solved))

	line := left
	if pad := width - lipgloss.Width(left) - lipgloss.Width(right) - 4; pad > 0 {
		line += strings.Repeat(" ", pad) + right
	}
	return line + "\n" +
		lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", max(width-4, 0))) + "\n\n"
}

func (s *Screen) renderQuestion(width int) string {
	p := s.problem
	var b strings.Builder
	b.WriteString(s.renderInfoLine(width))

	b.WriteString(layout.Centered(theme.Hint, width, p.DisplayText))
	b.WriteString("\n\n")
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, theme.Equation.Render(p.Equation.Display())))
	b.WriteString("\n\n")

	if p.Sequence.Solved() {
		b.WriteString(layout.Centered(theme.Body, width,
			fmt.Sprintf("x is already alone on the left: x = %d.", p.Equation.X)))
		b.WriteString("\n\n")
		b.WriteString(layout.Centered(dim, width, "Press Enter to continue."))
		return b.String()
	}

	if s.step == 0 && p.Features.ShowVisualAids {
		b.WriteString(layout.Centered(dim, width, p.Sequence.Intro.Question))
		b.WriteString("\n\n")
	}

	step := p.Sequence.Steps[s.step]
	block := theme.Title.Render(step.Title) + "\n"
	if step.Guidance != "" {
		block += theme.Hint.Render(step.Guidance) + "\n"
	}
	block += "\n"

	if s.freeForm {
		block += theme.Body.Bold(true).Render(step.Question) + "\n\n"
		block += "Operation: " + s.input.View() + "\n"
	} else {
		block += s.choice.View()
	}

	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, block))
	return b.String()
}

func (s *Screen) renderFeedback(width int) string {
	p, out := s.problem, s.outcome
	cw := min(width-8, 70)
	var b strings.Builder
	b.WriteString(s.renderInfoLine(width))

	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, theme.Equation.Render(p.Equation.Display())))
	b.WriteString("\n\n")

	if out.IsCorrect {
		b.WriteString(layout.Centered(theme.Correct, width, "Correct!"))
	} else {
		b.WriteString(layout.Centered(theme.Incorrect, width, "Not quite"))
	}
	b.WriteString("\n\n")

	body := lipgloss.NewStyle().Width(cw).Foreground(theme.Text)
	if !p.Sequence.Solved() && !out.IsCorrect && !out.Unrecognized {
		b.WriteString(layout.Centered(dim, width, "You chose "+displayOperation(s.lastChosen)))
		b.WriteString("\n")
	}
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, body.Render(out.Feedback)))
	b.WriteString("\n\n")

	if out.IsCorrect {
		b.WriteString(s.renderSuccess(width, out))
	} else {
		b.WriteString(s.renderHelp(width, cw, out))
	}

	b.WriteString("\n")
	b.WriteString(layout.Centered(dim, width, "Press any key to continue..."))
	return b.String()
}

func (s *Screen) renderSuccess(width int, out *tutor.Outcome) string {
	var b strings.Builder
	if t := out.Transformation; t != nil && s.problem.Features.ShowVisualAids {
		b.WriteString(layout.Centered(theme.Body, width, renderTransformation(t)))
		b.WriteString("\n\n")
	}
	if out.Celebration != "" {
		b.WriteString(layout.Centered(lipgloss.NewStyle().Foreground(theme.Accent).Bold(true), width, out.Celebration))
		b.WriteString("\n")
	}
	if out.IsSolved && out.Mastery.ReadyForNextLevel() {
		b.WriteString(layout.Centered(theme.Correct, width, "Ready for the next level!"))
		b.WriteString("\n")
	}
	return b.String()
}

func renderTransformation(t *steps.Transformation) string {
	return fmt.Sprintf("%s = %s   %s   %s = %s",
		t.Before.Left, t.Before.Right,
		lipgloss.NewStyle().Foreground(theme.Accent).Render("── "+t.Operation+" ─▶"),
		t.After.Left, t.After.Right)
}

func (s *Screen) renderHelp(width, cw int, out *tutor.Outcome) string {
	if out.Remediation == nil || !s.problem.Features.ErrorAnalysis {
		return ""
	}
	card := renderRemediation(out.Remediation, s.problem.Features.ShowVisualAids)
	if second := s.renderSecondOpinion(); second != "" {
		card += "\n\n" + second
	}
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, theme.HelpCard.Width(cw).Render(card)) + "\n"
}

func renderRemediation(r *remediation.Payload, visual bool) string {
	var lines []string
	if r.PrimaryIssue != "" {
		name := string(r.PrimaryIssue)
		if e := diagnosis.Lookup(r.PrimaryIssue); e != nil {
			name = e.Label
		}
		lines = append(lines, lipgloss.NewStyle().Foreground(theme.Accent).Bold(true).Render(name))
	}
	lines = append(lines, r.Explanation)
	if r.Analogy != "" {
		lines = append(lines, dim.Render("Think of it like this: ")+r.Analogy)
	}
	if r.PracticeTip != "" {
		lines = append(lines, dim.Render("Tip: ")+r.PracticeTip)
	}
	if visual && r.VisualAid != "" {
		lines = append(lines, dim.Render("Try a "+r.VisualAid+"."))
	}
	lines = append(lines, "", theme.Hint.Render(r.Encouragement))
	return strings.Join(lines, "\n")
}

func (s *Screen) renderSecondOpinion() string {
	switch {
	case s.reviewing:
		return dim.Render("Asking for a second opinion...")
	case s.reviewErr != nil:
		return dim.Render("Second opinion unavailable.")
	case s.review == nil:
		return ""
	case s.review.Type == "":
		return dim.Render("Second opinion: no known misconception fits. ") + s.review.Reasoning
	}
	name := string(s.review.Type)
	if e := diagnosis.Lookup(s.review.Type); e != nil {
		name = e.Label
	}
	return dim.Render(fmt.Sprintf("Second opinion: %s (%d%%). ", name, int(s.review.Confidence*100))) +
		s.review.Reasoning
}

func renderQuitConfirm(width int) string {
	var b strings.Builder
	b.WriteString("\n\n\n")
	b.WriteString(layout.Centered(theme.Body.Bold(true), width, "Stop practising?"))
	b.WriteString("\n")
	b.WriteString(layout.Centered(dim, width, "Your answers are saved in the journal."))
	b.WriteString("\n\n")
	b.WriteString(layout.Centered(lipgloss.NewStyle().Foreground(theme.Success), width, "[Y] Yes, quit"))
	b.WriteString("\n")
	b.WriteString(layout.Centered(lipgloss.NewStyle().Foreground(theme.Primary), width, "[N] No, keep going"))
	return b.String()
}
