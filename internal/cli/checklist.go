package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/alexanderramin/ripasso/internal/cli/formatter"
	"github.com/alexanderramin/ripasso/internal/domain"
	"github.com/alexanderramin/ripasso/internal/service"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

type checklistKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Toggle key.Binding
	Quit   key.Binding
}

func newChecklistKeyMap() checklistKeyMap {
	return checklistKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Toggle: key.NewBinding(
			key.WithKeys(" ", "x", "enter"),
			key.WithHelp("space", "toggle"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

func (k checklistKeyMap) help() string {
	bindings := []key.Binding{k.Up, k.Down, k.Toggle, k.Quit}
	parts := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		parts = append(parts, h.Key+" "+h.Desc)
	}
	return formatter.Dim(strings.Join(parts, " · "))
}

// taskToggledMsg carries the plan state after a toggle.
type taskToggledMsg struct {
	plan *domain.StudyPlan
	err  error
}

// checklistModel lists one day's tasks and toggles them through the plan
// service, so every keypress is persisted before the view changes.
type checklistModel struct {
	ctx    context.Context
	plans  service.PlanService
	planID string
	day    *domain.DailyTask

	progress int
	cursor   int
	err      error
	keys     checklistKeyMap
	quitting bool
}

func newChecklistModel(ctx context.Context, plans service.PlanService, plan *domain.StudyPlan, day *domain.DailyTask) checklistModel {
	return checklistModel{
		ctx:      ctx,
		plans:    plans,
		planID:   plan.ID,
		day:      day,
		progress: plan.OverallProgress,
		keys:     newChecklistKeyMap(),
	}
}

func (m checklistModel) Init() tea.Cmd {
	return nil
}

func (m checklistModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case taskToggledMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.err = nil
		m.progress = msg.plan.OverallProgress
		if day, err := msg.plan.Day(m.day.ID); err == nil {
			m.day = day
		}
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
		case key.Matches(msg, m.keys.Down):
			if m.cursor < len(m.day.Tasks)-1 {
				m.cursor++
			}
		case key.Matches(msg, m.keys.Toggle):
			if len(m.day.Tasks) == 0 {
				return m, nil
			}
			return m, m.toggle(m.day.Tasks[m.cursor].ID)
		}
	}
	return m, nil
}

func (m checklistModel) toggle(taskID string) tea.Cmd {
	ctx, plans, planID, dayID := m.ctx, m.plans, m.planID, m.day.ID
	return func() tea.Msg {
		plan, err := plans.ToggleTask(ctx, planID, dayID, taskID)
		return taskToggledMsg{plan: plan, err: err}
	}
}

func (m checklistModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(formatter.Header(formatter.HumanDate(m.day.Date)))
	b.WriteString("\n")
	fmt.Fprintf(&b, "%s · %s planned\n\n", formatter.PhaseBadge(m.day.Phase), formatter.FormatMinutes(m.day.PlannedMinutes()))

	if len(m.day.Tasks) == 0 {
		b.WriteString(formatter.Dim("Nothing planned.") + "\n")
	}
	for i, t := range m.day.Tasks {
		cursor := "  "
		if i == m.cursor {
			cursor = formatter.StyleHeader.Render("> ")
		}
		fmt.Fprintf(&b, "%s%s %s %s\n", cursor, formatter.Checkbox(t.Completed), t.Title,
			formatter.Dim("("+formatter.FormatMinutes(t.EstimatedMinutes)+")"))
	}

	done := 0
	for _, t := range m.day.Tasks {
		if t.Completed {
			done++
		}
	}
	b.WriteString("\n")
	if m.day.Completed {
		b.WriteString(formatter.StyleGreen.Render("Day complete.") + "\n")
	} else {
		fmt.Fprintf(&b, "%d/%d tasks done\n", done, len(m.day.Tasks))
	}
	fmt.Fprintf(&b, "Plan %s\n", formatter.RenderProgress(m.progress, 20))
	if m.err != nil {
		b.WriteString(formatter.StyleRed.Render("Error: "+m.err.Error()) + "\n")
	}
	b.WriteString("\n" + m.keys.help() + "\n")
	return b.String()
}

func runChecklist(ctx context.Context, app *App, plan *domain.StudyPlan, day *domain.DailyTask) error {
	_, err := tea.NewProgram(newChecklistModel(ctx, app.Plans, plan, day)).Run()
	return err
}
