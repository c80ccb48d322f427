package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/ripasso/internal/domain"
	"github.com/alexanderramin/ripasso/internal/repository"
	"github.com/alexanderramin/ripasso/internal/service"
)

const progressWidth = 20

// FormatPlanList renders stored plans as a table ordered as given.
func FormatPlanList(plans []repository.PlanSummary, now time.Time) string {
	if len(plans) == 0 {
		return Dim("No plans yet. Create one with `ripasso plan generate`.") + "\n"
	}
	rows := make([][]string, 0, len(plans))
	for _, p := range plans {
		rows = append(rows, []string{
			TruncID(p.ID),
			p.ExamDate.Format(domain.DateLayout),
			ExamCountdown(p.ExamDate, now),
			fmt.Sprintf("%d", p.TotalDays),
			FormatMinutes(p.DailyMinutes),
			RenderProgress(p.OverallProgress, 10),
		})
	}
	return RenderTable([]string{"ID", "EXAM", "WHEN", "DAYS", "DAILY", "PROGRESS"}, rows)
}

// FormatPlan renders the full calendar, grouped by phase.
func FormatPlan(plan *domain.StudyPlan, now time.Time) string {
	var b strings.Builder

	b.WriteString(Header("Study plan"))
	b.WriteString("\n")
	fmt.Fprintf(&b, "ID:        %s\n", ShortID(plan.ID))
	fmt.Fprintf(&b, "Exam:      %s (%s)\n", Bold(plan.ExamDate.Format(domain.DateLayout)), ExamCountdown(plan.ExamDate, now))
	if plan.TargetGrade > 0 {
		fmt.Fprintf(&b, "Target:    %d/%d\n", plan.TargetGrade, domain.ExamGradeScale)
	}
	fmt.Fprintf(&b, "Daily:     %s\n", FormatMinutes(plan.DailyMinutes))
	fmt.Fprintf(&b, "Progress:  %s  %s\n", RenderProgress(plan.OverallProgress, progressWidth),
		Dim(fmt.Sprintf("%d/%d days", plan.CompletedDays(), plan.TotalDays)))

	var phase domain.StudyPhase
	for i := range plan.Days {
		day := &plan.Days[i]
		if day.Phase != phase {
			phase = day.Phase
			fmt.Fprintf(&b, "\n%s\n", PhaseBadge(phase))
		}
		b.WriteString(dayLine(day))
		for _, t := range day.Tasks {
			b.WriteString("    " + taskLine(t) + "\n")
		}
	}
	return b.String()
}

// FormatDay renders one day with numbered tasks, the numbers accepted by
// `ripasso plan toggle`.
func FormatDay(day *domain.DailyTask) string {
	var b strings.Builder
	b.WriteString(Header(HumanDate(day.Date)))
	b.WriteString("\n")
	fmt.Fprintf(&b, "%s · %s planned\n\n", PhaseBadge(day.Phase), FormatMinutes(day.PlannedMinutes()))
	if len(day.Tasks) == 0 {
		b.WriteString(Dim("Nothing planned.") + "\n")
		return b.String()
	}
	for i, t := range day.Tasks {
		fmt.Fprintf(&b, "%2d. %s\n", i+1, taskLine(t))
	}
	if day.Completed {
		b.WriteString("\n" + StyleGreen.Render("Day complete.") + "\n")
	}
	return b.String()
}

// FormatStatus renders the pace report of a plan.
func FormatStatus(status *service.PlanStatus, now time.Time) string {
	var b strings.Builder
	pace := status.Pace

	fmt.Fprintf(&b, "Plan:      %s\n", ShortID(status.PlanID))
	fmt.Fprintf(&b, "Exam:      %s (%s)\n", Bold(status.ExamDate.Format(domain.DateLayout)), ExamCountdown(status.ExamDate, now))
	fmt.Fprintf(&b, "Pace:      %s\n", RiskIndicator(pace.Level))
	fmt.Fprintf(&b, "Progress:  %s\n", RenderProgress(status.OverallProgress, progressWidth))
	fmt.Fprintf(&b, "Days:      %d done · %d overdue · %d left of %d\n",
		pace.CompletedDays, pace.OverdueDays, pace.DaysLeft, status.TotalDays)
	fmt.Fprintf(&b, "Remaining: %s", FormatMinutes(pace.RemainingMin))
	if pace.RequiredDailyMin > 0 {
		fmt.Fprintf(&b, " (%s/day needed)", FormatMinutes(int(pace.RequiredDailyMin+0.5)))
	}
	b.WriteString("\n\n")

	rows := make([][]string, 0, len(status.Phases))
	for _, p := range status.Phases {
		pct := 0
		if p.Days > 0 {
			pct = p.CompletedDays * 100 / p.Days
		}
		rows = append(rows, []string{
			PhaseBadge(p.Phase),
			fmt.Sprintf("%d/%d", p.CompletedDays, p.Days),
			RenderProgress(pct, 10),
		})
	}
	b.WriteString(RenderTable([]string{"PHASE", "DAYS", "DONE"}, rows))

	if status.Today != nil {
		b.WriteString("\n")
		b.WriteString(FormatDay(status.Today))
	}
	return RenderBox("Status", strings.TrimRight(b.String(), "\n"))
}

func dayLine(day *domain.DailyTask) string {
	mark := "  "
	if day.Completed {
		mark = StyleGreen.Render("✔ ")
	}
	return fmt.Sprintf("  %s%s  %s\n", mark, day.Date.Format(domain.DateLayout), Dim(FormatMinutes(day.PlannedMinutes())))
}

func taskLine(t domain.TaskItem) string {
	line := fmt.Sprintf("%s %s %s", Checkbox(t.Completed), t.Title, Dim("("+FormatMinutes(t.EstimatedMinutes)+", "+ActivityLabel(t.Activity)+")"))
	if t.Material != "" {
		line += Dim(" · " + t.Material)
	}
	return line
}
