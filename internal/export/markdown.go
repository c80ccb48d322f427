package export

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/ripasso/internal/domain"
)

var phaseTitles = map[domain.StudyPhase]string{
	domain.PhaseFoundation:    "Foundation",
	domain.PhasePractice:      "Practice",
	domain.PhaseConsolidation: "Consolidation",
	domain.PhaseFinalSprint:   "Final sprint",
}

// PlanMarkdown renders a plan as a checklist grouped by phase.
func PlanMarkdown(plan *domain.StudyPlan) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Study plan for the exam on %s\n\n", plan.ExamDate.Format(domain.DateLayout))
	fmt.Fprintf(&b, "- Days: %d\n", plan.TotalDays)
	fmt.Fprintf(&b, "- Daily budget: %d min\n", plan.DailyMinutes)
	if plan.TargetGrade > 0 {
		fmt.Fprintf(&b, "- Target grade: %d/30\n", plan.TargetGrade)
	}
	fmt.Fprintf(&b, "- Progress: %d%%\n", plan.OverallProgress)

	var phase domain.StudyPhase
	for _, day := range plan.Days {
		if day.Phase != phase {
			phase = day.Phase
			fmt.Fprintf(&b, "\n## %s\n", phaseTitle(phase))
		}
		fmt.Fprintf(&b, "\n### %s (%d min)", day.Date.Format(domain.DateLayout), day.PlannedMinutes())
		if day.Completed {
			b.WriteString(" - done")
		}
		b.WriteString("\n\n")
		for _, t := range day.Tasks {
			fmt.Fprintf(&b, "- [%s] %s (%d min)", checkbox(t.Completed), t.Title, t.EstimatedMinutes)
			if t.Material != "" {
				fmt.Fprintf(&b, ", %s", t.Material)
			}
			b.WriteString("\n")
		}
	}
	return b.String()
}

// SimulationMarkdown renders a simulation as an exam sheet. With answers set
// an answer key follows the questions.
func SimulationMarkdown(sim *domain.ExamSimulation, answers bool) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Exam simulation (%s)\n\n", sim.ProfileName)
	fmt.Fprintf(&b, "- Date: %s\n", sim.CreatedAt.Format(domain.DateLayout))
	fmt.Fprintf(&b, "- Questions: %d\n", len(sim.Questions))
	fmt.Fprintf(&b, "- Points: %d\n", sim.TotalPoints)
	if len(sim.Topics) > 0 {
		fmt.Fprintf(&b, "- Topics: %s\n", strings.Join(sim.Topics, ", "))
	}

	for i, q := range sim.Questions {
		fmt.Fprintf(&b, "\n## %d. %s (%d pt, %s)\n\n%s\n", i+1, q.Topic, q.Points, q.Difficulty, q.Text)
		if len(q.Options) > 0 {
			b.WriteString("\n")
			for j, opt := range q.Options {
				fmt.Fprintf(&b, "%c) %s\n", 'A'+j, opt)
				if j < len(q.Options)-1 {
					b.WriteString("\n")
				}
			}
		}
	}

	if answers {
		b.WriteString("\n## Answer key\n\n")
		for i, q := range sim.Questions {
			answer := q.CorrectAnswer
			if answer == "" {
				answer = "open answer, graded by hand"
			}
			fmt.Fprintf(&b, "%d. %s\n", i+1, answer)
		}
	}
	return b.String()
}

func phaseTitle(p domain.StudyPhase) string {
	if t, ok := phaseTitles[p]; ok {
		return t
	}
	return string(p)
}

func checkbox(done bool) string {
	if done {
		return "x"
	}
	return " "
}
