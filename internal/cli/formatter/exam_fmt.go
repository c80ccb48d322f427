package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/ripasso/internal/domain"
	"github.com/alexanderramin/ripasso/internal/repository"
	"github.com/alexanderramin/ripasso/internal/simulation"
)

func FormatSimulationList(sims []repository.SimulationSummary) string {
	if len(sims) == 0 {
		return Dim("No simulations yet. Create one with `ripasso exam generate`.") + "\n"
	}
	rows := make([][]string, 0, len(sims))
	for _, s := range sims {
		rows = append(rows, []string{
			TruncID(s.ID),
			s.ProfileName,
			fmt.Sprintf("%d", s.QuestionCount),
			fmt.Sprintf("%d", s.TotalPoints),
			s.CreatedAt.Format("2006-01-02 15:04"),
		})
	}
	return RenderTable([]string{"ID", "PROFILE", "QUESTIONS", "POINTS", "CREATED"}, rows)
}

// FormatSimulation renders the exam paper. Correct answers of closed
// questions are printed only when withAnswers is set.
func FormatSimulation(sim *domain.ExamSimulation, withAnswers bool) string {
	var b strings.Builder
	b.WriteString(Header("Exam simulation"))
	b.WriteString("\n")
	fmt.Fprintf(&b, "%s · profile %s\n", ShortID(sim.ID), Bold(sim.ProfileName))
	fmt.Fprintf(&b, "%s\n", Dim(fmt.Sprintf("%d questions · %d points", len(sim.Questions), sim.TotalPoints)))

	for i, q := range sim.Questions {
		fmt.Fprintf(&b, "\n%s %s\n", Bold(fmt.Sprintf("%d.", i+1)), q.Text)
		fmt.Fprintf(&b, "   %s\n", Dim(fmt.Sprintf("%s · %s · %s · %d pt", q.Topic, q.Type, q.Difficulty, q.Points)))
		for j, opt := range q.Options {
			fmt.Fprintf(&b, "   %c) %s\n", 'A'+j, opt)
		}
		if withAnswers && q.Type.IsClosed() {
			fmt.Fprintf(&b, "   %s %s\n", StyleGreen.Render("answer:"), q.CorrectAnswer)
		}
	}
	return b.String()
}

// FormatScore renders a score report next to the questions it grades.
func FormatScore(sim *domain.ExamSimulation, report *simulation.ScoreReport) string {
	var b strings.Builder

	rows := make([][]string, 0, len(report.Questions))
	for i, qs := range report.Questions {
		q := sim.Question(qs.QuestionID)
		topic := ""
		if q != nil {
			topic = q.Topic
		}
		rows = append(rows, []string{
			fmt.Sprintf("%d", i+1),
			topic,
			outcomeLabel(qs.Outcome),
			fmt.Sprintf("%d/%d", qs.Awarded, qs.Possible),
		})
	}
	b.WriteString(RenderTable([]string{"#", "TOPIC", "OUTCOME", "POINTS"}, rows))
	b.WriteString("\n")

	fmt.Fprintf(&b, "Exam:     %s\n", ShortID(report.SimulationID))
	fmt.Fprintf(&b, "Score:    %s\n", Bold(fmt.Sprintf("%d/%d", report.Awarded, report.ClosedPoints)))
	fmt.Fprintf(&b, "Closed:   %d correct · %d wrong · %d unanswered\n", report.Correct, report.Wrong, report.Unanswered)
	if report.Pending > 0 {
		fmt.Fprintf(&b, "Pending:  %d open questions worth up to %d points\n", report.Pending, report.PendingPoints)
	}
	return RenderBox("Score", strings.TrimRight(b.String(), "\n"))
}

func outcomeLabel(o simulation.Outcome) string {
	switch o {
	case simulation.OutcomeCorrect:
		return StyleGreen.Render("✔ correct")
	case simulation.OutcomeWrong:
		return StyleRed.Render("✖ wrong")
	case simulation.OutcomePending:
		return StyleYellow.Render("… pending")
	default:
		return Dim("– unanswered")
	}
}
