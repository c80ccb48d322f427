package simulation

import (
	"strings"

	"github.com/alexanderramin/ripasso/internal/domain"
)

// Outcome is the grading result of one question.
type Outcome string

const (
	OutcomeCorrect    Outcome = "correct"
	OutcomeWrong      Outcome = "wrong"
	OutcomeUnanswered Outcome = "unanswered"
	// OutcomePending marks open questions, which need a human grader.
	OutcomePending Outcome = "pending"
)

// QuestionScore is the per-question line of a ScoreReport.
type QuestionScore struct {
	QuestionID string
	Outcome    Outcome
	Awarded    int
	Possible   int
}

// ScoreReport summarises a scored attempt. Awarded only counts closed
// questions; PendingPoints is what open questions could still add.
type ScoreReport struct {
	SimulationID  string
	Awarded       int
	ClosedPoints  int
	PendingPoints int
	TotalPoints   int
	Correct       int
	Wrong         int
	Unanswered    int
	Pending       int
	Questions     []QuestionScore
}

// Score grades answers keyed by question ID. Closed answers match the
// correct option ignoring case and surrounding blanks. Answers to unknown
// questions are ignored.
func Score(sim *domain.ExamSimulation, answers map[string]string) ScoreReport {
	report := ScoreReport{
		SimulationID: sim.ID,
		TotalPoints:  sim.TotalPoints,
		Questions:    make([]QuestionScore, 0, len(sim.Questions)),
	}

	for _, q := range sim.Questions {
		qs := QuestionScore{QuestionID: q.ID, Possible: q.Points}
		answer, answered := answers[q.ID]
		answer = strings.TrimSpace(answer)

		switch {
		case !q.Type.IsClosed():
			qs.Outcome = OutcomePending
			report.Pending++
			report.PendingPoints += q.Points
		case !answered || answer == "":
			qs.Outcome = OutcomeUnanswered
			report.Unanswered++
		case strings.EqualFold(answer, q.CorrectAnswer):
			qs.Outcome = OutcomeCorrect
			qs.Awarded = q.Points
			report.Correct++
		default:
			qs.Outcome = OutcomeWrong
			report.Wrong++
		}
		if q.Type.IsClosed() {
			report.ClosedPoints += q.Points
		}
		report.Awarded += qs.Awarded
		report.Questions = append(report.Questions, qs)
	}
	return report
}
