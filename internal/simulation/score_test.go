package simulation

import (
	"testing"

	"github.com/alexanderramin/ripasso/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func defaultSimulation() *domain.ExamSimulation {
	return Generate(domain.DefaultExaminationProfile(), []string{"Contratti", "Obbligazioni"}, testNow)
}

func TestScore_AllClosedCorrect(t *testing.T) {
	sim := defaultSimulation()
	answers := map[string]string{}
	for _, q := range sim.Questions {
		if q.Type.IsClosed() {
			answers[q.ID] = q.CorrectAnswer
		}
	}

	report := Score(sim, answers)
	assert.Equal(t, 15, report.Awarded)
	assert.Equal(t, 15, report.ClosedPoints)
	assert.Equal(t, 15, report.PendingPoints)
	assert.Equal(t, 30, report.TotalPoints)
	assert.Equal(t, 5, report.Correct)
	assert.Equal(t, 5, report.Pending)
	assert.Zero(t, report.Wrong)
	assert.Zero(t, report.Unanswered)
	require.Len(t, report.Questions, 10)
	assert.Equal(t, OutcomePending, report.Questions[0].Outcome)
	assert.Equal(t, OutcomeCorrect, report.Questions[1].Outcome)
}

func TestScore_CaseInsensitiveAndTrimmed(t *testing.T) {
	sim := defaultSimulation()
	tf := sim.Questions[3]
	mc := sim.Questions[1]

	report := Score(sim, map[string]string{
		tf.ID: "  vero ",
		mc.ID: "obbligazioni",
	})
	assert.Equal(t, 2, report.Correct)
	assert.Equal(t, tf.Points+mc.Points, report.Awarded)
	assert.Equal(t, 3, report.Unanswered)
}

func TestScore_WrongAndBlankAnswers(t *testing.T) {
	sim := defaultSimulation()
	report := Score(sim, map[string]string{
		sim.Questions[1].ID: "Contratti",
		sim.Questions[3].ID: "",
		"unknown":           "Vero",
	})
	assert.Equal(t, 0, report.Awarded)
	assert.Equal(t, 1, report.Wrong)
	assert.Equal(t, 4, report.Unanswered)
	assert.Equal(t, OutcomeWrong, report.Questions[1].Outcome)
	assert.Equal(t, OutcomeUnanswered, report.Questions[3].Outcome)
}

func TestScore_OpenAnswersStayPending(t *testing.T) {
	sim := Generate(openOnlyProfile(3), []string{"A"}, testNow)
	report := Score(sim, map[string]string{sim.Questions[0].ID: "Una risposta molto lunga e articolata"})

	assert.Equal(t, 0, report.Awarded)
	assert.Equal(t, 3, report.Pending)
	assert.Equal(t, 30, report.PendingPoints)
	assert.Equal(t, 0, report.ClosedPoints)
}
