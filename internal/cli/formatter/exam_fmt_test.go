package formatter

import (
	"testing"

	"github.com/alexanderramin/ripasso/internal/domain"
	"github.com/alexanderramin/ripasso/internal/repository"
	"github.com/alexanderramin/ripasso/internal/simulation"
	"github.com/alexanderramin/ripasso/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func closedOnlySimulation() *domain.ExamSimulation {
	profile := testutil.NewTestProfile(
		testutil.WithArchetypes(true, false, false, false),
		testutil.WithWeights(0, 100, 0),
		testutil.WithQuestionCount(3),
	)
	return testutil.NewTestSimulation(profile, "Contratti", "Obbligazioni")
}

func TestFormatSimulation_HidesAnswersByDefault(t *testing.T) {
	sim := closedOnlySimulation()
	require.NotEmpty(t, sim.Questions)

	out := FormatSimulation(sim, false)
	assert.Contains(t, out, "profile diritto-privato")
	assert.Contains(t, out, sim.ID[:8])
	assert.Contains(t, out, sim.Questions[0].Text)
	assert.Contains(t, out, "A) ")
	assert.NotContains(t, out, "answer:")

	withAnswers := FormatSimulation(sim, true)
	assert.Contains(t, withAnswers, "answer: "+sim.Questions[0].CorrectAnswer)
}

func TestFormatScore(t *testing.T) {
	sim := testutil.NewTestSimulation(testutil.NewTestProfile(), "Contratti", "Obbligazioni")
	answers := map[string]string{}
	for _, q := range sim.Questions {
		if q.Type.IsClosed() {
			answers[q.ID] = q.CorrectAnswer
		}
	}
	report := simulation.Score(sim, answers)

	out := FormatScore(sim, &report)
	assert.Contains(t, out, "correct")
	assert.Contains(t, out, "Contratti")
	if report.Pending > 0 {
		assert.Contains(t, out, "Pending:")
	}
	assert.Contains(t, out, "0 wrong")
}

func TestFormatSimulationList(t *testing.T) {
	assert.Contains(t, FormatSimulationList(nil), "No simulations yet")

	out := FormatSimulationList([]repository.SimulationSummary{{
		ID:            "0123456789abcdef",
		ProfileName:   "default",
		QuestionCount: 10,
		TotalPoints:   30,
		CreatedAt:     testutil.TestNow,
	}})
	assert.Contains(t, out, "01234567")
	assert.Contains(t, out, "default")
	assert.Contains(t, out, "2025-03-15 12:00")
}

func TestFormatProfile(t *testing.T) {
	p := testutil.NewTestProfile(testutil.WithPreferredTopics("Contratti"))
	out := FormatProfile(p)
	assert.Contains(t, out, "PROFILE")
	assert.Contains(t, out, "Name:       diritto-privato")
	assert.Contains(t, out, "50/50/0")
	assert.Contains(t, out, "multiple choice, open")
	assert.Contains(t, out, "Preferred:  Contratti")

	list := FormatProfileList([]*domain.ExaminationProfile{p})
	assert.Contains(t, list, "diritto-privato")
	assert.Contains(t, FormatProfileList(nil), "No profiles saved")
}
