package scheduler

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/alexanderramin/ripasso/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func randomInput(rng *rand.Rand) domain.PlanningInput {
	topics := make([]string, rng.Intn(9))
	for i := range topics {
		topics[i] = fmt.Sprintf("Topic %d", rng.Intn(12))
	}
	return domain.PlanningInput{
		ExamDate:     testToday.AddDate(0, 0, rng.Intn(120)-10),
		DailyMinutes: rng.Intn(400) - 40,
		Topics:       topics,
		Profile:      domain.DefaultExaminationProfile(),
	}
}

// inputBudget is the budget a plan must respect: the caller's own, or the
// default when none was given.
func inputBudget(in domain.PlanningInput) int {
	if in.DailyMinutes <= 0 {
		return DefaultDailyMinutes
	}
	return in.DailyMinutes
}

// TestBuildPlan_Invariants_TimeBudget property-tests the capacity invariants:
// no day exceeds the caller's budget and every day holds at most six tasks,
// at least one whenever the budget fits a session.
func TestBuildPlan_Invariants_TimeBudget(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for trial := 0; trial < 300; trial++ {
		in := randomInput(rng)
		plan := BuildPlan(in, testToday)
		budget := inputBudget(in)

		require.GreaterOrEqual(t, plan.TotalDays, 1, "trial %d", trial)
		require.Len(t, plan.Days, plan.TotalDays, "trial %d", trial)

		total := 0
		for i, day := range plan.Days {
			minutes := day.PlannedMinutes()
			total += minutes
			assert.LessOrEqual(t, minutes, budget,
				"trial %d day %d: planned %d exceeds budget %d", trial, i, minutes, budget)
			if budget >= MinSessionMin {
				assert.NotEmpty(t, day.Tasks, "trial %d day %d", trial, i)
			} else {
				assert.Empty(t, day.Tasks, "trial %d day %d", trial, i)
			}
			assert.LessOrEqual(t, len(day.Tasks), MaxTasksPerDay, "trial %d day %d", trial, i)
			for _, task := range day.Tasks {
				assert.Contains(t, sessionMenu, task.EstimatedMinutes, "trial %d day %d", trial, i)
			}
		}
		assert.LessOrEqual(t, total, plan.TotalDays*budget, "trial %d", trial)
		assert.Equal(t, 0, plan.OverallProgress, "trial %d", trial)
	}
}

func TestBuildPlan_Invariants_SmallBudgetsNeverInflated(t *testing.T) {
	for budget := 1; budget < MinSessionMin; budget++ {
		plan := BuildPlan(domain.PlanningInput{
			ExamDate:     testToday.AddDate(0, 0, 5),
			DailyMinutes: budget,
			Topics:       []string{"A", "B"},
		}, testToday)

		assert.Equal(t, budget, plan.DailyMinutes)
		for i, day := range plan.Days {
			assert.LessOrEqual(t, day.PlannedMinutes(), budget, "budget %d day %d", budget, i)
		}
	}
}

// TestAllocateTopics_Invariants_PhaseCoverage checks that inside every phase
// each topic is visited before any topic is visited twice, and that visit
// counts never differ by more than one.
func TestAllocateTopics_Invariants_PhaseCoverage(t *testing.T) {
	rng := rand.New(rand.NewSource(7))

	for trial := 0; trial < 300; trial++ {
		topics := make([]string, 1+rng.Intn(10))
		for i := range topics {
			topics[i] = fmt.Sprintf("T%d", i)
		}
		spans := SplitPhases(1 + rng.Intn(90))
		days := AllocateTopics(topics, spans)

		for _, span := range spans {
			var visits []string
			for _, d := range days[span.StartDay : span.StartDay+span.Days] {
				require.Len(t, d, 1, "trial %d phase %s", trial, span.Phase)
				visits = append(visits, d[0])
			}
			assertRoundRobin(t, visits, topics, fmt.Sprintf("trial %d phase %s", trial, span.Phase))
		}
	}
}

// TestBuildPlan_Invariants_TaskTopicCoverage checks coverage on the tasks a
// plan actually contains: when the plan has at least as many days as topics
// every topic gets a task, and inside each phase the day topics follow the
// round-robin rule.
func TestBuildPlan_Invariants_TaskTopicCoverage(t *testing.T) {
	rng := rand.New(rand.NewSource(11))

	for trial := 0; trial < 300; trial++ {
		topics := make([]string, 1+rng.Intn(12))
		for i := range topics {
			topics[i] = fmt.Sprintf("T%d", i)
		}
		in := domain.PlanningInput{
			ExamDate:     testToday.AddDate(0, 0, len(topics)+rng.Intn(60)),
			DailyMinutes: MinSessionMin + rng.Intn(400),
			Topics:       topics,
		}
		plan := BuildPlan(in, testToday)
		require.GreaterOrEqual(t, plan.TotalDays, len(topics), "trial %d", trial)

		covered := map[string]bool{}
		byPhase := map[domain.StudyPhase][]string{}
		for i, day := range plan.Days {
			require.NotEmpty(t, day.Tasks, "trial %d day %d", trial, i)
			dayTopic := day.Tasks[0].Topic
			for _, task := range day.Tasks {
				assert.Equal(t, dayTopic, task.Topic, "trial %d day %d", trial, i)
				covered[task.Topic] = true
			}
			byPhase[day.Phase] = append(byPhase[day.Phase], dayTopic)
		}
		for _, topic := range topics {
			assert.True(t, covered[topic], "trial %d: topic %s never scheduled (%d days)", trial, topic, plan.TotalDays)
		}
		for phase, visits := range byPhase {
			assertRoundRobin(t, visits, topics, fmt.Sprintf("trial %d phase %s", trial, phase))
		}
	}
}

// assertRoundRobin checks that no topic repeats before every topic has been
// visited and that visit counts differ by at most one.
func assertRoundRobin(t *testing.T, visits, topics []string, label string) {
	t.Helper()

	seen := map[string]bool{}
	for _, topic := range visits[:min(len(visits), len(topics))] {
		assert.False(t, seen[topic], "%s: %q repeated before full coverage", label, topic)
		seen[topic] = true
	}

	if len(visits) < len(topics) {
		return
	}
	counts := map[string]int{}
	for _, topic := range visits {
		counts[topic]++
	}
	lo, hi := len(visits), 0
	for _, topic := range topics {
		lo = min(lo, counts[topic])
		hi = max(hi, counts[topic])
	}
	assert.LessOrEqual(t, hi-lo, 1, "%s: uneven coverage %v", label, counts)
}

func TestBuildPlan_Invariants_PhaseOrderAndMockExam(t *testing.T) {
	rng := rand.New(rand.NewSource(99))
	order := map[domain.StudyPhase]int{}
	for i, ph := range domain.Phases {
		order[ph] = i
	}

	for trial := 0; trial < 200; trial++ {
		in := randomInput(rng)
		plan := BuildPlan(in, testToday)

		for i := 1; i < len(plan.Days); i++ {
			assert.LessOrEqual(t, order[plan.Days[i-1].Phase], order[plan.Days[i].Phase], "trial %d day %d", trial, i)
			assert.Equal(t, plan.Days[i-1].Date.AddDate(0, 0, 1), plan.Days[i].Date, "trial %d day %d", trial, i)
		}

		last := plan.LastDay()
		assert.Equal(t, domain.PhaseFinalSprint, last.Phase, "trial %d", trial)
		if inputBudget(in) < MinSessionMin {
			assert.Empty(t, last.Tasks, "trial %d", trial)
			continue
		}
		require.Len(t, last.Tasks, 1, "trial %d", trial)
		assert.Equal(t, domain.ActivityMockExam, last.Tasks[0].Activity, "trial %d", trial)
		for _, day := range plan.Days[:len(plan.Days)-1] {
			for _, task := range day.Tasks {
				assert.NotEqual(t, domain.ActivityMockExam, task.Activity, "trial %d", trial)
			}
		}
	}
}
