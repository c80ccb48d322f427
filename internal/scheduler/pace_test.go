package scheduler

import (
	"testing"

	"github.com/alexanderramin/ripasso/internal/domain"
	"github.com/stretchr/testify/assert"
)

func tenDayPlan() *domain.StudyPlan {
	return BuildPlan(domain.PlanningInput{
		ExamDate:     testToday.AddDate(0, 0, 10),
		DailyMinutes: 120,
		Topics:       []string{"Contratti", "Obbligazioni"},
	}, testToday)
}

func completeDays(t *testing.T, plan *domain.StudyPlan, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		day := plan.Days[i]
		for _, task := range day.Tasks {
			assert.NoError(t, plan.ToggleTask(day.ID, task.ID, testToday))
		}
	}
}

// smallPlan returns a plan of n days holding one task of the given minutes
// each, starting on testToday.
func smallPlan(n, minutes int) *domain.StudyPlan {
	plan := &domain.StudyPlan{DailyMinutes: 120, TotalDays: n}
	for i := 0; i < n; i++ {
		plan.Days = append(plan.Days, domain.DailyTask{
			ID:    string(rune('a' + i)),
			Date:  CalendarDate(testToday).AddDate(0, 0, i),
			Tasks: []domain.TaskItem{{ID: "t", EstimatedMinutes: minutes}},
		})
	}
	return plan
}

func TestComputePace_FreshPlanOnTrack(t *testing.T) {
	plan := tenDayPlan()
	result := ComputePace(plan, testToday)

	assert.Equal(t, domain.RiskOnTrack, result.Level)
	assert.Equal(t, 0, result.DaysElapsed)
	assert.Equal(t, 10, result.DaysLeft)
	assert.Equal(t, 0, result.OverdueDays)
	assert.Equal(t, 9*120+60, result.RemainingMin)
}

func TestComputePace_FarBehindIsCritical(t *testing.T) {
	result := ComputePace(tenDayPlan(), testToday.AddDate(0, 0, 8))

	// 1140 minutes left over 2 days against a 120 minute budget
	assert.Equal(t, domain.RiskCritical, result.Level)
	assert.Equal(t, 8, result.OverdueDays)
	assert.Equal(t, 2, result.DaysLeft)
	assert.InDelta(t, 570, result.RequiredDailyMin, 0.001)
}

func TestComputePace_KeepingUpIsOnTrack(t *testing.T) {
	plan := tenDayPlan()
	completeDays(t, plan, 5)

	result := ComputePace(plan, testToday.AddDate(0, 0, 5))
	assert.Equal(t, domain.RiskOnTrack, result.Level)
	assert.Equal(t, 5, result.CompletedDays)
	assert.Equal(t, 0, result.OverdueDays)
}

func TestComputePace_AllDoneOnTrack(t *testing.T) {
	plan := tenDayPlan()
	completeDays(t, plan, 10)

	result := ComputePace(plan, testToday.AddDate(0, 0, 30))
	assert.Equal(t, domain.RiskOnTrack, result.Level)
	assert.Equal(t, 0, result.RemainingMin)
}

func TestComputePace_ExamPassedWithWorkLeft(t *testing.T) {
	result := ComputePace(tenDayPlan(), testToday.AddDate(0, 0, 12))
	assert.Equal(t, domain.RiskCritical, result.Level)
	assert.Equal(t, 0, result.DaysLeft)
}

func TestComputePace_OverdueNearExamIsAtRisk(t *testing.T) {
	// 240 minutes over 3 days is within budget, but a day was skipped
	result := ComputePace(smallPlan(4, 60), testToday.AddDate(0, 0, 1))
	assert.Equal(t, domain.RiskAtRisk, result.Level)
	assert.Equal(t, 1, result.OverdueDays)
}

func TestComputePace_ModeratelyBehindIsAtRisk(t *testing.T) {
	// 4 x 120 over 3 days = 160/day, ratio 1.33
	result := ComputePace(smallPlan(4, 120), testToday.AddDate(0, 0, 1))
	assert.Equal(t, domain.RiskAtRisk, result.Level)
}
