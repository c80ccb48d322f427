package scheduler

import (
	"testing"
	"time"

	"github.com/alexanderramin/ripasso/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testToday = time.Date(2025, 3, 15, 12, 0, 0, 0, time.UTC)

func phaseDays(spans []PhaseSpan) map[domain.StudyPhase]int {
	out := make(map[domain.StudyPhase]int)
	for _, s := range spans {
		out[s.Phase] += s.Days
	}
	return out
}

func TestTotalDays_FutureExam(t *testing.T) {
	assert.Equal(t, 10, TotalDays(testToday, testToday.AddDate(0, 0, 10)))
}

func TestTotalDays_ExamTodayOrPastClampsToOne(t *testing.T) {
	assert.Equal(t, 1, TotalDays(testToday, testToday))
	assert.Equal(t, 1, TotalDays(testToday, testToday.AddDate(0, 0, -30)))
}

func TestTotalDays_IgnoresClockTime(t *testing.T) {
	lateToday := time.Date(2025, 3, 15, 23, 59, 0, 0, time.UTC)
	earlyExam := time.Date(2025, 3, 17, 0, 1, 0, 0, time.UTC)
	assert.Equal(t, 2, TotalDays(lateToday, earlyExam))
}

func TestEffectiveDailyMinutes(t *testing.T) {
	cases := []struct {
		in, want int
	}{
		{0, DefaultDailyMinutes},
		{-15, DefaultDailyMinutes},
		{10, 10},
		{30, 30},
		{95, 95},
		{600, 600},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, EffectiveDailyMinutes(tc.in), "in=%d", tc.in)
	}
}

func TestSplitPhases_TenDays(t *testing.T) {
	spans := SplitPhases(10)

	require.Len(t, spans, 4)
	assert.Equal(t, map[domain.StudyPhase]int{
		domain.PhaseFoundation:    4,
		domain.PhasePractice:      3,
		domain.PhaseConsolidation: 1,
		domain.PhaseFinalSprint:   2,
	}, phaseDays(spans))
	assert.Equal(t, domain.PhaseFinalSprint, spans[3].Phase)
	assert.Equal(t, 8, spans[3].StartDay)
}

func TestSplitPhases_ShortPlansCollapse(t *testing.T) {
	cases := map[int][]domain.StudyPhase{
		1: {domain.PhaseFinalSprint},
		2: {domain.PhasePractice, domain.PhaseFinalSprint},
		3: {domain.PhaseFoundation, domain.PhasePractice, domain.PhaseFinalSprint},
	}
	for days, want := range cases {
		spans := SplitPhases(days)
		got := make([]domain.StudyPhase, len(spans))
		for i, s := range spans {
			got[i] = s.Phase
			assert.Equal(t, 1, s.Days)
		}
		assert.Equal(t, want, got, "days=%d", days)
	}
}

func TestSplitPhases_FourDaysEveryPhaseOneDay(t *testing.T) {
	spans := SplitPhases(4)
	require.Len(t, spans, 4)
	for _, s := range spans {
		assert.Equal(t, 1, s.Days, "phase %s", s.Phase)
	}
}

func TestSplitPhases_Invariants(t *testing.T) {
	for n := 1; n <= 400; n++ {
		spans := SplitPhases(n)
		total, next := 0, 0
		for _, s := range spans {
			assert.GreaterOrEqual(t, s.Days, 1, "n=%d phase=%s", n, s.Phase)
			assert.Equal(t, next, s.StartDay, "n=%d phases must be contiguous", n)
			next += s.Days
			total += s.Days
		}
		assert.Equal(t, n, total, "n=%d spans must cover every day", n)
		assert.Equal(t, domain.PhaseFinalSprint, spans[len(spans)-1].Phase, "n=%d", n)
	}
}

func TestSplitPhases_LargePlanFollowsProportions(t *testing.T) {
	got := phaseDays(SplitPhases(100))
	assert.Equal(t, 40, got[domain.PhaseFoundation])
	assert.Equal(t, 35, got[domain.PhasePractice])
	assert.Equal(t, 15, got[domain.PhaseConsolidation])
	assert.Equal(t, 10, got[domain.PhaseFinalSprint])
}

func TestPlanCapacity(t *testing.T) {
	c := PlanCapacity(testToday.AddDate(0, 0, 10), testToday, 0)

	assert.Equal(t, 10, c.TotalDays)
	assert.Equal(t, DefaultDailyMinutes, c.DailyMinutes)
	assert.Equal(t, time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC), c.Today)
	assert.Equal(t, time.Date(2025, 3, 24, 0, 0, 0, 0, time.UTC), c.Date(9))
	assert.Equal(t, domain.PhaseFoundation, c.PhaseOf(0))
	assert.Equal(t, domain.PhasePractice, c.PhaseOf(4))
	assert.Equal(t, domain.PhaseConsolidation, c.PhaseOf(7))
	assert.Equal(t, domain.PhaseFinalSprint, c.PhaseOf(9))
}
