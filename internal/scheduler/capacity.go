package scheduler

import (
	"time"

	"github.com/alexanderramin/ripasso/internal/domain"
)

const (
	// DefaultDailyMinutes replaces a missing or non-positive study budget.
	DefaultDailyMinutes = 120

	// shortPlanDays is the plan length below which phases collapse instead
	// of being split proportionally.
	shortPlanDays = 4
)

// phasePercent holds the proportional lengths of the first three phases;
// final-sprint takes whatever is left.
var phasePercent = map[domain.StudyPhase]int{
	domain.PhaseFoundation:    40,
	domain.PhasePractice:      35,
	domain.PhaseConsolidation: 15,
}

// collapsedPhases lists the phases kept by plans shorter than four days,
// indexed by day count.
var collapsedPhases = map[int][]domain.StudyPhase{
	1: {domain.PhaseFinalSprint},
	2: {domain.PhasePractice, domain.PhaseFinalSprint},
	3: {domain.PhaseFoundation, domain.PhasePractice, domain.PhaseFinalSprint},
}

// PhaseSpan is a contiguous block of plan days sharing a phase.
type PhaseSpan struct {
	Phase    domain.StudyPhase
	StartDay int
	Days     int
}

// Capacity is the day-indexed budget the rest of the planner fills.
type Capacity struct {
	Today        time.Time
	TotalDays    int
	DailyMinutes int
	Phases       []PhaseSpan
}

// PlanCapacity turns a deadline and a daily budget into a day count and a
// phase timeline. It never fails: bad budgets and past deadlines are clamped.
func PlanCapacity(examDate, today time.Time, dailyMinutes int) Capacity {
	start := CalendarDate(today)
	total := TotalDays(start, examDate)
	return Capacity{
		Today:        start,
		TotalDays:    total,
		DailyMinutes: EffectiveDailyMinutes(dailyMinutes),
		Phases:       SplitPhases(total),
	}
}

// Date returns the calendar date of the given zero-based plan day.
func (c Capacity) Date(day int) time.Time {
	return c.Today.AddDate(0, 0, day)
}

// PhaseOf returns the phase of the given zero-based plan day.
func (c Capacity) PhaseOf(day int) domain.StudyPhase {
	for _, span := range c.Phases {
		if day >= span.StartDay && day < span.StartDay+span.Days {
			return span.Phase
		}
	}
	return domain.PhaseFinalSprint
}

// EffectiveDailyMinutes replaces a non-positive budget with
// DefaultDailyMinutes. Positive budgets are kept as given, even when they are
// too small for a single session: such days stay empty.
func EffectiveDailyMinutes(m int) int {
	if m <= 0 {
		return DefaultDailyMinutes
	}
	return m
}

// CalendarDate strips the clock from t, keeping its calendar date in UTC.
func CalendarDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// TotalDays counts the whole calendar days from today until the exam date,
// never less than one.
func TotalDays(today, examDate time.Time) int {
	days := int(CalendarDate(examDate).Sub(CalendarDate(today)).Hours() / 24)
	if days < 1 {
		return 1
	}
	return days
}

// SplitPhases divides totalDays into contiguous phase spans.
func SplitPhases(totalDays int) []PhaseSpan {
	if totalDays < 1 {
		totalDays = 1
	}
	if totalDays < shortPlanDays {
		phases := collapsedPhases[totalDays]
		spans := make([]PhaseSpan, len(phases))
		for i, ph := range phases {
			spans[i] = PhaseSpan{Phase: ph, StartDay: i, Days: 1}
		}
		return spans
	}

	spans := make([]PhaseSpan, 0, len(domain.Phases))
	used := 0
	for _, ph := range domain.Phases {
		n := totalDays - used
		if pct, ok := phasePercent[ph]; ok {
			n = max(1, totalDays*pct/100)
		}
		spans = append(spans, PhaseSpan{Phase: ph, StartDay: used, Days: n})
		used += n
	}
	return spans
}
