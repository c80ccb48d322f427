package scheduler

import (
	"time"

	"github.com/alexanderramin/ripasso/internal/domain"
)

// PaceResult reports how a plan is tracking against the calendar.
// RequiredDailyMin is the average of the outstanding minutes over the days
// left, including today.
type PaceResult struct {
	Level            domain.RiskLevel
	DaysElapsed      int
	DaysLeft         int
	CompletedDays    int
	OverdueDays      int
	RemainingMin     int
	RequiredDailyMin float64
}

// ComputePace compares a plan's completed days with the calendar. Days before
// today that are not completed are overdue; their minutes have to be absorbed
// by the days that are left.
func ComputePace(plan *domain.StudyPlan, now time.Time) PaceResult {
	today := CalendarDate(now)
	result := PaceResult{CompletedDays: plan.CompletedDays()}

	for i := range plan.Days {
		day := &plan.Days[i]
		if day.Date.Before(today) {
			result.DaysElapsed++
			if !day.Completed {
				result.OverdueDays++
			}
		} else {
			result.DaysLeft++
		}
		for _, t := range day.Tasks {
			if !t.Completed {
				result.RemainingMin += t.EstimatedMinutes
			}
		}
	}

	if result.RemainingMin == 0 {
		result.Level = domain.RiskOnTrack
		return result
	}

	// Exam reached with work outstanding
	if result.DaysLeft == 0 {
		result.Level = domain.RiskCritical
		result.RequiredDailyMin = float64(result.RemainingMin)
		return result
	}

	result.RequiredDailyMin = float64(result.RemainingMin) / float64(result.DaysLeft)
	budget := float64(max(plan.DailyMinutes, 1))
	ratio := result.RequiredDailyMin / budget

	switch {
	case ratio > 1.5:
		result.Level = domain.RiskCritical
	case ratio > 1.0:
		result.Level = domain.RiskAtRisk
	case result.OverdueDays > 0 && result.DaysLeft <= 3:
		result.Level = domain.RiskAtRisk
	default:
		result.Level = domain.RiskOnTrack
	}
	return result
}
