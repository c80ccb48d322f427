package domain

import (
	"fmt"
	"time"
)

// DateLayout is the calendar-day format used across import files, storage
// and output.
const DateLayout = "2006-01-02"

type TaskItem struct {
	ID               string
	Title            string
	Activity         ActivityType
	EstimatedMinutes int
	Topic            string
	Material         string
	Completed        bool
}

type DailyTask struct {
	ID          string
	Date        time.Time
	Phase       StudyPhase
	Completed   bool
	CompletedAt *time.Time
	Tasks       []TaskItem
}

// PlannedMinutes sums the estimated minutes of the day's tasks.
func (d *DailyTask) PlannedMinutes() int {
	total := 0
	for _, t := range d.Tasks {
		total += t.EstimatedMinutes
	}
	return total
}

// allTasksDone reports whether the day has tasks and every one is completed.
func (d *DailyTask) allTasksDone() bool {
	if len(d.Tasks) == 0 {
		return false
	}
	for _, t := range d.Tasks {
		if !t.Completed {
			return false
		}
	}
	return true
}

// StudyPlan is the aggregate root of a generated plan. Only task completion
// is mutable; everything above TaskItem.Completed is derived from it.
type StudyPlan struct {
	ID              string
	ExamDate        time.Time
	TargetGrade     int
	DailyMinutes    int
	TotalDays       int
	Days            []DailyTask
	OverallProgress int
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// CompletedDays counts days whose tasks are all completed.
func (p *StudyPlan) CompletedDays() int {
	n := 0
	for i := range p.Days {
		if p.Days[i].Completed {
			n++
		}
	}
	return n
}

// RecomputeProgress sets OverallProgress from the completed-day count.
func (p *StudyPlan) RecomputeProgress() {
	if p.TotalDays <= 0 {
		p.OverallProgress = 0
		return
	}
	p.OverallProgress = 100 * p.CompletedDays() / p.TotalDays
}

// Day returns the day with the given identifier.
func (p *StudyPlan) Day(dayID string) (*DailyTask, error) {
	for i := range p.Days {
		if p.Days[i].ID == dayID {
			return &p.Days[i], nil
		}
	}
	return nil, fmt.Errorf("day %q: %w", dayID, ErrDayNotFound)
}

// DayOn returns the day scheduled on the calendar date of t.
func (p *StudyPlan) DayOn(t time.Time) (*DailyTask, error) {
	want := t.Format(DateLayout)
	for i := range p.Days {
		if p.Days[i].Date.Format(DateLayout) == want {
			return &p.Days[i], nil
		}
	}
	return nil, fmt.Errorf("day on %s: %w", want, ErrDayNotFound)
}

// ToggleTask flips the completion flag of one task and re-derives the day
// and plan state. Unknown identifiers leave the plan untouched.
func (p *StudyPlan) ToggleTask(dayID, taskID string, now time.Time) error {
	day, err := p.Day(dayID)
	if err != nil {
		return err
	}
	idx := -1
	for i := range day.Tasks {
		if day.Tasks[i].ID == taskID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return fmt.Errorf("task %q in day %q: %w", taskID, dayID, ErrTaskNotFound)
	}

	day.Tasks[idx].Completed = !day.Tasks[idx].Completed

	wasCompleted := day.Completed
	day.Completed = day.allTasksDone()
	switch {
	case day.Completed && !wasCompleted:
		at := now
		day.CompletedAt = &at
	case !day.Completed:
		day.CompletedAt = nil
	}

	p.RecomputeProgress()
	p.UpdatedAt = now
	return nil
}

// LastDay returns the final day of the plan.
func (p *StudyPlan) LastDay() *DailyTask {
	if len(p.Days) == 0 {
		return nil
	}
	return &p.Days[len(p.Days)-1]
}
