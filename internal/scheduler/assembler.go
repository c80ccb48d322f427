package scheduler

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/alexanderramin/ripasso/internal/domain"
	"github.com/google/uuid"
)

// planNamespace seeds the name-based identifiers of generated plans.
var planNamespace = uuid.MustParse("8d6f3c2a-51b7-4e0d-9a43-7c2e6b1f0a95")

type planFingerprint struct {
	Today        string            `json:"today"`
	ExamDate     string            `json:"exam_date"`
	TargetGrade  int               `json:"target_grade"`
	DailyMinutes int               `json:"daily_minutes"`
	Topics       []string          `json:"topics"`
	Materials    []domain.Material `json:"materials"`
}

// BuildPlan generates a complete study plan. The result depends only on the
// input and the calendar date of now: the same pair always yields the same
// plan, identifiers included.
func BuildPlan(in domain.PlanningInput, now time.Time) *domain.StudyPlan {
	capacity := PlanCapacity(in.ExamDate, now, in.DailyMinutes)
	topics := NormalizeTopics(in.Topics)
	allocation := AllocateTopics(topics, capacity.Phases)
	materials := NewMaterialPicker(in.Materials)

	planID := planIdentifier(in, capacity, topics)

	plan := &domain.StudyPlan{
		ID:           planID.String(),
		ExamDate:     CalendarDate(in.ExamDate),
		TargetGrade:  in.TargetGrade,
		DailyMinutes: capacity.DailyMinutes,
		TotalDays:    capacity.TotalDays,
		Days:         make([]domain.DailyTask, 0, capacity.TotalDays),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	for day := 0; day < capacity.TotalDays; day++ {
		date := capacity.Date(day)
		phase := capacity.PhaseOf(day)
		lastDay := day == capacity.TotalDays-1

		dayID := uuid.NewSHA1(planID, []byte("day:"+date.Format(domain.DateLayout)))
		tasks := SynthesizeTasks(phase, lastDay, allocation[day], capacity.DailyMinutes, materials)
		for i := range tasks {
			tasks[i].ID = uuid.NewSHA1(dayID, []byte(fmt.Sprintf("task:%d", i))).String()
		}

		plan.Days = append(plan.Days, domain.DailyTask{
			ID:    dayID.String(),
			Date:  date,
			Phase: phase,
			Tasks: tasks,
		})
	}

	plan.RecomputeProgress()
	return plan
}

func planIdentifier(in domain.PlanningInput, c Capacity, topics []string) uuid.UUID {
	fp := planFingerprint{
		Today:        c.Today.Format(domain.DateLayout),
		ExamDate:     CalendarDate(in.ExamDate).Format(domain.DateLayout),
		TargetGrade:  in.TargetGrade,
		DailyMinutes: c.DailyMinutes,
		Topics:       topics,
		Materials:    in.Materials,
	}
	data, _ := json.Marshal(fp)
	return uuid.NewSHA1(planNamespace, data)
}
