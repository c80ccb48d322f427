package scheduler

import (
	"fmt"

	"github.com/alexanderramin/ripasso/internal/domain"
)

const (
	// MinSessionMin is the shortest task the planner schedules.
	MinSessionMin = 30

	// MaxTasksPerDay caps the number of tasks packed into one day.
	MaxTasksPerDay = 6
)

// sessionMenu holds the allowed task durations, largest first.
var sessionMenu = []int{60, 45, MinSessionMin}

var activityPools = map[domain.StudyPhase][]domain.ActivityType{
	domain.PhaseFoundation:    {domain.ActivityRead, domain.ActivityReview},
	domain.PhasePractice:      {domain.ActivityPractice, domain.ActivityQuiz},
	domain.PhaseConsolidation: {domain.ActivityReview, domain.ActivityQuiz},
	domain.PhaseFinalSprint:   {domain.ActivityReview, domain.ActivityQuiz},
}

var activityVerbs = map[domain.ActivityType]string{
	domain.ActivityRead:     "Leggi",
	domain.ActivityPractice: "Esercitati su",
	domain.ActivityReview:   "Ripassa",
	domain.ActivityQuiz:     "Quiz su",
	domain.ActivityMockExam: "Simulazione d'esame",
}

// PackDurations fills budget greedily with the largest session that still
// fits, stopping at limit tasks or when less than MinSessionMin remains.
// The leftover is discarded.
func PackDurations(budget, limit int) []int {
	var out []int
	remaining := budget
	for len(out) < limit && remaining >= MinSessionMin {
		for _, d := range sessionMenu {
			if d <= remaining {
				out = append(out, d)
				remaining -= d
				break
			}
		}
	}
	return out
}

// ActivitiesFor returns the activity pool of a day. The final plan day is
// reserved for the mock exam.
func ActivitiesFor(phase domain.StudyPhase, lastDay bool) []domain.ActivityType {
	if lastDay {
		return []domain.ActivityType{domain.ActivityMockExam}
	}
	if pool, ok := activityPools[phase]; ok {
		return pool
	}
	return activityPools[domain.PhaseFinalSprint]
}

// TaskTitle renders the fixed "{verb} — {topic}" title.
func TaskTitle(activity domain.ActivityType, topic string) string {
	verb, ok := activityVerbs[activity]
	if !ok {
		verb = string(activity)
	}
	return fmt.Sprintf("%s — %s", verb, topic)
}

// SynthesizeTasks fills one day with tasks. Topics repeat in allocation
// order when the day has more tasks than topics. IDs are left empty for the
// assembler.
func SynthesizeTasks(phase domain.StudyPhase, lastDay bool, topics []string, budget int, materials *MaterialPicker) []domain.TaskItem {
	if len(topics) == 0 {
		topics = []string{domain.DefaultTopic}
	}
	limit := MaxTasksPerDay
	if lastDay {
		limit = 1
	}
	pool := ActivitiesFor(phase, lastDay)

	durations := PackDurations(budget, limit)
	tasks := make([]domain.TaskItem, 0, len(durations))
	for i, minutes := range durations {
		activity := pool[i%len(pool)]
		topic := topics[i%len(topics)]
		tasks = append(tasks, domain.TaskItem{
			Title:            TaskTitle(activity, topic),
			Activity:         activity,
			EstimatedMinutes: minutes,
			Topic:            topic,
			Material:         materials.Pick(activity),
		})
	}
	return tasks
}
