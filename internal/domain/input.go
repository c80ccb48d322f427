package domain

import "time"

// DefaultTopic stands in for an empty topic list so that no day is left
// without content.
const DefaultTopic = "Argomento generale del corso"

// Material is a study resource supplied with the planning input. Size is
// opaque to the planner (pages, minutes, slides...).
type Material struct {
	Name string
	Kind MaterialKind
	Size int
}

// ExaminationProfile describes how a professor examines. Weights need not
// sum to 100; consumers normalise them.
type ExaminationProfile struct {
	Name string

	OralWeight      float64
	WrittenWeight   float64
	PracticalWeight float64

	MultipleChoice bool
	OpenQuestions  bool
	Exercises      bool
	CaseStudy      bool

	AverageQuestionCount int
	ExamDurationMin      int
	DifficultyLevel      int
	PreferredTopics      []string
}

// DefaultExaminationProfile returns the profile used when the caller has not
// described the professor: a mixed oral/written exam of ten questions.
func DefaultExaminationProfile() ExaminationProfile {
	return ExaminationProfile{
		Name:                 "default",
		OralWeight:           50,
		WrittenWeight:        50,
		PracticalWeight:      0,
		MultipleChoice:       true,
		OpenQuestions:        true,
		AverageQuestionCount: 10,
		ExamDurationMin:      120,
		DifficultyLevel:      3,
	}
}

// PlanningInput is the immutable input to plan generation.
type PlanningInput struct {
	ExamDate     time.Time
	TargetGrade  int
	DailyMinutes int
	Topics       []string
	Materials    []Material
	Profile      ExaminationProfile
}
