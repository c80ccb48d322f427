package domain

type RiskLevel string

const (
	RiskOnTrack  RiskLevel = "on_track"
	RiskAtRisk   RiskLevel = "at_risk"
	RiskCritical RiskLevel = "critical"
)

type StudyPhase string

const (
	PhaseFoundation    StudyPhase = "foundation"
	PhasePractice      StudyPhase = "practice"
	PhaseConsolidation StudyPhase = "consolidation"
	PhaseFinalSprint   StudyPhase = "final-sprint"
)

// Phases lists every phase in calendar order.
var Phases = []StudyPhase{PhaseFoundation, PhasePractice, PhaseConsolidation, PhaseFinalSprint}

type ActivityType string

const (
	ActivityRead     ActivityType = "read"
	ActivityPractice ActivityType = "practice"
	ActivityReview   ActivityType = "review"
	ActivityQuiz     ActivityType = "quiz"
	ActivityMockExam ActivityType = "mock-exam"
)

type MaterialKind string

const (
	MaterialBook      MaterialKind = "book"
	MaterialHandout   MaterialKind = "handout"
	MaterialNotes     MaterialKind = "notes"
	MaterialSlide     MaterialKind = "slide"
	MaterialVideo     MaterialKind = "video"
	MaterialAudio     MaterialKind = "audio"
	MaterialPastExam  MaterialKind = "past-exam"
	MaterialExercises MaterialKind = "exercises"
	MaterialOther     MaterialKind = "other"
)

// ValidMaterialKinds is the canonical set of accepted material kind strings.
var ValidMaterialKinds = map[string]bool{
	"book": true, "handout": true, "notes": true, "slide": true,
	"video": true, "audio": true, "past-exam": true, "exercises": true,
	"other": true,
}

type QuestionType string

const (
	QuestionMultipleChoice QuestionType = "multiple-choice"
	QuestionTrueFalse      QuestionType = "true-false"
	QuestionOpen           QuestionType = "open"
)

// IsClosed reports whether answers to this question type can be checked
// against a fixed option.
func (q QuestionType) IsClosed() bool {
	return q == QuestionMultipleChoice || q == QuestionTrueFalse
}

type DifficultyLabel string

const (
	DifficultyBase     DifficultyLabel = "base"
	DifficultyMedium   DifficultyLabel = "medio"
	DifficultyAdvanced DifficultyLabel = "avanzato"
)
