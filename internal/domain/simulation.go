package domain

import "time"

// ExamGradeScale is the point total of every simulation, matching the Italian
// university grading scale.
const ExamGradeScale = 30

type SimulationQuestion struct {
	ID            string
	Text          string
	Type          QuestionType
	Difficulty    DifficultyLabel
	Topic         string
	Points        int
	CorrectAnswer string
	Options       []string
}

type ExamSimulation struct {
	ID          string
	ProfileName string
	Topics      []string
	Questions   []SimulationQuestion
	TotalPoints int
	CreatedAt   time.Time
}

// Question returns the question with the given identifier, or nil.
func (s *ExamSimulation) Question(id string) *SimulationQuestion {
	for i := range s.Questions {
		if s.Questions[i].ID == id {
			return &s.Questions[i]
		}
	}
	return nil
}
