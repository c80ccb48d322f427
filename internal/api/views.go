package api

import (
	"time"

	"github.com/alexanderramin/ripasso/internal/domain"
	"github.com/alexanderramin/ripasso/internal/repository"
	"github.com/alexanderramin/ripasso/internal/service"
	"github.com/alexanderramin/ripasso/internal/simulation"
)

type taskView struct {
	ID               string `json:"id"`
	Title            string `json:"title"`
	Activity         string `json:"activity"`
	EstimatedMinutes int    `json:"estimated_minutes"`
	Topic            string `json:"topic"`
	Material         string `json:"material,omitempty"`
	Completed        bool   `json:"completed"`
}

type dayView struct {
	ID          string     `json:"id"`
	Date        string     `json:"date"`
	Phase       string     `json:"phase"`
	Completed   bool       `json:"completed"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	Tasks       []taskView `json:"tasks"`
}

type planView struct {
	ID              string    `json:"id"`
	ExamDate        string    `json:"exam_date"`
	TargetGrade     int       `json:"target_grade"`
	DailyMinutes    int       `json:"daily_minutes"`
	TotalDays       int       `json:"total_days"`
	OverallProgress int       `json:"overall_progress"`
	Days            []dayView `json:"days"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

type planSummaryView struct {
	ID              string    `json:"id"`
	ExamDate        string    `json:"exam_date"`
	TargetGrade     int       `json:"target_grade"`
	DailyMinutes    int       `json:"daily_minutes"`
	TotalDays       int       `json:"total_days"`
	OverallProgress int       `json:"overall_progress"`
	CreatedAt       time.Time `json:"created_at"`
}

type phaseView struct {
	Phase         string `json:"phase"`
	Days          int    `json:"days"`
	CompletedDays int    `json:"completed_days"`
}

type paceView struct {
	Level            string  `json:"level"`
	DaysElapsed      int     `json:"days_elapsed"`
	DaysLeft         int     `json:"days_left"`
	CompletedDays    int     `json:"completed_days"`
	OverdueDays      int     `json:"overdue_days"`
	RemainingMinutes int     `json:"remaining_minutes"`
	RequiredDailyMin float64 `json:"required_daily_minutes"`
}

type statusView struct {
	PlanID          string      `json:"plan_id"`
	ExamDate        string      `json:"exam_date"`
	TotalDays       int         `json:"total_days"`
	OverallProgress int         `json:"overall_progress"`
	Pace            paceView    `json:"pace"`
	Phases          []phaseView `json:"phases"`
	Today           *dayView    `json:"today,omitempty"`
}

type questionView struct {
	ID            string   `json:"id"`
	Text          string   `json:"text"`
	Type          string   `json:"type"`
	Difficulty    string   `json:"difficulty"`
	Topic         string   `json:"topic"`
	Points        int      `json:"points"`
	Options       []string `json:"options,omitempty"`
	CorrectAnswer string   `json:"correct_answer,omitempty"`
}

type simulationView struct {
	ID          string         `json:"id"`
	ProfileName string         `json:"profile_name"`
	Topics      []string       `json:"topics"`
	TotalPoints int            `json:"total_points"`
	Questions   []questionView `json:"questions"`
	CreatedAt   time.Time      `json:"created_at"`
}

type simulationSummaryView struct {
	ID            string    `json:"id"`
	ProfileName   string    `json:"profile_name"`
	TotalPoints   int       `json:"total_points"`
	QuestionCount int       `json:"question_count"`
	CreatedAt     time.Time `json:"created_at"`
}

type profileView struct {
	Name                 string   `json:"name"`
	OralWeight           float64  `json:"oral_weight"`
	WrittenWeight        float64  `json:"written_weight"`
	PracticalWeight      float64  `json:"practical_weight"`
	MultipleChoice       bool     `json:"multiple_choice"`
	OpenQuestions        bool     `json:"open_questions"`
	Exercises            bool     `json:"exercises"`
	CaseStudy            bool     `json:"case_study"`
	AverageQuestionCount int      `json:"average_question_count"`
	ExamDurationMin      int      `json:"exam_duration_min"`
	DifficultyLevel      int      `json:"difficulty_level"`
	PreferredTopics      []string `json:"preferred_topics,omitempty"`
}

type questionScoreView struct {
	QuestionID string `json:"question_id"`
	Outcome    string `json:"outcome"`
	Awarded    int    `json:"awarded"`
	Possible   int    `json:"possible"`
}

type scoreView struct {
	SimulationID  string              `json:"simulation_id"`
	Awarded       int                 `json:"awarded"`
	ClosedPoints  int                 `json:"closed_points"`
	PendingPoints int                 `json:"pending_points"`
	TotalPoints   int                 `json:"total_points"`
	Correct       int                 `json:"correct"`
	Wrong         int                 `json:"wrong"`
	Unanswered    int                 `json:"unanswered"`
	Pending       int                 `json:"pending"`
	Questions     []questionScoreView `json:"questions"`
}

func toDayView(d *domain.DailyTask) dayView {
	v := dayView{
		ID:          d.ID,
		Date:        d.Date.Format(domain.DateLayout),
		Phase:       string(d.Phase),
		Completed:   d.Completed,
		CompletedAt: d.CompletedAt,
		Tasks:       make([]taskView, 0, len(d.Tasks)),
	}
	for _, t := range d.Tasks {
		v.Tasks = append(v.Tasks, taskView{
			ID:               t.ID,
			Title:            t.Title,
			Activity:         string(t.Activity),
			EstimatedMinutes: t.EstimatedMinutes,
			Topic:            t.Topic,
			Material:         t.Material,
			Completed:        t.Completed,
		})
	}
	return v
}

func toPlanView(p *domain.StudyPlan) planView {
	v := planView{
		ID:              p.ID,
		ExamDate:        p.ExamDate.Format(domain.DateLayout),
		TargetGrade:     p.TargetGrade,
		DailyMinutes:    p.DailyMinutes,
		TotalDays:       p.TotalDays,
		OverallProgress: p.OverallProgress,
		Days:            make([]dayView, 0, len(p.Days)),
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
	}
	for i := range p.Days {
		v.Days = append(v.Days, toDayView(&p.Days[i]))
	}
	return v
}

func toPlanSummaryViews(plans []repository.PlanSummary) []planSummaryView {
	out := make([]planSummaryView, 0, len(plans))
	for _, p := range plans {
		out = append(out, planSummaryView{
			ID:              p.ID,
			ExamDate:        p.ExamDate.Format(domain.DateLayout),
			TargetGrade:     p.TargetGrade,
			DailyMinutes:    p.DailyMinutes,
			TotalDays:       p.TotalDays,
			OverallProgress: p.OverallProgress,
			CreatedAt:       p.CreatedAt,
		})
	}
	return out
}

func toStatusView(s *service.PlanStatus) statusView {
	v := statusView{
		PlanID:          s.PlanID,
		ExamDate:        s.ExamDate.Format(domain.DateLayout),
		TotalDays:       s.TotalDays,
		OverallProgress: s.OverallProgress,
		Pace: paceView{
			Level:            string(s.Pace.Level),
			DaysElapsed:      s.Pace.DaysElapsed,
			DaysLeft:         s.Pace.DaysLeft,
			CompletedDays:    s.Pace.CompletedDays,
			OverdueDays:      s.Pace.OverdueDays,
			RemainingMinutes: s.Pace.RemainingMin,
			RequiredDailyMin: s.Pace.RequiredDailyMin,
		},
		Phases: make([]phaseView, 0, len(s.Phases)),
	}
	for _, ph := range s.Phases {
		v.Phases = append(v.Phases, phaseView{Phase: string(ph.Phase), Days: ph.Days, CompletedDays: ph.CompletedDays})
	}
	if s.Today != nil {
		today := toDayView(s.Today)
		v.Today = &today
	}
	return v
}

// toSimulationView hides correct answers unless withAnswers is set.
func toSimulationView(s *domain.ExamSimulation, withAnswers bool) simulationView {
	v := simulationView{
		ID:          s.ID,
		ProfileName: s.ProfileName,
		Topics:      s.Topics,
		TotalPoints: s.TotalPoints,
		Questions:   make([]questionView, 0, len(s.Questions)),
		CreatedAt:   s.CreatedAt,
	}
	for _, q := range s.Questions {
		qv := questionView{
			ID:         q.ID,
			Text:       q.Text,
			Type:       string(q.Type),
			Difficulty: string(q.Difficulty),
			Topic:      q.Topic,
			Points:     q.Points,
			Options:    q.Options,
		}
		if withAnswers {
			qv.CorrectAnswer = q.CorrectAnswer
		}
		v.Questions = append(v.Questions, qv)
	}
	return v
}

func toSimulationSummaryViews(sims []repository.SimulationSummary) []simulationSummaryView {
	out := make([]simulationSummaryView, 0, len(sims))
	for _, s := range sims {
		out = append(out, simulationSummaryView{
			ID:            s.ID,
			ProfileName:   s.ProfileName,
			TotalPoints:   s.TotalPoints,
			QuestionCount: s.QuestionCount,
			CreatedAt:     s.CreatedAt,
		})
	}
	return out
}

func toProfileView(p *domain.ExaminationProfile) profileView {
	return profileView{
		Name:                 p.Name,
		OralWeight:           p.OralWeight,
		WrittenWeight:        p.WrittenWeight,
		PracticalWeight:      p.PracticalWeight,
		MultipleChoice:       p.MultipleChoice,
		OpenQuestions:        p.OpenQuestions,
		Exercises:            p.Exercises,
		CaseStudy:            p.CaseStudy,
		AverageQuestionCount: p.AverageQuestionCount,
		ExamDurationMin:      p.ExamDurationMin,
		DifficultyLevel:      p.DifficultyLevel,
		PreferredTopics:      p.PreferredTopics,
	}
}

func toScoreView(r *simulation.ScoreReport) scoreView {
	v := scoreView{
		SimulationID:  r.SimulationID,
		Awarded:       r.Awarded,
		ClosedPoints:  r.ClosedPoints,
		PendingPoints: r.PendingPoints,
		TotalPoints:   r.TotalPoints,
		Correct:       r.Correct,
		Wrong:         r.Wrong,
		Unanswered:    r.Unanswered,
		Pending:       r.Pending,
		Questions:     make([]questionScoreView, 0, len(r.Questions)),
	}
	for _, q := range r.Questions {
		v.Questions = append(v.Questions, questionScoreView{
			QuestionID: q.QuestionID,
			Outcome:    string(q.Outcome),
			Awarded:    q.Awarded,
			Possible:   q.Possible,
		})
	}
	return v
}
