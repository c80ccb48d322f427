package repository

import (
	"context"
	"time"

	"github.com/alexanderramin/ripasso/internal/domain"
)

// PlanSummary is the list view of a stored plan, without its days.
type PlanSummary struct {
	ID              string
	ExamDate        time.Time
	TargetGrade     int
	DailyMinutes    int
	TotalDays       int
	OverallProgress int
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// SimulationSummary is the list view of a stored simulation.
type SimulationSummary struct {
	ID            string
	ProfileName   string
	QuestionCount int
	TotalPoints   int
	CreatedAt     time.Time
}

type PlanRepo interface {
	Create(ctx context.Context, p *domain.StudyPlan) error
	GetByID(ctx context.Context, id string) (*domain.StudyPlan, error)
	List(ctx context.Context) ([]PlanSummary, error)
	// SaveDayProgress persists the completion state of one day, its tasks
	// and the plan's derived progress.
	SaveDayProgress(ctx context.Context, p *domain.StudyPlan, dayID string) error
	Delete(ctx context.Context, id string) error
}

type SimulationRepo interface {
	Create(ctx context.Context, s *domain.ExamSimulation) error
	GetByID(ctx context.Context, id string) (*domain.ExamSimulation, error)
	List(ctx context.Context) ([]SimulationSummary, error)
	Delete(ctx context.Context, id string) error
}

type ProfileRepo interface {
	Get(ctx context.Context, name string) (*domain.ExaminationProfile, error)
	List(ctx context.Context) ([]*domain.ExaminationProfile, error)
	Upsert(ctx context.Context, p *domain.ExaminationProfile) error
	Delete(ctx context.Context, name string) error
}
