package service

import (
	"context"

	"github.com/alexanderramin/ripasso/internal/domain"
	"github.com/alexanderramin/ripasso/internal/repository"
	"github.com/alexanderramin/ripasso/internal/simulation"
)

type PlanService interface {
	// Generate builds the plan for the input as of today and stores it.
	// Generating the same input twice on one day returns the stored plan,
	// completion state included.
	Generate(ctx context.Context, in domain.PlanningInput) (*domain.StudyPlan, error)
	GetByID(ctx context.Context, id string) (*domain.StudyPlan, error)
	List(ctx context.Context) ([]repository.PlanSummary, error)
	Today(ctx context.Context, planID string) (*domain.DailyTask, error)
	ToggleTask(ctx context.Context, planID, dayID, taskID string) (*domain.StudyPlan, error)
	Status(ctx context.Context, planID string) (*PlanStatus, error)
	Delete(ctx context.Context, id string) error
}

type SimulationService interface {
	Generate(ctx context.Context, profile domain.ExaminationProfile, topics []string) (*domain.ExamSimulation, error)
	GenerateForProfile(ctx context.Context, profileName string, topics []string) (*domain.ExamSimulation, error)
	GetByID(ctx context.Context, id string) (*domain.ExamSimulation, error)
	List(ctx context.Context) ([]repository.SimulationSummary, error)
	Score(ctx context.Context, id string, answers map[string]string) (*simulation.ScoreReport, error)
	Delete(ctx context.Context, id string) error
}

type ProfileService interface {
	Save(ctx context.Context, p *domain.ExaminationProfile) error
	Get(ctx context.Context, name string) (*domain.ExaminationProfile, error)
	List(ctx context.Context) ([]*domain.ExaminationProfile, error)
	Delete(ctx context.Context, name string) error
}
