package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/ripasso/internal/db"
	"github.com/alexanderramin/ripasso/internal/domain"
	"github.com/alexanderramin/ripasso/internal/repository"
	"github.com/alexanderramin/ripasso/internal/scheduler"
)

// PhaseProgress counts completed days inside one phase.
type PhaseProgress struct {
	Phase         domain.StudyPhase
	Days          int
	CompletedDays int
}

// PlanStatus is the read model behind `ripasso plan status`.
type PlanStatus struct {
	PlanID          string
	ExamDate        time.Time
	TotalDays       int
	OverallProgress int
	Pace            scheduler.PaceResult
	Phases          []PhaseProgress
	// Today is nil when the current date falls outside the plan.
	Today *domain.DailyTask
}

type planService struct {
	plans    repository.PlanRepo
	uow      db.UnitOfWork
	clock    Clock
	observer UseCaseObserver
}

func NewPlanService(plans repository.PlanRepo, uow db.UnitOfWork, clock Clock, observers ...UseCaseObserver) PlanService {
	return &planService{
		plans:    plans,
		uow:      uow,
		clock:    clockOrSystem(clock),
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *planService) Generate(ctx context.Context, in domain.PlanningInput) (plan *domain.StudyPlan, err error) {
	startedAt := time.Now()
	fields := map[string]any{"topics": len(in.Topics)}
	defer observe(ctx, s.observer, "generate-plan", startedAt, &err, fields)

	plan = scheduler.BuildPlan(in, s.clock())
	fields["plan_id"] = plan.ID
	fields["total_days"] = plan.TotalDays

	created := false
	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txPlans := repository.NewSQLitePlanRepo(tx)

		existing, err := txPlans.GetByID(ctx, plan.ID)
		if err == nil {
			plan = existing
			return nil
		}
		if !errors.Is(err, repository.ErrNotFound) {
			return err
		}
		if err := txPlans.Create(ctx, plan); err != nil {
			return fmt.Errorf("storing plan: %w", err)
		}
		created = true
		return nil
	})
	fields["created"] = created
	if err != nil {
		return nil, err
	}
	return plan, nil
}

func (s *planService) GetByID(ctx context.Context, id string) (*domain.StudyPlan, error) {
	return s.plans.GetByID(ctx, id)
}

func (s *planService) List(ctx context.Context) ([]repository.PlanSummary, error) {
	return s.plans.List(ctx)
}

func (s *planService) Today(ctx context.Context, planID string) (*domain.DailyTask, error) {
	plan, err := s.plans.GetByID(ctx, planID)
	if err != nil {
		return nil, err
	}
	return plan.DayOn(s.clock())
}

func (s *planService) ToggleTask(ctx context.Context, planID, dayID, taskID string) (plan *domain.StudyPlan, err error) {
	startedAt := time.Now()
	fields := map[string]any{"plan_id": planID, "day_id": dayID, "task_id": taskID}
	defer observe(ctx, s.observer, "toggle-task", startedAt, &err, fields)

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txPlans := repository.NewSQLitePlanRepo(tx)

		p, err := txPlans.GetByID(ctx, planID)
		if err != nil {
			return err
		}
		if err := p.ToggleTask(dayID, taskID, s.clock()); err != nil {
			return err
		}
		if err := txPlans.SaveDayProgress(ctx, p, dayID); err != nil {
			return err
		}
		plan = p
		return nil
	})
	if err != nil {
		return nil, err
	}
	fields["progress"] = plan.OverallProgress
	return plan, nil
}

func (s *planService) Status(ctx context.Context, planID string) (*PlanStatus, error) {
	plan, err := s.plans.GetByID(ctx, planID)
	if err != nil {
		return nil, err
	}
	now := s.clock()

	status := &PlanStatus{
		PlanID:          plan.ID,
		ExamDate:        plan.ExamDate,
		TotalDays:       plan.TotalDays,
		OverallProgress: plan.OverallProgress,
		Pace:            scheduler.ComputePace(plan, now),
		Phases:          phaseProgress(plan),
	}
	if today, err := plan.DayOn(now); err == nil {
		status.Today = today
	}
	return status, nil
}

func (s *planService) Delete(ctx context.Context, id string) (err error) {
	startedAt := time.Now()
	defer observe(ctx, s.observer, "delete-plan", startedAt, &err, map[string]any{"plan_id": id})

	return s.plans.Delete(ctx, id)
}

func phaseProgress(plan *domain.StudyPlan) []PhaseProgress {
	var out []PhaseProgress
	for _, day := range plan.Days {
		if len(out) == 0 || out[len(out)-1].Phase != day.Phase {
			out = append(out, PhaseProgress{Phase: day.Phase})
		}
		last := &out[len(out)-1]
		last.Days++
		if day.Completed {
			last.CompletedDays++
		}
	}
	return out
}
