package service

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/ripasso/internal/db"
	"github.com/alexanderramin/ripasso/internal/domain"
	"github.com/alexanderramin/ripasso/internal/repository"
	"github.com/alexanderramin/ripasso/internal/simulation"
)

type simulationService struct {
	simulations repository.SimulationRepo
	profiles    repository.ProfileRepo
	uow         db.UnitOfWork
	clock       Clock
	observer    UseCaseObserver
}

func NewSimulationService(
	simulations repository.SimulationRepo,
	profiles repository.ProfileRepo,
	uow db.UnitOfWork,
	clock Clock,
	observers ...UseCaseObserver,
) SimulationService {
	return &simulationService{
		simulations: simulations,
		profiles:    profiles,
		uow:         uow,
		clock:       clockOrSystem(clock),
		observer:    useCaseObserverOrNoop(observers),
	}
}

func (s *simulationService) Generate(ctx context.Context, profile domain.ExaminationProfile, topics []string) (sim *domain.ExamSimulation, err error) {
	startedAt := time.Now()
	fields := map[string]any{"profile": profile.Name, "topics": len(topics)}
	defer observe(ctx, s.observer, "generate-simulation", startedAt, &err, fields)

	sim = simulation.Generate(profile, topics, s.clock())
	fields["simulation_id"] = sim.ID
	fields["questions"] = len(sim.Questions)

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		return repository.NewSQLiteSimulationRepo(tx).Create(ctx, sim)
	})
	if err != nil {
		return nil, fmt.Errorf("storing simulation: %w", err)
	}
	return sim, nil
}

func (s *simulationService) GenerateForProfile(ctx context.Context, profileName string, topics []string) (*domain.ExamSimulation, error) {
	profile, err := s.profiles.Get(ctx, profileName)
	if err != nil {
		return nil, fmt.Errorf("loading profile: %w", err)
	}
	return s.Generate(ctx, *profile, topics)
}

func (s *simulationService) GetByID(ctx context.Context, id string) (*domain.ExamSimulation, error) {
	return s.simulations.GetByID(ctx, id)
}

func (s *simulationService) List(ctx context.Context) ([]repository.SimulationSummary, error) {
	return s.simulations.List(ctx)
}

func (s *simulationService) Score(ctx context.Context, id string, answers map[string]string) (report *simulation.ScoreReport, err error) {
	startedAt := time.Now()
	fields := map[string]any{"simulation_id": id, "answers": len(answers)}
	defer observe(ctx, s.observer, "score-simulation", startedAt, &err, fields)

	sim, err := s.simulations.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	r := simulation.Score(sim, answers)
	fields["awarded"] = r.Awarded
	return &r, nil
}

func (s *simulationService) Delete(ctx context.Context, id string) (err error) {
	startedAt := time.Now()
	defer observe(ctx, s.observer, "delete-simulation", startedAt, &err, map[string]any{"simulation_id": id})

	return s.simulations.Delete(ctx, id)
}
