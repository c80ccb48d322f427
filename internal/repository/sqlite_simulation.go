package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/alexanderramin/ripasso/internal/db"
	"github.com/alexanderramin/ripasso/internal/domain"
)

type SQLiteSimulationRepo struct {
	db db.DBTX
}

func NewSQLiteSimulationRepo(conn db.DBTX) *SQLiteSimulationRepo {
	return &SQLiteSimulationRepo{db: conn}
}

func (r *SQLiteSimulationRepo) Create(ctx context.Context, s *domain.ExamSimulation) error {
	topics, err := encodeStrings(s.Topics)
	if err != nil {
		return fmt.Errorf("encoding topics: %w", err)
	}
	_, err = r.db.ExecContext(ctx,
		`INSERT INTO exam_simulations (id, profile_name, topics, total_points, created_at)
		VALUES (?, ?, ?, ?, ?)`,
		s.ID, s.ProfileName, topics, s.TotalPoints, formatTimestamp(s.CreatedAt))
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("simulation %s: %w", s.ID, ErrAlreadyExists)
		}
		return fmt.Errorf("inserting simulation: %w", err)
	}

	query := `INSERT INTO simulation_questions (id, simulation_id, question_index, text, type,
		difficulty, topic, points, correct_answer, options)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	for i, q := range s.Questions {
		options, err := encodeStrings(q.Options)
		if err != nil {
			return fmt.Errorf("encoding options: %w", err)
		}
		_, err = r.db.ExecContext(ctx, query,
			q.ID,
			s.ID,
			i,
			q.Text,
			string(q.Type),
			string(q.Difficulty),
			q.Topic,
			q.Points,
			q.CorrectAnswer,
			options,
		)
		if err != nil {
			return fmt.Errorf("inserting question %d: %w", i, err)
		}
	}
	return nil
}

func (r *SQLiteSimulationRepo) GetByID(ctx context.Context, id string) (*domain.ExamSimulation, error) {
	var s domain.ExamSimulation
	var topics, createdAt string
	err := r.db.QueryRowContext(ctx,
		`SELECT id, profile_name, topics, total_points, created_at FROM exam_simulations WHERE id = ?`, id).
		Scan(&s.ID, &s.ProfileName, &topics, &s.TotalPoints, &createdAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("simulation %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("scanning simulation: %w", err)
	}
	if s.Topics, err = decodeStrings("topics", topics); err != nil {
		return nil, err
	}
	if s.CreatedAt, err = parseTimestamp("created_at", createdAt); err != nil {
		return nil, err
	}
	if s.Questions, err = r.loadQuestions(ctx, id); err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *SQLiteSimulationRepo) loadQuestions(ctx context.Context, simulationID string) ([]domain.SimulationQuestion, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, text, type, difficulty, topic, points, correct_answer, options
		FROM simulation_questions WHERE simulation_id = ? ORDER BY question_index`, simulationID)
	if err != nil {
		return nil, fmt.Errorf("listing questions: %w", err)
	}
	defer rows.Close()

	var questions []domain.SimulationQuestion
	for rows.Next() {
		var q domain.SimulationQuestion
		var qType, difficulty, options string
		if err := rows.Scan(&q.ID, &q.Text, &qType, &difficulty, &q.Topic, &q.Points, &q.CorrectAnswer, &options); err != nil {
			return nil, fmt.Errorf("scanning question: %w", err)
		}
		q.Type = domain.QuestionType(qType)
		q.Difficulty = domain.DifficultyLabel(difficulty)
		if q.Options, err = decodeStrings("options", options); err != nil {
			return nil, err
		}
		questions = append(questions, q)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating questions: %w", err)
	}
	return questions, nil
}

func (r *SQLiteSimulationRepo) List(ctx context.Context) ([]SimulationSummary, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT s.id, s.profile_name, s.total_points, s.created_at,
			(SELECT COUNT(*) FROM simulation_questions q WHERE q.simulation_id = s.id)
		FROM exam_simulations s ORDER BY s.created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("listing simulations: %w", err)
	}
	defer rows.Close()

	var out []SimulationSummary
	for rows.Next() {
		var s SimulationSummary
		var createdAt string
		if err := rows.Scan(&s.ID, &s.ProfileName, &s.TotalPoints, &createdAt, &s.QuestionCount); err != nil {
			return nil, fmt.Errorf("scanning simulation: %w", err)
		}
		if s.CreatedAt, err = parseTimestamp("created_at", createdAt); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating simulations: %w", err)
	}
	return out, nil
}

func (r *SQLiteSimulationRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM exam_simulations WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting simulation: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("simulation %s: %w", id, ErrNotFound)
	}
	return nil
}
