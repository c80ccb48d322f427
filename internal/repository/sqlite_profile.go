package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/alexanderramin/ripasso/internal/db"
	"github.com/alexanderramin/ripasso/internal/domain"
)

// SQLiteProfileRepo stores examination profiles keyed by name.
type SQLiteProfileRepo struct {
	db db.DBTX
}

func NewSQLiteProfileRepo(conn db.DBTX) *SQLiteProfileRepo {
	return &SQLiteProfileRepo{db: conn}
}

const profileColumns = `name, oral_weight, written_weight, practical_weight,
	multiple_choice, open_questions, exercises, case_study,
	average_question_count, exam_duration_min, difficulty_level, preferred_topics`

func (r *SQLiteProfileRepo) Get(ctx context.Context, name string) (*domain.ExaminationProfile, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+profileColumns+` FROM examination_profiles WHERE name = ?`, name)
	p, err := scanProfile(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("profile %q: %w", name, ErrNotFound)
		}
		return nil, err
	}
	return p, nil
}

func (r *SQLiteProfileRepo) List(ctx context.Context) ([]*domain.ExaminationProfile, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+profileColumns+` FROM examination_profiles ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("listing profiles: %w", err)
	}
	defer rows.Close()

	var out []*domain.ExaminationProfile
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating profiles: %w", err)
	}
	return out, nil
}

// Upsert inserts the profile or replaces every field of an existing one,
// keeping its creation time.
func (r *SQLiteProfileRepo) Upsert(ctx context.Context, p *domain.ExaminationProfile) error {
	preferred, err := encodeStrings(p.PreferredTopics)
	if err != nil {
		return fmt.Errorf("encoding preferred topics: %w", err)
	}
	now := nowUTC()
	query := `INSERT INTO examination_profiles (` + profileColumns + `, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET
			oral_weight = excluded.oral_weight,
			written_weight = excluded.written_weight,
			practical_weight = excluded.practical_weight,
			multiple_choice = excluded.multiple_choice,
			open_questions = excluded.open_questions,
			exercises = excluded.exercises,
			case_study = excluded.case_study,
			average_question_count = excluded.average_question_count,
			exam_duration_min = excluded.exam_duration_min,
			difficulty_level = excluded.difficulty_level,
			preferred_topics = excluded.preferred_topics,
			updated_at = excluded.updated_at`
	_, err = r.db.ExecContext(ctx, query,
		p.Name,
		p.OralWeight,
		p.WrittenWeight,
		p.PracticalWeight,
		boolToInt(p.MultipleChoice),
		boolToInt(p.OpenQuestions),
		boolToInt(p.Exercises),
		boolToInt(p.CaseStudy),
		p.AverageQuestionCount,
		p.ExamDurationMin,
		p.DifficultyLevel,
		preferred,
		now,
		now,
	)
	if err != nil {
		return fmt.Errorf("upserting profile: %w", err)
	}
	return nil
}

func (r *SQLiteProfileRepo) Delete(ctx context.Context, name string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM examination_profiles WHERE name = ?`, name)
	if err != nil {
		return fmt.Errorf("deleting profile: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("profile %q: %w", name, ErrNotFound)
	}
	return nil
}

func scanProfile(row rowScanner) (*domain.ExaminationProfile, error) {
	var p domain.ExaminationProfile
	var mc, open, exercises, caseStudy int
	var preferred string
	err := row.Scan(
		&p.Name, &p.OralWeight, &p.WrittenWeight, &p.PracticalWeight,
		&mc, &open, &exercises, &caseStudy,
		&p.AverageQuestionCount, &p.ExamDurationMin, &p.DifficultyLevel, &preferred,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning profile: %w", err)
	}
	p.MultipleChoice = intToBool(mc)
	p.OpenQuestions = intToBool(open)
	p.Exercises = intToBool(exercises)
	p.CaseStudy = intToBool(caseStudy)
	if p.PreferredTopics, err = decodeStrings("preferred_topics", preferred); err != nil {
		return nil, err
	}
	return &p, nil
}
