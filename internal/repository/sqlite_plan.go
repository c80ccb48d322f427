package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/alexanderramin/ripasso/internal/db"
	"github.com/alexanderramin/ripasso/internal/domain"
)

// SQLitePlanRepo stores plans across study_plans, plan_days and plan_tasks.
// Create writes several tables; run it through a UnitOfWork to keep it
// atomic.
type SQLitePlanRepo struct {
	db db.DBTX
}

func NewSQLitePlanRepo(conn db.DBTX) *SQLitePlanRepo {
	return &SQLitePlanRepo{db: conn}
}

func (r *SQLitePlanRepo) Create(ctx context.Context, p *domain.StudyPlan) error {
	query := `INSERT INTO study_plans (id, exam_date, target_grade, daily_minutes, total_days,
		overall_progress, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		p.ID,
		p.ExamDate.Format(domain.DateLayout),
		p.TargetGrade,
		p.DailyMinutes,
		p.TotalDays,
		p.OverallProgress,
		formatTimestamp(p.CreatedAt),
		formatTimestamp(p.UpdatedAt),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("plan %s: %w", p.ID, ErrAlreadyExists)
		}
		return fmt.Errorf("inserting plan: %w", err)
	}

	for i := range p.Days {
		if err := r.insertDay(ctx, p.ID, i, &p.Days[i]); err != nil {
			return err
		}
	}
	return nil
}

func (r *SQLitePlanRepo) insertDay(ctx context.Context, planID string, index int, d *domain.DailyTask) error {
	query := `INSERT INTO plan_days (id, plan_id, day_index, date, phase, completed, completed_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		d.ID,
		planID,
		index,
		d.Date.Format(domain.DateLayout),
		string(d.Phase),
		boolToInt(d.Completed),
		nullableTimeToString(d.CompletedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting day %s: %w", d.Date.Format(domain.DateLayout), err)
	}

	taskQuery := `INSERT INTO plan_tasks (id, day_id, task_index, title, activity, estimated_min,
		topic, material, completed)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	for i, t := range d.Tasks {
		_, err := r.db.ExecContext(ctx, taskQuery,
			t.ID,
			d.ID,
			i,
			t.Title,
			string(t.Activity),
			t.EstimatedMinutes,
			t.Topic,
			t.Material,
			boolToInt(t.Completed),
		)
		if err != nil {
			return fmt.Errorf("inserting task %d of day %s: %w", i, d.Date.Format(domain.DateLayout), err)
		}
	}
	return nil
}

func (r *SQLitePlanRepo) GetByID(ctx context.Context, id string) (*domain.StudyPlan, error) {
	query := `SELECT id, exam_date, target_grade, daily_minutes, total_days, overall_progress,
		created_at, updated_at
		FROM study_plans WHERE id = ?`
	s, err := scanPlanSummary(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("plan %s: %w", id, ErrNotFound)
		}
		return nil, err
	}

	p := &domain.StudyPlan{
		ID:              s.ID,
		ExamDate:        s.ExamDate,
		TargetGrade:     s.TargetGrade,
		DailyMinutes:    s.DailyMinutes,
		TotalDays:       s.TotalDays,
		OverallProgress: s.OverallProgress,
		CreatedAt:       s.CreatedAt,
		UpdatedAt:       s.UpdatedAt,
	}
	if p.Days, err = r.loadDays(ctx, id); err != nil {
		return nil, err
	}
	if err := r.loadTasks(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (r *SQLitePlanRepo) loadDays(ctx context.Context, planID string) ([]domain.DailyTask, error) {
	query := `SELECT id, date, phase, completed, completed_at
		FROM plan_days WHERE plan_id = ? ORDER BY day_index`
	rows, err := r.db.QueryContext(ctx, query, planID)
	if err != nil {
		return nil, fmt.Errorf("listing plan days: %w", err)
	}
	defer rows.Close()

	var days []domain.DailyTask
	for rows.Next() {
		var d domain.DailyTask
		var date, phase string
		var completed int
		var completedAt sql.NullString
		if err := rows.Scan(&d.ID, &date, &phase, &completed, &completedAt); err != nil {
			return nil, fmt.Errorf("scanning plan day: %w", err)
		}
		if d.Date, err = parseDate("date", date); err != nil {
			return nil, err
		}
		d.Phase = domain.StudyPhase(phase)
		d.Completed = intToBool(completed)
		d.CompletedAt = parseNullableTime(completedAt)
		days = append(days, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating plan days: %w", err)
	}
	return days, nil
}

func (r *SQLitePlanRepo) loadTasks(ctx context.Context, p *domain.StudyPlan) error {
	query := `SELECT t.day_id, t.id, t.title, t.activity, t.estimated_min, t.topic, t.material, t.completed
		FROM plan_tasks t
		JOIN plan_days d ON d.id = t.day_id
		WHERE d.plan_id = ?
		ORDER BY d.day_index, t.task_index`
	rows, err := r.db.QueryContext(ctx, query, p.ID)
	if err != nil {
		return fmt.Errorf("listing plan tasks: %w", err)
	}
	defer rows.Close()

	byDay := make(map[string]*domain.DailyTask, len(p.Days))
	for i := range p.Days {
		byDay[p.Days[i].ID] = &p.Days[i]
	}

	for rows.Next() {
		var dayID, activity string
		var completed int
		var t domain.TaskItem
		if err := rows.Scan(&dayID, &t.ID, &t.Title, &activity, &t.EstimatedMinutes, &t.Topic, &t.Material, &completed); err != nil {
			return fmt.Errorf("scanning plan task: %w", err)
		}
		t.Activity = domain.ActivityType(activity)
		t.Completed = intToBool(completed)
		if day, ok := byDay[dayID]; ok {
			day.Tasks = append(day.Tasks, t)
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterating plan tasks: %w", err)
	}
	return nil
}

func (r *SQLitePlanRepo) List(ctx context.Context) ([]PlanSummary, error) {
	query := `SELECT id, exam_date, target_grade, daily_minutes, total_days, overall_progress,
		created_at, updated_at
		FROM study_plans ORDER BY exam_date, created_at`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing plans: %w", err)
	}
	defer rows.Close()

	var plans []PlanSummary
	for rows.Next() {
		s, err := scanPlanSummary(rows)
		if err != nil {
			return nil, err
		}
		plans = append(plans, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating plans: %w", err)
	}
	return plans, nil
}

func (r *SQLitePlanRepo) SaveDayProgress(ctx context.Context, p *domain.StudyPlan, dayID string) error {
	day, err := p.Day(dayID)
	if err != nil {
		return err
	}

	res, err := r.db.ExecContext(ctx,
		`UPDATE study_plans SET overall_progress = ?, updated_at = ? WHERE id = ?`,
		p.OverallProgress, formatTimestamp(p.UpdatedAt), p.ID)
	if err != nil {
		return fmt.Errorf("updating plan progress: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("plan %s: %w", p.ID, ErrNotFound)
	}

	res, err = r.db.ExecContext(ctx,
		`UPDATE plan_days SET completed = ?, completed_at = ? WHERE id = ? AND plan_id = ?`,
		boolToInt(day.Completed), nullableTimeToString(day.CompletedAt), day.ID, p.ID)
	if err != nil {
		return fmt.Errorf("updating day: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("day %s: %w", day.ID, ErrNotFound)
	}

	for _, t := range day.Tasks {
		_, err := r.db.ExecContext(ctx,
			`UPDATE plan_tasks SET completed = ? WHERE id = ? AND day_id = ?`,
			boolToInt(t.Completed), t.ID, day.ID)
		if err != nil {
			return fmt.Errorf("updating task: %w", err)
		}
	}
	return nil
}

func (r *SQLitePlanRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM study_plans WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting plan: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("plan %s: %w", id, ErrNotFound)
	}
	return nil
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanPlanSummary(row rowScanner) (PlanSummary, error) {
	var s PlanSummary
	var examDate, createdAt, updatedAt string
	err := row.Scan(&s.ID, &examDate, &s.TargetGrade, &s.DailyMinutes, &s.TotalDays,
		&s.OverallProgress, &createdAt, &updatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return s, err
		}
		return s, fmt.Errorf("scanning plan: %w", err)
	}
	if s.ExamDate, err = parseDate("exam_date", examDate); err != nil {
		return s, err
	}
	if s.CreatedAt, err = parseTimestamp("created_at", createdAt); err != nil {
		return s, err
	}
	if s.UpdatedAt, err = parseTimestamp("updated_at", updatedAt); err != nil {
		return s, err
	}
	return s, nil
}
