package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// Migrate applies the schema. Every statement is idempotent, so the whole
// list runs on each start; column additions that already happened are
// skipped.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS study_plans (
		id               TEXT PRIMARY KEY,
		exam_date        TEXT NOT NULL,
		target_grade     INTEGER NOT NULL DEFAULT 0,
		daily_minutes    INTEGER NOT NULL CHECK(daily_minutes > 0),
		total_days       INTEGER NOT NULL CHECK(total_days > 0),
		overall_progress INTEGER NOT NULL DEFAULT 0
		                 CHECK(overall_progress BETWEEN 0 AND 100),
		created_at       TEXT NOT NULL,
		updated_at       TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS plan_days (
		id           TEXT PRIMARY KEY,
		plan_id      TEXT NOT NULL REFERENCES study_plans(id) ON DELETE CASCADE,
		day_index    INTEGER NOT NULL,
		date         TEXT NOT NULL,
		phase        TEXT NOT NULL
		             CHECK(phase IN ('foundation','practice','consolidation','final-sprint')),
		completed    INTEGER NOT NULL DEFAULT 0,
		completed_at TEXT,
		UNIQUE(plan_id, day_index)
	)`,

	`CREATE INDEX IF NOT EXISTS idx_plan_days_plan ON plan_days(plan_id)`,

	`CREATE TABLE IF NOT EXISTS plan_tasks (
		id            TEXT PRIMARY KEY,
		day_id        TEXT NOT NULL REFERENCES plan_days(id) ON DELETE CASCADE,
		task_index    INTEGER NOT NULL,
		title         TEXT NOT NULL,
		activity      TEXT NOT NULL
		              CHECK(activity IN ('read','practice','review','quiz','mock-exam')),
		estimated_min INTEGER NOT NULL CHECK(estimated_min > 0),
		topic         TEXT NOT NULL,
		completed     INTEGER NOT NULL DEFAULT 0,
		UNIQUE(day_id, task_index)
	)`,

	`CREATE INDEX IF NOT EXISTS idx_plan_tasks_day ON plan_tasks(day_id)`,

	`ALTER TABLE plan_tasks ADD COLUMN material TEXT NOT NULL DEFAULT ''`,

	`CREATE TABLE IF NOT EXISTS exam_simulations (
		id           TEXT PRIMARY KEY,
		profile_name TEXT NOT NULL DEFAULT '',
		topics       TEXT NOT NULL DEFAULT '[]',
		total_points INTEGER NOT NULL,
		created_at   TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS simulation_questions (
		id             TEXT PRIMARY KEY,
		simulation_id  TEXT NOT NULL REFERENCES exam_simulations(id) ON DELETE CASCADE,
		question_index INTEGER NOT NULL,
		text           TEXT NOT NULL,
		type           TEXT NOT NULL
		               CHECK(type IN ('multiple-choice','true-false','open')),
		difficulty     TEXT NOT NULL
		               CHECK(difficulty IN ('base','medio','avanzato')),
		topic          TEXT NOT NULL,
		points         INTEGER NOT NULL,
		correct_answer TEXT NOT NULL DEFAULT '',
		options        TEXT NOT NULL DEFAULT '[]',
		UNIQUE(simulation_id, question_index)
	)`,

	`CREATE INDEX IF NOT EXISTS idx_simulation_questions_simulation ON simulation_questions(simulation_id)`,

	`CREATE TABLE IF NOT EXISTS examination_profiles (
		name                   TEXT PRIMARY KEY,
		oral_weight            REAL NOT NULL DEFAULT 0,
		written_weight         REAL NOT NULL DEFAULT 0,
		practical_weight       REAL NOT NULL DEFAULT 0,
		multiple_choice        INTEGER NOT NULL DEFAULT 0,
		open_questions         INTEGER NOT NULL DEFAULT 0,
		exercises              INTEGER NOT NULL DEFAULT 0,
		case_study             INTEGER NOT NULL DEFAULT 0,
		average_question_count INTEGER NOT NULL DEFAULT 0,
		exam_duration_min      INTEGER NOT NULL DEFAULT 0,
		difficulty_level       INTEGER NOT NULL DEFAULT 3,
		preferred_topics       TEXT NOT NULL DEFAULT '[]',
		created_at             TEXT NOT NULL,
		updated_at             TEXT NOT NULL
	)`,
}
