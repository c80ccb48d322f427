package importer

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// PlanFile is the on-disk planning input. Dates are calendar days in
// YYYY-MM-DD form. Either Profile or ProfileName may describe the exam; with
// neither the default profile applies.
type PlanFile struct {
	ExamDate     string         `yaml:"exam_date" json:"exam_date" validate:"required,datetime=2006-01-02"`
	TargetGrade  int            `yaml:"target_grade,omitempty" json:"target_grade,omitempty"`
	DailyMinutes int            `yaml:"daily_minutes,omitempty" json:"daily_minutes,omitempty"`
	Topics       []string       `yaml:"topics" json:"topics"`
	Materials    []MaterialFile `yaml:"materials,omitempty" json:"materials,omitempty" validate:"dive"`
	Profile      *ProfileFile   `yaml:"profile,omitempty" json:"profile,omitempty"`
	ProfileName  string         `yaml:"profile_name,omitempty" json:"profile_name,omitempty"`
}

// MaterialFile is one study resource. When Size is absent and Path names a
// PDF, the page count becomes the size.
type MaterialFile struct {
	Name string `yaml:"name" json:"name" validate:"required"`
	Kind string `yaml:"kind,omitempty" json:"kind,omitempty" validate:"omitempty,material_kind"`
	Size *int   `yaml:"size,omitempty" json:"size,omitempty"`
	Path string `yaml:"path,omitempty" json:"path,omitempty"`
}

// ProfileFile describes an examination profile. Omitted fields keep the
// default profile's values.
type ProfileFile struct {
	Name                 string   `yaml:"name,omitempty" json:"name,omitempty"`
	OralWeight           *float64 `yaml:"oral_weight,omitempty" json:"oral_weight,omitempty"`
	WrittenWeight        *float64 `yaml:"written_weight,omitempty" json:"written_weight,omitempty"`
	PracticalWeight      *float64 `yaml:"practical_weight,omitempty" json:"practical_weight,omitempty"`
	MultipleChoice       *bool    `yaml:"multiple_choice,omitempty" json:"multiple_choice,omitempty"`
	OpenQuestions        *bool    `yaml:"open_questions,omitempty" json:"open_questions,omitempty"`
	Exercises            *bool    `yaml:"exercises,omitempty" json:"exercises,omitempty"`
	CaseStudy            *bool    `yaml:"case_study,omitempty" json:"case_study,omitempty"`
	AverageQuestionCount *int     `yaml:"average_question_count,omitempty" json:"average_question_count,omitempty"`
	ExamDurationMin      *int     `yaml:"exam_duration_min,omitempty" json:"exam_duration_min,omitempty"`
	DifficultyLevel      *int     `yaml:"difficulty_level,omitempty" json:"difficulty_level,omitempty"`
	PreferredTopics      []string `yaml:"preferred_topics,omitempty" json:"preferred_topics,omitempty"`
}

// LoadPlanFile reads a YAML or JSON planning file, chosen by extension.
func LoadPlanFile(path string) (*PlanFile, error) {
	var f PlanFile
	if err := decodeFile(path, &f); err != nil {
		return nil, err
	}
	return &f, nil
}

// LoadProfileFile reads a YAML or JSON profile file, chosen by extension.
func LoadProfileFile(path string) (*ProfileFile, error) {
	var f ProfileFile
	if err := decodeFile(path, &f); err != nil {
		return nil, err
	}
	return &f, nil
}

func decodeFile(path string, out any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("parsing %s: %w", filepath.Base(path), err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, out); err != nil {
			return fmt.Errorf("parsing %s: %w", filepath.Base(path), err)
		}
	default:
		return fmt.Errorf("unsupported file type %q (expected .yaml, .yml or .json)", ext)
	}
	return nil
}
