package importer

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/alexanderramin/ripasso/internal/domain"
)

// ConvertPlan turns a validated plan file into planner input. Call
// ValidatePlanFile first. A ProfileName is left for the caller to resolve;
// the returned input then carries the default profile.
func ConvertPlan(f *PlanFile, baseDir string) (domain.PlanningInput, error) {
	examDate, err := time.Parse(domain.DateLayout, f.ExamDate)
	if err != nil {
		return domain.PlanningInput{}, fmt.Errorf("parsing exam_date: %w", err)
	}

	in := domain.PlanningInput{
		ExamDate:     examDate,
		TargetGrade:  f.TargetGrade,
		DailyMinutes: f.DailyMinutes,
		Topics:       f.Topics,
		Profile:      domain.DefaultExaminationProfile(),
	}
	if f.Profile != nil {
		in.Profile = ConvertProfile(f.Profile)
	}

	for i, m := range f.Materials {
		material, err := convertMaterial(m, baseDir)
		if err != nil {
			return domain.PlanningInput{}, fmt.Errorf("materials[%d]: %w", i, err)
		}
		in.Materials = append(in.Materials, material)
	}
	return in, nil
}

func convertMaterial(m MaterialFile, baseDir string) (domain.Material, error) {
	kind := domain.MaterialKind(m.Kind)
	if m.Kind == "" {
		kind = domain.MaterialOther
	}
	material := domain.Material{Name: strings.TrimSpace(m.Name), Kind: kind}

	switch {
	case m.Size != nil:
		material.Size = max(*m.Size, 0)
	case strings.EqualFold(filepath.Ext(m.Path), ".pdf"):
		pages, err := PDFPageCount(resolvePath(baseDir, m.Path))
		if err != nil {
			return domain.Material{}, err
		}
		material.Size = pages
	}
	return material, nil
}

// ConvertProfile overlays the fields set in f onto the default profile.
func ConvertProfile(f *ProfileFile) domain.ExaminationProfile {
	p := domain.DefaultExaminationProfile()
	if name := strings.TrimSpace(f.Name); name != "" {
		p.Name = name
	}
	setIf(&p.OralWeight, f.OralWeight)
	setIf(&p.WrittenWeight, f.WrittenWeight)
	setIf(&p.PracticalWeight, f.PracticalWeight)
	setIf(&p.MultipleChoice, f.MultipleChoice)
	setIf(&p.OpenQuestions, f.OpenQuestions)
	setIf(&p.Exercises, f.Exercises)
	setIf(&p.CaseStudy, f.CaseStudy)
	setIf(&p.AverageQuestionCount, f.AverageQuestionCount)
	setIf(&p.ExamDurationMin, f.ExamDurationMin)
	setIf(&p.DifficultyLevel, f.DifficultyLevel)
	if len(f.PreferredTopics) > 0 {
		p.PreferredTopics = f.PreferredTopics
	}
	return p
}

func setIf[T any](dst *T, v *T) {
	if v != nil {
		*dst = *v
	}
}
