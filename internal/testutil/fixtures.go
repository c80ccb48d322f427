package testutil

import (
	"time"

	"github.com/alexanderramin/ripasso/internal/domain"
	"github.com/alexanderramin/ripasso/internal/scheduler"
	"github.com/alexanderramin/ripasso/internal/simulation"
)

// TestNow is the reference clock of fixtures built here.
var TestNow = time.Date(2025, 3, 15, 12, 0, 0, 0, time.UTC)

// FixedClock returns a clock function frozen at t.
func FixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

// Planning input options
type InputOption func(*domain.PlanningInput)

func WithExamInDays(n int) InputOption {
	return func(in *domain.PlanningInput) {
		in.ExamDate = TestNow.AddDate(0, 0, n)
	}
}

func WithDailyMinutes(m int) InputOption {
	return func(in *domain.PlanningInput) {
		in.DailyMinutes = m
	}
}

func WithTopics(topics ...string) InputOption {
	return func(in *domain.PlanningInput) {
		in.Topics = topics
	}
}

func WithMaterials(materials ...domain.Material) InputOption {
	return func(in *domain.PlanningInput) {
		in.Materials = materials
	}
}

func WithTargetGrade(g int) InputOption {
	return func(in *domain.PlanningInput) {
		in.TargetGrade = g
	}
}

func WithInputProfile(p domain.ExaminationProfile) InputOption {
	return func(in *domain.PlanningInput) {
		in.Profile = p
	}
}

// NewTestInput returns a ten-day, two-topic input with a two hour budget.
func NewTestInput(opts ...InputOption) domain.PlanningInput {
	in := domain.PlanningInput{
		ExamDate:     TestNow.AddDate(0, 0, 10),
		TargetGrade:  27,
		DailyMinutes: 120,
		Topics:       []string{"Contratti", "Obbligazioni"},
		Profile:      domain.DefaultExaminationProfile(),
	}
	for _, opt := range opts {
		opt(&in)
	}
	return in
}

// NewTestPlan builds a plan from NewTestInput as of TestNow.
func NewTestPlan(opts ...InputOption) *domain.StudyPlan {
	return scheduler.BuildPlan(NewTestInput(opts...), TestNow)
}

// Profile options
type ProfileOption func(*domain.ExaminationProfile)

func WithProfileName(name string) ProfileOption {
	return func(p *domain.ExaminationProfile) {
		p.Name = name
	}
}

func WithWeights(oral, written, practical float64) ProfileOption {
	return func(p *domain.ExaminationProfile) {
		p.OralWeight, p.WrittenWeight, p.PracticalWeight = oral, written, practical
	}
}

func WithArchetypes(multipleChoice, open, exercises, caseStudy bool) ProfileOption {
	return func(p *domain.ExaminationProfile) {
		p.MultipleChoice, p.OpenQuestions, p.Exercises, p.CaseStudy = multipleChoice, open, exercises, caseStudy
	}
}

func WithQuestionCount(n int) ProfileOption {
	return func(p *domain.ExaminationProfile) {
		p.AverageQuestionCount = n
	}
}

func WithPreferredTopics(topics ...string) ProfileOption {
	return func(p *domain.ExaminationProfile) {
		p.PreferredTopics = topics
	}
}

// NewTestProfile starts from the default profile.
func NewTestProfile(opts ...ProfileOption) *domain.ExaminationProfile {
	p := domain.DefaultExaminationProfile()
	p.Name = "diritto-privato"
	for _, opt := range opts {
		opt(&p)
	}
	return &p
}

// NewTestSimulation generates a simulation as of TestNow.
func NewTestSimulation(profile *domain.ExaminationProfile, topics ...string) *domain.ExamSimulation {
	return simulation.Generate(*profile, topics, TestNow)
}
