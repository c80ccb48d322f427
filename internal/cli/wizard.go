package cli

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/alexanderramin/ripasso/internal/cli/formatter"
	"github.com/alexanderramin/ripasso/internal/domain"
	"github.com/alexanderramin/ripasso/internal/importer"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

const defaultProfileOption = "(default)"

// ripassoHuhTheme returns a huh theme using the formatter's Gruvbox palette.
func ripassoHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorGreen)
	t.Focused.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.FocusedButton = lipgloss.NewStyle().Foreground(formatter.ColorFg).Background(formatter.ColorHeader).Padding(0, 1)
	t.Focused.BlurredButton = lipgloss.NewStyle().Foreground(formatter.ColorDim).Padding(0, 1)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

// planWizardValues backs the `plan new` form. Every field is a string so
// huh can edit it; toPlanFile converts after validation.
type planWizardValues struct {
	ExamDate     string
	DailyMinutes string
	TargetGrade  string
	Topics       string
	Profile      string
	Confirmed    bool
}

func newPlanWizardForm(v *planWizardValues, profileNames []string) *huh.Form {
	fields := []huh.Field{
		huh.NewInput().
			Title("Exam date (YYYY-MM-DD)").
			Placeholder(time.Now().AddDate(0, 1, 0).Format(domain.DateLayout)).
			Value(&v.ExamDate).
			Validate(validateRequiredDate),
		huh.NewInput().
			Title("Minutes per day").
			Placeholder("120").
			Value(&v.DailyMinutes).
			Validate(validatePositiveInt),
		huh.NewInput().
			Title("Target grade (18-30, blank for none)").
			Value(&v.TargetGrade).
			Validate(validateOptionalGrade),
		huh.NewText().
			Title("Topics").
			Description("One per line, or separated by commas").
			Value(&v.Topics),
	}

	if len(profileNames) > 0 {
		options := []huh.Option[string]{huh.NewOption("Default profile", defaultProfileOption)}
		for _, name := range profileNames {
			options = append(options, huh.NewOption(name, name))
		}
		if v.Profile == "" {
			v.Profile = defaultProfileOption
		}
		fields = append(fields, huh.NewSelect[string]().
			Title("Examination profile").
			Options(options...).
			Value(&v.Profile))
	}

	return huh.NewForm(
		huh.NewGroup(fields...),
		huh.NewGroup(
			huh.NewConfirm().
				Title("Generate the plan?").
				Affirmative("Generate").
				Negative("Cancel").
				Value(&v.Confirmed),
		),
	).WithTheme(ripassoHuhTheme()).WithShowHelp(false)
}

func (v *planWizardValues) toPlanFile() *importer.PlanFile {
	f := &importer.PlanFile{
		ExamDate:     strings.TrimSpace(v.ExamDate),
		DailyMinutes: parsePositiveInt(v.DailyMinutes, 0),
		TargetGrade:  parsePositiveInt(v.TargetGrade, 0),
		Topics:       splitTopics(v.Topics),
	}
	if v.Profile != "" && v.Profile != defaultProfileOption {
		f.ProfileName = v.Profile
	}
	return f
}

// profileWizardValues backs `profile set --interactive`.
type profileWizardValues struct {
	Name            string
	OralWeight      string
	WrittenWeight   string
	PracticalWeight string
	Formats         []string
	Questions       string
	DurationMin     string
	Difficulty      string
	Preferred       string
}

const (
	formatMultipleChoice = "multiple-choice"
	formatOpen           = "open"
	formatExercises      = "exercises"
	formatCaseStudy      = "case-study"
)

func newProfileWizardValues(p domain.ExaminationProfile) *profileWizardValues {
	v := &profileWizardValues{
		Name:            p.Name,
		OralWeight:      strconv.FormatFloat(p.OralWeight, 'g', -1, 64),
		WrittenWeight:   strconv.FormatFloat(p.WrittenWeight, 'g', -1, 64),
		PracticalWeight: strconv.FormatFloat(p.PracticalWeight, 'g', -1, 64),
		Questions:       strconv.Itoa(p.AverageQuestionCount),
		DurationMin:     strconv.Itoa(p.ExamDurationMin),
		Difficulty:      strconv.Itoa(p.DifficultyLevel),
		Preferred:       strings.Join(p.PreferredTopics, ", "),
	}
	formats := []struct {
		name string
		on   bool
	}{
		{formatMultipleChoice, p.MultipleChoice},
		{formatOpen, p.OpenQuestions},
		{formatExercises, p.Exercises},
		{formatCaseStudy, p.CaseStudy},
	}
	for _, f := range formats {
		if f.on {
			v.Formats = append(v.Formats, f.name)
		}
	}
	return v
}

func newProfileWizardForm(v *profileWizardValues) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Oral weight").Value(&v.OralWeight).Validate(validateNonNegativeFloat),
			huh.NewInput().Title("Written weight").Value(&v.WrittenWeight).Validate(validateNonNegativeFloat),
			huh.NewInput().Title("Practical weight").Value(&v.PracticalWeight).Validate(validateNonNegativeFloat),
		).Title("Profile " + v.Name),
		huh.NewGroup(
			huh.NewMultiSelect[string]().
				Title("Question formats").
				Options(
					huh.NewOption("Multiple choice", formatMultipleChoice),
					huh.NewOption("Open questions", formatOpen),
					huh.NewOption("Exercises", formatExercises),
					huh.NewOption("Case study", formatCaseStudy),
				).
				Value(&v.Formats),
			huh.NewInput().Title("Questions per exam").Value(&v.Questions).Validate(validatePositiveInt),
			huh.NewInput().Title("Duration (minutes)").Value(&v.DurationMin).Validate(validatePositiveInt),
			huh.NewSelect[string]().
				Title("Difficulty").
				Options(huh.NewOptions("1", "2", "3", "4", "5")...).
				Value(&v.Difficulty),
			huh.NewInput().Title("Preferred topics (comma separated)").Value(&v.Preferred),
		),
	).WithTheme(ripassoHuhTheme()).WithShowHelp(false)
}

func (v *profileWizardValues) toProfile() domain.ExaminationProfile {
	p := domain.ExaminationProfile{
		Name:                 v.Name,
		OralWeight:           parseNonNegativeFloat(v.OralWeight),
		WrittenWeight:        parseNonNegativeFloat(v.WrittenWeight),
		PracticalWeight:      parseNonNegativeFloat(v.PracticalWeight),
		AverageQuestionCount: parsePositiveInt(v.Questions, 0),
		ExamDurationMin:      parsePositiveInt(v.DurationMin, 0),
		DifficultyLevel:      parsePositiveInt(v.Difficulty, 3),
		PreferredTopics:      splitTopics(v.Preferred),
	}
	for _, f := range v.Formats {
		switch f {
		case formatMultipleChoice:
			p.MultipleChoice = true
		case formatOpen:
			p.OpenQuestions = true
		case formatExercises:
			p.Exercises = true
		case formatCaseStudy:
			p.CaseStudy = true
		}
	}
	return p
}

// splitTopics accepts newline or comma separated topics and drops blanks.
func splitTopics(s string) []string {
	fields := strings.FieldsFunc(s, func(r rune) bool { return r == '\n' || r == ',' })
	var topics []string
	for _, f := range fields {
		if t := strings.TrimSpace(f); t != "" {
			topics = append(topics, t)
		}
	}
	return topics
}

// parsePositiveInt parses s as a positive integer, returning fallback if s is
// empty, non-numeric, or non-positive.
func parsePositiveInt(s string, fallback int) int {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || v <= 0 {
		return fallback
	}
	return v
}

func parseNonNegativeFloat(s string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || v < 0 {
		return 0
	}
	return v
}

// validatePositiveInt accepts empty or a positive integer.
func validatePositiveInt(s string) error {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	if parsePositiveInt(s, 0) == 0 {
		return fmt.Errorf("enter a positive number")
	}
	return nil
}

func validateNonNegativeFloat(s string) error {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || v < 0 {
		return fmt.Errorf("enter a number of zero or more")
	}
	return nil
}

func validateOptionalGrade(s string) error {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || v < 18 || v > domain.ExamGradeScale {
		return fmt.Errorf("enter a grade between 18 and %d", domain.ExamGradeScale)
	}
	return nil
}

func validateRequiredDate(s string) error {
	if _, err := time.Parse(domain.DateLayout, strings.TrimSpace(s)); err != nil {
		return fmt.Errorf("use YYYY-MM-DD format")
	}
	return nil
}
