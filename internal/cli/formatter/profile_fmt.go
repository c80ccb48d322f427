package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/ripasso/internal/domain"
)

func FormatProfileList(profiles []*domain.ExaminationProfile) string {
	if len(profiles) == 0 {
		return Dim("No profiles saved. Add one with `ripasso profile set`.") + "\n"
	}
	rows := make([][]string, 0, len(profiles))
	for _, p := range profiles {
		rows = append(rows, []string{
			p.Name,
			weights(p),
			formats(p),
			fmt.Sprintf("%d", p.AverageQuestionCount),
			fmt.Sprintf("%d/5", p.DifficultyLevel),
		})
	}
	return RenderTable([]string{"NAME", "ORAL/WRITTEN/PRACTICAL", "FORMATS", "QUESTIONS", "LEVEL"}, rows)
}

func FormatProfile(p *domain.ExaminationProfile) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Name:       %s\n", Bold(p.Name))
	fmt.Fprintf(&b, "Weights:    %s\n", weights(p))
	fmt.Fprintf(&b, "Formats:    %s\n", formats(p))
	fmt.Fprintf(&b, "Questions:  %d\n", p.AverageQuestionCount)
	fmt.Fprintf(&b, "Duration:   %s\n", FormatMinutes(p.ExamDurationMin))
	fmt.Fprintf(&b, "Difficulty: %d/5\n", p.DifficultyLevel)
	if len(p.PreferredTopics) > 0 {
		fmt.Fprintf(&b, "Preferred:  %s\n", strings.Join(p.PreferredTopics, ", "))
	}
	return RenderBox("Profile", strings.TrimRight(b.String(), "\n"))
}

func weights(p *domain.ExaminationProfile) string {
	return fmt.Sprintf("%g/%g/%g", p.OralWeight, p.WrittenWeight, p.PracticalWeight)
}

func formats(p *domain.ExaminationProfile) string {
	var out []string
	if p.MultipleChoice {
		out = append(out, "multiple choice")
	}
	if p.OpenQuestions {
		out = append(out, "open")
	}
	if p.Exercises {
		out = append(out, "exercises")
	}
	if p.CaseStudy {
		out = append(out, "case study")
	}
	if len(out) == 0 {
		return Dim("--")
	}
	return strings.Join(out, ", ")
}
