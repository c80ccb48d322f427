package export

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/alexanderramin/ripasso/internal/domain"
	"github.com/mandolyte/mdtopdf"
)

type Format string

const (
	FormatMarkdown Format = "md"
	FormatPDF      Format = "pdf"
)

// ParseFormat accepts "md", "markdown" and "pdf".
func ParseFormat(s string) (Format, error) {
	switch s {
	case "md", "markdown":
		return FormatMarkdown, nil
	case "pdf":
		return FormatPDF, nil
	default:
		return "", fmt.Errorf("unknown export format %q (expected md or pdf)", s)
	}
}

// WritePlan renders the plan into dir and returns the written path.
func WritePlan(plan *domain.StudyPlan, dir string, format Format) (string, error) {
	return write(PlanMarkdown(plan), dir, "plan-"+shortID(plan.ID), format)
}

// WriteSimulation renders the simulation into dir and returns the written
// path.
func WriteSimulation(sim *domain.ExamSimulation, dir string, format Format, answers bool) (string, error) {
	return write(SimulationMarkdown(sim, answers), dir, "exam-"+shortID(sim.ID), format)
}

func write(markdown, dir, base string, format Format) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating export directory: %w", err)
	}
	path := filepath.Join(dir, base+"."+string(format))

	switch format {
	case FormatMarkdown:
		if err := os.WriteFile(path, []byte(markdown), 0o644); err != nil {
			return "", fmt.Errorf("writing %s: %w", path, err)
		}
	case FormatPDF:
		renderer := mdtopdf.NewPdfRenderer("P", "A4", path, "", nil, mdtopdf.LIGHT)
		if err := renderer.Process([]byte(markdown)); err != nil {
			return "", fmt.Errorf("rendering %s: %w", path, err)
		}
	default:
		return "", fmt.Errorf("unknown export format %q", format)
	}
	return path, nil
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
