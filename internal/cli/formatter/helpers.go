package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/ripasso/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

// RenderBox wraps content in a rounded-border box with an optional title.
func RenderBox(title string, content string) string {
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorDim).
		Padding(1, 2)

	if title != "" {
		return boxStyle.Render(StyleHeader.Render(strings.ToUpper(title)) + "\n\n" + content)
	}
	return boxStyle.Render(content)
}

// DaysBetween counts calendar days from now to t, ignoring the time of day.
func DaysBetween(now, t time.Time) int {
	from := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	to := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	return int(to.Sub(from).Hours() / 24)
}

// RelativeDateFrom describes t relative to now in calendar days.
func RelativeDateFrom(t time.Time, now time.Time) string {
	days := DaysBetween(now, t)
	switch {
	case days == 0:
		return "Today"
	case days == 1:
		return "Tomorrow"
	case days == -1:
		return "Yesterday"
	case days > 0 && days < 14:
		return fmt.Sprintf("In %dd", days)
	case days > 0 && days < 60:
		return fmt.Sprintf("In %dw", days/7)
	case days > 0:
		return fmt.Sprintf("In %dmo", days/30)
	case days > -14:
		return fmt.Sprintf("%dd ago", -days)
	case days > -60:
		return fmt.Sprintf("%dw ago", -days/7)
	default:
		return fmt.Sprintf("%dmo ago", -days/30)
	}
}

// ExamCountdown is RelativeDateFrom colored by urgency: red within two
// days or past, yellow within a week.
func ExamCountdown(exam time.Time, now time.Time) string {
	text := RelativeDateFrom(exam, now)
	days := DaysBetween(now, exam)
	switch {
	case days <= 2:
		return StyleRed.Render(text)
	case days <= 7:
		return StyleYellow.Render(text)
	default:
		return StyleFg.Render(text)
	}
}

// HumanDate formats a calendar day like "Sat 15 Mar 2025".
func HumanDate(t time.Time) string {
	return t.Format("Mon 2 Jan 2006")
}

// TruncID returns the first 8 characters of an ID, dimmed.
func TruncID(id string) string {
	return StyleDim.Render(ShortID(id))
}

// ShortID is the unstyled 8 character prefix accepted by ID resolution.
func ShortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// FormatMinutes converts raw minutes into human-friendly format.
func FormatMinutes(min int) string {
	if min <= 0 {
		return "0m"
	}
	h := min / 60
	m := min % 60
	if h > 0 && m > 0 {
		return fmt.Sprintf("%dh %dm", h, m)
	}
	if h > 0 {
		return fmt.Sprintf("%dh", h)
	}
	return fmt.Sprintf("%dm", m)
}

// ActivityLabel names a task activity for terminal output.
func ActivityLabel(a domain.ActivityType) string {
	switch a {
	case domain.ActivityRead:
		return "read"
	case domain.ActivityPractice:
		return "practice"
	case domain.ActivityReview:
		return "review"
	case domain.ActivityQuiz:
		return "quiz"
	case domain.ActivityMockExam:
		return StylePurple.Render("mock exam")
	default:
		return string(a)
	}
}
