package scheduler

import (
	"strings"

	"github.com/alexanderramin/ripasso/internal/domain"
)

// NormalizeTopics trims names, drops blanks and removes case-insensitive
// duplicates while keeping the first spelling and the caller's order. An
// empty result is replaced by domain.DefaultTopic.
func NormalizeTopics(topics []string) []string {
	seen := make(map[string]bool, len(topics))
	out := make([]string, 0, len(topics))
	for _, t := range topics {
		name := strings.TrimSpace(t)
		if name == "" {
			continue
		}
		key := strings.ToLower(name)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, name)
	}
	if len(out) == 0 {
		return []string{domain.DefaultTopic}
	}
	return out
}

// Rotation hands out topics round-robin. Its cursor only moves forward, so a
// caller that keeps one Rotation across several windows gets an even spread
// over all of them.
type Rotation struct {
	topics []string
	pos    int
}

// NewRotation creates a rotation over the given (already normalised) topics.
func NewRotation(topics []string) *Rotation {
	if len(topics) == 0 {
		topics = []string{domain.DefaultTopic}
	}
	return &Rotation{topics: topics}
}

// Len returns the number of distinct topics in the cycle.
func (r *Rotation) Len() int { return len(r.topics) }

// Next returns the topic under the cursor and advances it.
func (r *Rotation) Next() string {
	t := r.topics[r.pos%len(r.topics)]
	r.pos++
	return t
}

// Take returns the next n topics in rotation order.
func (r *Rotation) Take(n int) []string {
	out := make([]string, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, r.Next())
	}
	return out
}
