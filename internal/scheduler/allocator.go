package scheduler

// AllocateTopics assigns one topic to every plan day, phase by phase. A
// single rotation runs through the whole plan, so phases continue where the
// previous one stopped rather than restarting from the first topic.
//
// Within a phase no topic repeats before every topic has been visited; a
// phase of d days over t topics touches each topic d/t times and the next
// d%t topics in rotation order once more. A phase shorter than the topic
// list covers the d topics under the cursor and leaves the rest to the
// following phase.
func AllocateTopics(topics []string, spans []PhaseSpan) [][]string {
	rot := NewRotation(NormalizeTopics(topics))

	total := 0
	for _, span := range spans {
		total += max(span.Days, 0)
	}
	days := make([][]string, 0, total)

	for _, span := range spans {
		for i := 0; i < span.Days; i++ {
			days = append(days, []string{rot.Next()})
		}
	}
	return days
}
