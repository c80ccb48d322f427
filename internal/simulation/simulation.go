package simulation

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/ripasso/internal/domain"
	"github.com/alexanderramin/ripasso/internal/scheduler"
	"github.com/google/uuid"
)

var simulationNamespace = uuid.MustParse("3b1e7f4c-92a8-4d61-b0c5-6f2d8e9a1c37")

type simulationFingerprint struct {
	Created string                    `json:"created"`
	Profile domain.ExaminationProfile `json:"profile"`
	Topics  []string                  `json:"topics"`
}

// Generate synthesizes a mock exam for the profile. Question types follow the
// profile weights, topics rotate through the list with preferred topics
// first, and points always add up to domain.ExamGradeScale. The output
// depends only on the arguments.
func Generate(profile domain.ExaminationProfile, topics []string, now time.Time) *domain.ExamSimulation {
	ordered := OrderTopics(scheduler.NormalizeTopics(topics), profile.PreferredTopics)
	n := QuestionCount(profile)
	kinds := sequence(apportion(bucketShares(profile), n))
	points := SplitPoints(domain.ExamGradeScale, n)
	difficulty := DifficultyFor(profile.DifficultyLevel)

	simID := simulationIdentifier(profile, ordered, now)
	sim := &domain.ExamSimulation{
		ID:          simID.String(),
		ProfileName: profile.Name,
		Topics:      ordered,
		Questions:   make([]domain.SimulationQuestion, 0, n),
		TotalPoints: domain.ExamGradeScale,
		CreatedAt:   now,
	}

	var seen [bucketCount]int
	for i, b := range kinds {
		topicIdx := i % len(ordered)
		q := buildQuestion(b, seen[b], profile, ordered, topicIdx, i)
		q.ID = uuid.NewSHA1(simID, []byte(fmt.Sprintf("question:%d", i))).String()
		q.Difficulty = difficulty
		q.Points = points[i]
		sim.Questions = append(sim.Questions, q)
		seen[b]++
	}
	return sim
}

// buildQuestion renders the nth question of a bucket.
func buildQuestion(b bucket, nth int, profile domain.ExaminationProfile, topics []string, topicIdx, index int) domain.SimulationQuestion {
	topic := topics[topicIdx]
	q := domain.SimulationQuestion{Topic: topic}

	switch b {
	case bucketClosed:
		if nth%2 == 0 {
			q.Type = domain.QuestionMultipleChoice
			q.Text = fmt.Sprintf(multipleChoiceStem, index+1)
			q.Options = multipleChoiceOptions(topics, topicIdx, (nth/2)%OptionsPerQuestion)
			q.CorrectAnswer = topic
		} else {
			tmpl := trueFalseTemplates[(nth/2)%len(trueFalseTemplates)]
			q.Type = domain.QuestionTrueFalse
			q.Text = fmt.Sprintf(tmpl.text, topic)
			q.Options = []string{AnswerTrue, AnswerFalse}
			q.CorrectAnswer = tmpl.answer
		}
	case bucketExercise:
		q.Type = domain.QuestionOpen
		useCase := profile.CaseStudy && (!profile.Exercises || nth%2 == 1)
		if useCase {
			q.Text = pick(caseStudyTemplates, nth, topic)
		} else {
			q.Text = pick(exerciseTemplates, nth, topic)
		}
	default:
		q.Type = domain.QuestionOpen
		q.Text = pick(openTemplates, nth, topic)
	}
	return q
}

// OrderTopics moves the preferred topics that occur in topics to the front,
// keeping the relative order of both groups. Matching ignores case.
func OrderTopics(topics, preferred []string) []string {
	want := make(map[string]bool, len(preferred))
	for _, p := range preferred {
		want[strings.ToLower(strings.TrimSpace(p))] = true
	}
	front := make([]string, 0, len(topics))
	back := make([]string, 0, len(topics))
	for _, t := range topics {
		if want[strings.ToLower(t)] {
			front = append(front, t)
		} else {
			back = append(back, t)
		}
	}
	return append(front, back...)
}

// SplitPoints divides total into n integer shares, handing the remainder to
// the first shares.
func SplitPoints(total, n int) []int {
	if n <= 0 {
		return nil
	}
	out := make([]int, n)
	base, extra := total/n, total%n
	for i := range out {
		out[i] = base
		if i < extra {
			out[i]++
		}
	}
	return out
}

// DifficultyFor maps a 1-5 level onto its label. Levels outside the range
// are clamped.
func DifficultyFor(level int) domain.DifficultyLabel {
	level = min(max(level, 1), 5)
	switch {
	case level <= 2:
		return domain.DifficultyBase
	case level == 3:
		return domain.DifficultyMedium
	default:
		return domain.DifficultyAdvanced
	}
}

// simulationIdentifier fingerprints the profile with its weights made
// finite, since JSON cannot encode NaN or infinities.
func simulationIdentifier(profile domain.ExaminationProfile, topics []string, now time.Time) uuid.UUID {
	profile.OralWeight = usableWeight(profile.OralWeight)
	profile.WrittenWeight = usableWeight(profile.WrittenWeight)
	profile.PracticalWeight = usableWeight(profile.PracticalWeight)
	fp := simulationFingerprint{
		Created: now.UTC().Format(time.RFC3339Nano),
		Profile: profile,
		Topics:  topics,
	}
	data, _ := json.Marshal(fp)
	return uuid.NewSHA1(simulationNamespace, data)
}
