package scheduler

import "github.com/alexanderramin/ripasso/internal/domain"

type materialGroup int

const (
	groupReading materialGroup = iota
	groupPractice
	groupExam
)

var materialGroups = map[domain.MaterialKind][]materialGroup{
	domain.MaterialBook:      {groupReading},
	domain.MaterialHandout:   {groupReading},
	domain.MaterialNotes:     {groupReading},
	domain.MaterialSlide:     {groupReading},
	domain.MaterialVideo:     {groupReading},
	domain.MaterialAudio:     {groupReading},
	domain.MaterialOther:     {groupReading},
	domain.MaterialExercises: {groupPractice},
	domain.MaterialPastExam:  {groupPractice, groupExam},
}

// activityGroups is the lookup order of material groups per activity.
var activityGroups = map[domain.ActivityType][]materialGroup{
	domain.ActivityRead:     {groupReading},
	domain.ActivityReview:   {groupReading},
	domain.ActivityPractice: {groupPractice},
	domain.ActivityQuiz:     {groupPractice},
	domain.ActivityMockExam: {groupExam, groupPractice},
}

// MaterialPicker suggests a material for each task, cycling through the
// materials that suit the activity. A nil picker suggests nothing.
type MaterialPicker struct {
	groups map[materialGroup][]string
	next   map[materialGroup]int
}

// NewMaterialPicker indexes materials by the activities they support, in
// input order.
func NewMaterialPicker(materials []domain.Material) *MaterialPicker {
	p := &MaterialPicker{
		groups: make(map[materialGroup][]string),
		next:   make(map[materialGroup]int),
	}
	for _, m := range materials {
		name := domain.CoalesceStr(m.Name, string(m.Kind))
		if name == "" {
			continue
		}
		groups, ok := materialGroups[m.Kind]
		if !ok {
			groups = materialGroups[domain.MaterialOther]
		}
		for _, g := range groups {
			p.groups[g] = append(p.groups[g], name)
		}
	}
	return p
}

// Pick returns the next material for the activity, or "" when none fits.
func (p *MaterialPicker) Pick(activity domain.ActivityType) string {
	if p == nil {
		return ""
	}
	for _, g := range activityGroups[activity] {
		names := p.groups[g]
		if len(names) == 0 {
			continue
		}
		name := names[p.next[g]%len(names)]
		p.next[g]++
		return name
	}
	return ""
}
