package simulation

import "fmt"

const (
	AnswerTrue  = "Vero"
	AnswerFalse = "Falso"

	// OptionsPerQuestion is the size of every multiple-choice option set.
	OptionsPerQuestion = 4
)

var openTemplates = []string{
	"Spiega il concetto di %s e fornisci un esempio applicativo.",
	"Illustra i principi fondamentali di %s e il loro ruolo nel corso.",
	"Descrivi le principali questioni critiche legate a %s.",
}

var exerciseTemplates = []string{
	"Risolvi il seguente esercizio applicando i metodi di %s, motivando ogni passaggio.",
	"Svolgi un esercizio numerico o pratico su %s e commenta il risultato.",
}

var caseStudyTemplates = []string{
	"Analizza il seguente caso di studio alla luce di %s e proponi una soluzione motivata.",
	"Presenta un caso concreto in cui %s è decisivo e discutine gli esiti.",
}

type trueFalseTemplate struct {
	text   string
	answer string
}

var trueFalseTemplates = []trueFalseTemplate{
	{"Vero o Falso: %s è centrale per questo corso.", AnswerTrue},
	{"Vero o Falso: %s non fa parte del programma d'esame.", AnswerFalse},
}

// multipleChoiceStem never names the topic, which is the correct option.
const multipleChoiceStem = "Quale argomento tratta il concetto descritto nella domanda %d?"

// fillerOptions pad option sets when the topic list is shorter than four.
var fillerOptions = []string{
	"Nessuna delle precedenti",
	"Tutte le precedenti",
	"Argomento non trattato nel corso",
}

func pick(bank []string, n int, topic string) string {
	return fmt.Sprintf(bank[n%len(bank)], topic)
}

// multipleChoiceOptions builds four options: the correct topic placed at
// position, the topics following it in the list as distractors, then
// fillers.
func multipleChoiceOptions(topics []string, topicIdx, position int) []string {
	correct := topics[topicIdx]
	distractors := make([]string, 0, OptionsPerQuestion-1)
	for i := 1; i < len(topics) && len(distractors) < OptionsPerQuestion-1; i++ {
		distractors = append(distractors, topics[(topicIdx+i)%len(topics)])
	}
	for _, f := range fillerOptions {
		if len(distractors) == OptionsPerQuestion-1 {
			break
		}
		distractors = append(distractors, f)
	}

	options := make([]string, 0, OptionsPerQuestion)
	for i := 0; i < OptionsPerQuestion; i++ {
		if i == position {
			options = append(options, correct)
			continue
		}
		options = append(options, distractors[0])
		distractors = distractors[1:]
	}
	return options
}
