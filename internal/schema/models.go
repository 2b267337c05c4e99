package schema

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Modality represents the answer modality of a question
type Modality string

const (
	ModalityMultipleChoice Modality = "multiple_choice"
	ModalityFreeText       Modality = "free_text"
)

// DefaultPlaceholder is the hint attached to every free-text question.
const DefaultPlaceholder = "Please provide your answer"

// Answer is the tagged answer variant of a question. Exactly one concrete
// type exists per modality, so a record can never carry options and a
// free-text placeholder at the same time.
type Answer interface {
	Modality() Modality
}

// MultipleChoice is the answer variant for questions with an enumerated
// option set.
type MultipleChoice struct {
	Options []string
}

// Modality returns ModalityMultipleChoice.
func (MultipleChoice) Modality() Modality { return ModalityMultipleChoice }

// FreeText is the answer variant for questions expecting a typed answer.
type FreeText struct {
	Placeholder string
}

// Modality returns ModalityFreeText.
func (FreeText) Modality() Modality { return ModalityFreeText }

// QuestionRecord represents one structured question extracted from a document
type QuestionRecord struct {
	ID     string
	Text   string
	Answer Answer
}

// Modality returns the answer modality of the record.
func (q QuestionRecord) Modality() Modality {
	if q.Answer == nil {
		return ModalityFreeText
	}
	return q.Answer.Modality()
}

// Options returns the option set for multiple-choice records, nil otherwise.
func (q QuestionRecord) Options() []string {
	if mc, ok := q.Answer.(MultipleChoice); ok {
		return mc.Options
	}
	return nil
}

// Placeholder returns the hint string for free-text records, empty otherwise.
func (q QuestionRecord) Placeholder() string {
	if ft, ok := q.Answer.(FreeText); ok {
		return ft.Placeholder
	}
	return ""
}

// questionJSON is the wire form of a QuestionRecord. Field names and the
// two-way type enumeration are the stable contract the response generator
// relies on.
type questionJSON struct {
	ID          string   `json:"id"`
	Text        string   `json:"text"`
	Type        Modality `json:"type"`
	Options     []string `json:"options,omitempty"`
	Placeholder string   `json:"placeholder,omitempty"`
}

// MarshalJSON flattens the answer variant into the wire form.
func (q QuestionRecord) MarshalJSON() ([]byte, error) {
	wire := questionJSON{
		ID:   q.ID,
		Text: q.Text,
		Type: q.Modality(),
	}
	switch a := q.Answer.(type) {
	case MultipleChoice:
		wire.Options = a.Options
	case FreeText:
		wire.Placeholder = a.Placeholder
	default:
		wire.Placeholder = DefaultPlaceholder
	}
	return json.Marshal(wire)
}

// UnmarshalJSON reconstructs the answer variant from the wire form.
func (q *QuestionRecord) UnmarshalJSON(data []byte) error {
	var wire questionJSON
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}

	q.ID = wire.ID
	q.Text = wire.Text

	switch wire.Type {
	case ModalityMultipleChoice:
		q.Answer = MultipleChoice{Options: wire.Options}
	case ModalityFreeText:
		q.Answer = FreeText{Placeholder: wire.Placeholder}
	default:
		return fmt.Errorf("unknown question type: %q", wire.Type)
	}

	return nil
}

// DocumentSchema is the ordered set of question records extracted from one
// source document, plus its metadata.
type DocumentSchema struct {
	Title     string           `json:"title"`
	Filename  string           `json:"filename"`
	Questions []QuestionRecord `json:"questions"`
}

var titleCaser = cases.Title(language.English)

// TitleFromFilename derives a human-readable questionnaire title from a PDF
// filename: the extension is dropped and underscores/hyphens become spaces.
func TitleFromFilename(filename string) string {
	name := filepath.Base(filename)
	name = strings.TrimSuffix(name, ".pdf")
	name = strings.ReplaceAll(name, "_", " ")
	name = strings.ReplaceAll(name, "-", " ")
	return titleCaser.String(name)
}
