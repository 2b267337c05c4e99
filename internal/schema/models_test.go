package schema

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuestionRecordMarshalMultipleChoice(t *testing.T) {
	q := QuestionRecord{
		ID:     "q1",
		Text:   "Do you smoke?",
		Answer: MultipleChoice{Options: []string{"Yes", "No"}},
	}

	data, err := json.Marshal(q)
	require.NoError(t, err)

	var wire map[string]any
	require.NoError(t, json.Unmarshal(data, &wire))

	assert.Equal(t, "q1", wire["id"])
	assert.Equal(t, "Do you smoke?", wire["text"])
	assert.Equal(t, "multiple_choice", wire["type"])
	assert.Equal(t, []any{"Yes", "No"}, wire["options"])
	assert.NotContains(t, wire, "placeholder")
}

func TestQuestionRecordMarshalFreeText(t *testing.T) {
	q := QuestionRecord{
		ID:     "q2",
		Text:   "Please describe your diet.",
		Answer: FreeText{Placeholder: DefaultPlaceholder},
	}

	data, err := json.Marshal(q)
	require.NoError(t, err)

	var wire map[string]any
	require.NoError(t, json.Unmarshal(data, &wire))

	assert.Equal(t, "free_text", wire["type"])
	assert.Equal(t, DefaultPlaceholder, wire["placeholder"])
	assert.NotContains(t, wire, "options")
}

func TestQuestionRecordRoundTrip(t *testing.T) {
	original := DocumentSchema{
		Title:    "Lifestyle Questionnaire",
		Filename: "lifestyle_questionnaire.pdf",
		Questions: []QuestionRecord{
			{ID: "q1", Text: "Do you smoke?", Answer: MultipleChoice{Options: []string{"Yes", "No"}}},
			{ID: "q2", Text: "Please describe your diet.", Answer: FreeText{Placeholder: DefaultPlaceholder}},
		},
	}

	data, err := json.Marshal(original)
	require.NoError(t, err)

	var decoded DocumentSchema
	require.NoError(t, json.Unmarshal(data, &decoded))

	require.Len(t, decoded.Questions, 2)
	assert.Equal(t, ModalityMultipleChoice, decoded.Questions[0].Modality())
	assert.Equal(t, []string{"Yes", "No"}, decoded.Questions[0].Options())
	assert.Equal(t, ModalityFreeText, decoded.Questions[1].Modality())
	assert.Equal(t, DefaultPlaceholder, decoded.Questions[1].Placeholder())
}

func TestQuestionRecordUnmarshalRejectsUnknownType(t *testing.T) {
	var q QuestionRecord
	err := json.Unmarshal([]byte(`{"id":"q1","text":"x?","type":"grid"}`), &q)
	assert.Error(t, err)
}

func TestTitleFromFilename(t *testing.T) {
	tests := []struct {
		filename string
		want     string
	}{
		{"lifestyle_questionnaire.pdf", "Lifestyle Questionnaire"},
		{"Sleep-Quality-Survey.pdf", "Sleep Quality Survey"},
		{"/data/forms/daily_habits.pdf", "Daily Habits"},
		{"plain", "Plain"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, TitleFromFilename(tt.filename), "filename %q", tt.filename)
	}
}
