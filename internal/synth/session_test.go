package synth

import (
	"fmt"
	"reflect"
	"testing"
	"time"

	"github.com/formlens/mcp-survey-reader/internal/schema"
)

func fixedClock() time.Time {
	return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
}

func testSchema() *schema.DocumentSchema {
	return &schema.DocumentSchema{
		Title:    "Health Survey",
		Filename: "health_survey.pdf",
		Questions: []schema.QuestionRecord{
			{
				ID:   "q1",
				Text: "How would you rate your overall health?",
				Answer: schema.MultipleChoice{
					Options: []string{"Excellent", "Good", "Fair", "Poor", "Very Poor"},
				},
			},
			{
				ID:     "q2",
				Text:   "What foods trigger your symptoms?",
				Answer: schema.FreeText{Placeholder: schema.DefaultPlaceholder},
			},
		},
	}
}

func TestSession_PickOption(t *testing.T) {
	session := NewSession(DefaultSeed)

	if got := session.PickOption(nil); got != "Yes" {
		t.Errorf("expected Yes for empty options but got %q", got)
	}
	if got := session.PickOption([]string{"Only"}); got != "Only" {
		t.Errorf("expected sole option but got %q", got)
	}

	options := []string{"Excellent", "Good", "Fair", "Poor", "Very Poor"}
	counts := make(map[string]int)
	for i := 0; i < 2000; i++ {
		choice := session.PickOption(options)
		found := false
		for _, opt := range options {
			if choice == opt {
				found = true
				break
			}
		}
		if !found {
			t.Fatalf("choice %q is not one of the options", choice)
		}
		counts[choice]++
	}

	// Middle options should dominate the tails
	if counts["Fair"] <= counts["Excellent"] {
		t.Errorf("expected middle option to outnumber first: Fair=%d Excellent=%d",
			counts["Fair"], counts["Excellent"])
	}
	if counts["Fair"] <= counts["Very Poor"] {
		t.Errorf("expected middle option to outnumber last: Fair=%d Very Poor=%d",
			counts["Fair"], counts["Very Poor"])
	}
}

func TestSession_TextResponse_KeywordRouting(t *testing.T) {
	session := NewSession(DefaultSeed)

	tests := []struct {
		name     string
		question string
		bank     []string
	}{
		{name: "food question", question: "What foods should you avoid?", bank: foodTemplates},
		{name: "diet question", question: "Describe your diet.", bank: foodTemplates},
		{name: "activity question", question: "What physical activities do you enjoy?", bank: activityTemplates},
		{name: "general question", question: "Do you have any concerns?", bank: generalTemplates},
		{name: "food wins over activity", question: "Do you eat before exercise?", bank: foodTemplates},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			answer := session.TextResponse(tt.question)
			for _, template := range tt.bank {
				if answer == template {
					return
				}
			}
			t.Errorf("answer %q not found in expected template bank", answer)
		})
	}
}

func TestSession_GenerateResponses(t *testing.T) {
	session := NewSession(DefaultSeed)
	session.now = fixedClock

	doc := testSchema()
	responses := session.GenerateResponses(doc, 3)

	if len(responses) != 3 {
		t.Fatalf("expected 3 responses but got %d", len(responses))
	}

	for i, resp := range responses {
		wantID := fmt.Sprintf("resp_health_survey_%d", i+1)
		if resp.ResponseID != wantID {
			t.Errorf("expected response id %q but got %q", wantID, resp.ResponseID)
		}
		if resp.QuestionnaireName != "Health Survey" {
			t.Errorf("expected questionnaire name Health Survey but got %q", resp.QuestionnaireName)
		}
		if len(resp.Answers) != 2 {
			t.Errorf("expected answers for 2 questions but got %d", len(resp.Answers))
		}

		mcq := resp.Answers["q1"]
		validOption := false
		for _, opt := range doc.Questions[0].Options() {
			if mcq == opt {
				validOption = true
			}
		}
		if !validOption {
			t.Errorf("multiple choice answer %q is not one of the options", mcq)
		}

		if resp.Answers["q2"] == "" {
			t.Errorf("expected non-empty free text answer")
		}

		ts, err := time.Parse(time.RFC3339, resp.Timestamp)
		if err != nil {
			t.Fatalf("timestamp is not RFC3339: %v", err)
		}
		age := fixedClock().Sub(ts)
		if age < 0 || age > 31*24*time.Hour {
			t.Errorf("timestamp %s is not within the last 31 days", resp.Timestamp)
		}
	}
}

func TestSession_GenerateResponses_Deterministic(t *testing.T) {
	first := NewSession(7)
	first.now = fixedClock
	second := NewSession(7)
	second.now = fixedClock

	doc := testSchema()
	a := first.GenerateResponses(doc, 5)
	b := second.GenerateResponses(doc, 5)

	if !reflect.DeepEqual(a, b) {
		t.Errorf("same seed should produce identical responses")
	}
}

func TestSession_GenerateDataset(t *testing.T) {
	session := NewSession(DefaultSeed)
	session.now = fixedClock

	docs := []*schema.DocumentSchema{testSchema()}
	result := session.GenerateDataset(docs, 4)

	if result.RunID == "" {
		t.Errorf("expected a run id")
	}
	if result.Seed != DefaultSeed {
		t.Errorf("expected seed %d but got %d", DefaultSeed, result.Seed)
	}
	if len(result.Datasets) != 1 {
		t.Fatalf("expected 1 dataset but got %d", len(result.Datasets))
	}

	dataset := result.Datasets[0]
	if dataset.Questionnaire != "Health Survey" {
		t.Errorf("expected questionnaire Health Survey but got %q", dataset.Questionnaire)
	}
	if dataset.Filename != "health_survey.pdf" {
		t.Errorf("expected filename health_survey.pdf but got %q", dataset.Filename)
	}
	if dataset.TotalResponses != 4 {
		t.Errorf("expected 4 total responses but got %d", dataset.TotalResponses)
	}
	if dataset.TotalQuestions != 2 {
		t.Errorf("expected 2 total questions but got %d", dataset.TotalQuestions)
	}
	if len(dataset.Responses) != 4 {
		t.Errorf("expected 4 responses but got %d", len(dataset.Responses))
	}
}
