package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/formlens/mcp-survey-reader/internal/synth"
)

func TestSummaryOf(t *testing.T) {
	result := &synth.GenerationResult{
		RunID: "run-1",
		Seed:  42,
		Datasets: []synth.Dataset{
			{
				Questionnaire:  "Health Survey",
				TotalQuestions: 6,
				TotalResponses: 10,
			},
		},
	}

	summary := summaryOf(result)

	if summary.RunID != "run-1" {
		t.Errorf("expected run id run-1 but got %q", summary.RunID)
	}
	if summary.Seed != 42 {
		t.Errorf("expected seed 42 but got %d", summary.Seed)
	}
	if len(summary.Datasets) != 1 {
		t.Fatalf("expected 1 dataset but got %d", len(summary.Datasets))
	}
	if summary.Datasets[0].DataPoints != 60 {
		t.Errorf("expected 60 data points but got %d", summary.Datasets[0].DataPoints)
	}
}

func TestWriteJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.json")

	payload := map[string]int{"questions": 3}
	if err := writeJSON(path, payload); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read output: %v", err)
	}

	var decoded map[string]int
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if decoded["questions"] != 3 {
		t.Errorf("expected questions=3 but got %d", decoded["questions"])
	}
}
