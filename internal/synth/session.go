// Package synth generates synthetic questionnaire response data from
// extracted question schemas. Generation is driven by an explicit seed so
// that runs are reproducible.
package synth

import (
	"fmt"
	"math"
	"math/rand"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/formlens/mcp-survey-reader/internal/schema"
)

// DefaultSeed matches the historical default used for reproducible datasets.
const DefaultSeed = 42

// Response is one synthetic submission of a questionnaire
type Response struct {
	ResponseID        string            `json:"responseId"`
	QuestionnaireName string            `json:"questionnaireName"`
	Timestamp         string            `json:"timestamp"`
	Answers           map[string]string `json:"answers"`
}

// Dataset groups the synthetic responses of one questionnaire
type Dataset struct {
	Questionnaire  string     `json:"questionnaire"`
	Filename       string     `json:"filename"`
	TotalResponses int        `json:"totalResponses"`
	TotalQuestions int        `json:"totalQuestions"`
	Responses      []Response `json:"responses"`
}

// GenerationResult is a full generation run across all questionnaires
type GenerationResult struct {
	RunID    string    `json:"runId"`
	Seed     int64     `json:"seed"`
	Datasets []Dataset `json:"datasets"`
}

// Session produces synthetic responses from a seeded random source.
// A Session is not safe for concurrent use.
type Session struct {
	rng  *rand.Rand
	seed int64
	now  func() time.Time
}

// NewSession creates a generation session with the given seed
func NewSession(seed int64) *Session {
	return &Session{
		rng:  rand.New(rand.NewSource(seed)),
		seed: seed,
		now:  time.Now,
	}
}

// Seed returns the seed the session was created with
func (s *Session) Seed() int64 {
	return s.seed
}

// PickOption selects one option with weights favouring the middle of the
// list, so extreme answers stay rarer than moderate ones.
func (s *Session) PickOption(options []string) string {
	if len(options) == 0 {
		return "Yes"
	}
	if len(options) == 1 {
		return options[0]
	}

	mid := float64(len(options)) / 2
	sigma := mid / 2
	weights := make([]float64, len(options))
	var total float64
	for i := range options {
		d := float64(i) - mid
		weights[i] = math.Exp(-(d * d) / (2 * sigma * sigma))
		total += weights[i]
	}

	target := s.rng.Float64() * total
	for i, w := range weights {
		target -= w
		if target < 0 {
			return options[i]
		}
	}
	return options[len(options)-1]
}

// TextResponse picks a plausible free-text answer based on keywords in the
// question text.
func (s *Session) TextResponse(questionText string) string {
	bank := templatesForQuestion(questionText)
	return bank[s.rng.Intn(len(bank))]
}

// GenerateResponses generates n synthetic submissions for one questionnaire
func (s *Session) GenerateResponses(doc *schema.DocumentSchema, n int) []Response {
	responses := make([]Response, 0, n)
	base := strings.TrimSuffix(filepath.Base(doc.Filename), ".pdf")

	for i := 0; i < n; i++ {
		// Random submission time within the last 30 days
		daysAgo := s.rng.Intn(31)
		hoursAgo := s.rng.Intn(24)
		timestamp := s.now().
			Add(-time.Duration(daysAgo) * 24 * time.Hour).
			Add(-time.Duration(hoursAgo) * time.Hour)

		response := Response{
			ResponseID:        fmt.Sprintf("resp_%s_%d", base, i+1),
			QuestionnaireName: doc.Title,
			Timestamp:         timestamp.Format(time.RFC3339),
			Answers:           make(map[string]string, len(doc.Questions)),
		}

		for _, question := range doc.Questions {
			if question.Modality() == schema.ModalityMultipleChoice {
				response.Answers[question.ID] = s.PickOption(question.Options())
			} else {
				response.Answers[question.ID] = s.TextResponse(question.Text)
			}
		}

		responses = append(responses, response)
	}

	return responses
}

// GenerateDataset generates n responses for every questionnaire and tags the
// run with a unique identifier.
func (s *Session) GenerateDataset(docs []*schema.DocumentSchema, n int) *GenerationResult {
	result := &GenerationResult{
		RunID:    uuid.NewString(),
		Seed:     s.seed,
		Datasets: make([]Dataset, 0, len(docs)),
	}

	for _, doc := range docs {
		result.Datasets = append(result.Datasets, Dataset{
			Questionnaire:  doc.Title,
			Filename:       doc.Filename,
			TotalResponses: n,
			TotalQuestions: len(doc.Questions),
			Responses:      s.GenerateResponses(doc, n),
		})
	}

	return result
}
