package schema

import (
	"strings"
)

// Extractor reconstructs a structured question schema from the plain text of
// a scanned or exported survey document. It is a pure function from text to
// schema: each Extract call owns its entire parse state, so one extractor may
// serve concurrent callers processing independent documents.
type Extractor struct {
	cfg ExtractConfig
}

// NewExtractor creates an extractor with the default configuration.
func NewExtractor() *Extractor {
	return &Extractor{cfg: DefaultExtractConfig()}
}

// NewExtractorWithConfig creates an extractor with a custom configuration.
func NewExtractorWithConfig(cfg ExtractConfig) *Extractor {
	return &Extractor{cfg: cfg}
}

// Config returns the extractor's configuration.
func (e *Extractor) Config() ExtractConfig {
	return e.cfg
}

// Extract walks the document text line by line and reconstructs its question
// schema. If the primary scan yields nothing the fallback clause scan runs
// over the whole text, and if that also yields nothing the schema is
// populated with the two default questions, so the result is never empty.
// Title and filename are accepted as given.
func (e *Extractor) Extract(content, title, filename string) *DocumentSchema {
	questions := e.scanLines(content)
	if len(questions) == 0 {
		questions = e.fallbackScan(content)
	}
	if len(questions) == 0 {
		questions = defaultQuestions()
	}

	return &DocumentSchema{
		Title:     title,
		Filename:  filename,
		Questions: questions,
	}
}

// scanLines is the primary strategy: every line is normalized and fed to the
// question-detection cascade; lines between questions are tested as options
// for the open question while collection is active.
func (e *Extractor) scanLines(content string) []QuestionRecord {
	acc := newAccumulator(e.cfg)

	for _, raw := range strings.Split(content, "\n") {
		line := NormalizeLine(raw)
		if line == "" {
			continue
		}

		// Lines below the noise threshold can never open a question, but a
		// short line like "No" is still a legitimate option for the question
		// above it.
		if len(line) >= e.cfg.MinLineLen {
			if text, ok := detectQuestion(line); ok {
				acc.open(text)
				continue
			}
		}

		if acc.building() && acc.collecting {
			if opt, ok := collectOption(line, e.cfg); ok {
				acc.addOption(opt)
			} else if len(line) > e.cfg.LongLineLen {
				// Long prose after a question means the option list,
				// if there was one, is over.
				acc.stopCollecting()
			}
		}
	}

	return acc.finish()
}

// defaultQuestions is the schema of last resort: downstream consumers are
// never handed an empty question list.
func defaultQuestions() []QuestionRecord {
	return []QuestionRecord{
		{
			ID:   "q1",
			Text: "How would you describe your overall health?",
			Answer: MultipleChoice{
				Options: []string{"Excellent", "Good", "Fair", "Poor", "Very Poor"},
			},
		},
		{
			ID:     "q2",
			Text:   "Do you have any specific concerns?",
			Answer: FreeText{Placeholder: DefaultPlaceholder},
		},
	}
}
