package schema

import (
	"fmt"
	"slices"
	"strings"
)

// accumulator is the parse-session state machine. It owns the question
// currently being built and the options harvested for it, and commits
// finished questions to the output list. One accumulator belongs to exactly
// one Extract call and is never shared.
type accumulator struct {
	cfg ExtractConfig

	current    string   // text of the open question; empty means idle
	options    []string // options harvested for the open question
	collecting bool     // whether lines are still tested as options

	seen      map[string]struct{}
	questions []QuestionRecord
}

func newAccumulator(cfg ExtractConfig) *accumulator {
	return &accumulator{
		cfg:  cfg,
		seen: make(map[string]struct{}),
	}
}

// building reports whether a question is currently open.
func (a *accumulator) building() bool {
	return a.current != ""
}

// open commits any question in progress, then starts a new one with an empty
// option set. Opening a new question is the only mid-stream commit path.
func (a *accumulator) open(text string) {
	a.commit()
	a.current = text
	a.options = nil
	a.collecting = true
}

// addOption appends an option to the open question unless the exact text is
// already present.
func (a *accumulator) addOption(text string) {
	if !a.building() {
		return
	}
	if slices.Contains(a.options, text) {
		return
	}
	a.options = append(a.options, text)
}

// stopCollecting ends the option-harvesting phase for the open question.
// A later question-opening line still closes the question normally.
func (a *accumulator) stopCollecting() {
	a.collecting = false
}

// finish commits whatever is in progress and returns the committed questions.
func (a *accumulator) finish() []QuestionRecord {
	a.commit()
	return a.questions
}

// commit finalizes the open question: modality is decided by the presence of
// harvested options, the dedup key is consulted, and duplicates are discarded
// without consuming an id. Ids are dense over records actually kept.
func (a *accumulator) commit() {
	if !a.building() {
		return
	}

	text, options := a.current, a.options
	a.current = ""
	a.options = nil
	a.collecting = false

	key := dedupKey(text, a.cfg.DedupPrefixLen)
	if _, dup := a.seen[key]; dup {
		return
	}
	a.seen[key] = struct{}{}

	rec := QuestionRecord{
		ID:   fmt.Sprintf("q%d", len(a.questions)+1),
		Text: text,
	}
	if len(options) > 0 {
		rec.Answer = MultipleChoice{Options: options}
	} else {
		rec.Answer = FreeText{Placeholder: DefaultPlaceholder}
	}

	a.questions = append(a.questions, rec)
}

// dedupKey is the case-folded, prefix-truncated form of a question's text.
// Repeated page headers and OCR noise make exact equality too strict, so only
// the first prefixLen characters are compared.
func dedupKey(text string, prefixLen int) string {
	key := strings.ToLower(text)
	if prefixLen > 0 {
		// Truncate in runes, not bytes: a surviving bullet glyph near the
		// boundary must not be cut mid-sequence.
		if runes := []rune(key); len(runes) > prefixLen {
			key = string(runes[:prefixLen])
		}
	}
	return key
}
