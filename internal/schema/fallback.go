package schema

import (
	"fmt"
	"regexp"
)

// fallbackClausePattern matches a maximal substring terminated by '?' with no
// earlier sentence terminator inside it.
var fallbackClausePattern = regexp.MustCompile(`[^.!?]*\?`)

// fallbackScan is the secondary extraction strategy, used only when the
// line-by-line scan commits nothing. It sweeps the whole document text for
// question-mark-terminated clauses and emits each unique survivor as a
// free-text question. No option harvesting is attempted here.
func (e *Extractor) fallbackScan(content string) []QuestionRecord {
	matches := fallbackClausePattern.FindAllString(content, -1)
	if len(matches) > e.cfg.FallbackMaxMatches {
		matches = matches[:e.cfg.FallbackMaxMatches]
	}

	seen := make(map[string]struct{})
	var questions []QuestionRecord
	for _, clause := range matches {
		text := NormalizeLine(clause)
		if len(text) <= e.cfg.FallbackMinLen || len(text) >= e.cfg.FallbackMaxLen {
			continue
		}

		key := dedupKey(text, e.cfg.DedupPrefixLen)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}

		questions = append(questions, QuestionRecord{
			ID:     fmt.Sprintf("q%d", len(questions)+1),
			Text:   text,
			Answer: FreeText{Placeholder: DefaultPlaceholder},
		})
	}

	return questions
}
