package schema

import (
	"regexp"
	"strings"
)

// questionRule is one member of the question-detection cascade. Rules are
// evaluated in slice order and the first rule that extracts a non-empty
// candidate wins.
type questionRule struct {
	name    string
	extract func(line string) (string, bool)
}

var (
	questionClausePattern  = regexp.MustCompile(`(.+?\?)`)
	numberedPrefixPattern  = regexp.MustCompile(`^(\d+)[.)]\s*(.+?)(\?|$)`)
	sentenceStarterPattern = regexp.MustCompile(`^(?i)(do you|how|what|when|where|why|have you|are you|did you|would you|can you)`)
	imperativeLeadPattern  = regexp.MustCompile(`^(?i)(please|rate|select|choose|indicate|describe|list|specify)\b`)
)

// questionRules is the detection cascade in precedence order: a question-mark
// clause beats a numbered prefix, which beats a sentence-starter keyword.
var questionRules = []questionRule{
	{
		name: "question_mark_clause",
		extract: func(line string) (string, bool) {
			m := questionClausePattern.FindStringSubmatch(line)
			if m == nil {
				return "", false
			}
			return strings.TrimSpace(m[1]), true
		},
	},
	{
		name: "numbered_prefix",
		extract: func(line string) (string, bool) {
			m := numberedPrefixPattern.FindStringSubmatch(line)
			if m == nil {
				return "", false
			}
			text := strings.TrimSpace(m[2])
			if strings.Contains(text, "?") || len(text) > 10 {
				return text, true
			}
			return "", false
		},
	},
	{
		name: "sentence_starter",
		extract: func(line string) (string, bool) {
			if sentenceStarterPattern.MatchString(line) && strings.Contains(line, "?") {
				return line, true
			}
			return "", false
		},
	},
	{
		// Imperative prompts ("Please describe...", "Rate your...") are
		// questions even though nothing in the line carries a question mark.
		name: "imperative_lead",
		extract: func(line string) (string, bool) {
			if imperativeLeadPattern.MatchString(line) {
				return line, true
			}
			return "", false
		},
	},
}

// detectQuestion runs the cascade over a normalized line and returns the
// extracted question text if any rule fires.
func detectQuestion(line string) (string, bool) {
	for _, rule := range questionRules {
		if text, ok := rule.extract(line); ok && text != "" {
			return text, true
		}
	}
	return "", false
}

// optionVocabulary is the curated set of Likert/frequency/quality terms that
// identify an answer option even without list markup.
var optionVocabulary = []string{
	"Yes", "No", "Always", "Never", "Sometimes", "Often", "Rarely",
	"Daily", "Weekly", "Monthly",
	"Excellent", "Good", "Fair", "Poor", "Very Poor",
	"Strongly Agree", "Agree", "Neutral", "Disagree", "Strongly Disagree",
}

var optionVocabularySet = func() map[string]struct{} {
	set := make(map[string]struct{}, len(optionVocabulary))
	for _, term := range optionVocabulary {
		set[strings.ToLower(term)] = struct{}{}
	}
	return set
}()

var (
	letteredItemPattern = regexp.MustCompile(`^[a-zA-Z][.)]\s*(.+)$`)
	numberedItemPattern = regexp.MustCompile(`^\d+[.)]\s*(.+)$`)
	bulletItemPattern   = regexp.MustCompile(`^[•○●□■]\s*(.+)$`)
)

// optionRule is one member of the option-collection cascade, evaluated in
// slice order like questionRules.
type optionRule struct {
	name    string
	extract func(line string, cfg ExtractConfig) (string, bool)
}

var optionRules = []optionRule{
	{
		name: "lettered_item",
		extract: func(line string, _ ExtractConfig) (string, bool) {
			return matchListItem(letteredItemPattern, line)
		},
	},
	{
		name: "numbered_item",
		extract: func(line string, _ ExtractConfig) (string, bool) {
			return matchListItem(numberedItemPattern, line)
		},
	},
	{
		name: "bullet_item",
		extract: func(line string, _ ExtractConfig) (string, bool) {
			return matchListItem(bulletItemPattern, line)
		},
	},
	{
		name: "vocabulary_exact",
		extract: func(line string, _ ExtractConfig) (string, bool) {
			if _, ok := optionVocabularySet[strings.ToLower(line)]; ok {
				return line, true
			}
			return "", false
		},
	},
	{
		name: "vocabulary_substring",
		extract: func(line string, cfg ExtractConfig) (string, bool) {
			if len(line) >= cfg.ShortLineLen {
				return "", false
			}
			lower := strings.ToLower(line)
			for term := range optionVocabularySet {
				if strings.Contains(lower, term) {
					return line, true
				}
			}
			return "", false
		},
	},
}

func matchListItem(pattern *regexp.Regexp, line string) (string, bool) {
	m := pattern.FindStringSubmatch(line)
	if m == nil {
		return "", false
	}
	return strings.TrimSpace(m[1]), true
}

// collectOption runs the option cascade over a normalized line. The matched
// text is length-bounded; out-of-bound candidates are rejected outright.
func collectOption(line string, cfg ExtractConfig) (string, bool) {
	for _, rule := range optionRules {
		text, ok := rule.extract(line, cfg)
		if !ok {
			continue
		}
		text = NormalizeLine(text)
		if len(text) < cfg.MinOptionLen || len(text) > cfg.MaxOptionLen {
			return "", false
		}
		return text, true
	}
	return "", false
}
