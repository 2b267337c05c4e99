package schema

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestAccumulatorCommitOnOpen(t *testing.T) {
	acc := newAccumulator(DefaultExtractConfig())

	acc.open("Do you smoke?")
	acc.addOption("Yes")
	acc.addOption("No")
	acc.open("How often do you exercise?")
	questions := acc.finish()

	if len(questions) != 2 {
		t.Fatalf("expected 2 committed questions, got %d", len(questions))
	}

	first := questions[0]
	if first.Modality() != ModalityMultipleChoice {
		t.Errorf("expected first question to be multiple_choice, got %s", first.Modality())
	}
	if len(first.Options()) != 2 {
		t.Errorf("expected 2 options, got %v", first.Options())
	}

	second := questions[1]
	if second.Modality() != ModalityFreeText {
		t.Errorf("expected second question to be free_text, got %s", second.Modality())
	}
	if second.Placeholder() != DefaultPlaceholder {
		t.Errorf("expected default placeholder, got %q", second.Placeholder())
	}
}

func TestAccumulatorOptionDeduplication(t *testing.T) {
	acc := newAccumulator(DefaultExtractConfig())

	acc.open("How often do you exercise?")
	acc.addOption("Daily")
	acc.addOption("Weekly")
	acc.addOption("Daily")
	questions := acc.finish()

	if len(questions) != 1 {
		t.Fatalf("expected 1 question, got %d", len(questions))
	}

	options := questions[0].Options()
	if len(options) != 2 {
		t.Errorf("expected duplicate option to be suppressed, got %v", options)
	}
	if options[0] != "Daily" || options[1] != "Weekly" {
		t.Errorf("expected insertion order preserved, got %v", options)
	}
}

func TestAccumulatorDiscardsDuplicateQuestions(t *testing.T) {
	acc := newAccumulator(DefaultExtractConfig())

	acc.open("Do you smoke?")
	acc.open("How often do you exercise?")
	acc.open("Do you smoke?")
	acc.open("DO YOU SMOKE?")
	questions := acc.finish()

	if len(questions) != 2 {
		t.Fatalf("expected duplicates to be discarded, got %d questions", len(questions))
	}

	// Ids stay dense: the discarded duplicates must not leave gaps.
	if questions[0].ID != "q1" || questions[1].ID != "q2" {
		t.Errorf("expected dense ids q1, q2, got %s, %s", questions[0].ID, questions[1].ID)
	}
}

func TestAccumulatorDedupUsesTruncatedPrefix(t *testing.T) {
	acc := newAccumulator(DefaultExtractConfig())

	long := "Have you experienced any of the following symptoms during"
	acc.open(long + " the last month?")
	acc.open(long + " the past two weeks?")
	questions := acc.finish()

	// Both share the first 50 characters, so only one survives.
	if len(questions) != 1 {
		t.Fatalf("expected prefix-equal questions to collapse, got %d", len(questions))
	}
}

func TestAccumulatorDedupPrefixLenConfigurable(t *testing.T) {
	cfg := DefaultExtractConfig()
	cfg.DedupPrefixLen = 200
	acc := newAccumulator(cfg)

	long := "Have you experienced any of the following symptoms during"
	acc.open(long + " the last month?")
	acc.open(long + " the past two weeks?")
	questions := acc.finish()

	if len(questions) != 2 {
		t.Fatalf("expected longer prefix to keep both questions, got %d", len(questions))
	}
}

func TestAccumulatorStopCollecting(t *testing.T) {
	acc := newAccumulator(DefaultExtractConfig())

	acc.open("Do you smoke?")
	acc.addOption("Yes")
	acc.stopCollecting()

	if acc.collecting {
		t.Error("expected collecting to be cleared")
	}
	if !acc.building() {
		t.Error("expected question to remain open after collection stops")
	}

	questions := acc.finish()
	if len(questions) != 1 {
		t.Fatalf("expected 1 question, got %d", len(questions))
	}
	if len(questions[0].Options()) != 1 {
		t.Errorf("expected harvested option retained, got %v", questions[0].Options())
	}
}

func TestDedupKey(t *testing.T) {
	if got := dedupKey("Do You Smoke?", 50); got != "do you smoke?" {
		t.Errorf("dedupKey = %q, want lowercased text", got)
	}

	long := "abcdefghij"
	if got := dedupKey(long, 4); got != "abcd" {
		t.Errorf("dedupKey = %q, want 4-character prefix", got)
	}

	if got := dedupKey(long, 0); got != long {
		t.Errorf("dedupKey with zero prefix = %q, want full text", got)
	}
}

func TestDedupKeyTruncatesInRunes(t *testing.T) {
	// A bullet glyph is multi-byte; truncation at the boundary must keep the
	// whole rune rather than slicing it apart.
	text := "ab•cd"
	got := dedupKey(text, 3)
	if got != "ab•" {
		t.Errorf("dedupKey(%q, 3) = %q, want %q", text, got, "ab•")
	}
	if !utf8.ValidString(got) {
		t.Errorf("dedupKey produced invalid UTF-8: %q", got)
	}

	// Keys for texts sharing a 50-rune prefix still collide when the prefix
	// spans a glyph.
	a := strings.Repeat("x", 49) + "•tail one"
	b := strings.Repeat("x", 49) + "•tail two"
	if dedupKey(a, 50) != dedupKey(b, 50) {
		t.Errorf("expected shared 50-rune prefix to collide: %q vs %q",
			dedupKey(a, 50), dedupKey(b, 50))
	}
}
