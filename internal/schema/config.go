package schema

// ExtractConfig configures the extraction engine's heuristics. All lengths
// are in characters of the normalized line.
type ExtractConfig struct {
	MinLineLen         int // lines shorter than this are noise and skipped
	LongLineLen        int // lines longer than this end option collection
	MinOptionLen       int // shortest accepted option text
	MaxOptionLen       int // longest accepted option text
	ShortLineLen       int // maximum length for the vocabulary-substring option rule
	DedupPrefixLen     int // prefix of the lowercased question text used as dedup key
	FallbackMinLen     int // exclusive lower bound for fallback clause length
	FallbackMaxLen     int // exclusive upper bound for fallback clause length
	FallbackMaxMatches int // cap on clauses considered by the fallback scan
}

// DefaultExtractConfig returns the default extraction configuration.
func DefaultExtractConfig() ExtractConfig {
	return ExtractConfig{
		MinLineLen:         5,
		LongLineLen:        100,
		MinOptionLen:       2,
		MaxOptionLen:       99,
		ShortLineLen:       50,
		DedupPrefixLen:     50,
		FallbackMinLen:     10,
		FallbackMaxLen:     300,
		FallbackMaxMatches: 20,
	}
}
