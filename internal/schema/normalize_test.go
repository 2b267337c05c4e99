package schema

import "testing"

func TestNormalizeLine(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "empty",
			input: "",
			want:  "",
		},
		{
			name:  "already_normalized",
			input: "Do you smoke?",
			want:  "Do you smoke?",
		},
		{
			name:  "collapses_whitespace_runs",
			input: "Do  you \t smoke?",
			want:  "Do you smoke?",
		},
		{
			name:  "trims_ends",
			input: "   Do you smoke?   ",
			want:  "Do you smoke?",
		},
		{
			name:  "strips_control_characters",
			input: "Do you\x00 smoke?\x07",
			want:  "Do you smoke?",
		},
		{
			name:  "strips_non_ascii",
			input: "Café intake™?",
			want:  "Caf intake?",
		},
		{
			name:  "whitespace_only",
			input: " \t\n ",
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeLine(tt.input)
			if got != tt.want {
				t.Errorf("NormalizeLine(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestNormalizeLineIdempotent(t *testing.T) {
	inputs := []string{
		"  1.   Do you smoke?  ",
		"○ Yes\tplease",
		"plain text line",
	}

	for _, input := range inputs {
		once := NormalizeLine(input)
		twice := NormalizeLine(once)
		if once != twice {
			t.Errorf("NormalizeLine not idempotent for %q: %q != %q", input, once, twice)
		}
	}
}
