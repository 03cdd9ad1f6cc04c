package util

import (
	"reflect"
	"testing"
)

func TestNormalizeCitations(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "canonical untouched",
			in:   "Virtue is enough [[ep-12]].",
			want: "Virtue is enough [[ep-12]].",
		},
		{
			name: "single brackets upgraded",
			in:   "See [ep-12] and [ep_7].",
			want: "See [[ep-12]] and [[ep_7]].",
		},
		{
			name: "adjacent single brackets",
			in:   "Both [ep-1][ep-2] agree.",
			want: "Both [[ep-1]] [[ep-2]] agree.",
		},
		{
			name: "bold removed",
			in:   "Cited **[[ep-3]]** here.",
			want: "Cited [[ep-3]] here.",
		},
		{
			name: "markdown link kept",
			in:   "Read [the essay](https://example.org) and [notes](x).",
			want: "Read [the essay](https://example.org) and [notes](x).",
		},
		{
			name: "bracketed prose kept",
			in:   "He said [sic] twice [and more].",
			want: "He said [[sic]] twice [and more].",
		},
		{
			name: "repeats collapsed",
			in:   "Claim [[ep-1]] [[ep-1]]\t[[ep-2]] [[ep-2]].",
			want: "Claim [[ep-1]] [[ep-2]].",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeCitations(tt.in); got != tt.want {
				t.Fatalf("NormalizeCitations(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestExtractCitations(t *testing.T) {
	got := ExtractCitations("A [[ep-2]] then [[ep-1]] and [[ ep-2 ]] again [[]].")
	want := []string{"ep-2", "ep-1"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("ExtractCitations() = %v, want %v", got, want)
	}
}
