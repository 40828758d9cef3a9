package routine

import "testing"

func TestNormalize(t *testing.T) {
	tests := []struct {
		name      string
		identity  string
		canonical []string
		want      string
	}{
		{
			name:     "synonym workout",
			identity: "Gym Workout",
			want:     "exercise",
		},
		{
			name:     "synonym training",
			identity: "Strength Training",
			want:     "exercise",
		},
		{
			name:     "synonym meditation prefix",
			identity: "Morning Meditating",
			want:     "meditation",
		},
		{
			name:     "whitespace collapsed",
			identity: "  Deep   Work  ",
			want:     "deep work",
		},
		{
			name:      "canonical name wins over synonyms",
			identity:  "Gym Workout",
			canonical: []string{"Gym Workout"},
			want:      "gym workout",
		},
		{
			name:      "canonical substring match forward",
			identity:  "Evening Piano Practice",
			canonical: []string{"Piano"},
			want:      "piano",
		},
		{
			name:      "canonical substring match reverse",
			identity:  "Piano",
			canonical: []string{"Piano Practice"},
			want:      "piano practice",
		},
		{
			name:     "unknown label passes through cleaned",
			identity: "Water The Plants",
			want:     "water the plants",
		},
		{
			name:      "blank label never adopts a canonical name",
			identity:  "   ",
			canonical: []string{"Piano"},
			want:      "",
		},
		{
			name:      "empty label",
			identity:  "",
			canonical: []string{"Piano"},
			want:      "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Normalize(tt.identity, tt.canonical); got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.identity, got, tt.want)
			}
		})
	}
}
