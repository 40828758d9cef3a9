package utils

import (
	"testing"

	"github.com/blockday/blockday/internal/models"
)

func TestParseTimeToMinutes(t *testing.T) {
	tests := []struct {
		name    string
		timeStr string
		want    int
		wantErr bool
	}{
		{
			name:    "midnight",
			timeStr: "00:00",
			want:    0,
		},
		{
			name:    "morning",
			timeStr: "09:30",
			want:    570,
		},
		{
			name:    "end of day",
			timeStr: "23:59",
			want:    1439,
		},
		{
			name:    "invalid hour",
			timeStr: "25:00",
			wantErr: true,
		},
		{
			name:    "invalid minute",
			timeStr: "10:61",
			wantErr: true,
		},
		{
			name:    "not a time",
			timeStr: "noon",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseTimeToMinutes(tt.timeStr)
			if (err != nil) != tt.wantErr {
				t.Errorf("ParseTimeToMinutes() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("ParseTimeToMinutes() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFormatMinutes(t *testing.T) {
	tests := []struct {
		name    string
		minutes int
		want    string
	}{
		{name: "midnight", minutes: 0, want: "00:00"},
		{name: "morning", minutes: 570, want: "09:30"},
		{name: "single digit padding", minutes: 65, want: "01:05"},
		{name: "late", minutes: 1380, want: "23:00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatMinutes(tt.minutes); got != tt.want {
				t.Errorf("FormatMinutes(%d) = %q, want %q", tt.minutes, got, tt.want)
			}
		})
	}
}

func TestFormatMinutesRoundTrip(t *testing.T) {
	for m := 0; m < 24*60; m += 7 {
		got, err := ParseTimeToMinutes(FormatMinutes(m))
		if err != nil {
			t.Fatalf("round trip failed at %d: %v", m, err)
		}
		if got != m {
			t.Fatalf("round trip at %d produced %d", m, got)
		}
	}
}

func TestOverlapMinutes(t *testing.T) {
	tests := []struct {
		name                       string
		start1, end1, start2, end2 string
		want                       int
	}{
		{
			name:   "partial overlap",
			start1: "09:00", end1: "10:00",
			start2: "09:30", end2: "10:30",
			want: 30,
		},
		{
			name:   "no overlap",
			start1: "09:00", end1: "10:00",
			start2: "10:00", end2: "11:00",
			want: 0,
		},
		{
			name:   "containment",
			start1: "08:00", end1: "12:00",
			start2: "09:00", end2: "10:00",
			want: 60,
		},
		{
			name:   "identical ranges",
			start1: "09:00", end1: "10:15",
			start2: "09:00", end2: "10:15",
			want: 75,
		},
		{
			name:   "disjoint",
			start1: "06:00", end1: "07:00",
			start2: "20:00", end2: "21:00",
			want: 0,
		},
		{
			name:   "invalid time yields zero",
			start1: "junk", end1: "10:00",
			start2: "09:00", end2: "10:00",
			want: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := OverlapMinutes(tt.start1, tt.end1, tt.start2, tt.end2)
			if got != tt.want {
				t.Errorf("OverlapMinutes() = %v, want %v", got, tt.want)
			}

			// Overlap is symmetric in its two ranges.
			sym := OverlapMinutes(tt.start2, tt.end2, tt.start1, tt.end1)
			if sym != got {
				t.Errorf("OverlapMinutes() not symmetric: %v vs %v", got, sym)
			}
		})
	}
}

func TestOverlapSelfEqualsDuration(t *testing.T) {
	block := models.TimeBlock{Start: "09:00", End: "10:45"}
	overlap := OverlapMinutes(block.Start, block.End, block.Start, block.End)
	if overlap != BlockDuration(block) {
		t.Errorf("overlap(a,a) = %d, duration(a) = %d", overlap, BlockDuration(block))
	}
}

func TestGapMinutes(t *testing.T) {
	tests := []struct {
		name        string
		end1        string
		start2      string
		want        int
		wantErr     bool
	}{
		{name: "positive gap", end1: "10:00", start2: "10:30", want: 30},
		{name: "touching", end1: "10:00", start2: "10:00", want: 0},
		{name: "overlapping is negative", end1: "10:30", start2: "10:00", want: -30},
		{name: "invalid", end1: "bad", start2: "10:00", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := GapMinutes(tt.end1, tt.start2)
			if (err != nil) != tt.wantErr {
				t.Errorf("GapMinutes() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("GapMinutes() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestBlockDuration(t *testing.T) {
	tests := []struct {
		name  string
		block models.TimeBlock
		want  int
	}{
		{name: "one hour", block: models.TimeBlock{Start: "09:00", End: "10:00"}, want: 60},
		{name: "inverted yields zero", block: models.TimeBlock{Start: "10:00", End: "09:00"}, want: 0},
		{name: "invalid yields zero", block: models.TimeBlock{Start: "x", End: "10:00"}, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := BlockDuration(tt.block); got != tt.want {
				t.Errorf("BlockDuration() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestValidateTimezone(t *testing.T) {
	tests := []struct {
		name     string
		timezone string
		want     bool
	}{
		{name: "empty string is valid", timezone: "", want: true},
		{name: "Local is valid", timezone: "Local", want: true},
		{name: "UTC is valid", timezone: "UTC", want: true},
		{name: "America/New_York is valid", timezone: "America/New_York", want: true},
		{name: "garbage is invalid", timezone: "not-a-timezone", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ValidateTimezone(tt.timezone); got != tt.want {
				t.Errorf("ValidateTimezone() = %v, want %v", got, tt.want)
			}
		})
	}
}
