package cli

import (
	"testing"

	"github.com/blockday/blockday/internal/constants"
	"github.com/blockday/blockday/internal/models"
	"github.com/blockday/blockday/internal/utils"
)

func TestParseBlockSpec(t *testing.T) {
	tests := []struct {
		name    string
		spec    string
		want    models.TimeBlock
		wantErr bool
	}{
		{
			name: "basic block",
			spec: "09:00-10:30 Deep Work",
			want: models.TimeBlock{Identity: "Deep Work", Start: "09:00", End: "10:30"},
		},
		{
			name: "optional block",
			spec: "07:00-07:30* Stretching",
			want: models.TimeBlock{Identity: "Stretching", Start: "07:00", End: "07:30", Optional: true},
		},
		{
			name: "multi word identity",
			spec: "18:00-19:00 Evening Gym Session",
			want: models.TimeBlock{Identity: "Evening Gym Session", Start: "18:00", End: "19:00"},
		},
		{
			name: "extra whitespace",
			spec: "  09:00-10:00   Reading  ",
			want: models.TimeBlock{Identity: "Reading", Start: "09:00", End: "10:00"},
		},
		{
			name:    "missing identity",
			spec:    "09:00-10:00",
			wantErr: true,
		},
		{
			name:    "missing time range",
			spec:    "Deep Work",
			wantErr: true,
		},
		{
			name:    "empty",
			spec:    "",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseBlockSpec(tt.spec)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseBlockSpec(%q) expected error, got %+v", tt.spec, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseBlockSpec(%q) unexpected error: %v", tt.spec, err)
			}
			if got != tt.want {
				t.Errorf("ParseBlockSpec(%q) = %+v, want %+v", tt.spec, got, tt.want)
			}
		})
	}
}

func TestNowUsesConfiguredTimezone(t *testing.T) {
	// Kiritimati sits at UTC+14 year-round, so the offset is stable.
	ctx := &Context{Timezone: "Pacific/Kiritimati"}
	got, err := ctx.Now()
	if err != nil {
		t.Fatalf("Now() unexpected error: %v", err)
	}
	if _, offset := got.Zone(); offset != 14*3600 {
		t.Errorf("Now() zone offset = %d, want %d", offset, 14*3600)
	}

	// The date handed to the analyzers must match the commit store's day
	// boundary, not the system clock's.
	commitDay, err := utils.GetTodayInTimezone(ctx.Timezone)
	if err != nil {
		t.Fatalf("GetTodayInTimezone: %v", err)
	}
	if got.Format(constants.DateFormat) != commitDay {
		t.Errorf("Now() date = %s, commit store day = %s", got.Format(constants.DateFormat), commitDay)
	}

	if _, err := (&Context{Timezone: "Not/AZone"}).Now(); err == nil {
		t.Error("unknown timezone accepted")
	}
}

func TestResolveDate(t *testing.T) {
	ctx := &Context{Timezone: "UTC"}

	if _, err := ctx.ResolveDate("2025-01-15"); err != nil {
		t.Errorf("explicit date rejected: %v", err)
	}
	if _, err := ctx.ResolveDate(""); err != nil {
		t.Errorf("empty arg rejected: %v", err)
	}
	for _, word := range []string{"today", "yesterday", "tomorrow"} {
		if _, err := ctx.ResolveDate(word); err != nil {
			t.Errorf("ResolveDate(%q) unexpected error: %v", word, err)
		}
	}

	for _, bad := range []string{"01-15-2025", "2025/01/15", "someday"} {
		if _, err := ctx.ResolveDate(bad); err == nil {
			t.Errorf("ResolveDate(%q) expected error", bad)
		}
	}
}
