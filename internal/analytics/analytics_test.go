package analytics

import (
	"testing"
	"time"

	"github.com/blockday/blockday/internal/models"
)

var statsNow = time.Date(2025, 1, 22, 20, 0, 0, 0, time.UTC)

func day(date string, completions ...bool) models.DayCommit {
	stamp := date + "T23:00:00Z"
	c := models.DayCommit{
		Date:        date,
		Committed:   true,
		CommittedAt: date + "T07:00:00Z",
		FinalizedAt: &stamp,
	}
	for i, done := range completions {
		v := done
		c.Blocks = append(c.Blocks, models.TimeBlock{
			ID:        date + "-b" + string(rune('1'+i)),
			Identity:  "Deep Work",
			Start:     "09:00",
			End:       "10:00",
			Completed: &v,
		})
	}
	return c
}

func TestComputeStreaks(t *testing.T) {
	tests := []struct {
		name        string
		commits     []models.DayCommit
		wantCurrent int
		wantLongest int
	}{
		{
			name:        "empty history",
			commits:     nil,
			wantCurrent: 0,
			wantLongest: 0,
		},
		{
			name: "unbroken run",
			commits: []models.DayCommit{
				day("2025-01-19", true),
				day("2025-01-20", true),
				day("2025-01-21", true),
			},
			wantCurrent: 3,
			wantLongest: 3,
		},
		{
			name: "missed day resets current",
			commits: []models.DayCommit{
				day("2025-01-18", true),
				day("2025-01-19", true),
				day("2025-01-20", false),
				day("2025-01-21", true),
			},
			wantCurrent: 1,
			wantLongest: 2,
		},
		{
			name: "calendar gap breaks run",
			commits: []models.DayCommit{
				day("2025-01-15", true),
				day("2025-01-16", true),
				day("2025-01-20", true),
			},
			wantCurrent: 1,
			wantLongest: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeStreaks(tt.commits, statsNow)
			if got.Current != tt.wantCurrent || got.Longest != tt.wantLongest {
				t.Errorf("ComputeStreaks() = %+v, want current %d longest %d", got, tt.wantCurrent, tt.wantLongest)
			}
		})
	}
}

func TestStreaksIgnoreOptionalBlocks(t *testing.T) {
	c := day("2025-01-20", true)
	missed := false
	c.Blocks = append(c.Blocks, models.TimeBlock{
		ID: "opt", Identity: "Stretching", Start: "20:00", End: "20:30",
		Optional: true, Completed: &missed,
	})

	got := ComputeStreaks([]models.DayCommit{c}, statsNow)
	if got.Current != 1 {
		t.Errorf("missed optional block broke the streak: %+v", got)
	}
}

func TestComputeHeatmap(t *testing.T) {
	commits := []models.DayCommit{
		day("2025-01-20", true, true, false),
		day("2025-01-21", true),
	}

	cells := ComputeHeatmap(commits, statsNow)
	if len(cells) != 2 {
		t.Fatalf("got %d cells, want 2", len(cells))
	}
	if cells[0].Date != "2025-01-20" || cells[0].Due != 3 || cells[0].Done != 2 {
		t.Errorf("first cell = %+v", cells[0])
	}
	if want := 2.0 / 3.0; cells[0].Score != want {
		t.Errorf("score = %v, want %v", cells[0].Score, want)
	}
	if cells[1].Score != 1 {
		t.Errorf("second cell score = %v, want 1", cells[1].Score)
	}
	if cells[0].Level != HeatmapMid || cells[1].Level != HeatmapHigh {
		t.Errorf("levels = %s, %s, want mid, high", cells[0].Level, cells[1].Level)
	}
}

func TestHeatmapBucket(t *testing.T) {
	tests := []struct {
		name  string
		score float64
		want  HeatmapLevel
	}{
		{"all missed", 0, HeatmapNone},
		{"below emerging cutoff", 0.49, HeatmapLow},
		{"at emerging cutoff", 0.5, HeatmapMid},
		{"below established cutoff", 0.69, HeatmapMid},
		{"at established cutoff", 0.7, HeatmapHigh},
		{"perfect day", 1, HeatmapHigh},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := HeatmapBucket(tt.score); got != tt.want {
				t.Errorf("HeatmapBucket(%v) = %s, want %s", tt.score, got, tt.want)
			}
		})
	}
}

func TestHeatmapSkipsPendingToday(t *testing.T) {
	pending := models.DayCommit{
		Date:        "2025-01-22",
		Committed:   true,
		CommittedAt: "2025-01-22T07:00:00Z",
		Blocks: []models.TimeBlock{
			{ID: "b1", Identity: "Deep Work", Start: "21:00", End: "22:00"},
		},
	}

	if cells := ComputeHeatmap([]models.DayCommit{pending}, statsNow); len(cells) != 0 {
		t.Errorf("pending-only day produced %d cells, want 0", len(cells))
	}
}

func TestComputeAdherence(t *testing.T) {
	gym := day("2025-01-20", true)
	gym.Blocks[0].Identity = "Gym Workout"
	gym2 := day("2025-01-21", false)
	gym2.Blocks[0].Identity = "Morning Gym"
	work := day("2025-01-19", true, true)

	bars := ComputeAdherence([]models.DayCommit{gym, gym2, work}, nil, statsNow)
	if len(bars) != 2 {
		t.Fatalf("got %d bars, want 2", len(bars))
	}

	// Equal due counts, so the tie breaks alphabetically.
	if bars[0].Identity != "deep work" || bars[0].Due != 2 || bars[0].Rate != 1 {
		t.Errorf("first bar = %+v", bars[0])
	}
	if bars[1].Identity != "exercise" || bars[1].Due != 2 || bars[1].Done != 1 {
		t.Errorf("second bar = %+v", bars[1])
	}
}
