// Package routine turns the raw commitment history into habit trends. Block
// labels are noisy free text, so each one is normalized to a canonical
// identity, bucketed into Mon-start ISO weeks, and classified by how the
// habit is trending. Nothing here is persisted; every run recomputes from
// the source history.
package routine

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/blockday/blockday/internal/commit"
	"github.com/blockday/blockday/internal/constants"
	"github.com/blockday/blockday/internal/models"
	"github.com/blockday/blockday/internal/utils"
)

// Analysis is the derived trend record for one canonical identity.
type Analysis struct {
	Identity          string                  `json:"identity"`
	OriginalVariants  []string                `json:"originalVariants"`
	Occurrences       int                     `json:"occurrences"`
	Frequency         float64                 `json:"frequency"` // average per active week
	LastWeekFrequency int                     `json:"lastWeekFrequency"`
	CompletionRate    float64                 `json:"completionRate"`
	Consistency       int                     `json:"consistency"` // distinct weeks seen
	Status            constants.RoutineStatus `json:"status"`
	Nudge             string                  `json:"nudge,omitempty"`
	PromotionProgress float64                 `json:"promotionProgress,omitempty"`
}

// Options tunes one analysis run.
type Options struct {
	LookbackWeeks  int       // 0 means the default window
	CanonicalNames []string  // user-declared habit names, highest priority in normalization
	Now            time.Time // evaluation instant, zero means time.Now
}

type bucket struct {
	occurrences int
	completed   int
	answered    int
	variants    map[string]bool
	weeks       map[int]int // week key -> occurrences that week
}

// Analyze classifies every canonical identity found in the history. Only
// history that can no longer be gamed is counted: blocks inside finalized
// commits, plus today's blocks whose own end-time has already passed. Drafts
// and still-pending blocks contribute nothing.
func Analyze(commits []models.DayCommit, opts Options) []Analysis {
	now := opts.Now
	if now.IsZero() {
		now = time.Now()
	}
	lookback := opts.LookbackWeeks
	if lookback <= 0 {
		lookback = constants.DefaultLookbackWeeks
	}

	today := now.Format(constants.DateFormat)
	windowStart := weekStart(now).AddDate(0, 0, -7*(lookback-1)).Format(constants.DateFormat)
	currentWeek := weekKey(now)

	buckets := make(map[string]*bucket)

	for _, dayCommit := range commits {
		if !dayCommit.Committed || dayCommit.Date < windowStart || dayCommit.Date > today {
			continue
		}

		date, err := utils.ParseDateInLocation(dayCommit.Date, now.Location())
		if err != nil {
			continue
		}
		week := weekKey(date)
		finalized := commit.IsFinalized(dayCommit, now)

		for _, block := range dayCommit.Blocks {
			if !finalized && !(dayCommit.Date == today && commit.BlockElapsed(block, now)) {
				continue
			}

			canonical := Normalize(block.Identity, opts.CanonicalNames)
			if canonical == "" {
				continue
			}

			b := buckets[canonical]
			if b == nil {
				b = &bucket{variants: make(map[string]bool), weeks: make(map[int]int)}
				buckets[canonical] = b
			}

			b.occurrences++
			b.weeks[week]++
			b.variants[block.Identity] = true
			if block.Completed != nil {
				b.answered++
				if *block.Completed {
					b.completed++
				}
			}
		}
	}

	analyses := make([]Analysis, 0, len(buckets))
	for identity, b := range buckets {
		analyses = append(analyses, classify(identity, b, currentWeek))
	}

	sort.SliceStable(analyses, func(i, j int) bool {
		pi, pj := statusRank(analyses[i].Status), statusRank(analyses[j].Status)
		if pi != pj {
			return pi < pj
		}
		if analyses[i].Occurrences != analyses[j].Occurrences {
			return analyses[i].Occurrences > analyses[j].Occurrences
		}
		return analyses[i].Identity < analyses[j].Identity
	})

	return analyses
}

func classify(identity string, b *bucket, currentWeek int) Analysis {
	consistency := len(b.weeks)
	lastWeek := b.weeks[currentWeek]

	avg := 0.0
	if consistency > 0 {
		avg = float64(b.occurrences) / float64(consistency)
	}

	// Unanswered occurrences count against the rate: adherence is measured
	// over everything due, not just what the user bothered to answer.
	completion := 0.0
	if b.occurrences > 0 {
		completion = float64(b.completed) / float64(b.occurrences)
	}

	a := Analysis{
		Identity:          identity,
		Occurrences:       b.occurrences,
		Frequency:         avg,
		LastWeekFrequency: lastWeek,
		CompletionRate:    completion,
		Consistency:       consistency,
	}
	for variant := range b.variants {
		a.OriginalVariants = append(a.OriginalVariants, variant)
	}
	sort.Strings(a.OriginalVariants)

	// The fading check looks at the average before the current week, so one
	// weak week cannot drag a long-standing habit below the established bar
	// and hide the decline.
	priorWeeks := consistency
	if lastWeek > 0 {
		priorWeeks--
	}
	priorAvg := 0.0
	if priorWeeks > 0 {
		priorAvg = float64(b.occurrences-lastWeek) / float64(priorWeeks)
	}
	freq := float64(constants.EstablishedWeeklyFreq)

	switch {
	case consistency >= constants.EstablishedMinWeeks && avg >= freq &&
		lastWeek >= constants.EstablishedWeeklyFreq && completion >= constants.EstablishedCompletionMin:
		a.Status = constants.RoutineEstablished

	case consistency >= constants.EstablishedMinWeeks && priorAvg >= freq && lastWeek < constants.EstablishedWeeklyFreq:
		a.Status = constants.RoutineFading
		a.Nudge = "commit again this week to keep the habit"

	case consistency == 1 && lastWeek >= constants.EstablishedWeeklyFreq && completion >= constants.EmergingCompletionMin:
		a.Status = constants.RoutineEmerging
		a.PromotionProgress = progress(lastWeek)

	case lastWeek == constants.AlmostFrequency:
		a.Status = constants.RoutineAlmost
		a.Nudge = "commit 1 more time this week"
		a.PromotionProgress = progress(lastWeek)

	case consistency == 1 && lastWeek >= constants.EstablishedWeeklyFreq && completion < constants.EmergingCompletionMin:
		a.Status = constants.RoutineAlmost
		need := int(math.Ceil(constants.EstablishedCompletionMin*float64(b.occurrences))) - b.completed
		a.Nudge = nudgeCompletions(need)
		a.PromotionProgress = progress(lastWeek)

	default:
		a.Status = constants.RoutineOneOff
	}

	return a
}

func progress(lastWeek int) float64 {
	p := float64(lastWeek) / float64(constants.EstablishedWeeklyFreq)
	if p > 1 {
		p = 1
	}
	return p
}

func nudgeCompletions(need int) string {
	if need < 1 {
		need = 1
	}
	return fmt.Sprintf("complete %d more to reach your completion target", need)
}

func statusRank(s constants.RoutineStatus) int {
	switch s {
	case constants.RoutineEstablished:
		return 0
	case constants.RoutineEmerging:
		return 1
	case constants.RoutineAlmost:
		return 2
	case constants.RoutineFading:
		return 3
	default:
		return 4
	}
}

// weekStart returns the Monday of t's ISO week at midnight.
func weekStart(t time.Time) time.Time {
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	offset := (int(day.Weekday()) + 6) % 7 // Monday = 0
	return day.AddDate(0, 0, -offset)
}

// weekKey collapses an ISO (year, week) pair into one comparable int.
func weekKey(t time.Time) int {
	year, week := t.ISOWeek()
	return year*100 + week
}
