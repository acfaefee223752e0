package journal

import (
	"strings"
	"time"
)

// DefaultWordsPerMinute is the reading-speed estimate used when the catalog
// supplies no per-article reading time and the caller configures nothing else.
const DefaultWordsPerMinute = 200

// Stats is a derived, read-only view of a journal.
type Stats struct {
	// Length is the number of entries.
	Length int

	// Duration is the estimated total reading time of all entries.
	Duration time.Duration
}

// ComputeStats derives the journal's length and total reading duration using
// DefaultWordsPerMinute. Pure: the journal is not mutated and the cursor is
// ignored.
func ComputeStats(j *Journal) Stats {
	return ComputeStatsWithSpeed(j, DefaultWordsPerMinute)
}

// ComputeStatsWithSpeed is ComputeStats with a configurable reading speed.
// Non-positive wpm falls back to DefaultWordsPerMinute.
func ComputeStatsWithSpeed(j *Journal, wpm int) Stats {
	if wpm <= 0 {
		wpm = DefaultWordsPerMinute
	}
	var total time.Duration
	for _, ref := range j.entries {
		total += readingDuration(ref, wpm)
	}
	return Stats{Length: j.Length(), Duration: total}
}

// readingDuration returns the catalog-supplied reading time when present,
// otherwise an estimate from the content's word count at wpm.
func readingDuration(ref ArticleRef, wpm int) time.Duration {
	if ref.ReadingTime > 0 {
		return ref.ReadingTime
	}
	words := len(strings.Fields(ref.Content))
	if words == 0 {
		return 0
	}
	return time.Duration(words) * time.Minute / time.Duration(wpm)
}
