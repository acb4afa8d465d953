// Package progress keeps the per-chapter attempt statistics on top of a
// small key/value preference store.
package progress

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/hodordarius5/Proiect-2-MIP-ChimieQuiz/internal/domain"
)

// KeyPrefix is prepended to the chapter name to form the preference key.
const KeyPrefix = "progress_"

// TimeLayout is the minute-precision format of Progress.LastAttemptAt.
const TimeLayout = "2006-01-02 15:04"

// PreferenceStore is a string key/value store. Get reports ok=false for a
// missing key; errors are reserved for I/O failures.
type PreferenceStore interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
}

// Repository reads and merges chapter progress records. Writes are last
// writer wins per chapter key.
type Repository struct {
	store PreferenceStore
}

func NewRepository(store PreferenceStore) *Repository {
	return &Repository{store: store}
}

// Key returns the preference key for chapter.
func Key(chapter string) string {
	return KeyPrefix + chapter
}

// Load returns the stored record for chapter, or the zero record when the
// value is missing or unparsable.
func (r *Repository) Load(ctx context.Context, chapter string) (domain.Progress, error) {
	raw, ok, err := r.store.Get(ctx, Key(chapter))
	if err != nil {
		return domain.Progress{}, fmt.Errorf("%w: load progress %q: %v", domain.ErrDataUnavailable, chapter, err)
	}
	if !ok {
		return domain.Progress{}, nil
	}
	return Decode(raw), nil
}

// RecordAttempt merges a finished session into the chapter record and
// persists it with a single write.
func (r *Repository) RecordAttempt(ctx context.Context, chapter string, percent int, now time.Time) (domain.Progress, error) {
	p, err := r.Load(ctx, chapter)
	if err != nil {
		return domain.Progress{}, err
	}
	p = Merge(p, percent, now)

	data, err := json.Marshal(p)
	if err != nil {
		return domain.Progress{}, fmt.Errorf("encode progress: %w", err)
	}
	if err := r.store.Set(ctx, Key(chapter), string(data)); err != nil {
		return domain.Progress{}, fmt.Errorf("%w: save progress %q: %v", domain.ErrDataUnavailable, chapter, err)
	}
	return p, nil
}

// Merge applies one attempt to p.
func Merge(p domain.Progress, percent int, now time.Time) domain.Progress {
	percent = clampPercent(percent)
	if !inRange(p) {
		p = domain.Progress{}
	}
	p.Attempts++
	p.LastPercent = percent
	if percent > p.BestPercent {
		p.BestPercent = percent
	}
	p.LastAttemptAt = now.Format(TimeLayout)
	return p
}

// Decode parses a stored record. Unparsable records and records whose
// counters are out of range decode as the zero record.
func Decode(raw string) domain.Progress {
	if strings.TrimSpace(raw) == "" {
		return domain.Progress{}
	}
	var p domain.Progress
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		return domain.Progress{}
	}
	if !inRange(p) {
		return domain.Progress{}
	}
	return p
}

func inRange(p domain.Progress) bool {
	return p.Attempts >= 0 &&
		clampPercent(p.BestPercent) == p.BestPercent &&
		clampPercent(p.LastPercent) == p.LastPercent
}

func clampPercent(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
