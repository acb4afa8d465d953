// Package quiz holds the chapter quiz engine: question selection, the
// per-attempt session tracker, scoring, and the string payloads used to
// hand sessions across screens.
package quiz

import (
	"sort"
	"strings"

	"github.com/hodordarius5/Proiect-2-MIP-ChimieQuiz/internal/domain"
)

// Catalog is a validated snapshot of the question store. Invalid records
// are dropped when the snapshot is built; when two valid records share an
// id the first one wins.
type Catalog struct {
	questions []domain.Question
	byID      map[int]domain.Question
}

// NewCatalog validates raw and keeps the usable questions in store order.
func NewCatalog(raw []domain.Question) *Catalog {
	c := &Catalog{
		questions: make([]domain.Question, 0, len(raw)),
		byID:      make(map[int]domain.Question, len(raw)),
	}
	for _, q := range raw {
		if !q.Valid() {
			continue
		}
		if _, dup := c.byID[q.ID]; dup {
			continue
		}
		c.questions = append(c.questions, q)
		c.byID[q.ID] = q
	}
	return c
}

// Len returns the number of valid questions.
func (c *Catalog) Len() int {
	return len(c.questions)
}

// Question looks up a valid question by id.
func (c *Catalog) Question(id int) (domain.Question, bool) {
	q, ok := c.byID[id]
	return q, ok
}

// Select returns the valid questions of chapter, restricted to ids when
// ids is non-empty. Catalog order is preserved. An empty result is a
// normal outcome.
func (c *Catalog) Select(chapter string, ids []int) []domain.Question {
	key := strings.TrimSpace(chapter)
	var allow map[int]struct{}
	if len(ids) > 0 {
		allow = make(map[int]struct{}, len(ids))
		for _, id := range ids {
			allow[id] = struct{}{}
		}
	}

	out := make([]domain.Question, 0)
	if key == "" {
		return out
	}
	for _, q := range c.questions {
		if q.ChapterKey() != key {
			continue
		}
		if allow != nil {
			if _, ok := allow[q.ID]; !ok {
				continue
			}
		}
		out = append(out, q)
	}
	return out
}

// Chapters groups the valid questions by trimmed chapter name, sorted by
// name. Progress is left zero for the caller to fill in.
func (c *Catalog) Chapters() []domain.ChapterSummary {
	counts := make(map[string]int)
	for _, q := range c.questions {
		counts[q.ChapterKey()]++
	}
	names := make([]string, 0, len(counts))
	for name := range counts {
		names = append(names, name)
	}
	sort.Strings(names)

	out := make([]domain.ChapterSummary, 0, len(names))
	for _, name := range names {
		out = append(out, domain.ChapterSummary{Name: name, QuestionCount: counts[name]})
	}
	return out
}

// Select filters a raw catalog; see Catalog.Select.
func Select(raw []domain.Question, chapter string, ids []int) []domain.Question {
	return NewCatalog(raw).Select(chapter, ids)
}

// Score reduces answers against a raw catalog; see Catalog.Score.
func Score(raw []domain.Question, answers []domain.Answer) domain.Result {
	return NewCatalog(raw).Score(answers)
}
