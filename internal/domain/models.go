package domain

import "fmt"

// Answer is one user response. Correctness is never stored here; the
// scorer recomputes it against the catalog.
type Answer struct {
	QuestionID    int `json:"questionId"`
	SelectedIndex int `json:"selectedIndex"`
}

// Progress is the persisted running statistics for a chapter. The zero
// value stands for "no attempts yet".
type Progress struct {
	Attempts      int    `json:"attempts"`
	BestPercent   int    `json:"bestPercent"`
	LastPercent   int    `json:"lastPercent"`
	LastAttemptAt string `json:"lastAttemptAt"`
}

// WrongItem describes an incorrect, matched answer for review and retry.
type WrongItem struct {
	QuestionID    int    `json:"questionId"`
	QuestionText  string `json:"questionText"`
	SelectedIndex int    `json:"selectedIndex"`
	CorrectIndex  int    `json:"correctIndex"`
	YourAnswer    string `json:"yourAnswer"`
	CorrectAnswer string `json:"correctAnswer"`
}

// Result is the reduction of a session's answers against the catalog.
type Result struct {
	Chapter    string      `json:"chapter,omitempty"`
	Total      int         `json:"total"`
	Correct    int         `json:"correct"`
	Wrong      int         `json:"wrong"`
	Percent    int         `json:"percent"`
	WrongItems []WrongItem `json:"wrongItems"`
}

// WrongIDs lists the question ids of the wrong items in result order.
func (r Result) WrongIDs() []int {
	ids := make([]int, 0, len(r.WrongItems))
	for _, item := range r.WrongItems {
		ids = append(ids, item.QuestionID)
	}
	return ids
}

// ChapterSummary is one dashboard row.
type ChapterSummary struct {
	Name          string   `json:"name"`
	QuestionCount int      `json:"questionCount"`
	Progress      Progress `json:"progress"`
}

// Subtitle renders the dashboard line for the chapter.
func (c ChapterSummary) Subtitle() string {
	p := c.Progress
	if p.Attempts == 0 {
		return fmt.Sprintf("%d questions · No attempts yet", c.QuestionCount)
	}
	return fmt.Sprintf("%d questions · Best %d%% · Attempts %d · Last %d%% (%s)",
		c.QuestionCount, p.BestPercent, p.Attempts, p.LastPercent, p.LastAttemptAt)
}

// Dashboard lists every chapter of the valid catalog.
type Dashboard struct {
	QuestionCount int              `json:"questionCount"`
	Chapters      []ChapterSummary `json:"chapters"`
}
