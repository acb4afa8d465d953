package domain

import "strings"

// OptionCount is the fixed number of options per question (A..E).
const OptionCount = 5

const optionLetters = "ABCDE"

// Question models a single multiple-choice item from the catalog.
type Question struct {
	ID           int      `json:"id"`
	Chapter      string   `json:"chapter"`
	Text         string   `json:"text"`
	Options      []string `json:"options"`
	CorrectIndex int      `json:"correctIndex"`
}

// Valid reports whether the question is structurally usable. Invalid
// questions are dropped by every consumer instead of being reported.
func (q Question) Valid() bool {
	return strings.TrimSpace(q.Chapter) != "" &&
		strings.TrimSpace(q.Text) != "" &&
		len(q.Options) == OptionCount &&
		ValidOption(q.CorrectIndex)
}

// ChapterKey is the trimmed grouping key used for chapter equality.
func (q Question) ChapterKey() string {
	return strings.TrimSpace(q.Chapter)
}

// ValidOption reports whether idx addresses one of the A..E options.
func ValidOption(idx int) bool {
	return idx >= 0 && idx < OptionCount
}

// OptionLetter maps 0..4 to A..E. Out-of-range indexes yield "?".
func OptionLetter(idx int) string {
	if !ValidOption(idx) {
		return "?"
	}
	return optionLetters[idx : idx+1]
}

// LabelOption renders an option as "C) text".
func LabelOption(idx int, text string) string {
	return OptionLetter(idx) + ") " + text
}
