package quiz

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/hodordarius5/Proiect-2-MIP-ChimieQuiz/internal/domain"
)

// EncodeAnswers renders answers as the JSON payload passed from a finished
// session to the results screen.
func EncodeAnswers(answers []domain.Answer) (string, error) {
	if answers == nil {
		answers = []domain.Answer{}
	}
	data, err := json.Marshal(answers)
	if err != nil {
		return "", fmt.Errorf("encode answers: %w", err)
	}
	return string(data), nil
}

// DecodeAnswers parses a payload produced by EncodeAnswers. A blank payload
// is an empty answer list.
func DecodeAnswers(payload string) ([]domain.Answer, error) {
	if strings.TrimSpace(payload) == "" {
		return []domain.Answer{}, nil
	}
	var answers []domain.Answer
	if err := json.Unmarshal([]byte(payload), &answers); err != nil {
		return nil, fmt.Errorf("%w: answers: %v", domain.ErrInvalidPayload, err)
	}
	if answers == nil {
		answers = []domain.Answer{}
	}
	return answers, nil
}

// EncodeIDs joins question ids with commas for the retry handoff.
func EncodeIDs(ids []int) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.Itoa(id)
	}
	return strings.Join(parts, ",")
}

// ParseIDs reads a comma-separated id list. Blank or non-numeric entries
// and repeated ids are dropped.
func ParseIDs(raw string) []int {
	seen := make(map[int]struct{})
	ids := make([]int, 0)
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.Atoi(part)
		if err != nil {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	return ids
}
