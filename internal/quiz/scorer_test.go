package quiz

import (
	"reflect"
	"testing"

	"github.com/hodordarius5/Proiect-2-MIP-ChimieQuiz/internal/domain"
)

func TestScoreMixedAnswers(t *testing.T) {
	res := Score(sampleCatalog(), []domain.Answer{
		{QuestionID: 1, SelectedIndex: 2},
		{QuestionID: 2, SelectedIndex: 0},
		{QuestionID: 3, SelectedIndex: 2},
	})

	if res.Total != 3 || res.Correct != 2 || res.Wrong != 1 || res.Percent != 67 {
		t.Fatalf("unexpected result %+v", res)
	}
	if len(res.WrongItems) != 1 {
		t.Fatalf("expected one wrong item, got %+v", res.WrongItems)
	}
	item := res.WrongItems[0]
	if item.QuestionID != 2 || item.QuestionText != "Acid question" {
		t.Fatalf("unexpected wrong item %+v", item)
	}
	if item.YourAnswer != "A) HCl" || item.CorrectAnswer != "C) H2SO4" {
		t.Fatalf("unexpected answer labels %q / %q", item.YourAnswer, item.CorrectAnswer)
	}
	if !reflect.DeepEqual(res.WrongIDs(), []int{2}) {
		t.Fatalf("unexpected wrong ids %v", res.WrongIDs())
	}
}

func TestScoreSkipsUnmatchedButKeepsTotal(t *testing.T) {
	res := Score(sampleCatalog(), []domain.Answer{
		{QuestionID: 1, SelectedIndex: 2},
		{QuestionID: 99, SelectedIndex: 0},
		{QuestionID: 7, SelectedIndex: 0}, // invalid record
		{QuestionID: 4, SelectedIndex: 9}, // no such option
	})

	if res.Total != 4 || res.Correct != 1 || res.Wrong != 3 || res.Percent != 25 {
		t.Fatalf("unexpected result %+v", res)
	}
	if len(res.WrongItems) != 0 {
		t.Fatalf("expected skipped answers to produce no wrong items, got %+v", res.WrongItems)
	}
}

func TestScoreEmptyAnswers(t *testing.T) {
	res := Score(sampleCatalog(), nil)
	if res.Total != 0 || res.Percent != 0 || res.WrongItems == nil {
		t.Fatalf("unexpected empty result %+v", res)
	}
}

func TestScoreIsIdempotent(t *testing.T) {
	raw := sampleCatalog()
	answers := []domain.Answer{{QuestionID: 5, SelectedIndex: 1}, {QuestionID: 6, SelectedIndex: 0}}

	if first, second := Score(raw, answers), Score(raw, answers); !reflect.DeepEqual(first, second) {
		t.Fatalf("scores differ: %+v vs %+v", first, second)
	}
}

func TestPercent(t *testing.T) {
	tests := []struct {
		correct, total, want int
	}{
		{0, 0, 0},
		{0, 3, 0},
		{1, 3, 33},
		{2, 3, 67},
		{1, 8, 13},
		{5, 6, 83},
		{1, 200, 1},
		{1, 201, 0},
		{3, 3, 100},
		{5, 3, 100},
		{-1, 3, 0},
	}
	for _, tt := range tests {
		if got := Percent(tt.correct, tt.total); got != tt.want {
			t.Fatalf("Percent(%d, %d) = %d, want %d", tt.correct, tt.total, got, tt.want)
		}
	}
}

func TestRetryFlowSelectsWrongQuestions(t *testing.T) {
	raw := sampleCatalog()
	res := Score(raw, []domain.Answer{
		{QuestionID: 1, SelectedIndex: 2},
		{QuestionID: 2, SelectedIndex: 0},
		{QuestionID: 3, SelectedIndex: 2},
	})

	filter := ParseIDs(EncodeIDs(res.WrongIDs()))
	if !reflect.DeepEqual(filter, []int{2}) {
		t.Fatalf("unexpected retry filter %v", filter)
	}
	retry := Select(raw, "Acids", filter)
	if len(retry) != 1 || retry[0].ID != 2 {
		t.Fatalf("expected retry of question 2, got %v", ids(retry))
	}
}
