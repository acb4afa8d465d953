package quiz

import "github.com/hodordarius5/Proiect-2-MIP-ChimieQuiz/internal/domain"

// Score computes correctness for every answer against the catalog.
//
// Total is the number of answers. Answers whose question is missing from
// the valid catalog, or whose selected index does not address an option,
// count towards Total but are neither correct nor listed as wrong items.
// Wrong is Total minus Correct.
func (c *Catalog) Score(answers []domain.Answer) domain.Result {
	res := domain.Result{
		Total:      len(answers),
		WrongItems: make([]domain.WrongItem, 0),
	}

	for _, a := range answers {
		q, ok := c.byID[a.QuestionID]
		if !ok || !domain.ValidOption(a.SelectedIndex) {
			continue
		}
		if a.SelectedIndex == q.CorrectIndex {
			res.Correct++
			continue
		}
		res.WrongItems = append(res.WrongItems, domain.WrongItem{
			QuestionID:    q.ID,
			QuestionText:  q.Text,
			SelectedIndex: a.SelectedIndex,
			CorrectIndex:  q.CorrectIndex,
			YourAnswer:    domain.LabelOption(a.SelectedIndex, q.Options[a.SelectedIndex]),
			CorrectAnswer: domain.LabelOption(q.CorrectIndex, q.Options[q.CorrectIndex]),
		})
	}

	res.Wrong = res.Total - res.Correct
	res.Percent = Percent(res.Correct, res.Total)
	return res
}

// Percent returns correct/total as a whole percentage, rounding halves up
// (12.5 -> 13). It returns 0 when total is not positive.
func Percent(correct, total int) int {
	if total <= 0 {
		return 0
	}
	if correct < 0 {
		correct = 0
	}
	if correct > total {
		correct = total
	}
	return (correct*200 + total) / (2 * total)
}
