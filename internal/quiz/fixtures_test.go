package quiz

import "github.com/hodordarius5/Proiect-2-MIP-ChimieQuiz/internal/domain"

func acidQuestion(id int) domain.Question {
	return domain.Question{
		ID:           id,
		Chapter:      "Acids",
		Text:         "Acid question",
		Options:      []string{"HCl", "NaOH", "H2SO4", "NaCl", "KOH"},
		CorrectIndex: 2,
	}
}

// sampleCatalog has five valid Acids questions (ids 1-5), a Salts question,
// and two malformed records.
func sampleCatalog() []domain.Question {
	raw := []domain.Question{}
	for id := 1; id <= 5; id++ {
		raw = append(raw, acidQuestion(id))
	}
	raw = append(raw,
		domain.Question{ID: 6, Chapter: " Salts ", Text: "Table salt?", Options: []string{"NaCl", "KCl", "CaCO3", "MgSO4", "NH4Cl"}, CorrectIndex: 0},
		domain.Question{ID: 7, Chapter: "Acids", Text: "Too few options", Options: []string{"a", "b"}, CorrectIndex: 0},
		domain.Question{ID: 8, Chapter: "Acids", Text: "", Options: []string{"a", "b", "c", "d", "e"}, CorrectIndex: 1},
	)
	return raw
}
