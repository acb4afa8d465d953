package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/hodordarius5/Proiect-2-MIP-ChimieQuiz/internal/domain"
)

func TestCatalogRepositoryCaches(t *testing.T) {
	loader := &countingLoader{CatalogLoader: NewStaticCatalogLoader(sampleQuestions())}
	repo := NewCatalogRepository(loader, time.Minute)

	qs, err := repo.Questions(context.Background())
	if err != nil {
		t.Fatalf("questions: %v", err)
	}
	if len(qs) != 2 {
		t.Fatalf("expected 2 questions, got %d", len(qs))
	}
	if loader.calls != 1 {
		t.Fatalf("expected loader once, got %d", loader.calls)
	}

	if _, err := repo.Questions(context.Background()); err != nil {
		t.Fatalf("questions 2: %v", err)
	}
	if loader.calls != 1 {
		t.Fatalf("expected cache hit, loader calls %d", loader.calls)
	}
}

func TestCatalogRepositoryReloadsAfterExpiry(t *testing.T) {
	loader := &countingLoader{CatalogLoader: NewStaticCatalogLoader(sampleQuestions())}
	repo := NewCatalogRepository(loader, time.Minute)
	now := time.Date(2026, 10, 19, 10, 0, 0, 0, time.UTC)
	repo.clock = func() time.Time { return now }

	_, _ = repo.Questions(context.Background())
	now = now.Add(2 * time.Minute)
	_, _ = repo.Questions(context.Background())
	if loader.calls != 2 {
		t.Fatalf("expected reload after ttl, loader calls %d", loader.calls)
	}
}

func TestCatalogRepositoryDoesNotCacheErrors(t *testing.T) {
	loader := &countingLoader{err: errors.New("boom")}
	repo := NewCatalogRepository(loader, time.Minute)

	if _, err := repo.Questions(context.Background()); err == nil {
		t.Fatalf("expected error")
	}
	loader.err = nil
	loader.CatalogLoader = NewStaticCatalogLoader(sampleQuestions())
	if _, err := repo.Questions(context.Background()); err != nil {
		t.Fatalf("expected recovery, got %v", err)
	}
	if loader.calls != 2 {
		t.Fatalf("expected 2 loader calls, got %d", loader.calls)
	}
}

type countingLoader struct {
	CatalogLoader
	calls int
	err   error
}

func (l *countingLoader) LoadQuestions(ctx context.Context) ([]domain.Question, error) {
	l.calls++
	if l.err != nil {
		return nil, l.err
	}
	return l.CatalogLoader.LoadQuestions(ctx)
}

func sampleQuestions() []domain.Question {
	return []domain.Question{
		{
			ID:           1,
			Chapter:      "Acids",
			Text:         "Which acid is found in the stomach?",
			Options:      []string{"HCl", "HNO3", "H2SO4", "H3PO4", "CH3COOH"},
			CorrectIndex: 0,
		},
		{
			ID:           2,
			Chapter:      "Salts",
			Text:         "Table salt is",
			Options:      []string{"KCl", "NaCl", "CaCl2", "MgCl2", "NH4Cl"},
			CorrectIndex: 1,
		},
	}
}
