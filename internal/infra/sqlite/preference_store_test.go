package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/hodordarius5/Proiect-2-MIP-ChimieQuiz/internal/progress"
)

func TestPreferenceStorePersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data", "quiz.db")
	ctx := context.Background()

	store, err := Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if _, ok, err := store.Get(ctx, "progress_Acids"); err != nil || ok {
		t.Fatalf("expected missing key, ok=%v err=%v", ok, err)
	}

	repo := progress.NewRepository(store)
	now := time.Date(2026, 10, 19, 18, 45, 0, 0, time.UTC)
	if _, err := repo.RecordAttempt(ctx, "Acids", 60, now); err != nil {
		t.Fatalf("record: %v", err)
	}
	if _, err := repo.RecordAttempt(ctx, "Acids", 40, now); err != nil {
		t.Fatalf("record: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	reopened, err := Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer reopened.Close()

	p, err := progress.NewRepository(reopened).Load(ctx, "Acids")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if p.Attempts != 2 || p.BestPercent != 60 || p.LastPercent != 40 || p.LastAttemptAt != "2026-10-19 18:45" {
		t.Fatalf("unexpected progress %+v", p)
	}
}
