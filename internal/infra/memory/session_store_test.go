package memory

import (
	"context"
	"testing"

	"github.com/hodordarius5/Proiect-2-MIP-ChimieQuiz/internal/domain"
	"github.com/hodordarius5/Proiect-2-MIP-ChimieQuiz/internal/quiz"
)

func TestSessionStoreLifecycle(t *testing.T) {
	ctx := context.Background()
	store := NewSessionStore()

	session := quiz.NewSession()
	if err := session.Start("Acids", sampleQuestions()[:1]); err != nil {
		t.Fatalf("start: %v", err)
	}
	if err := store.Save(ctx, "s1", session); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := store.Get(ctx, "s1")
	if err != nil {
		t.Fatalf("expected session present: %v", err)
	}
	if got.Chapter() != "Acids" {
		t.Fatalf("unexpected chapter %q", got.Chapter())
	}

	// Mutating a loaded tracker does not leak into the store until Save.
	if err := got.Select(2); err != nil {
		t.Fatalf("select: %v", err)
	}
	again, _ := store.Get(ctx, "s1")
	if _, ok := again.Selected(); ok {
		t.Fatalf("expected stored session unchanged before save")
	}

	_ = store.Delete(ctx, "s1")
	if _, err := store.Get(ctx, "s1"); err != domain.ErrSessionNotFound {
		t.Fatalf("expected session removed, got %v", err)
	}
	if store.Len() != 0 {
		t.Fatalf("expected empty store")
	}
}

func TestPreferenceStore(t *testing.T) {
	ctx := context.Background()
	store := NewPreferenceStore()

	if _, ok, _ := store.Get(ctx, "progress_Acids"); ok {
		t.Fatalf("expected missing key")
	}
	_ = store.Set(ctx, "progress_Acids", "v1")
	_ = store.Set(ctx, "progress_Acids", "v2")
	v, ok, err := store.Get(ctx, "progress_Acids")
	if err != nil || !ok || v != "v2" {
		t.Fatalf("expected last write, got %q ok=%v err=%v", v, ok, err)
	}
}

func TestSessionStoreTakeClaimsOnce(t *testing.T) {
	ctx := context.Background()
	store := NewSessionStore()

	session := quiz.NewSession()
	if err := session.Start("Acids", sampleQuestions()[:1]); err != nil {
		t.Fatalf("start: %v", err)
	}
	_ = store.Save(ctx, "s1", session)

	if _, err := store.Take(ctx, "s1"); err != nil {
		t.Fatalf("take: %v", err)
	}
	if _, err := store.Take(ctx, "s1"); err != domain.ErrSessionNotFound {
		t.Fatalf("expected second take to miss, got %v", err)
	}
	if store.Len() != 0 {
		t.Fatalf("expected take to remove the session")
	}
}
