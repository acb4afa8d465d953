package app

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/hodordarius5/Proiect-2-MIP-ChimieQuiz/internal/domain"
	"github.com/hodordarius5/Proiect-2-MIP-ChimieQuiz/internal/quiz"
)

// CatalogRepository supplies the full question catalog (from cache/backing store).
type CatalogRepository interface {
	Questions(ctx context.Context) ([]domain.Question, error)
}

// SessionRepository parks in-flight session trackers between requests
// (in-memory, Redis, etc). Take removes and returns a session atomically:
// of several concurrent callers exactly one gets it, the rest see
// domain.ErrSessionNotFound.
type SessionRepository interface {
	Save(ctx context.Context, id string, session *quiz.Session) error
	Get(ctx context.Context, id string) (*quiz.Session, error)
	Take(ctx context.Context, id string) (*quiz.Session, error)
	Delete(ctx context.Context, id string) error
}

// ProgressRepository reads and merges per-chapter progress records.
type ProgressRepository interface {
	Load(ctx context.Context, chapter string) (domain.Progress, error)
	RecordAttempt(ctx context.Context, chapter string, percent int, now time.Time) (domain.Progress, error)
}

// QuizService contains the quiz use cases: dashboard, session lifecycle and
// result submission.
type QuizService struct {
	catalog  CatalogRepository
	sessions SessionRepository
	progress ProgressRepository
	now      func() time.Time
	newID    func() string
}

func NewQuizService(catalog CatalogRepository, sessions SessionRepository, progress ProgressRepository) *QuizService {
	return &QuizService{
		catalog:  catalog,
		sessions: sessions,
		progress: progress,
		now:      time.Now,
		newID:    uuid.NewString,
	}
}

// WithClock replaces the clock used for attempt timestamps (tests).
func (s *QuizService) WithClock(now func() time.Time) *QuizService {
	s.now = now
	return s
}

// QuestionView is a question as shown to the player; the correct index is
// deliberately absent.
type QuestionView struct {
	ID      int      `json:"id"`
	Text    string   `json:"text"`
	Options []string `json:"options"`
}

// SessionView describes the current step of an in-flight session.
type SessionView struct {
	SessionID     string       `json:"sessionId"`
	Chapter       string       `json:"chapter"`
	Position      int          `json:"position"`
	Total         int          `json:"total"`
	Question      QuestionView `json:"question"`
	SelectedIndex *int         `json:"selectedIndex,omitempty"`
	CanAdvance    bool         `json:"canAdvance"`
}

// Submission is the outcome of scoring a finished session.
type Submission struct {
	Result         domain.Result   `json:"result"`
	Progress       domain.Progress `json:"progress"`
	AnswersPayload string          `json:"answers"`
	RetryIDs       string          `json:"retryIds"`
	CanRetry       bool            `json:"canRetry"`
}

// Step is returned by Next: either the following question or, once the
// last question is passed, the submission.
type Step struct {
	View       *SessionView `json:"view,omitempty"`
	Submission *Submission  `json:"submission,omitempty"`
}

// Dashboard lists the chapters of the valid catalog with their progress.
func (s *QuizService) Dashboard(ctx context.Context) (domain.Dashboard, error) {
	catalog, err := s.loadCatalog(ctx)
	if err != nil {
		return domain.Dashboard{}, err
	}
	chapters := catalog.Chapters()
	for i := range chapters {
		p, err := s.progress.Load(ctx, chapters[i].Name)
		if err != nil {
			return domain.Dashboard{}, err
		}
		chapters[i].Progress = p
	}
	return domain.Dashboard{QuestionCount: catalog.Len(), Chapters: chapters}, nil
}

// Progress returns the stored record for chapter.
func (s *QuizService) Progress(ctx context.Context, chapter string) (domain.Progress, error) {
	return s.progress.Load(ctx, strings.TrimSpace(chapter))
}

// Start selects the chapter questions (optionally only ids) and opens a new
// session. domain.ErrEmptySelection is returned when nothing matches.
func (s *QuizService) Start(ctx context.Context, chapter string, ids []int) (SessionView, error) {
	catalog, err := s.loadCatalog(ctx)
	if err != nil {
		return SessionView{}, err
	}
	chapter = strings.TrimSpace(chapter)

	session := quiz.NewSession()
	if err := session.Start(chapter, catalog.Select(chapter, ids)); err != nil {
		return SessionView{}, err
	}

	id := s.newID()
	if err := s.sessions.Save(ctx, id, session); err != nil {
		return SessionView{}, err
	}
	return buildView(id, session)
}

// View returns the current step of a session.
func (s *QuizService) View(ctx context.Context, sessionID string) (SessionView, error) {
	session, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return SessionView{}, err
	}
	return buildView(sessionID, session)
}

// Select records the chosen option for the current question.
func (s *QuizService) Select(ctx context.Context, sessionID string, option int) (SessionView, error) {
	session, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return SessionView{}, err
	}
	if err := session.Select(option); err != nil {
		return SessionView{}, err
	}
	if err := s.sessions.Save(ctx, sessionID, session); err != nil {
		return SessionView{}, err
	}
	return buildView(sessionID, session)
}

// Next advances the session. Passing the last question claims the session,
// hands the answers to the scorer and records the attempt; a session is
// scored at most once.
func (s *QuizService) Next(ctx context.Context, sessionID string) (Step, error) {
	session, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return Step{}, err
	}
	completed, err := session.Advance()
	if err != nil {
		return Step{}, err
	}
	if completed {
		return s.complete(ctx, sessionID)
	}
	if err := s.sessions.Save(ctx, sessionID, session); err != nil {
		return Step{}, err
	}
	view, err := buildView(sessionID, session)
	if err != nil {
		return Step{}, err
	}
	return Step{View: &view}, nil
}

// complete claims the parked session and submits it. When scoring or the
// progress write fails the claimed session is parked again so the caller
// can retry the last step.
func (s *QuizService) complete(ctx context.Context, sessionID string) (Step, error) {
	session, err := s.sessions.Take(ctx, sessionID)
	if err != nil {
		return Step{}, err
	}
	parked := session.Snapshot()
	release := func() {
		restored, err := quiz.RestoreSession(parked)
		if err == nil {
			err = s.sessions.Save(ctx, sessionID, restored)
		}
		if err != nil {
			log.Printf("release session %s: %v", sessionID, err)
		}
	}

	completed, err := session.Advance()
	if err != nil {
		release()
		return Step{}, err
	}
	if !completed {
		// Another request changed the session after we read it.
		if err := s.sessions.Save(ctx, sessionID, session); err != nil {
			return Step{}, err
		}
		view, err := buildView(sessionID, session)
		if err != nil {
			return Step{}, err
		}
		return Step{View: &view}, nil
	}

	payload, err := quiz.EncodeAnswers(session.Answers())
	if err != nil {
		release()
		return Step{}, err
	}
	sub, err := s.SubmitPayload(ctx, session.Chapter(), payload)
	if err != nil {
		release()
		return Step{}, err
	}
	return Step{Submission: &sub}, nil
}

// Abandon discards an unfinished session. Nothing is recorded.
func (s *QuizService) Abandon(ctx context.Context, sessionID string) {
	if err := s.sessions.Delete(ctx, sessionID); err != nil {
		log.Printf("abandon session %s: %v", sessionID, err)
	}
}

// SubmitPayload decodes an encoded answer list and submits it.
func (s *QuizService) SubmitPayload(ctx context.Context, chapter, payload string) (Submission, error) {
	answers, err := quiz.DecodeAnswers(payload)
	if err != nil {
		return Submission{}, err
	}
	return s.Submit(ctx, chapter, answers)
}

// Submit scores answers against a fresh catalog snapshot and records the
// attempt for chapter.
func (s *QuizService) Submit(ctx context.Context, chapter string, answers []domain.Answer) (Submission, error) {
	catalog, err := s.loadCatalog(ctx)
	if err != nil {
		return Submission{}, err
	}
	chapter = strings.TrimSpace(chapter)

	result := catalog.Score(answers)
	result.Chapter = chapter

	p, err := s.progress.RecordAttempt(ctx, chapter, result.Percent, s.now())
	if err != nil {
		return Submission{}, err
	}
	payload, err := quiz.EncodeAnswers(answers)
	if err != nil {
		return Submission{}, err
	}
	return Submission{
		Result:         result,
		Progress:       p,
		AnswersPayload: payload,
		RetryIDs:       quiz.EncodeIDs(result.WrongIDs()),
		CanRetry:       result.Wrong > 0 && len(result.WrongItems) > 0,
	}, nil
}

func (s *QuizService) loadCatalog(ctx context.Context) (*quiz.Catalog, error) {
	raw, err := s.catalog.Questions(ctx)
	if err != nil {
		if errors.Is(err, domain.ErrDataUnavailable) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: load questions: %v", domain.ErrDataUnavailable, err)
	}
	return quiz.NewCatalog(raw), nil
}

func buildView(id string, session *quiz.Session) (SessionView, error) {
	q, err := session.Current()
	if err != nil {
		return SessionView{}, err
	}
	view := SessionView{
		SessionID: id,
		Chapter:   session.Chapter(),
		Position:  session.Position(),
		Total:     session.Len(),
		Question: QuestionView{
			ID:      q.ID,
			Text:    q.Text,
			Options: append([]string(nil), q.Options...),
		},
	}
	if idx, ok := session.Selected(); ok {
		view.SelectedIndex = &idx
		view.CanAdvance = true
	}
	return view, nil
}
