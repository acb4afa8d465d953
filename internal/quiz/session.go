package quiz

import (
	"fmt"

	"github.com/hodordarius5/Proiect-2-MIP-ChimieQuiz/internal/domain"
)

// State is the lifecycle stage of a Session.
type State int

const (
	StateAwaitingStart State = iota
	StateInProgress
	StateCompleted
)

func (s State) String() string {
	switch s {
	case StateAwaitingStart:
		return "awaiting_start"
	case StateInProgress:
		return "in_progress"
	case StateCompleted:
		return "completed"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Session tracks one linear pass through a chapter: the ordered questions,
// the current position and the option chosen for each answered question.
// It never judges answers; that is left to the scorer.
//
// A Session is not safe for concurrent use.
type Session struct {
	chapter    string
	questions  []domain.Question
	position   int
	selections map[int]int
	state      State
}

// NewSession returns a tracker waiting for Start.
func NewSession() *Session {
	return &Session{selections: make(map[int]int)}
}

// Start (re)initializes the tracker for chapter. Any previous position and
// selections are discarded, whatever state the tracker was in.
func (s *Session) Start(chapter string, questions []domain.Question) error {
	if len(questions) == 0 {
		return domain.ErrEmptySelection
	}
	s.chapter = chapter
	s.questions = append([]domain.Question(nil), questions...)
	s.position = 0
	s.selections = make(map[int]int, len(questions))
	s.state = StateInProgress
	return nil
}

// State reports the lifecycle stage.
func (s *Session) State() State { return s.state }

// Chapter is the chapter the session was started for.
func (s *Session) Chapter() string { return s.chapter }

// Position is the zero-based index of the current question.
func (s *Session) Position() int { return s.position }

// Len is the number of questions in the session.
func (s *Session) Len() int { return len(s.questions) }

func (s *Session) IsCompleted() bool { return s.state == StateCompleted }

func (s *Session) inProgress() error {
	switch s.state {
	case StateInProgress:
		return nil
	case StateCompleted:
		return domain.ErrSessionCompleted
	default:
		return domain.ErrSessionNotStarted
	}
}

// Current returns the question at the current position.
func (s *Session) Current() (domain.Question, error) {
	if err := s.inProgress(); err != nil {
		return domain.Question{}, err
	}
	return s.questions[s.position], nil
}

// Selected returns the option chosen for the current question, if any.
func (s *Session) Selected() (int, bool) {
	if s.state != StateInProgress {
		return 0, false
	}
	idx, ok := s.selections[s.questions[s.position].ID]
	return idx, ok
}

// Select records idx for the current question, replacing an earlier choice.
func (s *Session) Select(idx int) error {
	if err := s.inProgress(); err != nil {
		return err
	}
	if !domain.ValidOption(idx) {
		return fmt.Errorf("%w: %d", domain.ErrOptionOutOfRange, idx)
	}
	s.selections[s.questions[s.position].ID] = idx
	return nil
}

// Advance moves to the next question. It reports true when the last
// question was passed and the session is completed.
func (s *Session) Advance() (bool, error) {
	if err := s.inProgress(); err != nil {
		return false, err
	}
	if _, ok := s.selections[s.questions[s.position].ID]; !ok {
		return false, domain.ErrNoSelection
	}
	if s.position < len(s.questions)-1 {
		s.position++
		return false, nil
	}
	s.state = StateCompleted
	return true, nil
}

// Answers lists the recorded selections in question order.
func (s *Session) Answers() []domain.Answer {
	out := make([]domain.Answer, 0, len(s.selections))
	for _, q := range s.questions {
		if idx, ok := s.selections[q.ID]; ok {
			out = append(out, domain.Answer{QuestionID: q.ID, SelectedIndex: idx})
		}
	}
	return out
}

// Snapshot is the serializable form of a Session, used by session stores
// that park trackers outside the process.
type Snapshot struct {
	State      State             `json:"state"`
	Chapter    string            `json:"chapter"`
	Questions  []domain.Question `json:"questions"`
	Position   int               `json:"position"`
	Selections map[int]int       `json:"selections"`
}

// Snapshot copies the tracker state.
func (s *Session) Snapshot() Snapshot {
	sel := make(map[int]int, len(s.selections))
	for id, idx := range s.selections {
		sel[id] = idx
	}
	return Snapshot{
		State:      s.state,
		Chapter:    s.chapter,
		Questions:  append([]domain.Question(nil), s.questions...),
		Position:   s.position,
		Selections: sel,
	}
}

// RestoreSession rebuilds a tracker from snap, rejecting snapshots that
// break the tracker invariants.
func RestoreSession(snap Snapshot) (*Session, error) {
	s := NewSession()
	if snap.State == StateAwaitingStart {
		return s, nil
	}
	if snap.State != StateInProgress && snap.State != StateCompleted {
		return nil, fmt.Errorf("%w: unknown state %d", domain.ErrInvalidPayload, int(snap.State))
	}
	if len(snap.Questions) == 0 || snap.Position < 0 || snap.Position >= len(snap.Questions) {
		return nil, fmt.Errorf("%w: position %d of %d", domain.ErrInvalidPayload, snap.Position, len(snap.Questions))
	}
	known := make(map[int]struct{}, len(snap.Questions))
	for _, q := range snap.Questions {
		known[q.ID] = struct{}{}
	}
	for id, idx := range snap.Selections {
		if _, ok := known[id]; !ok || !domain.ValidOption(idx) {
			return nil, fmt.Errorf("%w: selection %d=%d", domain.ErrInvalidPayload, id, idx)
		}
		s.selections[id] = idx
	}
	s.state = snap.State
	s.chapter = snap.Chapter
	s.questions = append([]domain.Question(nil), snap.Questions...)
	s.position = snap.Position
	return s, nil
}
