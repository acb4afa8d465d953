package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/hodordarius5/Proiect-2-MIP-ChimieQuiz/internal/domain"
	"github.com/hodordarius5/Proiect-2-MIP-ChimieQuiz/internal/quiz"
)

// SessionStore is a Redis-backed implementation of app.SessionRepository.
// Each tracker is stored as a JSON snapshot under quiz:session:{id}; the TTL
// is refreshed on every save so abandoned sessions expire on their own.
type SessionStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewSessionStore(client *redis.Client, ttl time.Duration) *SessionStore {
	return &SessionStore{client: client, ttl: ttl}
}

func (s *SessionStore) Save(ctx context.Context, id string, session *quiz.Session) error {
	data, err := json.Marshal(session.Snapshot())
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	if err := s.client.Set(ctx, s.key(id), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("%w: save session: %v", domain.ErrDataUnavailable, err)
	}
	return nil
}

func (s *SessionStore) Get(ctx context.Context, id string) (*quiz.Session, error) {
	return s.restore(id, s.client.Get(ctx, s.key(id)))
}

// Take claims the session with GETDEL; concurrent callers race on a single
// atomic command.
func (s *SessionStore) Take(ctx context.Context, id string) (*quiz.Session, error) {
	return s.restore(id, s.client.GetDel(ctx, s.key(id)))
}

func (s *SessionStore) restore(id string, cmd *redis.StringCmd) (*quiz.Session, error) {
	data, err := cmd.Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, domain.ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: load session: %v", domain.ErrDataUnavailable, err)
	}
	var snap quiz.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("%w: session %s: %v", domain.ErrInvalidPayload, id, err)
	}
	return quiz.RestoreSession(snap)
}

func (s *SessionStore) Delete(ctx context.Context, id string) error {
	if err := s.client.Del(ctx, s.key(id)).Err(); err != nil {
		return fmt.Errorf("%w: delete session: %v", domain.ErrDataUnavailable, err)
	}
	return nil
}

func (s *SessionStore) key(id string) string {
	return "quiz:session:" + id
}
