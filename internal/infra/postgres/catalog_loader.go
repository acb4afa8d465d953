package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"github.com/hodordarius5/Proiect-2-MIP-ChimieQuiz/internal/domain"
)

// CatalogLoader loads the question catalog from the questions table.
type CatalogLoader struct {
	pool *pgxpool.Pool
}

func NewCatalogLoader(pool *pgxpool.Pool) *CatalogLoader {
	return &CatalogLoader{pool: pool}
}

// LoadQuestions returns every row ordered by id. Rows whose options column
// is not a JSON string array are skipped.
func (l *CatalogLoader) LoadQuestions(ctx context.Context) ([]domain.Question, error) {
	rows, err := l.pool.Query(ctx, `SELECT id, chapter, text, options, correct_index FROM questions ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("%w: load questions: %v", domain.ErrDataUnavailable, err)
	}
	defer rows.Close()

	var out []domain.Question
	for rows.Next() {
		var (
			q       domain.Question
			options []byte
		)
		if err := rows.Scan(&q.ID, &q.Chapter, &q.Text, &options, &q.CorrectIndex); err != nil {
			return nil, fmt.Errorf("%w: scan question: %v", domain.ErrDataUnavailable, err)
		}
		if err := json.Unmarshal(options, &q.Options); err != nil {
			continue
		}
		out = append(out, q)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: load questions: %v", domain.ErrDataUnavailable, err)
	}
	return out, nil
}

// SeedQuestions upserts qs into the questions table in one batch and
// returns the number of rows written.
func SeedQuestions(ctx context.Context, pool *pgxpool.Pool, qs []domain.Question) (int, error) {
	batch := &pgx.Batch{}
	for _, q := range qs {
		options, err := json.Marshal(q.Options)
		if err != nil {
			return 0, fmt.Errorf("encode options for %d: %w", q.ID, err)
		}
		batch.Queue(`INSERT INTO questions (id, chapter, text, options, correct_index)
VALUES ($1, $2, $3, $4::jsonb, $5)
ON CONFLICT (id) DO UPDATE SET chapter=EXCLUDED.chapter, text=EXCLUDED.text, options=EXCLUDED.options, correct_index=EXCLUDED.correct_index`,
			q.ID, q.Chapter, q.Text, string(options), q.CorrectIndex)
	}

	br := pool.SendBatch(ctx, batch)
	defer br.Close()
	for i := range qs {
		if _, err := br.Exec(); err != nil {
			return i, fmt.Errorf("seed question %d: %w", qs[i].ID, err)
		}
	}
	return len(qs), nil
}
