package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"cookieTriviaAPI/internal/leaderboard"
	"cookieTriviaAPI/internal/trivia"
)

const pgSchema = `
CREATE TABLE IF NOT EXISTS trivia_questions (
	id UUID PRIMARY KEY,
	question TEXT NOT NULL,
	answer TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS top_earners (
	id UUID PRIMARY KEY,
	user_name TEXT NOT NULL,
	user_date BIGINT NOT NULL,
	cookie_count INTEGER NOT NULL CHECK (cookie_count >= 0)
);
`

// PostgresStore is the default Store backend, one table per collection.
type PostgresStore struct {
	db *pgxpool.Pool
}

func NewPostgresStore(ctx context.Context, dbURL string) (*PostgresStore, error) {
	poolConfig, err := pgxpool.ParseConfig(dbURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database URL: %w", err)
	}

	poolConfig.MaxConns = 25
	poolConfig.MinConns = 5
	poolConfig.MaxConnLifetime = time.Hour
	poolConfig.MaxConnIdleTime = 30 * time.Minute
	poolConfig.HealthCheckPeriod = time.Minute

	db, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	if err := db.Ping(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if _, err := db.Exec(ctx, pgSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	return &PostgresStore{db: db}, nil
}

func (s *PostgresStore) SampleQuestion(ctx context.Context) (trivia.Question, error) {
	query := `
	SELECT id, question, answer
	FROM trivia_questions
	ORDER BY random()
	LIMIT 1
	`

	q := trivia.Question{}
	err := s.db.QueryRow(ctx, query).Scan(&q.ID, &q.Question, &q.Answer)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return trivia.Question{}, ErrNoQuestions
		}
		return trivia.Question{}, fmt.Errorf("failed to sample question: %w", err)
	}

	return q, nil
}

func (s *PostgresStore) GetQuestion(ctx context.Context, id string) (trivia.Question, error) {
	if _, err := uuid.Parse(id); err != nil {
		return trivia.Question{}, ErrQuestionNotFound
	}

	query := `
	SELECT id, question, answer
	FROM trivia_questions
	WHERE id = $1
	`

	q := trivia.Question{}
	err := s.db.QueryRow(ctx, query, id).Scan(&q.ID, &q.Question, &q.Answer)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return trivia.Question{}, ErrQuestionNotFound
		}
		return trivia.Question{}, fmt.Errorf("failed to get question: %w", err)
	}

	return q, nil
}

func (s *PostgresStore) InsertQuestion(ctx context.Context, q trivia.Question) (string, error) {
	if q.ID == "" {
		q.ID = uuid.New().String()
	}

	query := `
	INSERT INTO trivia_questions (id, question, answer)
	VALUES ($1, $2, $3)
	`

	if _, err := s.db.Exec(ctx, query, q.ID, q.Question, q.Answer); err != nil {
		return "", fmt.Errorf("failed to insert question: %w", err)
	}

	return q.ID, nil
}

func (s *PostgresStore) ListTopEarners(ctx context.Context) ([]leaderboard.TopEarner, error) {
	// No ORDER BY on purpose, callers get the board as stored.
	query := `
	SELECT user_name, user_date, cookie_count
	FROM top_earners
	`

	rows, err := s.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list top earners: %w", err)
	}
	defer rows.Close()

	earners := []leaderboard.TopEarner{}
	for rows.Next() {
		e := leaderboard.TopEarner{}
		if err := rows.Scan(&e.UserName, &e.UserDate, &e.CookieCount); err != nil {
			return nil, fmt.Errorf("failed to scan top earner: %w", err)
		}
		earners = append(earners, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read top earners: %w", err)
	}

	return earners, nil
}

func (s *PostgresStore) InsertTopEarner(ctx context.Context, entry leaderboard.TopEarner) error {
	query := `
	INSERT INTO top_earners (id, user_name, user_date, cookie_count)
	VALUES ($1, $2, $3, $4)
	`

	if _, err := s.db.Exec(ctx, query, uuid.New().String(), entry.UserName, entry.UserDate, entry.CookieCount); err != nil {
		return fmt.Errorf("failed to insert top earner: %w", err)
	}

	return nil
}

func (s *PostgresStore) UpdateTopEarner(ctx context.Context, match, updated leaderboard.TopEarner) error {
	// Address exactly one row matching the triple, duplicates stay untouched.
	query := `
	UPDATE top_earners
	SET user_name = $1, user_date = $2, cookie_count = $3
	WHERE id = (
		SELECT id FROM top_earners
		WHERE user_name = $4 AND user_date = $5 AND cookie_count = $6
		LIMIT 1
	)
	`

	tag, err := s.db.Exec(ctx, query,
		updated.UserName, updated.UserDate, updated.CookieCount,
		match.UserName, match.UserDate, match.CookieCount,
	)
	if err != nil {
		return fmt.Errorf("failed to update top earner: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrEntryNotFound
	}

	return nil
}

func (s *PostgresStore) DeleteTopEarner(ctx context.Context, match leaderboard.TopEarner) error {
	query := `
	DELETE FROM top_earners
	WHERE id = (
		SELECT id FROM top_earners
		WHERE user_name = $1 AND user_date = $2 AND cookie_count = $3
		LIMIT 1
	)
	`

	tag, err := s.db.Exec(ctx, query, match.UserName, match.UserDate, match.CookieCount)
	if err != nil {
		return fmt.Errorf("failed to delete top earner: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrEntryNotFound
	}

	return nil
}

func (s *PostgresStore) Ping(ctx context.Context) error {
	return s.db.Ping(ctx)
}

func (s *PostgresStore) Close() {
	s.db.Close()
}
