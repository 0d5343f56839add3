package store

import (
	"context"
	"errors"

	"cookieTriviaAPI/internal/leaderboard"
	"cookieTriviaAPI/internal/trivia"
)

var (
	// ErrNoQuestions means the trivia collection is empty.
	ErrNoQuestions = errors.New("no trivia questions available")
	// ErrQuestionNotFound means no question exists for the given id.
	ErrQuestionNotFound = errors.New("trivia question not found")
	// ErrEntryNotFound means no leaderboard row matched the given triple.
	ErrEntryNotFound = errors.New("top earner entry not found")
)

// Store is the document store behind the trivia API: a questions collection
// and a top earners collection. Top earner rows are addressed by exact match
// on the full (userName, userDate, cookieCount) triple, not a key.
type Store interface {
	SampleQuestion(ctx context.Context) (trivia.Question, error)
	GetQuestion(ctx context.Context, id string) (trivia.Question, error)
	InsertQuestion(ctx context.Context, q trivia.Question) (string, error)

	ListTopEarners(ctx context.Context) ([]leaderboard.TopEarner, error)
	InsertTopEarner(ctx context.Context, entry leaderboard.TopEarner) error
	UpdateTopEarner(ctx context.Context, match, updated leaderboard.TopEarner) error
	DeleteTopEarner(ctx context.Context, match leaderboard.TopEarner) error

	Ping(ctx context.Context) error
	Close()
}
