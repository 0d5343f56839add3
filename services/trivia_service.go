package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"cookieTriviaAPI/internal/fortune"
	"cookieTriviaAPI/internal/leaderboard"
	"cookieTriviaAPI/internal/store"
	"cookieTriviaAPI/internal/trivia"
)

// TriviaService orchestrates answer verification, leaderboard ranking and
// persistence. The ranking itself lives in internal/leaderboard and is pure;
// this layer owns the read-decide-write sequence against the store. That
// sequence is not transactional: two submissions racing on the same displaced
// row can both read the same snapshot (accepted limitation).
type TriviaService struct {
	store   store.Store
	fortune *fortune.Generator
}

func NewTriviaService(st store.Store, gen *fortune.Generator) *TriviaService {
	return &TriviaService{store: st, fortune: gen}
}

// RandomQuestion picks one question uniformly at random.
func (s *TriviaService) RandomQuestion(ctx context.Context) (trivia.QuestionResponse, error) {
	q, err := s.store.SampleQuestion(ctx)
	if err != nil {
		return trivia.QuestionResponse{}, fmt.Errorf("failed to sample trivia question: %w", err)
	}
	return trivia.QuestionResponse{QID: q.ID, Question: q.Question}, nil
}

// TopEarners returns the board as stored, without a sort guarantee.
func (s *TriviaService) TopEarners(ctx context.Context) ([]leaderboard.TopEarner, error) {
	earners, err := s.store.ListTopEarners(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list top earners: %w", err)
	}
	return earners, nil
}

// SubmitAnswer verifies the answer against the stored question, then runs the
// leaderboard ranking and persists whatever mutation it decided on. A wrong
// answer short-circuits before any leaderboard work. Inconsistent submissions
// surface leaderboard.ErrInconsistentSubmission for the 400 mapping.
func (s *TriviaService) SubmitAnswer(ctx context.Context, req trivia.AnswerRequest) (trivia.AnswerResponse, error) {
	q, err := s.store.GetQuestion(ctx, req.QID)
	if err != nil {
		return trivia.AnswerResponse{}, fmt.Errorf("failed to load question %q: %w", req.QID, err)
	}

	// Stored answers are canonical lowercase.
	if strings.ToLower(req.Answer) != q.Answer {
		return trivia.AnswerResponse{IsAnswerCorrect: false}, nil
	}

	snapshot, err := s.store.ListTopEarners(ctx)
	if err != nil {
		return trivia.AnswerResponse{}, fmt.Errorf("failed to load leaderboard: %w", err)
	}

	decision, err := leaderboard.Rank(snapshot, leaderboard.Submission{
		UserName:      req.UserName,
		UserDate:      req.UserDate,
		CookiesEarned: req.CookiesEarned,
	})
	if err != nil {
		return trivia.AnswerResponse{}, err
	}

	switch decision.Outcome {
	case leaderboard.OutcomeIncremented, leaderboard.OutcomeDisplaced:
		if err := s.store.UpdateTopEarner(ctx, decision.Previous, decision.Entry); err != nil {
			return trivia.AnswerResponse{}, fmt.Errorf("failed to update leaderboard: %w", err)
		}
	case leaderboard.OutcomeBootstrapped:
		if err := s.store.InsertTopEarner(ctx, decision.Entry); err != nil {
			return trivia.AnswerResponse{}, fmt.Errorf("failed to insert leaderboard entry: %w", err)
		}
	}

	return trivia.AnswerResponse{
		IsAnswerCorrect:   true,
		CookieContentType: trivia.CookieContentMessage,
		Value:             s.fortune.Message(),
		TopRank:           decision.TopRank,
	}, nil
}

// SeedQuestions inserts questions, normalizing answers to lowercase. Used at
// startup when the store is empty and a seed file is configured.
func (s *TriviaService) SeedQuestions(ctx context.Context, questions []trivia.Question) error {
	for _, q := range questions {
		q.Answer = strings.ToLower(q.Answer)
		if _, err := s.store.InsertQuestion(ctx, q); err != nil {
			return fmt.Errorf("failed to seed question %q: %w", q.Question, err)
		}
	}
	return nil
}

// HasQuestions reports whether the trivia collection holds anything yet.
func (s *TriviaService) HasQuestions(ctx context.Context) (bool, error) {
	_, err := s.store.SampleQuestion(ctx)
	if err != nil {
		if errors.Is(err, store.ErrNoQuestions) {
			return false, nil
		}
		return false, fmt.Errorf("failed to probe trivia questions: %w", err)
	}
	return true, nil
}
