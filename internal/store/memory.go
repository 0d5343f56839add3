package store

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"

	"cookieTriviaAPI/internal/leaderboard"
	"cookieTriviaAPI/internal/trivia"
)

// MemoryStore keeps both collections in process memory. It backs the tests
// and the STORE_DRIVER=memory dev mode, where state is lost on restart.
type MemoryStore struct {
	mu        sync.RWMutex
	questions []trivia.Question
	earners   []leaderboard.TopEarner
	r         *rand.Rand
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{r: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

func (s *MemoryStore) SampleQuestion(_ context.Context) (trivia.Question, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.questions) == 0 {
		return trivia.Question{}, ErrNoQuestions
	}
	return s.questions[s.r.Intn(len(s.questions))], nil
}

func (s *MemoryStore) GetQuestion(_ context.Context, id string) (trivia.Question, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, q := range s.questions {
		if q.ID == id {
			return q, nil
		}
	}
	return trivia.Question{}, ErrQuestionNotFound
}

func (s *MemoryStore) InsertQuestion(_ context.Context, q trivia.Question) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if q.ID == "" {
		q.ID = uuid.New().String()
	}
	s.questions = append(s.questions, q)
	return q.ID, nil
}

func (s *MemoryStore) ListTopEarners(_ context.Context) ([]leaderboard.TopEarner, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]leaderboard.TopEarner, len(s.earners))
	copy(out, s.earners)
	return out, nil
}

func (s *MemoryStore) InsertTopEarner(_ context.Context, entry leaderboard.TopEarner) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.earners = append(s.earners, entry)
	return nil
}

func (s *MemoryStore) UpdateTopEarner(_ context.Context, match, updated leaderboard.TopEarner) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, e := range s.earners {
		if e == match {
			s.earners[i] = updated
			return nil
		}
	}
	return ErrEntryNotFound
}

func (s *MemoryStore) DeleteTopEarner(_ context.Context, match leaderboard.TopEarner) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, e := range s.earners {
		if e == match {
			s.earners = append(s.earners[:i], s.earners[i+1:]...)
			return nil
		}
	}
	return ErrEntryNotFound
}

func (s *MemoryStore) Ping(_ context.Context) error { return nil }

func (s *MemoryStore) Close() {}
