package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"cookieTriviaAPI/internal/leaderboard"
	"cookieTriviaAPI/internal/trivia"
	"cookieTriviaAPI/middleware"
	"cookieTriviaAPI/services"
)

type TriviaHandler struct {
	triviaService *services.TriviaService
}

func NewTriviaHandler(triviaService *services.TriviaService) *TriviaHandler {
	return &TriviaHandler{
		triviaService: triviaService,
	}
}

func (h *TriviaHandler) GetTrivia(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	question, err := h.triviaService.RandomQuestion(ctx)
	if err != nil {
		log.Printf("GetTrivia Handler: %v", err)
		respondWithError(w, http.StatusInternalServerError, "Failed to retrieve trivia question.")
		return
	}

	respondWithJSON(w, http.StatusOK, question)
}

func (h *TriviaHandler) GetTopEarners(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	earners, err := h.triviaService.TopEarners(ctx)
	if err != nil {
		log.Printf("GetTopEarners Handler: %v", err)
		respondWithError(w, http.StatusInternalServerError, `Failed to retrieve list of "top earners"`)
		return
	}

	respondWithJSON(w, http.StatusOK, earners)
}

func (h *TriviaHandler) PostTrivia(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var req trivia.AnswerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("PostTrivia Handler: Failed to decode request body: %v", err)
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	res, err := h.triviaService.SubmitAnswer(ctx, req)
	if err != nil {
		if errors.Is(err, leaderboard.ErrInconsistentSubmission) {
			middleware.RecordAnswerOutcome("inconsistent")
			respondWithError(w, http.StatusBadRequest, "There seems to be something wrong with your request..")
			return
		}
		log.Printf("PostTrivia Handler: %v", err)
		middleware.RecordAnswerOutcome("error")
		respondWithError(w, http.StatusInternalServerError, "Failed verify the user's answer due to internal error")
		return
	}

	if !res.IsAnswerCorrect {
		middleware.RecordAnswerOutcome("incorrect")
		respondWithJSON(w, http.StatusOK, map[string]bool{"isAnswerCorrect": false})
		return
	}

	if res.TopRank != nil {
		middleware.RecordAnswerOutcome("ranked")
	} else {
		middleware.RecordAnswerOutcome("not_ranked")
	}
	respondWithJSON(w, http.StatusOK, res)
}

// NotFound is the catch-all for unmatched routes.
func (h *TriviaHandler) NotFound(w http.ResponseWriter, r *http.Request) {
	respondWithError(w, http.StatusNotFound, "Could not find this route")
}
