package main

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"os"
	"os/signal"
	"time"

	gorillaHandlers "github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"cookieTriviaAPI/handlers"
	"cookieTriviaAPI/internal/fortune"
	"cookieTriviaAPI/internal/store"
	"cookieTriviaAPI/internal/trivia"
	"cookieTriviaAPI/middleware"
	"cookieTriviaAPI/services"
)

var (
	docStore      store.Store
	triviaService *services.TriviaService
)

func init() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var err error
	switch driver := os.Getenv("STORE_DRIVER"); driver {
	case "", "postgres":
		dbURL := os.Getenv("DATABASE_URL")
		if dbURL == "" {
			log.Fatal("DATABASE_URL environment variable is not set")
		}
		docStore, err = store.NewPostgresStore(ctx, dbURL)
	case "mongo":
		uri := os.Getenv("MONGO_URI")
		if uri == "" {
			log.Fatal("MONGO_URI environment variable is not set")
		}
		dbName := os.Getenv("MONGO_DB")
		if dbName == "" {
			dbName = "trivia"
		}
		docStore, err = store.NewMongoStore(ctx, uri, dbName)
	case "memory":
		docStore = store.NewMemoryStore()
		log.Println("Using in-memory store, state will not survive a restart")
	default:
		log.Fatalf("Unknown STORE_DRIVER %q (want postgres, mongo or memory)", driver)
	}
	if err != nil {
		log.Fatal("Failed to initialize store:", err)
	}

	log.Println("OK, DB Connected!")

	triviaService = services.NewTriviaService(docStore, fortune.NewGenerator())

	if seedFile := os.Getenv("SEED_FILE"); seedFile != "" {
		if err := seedQuestions(ctx, seedFile); err != nil {
			log.Fatal("Failed to seed trivia questions:", err)
		}
	}

	middleware.InitPrometheus()
}

// seedQuestions loads a JSON array of questions into an empty store.
func seedQuestions(ctx context.Context, path string) error {
	has, err := triviaService.HasQuestions(ctx)
	if err != nil {
		return err
	}
	if has {
		log.Println("Trivia questions already present, skipping seed")
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	var questions []trivia.Question
	if err := json.Unmarshal(data, &questions); err != nil {
		return err
	}

	if err := triviaService.SeedQuestions(ctx, questions); err != nil {
		return err
	}

	log.Printf("Seeded %d trivia questions from %s", len(questions), path)
	return nil
}

func main() {
	defer func() {
		log.Println("Closing store...")
		docStore.Close()
	}()

	triviaHandler := handlers.NewTriviaHandler(triviaService)

	r := mux.NewRouter()

	go middleware.CleanupVisitors()

	r.Use(middleware.RateLimitMiddleware)
	r.Use(middleware.MonitorMiddleware)

	r.Handle("/metrics", middleware.BasicAuthMiddleware(promhttp.Handler()))

	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		w.Header().Set("Content-Type", "application/json")
		if err := docStore.Ping(ctx); err != nil {
			w.WriteHeader(http.StatusServiceUnavailable)
			w.Write([]byte(`{"status": "unhealthy", "error": "store connection failed"}`))
			return
		}

		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status": "healthy", "service": "cookie-trivia-api"}`))
	}).Methods("GET")

	r.HandleFunc("/trivia", triviaHandler.GetTrivia).Methods("GET")
	r.HandleFunc("/trivia", triviaHandler.PostTrivia).Methods("POST")
	r.HandleFunc("/top-earners", triviaHandler.GetTopEarners).Methods("GET")

	r.NotFoundHandler = http.HandlerFunc(triviaHandler.NotFound)

	// CORS configuration
	corsHandler := gorillaHandlers.CORS(
		gorillaHandlers.AllowedOrigins([]string{"*"}),
		gorillaHandlers.AllowedMethods([]string{"GET", "POST", "OPTIONS"}),
		gorillaHandlers.AllowedHeaders([]string{"Content-Type"}),
		gorillaHandlers.ExposedHeaders([]string{"Content-Length"}),
	)

	port := os.Getenv("PORT")
	if port == "" {
		port = "5000"
	}
	port = ":" + port

	server := http.Server{
		Addr:         port,
		Handler:      corsHandler(r),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		log.Printf("Starting server on port %s", port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Error starting server:", err)
		}
	}()

	// Graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt)

	sig := <-sigChan
	log.Println("Got signal:", sig)

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server shutdown error: %v", err)
	}

	log.Println("Server shutdown complete")
}
