package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/rs/cors"
	"github.com/study-booster/backend/internal/generator"
	"github.com/study-booster/backend/internal/storage"
	"github.com/study-booster/backend/internal/study"
)

func main() {
	// .env is optional; real env vars win either way
	if err := godotenv.Load(); err == nil {
		log.Println("Loaded configuration from .env")
	}

	store, err := storage.Open(getEnv("DB_PATH", "study_booster.db"))
	if err != nil {
		log.Fatalf("Failed to open store: %v", err)
	}
	defer store.Close()

	service := study.NewService(store)
	handler := study.NewHandler(service, generator.NewGenerator())

	// Setup router
	r := mux.NewRouter()
	api := r.PathPrefix("/api/v1").Subrouter()

	api.HandleFunc("/attempts", handler.RecordAttempt).Methods("POST")
	api.HandleFunc("/questions", handler.ListQuestions).Methods("GET")
	api.HandleFunc("/questions/{id}", handler.GetQuestion).Methods("GET")
	api.HandleFunc("/recommend", handler.Recommend).Methods("POST")
	api.HandleFunc("/stats", handler.GetStats).Methods("GET")
	api.HandleFunc("/goals", handler.UpdateGoals).Methods("PUT")
	api.HandleFunc("/wrong-questions", handler.ListWrongQuestions).Methods("GET")
	api.HandleFunc("/analytics", handler.GetAnalytics).Methods("GET")
	api.HandleFunc("/dashboard", handler.Dashboard).Methods("GET")
	api.HandleFunc("/export", handler.Export).Methods("GET")
	api.HandleFunc("/import", handler.Import).Methods("POST")
	api.HandleFunc("/reset", handler.Reset).Methods("POST")
	api.HandleFunc("/generate", handler.Generate).Methods("POST")

	// Health check
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods("GET")

	// CORS for the browser client
	c := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	})

	ctx, cancel := context.WithCancel(context.Background())

	autosave := time.Duration(getEnvInt("AUTOSAVE_SECONDS", 30)) * time.Second
	go service.StartAutoSaveWorker(ctx, autosave)

	port := getEnv("PORT", "8080")
	srv := &http.Server{
		Addr:    ":" + port,
		Handler: c.Handler(r),
	}

	go func() {
		log.Printf("Server starting on :%s", port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	// Best-effort final save on the way down
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	log.Println("Shutting down")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Shutdown error: %v", err)
	}
	service.Save()
}

func getEnv(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return defaultVal
}
