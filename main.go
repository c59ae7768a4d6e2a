package main

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gao4263/CineLearn-AI/internal/annotate"
	"github.com/gao4263/CineLearn-AI/internal/api"
	"github.com/gao4263/CineLearn-AI/internal/auth"
	"github.com/gao4263/CineLearn-AI/internal/config"
	"github.com/gao4263/CineLearn-AI/internal/db"
	"github.com/gao4263/CineLearn-AI/internal/ffmpeg"
	"github.com/gao4263/CineLearn-AI/internal/job"
	"github.com/gao4263/CineLearn-AI/internal/playback"
)

func main() {
	cfg := config.Load()

	// Ensure data directories exist
	os.MkdirAll(cfg.DataPath, 0755)
	os.MkdirAll(cfg.ThumbnailPath, 0755)

	// Initialize database
	database, err := db.NewSQLite(cfg.DBPath)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer database.Close()

	// Ensure admin user exists
	if err := database.EnsureAdmin(cfg.AdminUsername, cfg.AdminPassword); err != nil {
		log.Fatalf("Failed to create admin user: %v", err)
	}
	log.Printf("Admin user ensured: %s", cfg.AdminUsername)

	// Seed AI credentials from the environment on first run; afterwards the
	// settings API owns them.
	seedSetting(database, "gemini_api_key", cfg.GeminiAPIKey)
	seedSetting(database, "openai_api_key", cfg.OpenAIAPIKey)

	// Initialize JWT service
	jwtService := auth.NewJWTService(cfg.JWTSecret)

	// Job queue with its handlers
	jobQueue := job.NewJobQueue(database.DB())
	annotator := annotate.NewService(
		database,
		func() string { return database.GetSetting("gemini_api_key", "") },
		func() string { return database.GetSetting("gemini_model", "") },
		func() string { return database.GetSetting("openai_api_key", "") },
	)
	converter := ffmpeg.NewConverter(cfg.MediaPath, database)
	jobQueue.RegisterHandler(job.JobAnnotate, annotator.HandleJob)
	jobQueue.RegisterHandler(job.JobConvert, converter.HandleJob)
	defer jobQueue.Stop()

	// Playback session manager, fed annotations from the database
	manager := playback.NewManager(database)

	// Create router
	router := api.NewRouter(database, jwtService, cfg, jobQueue, manager, annotator)

	// Start server
	addr := fmt.Sprintf(":%d", cfg.Port)
	log.Printf("Starting server on %s", addr)
	log.Printf("Media path: %s", cfg.MediaPath)

	// Graceful shutdown
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		log.Println("Shutting down...")
		jobQueue.Stop()
		database.Close()
		os.Exit(0)
	}()

	if err := http.ListenAndServe(addr, router); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}

func seedSetting(database *db.Database, key, value string) {
	if value == "" {
		return
	}
	if existing := database.GetSetting(key, ""); existing != "" {
		return
	}
	if err := database.SetSetting(key, value); err != nil {
		log.Printf("Failed to seed setting %s: %v", key, err)
	}
}
