package api

import (
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/gao4263/CineLearn-AI/internal/annotate"
	"github.com/gao4263/CineLearn-AI/internal/api/handlers"
	"github.com/gao4263/CineLearn-AI/internal/api/middleware"
	"github.com/gao4263/CineLearn-AI/internal/auth"
	"github.com/gao4263/CineLearn-AI/internal/config"
	"github.com/gao4263/CineLearn-AI/internal/db"
	"github.com/gao4263/CineLearn-AI/internal/job"
	"github.com/gao4263/CineLearn-AI/internal/playback"
)

func NewRouter(database *db.Database, jwtService *auth.JWTService, cfg *config.Config, jobQueue *job.JobQueue, manager *playback.Manager, annotator *annotate.Service) *chi.Mux {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimw.Recoverer)
	r.Use(chimw.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.MaxBodySize(1 << 20))
	r.Use(cors.Handler(middleware.CORSHandler(cfg.CORSOrigins)))

	loginLimiter := middleware.NewRateLimiter(10, time.Minute)

	// Handlers
	authHandler := handlers.NewAuthHandler(database, jwtService)
	libraryHandler := handlers.NewLibraryHandler(database, jobQueue, cfg.MediaPath, cfg.ThumbnailPath)
	subtitleHandler := handlers.NewSubtitleHandler(database, cfg.MediaPath)
	playbackHandler := handlers.NewPlaybackHandler(database, manager, cfg.MediaPath)
	learningHandler := handlers.NewLearningHandler(database, jobQueue, annotator)
	jobHandler := handlers.NewJobHandler(jobQueue)
	settingsHandler := handlers.NewSettingsHandler(database)

	r.Route("/api", func(r chi.Router) {
		// Auth (public)
		r.With(loginLimiter.Handler).Post("/auth/login", authHandler.Login)

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(middleware.AuthMiddleware(jwtService))

			// Auth
			r.Get("/auth/me", authHandler.Me)

			// Library
			r.Get("/videos", libraryHandler.ListVideos)
			r.Post("/videos/import", libraryHandler.Import)
			r.Get("/videos/{id}", libraryHandler.GetVideo)
			r.Delete("/videos/{id}", libraryHandler.DeleteVideo)
			r.Get("/videos/{id}/thumbnail", libraryHandler.GetThumbnail)
			r.Get("/videos/{id}/subtitles", subtitleHandler.GetCues)
			r.Get("/folders", libraryHandler.ListFolders)
			r.Post("/folders", libraryHandler.CreateFolder)
			r.Delete("/folders/{id}", libraryHandler.DeleteFolder)
			r.Get("/media/browse", libraryHandler.Browse)
			r.Get("/media/browse/*", libraryHandler.Browse)
			r.Get("/media/search", libraryHandler.Search)

			// Playback synchronization
			r.Post("/playback/session", playbackHandler.OpenSession)
			r.Post("/playback/{sessionID}/time", playbackHandler.TimeUpdate)
			r.Post("/playback/{sessionID}/loop", playbackHandler.SetLoop)
			r.Post("/playback/{sessionID}/event", playbackHandler.PlayerEvent)
			r.Delete("/playback/{sessionID}", playbackHandler.CloseSession)
			r.Put("/videos/{id}/progress", playbackHandler.SaveProgress)
			r.Get("/videos/{id}/progress", playbackHandler.GetProgress)

			// Learning
			r.Get("/words", learningHandler.ListWords)
			r.Post("/words", learningHandler.SaveWord)
			r.Put("/words/{id}/mastered", learningHandler.SetWordMastered)
			r.Delete("/words/{id}", learningHandler.DeleteWord)
			r.Get("/subtitles/saved", learningHandler.ListSubtitles)
			r.Post("/subtitles/saved", learningHandler.SaveSubtitle)
			r.Delete("/subtitles/saved/{id}", learningHandler.DeleteSubtitle)
			r.Post("/videos/{id}/annotations", learningHandler.Annotate)
			r.Get("/videos/{id}/annotations", learningHandler.ListAnnotations)
			r.Delete("/annotations/{annotationID}", learningHandler.DeleteAnnotation)
			r.Get("/engines", learningHandler.Engines)

			// Jobs
			r.Get("/jobs", jobHandler.ListJobs)
			r.Get("/jobs/{id}", jobHandler.GetJob)
			r.Delete("/jobs/{id}", jobHandler.CancelJob)

			// Settings
			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireRole("admin"))
				r.Get("/settings", settingsHandler.GetSettings)
				r.Put("/settings", settingsHandler.UpdateSettings)
			})
		})
	})

	return r
}
