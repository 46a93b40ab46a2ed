package main

import (
	"context"
	"log"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/shivangi00/e-business-card-generator/internal/config"
	"github.com/shivangi00/e-business-card-generator/internal/handlers"
	appMiddleware "github.com/shivangi00/e-business-card-generator/internal/middleware"
	"github.com/shivangi00/e-business-card-generator/internal/services"
	"github.com/shivangi00/e-business-card-generator/internal/storage"
)

func main() {
	cfg := config.Load()

	// Firebase Auth (server-side verification of ID tokens)
	authClient, err := appMiddleware.NewFirebaseAuthClient(
		context.Background(),
		appMiddleware.FirebaseAuthConfig{
			ProjectID:       cfg.FirebaseProjectID,
			CredentialsJSON: cfg.FirebaseCredentialsJSON,
		},
	)
	if err != nil {
		log.Printf("Warning: failed to initialize Firebase Auth client: %v", err)
	}

	// Card storage: MongoDB when configured, local JSON otherwise.
	var cardStore services.CardStore
	if cfg.MongoURI != "" {
		mongoStore, err := services.NewMongoCardService(context.Background(), cfg.MongoURI, cfg.MongoDatabase)
		if err != nil {
			log.Fatalf("Failed to connect to MongoDB: %v", err)
		}
		cardStore = mongoStore
	} else {
		log.Println("MONGODB_URI not set, using local card storage")
		cardStore = services.NewCardService(cfg.DataDir)
	}

	pointers, err := storage.NewPointerStore(cfg.DataDir)
	if err != nil {
		log.Fatalf("Failed to open pointer store: %v", err)
	}

	logos := services.NewClearbitLogoResolver()
	userService := services.NewUserService(cfg.DataDir)
	imageService := services.NewImageService(cfg.UploadDir)
	sessions := services.NewSessionManager(cardStore, pointers, logos, cfg.DataDir, cfg.Origin)

	authHandler := handlers.NewAuthHandler(userService, cfg.JWTSecret, cfg.JWTExpiration)
	cardHandler := handlers.NewCardHandler(cardStore, cfg.Origin)
	sessionHandler := handlers.NewSessionHandler(sessions, logos)
	imageHandler := handlers.NewImageHandler(imageService, cfg.MaxUploadSizeMB)

	// Create router
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// API routes
	r.Route("/api", func(r chi.Router) {
		// Local auth (email + password fallback when Firebase is not in use)
		r.Post("/auth/register", authHandler.Register)
		r.Post("/auth/login", authHandler.Login)

		// Public card views: anyone holding the link can read.
		r.Route("/cards/{cardId}", func(r chi.Router) {
			r.Get("/", cardHandler.GetCard)
			r.Get("/frame", cardHandler.GetCardFrame)
			r.Get("/embed", cardHandler.GetCardEmbed)
		})

		r.Get("/catalogue", cardHandler.GetCatalogue)

		// Protected routes
		r.Group(func(r chi.Router) {
			if authClient != nil {
				r.Use(appMiddleware.FirebaseAuth(authClient))
			} else {
				r.Use(appMiddleware.JWTAuth(cfg.JWTSecret))
			}

			r.Get("/auth/me", authHandler.GetProfile)
			r.Get("/cards", cardHandler.ListCards)

			// Editing session
			r.Route("/session", func(r chi.Router) {
				r.Get("/", sessionHandler.GetSession)
				r.Put("/profile", sessionHandler.UpdateProfile)
				r.Post("/publish", sessionHandler.Publish)
				r.Get("/logo", sessionHandler.LookupLogo)

				r.Route("/socials", func(r chi.Router) {
					r.Post("/", sessionHandler.AddSocial)
					r.Route("/{socialId}", func(r chi.Router) {
						r.Put("/", sessionHandler.UpdateSocial)
						r.Delete("/", sessionHandler.RemoveSocial)
						r.Post("/icons", sessionHandler.AddNestedIcon)
						r.Delete("/icons/{iconIndex}", sessionHandler.RemoveNestedIcon)
					})
				})
			})

			// Image upload
			r.Post("/upload", imageHandler.Upload)
			r.Delete("/upload/{imageId}", imageHandler.Delete)
		})
	})

	// Serve uploaded files
	workDir, _ := os.Getwd()
	filesDir := http.Dir(workDir + "/" + cfg.UploadDir)
	r.Handle("/uploads/*", http.StripPrefix("/uploads/", http.FileServer(filesDir)))

	log.Printf("eCard API server starting on %s", cfg.ServerAddress)
	if err := http.ListenAndServe(cfg.ServerAddress, r); err != nil {
		log.Fatalf("Server failed to start: %v", err)
	}
}
