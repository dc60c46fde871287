package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"cloud.google.com/go/firestore"

	"github.com/mamacare/tracker-service/internal/adapters/crypto"
	"github.com/mamacare/tracker-service/internal/adapters/handler"
	"github.com/mamacare/tracker-service/internal/adapters/identity"
	"github.com/mamacare/tracker-service/internal/adapters/middleware"
	"github.com/mamacare/tracker-service/internal/adapters/repository"
	"github.com/mamacare/tracker-service/internal/adapters/scheduledata"
	"github.com/mamacare/tracker-service/internal/config"
	"github.com/mamacare/tracker-service/internal/core/ports"
	"github.com/mamacare/tracker-service/internal/core/services"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Open local database with retry logic
	db, err := config.ConnectDatabase(cfg.SQLitePath, 5, 2*time.Second)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	if err := config.InitDatabase(db); err != nil {
		log.Fatalf("Failed to initialize database schema: %v", err)
	}

	// Initialize local store
	localStore := repository.NewLocalStore(db)

	// Initialize cloud store; without Firebase configuration the service
	// runs in device-only mode and cloud calls surface as network errors
	var cloudStore ports.StorageBackend
	if cfg.CloudEnabled() {
		fsClient, err := firestore.NewClient(context.Background(), cfg.FirebaseProjectID)
		if err != nil {
			log.Fatalf("Failed to initialize Firestore client: %v", err)
		}
		defer fsClient.Close()
		cloudStore = repository.NewCloudStore(fsClient)
		log.Println("Cloud storage enabled (Firestore)")
	} else {
		cloudStore = repository.UnavailableCloudStore{}
		log.Println("Cloud storage disabled, running device-only")
	}

	// Initialize identity provider
	identityClient := identity.NewFirebaseClient(cfg.FirebaseAPIKey, cfg.IdentityBaseURL)

	// Initialize legacy vault migration
	vault := crypto.NewFileVault(cfg.LegacyVaultPath)
	crypter, err := crypto.NewVaultCrypter(cfg.VaultPassphrase)
	if err != nil {
		log.Fatalf("Failed to initialize vault crypter: %v", err)
	}
	migrationService := services.NewMigrationService(vault, crypter, localStore)

	// Initialize wellbeing alert publisher when a broker is configured
	var alertPublisher ports.AlertPublisher
	if cfg.AlertsEnabled() {
		rabbitMQPublisher, err := repository.NewRabbitMQPublisher(cfg.RabbitMQURL, cfg.AlertQueueName)
		if err != nil {
			log.Fatalf("Failed to initialize RabbitMQ publisher: %v", err)
		}
		defer rabbitMQPublisher.Close()
		alertPublisher = rabbitMQPublisher
		log.Println("Wellbeing alert publishing enabled")
	}

	// Initialize schedule source from embedded data
	scheduleSource, err := scheduledata.NewEmbeddedSource()
	if err != nil {
		log.Fatalf("Failed to load vaccination schedules: %v", err)
	}

	// Initialize services
	sessionService := services.NewSessionService(localStore, cloudStore, localStore, identityClient, migrationService)
	moodService := services.NewMoodService(sessionService, localStore, cloudStore, alertPublisher)
	scheduleService := services.NewScheduleService(sessionService, scheduleSource, localStore)
	trackingService := services.NewTrackingService(localStore)
	chatService := services.NewChatService()

	// Run startup sequence: legacy vault migration and session restore
	if err := sessionService.Startup(context.Background()); err != nil {
		log.Fatalf("Startup failed: %v", err)
	}

	// Initialize JWT middleware
	authMiddleware, err := middleware.NewAuthMiddleware()
	if err != nil {
		log.Fatalf("Failed to initialize auth middleware: %v", err)
	}
	defer authMiddleware.Stop()

	// Initialize handlers
	sessionHandler := handler.NewSessionHandler(sessionService, authMiddleware)
	profileHandler := handler.NewProfileHandler(sessionService)
	moodHandler := handler.NewMoodHandler(moodService)
	vaccineHandler := handler.NewVaccineHandler(scheduleService)
	trackingHandler := handler.NewTrackingHandler(trackingService)
	chatHandler := handler.NewChatHandler(chatService)
	healthHandler := handler.NewHealthHandler(db)

	// Setup HTTP router
	mux := http.NewServeMux()

	// Health endpoints (no auth required)
	mux.Handle("GET /metrics", promhttp.Handler())
	mux.HandleFunc("GET /health", healthHandler.Health)
	mux.HandleFunc("GET /health/ready", healthHandler.Ready)
	mux.HandleFunc("GET /health/live", healthHandler.Live)

	// Session endpoints
	mux.HandleFunc("POST /session/login", sessionHandler.Login)
	mux.HandleFunc("POST /session/onboarding", sessionHandler.CompleteOnboarding)
	mux.HandleFunc("POST /session/logout", authMiddleware.RequireAuth(sessionHandler.Logout))
	mux.HandleFunc("DELETE /session/account", authMiddleware.RequireAuth(sessionHandler.DeleteAccount))

	// Profile endpoints
	mux.HandleFunc("GET /profile", authMiddleware.RequireAuth(profileHandler.GetProfile))
	mux.HandleFunc("PUT /profile", authMiddleware.RequireAuth(profileHandler.UpdateProfile))
	mux.HandleFunc("PUT /profile/storage-mode", authMiddleware.RequireAuth(profileHandler.ChangeStorageMode))
	mux.HandleFunc("GET /baby-size", authMiddleware.RequireAuth(profileHandler.GetBabySize))

	// Mood endpoints
	mux.HandleFunc("POST /moods", authMiddleware.RequireAuth(moodHandler.RecordMood))
	mux.HandleFunc("GET /moods", authMiddleware.RequireAuth(moodHandler.ListMoods))
	mux.HandleFunc("DELETE /moods/{mood_id}", authMiddleware.RequireAuth(moodHandler.DeleteMood))

	// Vaccination schedule endpoints
	mux.HandleFunc("GET /vaccines", authMiddleware.RequireAuth(vaccineHandler.GetSchedule))
	mux.HandleFunc("POST /vaccines/{item_id}/complete", authMiddleware.RequireAuth(vaccineHandler.MarkCompleted))
	mux.HandleFunc("DELETE /vaccines/{item_id}/complete", authMiddleware.RequireAuth(vaccineHandler.UnmarkCompleted))

	// Tracking endpoints
	mux.HandleFunc("POST /tracking/weight", authMiddleware.RequireAuth(trackingHandler.LogWeight))
	mux.HandleFunc("GET /tracking/weight", authMiddleware.RequireAuth(trackingHandler.WeightHistory))
	mux.HandleFunc("DELETE /tracking/weight/{entry_id}", authMiddleware.RequireAuth(trackingHandler.DeleteWeight))
	mux.HandleFunc("POST /tracking/symptoms", authMiddleware.RequireAuth(trackingHandler.LogSymptom))
	mux.HandleFunc("GET /tracking/symptoms", authMiddleware.RequireAuth(trackingHandler.SymptomHistory))
	mux.HandleFunc("DELETE /tracking/symptoms/{entry_id}", authMiddleware.RequireAuth(trackingHandler.DeleteSymptom))
	mux.HandleFunc("POST /tracking/kicks/sessions", authMiddleware.RequireAuth(trackingHandler.StartKickSession))
	mux.HandleFunc("GET /tracking/kicks/sessions", authMiddleware.RequireAuth(trackingHandler.KickSessionHistory))
	mux.HandleFunc("POST /tracking/kicks/sessions/{session_id}/kicks", authMiddleware.RequireAuth(trackingHandler.RecordKick))
	mux.HandleFunc("POST /tracking/kicks/sessions/{session_id}/end", authMiddleware.RequireAuth(trackingHandler.EndKickSession))
	mux.HandleFunc("POST /tracking/contractions", authMiddleware.RequireAuth(trackingHandler.StartContraction))
	mux.HandleFunc("GET /tracking/contractions", authMiddleware.RequireAuth(trackingHandler.ContractionHistory))
	mux.HandleFunc("POST /tracking/contractions/{contraction_id}/end", authMiddleware.RequireAuth(trackingHandler.EndContraction))
	mux.HandleFunc("DELETE /tracking/contractions", authMiddleware.RequireAuth(trackingHandler.ClearContractions))
	mux.HandleFunc("POST /tracking/water", authMiddleware.RequireAuth(trackingHandler.LogWater))
	mux.HandleFunc("GET /tracking/water", authMiddleware.RequireAuth(trackingHandler.WaterIntake))
	mux.HandleFunc("POST /tracking/bag", authMiddleware.RequireAuth(trackingHandler.SaveBagItem))
	mux.HandleFunc("GET /tracking/bag", authMiddleware.RequireAuth(trackingHandler.BagChecklist))
	mux.HandleFunc("PUT /tracking/bag/{item_id}/packed", authMiddleware.RequireAuth(trackingHandler.SetBagItemPacked))
	mux.HandleFunc("DELETE /tracking/bag/{item_id}", authMiddleware.RequireAuth(trackingHandler.DeleteBagItem))
	mux.HandleFunc("POST /tracking/appointments", authMiddleware.RequireAuth(trackingHandler.SaveAppointment))
	mux.HandleFunc("GET /tracking/appointments", authMiddleware.RequireAuth(trackingHandler.Appointments))
	mux.HandleFunc("DELETE /tracking/appointments/{appointment_id}", authMiddleware.RequireAuth(trackingHandler.DeleteAppointment))

	// Companion chat endpoints
	mux.HandleFunc("POST /chat", authMiddleware.RequireAuth(chatHandler.SendMessage))
	mux.HandleFunc("GET /chat", authMiddleware.RequireAuth(chatHandler.History))

	// Wrap mux with metrics middleware to track all HTTP requests
	loggedRouter := middleware.MetricsMiddleware(mux)

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      loggedRouter,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Printf("Starting Tracker Service on :%s", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Give server time to start and log success
	time.Sleep(500 * time.Millisecond)
	log.Println("Tracker Service is starting...")

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	// Shutdown HTTP server with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exited")
}
