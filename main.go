package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"time"

	gorillaHandlers "github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Tanner-R/deck-game/handlers"
	"github.com/Tanner-R/deck-game/middleware"
	"github.com/Tanner-R/deck-game/services"

	_ "net/http/pprof"
)

var (
	dbPool           *pgxpool.Pool
	personService    *services.PersonService
	cardService      *services.CardService
	workoutService   *services.WorkoutService
	dashboardService *services.DashboardService
)

func init() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL environment variable is not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	poolConfig, err := pgxpool.ParseConfig(dbURL)
	if err != nil {
		log.Fatal("Failed to parse database URL:", err)
	}

	poolConfig.MaxConns = 10
	poolConfig.MinConns = 2
	poolConfig.MaxConnLifetime = time.Hour
	poolConfig.MaxConnIdleTime = 30 * time.Minute
	poolConfig.HealthCheckPeriod = time.Minute

	dbPool, err = pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		log.Fatal("Failed to create connection pool:", err)
	}

	if err := dbPool.Ping(ctx); err != nil {
		log.Fatal("Failed to ping database:", err)
	}

	log.Println("Successfully connected to Postgres")

	personService = services.NewPersonService(dbPool)
	cardService = services.NewCardService(dbPool)
	workoutService = services.NewWorkoutService(dbPool)
	dashboardService = services.NewDashboardService(dbPool, personService, cardService, workoutService)

	middleware.InitPrometheus()
}

func main() {
	defer func() {
		log.Println("Closing database connection pool...")
		dbPool.Close()
	}()

	personHandler := handlers.NewPersonHandler(personService)
	cardHandler := handlers.NewCardHandler(cardService)
	workoutHandler := handlers.NewWorkoutHandler(workoutService)
	dashboardHandler := handlers.NewDashboardHandler(dashboardService)

	r := mux.NewRouter()

	go middleware.CleanupVisitors()

	r.Use(middleware.RateLimitMiddleware)
	r.Use(middleware.MonitorMiddleware)

	r.Handle("/metrics", middleware.BasicAuthMiddleware(promhttp.Handler()))
	r.PathPrefix("/debug/pprof/").Handler(middleware.PprofSecurityMiddleware(http.DefaultServeMux))

	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := dbPool.Ping(ctx); err != nil {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusServiceUnavailable)
			w.Write([]byte(`{"status": "unhealthy", "error": "database connection failed"}`))
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status": "healthy", "service": "deck-game-api"}`))
	}).Methods("GET")

	// -------------------------------------------------------------------------
	// API V1 SUBROUTER
	// -------------------------------------------------------------------------
	api := r.PathPrefix("/api/v1").Subrouter()

	api.HandleFunc("/people", personHandler.ListPeople).Methods("GET")
	api.HandleFunc("/people", personHandler.CreatePerson).Methods("POST")
	api.HandleFunc("/people/{id}", personHandler.DeletePerson).Methods("DELETE")

	api.HandleFunc("/deck", cardHandler.GetDeck).Methods("GET")
	api.HandleFunc("/cards", cardHandler.ListCards).Methods("GET")
	api.HandleFunc("/cards", cardHandler.ClearWeek).Methods("DELETE")
	api.HandleFunc("/cards/draw", cardHandler.DrawCard).Methods("POST")
	api.HandleFunc("/cards/{id}/claim", cardHandler.ClaimCard).Methods("POST")
	api.HandleFunc("/cards/{id}/unclaim", cardHandler.UnclaimCard).Methods("POST")
	api.HandleFunc("/cards/{id}", cardHandler.DeleteCard).Methods("DELETE")

	api.HandleFunc("/workouts", workoutHandler.ListWorkouts).Methods("GET")
	api.HandleFunc("/workouts", workoutHandler.LogWorkout).Methods("POST")
	api.HandleFunc("/workouts/{id}", workoutHandler.DeleteWorkout).Methods("DELETE")

	api.HandleFunc("/dashboard", dashboardHandler.GetDashboard).Methods("GET")

	// CORS configuration
	corsHandler := gorillaHandlers.CORS(
		gorillaHandlers.AllowedOrigins([]string{"*"}),
		gorillaHandlers.AllowedMethods([]string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}),
		gorillaHandlers.AllowedHeaders([]string{"Content-Type", "Authorization", "X-Pprof-Secret"}),
		gorillaHandlers.ExposedHeaders([]string{"Content-Length"}),
		gorillaHandlers.AllowCredentials(),
	)

	port := os.Getenv("PORT")
	if port == "" {
		port = "3333"
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
