package main

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/cexll/fileheader/internal/config"
	"github.com/cexll/fileheader/internal/engine"
	"github.com/cexll/fileheader/internal/server"
	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
)

var (
	loadDotEnv         = godotenv.Load
	newEngine          = engine.NewFromConfig
	defaultListenServe = http.ListenAndServe
)

func main() {
	if err := run(context.Background(), defaultListenServe); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}

func run(ctx context.Context, serve func(string, http.Handler) error) error {
	// Load .env file (ignore error if file doesn't exist)
	_ = loadDotEnv()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	log.Printf("Starting file header daemon...")
	log.Printf("Port: %d", cfg.Port)
	log.Printf("Date format: %s", cfg.DateFormat)
	if cfg.AuthSecret == "" {
		log.Printf("Warning: FILEHEADER_AUTH_SECRET not set, document routes are unauthenticated")
	}

	e, err := newEngine(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize engine: %w", err)
	}
	log.Printf("Auto insert on save: %t, update interval: %s", cfg.AutoInsertOnSave, e.UpdateInterval())

	// Setup router
	r := mux.NewRouter()
	server.NewHandler(e, cfg.AuthSecret).RegisterRoutes(r)

	// Root endpoint with info
	r.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		fmt.Fprintf(w, `{"service":"fileheader","status":"running","autoInsert":%t,"updateInterval":%q}`,
			cfg.AutoInsertOnSave, e.UpdateInterval())
	}).Methods("GET")

	// Start server
	addr := fmt.Sprintf(":%d", cfg.Port)
	log.Printf("Server listening on %s", addr)
	log.Printf("Will-save endpoint: http://localhost%s/documents/will-save", addr)
	log.Printf("Health check: http://localhost%s/health", addr)

	if err := serve(addr, r); err != nil {
		return fmt.Errorf("server failed to start: %w", err)
	}

	return nil
}
