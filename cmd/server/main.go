package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lysyi3m/bookmark-comb/internal/api"
	"github.com/lysyi3m/bookmark-comb/internal/classify"
	"github.com/lysyi3m/bookmark-comb/internal/config"
	"github.com/lysyi3m/bookmark-comb/internal/enrich"
	"github.com/lysyi3m/bookmark-comb/internal/importer"
	"github.com/lysyi3m/bookmark-comb/internal/llmclient"
	"github.com/lysyi3m/bookmark-comb/internal/store"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("starting bookmark-comb server...")

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("failed to load configuration: ", err)
	}
	if cfg == nil {
		return
	}
	log.Printf("configuration loaded (port=%s, workers=%d, llm=%v)", cfg.Port, cfg.WorkerCount, cfg.HasLLM())

	log.Printf("opening database at %s...", cfg.DBPath)
	db, err := store.Open(cfg.DBPath)
	if err != nil {
		log.Fatal("failed to open database: ", err)
	}
	defer db.Close()
	log.Println("database ready, migrations applied")

	bookmarkRepo := store.NewBookmarkRepository(db)
	categoryRepo := store.NewCategoryRepository(db)
	sessionRepo := store.NewSessionRepository(db)

	log.Println("seeding built-in taxonomy if empty...")
	if err := categoryRepo.EnsureDefaults(); err != nil {
		log.Fatal("failed to seed built-in taxonomy: ", err)
	}

	taxonomy, err := classify.BuiltinTaxonomy()
	if err != nil {
		log.Fatal("failed to load built-in taxonomy: ", err)
	}
	classifier := classify.New(taxonomy, classify.DefaultThreshold)

	llmClient, hasLLM := llmclient.New(cfg.LLMAPIKey, cfg.LLMBaseURL, cfg.LLMModel)
	if hasLLM {
		log.Printf("LLM client configured (model=%s)", cfg.LLMModel)
	} else {
		log.Println("no LLM API key configured, running deterministic-fallback only")
	}

	fetcher := enrich.NewFetcher(cfg.UserAgent)

	pipeline := importer.NewPipeline(bookmarkRepo, categoryRepo, sessionRepo, fetcher, classifier, llmClient, cfg.WorkerCount)

	handler := api.NewHandler(bookmarkRepo, categoryRepo, sessionRepo, pipeline, llmClient, cfg)
	engine := api.NewServer(handler, cfg.APIAccessKey)

	httpServer := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      engine,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 0, // import is a long-lived SSE stream
		IdleTimeout:  120 * time.Second,
	}

	serverErrChan := make(chan error, 1)
	go func() {
		log.Printf("listening on port %s", cfg.Port)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrChan <- err
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	log.Println("bookmark-comb server started, press Ctrl+C to shut down")

	select {
	case sig := <-sigChan:
		log.Printf("received signal: %v", sig)
	case err := <-serverErrChan:
		log.Printf("server error: %v", err)
	}

	log.Println("shutting down gracefully...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Printf("HTTP server shutdown error: %v", err)
	} else {
		log.Println("HTTP server stopped")
	}

	log.Println("bookmark-comb server shutdown complete")
}
