package main

//go:generate swag init

import (
	"embed"
	"io/fs"
	"log/slog"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	httpSwagger "github.com/swaggo/http-swagger"

	"invoicegen/config"
	"invoicegen/db"
	_ "invoicegen/docs"
	"invoicegen/handlers"
)

//go:embed static/*
var staticFiles embed.FS

// @title           Invoice Generator API
// @version         1.0.0
// @description     Generates BILL OF SUPPLY invoice PDFs, with optional invoice storage keyed by invoice number.
// @BasePath        /

func main() {
	// Optional .env file for local development
	godotenv.Load()

	// Configure structured logging
	level := slog.LevelInfo
	if os.Getenv("LOG_LEVEL") == "debug" {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level})))

	cfg := config.Load()

	// Open database; failure is not fatal, the app keeps generating
	// PDFs without storage.
	store, err := db.Open()
	if err != nil {
		slog.Warn("database unavailable, running in PDF-only mode", "error", err)
		store = nil
	} else {
		defer store.Close()
		if err := store.Migrate(); err != nil {
			slog.Error("failed to run migrations", "error", err)
			os.Exit(1)
		}
	}

	api := handlers.New(store, cfg.Business)

	// Router setup
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Post("/generate", api.Generate)
	r.Route("/api", func(r chi.Router) {
		r.Get("/invoices", api.ListInvoices)
		r.Get("/invoice/{invoiceNo}", api.GetInvoice)
		r.Delete("/invoice/{invoiceNo}", api.DeleteInvoice)
	})

	// Swagger UI
	r.Get("/swagger/*", httpSwagger.WrapHandler)

	// Serve the invoice form (UI)
	staticFS, _ := fs.Sub(staticFiles, "static")
	r.Handle("/*", http.FileServer(http.FS(staticFS)))

	addr := ":" + cfg.Port
	slog.Info("server starting", "address", addr, "database", store.Available())
	if err := http.ListenAndServe(addr, r); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}
