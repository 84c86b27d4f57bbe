package main

import (
	"context"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/vaughan-dsouza/blogly/internal/config"
	"github.com/vaughan-dsouza/blogly/internal/db"
	"github.com/vaughan-dsouza/blogly/internal/handlers"
	"github.com/vaughan-dsouza/blogly/internal/middleware"
	"github.com/vaughan-dsouza/blogly/internal/store"
	"github.com/vaughan-dsouza/blogly/internal/views"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gopkg.in/natefinch/lumberjack.v2"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	if closer := setupLogging(cfg.Log); closer != nil {
		defer closer.Close()
	}

	dbConn, err := db.Connect(cfg.DatabaseURL, cfg.DB)
	if err != nil {
		log.Fatalf("db connect: %v", err)
	}
	defer dbConn.Close()

	if err := db.EnsureSchema(context.Background(), dbConn); err != nil {
		log.Fatalf("db schema: %v", err)
	}

	tmpl, err := views.New()
	if err != nil {
		log.Fatalf("templates: %v", err)
	}

	st := store.New(dbConn, cfg.DefaultImageURL)
	h := handlers.NewHandler(st.Users, st.Posts, st.Tags, tmpl)

	r := chi.NewRouter()
	r.Use(chimw.RequestID, chimw.RealIP, middleware.Logger, chimw.Recoverer)
	if cfg.MetricsEnabled {
		r.Use(middleware.Metrics)
		r.Handle("/metrics", promhttp.Handler())
	}

	r.Get("/healthz", handlers.Health(func(ctx context.Context) error {
		return db.Ping(ctx, dbConn)
	}))
	h.Routes(r)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	go func() {
		log.Printf("listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	log.Println("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("server forced to shutdown: %v", err)
	}

	log.Println("server exited")
}

// setupLogging tees the standard logger into a rotating file when one is
// configured. The returned closer is nil when logging to stdout only.
func setupLogging(c config.LogConfig) io.Closer {
	if c.File == "" {
		return nil
	}
	rotator := &lumberjack.Logger{
		Filename:   c.File,
		MaxSize:    c.MaxSizeMB,
		MaxBackups: c.MaxBackups,
		MaxAge:     c.MaxAgeDays,
		Compress:   true,
	}
	log.SetOutput(io.MultiWriter(os.Stdout, rotator))
	return rotator
}
