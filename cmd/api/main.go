package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Rizwan2611/CLV-calculator/internal/authlog"
	"github.com/Rizwan2611/CLV-calculator/internal/clv"
	"github.com/Rizwan2611/CLV-calculator/internal/config"
	"github.com/Rizwan2611/CLV-calculator/internal/httpapi"
	"github.com/Rizwan2611/CLV-calculator/internal/obs"
)

var (
	version = "1.0.0"
	commit  = "dev"
)

func main() {
	obs.Init()
	obs.InitBuildInfo(version, commit)

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	customers := clv.NewStore(cfg.DataDir)

	fileArc, err := authlog.NewFileArchive(cfg.DataDir, cfg.DailyDir)
	if err != nil {
		log.Fatalf("init file archive: %v", err)
	}
	seed, err := fileArc.Load()
	if err != nil {
		log.Fatalf("load auth events: %v", err)
	}

	archives := []authlog.Archive{fileArc}
	var pgArc *authlog.PgArchive
	if cfg.PgDSN != "" {
		pgArc, err = authlog.OpenPg(cfg.PgDSN)
		if err != nil {
			log.Fatalf("open postgres archive: %v", err)
		}
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		if err := pgArc.EnsureSchema(ctx); err != nil {
			cancel()
			log.Fatalf("ensure postgres schema: %v", err)
		}
		cancel()
		archives = append(archives, pgArc)
	}

	events := authlog.NewStore(seed, archives...)

	api := httpapi.New(cfg, customers, events, version)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           api.Handler(),
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	log.Printf("Starting clv-api %s on %s", version, srv.Addr)

	// Bind failure is fatal; per-connection errors never reach here.
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	<-stop
	log.Println("Shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_ = srv.Shutdown(ctx)
	if pgArc != nil {
		_ = pgArc.Close()
	}
	log.Println("Stopped")
}
