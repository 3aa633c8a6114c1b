package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/mystock-app/mystock/internal/backup"
	"github.com/mystock-app/mystock/internal/docstore"
	"github.com/mystock-app/mystock/internal/logging"
	"github.com/mystock-app/mystock/internal/server"
)

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

// newBackend selects the storage backend once at startup. Everything past
// this point only sees the docstore.Backend interface.
func newBackend() (docstore.Backend, func(), error) {
	switch kind := envOr("MYSTOCK_BACKEND", "file"); kind {
	case "file":
		dir := os.Getenv("MYSTOCK_DATA_DIR")
		if dir == "" {
			d, err := docstore.DefaultDataDir()
			if err != nil {
				return nil, nil, fmt.Errorf("resolve data dir: %w", err)
			}
			dir = d
		}
		b, err := docstore.NewFileBackend(dir)
		if err != nil {
			return nil, nil, err
		}
		return b, func() {}, nil
	case "sqlite":
		dbPath := envOr("MYSTOCK_DB_PATH", "mystock.db")
		db, err := docstore.OpenDB(dbPath)
		if err != nil {
			return nil, nil, err
		}
		return docstore.NewKVBackend(db), func() { db.Close() }, nil
	default:
		return nil, nil, fmt.Errorf("unknown backend %q (want file or sqlite)", kind)
	}
}

func main() {
	logger := logging.Setup(os.Getenv("MYSTOCK_LOG_LEVEL"))

	backend, closeBackend, err := newBackend()
	if err != nil {
		log.Fatalf("failed to open storage backend: %v", err)
	}
	defer closeBackend()

	store := docstore.New(backend)

	backupCfg := backup.Config{
		S3: backup.S3Config{
			Endpoint:  os.Getenv("MYSTOCK_S3_ENDPOINT"),
			Bucket:    os.Getenv("MYSTOCK_S3_BUCKET"),
			Region:    envOr("MYSTOCK_S3_REGION", "auto"),
			AccessKey: os.Getenv("MYSTOCK_S3_ACCESS_KEY"),
			SecretKey: os.Getenv("MYSTOCK_S3_SECRET_KEY"),
			Prefix:    os.Getenv("MYSTOCK_S3_PREFIX"),
		},
		Passphrase:    os.Getenv("MYSTOCK_BACKUP_PASSPHRASE"),
		ScheduleHour:  envInt("MYSTOCK_BACKUP_HOUR", 3),
		RetentionDays: envInt("MYSTOCK_BACKUP_RETENTION_DAYS", 30),
	}

	srv := server.New(store, backupCfg, logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	srv.BackupManager().Start(ctx)
	defer srv.BackupManager().Stop()

	port := envOr("MYSTOCK_PORT", "8080")
	httpServer := &http.Server{
		Addr:         ":" + port,
		Handler:      srv.Router(),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		fmt.Printf("mystock running at http://localhost:%s\n", port)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	fmt.Println("\nShutting down...")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("shutdown error: %v", err)
	}
}
