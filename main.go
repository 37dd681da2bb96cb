package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/timeline/internal/config"
	"github.com/robalobadob/timeline/internal/db"
	"github.com/robalobadob/timeline/internal/httpserver"
	"github.com/robalobadob/timeline/internal/images"
	"github.com/robalobadob/timeline/internal/kv"
	"github.com/robalobadob/timeline/internal/pool"
	"github.com/robalobadob/timeline/internal/store"
)

func main() {
	_ = godotenv.Load()
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}
	if lvl, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}
	if !cfg.Production() {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sqlDB, err := db.Open(cfg.DBPath)
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.DBPath).Msg("open db")
	}
	defer sqlDB.Close()
	if err := db.Migrate(sqlDB); err != nil {
		log.Fatal().Err(err).Msg("migrate db")
	}

	records, closeKV, err := openKV(ctx, cfg, sqlDB)
	if err != nil {
		log.Fatal().Err(err).Str("backend", cfg.KVBackend).Msg("open kv")
	}
	defer closeKV()

	lib, err := pool.Open(cfg.DataDir)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load card pools")
	}
	loc, _ := cfg.Location() // validated by config.Load

	var prefetch images.Prefetcher = images.Nop{}
	if cfg.ImagePrefetch {
		prefetch = images.NewHTTPPrefetcher(&http.Client{Timeout: 10 * time.Second}, int64(cfg.ImagePrefetchConcurrency))
	}

	srv := httpserver.New(httpserver.Deps{
		Config:     cfg,
		Sessions:   store.NewMemoryStore(),
		Library:    lib,
		KV:         records,
		DB:         sqlDB,
		Prefetcher: prefetch,
		Location:   loc,
	})

	hs := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = hs.Shutdown(shutdownCtx)
	}()

	log.Info().Str("port", cfg.Port).Strs("dimensions", lib.Names()).Str("kv", cfg.KVBackend).Msg("starting timeline server")
	if err := hs.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal().Err(err).Msg("server exited")
	}
	log.Info().Msg("server stopped")
}

// openKV picks the per-player records backend named by KV_BACKEND.
func openKV(ctx context.Context, cfg config.Config, sqlDB *sql.DB) (kv.Store, func(), error) {
	switch cfg.KVBackend {
	case "memory":
		return kv.NewMemory(), func() {}, nil
	case "redis":
		rdb, err := kv.DialRedis(ctx, cfg.RedisURL)
		if err != nil {
			return nil, nil, err
		}
		return kv.NewRedis(rdb, "timeline:"), func() { _ = rdb.Close() }, nil
	default:
		return kv.NewSQLite(sqlDB), func() {}, nil
	}
}
