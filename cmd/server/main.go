package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"spellchecker/internal/catalog"
	"spellchecker/internal/config"
	sc "spellchecker/internal/corrector"
	"spellchecker/internal/customdict"
	"spellchecker/internal/server"
)

func main() {
	cfg, err := config.Load(os.Getenv("SPELL_CONFIG"))
	if err != nil {
		log.Fatalf("config error: %v", err)
	}
	logger, err := cfg.Logger(os.Stderr)
	if err != nil {
		log.Fatalf("config error: %v", err)
	}
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	corrector := sc.NewSpellCorrector(cfg.Options(logger)...)
	if err := corrector.SetDictionary(cfg.Spell.Language); err != nil {
		// The server still answers; every word passes until a dictionary is set.
		logger.Warn("starting without dictionary", "err", err)
	}

	var store server.Store
	if cfg.Redis.Addr != "" {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer client.Close()

		dict := customdict.NewWithPrefix(client, cfg.Redis.Prefix)
		if err := restore(ctx, dict, corrector); err != nil {
			log.Fatalf("init error: %v", err)
		}
		store = dict
	}

	paths := cfg.Spell.DictPaths
	if len(paths) == 0 {
		paths = catalog.DefaultSearchPaths()
	}
	srv := server.New(corrector, store, paths, logger)

	if cfg.Spell.Watch {
		for _, dir := range paths {
			err := catalog.Watch(ctx, dir, logger, func(lang string) {
				if err := srv.Reload(lang); err != nil {
					logger.Warn("dictionary reload failed", "lang", lang, "err", err)
				}
			})
			if err != nil {
				logger.Debug("not watching dictionary path", "path", dir, "err", err)
			}
		}
	}

	httpServer := &http.Server{Addr: cfg.HTTPAddr, Handler: srv.Handler()}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		httpServer.Shutdown(shutdownCtx)
	}()

	log.Printf("listening on %s", cfg.HTTPAddr)
	if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal(err)
	}
}

// restore replays the persisted custom words into the engine. Removals go
// last so that a word in both sets ends up removed.
func restore(ctx context.Context, dict *customdict.CustomDict, corrector *sc.SpellCorrector) error {
	snap, err := dict.All(ctx)
	if err != nil {
		return err
	}
	for _, w := range snap.Added {
		corrector.Add(w)
	}
	for _, w := range snap.Removed {
		corrector.Remove(w)
	}
	slog.Info("custom words restored", "added", len(snap.Added), "removed", len(snap.Removed))
	return nil
}
