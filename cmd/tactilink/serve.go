package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/cfoust/tactilink/pkg/cache"
	"github.com/cfoust/tactilink/pkg/config"
	"github.com/cfoust/tactilink/pkg/server/ingress"
	"github.com/cfoust/tactilink/pkg/server/service"

	"github.com/go-redis/redis/v9"
	"github.com/rs/zerolog/log"
)

// newStore builds the render cache described by settings. A nil store
// disables caching.
func newStore(ctx context.Context, settings config.CacheSettings) (cache.Store, error) {
	switch settings.Kind {
	case config.CacheKindNone:
		return nil, nil
	case config.CacheKindMemory:
		return cache.NewMemoryStore(settings.MaxEntries), nil
	case config.CacheKindFS:
		err := os.MkdirAll(settings.Directory, 0755)
		if err != nil {
			return nil, fmt.Errorf("failed to make cache dir %s: %w", settings.Directory, err)
		}
		return cache.FSStore(settings.Directory), nil
	case config.CacheKindRedis:
		client := redis.NewClient(&redis.Options{
			Addr: settings.Redis.Address,
		})

		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		if err := client.Ping(pingCtx).Err(); err != nil {
			return nil, fmt.Errorf("could not reach redis at %s: %w", settings.Redis.Address, err)
		}

		ttl := time.Duration(settings.Redis.TTL) * time.Second
		return cache.NewRedisStore(client, ttl), nil
	}

	return nil, fmt.Errorf("unknown cache kind %q", settings.Kind)
}

func serve(configs []string) error {
	settings, err := config.Process(configs)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	store, err := newStore(ctx, settings.Cache)
	if err != nil {
		return err
	}
	log.Info().Str("kind", string(settings.Cache.Kind)).Msg("render cache ready")

	svc := service.NewService(ctx, *settings, store)
	svc.Start()

	live := ingress.NewLiveIngress(svc, *settings)
	svc.SetLive(live)

	server := &http.Server{
		Addr:    fmt.Sprintf("0.0.0.0:%d", settings.Server.Port),
		Handler: SkipCache(svc),
	}

	errc := make(chan error, 1)
	go func() {
		log.Info().Int("port", settings.Server.Port).Msg("listening")
		errc <- server.ListenAndServe()
	}()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, os.Interrupt)

	var serveErr error
	select {
	case err := <-errc:
		if !errors.Is(err, http.ErrServerClosed) {
			serveErr = fmt.Errorf("failed to serve: %w", err)
		}
	case sig := <-sigs:
		log.Info().Msgf("terminating: %v", sig)
	}

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Warn().Err(err).Msg("http server did not shut down cleanly")
	}

	svc.Shutdown()
	return serveErr
}
