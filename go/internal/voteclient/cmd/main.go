package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/mcdev12/genrevote/go/internal/cache"
	"github.com/mcdev12/genrevote/go/internal/catalogue"
	"github.com/mcdev12/genrevote/go/internal/config"
	"github.com/mcdev12/genrevote/go/internal/feed"
	"github.com/mcdev12/genrevote/go/internal/render"
	"github.com/mcdev12/genrevote/go/internal/statusapi"
	"github.com/mcdev12/genrevote/go/internal/voteclient"
)

func main() {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Debug().Err(err).Msg("could not load .env file")
	}

	cfg := config.NewConfigFromEnv()

	// Setup logging
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	zerolog.SetGlobalLevel(cfg.Level())

	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}
	endpoint, _ := cfg.Endpoint()

	cat, err := catalogue.LoadOrDefault(cfg.CatalogueFile)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load catalogue")
	}

	store, err := cache.Open(cfg.CacheBackend, cfg.CachePath)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open tally cache")
	}
	defer store.Close()

	log.Info().
		Str("endpoint", endpoint).
		Int("options", cat.Len()).
		Str("cache", cfg.CacheBackend).
		Msg("starting genre vote client")

	// Renderers: terminal table, plus the NATS feed when configured
	renderers := render.Multi{render.NewTerminal(os.Stdout)}
	if cfg.NATSURL != "" {
		feedCfg := feed.DefaultConfig()
		feedCfg.URL = cfg.NATSURL
		feedCfg.Subject = cfg.NATSSubject
		publisher, err := feed.Connect(feedCfg)
		if err != nil {
			log.Error().Err(err).Msg("tally feed disabled")
		} else {
			defer publisher.Close()
			renderers = append(renderers, publisher)
		}
	}

	jar := voteclient.NewCookieJar()
	if cfg.VoterID != "" {
		if err := voteclient.SetVoterID(jar, endpoint, cfg.VoterID); err != nil {
			log.Fatal().Err(err).Msg("failed to set voter id")
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if cfg.FetchVoterID {
		id, err := voteclient.FetchVoterID(ctx, &http.Client{Jar: jar}, endpoint)
		if err != nil {
			log.Error().Err(err).Msg("could not obtain voter id")
		} else {
			log.Info().Str("voter_id", id).Msg("voter id obtained")
		}
	}

	clientCfg := voteclient.DefaultConfig(endpoint)
	clientCfg.Connection.PingInterval = time.Duration(cfg.PingInterval) * time.Second
	clientCfg.Connection.ReadTimeout = 2 * clientCfg.Connection.PingInterval

	client := voteclient.New(clientCfg, cat,
		voteclient.WithStore(store),
		voteclient.WithRenderer(renderers),
		voteclient.WithNotifier(render.NewNoticePrinter(os.Stdout)),
		voteclient.WithCookieJar(jar),
	)

	if err := client.LoadCached(ctx); err != nil {
		log.Warn().Err(err).Msg("could not load cached tally")
	}

	if err := client.Connect(ctx); err != nil {
		log.Error().Err(err).Msg("initial connection failed, use 'reconnect' to retry")
	}

	// Optional local status API
	var server *http.Server
	if cfg.StatusAddr != "" {
		server = &http.Server{
			Addr:         cfg.StatusAddr,
			Handler:      statusapi.NewServer(client),
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  120 * time.Second,
		}
		go func() {
			log.Info().Str("addr", server.Addr).Msg("status API starting")
			if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Error().Err(err).Msg("status API failed")
			}
		}()
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		newPrompt(client, os.Stdin, os.Stdout).run(ctx)
	}()

	// Wait for interrupt signal or the prompt to quit
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	select {
	case sig := <-sigChan:
		log.Info().Str("signal", sig.String()).Msg("received shutdown signal")
	case <-done:
	}

	// Graceful shutdown
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if server != nil {
		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("status API shutdown failed")
		}
	}

	cancel()

	if err := client.Close(); err != nil {
		log.Error().Err(err).Msg("client close failed")
	}

	log.Info().Msg("genre vote client shutdown complete")
}
