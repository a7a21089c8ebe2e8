package main

import (
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/p2pdesk/orders-dashboard/internal/httpapi"
	"github.com/p2pdesk/orders-dashboard/pkg/auth"
	"github.com/p2pdesk/orders-dashboard/pkg/batch"
	"github.com/p2pdesk/orders-dashboard/pkg/client"
	"github.com/p2pdesk/orders-dashboard/pkg/config"
	"github.com/p2pdesk/orders-dashboard/pkg/detailcache"
	"github.com/p2pdesk/orders-dashboard/pkg/listcache"
	"github.com/p2pdesk/orders-dashboard/pkg/logging"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logger := logging.Setup(logging.Config{
		Level:  logging.LogLevel(cfg.Log.Level),
		Pretty: cfg.Log.Pretty,
	})

	tokens := auth.NewStore(cfg.API.Token)
	if cfg.API.Token == "" {
		logger.Warn().Msg("No TRADE_API_TOKEN set; order operations will fail until a token is provided")
	}

	tradeClient, err := client.New(client.Config{
		BaseURL: cfg.API.BaseURL,
		Tokens:  tokens,
		Timeout: cfg.API.Timeout,
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to create trade API client")
	}

	detailCache := detailcache.New(detailcache.Config{MaxEntries: cfg.Caches.DetailMaxEntries})
	listCache := listcache.New(cfg.Caches.ListSize, cfg.Caches.ListTTL)

	orchestrator := batch.New(tradeClient, detailCache, tokens, batch.Config{
		ChunkSize: cfg.Batch.ChunkSize,
		Pace:      cfg.Batch.Pace,
	})

	server := httpapi.New(tradeClient, orchestrator, listCache, logging.NewLogger("httpapi"))

	logger.Info().
		Str("addr", cfg.HTTPAddr).
		Str("trade_api", cfg.API.BaseURL).
		Int("chunk_size", cfg.Batch.ChunkSize).
		Dur("chunk_pace", cfg.Batch.Pace).
		Msg("Starting orders dashboard")

	if err := http.ListenAndServe(cfg.HTTPAddr, server); err != nil {
		logger.Fatal().Err(err).Msg("Server failed")
	}
}
