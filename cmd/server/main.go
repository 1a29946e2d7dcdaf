package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/ElBenerDev/asistenteAltamirano/config"
	"github.com/ElBenerDev/asistenteAltamirano/internal/api"
	"github.com/ElBenerDev/asistenteAltamirano/internal/chat"
	"github.com/ElBenerDev/asistenteAltamirano/internal/listing"
	"github.com/ElBenerDev/asistenteAltamirano/internal/logging"
	"github.com/ElBenerDev/asistenteAltamirano/internal/render"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		logrus.WithError(err).Fatal("Failed to load configuration")
	}

	logger := logging.New(cfg.LogLevel, cfg.LogFormat)
	logger.WithFields(logrus.Fields{
		"chat_endpoint": cfg.Chat.Endpoint,
		"chat_timeout":  cfg.Chat.Timeout.String(),
		"base_origin":   cfg.Listings.BaseOrigin,
	}).Info("Configuration loaded")

	client := chat.NewClient(cfg.Chat.Endpoint, cfg.Chat.Timeout, logger)
	extractor := listing.NewExtractor(cfg.Listings.BaseOrigin, logger)
	renderer := render.NewRenderer(cfg.Listings.PlaceholderImage, logger)
	handler := api.NewHandler(client, extractor, renderer, logger)

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	api.SetupRoutes(router, handler, cfg.Server.AllowedOrigins)

	server := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Infof("Starting server on port %s", cfg.Server.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.WithError(err).Fatal("Server failed to start")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Chat.Timeout+5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.WithError(err).Error("Server forced to shut down")
	}
}
