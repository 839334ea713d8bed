package main

import (
	"context"
	"flag"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"gopkg.in/natefinch/lumberjack.v2"

	"skydeck/api"
	"skydeck/config"
	"skydeck/handlers"
	"skydeck/services/apod"
	"skydeck/services/solar"
	"skydeck/utils"
)

func main() {
	configPath := flag.String("config", "settings.json", "path to the settings file")
	listen := flag.String("listen", "", "listen address override (host:port)")
	flag.Parse()

	manager := config.NewManager(*configPath)
	settings, err := manager.Load()
	if err != nil {
		log.Fatalf("[main] failed to load settings from %s: %v", *configPath, err)
	}

	setupLogging(settings.Log)

	log.Printf("[main] skydeck %s starting", handlers.ServerVersion())
	log.Printf("[main] settings file: %s", manager.Path())

	if settings.NASA.EffectiveAPIKey() == "DEMO_KEY" {
		log.Printf("[main] no NASA API key configured, falling back to DEMO_KEY (tight upstream quota)")
	}

	classifier := solar.NewClassifier(settings.Solar.ExtraExcludeDates)
	apodService := apod.NewService(
		settings.NASA.EffectiveAPIKey(),
		settings.NASA.BaseURL,
		settings.NASA.CacheTTL(),
		settings.NASA.FetchTimeout(),
		classifier,
	)

	apodHandler := handlers.NewAPODHandler(apodService)
	solarMapHandler := handlers.NewSolarMapHandler()
	settingsHandler := handlers.NewSettingsHandler(manager)
	settingsHandler.SetAPODService(apodService)
	settingsHandler.SetClassifier(classifier)
	versionHandler := handlers.NewVersionHandler()

	limiter := api.NewIPRateLimiter(settings.RateLimit.PerMinute, settings.RateLimit.Burst)

	router := utils.NewRouter()
	router.Use(api.RequestIDMiddleware())
	router.Use(api.AccessLogMiddleware())

	// Every GET route also matches OPTIONS: mux skips Use middleware on
	// method-mismatched requests, so preflights must match a route to reach
	// the CORS handler.
	router.HandleFunc("/api/apod", api.RateLimitHandlerFunc(limiter, apodHandler.GetAPOD)).Methods(http.MethodGet, http.MethodOptions)
	router.HandleFunc("/api/events", apodHandler.GetEvents).Methods(http.MethodGet, http.MethodOptions)
	router.HandleFunc("/api/solarmap", solarMapHandler.GetSolarMap).Methods(http.MethodGet, http.MethodOptions)
	router.HandleFunc("/api/settings", settingsHandler.GetSettings).Methods(http.MethodGet, http.MethodOptions)
	router.HandleFunc("/api/settings", settingsHandler.PutSettings).Methods(http.MethodPut)
	router.HandleFunc("/api/exclusions", settingsHandler.GetExclusions).Methods(http.MethodGet, http.MethodOptions)
	router.HandleFunc("/api/exclusions", settingsHandler.PutExclusions).Methods(http.MethodPut)
	router.HandleFunc("/api/version", versionHandler.GetVersion).Methods(http.MethodGet, http.MethodOptions)

	addr := settings.Server.Addr()
	if *listen != "" {
		addr = *listen
	}

	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("[main] listening on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("[main] server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Printf("[main] shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("[main] shutdown error: %v", err)
	}
}

// setupLogging mirrors log output to a rotating file when one is configured.
func setupLogging(cfg config.LogSettings) {
	if cfg.File == "" {
		return
	}
	log.SetOutput(io.MultiWriter(os.Stderr, &lumberjack.Logger{
		Filename:   cfg.File,
		MaxSize:    cfg.MaxSizeMB,
		MaxBackups: cfg.MaxBackups,
		MaxAge:     28,
		Compress:   true,
	}))
}
