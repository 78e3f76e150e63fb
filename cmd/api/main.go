package main

import (
	"net/http"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/Afeez-Ola/flowplay/internal/adapters"
	"github.com/Afeez-Ola/flowplay/internal/adapters/applemusic"
	handler "github.com/Afeez-Ola/flowplay/internal/adapters/http"
	"github.com/Afeez-Ola/flowplay/internal/adapters/spotify"
	"github.com/Afeez-Ola/flowplay/internal/adapters/youtube"
	"github.com/Afeez-Ola/flowplay/internal/app"
	"github.com/Afeez-Ola/flowplay/internal/auth"
	"github.com/Afeez-Ola/flowplay/internal/config"

	_ "github.com/Afeez-Ola/flowplay/docs"
)

// @title			FlowPlay Conversion API
// @version		1.0
// @description	Converts a playlist from one streaming provider to another by matching
// @description	each source track against the destination catalog (ISRC first, free-text
// @description	fallback) and, where supported, creating the playlist in the user's account.

// @contact.name	FlowPlay
// @license.name	MIT

// @host		localhost:8080
// @BasePath	/
func main() {
	cfg := config.Load()

	logger := log.NewWithOptions(os.Stderr, log.Options{ReportTimestamp: true})
	if level, err := log.ParseLevel(cfg.LogLevel); err == nil {
		logger.SetLevel(level)
	}

	httpClient := &http.Client{Timeout: 30 * time.Second}

	// Destination matcher/materializer pairs
	registry := adapters.NewDestinationRegistry()
	registry.Register(adapters.Destination{
		Matcher: applemusic.NewMatcher(httpClient, ""),
	})
	registry.Register(adapters.Destination{
		Matcher:      youtube.NewMatcher(httpClient, ""),
		Materializer: youtube.NewMaterializer(httpClient, "", logger),
		RequiresAuth: true,
	})

	source := spotify.NewLibrary(httpClient, "")
	service := app.NewService(source, registry, cfg.MatchWorkers, cfg.SearchesPerSecond, logger)

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(handler.RequestID(), handler.AccessLog(logger), handler.Recovery(logger))

	h := handler.NewHandler(service, logger)
	h.RegisterRoutes(r)

	authHandler := auth.NewHandler(cfg, logger)
	authHandler.RegisterRoutes(r)

	// Swagger UI
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	addr := ":" + cfg.Port
	logger.Info("starting FlowPlay conversion API",
		"addr", addr,
		"workers", cfg.MatchWorkers,
		"destinations", registry.Available())

	if err := r.Run(addr); err != nil {
		logger.Fatal("failed to start server", "err", err)
	}
}
