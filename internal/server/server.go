package server

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	appconfig "github.com/promptflow/promptflow/config"
	"github.com/promptflow/promptflow/internal/cache"
	"github.com/promptflow/promptflow/internal/store"
	"github.com/promptflow/promptflow/internal/workflow"
	"github.com/promptflow/promptflow/provider"
	"github.com/promptflow/promptflow/sources"
)

// Run wires the service together and starts the HTTP API.
func Run(cfg *appconfig.Config, addr string) error {
	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())
	// Unified HTTP error handler with structured JSON and logging
	baseLogger := log.New(log.Writer(), "[HTTP] ", log.LstdFlags)
	e.HTTPErrorHandler = func(err error, c echo.Context) {
		code := http.StatusInternalServerError
		msg := err.Error()
		if he, ok := err.(*echo.HTTPError); ok {
			code = he.Code
			if he.Message != nil {
				msg = fmt.Sprint(he.Message)
			}
		}
		req := c.Request()
		baseLogger.Printf("%d %s %s from %s: %v", code, req.Method, req.URL.Path, c.RealIP(), err)
		if !c.Response().Committed {
			_ = c.JSON(code, map[string]interface{}{"error": msg})
		}
	}
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{"GET", "POST", "OPTIONS"},
		AllowHeaders: []string{"Content-Type"},
	}))

	e.GET("/healthz", func(c echo.Context) error { return c.String(200, "ok") })
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	ctx := context.Background()
	st, err := store.NewWithDSN(ctx, cfg.Storage.Postgres.DSN())
	if err != nil {
		return err
	}

	gen := provider.NewGenerator(cfg.Providers.OpenAI)

	// Provider cache is optional; a missing or unreachable redis only
	// disables caching.
	var respCache *cache.ResponseCache
	if cfg.Storage.Redis.Enabled() {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Storage.Redis.Addr(),
			Password: cfg.Storage.Redis.Password,
			DB:       cfg.Storage.Redis.DB,
		})
		if err := rdb.Ping(ctx).Err(); err != nil {
			baseLogger.Printf("redis unavailable, provider cache disabled: %v", err)
		} else {
			respCache = cache.New(rdb, cfg.Storage.Redis.TTL)
		}
	}

	var dispCache sources.Cache
	if respCache != nil {
		dispCache = respCache
	}
	disp := sources.NewDispatcher(cfg.Providers, dispCache)

	orchLogger := log.New(log.Writer(), "[WORKFLOW] ", log.LstdFlags)
	orch := workflow.NewOrchestrator(st, gen, disp, cfg.General.DefaultTimeout, orchLogger)

	wh := NewWorkflowHandler(orch, st)
	wh.Register(e.Group("/api"))

	addr = listenAddr(addr, cfg.General.Listen)
	log.Printf("listening on %s", addr)
	return e.Start(addr)
}

// listenAddr resolves the effective listen address: the flag wins over the
// configured value, a bare port number gets a leading colon, and host:port
// values pass through untouched.
func listenAddr(flagAddr, cfgListen string) string {
	addr := flagAddr
	if addr == "" {
		addr = cfgListen
	}
	if addr == "" {
		return ":10010"
	}
	if _, err := strconv.Atoi(addr); err == nil {
		return ":" + addr
	}
	return addr
}
