// The proxy binary runs the payment-initiation endpoint on its own:
// the one piece the frontend talks to directly, deployed separately
// from the main application like the serverless function it replaces.
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

	"github.com/labstack/echo/v5"

	"groovava/config"
	"groovava/internal/paystack"
	"groovava/proxy"
	"groovava/security"
	"groovava/utils"
)

func main() {
	cfg := config.LoadConfig()

	gateway := paystack.NewClient(&paystack.Config{
		BaseURL:   cfg.PaystackBaseURL,
		SecretKey: cfg.PaystackSecretKey,
	})

	e := echo.New()

	// PROXY_RATE_LIMIT=0 runs without Redis.
	var middlewares []echo.MiddlewareFunc
	if cfg.ProxyRateLimit > 0 {
		redisClient := utils.NewRedisClient(cfg.RedisURL, cfg.RedisPassword, cfg.RedisDB)
		limiter := security.NewRateLimiter(redisClient)
		middlewares = append(middlewares, limiter.PaymentRateLimit(cfg.ProxyRateLimit))
	}

	proxy.New(gateway).Routes(e, middlewares...)

	server := &http.Server{
		Addr:    ":" + cfg.ProxyPort,
		Handler: e,
	}

	go func() {
		slog.Info("payment proxy listening", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("payment proxy stopped: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("payment proxy shutdown: %v", err)
	}
	slog.Info("payment proxy stopped")
}
