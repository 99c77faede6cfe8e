package main

import (
	"log"
	"log/slog"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
	"github.com/pocketbase/pocketbase/plugins/migratecmd"

	"groovava/config"
	"groovava/handlers"
	"groovava/internal/paystack"
	_ "groovava/migrations"
	"groovava/monitoring"
	"groovava/services"
	"groovava/utils"
)

func main() {
	cfg := config.LoadConfig()

	app := pocketbase.New()

	migratecmd.MustRegister(app, app.RootCmd, migratecmd.Config{
		Automigrate: cfg.Environment == "development",
	})

	redisClient := utils.NewRedisClient(cfg.RedisURL, cfg.RedisPassword, cfg.RedisDB)

	gateway := paystack.NewClient(&paystack.Config{
		BaseURL:   cfg.PaystackBaseURL,
		SecretKey: cfg.PaystackSecretKey,
	})

	var notifier services.Notifier
	if cfg.PubNubPublishKey != "" && cfg.PubNubSubscribeKey != "" {
		notifier = services.NewPubNubNotifier(&services.PubNubConfig{
			PublishKey:   cfg.PubNubPublishKey,
			SubscribeKey: cfg.PubNubSubscribeKey,
			SecretKey:    cfg.PubNubSecretKey,
			UUID:         cfg.PubNubUUID,
		})
	} else {
		slog.Warn("pubnub keys not configured, outcome notifications disabled")
	}

	attendanceService := services.NewAttendanceService(app)
	checkoutService := services.NewCheckoutService(gateway, redisClient, notifier, &services.CheckoutConfig{
		CallbackURL:      cfg.CallbackURL,
		AttemptTTL:       cfg.PaymentAttemptTTL,
		VerifyOnCallback: cfg.VerifyOnCallback,
	})

	eventHandler := handlers.NewEventHandler(app)
	attendanceHandler := handlers.NewAttendanceHandler(attendanceService)
	checkoutHandler := handlers.NewCheckoutHandler(app, checkoutService)
	paymentHandler := handlers.NewPaymentHandler(checkoutService)

	if cfg.EnableMetrics {
		monitoring.Serve(":" + cfg.MetricsPort)
	}

	app.OnServe().BindFunc(func(se *core.ServeEvent) error {
		se.Router.GET("/api/events", eventHandler.List)
		se.Router.POST("/api/events", eventHandler.Create)
		se.Router.GET("/api/events/{eventId}", eventHandler.Get)
		se.Router.PATCH("/api/events/{eventId}", eventHandler.Update)
		se.Router.DELETE("/api/events/{eventId}", eventHandler.Delete)

		se.Router.GET("/api/events/{eventId}/attendance", attendanceHandler.Status)
		se.Router.POST("/api/events/{eventId}/attendance/toggle", attendanceHandler.Toggle)

		se.Router.POST("/api/events/{eventId}/checkout", checkoutHandler.Initiate)
		se.Router.GET("/api/payments/callback", paymentHandler.Callback)
		se.Router.GET("/api/payments/{reference}/status", paymentHandler.Status)

		se.Router.GET("/health", func(e *core.RequestEvent) error {
			if err := utils.RedisHealthCheck(redisClient); err != nil {
				return e.JSON(503, map[string]string{"status": "degraded", "redis": err.Error()})
			}
			return e.JSON(200, map[string]string{"status": "ok"})
		})

		return se.Next()
	})

	slog.Info("starting groovava server", "environment", cfg.Environment)
	if err := app.Start(); err != nil {
		log.Fatal(err)
	}
}
