package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.uber.org/zap"

	"github.com/medeiros-dev/notify-gateway/configs"
	"github.com/medeiros-dev/notify-gateway/internal/infrastructure/directory/redisdir"
	smtpmail "github.com/medeiros-dev/notify-gateway/internal/infrastructure/mail/smtp"
	"github.com/medeiros-dev/notify-gateway/internal/infrastructure/push/fcm"
	"github.com/medeiros-dev/notify-gateway/internal/infrastructure/social/postgres"
	"github.com/medeiros-dev/notify-gateway/internal/infrastructure/store/mongostore"
	"github.com/medeiros-dev/notify-gateway/internal/observability/metrics"
	"github.com/medeiros-dev/notify-gateway/internal/observability/tracing"
	"github.com/medeiros-dev/notify-gateway/internal/usecases/notify"
	"github.com/medeiros-dev/notify-gateway/internal/usecases/otp"
	"github.com/medeiros-dev/notify-gateway/pkg/logger"
)

func main() {
	if err := logger.InitializeLogger(false); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer func() {
		if err := logger.Sync(); err != nil {
			log.Printf("Error syncing logger: %v", err)
		}
	}()

	logger.L().Info("Starting notify gateway...")

	cfg, err := configs.NewConfig(".")
	if err != nil {
		logger.L().Fatal("Failed to load configuration", zap.Error(err))
	}
	logger.L().Info("Configuration loaded",
		zap.String("serverAddress", cfg.ServerAddress),
		zap.String("metricsServerAddress", cfg.MetricsServerAddress),
		zap.String("mongoDatabase", cfg.MongoDatabase),
		zap.String("redisAddr", cfg.RedisAddr),
	)

	tracerShutdown, err := tracing.InitTracer(cfg)
	if err != nil {
		logger.L().Fatal("Failed to initialize tracer", zap.Error(err))
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tracerShutdown(shutdownCtx); err != nil {
			logger.L().Error("Error shutting down tracer provider", zap.Error(err))
		}
	}()

	ctx := context.Background()

	// --- External collaborators ---
	mongoClient, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		logger.L().Fatal("Failed to connect to MongoDB", zap.Error(err))
	}
	defer func() {
		if err := mongoClient.Disconnect(context.Background()); err != nil {
			logger.L().Error("Error disconnecting from MongoDB", zap.Error(err))
		}
	}()

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	defer redisClient.Close()

	pgPool, err := pgxpool.New(ctx, cfg.PostgresDSN)
	if err != nil {
		logger.L().Fatal("Failed to connect to Postgres", zap.Error(err))
	}
	defer pgPool.Close()

	pushSender, err := fcm.NewSender(ctx, cfg.FCMCredentialsFile, time.Duration(cfg.PushTTLSeconds)*time.Second)
	if err != nil {
		logger.L().Fatal("Failed to initialize FCM sender", zap.Error(err))
	}

	smtpMailer, err := smtpmail.NewMailer(configs.GetEmailConf())
	if err != nil {
		logger.L().Fatal("Failed to initialize SMTP mailer", zap.Error(err))
	}

	// --- Handlers ---
	notifyHandler := notify.NewNotify(
		redisdir.NewDirectory(redisClient),
		pushSender,
		mongostore.NewStore(mongoClient, cfg.MongoDatabase, cfg.MongoCollection),
		postgres.NewGraph(pgPool),
	)
	otpHandler := otp.NewOtp(smtpMailer, configs.GetOtpConf())

	// --- Metrics server ---
	metricsMux := http.NewServeMux()
	metricsMux.Handle("/metrics", metrics.MetricsHandler())
	metricsServer := &http.Server{
		Addr:    cfg.MetricsServerAddress,
		Handler: metricsMux,
	}
	go func() {
		logger.L().Info("Starting metrics server", zap.String("address", cfg.MetricsServerAddress))
		if err := metricsServer.ListenAndServe(); err != http.ErrServerClosed {
			logger.L().Error("Metrics server ListenAndServe failed", zap.Error(err))
		}
	}()

	// --- HTTP server ---
	srv := gin.Default()
	srv.Use(otelgin.Middleware(cfg.OtelServiceName))
	srv.Use(func(c *gin.Context) {
		endpoint := c.FullPath()
		if endpoint == "" {
			endpoint = c.Request.URL.Path
		}
		start := time.Now()
		c.Next()
		status := strconv.Itoa(c.Writer.Status())
		metrics.HttpRequestsTotal.WithLabelValues(endpoint, status).Inc()
		metrics.HttpRequestDuration.WithLabelValues(endpoint).Observe(time.Since(start).Seconds())
	})

	statusPayload := gin.H{"service": "notify-gateway", "status": "ok"}
	srv.GET("/", func(c *gin.Context) { c.JSON(http.StatusOK, statusPayload) })
	srv.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, statusPayload) })

	api := srv.Group("/api")
	{
		api.POST("/send-notification", notifyHandler.SendNotification)

		n := api.Group("/notify")
		{
			n.POST("/message", notifyHandler.Message)
			n.POST("/friend-request", notifyHandler.FriendRequest)
			n.POST("/friend-request-accepted", notifyHandler.FriendRequestAccepted)
			n.POST("/new-post", notifyHandler.NewPost)
			n.POST("/post-comment", notifyHandler.PostComment)
			n.POST("/post-reaction", notifyHandler.PostReaction)
			n.POST("/post-share", notifyHandler.PostShare)
			n.POST("/comment-reply", notifyHandler.CommentReply)
			n.POST("/comment-like", notifyHandler.CommentLike)
			n.POST("/group-invite", notifyHandler.GroupInvite)
			n.POST("/mention", notifyHandler.Mention)
		}

		o := api.Group("/otp")
		{
			o.POST("/send", otpHandler.Send)
			o.POST("/verify", otpHandler.Verify)
			o.POST("/resend", otpHandler.Resend)
		}
	}

	httpServer := &http.Server{
		Addr:    cfg.ServerAddress,
		Handler: srv,
	}
	go func() {
		logger.L().Info("Starting HTTP server", zap.String("address", cfg.ServerAddress))
		if err := httpServer.ListenAndServe(); err != http.ErrServerClosed {
			logger.L().Error("HTTP server ListenAndServe failed", zap.Error(err))
		}
	}()

	// --- Graceful shutdown ---
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigChan
	logger.L().Info("Received signal, shutting down gracefully...", zap.String("signal", sig.String()))

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.L().Error("HTTP server shutdown error", zap.Error(err))
	}
	if err := metricsServer.Shutdown(shutdownCtx); err != nil {
		logger.L().Error("Metrics server shutdown error", zap.Error(err))
	}

	logger.L().Info("Notify gateway shut down complete.")
}
