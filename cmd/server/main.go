package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"connectrpc.com/connect"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/mmynk/tabsplit/internal/auth"
	"github.com/mmynk/tabsplit/internal/config"
	"github.com/mmynk/tabsplit/internal/imagestore"
	"github.com/mmynk/tabsplit/internal/middleware"
	"github.com/mmynk/tabsplit/internal/notify"
	"github.com/mmynk/tabsplit/internal/parser"
	"github.com/mmynk/tabsplit/internal/ratelimit"
	"github.com/mmynk/tabsplit/internal/service"
	"github.com/mmynk/tabsplit/internal/storage/sqlstore"
	"github.com/mmynk/tabsplit/internal/twilio"
	"github.com/mmynk/tabsplit/internal/verify"
	"github.com/mmynk/tabsplit/pkg/api/apiconnect"
	"github.com/mmynk/tabsplit/pkg/logging"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}
	logging.Setup(cfg.LogLevel, cfg.IsProduction())
	logger := slog.Default()

	if err := run(cfg, logger); err != nil {
		logger.Error("Server failed", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := sqlstore.Open(ctx, sqlstore.Config{
		Driver:       cfg.Database.Driver,
		Path:         cfg.Database.Path,
		URL:          cfg.Database.URL,
		MaxOpenConns: cfg.Database.MaxOpenConns,
	})
	if err != nil {
		return err
	}
	defer store.Close()
	logger.Info("Storage initialized", "driver", cfg.Database.Driver)

	images, err := newImageStore(ctx, cfg.Images)
	if err != nil {
		return err
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	var twilioClient *twilio.Client
	if cfg.Twilio.Enabled() {
		twilioClient = twilio.NewClient(cfg.Twilio.AccountSID, cfg.Twilio.AuthToken)
	}

	var messenger notify.Messenger = notify.NewLogMessenger(logger)
	if twilioClient != nil {
		messenger = notify.NewTwilioMessenger(twilioClient, cfg.Twilio.FromNumber)
	}

	var verifier verify.Verifier
	switch cfg.Verification.Provider {
	case "twilio":
		verifier = verify.NewTwilioVerifier(twilioClient, cfg.Twilio.VerifyServiceSID)
	default:
		var sender verify.Sender
		if twilioClient != nil {
			sender = messenger
		}
		challenges := auth.NewChallengeManager(cfg.Verification.ChallengeSecret, cfg.Verification.CodeTTL())
		verifier = verify.NewLocalVerifier(challenges, sender, logger)
	}

	pool := notify.NewWorkerPool(cfg.WorkerPool, registry, logger)
	pool.Start()
	dispatcher := notify.NewDispatcher(pool, messenger, registry, logger)

	var limiter ratelimit.Limiter = ratelimit.Noop{}
	var redisLimiter *ratelimit.RedisLimiter
	if cfg.Redis.Address != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Address,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer rdb.Close()
		redisLimiter = ratelimit.NewRedisLimiter(rdb)
		limiter = redisLimiter
	}

	var receiptParser parser.Parser = parser.Disabled{}
	if cfg.Parser.Provider == "openai" {
		timeout := time.Duration(cfg.Parser.TimeoutSeconds) * time.Second
		receiptParser = parser.NewOpenAI(cfg.Parser.APIKey, cfg.Parser.Model, cfg.Parser.BaseURL, timeout)
	}

	svc := service.NewBillService(service.Deps{
		Store:    store,
		Images:   images,
		Parser:   receiptParser,
		Verifier: verifier,
		Notifier: dispatcher,
		Limiter:  limiter,
		Limits: service.Limits{
			Join: ratelimit.Rule{
				Limit:  cfg.RateLimit.Joins,
				Window: time.Duration(cfg.RateLimit.JoinWindowSeconds) * time.Second,
			},
			Verify: ratelimit.Rule{
				Limit:  cfg.RateLimit.VerificationStarts,
				Window: time.Duration(cfg.RateLimit.VerificationWindowSeconds) * time.Second,
			},
			Check: ratelimit.Rule{
				Limit:  cfg.RateLimit.VerificationChecks,
				Window: time.Duration(cfg.RateLimit.VerificationCheckWindowSeconds) * time.Second,
			},
		},
		MaxUploadBytes: int(cfg.Server.MaxUploadBytes),
		Logger:         logger,
	})

	rpcMetrics := middleware.NewRPCMetrics(registry)
	// Images travel base64 encoded inside JSON.
	readMax := int(cfg.Server.MaxUploadBytes)*4/3 + 64<<10

	mux := http.NewServeMux()
	billPath, billHandler := apiconnect.NewBillServiceHandler(svc,
		connect.WithInterceptors(
			middleware.LoggingInterceptor(logger),
			rpcMetrics.Interceptor(),
			middleware.RequireToken(auth.NewAuthority(store), middleware.DefaultPolicy()),
		),
		connect.WithReadMaxBytes(readMax),
	)
	mux.Handle(billPath, billHandler)
	mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		if err := store.Ping(r.Context()); err != nil {
			http.Error(w, "database unavailable", http.StatusServiceUnavailable)
			return
		}
		if redisLimiter != nil {
			if err := redisLimiter.Ping(r.Context()); err != nil {
				http.Error(w, "redis unavailable", http.StatusServiceUnavailable)
				return
			}
		}
		w.Write([]byte("ok"))
	})

	if cfg.Server.StaticPath != "" {
		staticDir, err := filepath.Abs(cfg.Server.StaticPath)
		if err != nil {
			return err
		}
		logger.Info("Serving static files", "path", staticDir)
		mux.Handle("/", staticHandler(staticDir))
	}

	handler := middleware.RequestLogger(logger, middleware.CORS(cfg.Server.AllowedOrigins, mux))

	// h2c serves HTTP/2 without TLS for Connect clients.
	server := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           h2c.NewHandler(handler, &http2.Server{}),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Connect server starting", "address", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}
	logger.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.WorkerPool.ShutdownTimeoutSeconds)*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Warn("HTTP server shutdown incomplete", "error", err)
	}
	if err := pool.Shutdown(shutdownCtx); err != nil {
		logger.Warn("Message queue not drained", "error", err)
	}
	return nil
}

func newImageStore(ctx context.Context, cfg config.ImageConfig) (imagestore.Store, error) {
	if cfg.Backend == "s3" {
		return imagestore.NewS3(ctx, imagestore.S3Config{
			Bucket:          cfg.Bucket,
			Region:          cfg.Region,
			Endpoint:        cfg.Endpoint,
			AccessKeyID:     cfg.AccessKeyID,
			SecretAccessKey: cfg.SecretAccessKey,
		})
	}
	return imagestore.NewLocal(cfg.Dir)
}

// staticHandler serves the frontend, falling back to index.html for
// unknown paths.
func staticHandler(staticDir string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasPrefix(r.URL.Path, "/"+apiconnect.BillServiceName+"/") {
			http.NotFound(w, r)
			return
		}

		urlPath := r.URL.Path
		if urlPath == "/" {
			urlPath = "/index.html"
		}
		filePath := filepath.Join(staticDir, filepath.Clean(urlPath))
		if _, err := os.Stat(filePath); os.IsNotExist(err) {
			http.ServeFile(w, r, filepath.Join(staticDir, "index.html"))
			return
		}
		http.ServeFile(w, r, filePath)
	})
}
