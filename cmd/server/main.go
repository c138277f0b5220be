package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/arefin-dev/messwallet/internal/api"
	"github.com/arefin-dev/messwallet/internal/cache"
	"github.com/arefin-dev/messwallet/internal/config"
	"github.com/arefin-dev/messwallet/internal/db"
	"github.com/arefin-dev/messwallet/internal/observ"
	"github.com/arefin-dev/messwallet/internal/realtime"
	"github.com/arefin-dev/messwallet/internal/repository/postgres"
	"github.com/arefin-dev/messwallet/internal/service"
	"github.com/arefin-dev/messwallet/internal/storage"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger, err := observ.NewLogger(cfg.Env, cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	database, err := db.New(ctx, cfg.DatabaseURL, logger)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer database.Close()

	redisOpts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		return fmt.Errorf("parse redis url: %w", err)
	}
	rdb := redis.NewClient(redisOpts)
	defer rdb.Close()
	if err := rdb.Ping(ctx).Err(); err != nil {
		// The cache fails safe and the bus logs publish failures, so a
		// down Redis degrades the service instead of blocking startup.
		logger.Warn("redis unreachable at startup", zap.Error(err))
	}
	cacheClient := cache.New(rdb)

	blobs, err := storage.NewS3Store(ctx, storage.Options{
		Region:    cfg.S3Region,
		Endpoint:  cfg.S3Endpoint,
		PublicURL: cfg.PublicStorageURL,
	})
	if err != nil {
		return fmt.Errorf("create blob store: %w", err)
	}

	pool := database.Pool()
	accountRepo := postgres.NewAccountStore(pool)
	profileRepo := postgres.NewProfileStore(pool)
	roleRepo := postgres.NewRoleStore(pool)
	expenseRepo := postgres.NewExpenseStore(pool)
	categoryRepo := postgres.NewCategoryStore(pool)
	depositRepo := postgres.NewDepositStore(pool)
	mealRepo := postgres.NewMealStore(pool)
	budgetRepo := postgres.NewBudgetStore(pool)
	notificationRepo := postgres.NewNotificationStore(pool)
	chatRepo := postgres.NewChatStore(pool)
	maintenanceRepo := postgres.NewMaintenanceStore(pool)

	hub := realtime.NewHub(logger)
	go hub.Run(ctx)

	bus := realtime.NewBus(rdb, logger)
	go func() {
		if err := bus.Subscribe(ctx, hub); err != nil && !errors.Is(err, context.Canceled) {
			logger.Error("change feed subscriber stopped", zap.Error(err))
		}
	}()

	authSvc := service.NewAuthService(accountRepo, profileRepo, roleRepo,
		cfg.JWTSecret, cfg.FounderEmail, logger)
	notificationSvc := service.NewNotificationService(notificationRepo, profileRepo, logger)
	ledgerSvc := service.NewLedgerService(depositRepo, expenseRepo, profileRepo,
		budgetRepo, categoryRepo, notificationSvc, cacheClient, logger)
	memberSvc := service.NewMemberService(profileRepo, roleRepo, depositRepo,
		expenseRepo, mealRepo, notificationRepo, blobs, cfg.AvatarBucket, cacheClient, logger)
	mealSvc := service.NewMealService(mealRepo, profileRepo, logger)
	budgetSvc := service.NewBudgetService(budgetRepo, cacheClient)
	chatSvc := service.NewChatService(chatRepo, profileRepo, blobs,
		cfg.ChatImageBucket, bus, logger)
	adminSvc := service.NewAdminService(mealRepo, expenseRepo, depositRepo,
		budgetRepo, notificationRepo, maintenanceRepo, cacheClient, logger)

	router := api.NewRouter(api.Handlers{
		Auth:          api.NewAuthHandler(authSvc, logger),
		Members:       api.NewMemberHandler(memberSvc, logger),
		Ledger:        api.NewLedgerHandler(ledgerSvc, logger),
		Meals:         api.NewMealHandler(mealSvc, logger),
		Budgets:       api.NewBudgetHandler(budgetSvc, logger),
		Notifications: api.NewNotificationHandler(notificationSvc, logger),
		Chat:          api.NewChatHandler(chatSvc, logger),
		Admin:         api.NewAdminHandler(adminSvc, logger),
		WS:            api.NewWSHandler(hub, logger),
	}, database, cfg.JWTSecret)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("starting MessWallet",
			zap.String("port", cfg.Port),
			zap.String("env", cfg.Env),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
