package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gofiber/fiber/v3"
	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"posterminal/internal/terminal/adapters/backend"
	"posterminal/internal/terminal/adapters/cache"
	"posterminal/internal/terminal/adapters/storage"
	"posterminal/internal/terminal/adapters/transport"
	"posterminal/internal/terminal/app/cart"
	httpServer "posterminal/internal/terminal/app/http"
	"posterminal/internal/terminal/app/services"
	"posterminal/internal/terminal/app/session"
	"posterminal/internal/terminal/app/ui"
	"posterminal/internal/terminal/config"
	portCache "posterminal/internal/terminal/ports/cache"
	portStorage "posterminal/internal/terminal/ports/storage"
	redisdb "posterminal/pkg/db/redis"
	"posterminal/pkg/logger"
	"posterminal/pkg/shutdown"
)

// Константы для переменных окружения.
const (
	EnvLoggerMode  = "TERMINAL_LOGGER_MODE"
	EnvLoggerLevel = "TERMINAL_LOGGER_LEVEL"
)

// Константы для сообщений об ошибках.
const (
	ErrInitLogger           = "failed to initialize logger"
	ErrSyncLogger           = "failed to sync logger"
	ErrLoadConfig           = "failed to load configuration"
	ErrInitLoggerWithConfig = "failed to initialize logger with configuration settings"
	ErrCreateRedisClient    = "failed to create Redis client"
	ErrStartHTTPServer      = "failed to start HTTP server"
)

// Константы для игнорируемых ошибок.
const (
	ErrSyncStderr = "sync /dev/stderr: invalid argument"
	ErrSyncStdout = "sync /dev/stdout: invalid argument"
)

// Константы для сообщений сервиса.
const (
	LogServiceStarted      = "terminal agent started"
	LogServiceShutdownDone = "terminal agent shutdown complete"
	LogStoppingHTTP        = "stopping HTTP server"
	LogInitStorage         = "initializing storage"
	LogInitSession         = "initializing session"
	LogInitServices        = "initializing services"
	LogInitHTTPServer      = "initializing HTTP server"
	LogStartingHTTP        = "starting HTTP server"
)

// stores - хранилища, выбранные драйвером из конфигурации.
type stores struct {
	credentials portStorage.CredentialStore
	preferences portStorage.PreferenceStore
	cache       portCache.Cache
	redis       *goredis.Client
}

func openStores(ctx context.Context, cfg *config.Config) (*stores, error) {
	if !cfg.Storage.UsesRedis() {
		memory := storage.NewMemoryStore()
		return &stores{
			credentials: memory,
			preferences: memory,
			cache:       cache.NewMemoryCache(cfg.Cache.ProductTTL),
		}, nil
	}

	client, err := redisdb.NewClient(ctx, cfg.Redis.ClientConfig())
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrCreateRedisClient, err)
	}

	store := storage.NewRedisStore(client, cfg.Storage.KeyPrefix)
	return &stores{
		credentials: store,
		preferences: store,
		cache:       cache.NewRedisCache(client, cfg.Storage.KeyPrefix+"cache:", cfg.Cache.ProductTTL),
		redis:       client,
	}, nil
}

func main() {
	env := logger.Development
	if strings.ToLower(os.Getenv(EnvLoggerMode)) == "production" {
		env = logger.Production
	}

	log, err := logger.NewLogger(env, os.Getenv(EnvLoggerLevel))
	if err != nil {
		panic(ErrInitLogger + ": " + err.Error())
	}

	logger.SetGlobalLogger(log)

	ctx := logger.NewRequestIDContext(context.Background(), "")

	var exitCode int

	func() {
		defer func() {
			if err := log.Sync(); err != nil {
				errMsg := err.Error()
				if strings.Contains(errMsg, ErrSyncStderr) || strings.Contains(errMsg, ErrSyncStdout) {
					return
				}
				if _, writeErr := fmt.Fprintf(os.Stderr, "%s: %v\n", ErrSyncLogger, err); writeErr != nil {
					panic(writeErr)
				}
			}
		}()

		cfg, err := config.Load(ctx)
		if err != nil {
			log.Error(ctx, ErrLoadConfig, zap.Error(err))
			exitCode = 1
			return
		}

		finalLogger, err := logger.NewLogger(cfg.Logging.GetEnvironment(), cfg.Logging.Level)
		if err != nil {
			log.Error(ctx, ErrInitLoggerWithConfig, zap.Error(err))
			exitCode = 1
			return
		}
		logger.SetGlobalLogger(finalLogger)
		log = finalLogger

		log.Info(ctx, LogServiceStarted,
			zap.String("environment", string(cfg.Logging.GetEnvironment())),
			zap.String("log_level", cfg.Logging.Level),
			zap.String("startup_time", time.Now().Format(time.RFC3339)))

		log.Info(ctx, LogInitStorage, zap.String("driver", cfg.Storage.Driver))
		st, err := openStores(ctx, cfg)
		if err != nil {
			log.Error(ctx, ErrCreateRedisClient, zap.Error(err))
			exitCode = 1
			return
		}

		// Транспорт назначается после создания координатора: фильтр 401
		// обновляет токены через него.
		log.Info(ctx, LogInitSession)
		httpClient := &http.Client{Timeout: cfg.Backend.RequestTimeout}
		api := backend.NewClient(httpClient, cfg.Backend.BaseURL)

		navigator := ui.NewNavigator()
		coordinator := session.NewCoordinator(api, st.credentials, navigator, session.Options{
			RefreshTimeout:  cfg.Backend.RefreshTimeout,
			ValidateOnLogin: cfg.Backend.ValidateOnLogin,
		})
		httpClient.Transport = transport.NewChain(nil, st.credentials, coordinator)

		log.Info(ctx, LogInitServices)
		sellerCart := cart.New()
		cart.ClearOnLogout(sellerCart, coordinator)

		toaster := ui.NewToaster(cfg.UI.ToastDuration)
		products := services.NewProductService(api, st.cache, cfg.Cache.ProductTTL, cfg.UI.PageLimit)
		inventory := services.NewInventoryService(api, st.cache, cfg.UI.PageLimit)
		sales := services.NewSalesService(api, sellerCart, st.cache)

		log.Info(ctx, LogInitHTTPServer)
		app := httpServer.NewApp(fiber.Config{
			ReadTimeout:  cfg.HTTP.ReadTimeout,
			WriteTimeout: cfg.HTTP.WriteTimeout,
		})

		httpServer.SetupRouter(app, httpServer.Services{
			Session:       coordinator,
			Cart:          sellerCart,
			Products:      products,
			Users:         services.NewUserService(api, cfg.UI.PageLimit),
			Inventory:     inventory,
			Sales:         sales,
			Configuration: services.NewConfigurationService(api, st.cache, cfg.Cache.ConfigurationTTL),
			Dashboard:     services.NewDashboardService(sales, inventory),
			Notifier:      toaster,
			Theme:         ui.NewThemeManager(st.preferences, cfg.UI.DefaultTheme),
			Navigator:     navigator,
			Flows:         ui.NewAccountFlows(coordinator, toaster, navigator, cfg.UI.RedirectDelay),
			Guard:         ui.NewGuard(coordinator),
		})

		log.Info(ctx, LogStartingHTTP, zap.String("address", cfg.HTTP.GetAddress()))
		go func() {
			if err := app.Listen(cfg.HTTP.GetAddress()); err != nil {
				log.Error(ctx, ErrStartHTTPServer, zap.Error(err))
			}
		}()

		err = shutdown.Wait(ctx, cfg.Shutdown.GetTimeout(),
			shutdown.Named("http", func(ctx context.Context) error {
				log.Info(ctx, LogStoppingHTTP)
				return app.ShutdownWithContext(ctx)
			}),
			shutdown.Named("redis", func(ctx context.Context) error {
				if st.redis == nil {
					return nil
				}
				log.Info(ctx, "closing Redis connection")
				return st.redis.Close()
			}),
		)
		if err != nil {
			log.Warn(ctx, "shutdown finished with errors", zap.Error(err))
		}

		log.Info(ctx, LogServiceShutdownDone)
	}()

	if exitCode != 0 {
		os.Exit(exitCode)
	}
}
