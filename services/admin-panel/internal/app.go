package internal

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fluent/fluent-logger-golang/fluent"
	goredis "github.com/go-redis/redis/v8"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dendisuhubdy/mybalivillas/pkg/authtoken"
	fluentlogger "github.com/dendisuhubdy/mybalivillas/pkg/fluent_logger"
	"github.com/dendisuhubdy/mybalivillas/pkg/formvalidation"
	"github.com/dendisuhubdy/mybalivillas/pkg/listing"
	"github.com/dendisuhubdy/mybalivillas/pkg/logger"
	"github.com/dendisuhubdy/mybalivillas/pkg/postgres"
	"github.com/dendisuhubdy/mybalivillas/pkg/rabbitmq/rabbitmq_common"
	"github.com/dendisuhubdy/mybalivillas/pkg/redis"
	"github.com/dendisuhubdy/mybalivillas/pkg/session"
	"github.com/dendisuhubdy/mybalivillas/services/admin-panel/internal/adapters/admin_api_client"
	"github.com/dendisuhubdy/mybalivillas/services/admin-panel/internal/adapters/rest"
	"github.com/dendisuhubdy/mybalivillas/services/admin-panel/internal/configs"
	"github.com/dendisuhubdy/mybalivillas/services/admin-panel/internal/core/port"
	"github.com/dendisuhubdy/mybalivillas/services/admin-panel/internal/core/usecase"
)

// Представления таблиц без обращений дольше этого удаляются.
const tableViewIdle = 30 * time.Minute

type viewSweeper interface {
	SweepViews(idle time.Duration) int
}

type App struct {
	config    *configs.AppConfig
	apiServer *rest.Server

	sessions    *session.Manager
	broadcaster *session.RabbitBroadcaster
	rabbitConn  *rabbitmq_common.ConnectionManager
	redisClient *goredis.Client
	dbPool      *pgxpool.Pool
	tables      []viewSweeper

	fluentClient *fluent.Fluent
	logger       port.LoggerPort
}

func NewApp() (*App, error) {
	appConfig, err := configs.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("error loading application configuration: %w", err)
	}

	// --- 1. ИНИЦИАЛИЗАЦИЯ ЛОГГЕРОВ ---
	var activeLoggers []logger.LoggerPort

	stdoutLogger := logger.NewSlogAdapter(logger.SlogConfig{
		Level:    logger.ParseLevel(appConfig.StdoutLogger.Level),
		UseColor: true,
	})
	activeLoggers = append(activeLoggers, stdoutLogger)

	var fluentClient *fluent.Fluent
	if appConfig.FluentBit.Enabled {
		fluentClient, err = fluentlogger.NewClient(fluentlogger.Config{
			Host:      appConfig.FluentBit.Host,
			Port:      appConfig.FluentBit.Port,
			TagPrefix: appConfig.AppName,
			Async:     true,
		})
		if err != nil {
			stdoutLogger.Error("Failed to create fluentbit client", err, nil)
			return nil, fmt.Errorf("failed to create fluentbit client: %w", err)
		}

		fluentAdapter, err := logger.NewFluentLoggerAdapter(fluentClient, logger.ParseLevel(appConfig.FluentBit.Level))
		if err != nil {
			stdoutLogger.Error("Failed to create fluentbit adapter", err, nil)
			fluentClient.Close()
			return nil, err
		}
		activeLoggers = append(activeLoggers, fluentAdapter)
	}

	multiLogger, err := logger.NewMultiLoggerAdapter(activeLoggers...)
	if err != nil {
		return nil, fmt.Errorf("failed to create multi-logger: %w", err)
	}

	// --- 2. БАЗОВЫЙ ЛОГГЕР ПРИЛОЖЕНИЯ ---
	baseLogger := multiLogger.WithFields(port.Fields{"service_name": appConfig.AppName})
	appLogger := baseLogger.WithFields(port.Fields{"component": "app"})
	appLogger.Info("Logger system initialized", port.Fields{
		"active_loggers": len(activeLoggers), "fluent_enabled": appConfig.FluentBit.Enabled,
	})

	application := &App{
		config:       appConfig,
		fluentClient: fluentClient,
		logger:       appLogger,
	}

	// --- 3. ХРАНИЛИЩЕ СЕССИЙ ---
	backend, err := application.newSessionBackend(context.Background())
	if err != nil {
		application.closeResources()
		return nil, err
	}

	sessions, err := session.NewManager(session.ManagerConfig{
		Backend: backend,
		Keys:    session.AdminKeys,
		TTL:     appConfig.Session.TTL,
		Logger:  baseLogger,
	})
	if err != nil {
		application.closeResources()
		return nil, fmt.Errorf("failed to create session manager: %w", err)
	}
	application.sessions = sessions

	if appConfig.Session.RabbitURL != "" {
		rabbitLogger := rabbitmq_common.NewLoggerBridge(baseLogger.WithFields(port.Fields{"component": "rabbitmq"}))
		connManager, err := rabbitmq_common.NewConnectionManager(rabbitmq_common.Config{URL: appConfig.Session.RabbitURL}, rabbitLogger)
		if err != nil {
			appLogger.Error("Failed to connect to RabbitMQ", err, nil)
			application.closeResources()
			return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
		}
		application.rabbitConn = connManager

		broadcaster, err := session.NewRabbitBroadcaster(connManager, appConfig.Session.EventsExchange, sessions.Deliver, rabbitLogger)
		if err != nil {
			appLogger.Error("Failed to create session broadcaster", err, nil)
			application.closeResources()
			return nil, err
		}
		sessions.SetBroadcaster(broadcaster)
		application.broadcaster = broadcaster
		appLogger.Info("Session events are broadcast through RabbitMQ", port.Fields{"exchange": appConfig.Session.EventsExchange})
	}

	// --- 4. АДАПТЕРЫ И USE CASES ---
	apiClient := admin_api_client.NewAdminAPIClient(appConfig.ApiClient.BaseURL, appConfig.ApiClient.Timeout)
	validator := formvalidation.New()
	inspector := authtoken.NewInspector(appConfig.Session.JWTSecret)
	guard := usecase.NewSessionGuard(sessions, inspector, appConfig.Session.JWTSecret != "")
	onError := listing.ParseOnError(appConfig.Listing.OnError, listing.ShowError)

	properties, err := usecase.NewPropertiesUseCase(apiClient, guard, validator, onError, baseLogger)
	if err != nil {
		application.closeResources()
		return nil, err
	}
	users, err := usecase.NewUsersUseCase(apiClient, guard, validator, onError, baseLogger)
	if err != nil {
		application.closeResources()
		return nil, err
	}
	inquiries, err := usecase.NewInquiriesUseCase(apiClient, guard, validator, onError, baseLogger)
	if err != nil {
		application.closeResources()
		return nil, err
	}
	application.tables = []viewSweeper{properties, users, inquiries}
	guard.OnSessionEnd(properties.ForgetSession, users.ForgetSession, inquiries.ForgetSession)

	useCases := rest.UseCases{
		Login:          usecase.NewLoginUseCase(apiClient, sessions, validator),
		Logout:         usecase.NewLogoutUseCase(apiClient, sessions, properties.ForgetSession, users.ForgetSession, inquiries.ForgetSession),
		CurrentSession: usecase.NewCurrentSessionUseCase(guard),
		Dashboard:      usecase.NewDashboardUseCase(apiClient, guard),
		Properties:     properties,
		Users:          users,
		Inquiries:      inquiries,
	}
	appLogger.Info("All adapters and use cases initialized.", port.Fields{
		"admin_api_url": appConfig.ApiClient.BaseURL, "listing_on_error": string(onError), "per_page": appConfig.Listing.PerPage,
	})

	// --- 5. REST API ---
	handlers := rest.NewAdminHandler(useCases, sessions, appConfig.Listing.PerPage)
	application.apiServer = rest.NewServer(rest.ServerConfig{
		Port:           appConfig.Rest.PORT,
		AllowedOrigins: appConfig.Rest.AllowedOrigins,
		CookieName:     appConfig.Session.CookieName,
		CookieSecure:   appConfig.Session.CookieSecure,
		SessionTTL:     appConfig.Session.TTL,
	}, handlers, baseLogger)

	return application, nil
}

func (a *App) newSessionBackend(ctx context.Context) (session.Backend, error) {
	switch a.config.Session.Backend {
	case "redis":
		client, err := redis.NewClient(ctx, redis.Config{
			Addr:     a.config.Redis.Addr,
			Password: a.config.Redis.Password,
			DB:       a.config.Redis.DB,
		})
		if err != nil {
			a.logger.Error("Failed to connect to Redis", err, nil)
			return nil, fmt.Errorf("failed to connect to Redis: %w", err)
		}
		a.redisClient = client
		a.logger.Info("Sessions are stored in Redis", port.Fields{"addr": a.config.Redis.Addr})
		return session.NewRedisBackend(client, a.config.AppName+":session:"), nil
	case "postgres":
		pool, err := postgres.NewClient(ctx, postgres.Config{DatabaseURL: a.config.Database.URL})
		if err != nil {
			a.logger.Error("Failed to connect to PostgreSQL", err, nil)
			return nil, fmt.Errorf("failed to connect to PostgreSQL: %w", err)
		}
		a.dbPool = pool
		backend := session.NewPostgresBackend(pool, a.config.AppName)
		if err := backend.EnsureSchema(ctx); err != nil {
			a.logger.Error("Failed to prepare sessions table", err, nil)
			return nil, fmt.Errorf("failed to prepare sessions table: %w", err)
		}
		a.logger.Info("Sessions are stored in PostgreSQL", nil)
		return backend, nil
	default:
		a.logger.Info("Sessions are stored in memory", nil)
		return session.NewMemoryBackend(), nil
	}
}

func (a *App) Run() error {
	appCtx, cancelApp := context.WithCancel(context.Background())

	defer func() {
		a.logger.Info("Shutdown sequence initiated...", nil)

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if a.apiServer != nil {
			if err := a.apiServer.Stop(shutdownCtx); err != nil {
				a.logger.Error("Error during API server shutdown", err, nil)
			}
		}

		a.closeResources()
		a.logger.Info("Application shut down gracefully.", nil)

		if a.fluentClient != nil {
			if err := a.fluentClient.Close(); err != nil {
				// fluent уже может быть недоступен
				fmt.Printf("ERROR: Error closing fluent client: %v\n", err)
			}
		}
	}()

	a.logger.Info("Application is starting...", nil)

	componentErrors := make(chan error, 2)

	if a.broadcaster != nil {
		go func() {
			if err := a.broadcaster.Start(appCtx); err != nil && appCtx.Err() == nil {
				componentErrors <- fmt.Errorf("session broadcaster stopped: %w", err)
			}
		}()
	}

	go a.sweepTableViews(appCtx)

	go func() {
		a.logger.Info("Starting HTTP server...", port.Fields{"port": a.config.Rest.PORT})
		if err := a.apiServer.Start(); err != nil && err != http.ErrServerClosed {
			componentErrors <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	a.logger.Info("Application running. Waiting for signals or server error...", nil)
	select {
	case receivedSignal := <-quit:
		a.logger.Warn("Received OS signal, shutting down...", port.Fields{"signal": receivedSignal.String()})
	case err := <-componentErrors:
		a.logger.Error("Component failed, shutting down", err, nil)
	}

	cancelApp()
	return nil
}

func (a *App) sweepTableViews(ctx context.Context) {
	ticker := time.NewTicker(a.config.Session.SweepInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			removed := 0
			for _, t := range a.tables {
				removed += t.SweepViews(tableViewIdle)
			}
			if removed > 0 {
				a.logger.Debug("Idle table views removed", port.Fields{"count": removed})
			}
		}
	}
}

// closeResources закрывает всё, что успело открыться; безопасен при частичной инициализации.
func (a *App) closeResources() {
	if a.broadcaster != nil {
		if err := a.broadcaster.Close(); err != nil {
			a.logger.Error("Error closing session broadcaster", err, nil)
		}
		a.broadcaster = nil
	}
	if a.rabbitConn != nil {
		if err := a.rabbitConn.Close(); err != nil {
			a.logger.Error("Error closing RabbitMQ connection", err, nil)
		}
		a.rabbitConn = nil
	}
	if a.sessions != nil {
		a.sessions.Close()
		a.sessions = nil
	}
	if a.redisClient != nil {
		if err := a.redisClient.Close(); err != nil {
			a.logger.Error("Error closing Redis client", err, nil)
		}
		a.redisClient = nil
	}
	if a.dbPool != nil {
		a.dbPool.Close()
		a.logger.Info("PostgreSQL pool closed.", nil)
		a.dbPool = nil
	}
}
