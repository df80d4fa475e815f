package app

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"contrib.go.opencensus.io/integrations/ocsql"
	"github.com/redis/go-redis/v9"

	"github.com/salesflow/crm/config"
	"github.com/salesflow/crm/internal/database"
	"github.com/salesflow/crm/internal/domain"
	httpHandler "github.com/salesflow/crm/internal/http"
	"github.com/salesflow/crm/internal/http/middleware"
	"github.com/salesflow/crm/internal/migrations"
	"github.com/salesflow/crm/internal/repository"
	"github.com/salesflow/crm/internal/service"
	"github.com/salesflow/crm/internal/service/llm"
	"github.com/salesflow/crm/internal/service/mailbox"
	"github.com/salesflow/crm/pkg/cache"
	"github.com/salesflow/crm/pkg/dedup"
	"github.com/salesflow/crm/pkg/logger"
	"github.com/salesflow/crm/pkg/mailer"
	"github.com/salesflow/crm/pkg/metakocka"
	"github.com/salesflow/crm/pkg/mq"
	"github.com/salesflow/crm/pkg/ratelimiter"
	"github.com/salesflow/crm/pkg/tracing"
)

// Rate limit namespaces for the HTTP layer. Sign-in limits live in the user service.
const (
	rateLimitAI       = "ai"
	rateLimitSourcing = "sourcing"
)

// AppInterface defines the interface for the App
type AppInterface interface {
	Initialize() error
	Start() error
	Shutdown(ctx context.Context) error

	GetConfig() *config.Config
	GetLogger() logger.Logger
	GetMux() *http.ServeMux
	GetDB() *sql.DB
	GetMailer() mailer.Mailer

	GetUserRepository() domain.UserRepository
	GetOrganizationRepository() domain.OrganizationRepository
	GetContactRepository() domain.ContactRepository
	GetEmailRepository() domain.EmailRepository

	IsServerCreated() bool
	WaitForServerStart(ctx context.Context) bool

	InitDB() error
	InitMailer() error
	InitTracing() error
	InitRepositories() error
	InitServices() error
	InitHandlers() error

	SetShutdownTimeout(timeout time.Duration)
	GetActiveRequestCount() int64
	GetShutdownContext() context.Context
}

// publisher is the event sink plus its connection lifecycle.
type publisher interface {
	domain.EventPublisher
	Close() error
}

// App encapsulates the application dependencies and configuration
type App struct {
	config      *config.Config
	logger      logger.Logger
	db          *sql.DB
	mailer      mailer.Mailer
	redis       *redis.Client
	publisher   publisher
	rateLimiter *ratelimiter.RateLimiter

	// Repositories
	userRepo         domain.UserRepository
	settingRepo      domain.SettingRepository
	organizationRepo domain.OrganizationRepository
	contactRepo      domain.ContactRepository
	pipelineRepo     domain.PipelineRepository
	accountRepo      domain.EmailAccountRepository
	emailRepo        domain.EmailRepository
	syncJobRepo      domain.SyncJobRepository
	followupRepo     domain.FollowupRepository
	aiRepo           domain.AIRepository
	subscriptionRepo domain.SubscriptionRepository
	erpRepo          domain.ERPRepository
	supplierRepo     domain.SupplierRepository

	// Services
	authService         *service.AuthService
	userService         *service.UserService
	organizationService *service.OrganizationService
	contactService      *service.ContactService
	pipelineService     *service.PipelineService
	accountService      *service.EmailAccountService
	syncService         *service.EmailSyncService
	followupService     *service.FollowupService
	aiService           *service.AIService
	subscriptionService *service.SubscriptionService
	erpService          *service.ERPService
	supplierService     *service.SupplierService

	// Background work
	syncScheduler     *service.Scheduler
	followupScheduler *service.Scheduler

	// HTTP handlers
	mux    *http.ServeMux
	server *http.Server

	// Server synchronization
	serverMu      sync.RWMutex
	serverStarted chan struct{}

	// Graceful shutdown management
	shutdownCtx     context.Context
	shutdownCancel  context.CancelFunc
	activeRequests  int64
	requestWg       sync.WaitGroup
	shutdownTimeout time.Duration
}

// AppOption defines a functional option for configuring the App
type AppOption func(*App)

// WithMockDB configures the app to use a mock database
func WithMockDB(db *sql.DB) AppOption {
	return func(a *App) {
		a.db = db
	}
}

// WithMockMailer configures the app to use a mock mailer
func WithMockMailer(m mailer.Mailer) AppOption {
	return func(a *App) {
		a.mailer = m
	}
}

// WithLogger sets a custom logger
func WithLogger(logger logger.Logger) AppOption {
	return func(a *App) {
		a.logger = logger
	}
}

// NewApp creates a new application instance
func NewApp(cfg *config.Config, opts ...AppOption) AppInterface {
	shutdownCtx, shutdownCancel := context.WithCancel(context.Background())

	app := &App{
		config:          cfg,
		logger:          logger.NewLoggerWithLevel(cfg.LogLevel),
		mux:             http.NewServeMux(),
		serverStarted:   make(chan struct{}),
		shutdownCtx:     shutdownCtx,
		shutdownCancel:  shutdownCancel,
		shutdownTimeout: 60 * time.Second,
	}

	for _, opt := range opts {
		opt(app)
	}

	return app
}

// InitTracing initializes OpenCensus tracing and the CRM metric views
func (a *App) InitTracing() error {
	tracingConfig := &a.config.Tracing

	if err := tracing.InitTracing(tracingConfig, a.logger); err != nil {
		return fmt.Errorf("failed to initialize tracing: %w", err)
	}
	if err := tracing.RegisterCRMViews(); err != nil {
		return fmt.Errorf("failed to register metric views: %w", err)
	}

	if tracingConfig.Enabled {
		a.logger.WithField("trace_exporter", tracingConfig.TraceExporter).
			WithField("metrics_exporter", tracingConfig.MetricsExporter).
			WithField("sampling_rate", tracingConfig.SamplingProbability).
			Info("Tracing initialized successfully")
	}

	return nil
}

// InitDB connects to postgres, creates the schema and runs pending migrations
func (a *App) InitDB() error {
	if a.db != nil {
		return nil
	}

	dbCfg := &a.config.Database
	a.logger.WithField("host", dbCfg.Host).
		WithField("port", dbCfg.Port).
		WithField("user", dbCfg.User).
		WithField("dbname", dbCfg.DBName).
		WithField("sslmode", dbCfg.SSLMode).
		Info("Connecting to database")

	if err := database.EnsureSystemDatabaseExists(database.GetPostgresDSN(dbCfg), dbCfg.DBName); err != nil {
		return fmt.Errorf("failed to ensure database exists: %w", err)
	}

	driverName := "postgres"
	if a.config.Tracing.Enabled {
		var err error
		driverName, err = ocsql.Register(driverName, ocsql.WithAllTraceOptions())
		if err != nil {
			return fmt.Errorf("failed to register opencensus sql driver: %w", err)
		}
		a.logger.Info("Database driver wrapped with OpenCensus tracing")
	}

	db, err := sql.Open(driverName, database.GetSystemDSN(dbCfg))
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to ping database: %w", err)
	}

	if err := database.InitializeDatabase(db, a.config.RootEmail); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to initialize database schema: %w", err)
	}

	if err := migrations.NewManager(a.logger, repository.NewSettingRepository(db)).RunMigrations(context.Background(), a.config, db); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	maxOpen, maxIdle, maxLifetime := database.GetConnectionPoolSettings(dbCfg)
	db.SetMaxOpenConns(maxOpen)
	db.SetMaxIdleConns(maxIdle)
	db.SetConnMaxLifetime(maxLifetime)

	a.db = db
	return nil
}

// InitMailer picks the console mailer in development and SMTP otherwise
func (a *App) InitMailer() error {
	if a.mailer != nil {
		return nil
	}

	if a.config.IsDevelopment() || a.config.SMTP.Host == "" {
		a.mailer = mailer.NewConsoleMailer(a.logger)
		a.logger.Info("Using console mailer")
		return nil
	}

	a.mailer = mailer.NewSMTPMailer(&mailer.Config{
		SMTPHost:     a.config.SMTP.Host,
		SMTPPort:     a.config.SMTP.Port,
		SMTPUsername: a.config.SMTP.Username,
		SMTPPassword: a.config.SMTP.Password,
		FromEmail:    a.config.SMTP.FromEmail,
		FromName:     a.config.SMTP.FromName,
		APIEndpoint:  a.config.APIEndpoint,
	})
	a.logger.WithField("smtp_host", a.config.SMTP.Host).Info("Using SMTP mailer")
	return nil
}

// InitRepositories initializes all repositories
func (a *App) InitRepositories() error {
	if a.db == nil {
		return fmt.Errorf("database must be initialized before repositories")
	}

	a.userRepo = repository.NewUserRepository(a.db)
	a.settingRepo = repository.NewSettingRepository(a.db)
	a.organizationRepo = repository.NewOrganizationRepository(a.db)
	a.contactRepo = repository.NewContactRepository(a.db)
	a.pipelineRepo = repository.NewPipelineRepository(a.db)
	a.accountRepo = repository.NewEmailAccountRepository(a.db)
	a.emailRepo = repository.NewEmailRepository(a.db)
	a.syncJobRepo = repository.NewSyncJobRepository(a.db)
	a.followupRepo = repository.NewFollowupRepository(a.db)
	a.aiRepo = repository.NewAIRepository(a.db)
	a.subscriptionRepo = repository.NewSubscriptionRepository(a.db)
	a.erpRepo = repository.NewERPRepository(a.db)
	a.supplierRepo = repository.NewSupplierRepository(a.db)

	return nil
}

// initInfrastructure connects the optional redis and rabbitmq backends. Both fall back to
// in-process no-ops when unconfigured or unreachable.
func (a *App) initInfrastructure() domain.Deduper {
	if a.config.RabbitMQ.Enabled() {
		p, err := mq.NewPublisher(a.config.RabbitMQ.URL, a.config.RabbitMQ.Exchange, a.logger)
		if err != nil {
			a.logger.WithField("error", err.Error()).Warn("RabbitMQ unavailable, domain events are dropped")
			a.publisher = mq.NoopPublisher{}
		} else {
			a.publisher = p
		}
	} else {
		a.publisher = mq.NoopPublisher{}
	}

	if !a.config.Redis.Enabled() {
		return dedup.NoopDeduper{}
	}
	a.redis = dedup.NewClient(a.config.Redis.Addr, a.config.Redis.Password, a.config.Redis.DB)
	return dedup.NewRedisDeduper(a.redis, a.config.Redis.DedupTTL, a.logger)
}

// InitServices initializes all application services
func (a *App) InitServices() error {
	deduper := a.initInfrastructure()

	a.rateLimiter = ratelimiter.NewRateLimiter()
	a.rateLimiter.SetPolicy(service.RateLimitSignIn, 5, 5*time.Minute)
	a.rateLimiter.SetPolicy(service.RateLimitVerifyCode, 5, 5*time.Minute)
	a.rateLimiter.SetPolicy(rateLimitAI, 30, time.Minute)
	a.rateLimiter.SetPolicy(rateLimitSourcing, 10, time.Minute)

	authService, err := service.NewAuthService(service.AuthServiceConfig{
		Repository:             a.userRepo,
		OrganizationRepository: a.organizationRepo,
		PrivateKey:             a.config.Security.PasetoPrivateKeyBytes,
		PublicKey:              a.config.Security.PasetoPublicKeyBytes,
		SupabaseJWTSecret:      a.config.Supabase.JWTSecret,
		Logger:                 a.logger,
	})
	if err != nil {
		return fmt.Errorf("failed to create auth service: %w", err)
	}
	a.authService = authService

	a.subscriptionService = service.NewSubscriptionService(service.SubscriptionServiceConfig{
		Repository:             a.subscriptionRepo,
		OrganizationRepository: a.organizationRepo,
		ContactRepository:      a.contactRepo,
		EmailAccountRepository: a.accountRepo,
		AuthService:            a.authService,
		Publisher:              a.publisher,
		Logger:                 a.logger,
	})

	a.userService = service.NewUserService(service.UserServiceConfig{
		Repository:             a.userRepo,
		OrganizationRepository: a.organizationRepo,
		AuthService:            a.authService,
		Mailer:                 a.mailer,
		SessionExpiry:          a.config.Security.SessionTTL,
		Logger:                 a.logger,
		IsProduction:           a.config.IsProduction(),
		RateLimiter:            a.rateLimiter,
	})

	a.organizationService = service.NewOrganizationService(service.OrganizationServiceConfig{
		Repository:          a.organizationRepo,
		UserRepository:      a.userRepo,
		AuthService:         a.authService,
		SubscriptionService: a.subscriptionService,
		Mailer:              a.mailer,
		BrandingCache:       cache.New[*domain.Branding](10 * time.Minute),
		FollowupAfterDays:   a.config.Followup.DefaultAfterDays,
		Logger:              a.logger,
	})

	a.contactService = service.NewContactService(a.contactRepo, a.emailRepo, a.authService, a.subscriptionService, a.logger)
	a.pipelineService = service.NewPipelineService(a.pipelineRepo, a.contactRepo, a.organizationRepo, a.authService, a.publisher, a.logger)

	mailboxFactory := mailbox.NewFactory(a.logger)
	oauthClient := tracing.WrapHTTPClient(&http.Client{Timeout: 30 * time.Second})
	a.accountService = service.NewEmailAccountService(service.EmailAccountServiceConfig{
		Repository:     a.accountRepo,
		MailboxFactory: mailboxFactory,
		TokenRefresher: mailbox.NewTokenRefresher(mailbox.OAuthSettings{
			MicrosoftClientID:     a.config.OAuth.MicrosoftClientID,
			MicrosoftClientSecret: a.config.OAuth.MicrosoftClientSecret,
			MicrosoftTenant:       a.config.OAuth.MicrosoftTenant,
			GoogleClientID:        a.config.OAuth.GoogleClientID,
			GoogleClientSecret:    a.config.OAuth.GoogleClientSecret,
			RedirectURL:           a.config.OAuth.RedirectURL,
		}, oauthClient),
		AuthService:         a.authService,
		SubscriptionService: a.subscriptionService,
		SecretKey:           a.config.Security.SecretKey,
		Logger:              a.logger,
	})

	a.syncService = service.NewEmailSyncService(service.EmailSyncServiceConfig{
		AccountRepository:      a.accountRepo,
		AccountService:         a.accountService,
		EmailRepository:        a.emailRepo,
		SyncJobRepository:      a.syncJobRepo,
		OrganizationRepository: a.organizationRepo,
		ContactLinker:          a.contactService,
		MailboxFactory:         mailboxFactory,
		Deduper:                deduper,
		Publisher:              a.publisher,
		AuthService:            a.authService,
		Settings: service.SyncSettings{
			BatchSize:         a.config.Sync.BatchSize,
			MaxMessagesPerRun: a.config.Sync.MaxMessagesPerRun,
			MaxRetries:        a.config.Sync.MaxRetries,
			LookbackDays:      a.config.Sync.LookbackDays,
			Timeout:           a.config.Sync.Timeout,
		},
		Logger: a.logger,
	})

	llmClient, err := llm.NewClient(context.Background(), a.config.LLM)
	if err != nil {
		return fmt.Errorf("failed to create LLM client: %w", err)
	}
	a.aiService = service.NewAIService(service.AIServiceConfig{
		Client:                 llmClient,
		Repository:             a.aiRepo,
		EmailRepository:        a.emailRepo,
		ContactRepository:      a.contactRepo,
		OrganizationRepository: a.organizationRepo,
		SubscriptionService:    a.subscriptionService,
		AuthService:            a.authService,
		Logger:                 a.logger,
	})

	a.followupService = service.NewFollowupService(service.FollowupServiceConfig{
		Repository:             a.followupRepo,
		EmailRepository:        a.emailRepo,
		OrganizationRepository: a.organizationRepo,
		AccountService:         a.accountService,
		MailboxFactory:         mailboxFactory,
		AIService:              a.aiService,
		AuthService:            a.authService,
		Publisher:              a.publisher,
		DefaultAfterDays:       a.config.Followup.DefaultAfterDays,
		Logger:                 a.logger,
	})

	a.erpService = service.NewERPService(
		a.erpRepo,
		metakocka.NewClient(a.config.Metakocka.BaseURL, a.config.Metakocka.Timeout),
		a.contactRepo,
		a.pipelineRepo,
		a.authService,
		a.config.Security.SecretKey,
		a.logger,
	)

	a.supplierService = service.NewSupplierService(
		a.supplierRepo,
		a.aiService,
		tracing.WrapHTTPClient(&http.Client{Timeout: 15 * time.Second}),
		a.authService,
		a.logger,
	)

	a.syncScheduler = service.NewScheduler("email_sync",
		service.NewSyncCycle(a.syncService, a.accountRepo, a.settingRepo, a.config.Sync.Concurrency, a.logger),
		a.logger, a.config.Sync.Interval)

	a.followupScheduler = service.NewScheduler("followups",
		service.NewFollowupAutomation(service.FollowupAutomationConfig{
			Service:                a.followupService,
			Repository:             a.followupRepo,
			EmailRepository:        a.emailRepo,
			AccountRepository:      a.accountRepo,
			OrganizationRepository: a.organizationRepo,
			UserRepository:         a.userRepo,
			SettingRepository:      a.settingRepo,
			Mailer:                 a.mailer,
			AutoDraft:              a.config.Followup.AutoDraft,
			Logger:                 a.logger,
		}),
		a.logger, a.config.Followup.Interval)

	return nil
}

// InitHandlers registers every route on a fresh mux
func (a *App) InitHandlers() error {
	a.mux = http.NewServeMux()

	requireAuth := middleware.NewAuthMiddleware(a.authService).RequireAuth
	limit := func(namespace string) httpHandler.Middleware {
		return middleware.RateLimit(a.rateLimiter, namespace)
	}

	httpHandler.NewRootHandler(a.db, a.config.APIEndpoint, a.config.Version, a.logger).RegisterRoutes(a.mux)
	httpHandler.NewUserHandler(a.userService, a.logger).RegisterRoutes(a.mux, requireAuth)
	httpHandler.NewOrganizationHandler(a.organizationService, a.logger).RegisterRoutes(a.mux, requireAuth)
	httpHandler.NewContactHandler(a.contactService, a.logger).RegisterRoutes(a.mux, requireAuth)
	httpHandler.NewPipelineHandler(a.pipelineService, a.logger).RegisterRoutes(a.mux, requireAuth)
	httpHandler.NewEmailHandler(a.accountService, a.syncService, a.logger).RegisterRoutes(a.mux, requireAuth)
	httpHandler.NewFollowupHandler(a.followupService, a.logger).RegisterRoutes(a.mux, requireAuth)
	httpHandler.NewAIHandler(a.aiService, a.logger).RegisterRoutes(a.mux, requireAuth, limit(rateLimitAI))
	httpHandler.NewBillingHandler(a.subscriptionService, a.config.Billing.WebhookSecret, a.logger).RegisterRoutes(a.mux, requireAuth)
	httpHandler.NewIntegrationHandler(a.erpService, a.logger).RegisterRoutes(a.mux, requireAuth)
	httpHandler.NewSupplierHandler(a.supplierService, a.logger).RegisterRoutes(a.mux, requireAuth, limit(rateLimitSourcing))
	httpHandler.NewSupabaseWebhookHandler(a.userService, a.config.Supabase.WebhookSecret, a.logger).RegisterRoutes(a.mux)

	return nil
}

// Start starts the background schedulers and the HTTP server
func (a *App) Start() error {
	var handler http.Handler = a.mux

	handler = a.gracefulShutdownMiddleware(handler)

	if a.config.Tracing.Enabled {
		handler = middleware.TracingMiddleware(handler)
		a.logger.Info("OpenCensus tracing middleware enabled")
	}

	handler = middleware.CORSMiddleware(handler)

	addr := fmt.Sprintf("%s:%d", a.config.Server.Host, a.config.Server.Port)
	a.logger.WithField("address", addr).
		WithField("api_endpoint", a.config.APIEndpoint).
		Info("Server starting")

	a.serverMu.Lock()
	if a.serverStarted != nil {
		close(a.serverStarted)
	}
	a.serverStarted = make(chan struct{})
	a.server = &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}
	serverStarted := a.serverStarted
	a.serverMu.Unlock()

	close(serverStarted)

	if a.syncScheduler != nil && a.config.Sync.Enabled {
		a.syncScheduler.Start(a.shutdownCtx)
	}
	if a.followupScheduler != nil && a.config.Followup.Enabled {
		a.followupScheduler.Start(a.shutdownCtx)
	}

	if a.config.Server.SSL.Enabled {
		a.logger.WithField("cert_file", a.config.Server.SSL.CertFile).Info("SSL enabled")
		return a.server.ListenAndServeTLS(a.config.Server.SSL.CertFile, a.config.Server.SSL.KeyFile)
	}

	return a.server.ListenAndServe()
}

// Shutdown stops accepting requests, waits for in-flight ones up to the shutdown
// timeout, then releases resources.
func (a *App) Shutdown(ctx context.Context) error {
	a.logger.Info("Starting graceful shutdown...")

	a.shutdownCancel()

	a.serverMu.RLock()
	server := a.server
	a.serverMu.RUnlock()

	if server == nil {
		a.logger.Info("No server to shutdown")
		return a.cleanupResources()
	}

	a.logger.WithField("active_requests", a.getActiveRequestCount()).Info("Active requests at shutdown start")

	shutdownTimeout := a.shutdownTimeout
	if deadline, ok := ctx.Deadline(); ok {
		if remaining := time.Until(deadline); remaining < shutdownTimeout {
			shutdownTimeout = remaining - time.Second
			if shutdownTimeout < 0 {
				shutdownTimeout = 0
			}
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	serverShutdownDone := make(chan error, 1)
	go func() {
		serverShutdownDone <- server.Shutdown(shutdownCtx)
	}()

	requestsDone := make(chan struct{})
	go func() {
		a.requestWg.Wait()
		close(requestsDone)
	}()

	var shutdownErr error
	select {
	case err := <-serverShutdownDone:
		shutdownErr = err
		a.logger.Info("HTTP server shutdown completed")
	case <-shutdownCtx.Done():
		a.logger.Warn("Shutdown timeout reached")
		shutdownErr = fmt.Errorf("shutdown timeout exceeded")
	}

	if shutdownErr == nil {
		select {
		case <-requestsDone:
		case <-time.After(2 * time.Second):
			if n := a.getActiveRequestCount(); n > 0 {
				a.logger.WithField("active_requests", n).Warn("Some requests still active, proceeding with shutdown")
			}
		}
	}

	if err := a.cleanupResources(); err != nil {
		a.logger.WithField("error", err.Error()).Error("Error during resource cleanup")
		if shutdownErr == nil {
			shutdownErr = err
		}
	}

	if shutdownErr != nil {
		a.logger.WithField("error", shutdownErr.Error()).Error("Graceful shutdown completed with errors")
	} else {
		a.logger.Info("Graceful shutdown completed successfully")
	}
	return shutdownErr
}

// cleanupResources stops schedulers first so no cycle runs against a closed pool.
func (a *App) cleanupResources() error {
	a.logger.Info("Cleaning up resources...")

	if a.syncScheduler != nil {
		a.syncScheduler.Stop()
	}
	if a.followupScheduler != nil {
		a.followupScheduler.Stop()
	}
	if a.rateLimiter != nil {
		a.rateLimiter.Stop()
	}
	if a.publisher != nil {
		if err := a.publisher.Close(); err != nil {
			a.logger.WithField("error", err.Error()).Warn("Error closing event publisher")
		}
	}
	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			a.logger.WithField("error", err.Error()).Warn("Error closing redis client")
		}
	}

	if a.db != nil {
		if a.config.Tracing.Enabled {
			if err := ocsql.RecordStats(a.db, 5*time.Second); err != nil {
				a.logger.WithField("error", err.Error()).Error("Failed to record final database stats")
			}
		}
		a.logger.Info("Closing database connection")
		if err := a.db.Close(); err != nil {
			return err
		}
	}

	a.logger.Info("Resource cleanup completed")
	return nil
}

// IsServerCreated safely checks if the server has been created
func (a *App) IsServerCreated() bool {
	a.serverMu.RLock()
	defer a.serverMu.RUnlock()
	return a.server != nil
}

// WaitForServerStart waits for the server to be created. Returns false if ctx expires first.
func (a *App) WaitForServerStart(ctx context.Context) bool {
	a.serverMu.RLock()
	started := a.serverStarted
	a.serverMu.RUnlock()

	if started == nil {
		a.logger.Error("serverStarted channel is nil - server initialization error")
		<-ctx.Done()
		return false
	}

	select {
	case <-started:
		return a.IsServerCreated()
	case <-ctx.Done():
		return false
	}
}

// Initialize sets up all components of the application
func (a *App) Initialize() error {
	a.logger.WithField("version", a.config.Version).Info("Starting Salesflow CRM")

	steps := []func() error{
		a.InitTracing,
		a.InitDB,
		a.InitMailer,
		a.InitRepositories,
		a.InitServices,
		a.InitHandlers,
	}
	for _, step := range steps {
		if err := step(); err != nil {
			return err
		}
	}

	a.logger.Info("Application successfully initialized")
	return nil
}

func (a *App) GetConfig() *config.Config {
	return a.config
}

func (a *App) GetLogger() logger.Logger {
	return a.logger
}

func (a *App) GetMux() *http.ServeMux {
	return a.mux
}

func (a *App) GetDB() *sql.DB {
	return a.db
}

func (a *App) GetMailer() mailer.Mailer {
	return a.mailer
}

func (a *App) GetUserRepository() domain.UserRepository {
	return a.userRepo
}

func (a *App) GetOrganizationRepository() domain.OrganizationRepository {
	return a.organizationRepo
}

func (a *App) GetContactRepository() domain.ContactRepository {
	return a.contactRepo
}

func (a *App) GetEmailRepository() domain.EmailRepository {
	return a.emailRepo
}

func (a *App) incrementActiveRequests() {
	atomic.AddInt64(&a.activeRequests, 1)
	a.requestWg.Add(1)
}

func (a *App) decrementActiveRequests() {
	atomic.AddInt64(&a.activeRequests, -1)
	a.requestWg.Done()
}

func (a *App) getActiveRequestCount() int64 {
	return atomic.LoadInt64(&a.activeRequests)
}

func (a *App) GetActiveRequestCount() int64 {
	return a.getActiveRequestCount()
}

func (a *App) SetShutdownTimeout(timeout time.Duration) {
	a.shutdownTimeout = timeout
	a.logger.WithField("shutdown_timeout", timeout.String()).Info("Shutdown timeout configured")
}

// GetShutdownContext is canceled when shutdown begins
func (a *App) GetShutdownContext() context.Context {
	return a.shutdownCtx
}

func (a *App) isShuttingDown() bool {
	select {
	case <-a.shutdownCtx.Done():
		return true
	default:
		return false
	}
}

// gracefulShutdownMiddleware counts in-flight requests and refuses new ones once shutdown began
func (a *App) gracefulShutdownMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if a.isShuttingDown() {
			httpHandler.WriteJSONError(w, "Server is shutting down", http.StatusServiceUnavailable)
			return
		}

		a.incrementActiveRequests()
		defer a.decrementActiveRequests()

		next.ServeHTTP(w, r)
	})
}

var _ AppInterface = (*App)(nil)
