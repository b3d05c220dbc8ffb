package apiapp

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/Zerokoinhub/admin-console/internal/config"
	s3infra "github.com/Zerokoinhub/admin-console/internal/infra/s3"
	backendrepo "github.com/Zerokoinhub/admin-console/internal/repo/backendhttp"
	pgrepo "github.com/Zerokoinhub/admin-console/internal/repo/postgres"
	redrepo "github.com/Zerokoinhub/admin-console/internal/repo/redis"
	accesssvc "github.com/Zerokoinhub/admin-console/internal/services/access"
	screenshotsvc "github.com/Zerokoinhub/admin-console/internal/services/screenshots"
	staffauthsvc "github.com/Zerokoinhub/admin-console/internal/services/staffauth"
	workflowsvc "github.com/Zerokoinhub/admin-console/internal/services/workflow"
)

type App struct {
	cfg      config.Config
	logger   *zap.Logger
	server   *http.Server
	postgres *pgxpool.Pool
	redis    *goredis.Client
}

func New(ctx context.Context, cfg config.Config, log *zap.Logger) (*App, error) {
	if log == nil {
		return nil, fmt.Errorf("logger is nil")
	}

	r := chi.NewRouter()
	ApplyMiddlewares(r, log)

	backendClient, err := backendrepo.NewClient(cfg.Backend.BaseURL, cfg.Backend.APIToken, cfg.Backend.Timeout)
	if err != nil {
		return nil, fmt.Errorf("create backend client: %w", err)
	}
	usersRepo := backendrepo.NewUsersRepo(backendClient)
	submissionsRepo := backendrepo.NewSubmissionsRepo(backendClient)

	var pool *pgxpool.Pool
	if p, err := pgrepo.NewPool(ctx, cfg.Postgres.DSN); err != nil {
		log.Warn("postgres init failed, audit trail disabled", zap.Error(err))
	} else {
		pool = p
	}
	auditRepo := pgrepo.NewAuditRepo(pool)

	redisClient := redrepo.NewClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	sessionRepo := redrepo.NewSessionRepo(redisClient)
	staffAuthService := staffauthsvc.NewService(sessionRepo, cfg.Auth.AdminToken, cfg.Auth.SessionTTL)

	workflowService := workflowsvc.NewService(usersRepo, submissionsRepo, workflowsvc.Config{
		SeedPlaceholders: cfg.Review.SeedPlaceholders,
	}, log)
	workflowService.AttachAuditor(auditRepo)

	if s3Client, err := s3infra.NewClient(s3infra.Config{
		Endpoint:  cfg.S3.Endpoint,
		AccessKey: cfg.S3.AccessKey,
		SecretKey: cfg.S3.SecretKey,
		UseSSL:    cfg.S3.UseSSL,
	}); err != nil {
		log.Warn("s3 init failed, screenshot urls disabled", zap.Error(err))
	} else {
		workflowService.AttachSigner(screenshotsvc.NewS3Signer(s3Client, cfg.S3.Bucket))
	}

	accessService := accesssvc.NewService(usersRepo, log)
	accessService.AttachAuditor(auditRepo)

	RegisterRoutes(r, Dependencies{
		StaffAuthService: staffAuthService,
		WorkflowService:  workflowService,
		AccessService:    accessService,
		UsersRepo:        usersRepo,
		AuditRepo:        auditRepo,
		Logger:           log,
	})

	server := &http.Server{
		Addr:         cfg.HTTP.Addr,
		Handler:      r,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
	}

	return &App{
		cfg:      cfg,
		logger:   log,
		server:   server,
		postgres: pool,
		redis:    redisClient,
	}, nil
}

func (a *App) Run() error {
	a.logger.Info("admin console api listening", zap.String("addr", a.cfg.HTTP.Addr))
	return a.server.ListenAndServe()
}

func (a *App) Shutdown(ctx context.Context) error {
	err := a.server.Shutdown(ctx)
	if a.postgres != nil {
		a.postgres.Close()
	}
	if a.redis != nil {
		_ = a.redis.Close()
	}
	return err
}
