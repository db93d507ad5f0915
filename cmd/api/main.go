package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	_ "github.com/noah-isme/funeral-admin-api/api/swagger"
	"github.com/noah-isme/funeral-admin-api/internal/repository"
	"github.com/noah-isme/funeral-admin-api/internal/service"
	"github.com/noah-isme/funeral-admin-api/pkg/baas"
	"github.com/noah-isme/funeral-admin-api/pkg/cache"
	"github.com/noah-isme/funeral-admin-api/pkg/config"
	"github.com/noah-isme/funeral-admin-api/pkg/database"
	"github.com/noah-isme/funeral-admin-api/pkg/logger"
	"github.com/noah-isme/funeral-admin-api/pkg/storage"
)

// @title Funeral Admin API
// @version 1.0.0
// @description Back-office API for funeral cover members, burial events, staff and claims
// @BasePath /api/v1
// @schemes http https
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

func main() {
	cfg, err := config.Load()
	if err != nil {
		if errors.Is(err, config.ErrMissingBaaS) {
			log.Fatalf("backing store is not configured: %v", err)
		}
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("database connection failed", "error", err)
	}
	defer db.Close() //nolint:errcheck

	baasClient := baas.New(baas.Config{
		URL:        cfg.BaaS.URL,
		ServiceKey: cfg.BaaS.ServiceKey,
		Bucket:     cfg.BaaS.StorageBucket,
		Timeout:    cfg.BaaS.Timeout,
	}, logr)

	blobs, err := newBlobStore(cfg, baasClient)
	if err != nil {
		logr.Sugar().Fatalw("blob store init failed", "driver", cfg.Blob.Driver, "error", err)
	}

	validate := validator.New()
	metricsSvc := service.NewMetricsService()

	repos := repositories{
		members:    repository.NewMemberRepository(db),
		events:     repository.NewEventRepository(db),
		eventStaff: repository.NewEventStaffRepository(db),
		staff:      repository.NewStaffRepository(db),
		claims:     repository.NewClaimRepository(db),
		contacts:   repository.NewContactRepository(db),
		checklists: repository.NewChecklistRepository(db),
		audit:      repository.NewAuditRepository(db),
		documents:  repository.NewDocumentRepository(db),
		roles:      repository.NewUserRoleRepository(db),
	}

	auditSvc := service.NewAuditService(repos.audit, metricsSvc, service.AuditServiceConfig{
		Workers:    cfg.Audit.Workers,
		BufferSize: cfg.Audit.BufferSize,
		Retries:    cfg.Audit.Retries,
	}, logr)
	auditSvc.Start(ctx)
	defer auditSvc.Stop()

	viewStates := newViewStateService(ctx, cfg, metricsSvc, validate, logr)

	svcs := buildServices(cfg, repos, blobs, baasClient, auditSvc, viewStates, metricsSvc, validate, logr)

	r := newRouter(cfg, logr, svcs, blobs)

	addr := fmt.Sprintf(":%d", cfg.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env, "blob_driver", cfg.Blob.Driver)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logr.Sugar().Fatalw("server failed", "error", err)
		}
	}()

	<-ctx.Done()
	logr.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logr.Warn("graceful shutdown failed", zap.Error(err))
	}
}

type repositories struct {
	members    *repository.MemberRepository
	events     *repository.EventRepository
	eventStaff *repository.EventStaffRepository
	staff      *repository.StaffRepository
	claims     *repository.ClaimRepository
	contacts   *repository.ContactRepository
	checklists *repository.ChecklistRepository
	audit      *repository.AuditRepository
	documents  *repository.DocumentRepository
	roles      *repository.UserRoleRepository
}

type services struct {
	metrics    *service.MetricsService
	audit      *service.AuditService
	auth       *service.AuthService
	onboarding *service.OnboardingService
	members    *service.MemberService
	events     *service.EventService
	checklists *service.ChecklistService
	staff      *service.StaffService
	claims     *service.ClaimService
	contacts   *service.ContactService
	dashboard  *service.DashboardService
	tabs       *service.TabService
	bulk       *service.BulkService
	viewStates *service.ViewStateService
	documents  *service.DocumentService
}

func buildServices(
	cfg *config.Config,
	repos repositories,
	blobs service.BlobStore,
	baasClient *baas.Client,
	auditSvc *service.AuditService,
	viewStates *service.ViewStateService,
	metricsSvc *service.MetricsService,
	validate *validator.Validate,
	logr *zap.Logger,
) services {
	memberSvc := service.NewMemberService(repos.members, auditSvc, validate, logr)
	staffSvc := service.NewStaffService(repos.staff, auditSvc, validate, logr)
	claimSvc := service.NewClaimService(repos.claims, repos.members, auditSvc, validate, logr)
	contactSvc := service.NewContactService(repos.contacts, auditSvc, validate, logr)
	checklistSvc := service.NewChecklistService(repos.checklists, repos.events, auditSvc, validate, logr)
	eventSvc := service.NewEventService(repos.events, repos.eventStaff, repos.staff, checklistSvc, auditSvc, validate, logr)

	dashboardSvc := service.NewDashboardService(service.DashboardServiceParams{
		Members:    repos.members,
		Events:     repos.events,
		Claims:     repos.claims,
		Staff:      repos.staff,
		Contacts:   repos.contacts,
		Checklists: repos.checklists,
		Metrics:    metricsSvc,
		Location:   dashboardLocation(cfg.Dashboard.Timezone, logr),
		Logger:     logr,
	})

	tabSvc := service.NewTabService(service.TabServiceParams{
		Members:    repos.members,
		Events:     repos.events,
		Staff:      repos.staff,
		Claims:     repos.claims,
		Contacts:   repos.contacts,
		Audit:      repos.audit,
		ViewStates: viewStates,
		Logger:     logr,
	})

	bulkSvc := service.NewBulkService(service.BulkServiceParams{
		Members:    memberSvc,
		Events:     eventSvc,
		Staff:      staffSvc,
		Claims:     claimSvc,
		Dashboard:  dashboardSvc,
		ViewStates: viewStates,
		Metrics:    metricsSvc,
		Logger:     logr,
	})

	documentSvc := service.NewDocumentService(repos.documents, blobs, auditSvc, logr, service.DocumentServiceConfig{
		MaxFileSize:  cfg.Documents.MaxFileSizeBytes,
		AllowedMIMEs: cfg.Documents.AllowedMIMEs,
	})

	authSvc := service.NewAuthService(baasClient, repos.roles, validate, logr, service.AuthConfig{
		JWTSecret: cfg.BaaS.JWTSecret,
	})

	return services{
		metrics:    metricsSvc,
		audit:      auditSvc,
		auth:       authSvc,
		onboarding: service.NewOnboardingService(staffSvc, repos.roles, auditSvc, logr),
		members:    memberSvc,
		events:     eventSvc,
		checklists: checklistSvc,
		staff:      staffSvc,
		claims:     claimSvc,
		contacts:   contactSvc,
		dashboard:  dashboardSvc,
		tabs:       tabSvc,
		bulk:       bulkSvc,
		viewStates: viewStates,
		documents:  documentSvc,
	}
}

func newBlobStore(cfg *config.Config, baasClient *baas.Client) (service.BlobStore, error) {
	if cfg.Blob.Driver != config.BlobDriverLocal {
		return baasClient, nil
	}
	signer := storage.NewSignedURLSigner(cfg.Blob.SignedURLSecret, cfg.Blob.SignedURLTTL)
	return storage.NewLocalStorage(cfg.Blob.LocalDir, signer, "/files")
}

// newViewStateService falls back to an in-process default view when Redis is disabled or down.
func newViewStateService(ctx context.Context, cfg *config.Config, metricsSvc *service.MetricsService, validate *validator.Validate, logr *zap.Logger) *service.ViewStateService {
	if !cfg.ViewState.Enabled {
		return service.NewViewStateService(nil, metricsSvc, validate, logr)
	}

	client, err := cache.NewRedis(ctx, cfg.Redis)
	if err != nil {
		logr.Warn("view state store unavailable, using defaults", zap.Error(err))
		return service.NewViewStateService(nil, metricsSvc, validate, logr)
	}

	return service.NewViewStateService(repository.NewViewStateRepository(client, cfg.ViewState.TTL), metricsSvc, validate, logr)
}

func dashboardLocation(name string, logr *zap.Logger) *time.Location {
	loc, err := time.LoadLocation(name)
	if err != nil {
		logr.Warn("unknown dashboard timezone, using local", zap.String("timezone", name), zap.Error(err))
		return time.Local
	}
	return loc
}
