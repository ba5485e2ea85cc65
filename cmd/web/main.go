// Package main starts the EcoTravel booking web service.
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/blink-new/ecotravel-booking-platform/internal/config"
	"github.com/blink-new/ecotravel-booking-platform/internal/content"
	"github.com/blink-new/ecotravel-booking-platform/internal/logging"
	"github.com/blink-new/ecotravel-booking-platform/internal/media"
	"github.com/blink-new/ecotravel-booking-platform/internal/repository/hosted"
	storage "github.com/blink-new/ecotravel-booking-platform/internal/repository/minio"
	"github.com/blink-new/ecotravel-booking-platform/internal/repository/ports"
	"github.com/blink-new/ecotravel-booking-platform/internal/repository/postgres"
	"github.com/blink-new/ecotravel-booking-platform/internal/service"
	transporthttp "github.com/blink-new/ecotravel-booking-platform/internal/transport/http"
	"github.com/blink-new/ecotravel-booking-platform/internal/transport/mail"
	"github.com/blink-new/ecotravel-booking-platform/internal/util"
)

const shutdownTimeout = 10 * time.Second

// backend groups the ports one storage mode provides.
type backend struct {
	identity     ports.IdentityProvider
	sessions     ports.SessionRepository
	trips        ports.TripRequestRepository
	bookings     ports.BookingRepository
	destinations ports.DestinationRepository
	activities   ports.ActivityTypeRepository
	close        func() error
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logCloser, err := logging.Setup("ecotravel-web", cfg.LogstashTCPAddr)
	if err != nil {
		log.Fatalf("logging: %v", err)
	}
	defer logCloser.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		log.Fatalf("server: %v", err)
	}
}

func run(ctx context.Context, cfg config.Config) error {
	be, err := openBackend(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := be.close(); err != nil {
			log.Printf("backend: close: %v", err)
		}
	}()

	objectStorage, err := openObjectStorage(ctx, cfg)
	if err != nil {
		return err
	}

	var notifier ports.TripRequestNotifier
	if cfg.MailEnabled() {
		notifier = mail.NewTripRequestMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword, cfg.SMTPFrom, cfg.AgencyInbox)
	}

	pages, err := content.Load()
	if err != nil {
		return fmt.Errorf("load content: %w", err)
	}

	auth := service.NewAuthService(be.identity, util.NewJWTManager(cfg.SessionSecret, cfg.SessionTTL), be.sessions, objectStorage, service.AuthServiceConfig{
		AvatarBucket:   cfg.MinIOBucketAvatar,
		AvatarMaxBytes: cfg.AvatarMaxBytes,
		ImageProcessor: media.NewFFMPEGProcessor(cfg.FFMPEGPath),
	})

	e, err := transporthttp.NewRouter(transporthttp.RouterConfig{
		AllowOrigins:   cfg.AllowOrigins,
		LoginRateLimit: cfg.LoginRateLimit,
		Auth: transporthttp.AuthOptions{
			PublicBaseURL:  cfg.PublicBaseURL,
			GoogleClientID: googleClientID(cfg),
			Cookies:        transporthttp.CookieOptions{Secure: cfg.SecureCookies},
		},
	}, transporthttp.Services{
		Auth:       auth,
		Trips:      service.NewTripRequestService(be.trips, notifier),
		Dashboards: service.NewDashboardService(be.trips, be.bookings),
		Catalog:    service.NewCatalogService(be.destinations, be.activities),
		Pages:      pages,
	})
	if err != nil {
		return fmt.Errorf("build router: %w", err)
	}

	return serve(ctx, e, ":"+cfg.Port)
}

func openBackend(ctx context.Context, cfg config.Config) (*backend, error) {
	switch cfg.Backend {
	case config.BackendPostgres:
		db, err := postgres.New(cfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("connect database: %w", err)
		}
		if err := postgres.Migrate(ctx, db); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("migrate database: %w", err)
		}
		log.Printf("backend: using postgres")
		return &backend{
			identity:     service.NewGoogleIdentity(postgres.NewUserRepo(db), cfg.GoogleAudience),
			sessions:     postgres.NewSessionRepo(db),
			trips:        postgres.NewTripRequestRepo(db),
			bookings:     postgres.NewBookingRepo(db),
			destinations: postgres.NewDestinationRepo(db),
			activities:   postgres.NewActivityTypeRepo(db),
			close:        db.Close,
		}, nil
	default:
		client := hosted.NewClient(cfg.HostedBaseURL, cfg.HostedProjectKey, cfg.HostedHTTPTimeout)
		log.Printf("backend: using hosted service at %s", cfg.HostedBaseURL)
		return &backend{
			identity:     hosted.NewIdentity(client, cfg.AuthURL()),
			trips:        hosted.NewTripRequestRepo(client),
			bookings:     hosted.NewBookingRepo(client),
			destinations: hosted.NewDestinationRepo(client),
			activities:   hosted.NewActivityTypeRepo(client),
			close:        func() error { return nil },
		}, nil
	}
}

// openObjectStorage returns nil when MinIO is not configured; avatar uploads
// are then rejected.
func openObjectStorage(ctx context.Context, cfg config.Config) (ports.ObjectStorage, error) {
	if !cfg.ObjectStorageEnabled() {
		log.Printf("storage: object storage not configured, avatar uploads disabled")
		return nil, nil
	}
	client, err := storage.NewClient(cfg.MinIOEndpoint, cfg.MinIOAccessKey, cfg.MinIOSecretKey, cfg.MinIOUseSSL)
	if err != nil {
		return nil, fmt.Errorf("connect object storage: %w", err)
	}
	store := storage.NewStorage(client, cfg.MinIOPublicURL)
	if err := store.EnsureBucket(ctx, cfg.MinIOBucketAvatar); err != nil {
		return nil, fmt.Errorf("ensure avatar bucket: %w", err)
	}
	return store, nil
}

func googleClientID(cfg config.Config) string {
	if cfg.Backend != config.BackendPostgres {
		return ""
	}
	if cfg.GoogleClientID != "" {
		return cfg.GoogleClientID
	}
	return cfg.GoogleAudience
}

func serve(ctx context.Context, e *echo.Echo, addr string) error {
	errCh := make(chan error, 1)
	go func() {
		log.Printf("server: listening on %s", addr)
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	log.Printf("server: shutting down")
	return e.Shutdown(shutdownCtx)
}
