package container

import (
	"fmt"

	"github.com/icebreakapp/radar-gateway/internal/auth"
	"github.com/icebreakapp/radar-gateway/internal/config"
	httpdelivery "github.com/icebreakapp/radar-gateway/internal/delivery/http"
	"github.com/icebreakapp/radar-gateway/internal/delivery/http/handler"
	"github.com/icebreakapp/radar-gateway/internal/delivery/http/ws"
	"github.com/icebreakapp/radar-gateway/internal/domain"
	"github.com/icebreakapp/radar-gateway/internal/infrastructure/database"
	"github.com/icebreakapp/radar-gateway/internal/infrastructure/device"
	"github.com/icebreakapp/radar-gateway/internal/infrastructure/server"
	"github.com/icebreakapp/radar-gateway/internal/repository/postgres"
	"github.com/icebreakapp/radar-gateway/internal/usecase/chat"
	"github.com/icebreakapp/radar-gateway/internal/usecase/feed"
	"github.com/icebreakapp/radar-gateway/internal/usecase/location"
	"github.com/icebreakapp/radar-gateway/internal/usecase/radar"
	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
)

// Container holds all application dependencies
type Container struct {
	Config   *config.Config
	Logger   *logrus.Logger
	DB       *sqlx.DB
	Sessions *auth.SessionManager
	Device   *device.PushProvider
	Reporter *location.Reporter
	Poller   *feed.Poller
	Radar    *radar.UseCase
	Server   *server.Server
}

// NewContainer creates a new dependency injection container
func NewContainer(cfg *config.Config) (*Container, error) {
	logger := newLogger(cfg.Logging)

	// Connect to the platform database
	db, err := database.NewPlatformDB(&cfg.Platform.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	// Session context, injected into every component that needs the
	// current user
	sessions := auth.NewSessionManager(cfg.Platform.Auth, logger)

	// Initialize repositories
	locationRepo := postgres.NewLocationRepository(db)
	nearbyRepo := postgres.NewNearbyRepository(db)
	profileRepo := postgres.NewProfileRepository(db)
	chatRepo := postgres.NewChatRepository(db)

	// Initialize the proximity pipeline
	deviceProvider := device.NewPushProvider()
	reporter := location.NewReporter(deviceProvider, locationRepo, sessions, logger, cfg.Radar.ReportInterval)
	enricher := feed.NewEnricher(profileRepo)
	poller := feed.NewPoller(nearbyRepo, profileRepo, enricher, sessions, logger, cfg.Radar.RadiusMeters, cfg.Radar.PollInterval)

	// A session change invalidates the cached viewer interests and any
	// in-flight poll cycle
	sessions.OnChange(func(*domain.Session) {
		poller.Reset()
	})

	// Initialize use cases
	radarUseCase := radar.NewUseCase(profileRepo, sessions, logger, reporter, poller)
	chatUseCase := chat.NewUseCase(chatRepo, sessions, logger)

	// Initialize HTTP delivery
	router := httpdelivery.NewRouter(
		handler.NewFeedHandler(poller),
		handler.NewRadarHandler(radarUseCase),
		handler.NewSessionHandler(sessions),
		handler.NewChatHandler(chatUseCase),
		handler.NewSphereHandler(),
		handler.NewLocationHandler(deviceProvider),
		ws.NewFeedStream(poller, logger),
	)

	srv := server.NewServer(&cfg.Server, router.Setup(), logger)

	return &Container{
		Config:   cfg,
		Logger:   logger,
		DB:       db,
		Sessions: sessions,
		Device:   deviceProvider,
		Reporter: reporter,
		Poller:   poller,
		Radar:    radarUseCase,
		Server:   srv,
	}, nil
}

func newLogger(cfg config.LoggingConfig) *logrus.Logger {
	logger := logrus.New()
	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)
	return logger
}

// Close releases held resources.
func (c *Container) Close() error {
	c.Reporter.Stop()
	c.Poller.Stop()
	c.Sessions.Dispose()
	return c.DB.Close()
}
