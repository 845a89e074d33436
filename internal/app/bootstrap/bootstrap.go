package bootstrap

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	identityservice "hearth/contexts/access/identity-service"
	jwtadapter "hearth/contexts/access/identity-service/adapters/jwt"
	identitypostgres "hearth/contexts/access/identity-service/adapters/postgres"
	identityports "hearth/contexts/access/identity-service/ports"
	membershipservice "hearth/contexts/access/membership-service"
	membershippostgres "hearth/contexts/access/membership-service/adapters/postgres"
	locationsservice "hearth/contexts/workspace/locations-service"
	locationspostgres "hearth/contexts/workspace/locations-service/adapters/postgres"
	motdservice "hearth/contexts/workspace/motd-service"
	motdpostgres "hearth/contexts/workspace/motd-service/adapters/postgres"
	notesservice "hearth/contexts/workspace/notes-service"
	notespostgres "hearth/contexts/workspace/notes-service/adapters/postgres"
	trainingsservice "hearth/contexts/workspace/trainings-service"
	trainingspostgres "hearth/contexts/workspace/trainings-service/adapters/postgres"
	"hearth/internal/platform/config"
	"hearth/internal/platform/db"
	"hearth/internal/platform/httpserver"
)

// Package bootstrap is the composition root.
// Keep construction/wiring here so module code stays framework-agnostic.

type APIApp struct {
	server   *httpserver.Server
	postgres *db.Postgres
	logger   *slog.Logger
}

func BuildAPI() (*APIApp, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	logger := slog.Default().With("service", cfg.ServiceName, "process", "api")
	if strings.TrimSpace(cfg.PostgresDSN) == "" {
		return nil, errors.New("POSTGRES_DSN is required")
	}

	pg, err := db.Connect(cfg.PostgresDSN)
	if err != nil {
		return nil, err
	}

	var verifier identityports.TokenVerifier
	if cfg.AuthMode == config.AuthModeBearer {
		verifier = jwtadapter.NewVerifier(jwtadapter.Config{
			Issuer:   cfg.AuthIssuer,
			Audience: cfg.AuthAudience,
			JWKSURL:  cfg.AuthJWKSURL,
		})
	}

	// The membership directory reads the users table directly, so no profile
	// sink is wired here; the projection is the table itself.
	identityModule := identityservice.NewModule(identityservice.Dependencies{
		Mode:        cfg.AuthMode,
		Verifier:    verifier,
		Users:       identitypostgres.NewRepository(pg.DB, logger),
		Clock:       identitypostgres.SystemClock{},
		IDGenerator: identitypostgres.UUIDGenerator{},
		Logger:      logger,
	})

	membershipModule := membershipservice.NewModule(membershipservice.Dependencies{
		Repository:  membershippostgres.NewRepository(pg.DB, logger),
		Users:       membershippostgres.NewDirectory(pg.DB),
		Clock:       membershippostgres.SystemClock{},
		IDGenerator: membershippostgres.UUIDGenerator{},
		Logger:      logger,
	})
	authorizer := membershipModule.Service

	notesModule := notesservice.NewModule(notesservice.Dependencies{
		Repository:  notespostgres.NewRepository(pg.DB, logger),
		Authorizer:  authorizer,
		Clock:       notespostgres.SystemClock{},
		IDGenerator: notespostgres.UUIDGenerator{},
		Logger:      logger,
	})
	trainingsModule := trainingsservice.NewModule(trainingsservice.Dependencies{
		Repository:  trainingspostgres.NewRepository(pg.DB, logger),
		Authorizer:  authorizer,
		Clock:       trainingspostgres.SystemClock{},
		IDGenerator: trainingspostgres.UUIDGenerator{},
		Logger:      logger,
	})
	locationsModule := locationsservice.NewModule(locationsservice.Dependencies{
		Repository:  locationspostgres.NewRepository(pg.DB, logger),
		Authorizer:  authorizer,
		Clock:       locationspostgres.SystemClock{},
		IDGenerator: locationspostgres.UUIDGenerator{},
		Logger:      logger,
	})
	motdModule := motdservice.NewModule(motdservice.Dependencies{
		Repository:  motdpostgres.NewRepository(pg.DB, logger),
		Authorizer:  authorizer,
		Clock:       motdpostgres.SystemClock{},
		IDGenerator: motdpostgres.UUIDGenerator{},
		Logger:      logger,
	})

	server := httpserver.New(httpserver.Modules{
		Identity:   identityModule,
		Membership: membershipModule,
		Notes:      notesModule,
		Trainings:  trainingsModule,
		Locations:  locationsModule,
		Motd:       motdModule,
	}, logger, normalizeAddr(cfg.HTTPPort))

	return &APIApp{
		server:   server,
		postgres: pg,
		logger:   logger,
	}, nil
}

func (a *APIApp) Run(_ context.Context) error {
	if a.logger != nil {
		a.logger.Info("api app started",
			"event", "bootstrap_api_started",
			"module", "internal/app/bootstrap",
			"layer", "platform",
		)
	}
	return a.server.Start()
}

func (a *APIApp) Close() error {
	if a.postgres != nil {
		return a.postgres.Close()
	}
	return nil
}

func normalizeAddr(port string) string {
	value := strings.TrimSpace(port)
	if value == "" {
		return ":8080"
	}
	if strings.HasPrefix(value, ":") {
		return value
	}
	return ":" + value
}
