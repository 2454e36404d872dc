// Package app is the composition root: it builds the pool, the writers,
// the repositories, and the router from configuration.
package app

import (
	"context"
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	"bricktickler.io/dossier/internal/api/handlers"
	"bricktickler.io/dossier/internal/api/middleware"
	"bricktickler.io/dossier/internal/config"
	"bricktickler.io/dossier/internal/infrastructure"
	"bricktickler.io/dossier/internal/repository"
	"bricktickler.io/dossier/internal/usecase"
)

// Application holds composed application dependencies.
type Application struct {
	Config *config.Config
	Router *gin.Engine
	Pool   *pgxpool.Pool
}

// Bootstrap initializes all dependencies using manual DI. The shared
// secret and the pool are constructed once here and injected explicitly;
// nothing holds them as mutable globals.
func Bootstrap(ctx context.Context, cfg *config.Config) (*Application, error) {
	if cfg.Log.Format == "json" {
		gin.SetMode(gin.ReleaseMode)
	}

	pool, err := infrastructure.NewPool(ctx, cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("init database pool: %w", err)
	}
	if cfg.Database.AutoMigrate {
		if err := infrastructure.Migrate(ctx, pool); err != nil {
			pool.Close()
			return nil, fmt.Errorf("auto-migrate: %w", err)
		}
	}

	jwtCfg := middleware.JWTConfig{
		SigningKey: []byte(cfg.Security.JWTSigningKey),
		Issuer:     cfg.Security.TokenIssuer,
		ExpiresIn:  cfg.Security.TokenTTL,
	}

	server := handlers.NewServer(handlers.Deps{
		Pool:                pool,
		Intake:              usecase.NewIntakeWriter(pool),
		Review:              usecase.NewReviewWriter(pool),
		Staging:             repository.NewStagingRepository(pool),
		IntakeSecret:        []byte(cfg.Security.IntakeSecret),
		JWT:                 jwtCfg,
		ManagerUsername:     cfg.Security.ManagerUsername,
		ManagerPasswordHash: []byte(cfg.Security.ManagerPasswordHash),
	})

	return &Application{
		Config: cfg,
		Router: newRouter(server, jwtCfg.SigningKey),
		Pool:   pool,
	}, nil
}

// Shutdown releases application resources.
func (a *Application) Shutdown() {
	if a.Pool != nil {
		a.Pool.Close()
	}
}
