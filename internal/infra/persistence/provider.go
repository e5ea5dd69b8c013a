// Package persistence selects the credential store backend.
package persistence

import (
	"context"
	"log/slog"

	"apilogin/config"
	"apilogin/internal/domain/constants"
	"apilogin/internal/domain/repository"
	"apilogin/internal/errors"
	"apilogin/internal/infra/persistence/firestore"
	"apilogin/internal/infra/persistence/memory"
	"apilogin/internal/infra/persistence/postgres"

	"go.uber.org/fx"
)

// Params holds the dependencies of NewUserRepository, injected by Fx
type Params struct {
	fx.In

	Lc     fx.Lifecycle
	Ctx    context.Context
	Config *config.Config
	Logger *slog.Logger
}

// NewUserRepository builds the credential store named by store.driver. Only
// the selected backend opens a connection.
func NewUserRepository(params Params) (repository.UserRepository, error) {
	driver := params.Config.Store.Driver
	logger := params.Logger.With(slog.String("store", driver))

	switch driver {
	case constants.StoreDriverFirestore:
		client, err := firestore.NewClient(firestore.ClientParams{
			Lc:     params.Lc,
			Ctx:    params.Ctx,
			Config: params.Config,
			Logger: logger,
		})
		if err != nil {
			return nil, err
		}

		return firestore.NewUserRepository(client, params.Config.Firebase.Collection), nil

	case constants.StoreDriverPostgres:
		db, err := postgres.New(postgres.Params{
			Lifecycle: params.Lc,
			Config:    params.Config,
			Logger:    logger,
		})
		if err != nil {
			return nil, err
		}

		return postgres.NewUserRepository(db), nil

	case constants.StoreDriverMemory:
		logger.Warn("Using in-memory credential store, accounts are lost on restart")

		return memory.NewUserRepository(), nil

	default:
		return nil, errors.Errorf("unknown store driver: %s", driver)
	}
}
