package config

import (
	"context"
	"fmt"

	"github.com/AntonStoeckl/library-lifecycle-go/ledger/postgresengine"
)

// OpenStore connects to the primary (and the replica, when configured) with the driver selected
// by cfg.DBAdapter and builds a postgres store on top.
// The returned close function releases all connections.
func OpenStore(ctx context.Context, cfg Config, options ...postgresengine.Option) (postgresengine.Store, func(), error) {
	switch cfg.DBAdapter {
	case AdapterSQLDB:
		return openSQLDBStore(ctx, cfg, options...)
	case AdapterSQLX:
		return openSQLXStore(ctx, cfg, options...)
	case AdapterPGXPool, "":
		return openPGXStore(ctx, cfg, options...)
	default:
		return postgresengine.Store{}, nil, fmt.Errorf("%w: unsupported %s %q", ErrInvalidConfig, EnvDBAdapter, cfg.DBAdapter)
	}
}

func openPGXStore(ctx context.Context, cfg Config, options ...postgresengine.Option) (postgresengine.Store, func(), error) {
	primary, err := NewPGXPool(ctx, cfg.DatabaseURL)
	if err != nil {
		return postgresengine.Store{}, nil, fmt.Errorf("connecting to primary: %w", err)
	}

	if cfg.DatabaseReplicaURL == "" {
		store, storeErr := postgresengine.NewStoreFromPGXPool(primary, options...)
		if storeErr != nil {
			primary.Close()

			return postgresengine.Store{}, nil, storeErr
		}

		return store, primary.Close, nil
	}

	replica, err := NewPGXPool(ctx, cfg.DatabaseReplicaURL)
	if err != nil {
		primary.Close()

		return postgresengine.Store{}, nil, fmt.Errorf("connecting to replica: %w", err)
	}

	closeAll := func() {
		replica.Close()
		primary.Close()
	}

	store, err := postgresengine.NewStoreFromPGXPoolAndReplica(primary, replica, options...)
	if err != nil {
		closeAll()

		return postgresengine.Store{}, nil, err
	}

	return store, closeAll, nil
}

func openSQLDBStore(ctx context.Context, cfg Config, options ...postgresengine.Option) (postgresengine.Store, func(), error) {
	primary, err := NewSQLDB(ctx, cfg.DatabaseURL)
	if err != nil {
		return postgresengine.Store{}, nil, fmt.Errorf("connecting to primary: %w", err)
	}

	closeAll := func() { _ = primary.Close() }

	if cfg.DatabaseReplicaURL == "" {
		store, storeErr := postgresengine.NewStoreFromSQLDB(primary, options...)
		if storeErr != nil {
			closeAll()

			return postgresengine.Store{}, nil, storeErr
		}

		return store, closeAll, nil
	}

	replica, err := NewSQLDB(ctx, cfg.DatabaseReplicaURL)
	if err != nil {
		closeAll()

		return postgresengine.Store{}, nil, fmt.Errorf("connecting to replica: %w", err)
	}

	closeAll = func() {
		_ = replica.Close()
		_ = primary.Close()
	}

	store, err := postgresengine.NewStoreFromSQLDBAndReplica(primary, replica, options...)
	if err != nil {
		closeAll()

		return postgresengine.Store{}, nil, err
	}

	return store, closeAll, nil
}

func openSQLXStore(ctx context.Context, cfg Config, options ...postgresengine.Option) (postgresengine.Store, func(), error) {
	primary, err := NewSQLX(ctx, cfg.DatabaseURL)
	if err != nil {
		return postgresengine.Store{}, nil, fmt.Errorf("connecting to primary: %w", err)
	}

	closeAll := func() { _ = primary.Close() }

	if cfg.DatabaseReplicaURL == "" {
		store, storeErr := postgresengine.NewStoreFromSQLX(primary, options...)
		if storeErr != nil {
			closeAll()

			return postgresengine.Store{}, nil, storeErr
		}

		return store, closeAll, nil
	}

	replica, err := NewSQLX(ctx, cfg.DatabaseReplicaURL)
	if err != nil {
		closeAll()

		return postgresengine.Store{}, nil, fmt.Errorf("connecting to replica: %w", err)
	}

	closeAll = func() {
		_ = replica.Close()
		_ = primary.Close()
	}

	store, err := postgresengine.NewStoreFromSQLXAndReplica(primary, replica, options...)
	if err != nil {
		closeAll()

		return postgresengine.Store{}, nil, err
	}

	return store, closeAll, nil
}
