// Command libraryctl administers a library database: it applies the schema, bootstraps the first admin
// and generates reports without going through the HTTP API.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/AntonStoeckl/library-lifecycle-go/library/shared/shell/config"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	root := newRootCommand(environment{
		open:         openPostgres,
		readPassword: promptPassword,
	})

	if err := root.ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

// openPostgres connects to the database configured in the environment (and .env).
func openPostgres(ctx context.Context) (Backend, func(), error) {
	if err := config.LoadDotEnv(".env"); err != nil {
		return nil, nil, err
	}

	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}

	store, closeStore, err := config.OpenStore(ctx, cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("opening %s store: %w", cfg.DBAdapter, err)
	}

	return store, closeStore, nil
}
