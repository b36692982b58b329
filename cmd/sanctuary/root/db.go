package root

import (
	"context"
	"os"

	"github.com/babsant/clean-sanctuary/internal/engine"
	"github.com/babsant/clean-sanctuary/internal/storage"
)

func openStore(ctx context.Context) (*storage.Store, func(), error) {
	path, err := storage.ResolveDBPath()
	if err != nil {
		return nil, nil, err
	}
	store, err := storage.Open(ctx, path)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() {
		_ = store.Close()
	}
	return store, cleanup, nil
}

func openService(ctx context.Context) (*engine.Service, func(), error) {
	store, cleanup, err := openStore(ctx)
	if err != nil {
		return nil, nil, err
	}
	var ledger engine.Ledger = engine.NopLedger{}
	if url := os.Getenv("SANCTUARY_BONFIRE_URL"); url != "" {
		ledger = engine.NewHTTPLedger(url)
	}
	return engine.NewService(store, ledger, newLogger()), cleanup, nil
}
