package storage

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/kbukum/visitnote/logger"
)

// Factory creates a Storage from configuration.
type Factory func(ctx context.Context, cfg Config) (Storage, error)

var (
	mu        sync.RWMutex
	factories = make(map[string]Factory)
)

// RegisterFactory makes a backend available to New. Backends call it from
// init.
func RegisterFactory(name string, f Factory) {
	mu.Lock()
	defer mu.Unlock()
	factories[name] = f
}

// Registered returns the names of the registered backends.
func Registered() []string {
	mu.RLock()
	defer mu.RUnlock()
	names := make([]string, 0, len(factories))
	for n := range factories {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// New validates cfg and builds the selected backend.
func New(ctx context.Context, cfg Config, log *logger.Logger) (Storage, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	mu.RLock()
	f, ok := factories[cfg.Provider]
	mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("storage: provider %q not registered (available: %v)", cfg.Provider, Registered())
	}

	if log != nil {
		log.Info("initializing storage", logger.Fields(logger.FieldProvider, cfg.Provider, "bucket", cfg.Bucket()))
	}
	return f(ctx, cfg)
}
