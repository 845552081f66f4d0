package storage

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/kbukum/visitnote/component"
	"github.com/kbukum/visitnote/logger"
)

const (
	healthKey     = ".health"
	healthTimeout = 5 * time.Second
)

// Component owns the Storage for the lifetime of the process.
type Component struct {
	storage Storage
	cfg     Config
	log     *logger.Logger
}

var (
	_ component.Component   = (*Component)(nil)
	_ component.Describable = (*Component)(nil)
)

// NewComponent creates an unstarted storage component.
func NewComponent(cfg Config, log *logger.Logger) *Component {
	cfg.ApplyDefaults()
	if log == nil {
		log = logger.Get("storage")
	}
	return &Component{cfg: cfg, log: log.WithComponent("storage")}
}

// Storage returns the backend, or nil before Start.
func (c *Component) Storage() Storage { return c.storage }

// Upload delegates to the started backend.
func (c *Component) Upload(ctx context.Context, key string, reader io.Reader) error {
	if c.storage == nil {
		return fmt.Errorf("storage: %s backend not started", c.cfg.Provider)
	}
	return c.storage.Upload(ctx, key, reader)
}

func (c *Component) Name() string { return "storage" }

// Start builds the configured backend.
func (c *Component) Start(ctx context.Context) error {
	s, err := New(ctx, c.cfg, c.log)
	if err != nil {
		return fmt.Errorf("storage start: %w", err)
	}
	c.storage = s
	return nil
}

// Stop closes the backend if it holds a connection.
func (c *Component) Stop(context.Context) error {
	s := c.storage
	c.storage = nil
	if closer, ok := s.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}

// Health looks up a sentinel key, so a missing bucket or bad credentials show
// as degraded. The key does not need to exist.
func (c *Component) Health(ctx context.Context) component.Health {
	if c.storage == nil {
		return component.Health{Name: c.Name(), Status: component.StatusUnhealthy, Message: "storage not initialized"}
	}
	ctx, cancel := context.WithTimeout(ctx, healthTimeout)
	defer cancel()
	if _, err := c.storage.Exists(ctx, healthKey); err != nil {
		return component.Health{Name: c.Name(), Status: component.StatusDegraded, Message: err.Error()}
	}
	return component.Health{Name: c.Name(), Status: component.StatusHealthy}
}

func (c *Component) Describe() component.Description {
	details := "provider=" + c.cfg.Provider
	if b := c.cfg.Bucket(); b != "" {
		details += " bucket=" + b
	}
	return component.Description{Name: "Storage", Type: "storage", Details: details}
}
