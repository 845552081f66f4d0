package bootstrap

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/kbukum/visitnote/component"
	"github.com/kbukum/visitnote/logger"
)

// RouteInfo is a registered HTTP route.
type RouteInfo struct {
	Method string
	Path   string
}

// Summary collects what is printed once startup completes.
type Summary struct {
	serviceName     string
	version         string
	startupDuration time.Duration
	routes          []RouteInfo
}

// NewSummary creates an empty summary.
func NewSummary(serviceName, version string) *Summary {
	return &Summary{serviceName: serviceName, version: version}
}

// SetStartupDuration records how long startup took.
func (s *Summary) SetStartupDuration(d time.Duration) { s.startupDuration = d }

// TrackRoute records a route for display.
func (s *Summary) TrackRoute(method, path string) {
	s.routes = append(s.routes, RouteInfo{Method: method, Path: path})
}

// Routes returns the tracked routes.
func (s *Summary) Routes() []RouteInfo { return s.routes }

// Lines renders the summary. Components implementing component.Describable
// contribute a line with their details.
func (s *Summary) Lines(ctx context.Context, reg *component.Registry) []string {
	lines := []string{fmt.Sprintf("%s %s started in %s", s.serviceName, s.version, s.startupDuration.Round(time.Millisecond))}

	health := make(map[string]component.Health)
	for _, h := range reg.HealthAll(ctx) {
		health[h.Name] = h
	}
	for _, c := range reg.All() {
		status := string(health[c.Name()].Status)
		d, ok := c.(component.Describable)
		if !ok {
			lines = append(lines, fmt.Sprintf("  %-14s %s", c.Name(), status))
			continue
		}
		desc := d.Describe()
		line := fmt.Sprintf("  %-14s %-10s %s", desc.Name, status, desc.Details)
		if desc.Port > 0 {
			line += fmt.Sprintf(" port=%d", desc.Port)
		}
		lines = append(lines, strings.TrimRight(line, " "))
	}
	for _, r := range s.routes {
		lines = append(lines, fmt.Sprintf("  %-7s %s", r.Method, r.Path))
	}
	return lines
}

// Display logs the summary line by line.
func (s *Summary) Display(ctx context.Context, reg *component.Registry, log *logger.Logger) {
	for _, line := range s.Lines(ctx, reg) {
		log.Info(line)
	}
}
