package component

import (
	"context"
	"errors"
	"testing"

	"github.com/kbukum/visitnote/logger"
)

type fakeComponent struct {
	name     string
	startErr error
	stopErr  error
	status   HealthStatus
	events   *[]string
}

func (f *fakeComponent) Name() string { return f.name }

func (f *fakeComponent) Start(context.Context) error {
	*f.events = append(*f.events, "start:"+f.name)
	return f.startErr
}

func (f *fakeComponent) Stop(context.Context) error {
	*f.events = append(*f.events, "stop:"+f.name)
	return f.stopErr
}

func (f *fakeComponent) Health(context.Context) Health {
	return Health{Name: f.name, Status: f.status}
}

func TestRegisterDuplicate(t *testing.T) {
	var events []string
	r := NewRegistry(logger.Nop())
	if err := r.Register(&fakeComponent{name: "storage", events: &events}); err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if err := r.Register(&fakeComponent{name: "storage", events: &events}); err == nil {
		t.Error("expected error for duplicate registration")
	}
}

func TestStartAndStopOrder(t *testing.T) {
	var events []string
	r := NewRegistry(logger.Nop())
	for _, n := range []string{"metrics", "storage", "http-server"} {
		if err := r.Register(&fakeComponent{name: n, events: &events}); err != nil {
			t.Fatal(err)
		}
	}

	ctx := context.Background()
	if err := r.StartAll(ctx); err != nil {
		t.Fatalf("StartAll failed: %v", err)
	}
	if err := r.StopAll(ctx); err != nil {
		t.Fatalf("StopAll failed: %v", err)
	}

	want := []string{
		"start:metrics", "start:storage", "start:http-server",
		"stop:http-server", "stop:storage", "stop:metrics",
	}
	if len(events) != len(want) {
		t.Fatalf("expected %v, got %v", want, events)
	}
	for i := range want {
		if events[i] != want[i] {
			t.Errorf("event %d: expected %s, got %s", i, want[i], events[i])
		}
	}
}

func TestStartFailureStopsOnlyStarted(t *testing.T) {
	var events []string
	r := NewRegistry(logger.Nop())
	_ = r.Register(&fakeComponent{name: "a", events: &events})
	_ = r.Register(&fakeComponent{name: "b", events: &events, startErr: errors.New("bind failed")})
	_ = r.Register(&fakeComponent{name: "c", events: &events})

	ctx := context.Background()
	if err := r.StartAll(ctx); err == nil {
		t.Fatal("expected start error")
	}
	events = events[:0]
	_ = r.StopAll(ctx)
	if len(events) != 1 || events[0] != "stop:a" {
		t.Errorf("expected only a to be stopped, got %v", events)
	}
}

func TestStopAllJoinsErrors(t *testing.T) {
	var events []string
	r := NewRegistry(logger.Nop())
	errA := errors.New("a failed")
	errB := errors.New("b failed")
	_ = r.Register(&fakeComponent{name: "a", events: &events, stopErr: errA})
	_ = r.Register(&fakeComponent{name: "b", events: &events, stopErr: errB})

	ctx := context.Background()
	_ = r.StartAll(ctx)
	err := r.StopAll(ctx)
	if !errors.Is(err, errA) || !errors.Is(err, errB) {
		t.Errorf("expected both stop errors, got %v", err)
	}
}

func TestHealthAllAndGet(t *testing.T) {
	var events []string
	r := NewRegistry(logger.Nop())
	_ = r.Register(&fakeComponent{name: "storage", status: StatusHealthy, events: &events})
	_ = r.Register(&fakeComponent{name: "llm", status: StatusDegraded, events: &events})

	health := r.HealthAll(context.Background())
	if len(health) != 2 || health[1].Status != StatusDegraded {
		t.Errorf("unexpected health report %+v", health)
	}
	if r.Get("llm") == nil {
		t.Error("expected llm component")
	}
	if r.Get("missing") != nil {
		t.Error("expected nil for unknown component")
	}
	if len(r.All()) != 2 {
		t.Errorf("expected 2 components, got %d", len(r.All()))
	}
}
