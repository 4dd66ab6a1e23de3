// Package server provides application lifecycle management: ordered service
// startup and reverse-order shutdown on termination signals.
package server

import (
	"context"
	"fmt"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"go.uber.org/zap"
)

// Service represents a long-running component that can be started and stopped.
type Service interface {
	// Start begins the service. It should block until the service is stopped
	// or an error occurs.
	Start() error
	// Stop gracefully stops the service.
	Stop()
}

// FuncService adapts a start/stop function pair into the Service interface.
type FuncService struct {
	StartFn func() error
	StopFn  func()
}

// Start calls the underlying start function.
func (f *FuncService) Start() error { return f.StartFn() }

// Stop calls the underlying stop function.
func (f *FuncService) Stop() { f.StopFn() }

// Lifecycle manages the startup and shutdown of the registered services.
// Services start in registration order and stop in reverse order.
type Lifecycle struct {
	logger   *zap.Logger
	mu       sync.Mutex
	services []namedService
}

type namedService struct {
	name    string
	service Service
}

// NewLifecycle creates a new Lifecycle manager.
//
// Precondition: logger must be non-nil.
func NewLifecycle(logger *zap.Logger) *Lifecycle {
	return &Lifecycle{logger: logger}
}

// Add registers a named service.
//
// Precondition: name must be non-empty; svc must be non-nil.
func (l *Lifecycle) Add(name string, svc Service) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.services = append(l.services, namedService{name: name, service: svc})
}

// Run starts every registered service and blocks until SIGINT or SIGTERM
// arrives, the context is cancelled, or a service fails. It then stops the
// services in reverse registration order.
//
// Postcondition: all services are stopped when Run returns.
func (l *Lifecycle) Run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	start := time.Now()
	errCh := make(chan error, len(l.services))

	for _, ns := range l.services {
		ns := ns
		l.logger.Info("starting service", zap.String("service", ns.name))
		go func() {
			if err := ns.service.Start(); err != nil {
				errCh <- fmt.Errorf("service %s: %w", ns.name, err)
			}
		}()
	}

	var runErr error
	select {
	case <-ctx.Done():
		l.logger.Info("shutdown requested")
	case runErr = <-errCh:
		l.logger.Error("service failed", zap.Error(runErr))
	}

	for i := len(l.services) - 1; i >= 0; i-- {
		ns := l.services[i]
		ns.service.Stop()
		l.logger.Info("service stopped", zap.String("service", ns.name))
	}

	l.logger.Info("shutdown complete", zap.Duration("uptime", time.Since(start)))
	return runErr
}
