// Package health probes the server's dependencies and publishes the result
// to the gRPC health service and the REST /healthz endpoint.
package health

import (
	"context"
	"sort"
	"sync"
	"time"

	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"github.com/dtroode/basebackend-server/internal/logger"
)

const (
	statusOK          = "ok"
	statusUnknown     = "unknown"
	statusUnavailable = "unavailable"
)

// DefaultInterval is used when the configured interval is not positive.
const DefaultInterval = 15 * time.Second

// Probe is implemented by the database connection and the blob storages.
type Probe interface {
	Ping(ctx context.Context) error
}

// StatusSetter is satisfied by *health.Server from grpc-go.
type StatusSetter interface {
	SetServingStatus(service string, servingStatus healthpb.HealthCheckResponse_ServingStatus)
}

// Checker periodically pings every registered probe. The overall service
// (empty name) is SERVING only while all probes succeed.
type Checker struct {
	probes   map[string]Probe
	names    []string
	setter   StatusSetter
	interval time.Duration
	timeout  time.Duration
	logger   *logger.Logger

	mu      sync.RWMutex
	healthy bool
	results map[string]string
}

func NewChecker(probes map[string]Probe, setter StatusSetter, interval time.Duration, logger *logger.Logger) *Checker {
	names := make([]string, 0, len(probes))
	results := make(map[string]string, len(probes))
	for name := range probes {
		names = append(names, name)
		results[name] = statusUnknown
	}
	sort.Strings(names)

	if interval <= 0 {
		interval = DefaultInterval
	}

	timeout := interval / 2
	if timeout <= 0 || timeout > 5*time.Second {
		timeout = 5 * time.Second
	}

	return &Checker{
		probes:   probes,
		names:    names,
		setter:   setter,
		interval: interval,
		timeout:  timeout,
		logger:   logger,
		results:  results,
	}
}

// Run checks immediately and then on every tick until ctx is cancelled.
// On return every service is reported NOT_SERVING.
func (c *Checker) Run(ctx context.Context) {
	c.Check(ctx)

	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			c.setAll(healthpb.HealthCheckResponse_NOT_SERVING)
			return
		case <-ticker.C:
			c.Check(ctx)
		}
	}
}

// Check runs all probes once and publishes the outcome.
func (c *Checker) Check(ctx context.Context) bool {
	results := make(map[string]string, len(c.names))
	healthy := true

	for _, name := range c.names {
		probeCtx, cancel := context.WithTimeout(ctx, c.timeout)
		err := c.probes[name].Ping(probeCtx)
		cancel()

		status := healthpb.HealthCheckResponse_SERVING
		results[name] = statusOK
		if err != nil {
			healthy = false
			status = healthpb.HealthCheckResponse_NOT_SERVING
			results[name] = statusUnavailable
			c.logger.Warn("Health checker: probe failed",
				"component", name,
				"error", err.Error())
		}
		c.setter.SetServingStatus(name, status)
	}

	overall := healthpb.HealthCheckResponse_SERVING
	if !healthy {
		overall = healthpb.HealthCheckResponse_NOT_SERVING
	}
	c.setter.SetServingStatus("", overall)

	c.mu.Lock()
	c.healthy = healthy
	c.results = results
	c.mu.Unlock()

	return healthy
}

// Report returns the outcome of the latest check. It is false until the first check completes.
func (c *Checker) Report() (bool, map[string]string) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make(map[string]string, len(c.results))
	for k, v := range c.results {
		out[k] = v
	}
	return c.healthy, out
}

func (c *Checker) setAll(status healthpb.HealthCheckResponse_ServingStatus) {
	for _, name := range c.names {
		c.setter.SetServingStatus(name, status)
	}
	c.setter.SetServingStatus("", status)

	c.mu.Lock()
	c.healthy = false
	c.mu.Unlock()
}
