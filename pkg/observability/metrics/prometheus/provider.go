/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package prometheus

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/trustbloc/verifier-frontend/internal/logfields"
	"github.com/trustbloc/verifier-frontend/pkg/observability/metrics"
)

var logger = metrics.Logger

var (
	createOnce sync.Once       //nolint:gochecknoglobals
	instance   metrics.Metrics //nolint:gochecknoglobals
)

type promProvider struct {
	httpServer *http.Server
}

// NewPrometheusProvider creates new instance of Prometheus Metrics Provider.
func NewPrometheusProvider(httpServer *http.Server) metrics.Provider {
	return &promProvider{httpServer: httpServer}
}

// Create creates/initializes the prometheus metrics provider.
func (pp *promProvider) Create() error {
	if pp.httpServer == nil {
		return nil
	}

	if err := pp.httpServer.ListenAndServe(); err != nil {
		return fmt.Errorf("start metrics HTTP server: %w", err)
	}

	return nil
}

// Metrics returns supported metrics.
func (pp *promProvider) Metrics() metrics.Metrics {
	return GetMetrics()
}

// Destroy destroys the prometheus metrics provider.
func (pp *promProvider) Destroy() error {
	if pp.httpServer != nil {
		return pp.httpServer.Shutdown(context.Background())
	}

	return nil
}

// GetMetrics returns metrics implementation.
func GetMetrics() metrics.Metrics {
	createOnce.Do(func() {
		instance = NewMetrics()
	})

	return instance
}

// PromMetrics manages the frontend metrics.
type PromMetrics struct {
	initiateTransactionTime    prometheus.Histogram
	retrieveWalletResponseTime prometheus.Histogram
}

// NewMetrics creates instance of prometheus metrics.
func NewMetrics() metrics.Metrics {
	pm := &PromMetrics{
		initiateTransactionTime: newHistogram(
			metrics.Service, metrics.InitiateTransactionMetric,
			"The time (in seconds) it takes to initiate a presentation transaction.",
		),
		retrieveWalletResponseTime: newHistogram(
			metrics.Service, metrics.RetrieveWalletResponseMetric,
			"The time (in seconds) it takes to retrieve and verify a wallet response.",
		),
	}

	prometheus.MustRegister(pm.initiateTransactionTime, pm.retrieveWalletResponseTime)

	return pm
}

// InitiateTransactionTime records the time of an InitiateTransaction service call.
func (pm *PromMetrics) InitiateTransactionTime(value time.Duration) {
	pm.initiateTransactionTime.Observe(value.Seconds())

	logger.Debug("InitiateTransaction service call time", logfields.WithDuration(value))
}

// RetrieveWalletResponseTime records the time of a RetrieveWalletResponse service call.
func (pm *PromMetrics) RetrieveWalletResponseTime(value time.Duration) {
	pm.retrieveWalletResponseTime.Observe(value.Seconds())

	logger.Debug("RetrieveWalletResponse service call time", logfields.WithDuration(value))
}

func newHistogram(subsystem, name, help string) prometheus.Histogram {
	return prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: metrics.Namespace,
		Subsystem: subsystem,
		Name:      name,
		Help:      help,
	})
}
