/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package metrics

import (
	"time"

	"github.com/trustbloc/logutil-go/pkg/log"
)

// Logger used by the metrics providers.
var Logger = log.New("metrics-provider")

// Constants used by the metrics providers.
const (
	// Namespace of all frontend metrics.
	Namespace = "frontend"

	// Service operations.
	Service                      = "service"
	InitiateTransactionMetric    = "service_initiateTransaction_seconds"
	RetrieveWalletResponseMetric = "service_retrieveWalletResponse_seconds"
)

// Provider is an interface for metrics provider.
type Provider interface {
	// Create creates a metrics provider instance
	Create() error
	// Destroy destroys the metrics provider instance
	Destroy() error
	// Metrics providers metrics
	Metrics() Metrics
}

// Metrics is an interface for the metrics to be supported by the provider.
type Metrics interface {
	InitiateTransactionTime(value time.Duration)
	RetrieveWalletResponseTime(value time.Duration)
}
