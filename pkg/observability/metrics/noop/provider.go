/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package noop

import (
	"time"

	"github.com/trustbloc/verifier-frontend/pkg/observability/metrics"
)

// NoMetrics provides the noop metrics implementation.
type NoMetrics struct{}

// GetMetrics returns the noop metrics implementation.
func GetMetrics() metrics.Metrics {
	return &NoMetrics{}
}

// InitiateTransactionTime records nothing.
func (nm *NoMetrics) InitiateTransactionTime(time.Duration) {
}

// RetrieveWalletResponseTime records nothing.
func (nm *NoMetrics) RetrieveWalletResponseTime(time.Duration) {
}
