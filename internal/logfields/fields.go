/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package logfields

import (
	"time"

	"go.uber.org/zap"
)

// Log Fields.
const (
	FieldSessionID         = "sessionID"
	FieldPresentationID    = "presentationID"
	FieldUserAgent         = "userAgent"
	FieldIsMobile          = "isMobile"
	FieldJarmOption        = "jarmOption"
	FieldWalletRedirectURI = "walletRedirectURI"
	FieldResponseCode      = "responseCode"
	FieldDocumentCount     = "documentCount"
	FieldDuration          = "duration"
	FieldStorageType       = "storageType"
	FieldUserLogLevel      = "userLogLevel"
	FieldHostURL           = "hostURL"
)

// WithSessionID sets the SessionID field.
func WithSessionID(sessionID string) zap.Field {
	return zap.String(FieldSessionID, sessionID)
}

// WithPresentationID sets the PresentationID field.
func WithPresentationID(presentationID string) zap.Field {
	return zap.String(FieldPresentationID, presentationID)
}

// WithUserAgent sets the UserAgent field.
func WithUserAgent(userAgent string) zap.Field {
	return zap.String(FieldUserAgent, userAgent)
}

// WithIsMobile sets the IsMobile field.
func WithIsMobile(isMobile bool) zap.Field {
	return zap.Bool(FieldIsMobile, isMobile)
}

// WithJarmOption sets the JarmOption field.
func WithJarmOption(jarmOption string) zap.Field {
	return zap.String(FieldJarmOption, jarmOption)
}

// WithWalletRedirectURI sets the WalletRedirectURI field.
func WithWalletRedirectURI(uri string) zap.Field {
	return zap.String(FieldWalletRedirectURI, uri)
}

// WithResponseCode sets the ResponseCode field.
func WithResponseCode(responseCode string) zap.Field {
	return zap.String(FieldResponseCode, responseCode)
}

// WithDocumentCount sets the DocumentCount field.
func WithDocumentCount(count int) zap.Field {
	return zap.Int(FieldDocumentCount, count)
}

// WithDuration sets the Duration field.
func WithDuration(value time.Duration) zap.Field {
	return zap.Duration(FieldDuration, value)
}

// WithStorageType sets the StorageType field.
func WithStorageType(storageType string) zap.Field {
	return zap.String(FieldStorageType, storageType)
}

// WithUserLogLevel sets the UserLogLevel field.
func WithUserLogLevel(logLevel string) zap.Field {
	return zap.String(FieldUserLogLevel, logLevel)
}

// WithHostURL sets the HostURL field.
func WithHostURL(hostURL string) zap.Field {
	return zap.String(FieldHostURL, hostURL)
}
