/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package useragent classifies inbound clients as mobile or desktop. The
// classification only decides whether the wallet can redirect back to the
// frontend on the same device; it never blocks a transaction.
package useragent

import "strings"

var mobileMarkers = []string{
	"mobile",
	"android",
	"iphone",
	"ipad",
	"ipod",
	"windows phone",
	"blackberry",
	"webos",
	"opera mini",
	"opera mobi",
}

// Classifier is the default user-agent based device classifier.
type Classifier struct{}

// NewClassifier creates a Classifier.
func NewClassifier() *Classifier {
	return &Classifier{}
}

// IsMobile reports whether userAgent looks like a mobile browser.
func (c *Classifier) IsMobile(userAgent string) bool {
	ua := strings.ToLower(userAgent)

	for _, marker := range mobileMarkers {
		if strings.Contains(ua, marker) {
			return true
		}
	}

	return false
}
