/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package useragent_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/trustbloc/verifier-frontend/pkg/useragent"
)

func TestClassifier_IsMobile(t *testing.T) {
	classifier := useragent.NewClassifier()

	tests := []struct {
		name      string
		userAgent string
		want      bool
	}{
		{
			name:      "iPhone",
			userAgent: "Mozilla/5.0 (iPhone; CPU iPhone OS 16_5 like Mac OS X) Mobile/15E148",
			want:      true,
		},
		{
			name:      "Android",
			userAgent: "Mozilla/5.0 (Linux; Android 13; Pixel 7) Chrome/114.0.0.0 Mobile Safari/537.36",
			want:      true,
		},
		{
			name:      "iPad",
			userAgent: "Mozilla/5.0 (iPad; CPU OS 16_5 like Mac OS X) Safari/604.1",
			want:      true,
		},
		{
			name:      "Windows Phone",
			userAgent: "Mozilla/5.0 (Windows Phone 10.0; Android 6.0.1) Edge/15.15254",
			want:      true,
		},
		{
			name:      "Opera Mini",
			userAgent: "Opera/9.80 (J2ME/MIDP; Opera Mini/9.80) Presto/2.5.25",
			want:      true,
		},
		{
			name:      "Desktop Firefox",
			userAgent: "Mozilla/5.0 (X11; Linux x86_64) Gecko/20100101 Firefox/115.0",
			want:      false,
		},
		{
			name:      "Desktop Chrome on macOS",
			userAgent: "Mozilla/5.0 (Macintosh; Intel Mac OS X 13_4) Chrome/114.0.0.0 Safari/537.36",
			want:      false,
		},
		{
			name:      "Mixed case marker",
			userAgent: "SomeAgent ANDROID build",
			want:      true,
		},
		{
			name:      "Empty",
			userAgent: "",
			want:      false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, classifier.IsMobile(tt.userAgent))
		})
	}
}
