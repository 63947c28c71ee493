// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package utils

import (
	"github.com/go-resty/resty/v2"
)

// UserAgent is sent with every client request.
const UserAgent = "go-dir-backup"

// HTTPClient wraps resty.Client so transport defaults live in one place.
type HTTPClient struct {
	*resty.Client
}

// NewHTTPClient returns a client bound to baseURL.
//
// Retries are disabled: a failed transfer is reported to the user instead of
// being replayed, since an upload body cannot be rewound. Timeouts are set per
// request through the context.
func NewHTTPClient(baseURL string) *HTTPClient {
	client := resty.New().
		SetBaseURL(baseURL).
		SetRetryCount(0).
		SetHeader("User-Agent", UserAgent)

	return &HTTPClient{Client: client}
}
