// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"errors"
	"fmt"
)

var (
	// ErrConnectionFailed wraps transport errors: refused connections,
	// DNS failures, resets, timeouts and bodies cut short.
	ErrConnectionFailed = errors.New("connection failed")

	// ErrUnexpectedResponse is returned by Ping when the server answers 200
	// with a body other than the expected pong.
	ErrUnexpectedResponse = errors.New("unexpected response")

	// ErrEmptyToken is returned by InitToken when the server answers 200 with
	// an empty body.
	ErrEmptyToken = errors.New("server issued an empty token")

	// ErrInvalidAddress is returned by NewHTTPServerAdapter for an address
	// that cannot be turned into a base URL.
	ErrInvalidAddress = errors.New("invalid server address")
)

// RejectedError reports a completed HTTP exchange with a status other than 200.
type RejectedError struct {
	StatusCode int
	Body       string
}

func (e *RejectedError) Error() string {
	return fmt.Sprintf("server rejected request: %d %s", e.StatusCode, e.Body)
}
