// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/go-resty/resty/v2"
)

// maxErrorBody caps how much of a rejection body is kept for the user.
const maxErrorBody = 4096

func mapHTTPError(resp *resty.Response) error {
	if resp.StatusCode() == http.StatusOK {
		return nil
	}

	return rejected(resp.StatusCode(), resp.Body())
}

func mapStreamError(status int, body io.Reader) error {
	if status == http.StatusOK {
		return nil
	}

	raw, _ := io.ReadAll(io.LimitReader(body, maxErrorBody))
	return rejected(status, raw)
}

func rejected(status int, raw []byte) error {
	if len(raw) > maxErrorBody {
		raw = raw[:maxErrorBody]
	}

	body := strings.TrimSpace(string(raw))
	if body == "" {
		body = http.StatusText(status)
	}

	return &RejectedError{StatusCode: status, Body: body}
}

func mapTransportError(op string, err error) error {
	return fmt.Errorf("%s request: %w: %v", op, ErrConnectionFailed, err)
}
