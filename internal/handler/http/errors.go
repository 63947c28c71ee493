// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import "errors"

var (
	// ErrNoFilePart is returned when a multipart upload has no "file" field.
	ErrNoFilePart = errors.New(`multipart field "file" is missing`)

	// ErrNotMultipart is returned when an upload is not multipart/form-data.
	ErrNotMultipart = errors.New("request is not multipart/form-data")
)
