// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package validators

import "errors"

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")

	ErrEmptyToken     = errors.New("token is required")
	ErrMalformedToken = errors.New("token is not a UUID")
	ErrNegativeSize   = errors.New("size cannot be negative")
)
