// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package validators holds input checks shared by the server handlers and
// services.
//
// A [Validator] is injected into a service wrapper, which runs it before
// delegating to the wrapped service, so storage code only ever sees checked
// values.
package validators

import "context"

// Validator validates an arbitrary value, optionally only the named fields.
type Validator interface {
	Validate(context.Context, any, ...string) error
}
