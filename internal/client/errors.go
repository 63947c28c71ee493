// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import "errors"

var (
	// ErrNoAction is returned by a headless run without an action.
	ErrNoAction = errors.New("no action given: pass -action ping|init|backup|restore or run in a terminal")

	// ErrUnknownAction is returned for an action outside ping, init, backup, restore.
	ErrUnknownAction = errors.New("unknown action")

	// ErrSessionFailed is returned when a headless session ends in Failed.
	ErrSessionFailed = errors.New("session failed")
)
