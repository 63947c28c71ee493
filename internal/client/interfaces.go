// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import "context"

// Client defines the minimal lifecycle contract for runnable client
// applications.
type Client interface {
	// Run starts the client application and blocks until exit.
	Run() error
}

// UI is the interactive front-end started when no action is configured.
type UI interface {
	Run(ctx context.Context) error
}

// Worker is a housekeeping job run once before the first session.
type Worker interface {
	Run()
}
