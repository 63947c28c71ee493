// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"

	"github.com/MKhiriev/go-dir-backup/models"
)

// Request carries everything one session needs. It is passed by value through
// the pipeline; the service keeps no per-user state between sessions.
type Request struct {
	Action    models.Action
	Address   string
	Token     string
	Directory string
}

// Observer receives the events of a running session on the pipeline
// goroutine. It must not block for long. A nil Observer is allowed.
type Observer func(models.SessionEvent)

// BackupService sequences the archiver, the cipher and the server adapter into
// the user-facing sessions.
//
// Every session starts with input validation and a health check. A failed
// check ends the session with [models.FailureUnreachable] before any file is
// touched. Staging files are removed before the final event is emitted, no
// matter which stage failed.
type BackupService interface {
	// CheckServer pings req.Address.
	CheckServer(ctx context.Context, req Request, observe Observer) models.Outcome

	// InitIdentity pings req.Address and asks the server for a new token.
	// On success Outcome.Token holds it.
	InitIdentity(ctx context.Context, req Request, observe Observer) models.Outcome

	// Backup packs req.Directory, encrypts the archive with a key derived
	// from req.Token and uploads the blob.
	Backup(ctx context.Context, req Request, observe Observer) models.Outcome

	// Restore downloads the blob stored for req.Token into req.Directory,
	// decrypts it and unpacks it into the parent of req.Directory.
	Restore(ctx context.Context, req Request, observe Observer) models.Outcome

	// Run dispatches on req.Action.
	Run(ctx context.Context, req Request, observe Observer) models.Outcome

	// Start runs the session for req on a new goroutine and streams its
	// events. The last event carries the Outcome; the channel is closed right
	// after it. The caller must drain the channel.
	Start(ctx context.Context, req Request) <-chan models.SessionEvent
}
