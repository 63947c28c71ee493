// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter talks to the backup server over HTTP.
//
// [ServerAdapter] hides the wire format from the service layer. Failures are
// reported with the values in errors.go so callers can tell a rejected
// request ([RejectedError]) from a broken connection ([ErrConnectionFailed])
// with [errors.Is] / [errors.As].
package adapter

import (
	"context"

	"github.com/MKhiriev/go-dir-backup/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/server_adapter_mock.go -package=mock

// ServerAdapter is the client side of the backup server protocol. One adapter
// is bound to one server address.
type ServerAdapter interface {
	// Ping calls GET /ping and succeeds only on 200 with the body "PONG!!!"
	// (surrounding whitespace ignored). The request is bounded by the ping
	// timeout.
	Ping(ctx context.Context) error

	// InitToken calls GET /init-uuid and returns the issued token with
	// whitespace trimmed. An empty body is [ErrEmptyToken].
	InitToken(ctx context.Context) (string, error)

	// Upload sends the file at path as the multipart field "file" to
	// POST /upload?uuid=<token>. The file is read in chunks and progress is
	// reported after each chunk is read. Only 200 counts as success.
	Upload(ctx context.Context, path, token string, progress models.ProgressFunc) error

	// Download streams GET /download?uuid=<token> into a new file at dest.
	// On any failure dest is removed. Only 200 counts as success.
	Download(ctx context.Context, token, dest string, progress models.ProgressFunc) error
}

// Factory builds a [ServerAdapter] for an address entered by the user.
type Factory func(address string) (ServerAdapter, error)
