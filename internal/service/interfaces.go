// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"io"
)

// SlotService is the server side of the backup protocol: it issues tokens
// and stores one encrypted archive per token.
type SlotService interface {
	// Issue generates a new token and registers an empty slot for it.
	Issue(ctx context.Context) (string, error)

	// Store streams r into the slot of token, replacing the previous archive.
	// An unregistered token yields [ErrSlotNotFound].
	Store(ctx context.Context, token string, r io.Reader) (int64, error)

	// Open returns the archive stored for token and its size, or
	// [ErrArchiveAbsent] when there is none.
	Open(ctx context.Context, token string) (io.ReadCloser, int64, error)
}

// SlotServiceWrapper decorates a SlotService with additional behavior such
// as validation.
type SlotServiceWrapper interface {
	Wrap(SlotService) SlotService
}
