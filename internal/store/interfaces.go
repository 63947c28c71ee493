// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"io"
	"time"

	"github.com/MKhiriev/go-dir-backup/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// SlotRepository keeps the registry of issued tokens on the server.
type SlotRepository interface {
	// Create registers a new slot. A token already registered yields
	// [ErrSlotAlreadyExists].
	Create(ctx context.Context, slot models.Slot) error

	// Get returns the slot for token or [ErrSlotNotFound].
	Get(ctx context.Context, token string) (models.Slot, error)

	// MarkUploaded records the size and time of the latest upload.
	// An unknown token yields [ErrSlotNotFound].
	MarkUploaded(ctx context.Context, token string, size int64, at time.Time) error
}

// ArchiveStorage keeps one encrypted archive per token.
type ArchiveStorage interface {
	// Save streams r into the archive of token, replacing the previous one
	// only once r is fully read. It returns the number of bytes stored.
	Save(ctx context.Context, token string, r io.Reader) (int64, error)

	// Open returns the archive of token and its size, or [ErrArchiveNotFound].
	// The caller closes the reader.
	Open(ctx context.Context, token string) (io.ReadCloser, int64, error)
}

// ErrorClassificator decides whether a failed database call may be retried.
type ErrorClassificator interface {
	Classify(err error) ErrorClassification
}
