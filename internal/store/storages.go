// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/MKhiriev/go-dir-backup/internal/config"
	"github.com/MKhiriev/go-dir-backup/internal/logger"
)

type Storages struct {
	SlotRepository SlotRepository
	ArchiveStorage ArchiveStorage

	db *DB
}

// NewServerStorages connects the slot registry, applies migrations and opens
// the configured archive backend.
func NewServerStorages(ctx context.Context, cfg config.ServerStorage, log *logger.Logger) (*Storages, error) {
	db, err := NewConnect(ctx, cfg.DSN, log)
	if err != nil {
		return nil, fmt.Errorf("error connecting slot registry: %w", err)
	}

	if err := db.Migrate(); err != nil {
		_ = db.Close()
		return nil, err
	}

	var archives ArchiveStorage
	switch cfg.Backend {
	case "", config.FilesBackendDisk:
		archives, err = NewDiskArchiveStorage(cfg.DataDir, log)
	case config.FilesBackendS3:
		archives, err = NewS3ArchiveStorage(ctx, cfg.S3, filepath.Join(cfg.DataDir, "spool"), log)
	default:
		err = fmt.Errorf("%w: %q", ErrUnknownBackend, cfg.Backend)
	}
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	return &Storages{
		SlotRepository: NewSlotRepository(db, log),
		ArchiveStorage: archives,
		db:             db,
	}, nil
}

func (s *Storages) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}
