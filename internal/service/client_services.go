// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"fmt"

	"github.com/MKhiriev/go-dir-backup/internal/adapter"
	"github.com/MKhiriev/go-dir-backup/internal/archiver"
	"github.com/MKhiriev/go-dir-backup/internal/config"
	"github.com/MKhiriev/go-dir-backup/internal/crypto"
	"github.com/MKhiriev/go-dir-backup/internal/logger"
)

type ClientServices struct {
	BackupService BackupService
}

func NewClientServices(cfg *config.ClientConfig, log *logger.Logger) (*ClientServices, error) {
	arch, err := archiver.New(cfg.Archiver, log)
	if err != nil {
		return nil, fmt.Errorf("error creating archiver: %w", err)
	}

	cipher, err := crypto.NewCipher(cfg.App.Cipher)
	if err != nil {
		return nil, fmt.Errorf("error creating cipher: %w", err)
	}

	backupSvc := NewBackupService(BackupDeps{
		NewAdapter: adapter.NewFactory(cfg.Adapter, log),
		Archiver:   arch,
		Cipher:     cipher,
		StagingDir: cfg.Storage.StagingDir,
	}, log)

	return &ClientServices{BackupService: backupSvc}, nil
}
