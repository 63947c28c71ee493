// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"slices"
)

var (
	knownActions   = []string{"", "ping", "init", "backup", "restore"}
	knownCiphers   = []string{"", CipherLegacy, CipherSealed}
	knownArchivers = []string{"", ArchiverModeNative, ArchiverModeCommand}
	knownBackends  = []string{"", FilesBackendDisk, FilesBackendS3}
)

// validate rejects unsupported enum values early, before any view is built.
// Required fields depend on the binary and are checked by the views.
func (cfg *StructuredConfig) validate() error {
	if !slices.Contains(knownActions, cfg.App.Action) {
		return fmt.Errorf("%w: unknown action %q", ErrInvalidAppConfigs, cfg.App.Action)
	}
	if !slices.Contains(knownCiphers, cfg.App.Cipher) {
		return fmt.Errorf("%w: unknown cipher %q", ErrInvalidAppConfigs, cfg.App.Cipher)
	}
	if !slices.Contains(knownArchivers, cfg.Archiver.Mode) {
		return fmt.Errorf("%w: unknown mode %q", ErrInvalidArchiverConfigs, cfg.Archiver.Mode)
	}
	if !slices.Contains(knownBackends, cfg.Storage.Files.Backend) {
		return fmt.Errorf("%w: unknown files backend %q", ErrInvalidStorageConfigs, cfg.Storage.Files.Backend)
	}
	if cfg.Transfer.ChunkSize < 0 {
		return fmt.Errorf("%w: negative chunk size", ErrInvalidTransferConfigs)
	}

	return nil
}

func (cfg *ClientConfig) validate() error {
	if cfg.Adapter.PingTimeout <= 0 || cfg.Adapter.TransferTimeout <= 0 {
		return fmt.Errorf("%w: timeouts must be positive", ErrInvalidAdapterConfigs)
	}

	if cfg.Adapter.ChunkSize <= 0 || cfg.Archiver.ChunkSize <= 0 {
		return fmt.Errorf("%w: chunk size must be positive", ErrInvalidTransferConfigs)
	}

	if cfg.Archiver.Mode == ArchiverModeCommand && cfg.Archiver.TarBinary == "" {
		return fmt.Errorf("%w: tar binary is required in command mode", ErrInvalidArchiverConfigs)
	}

	if cfg.Workers.StaleAfter <= 0 {
		return fmt.Errorf("%w: stale_after must be positive", ErrInvalidWorkerConfigs)
	}

	return nil
}

func (cfg *ServerConfig) validate() error {
	if cfg.Server.HTTPAddress == "" || cfg.Server.RequestTimeout <= 0 || cfg.Server.MaxUploadBytes <= 0 {
		return ErrInvalidServerConfigs
	}

	if cfg.Storage.DSN == "" {
		return fmt.Errorf("%w: empty database DSN", ErrInvalidStorageConfigs)
	}

	switch cfg.Storage.Backend {
	case FilesBackendS3:
		if cfg.Storage.S3.Bucket == "" {
			return fmt.Errorf("%w: s3 backend needs a bucket", ErrInvalidStorageConfigs)
		}
	default:
		if cfg.Storage.DataDir == "" {
			return fmt.Errorf("%w: empty data directory", ErrInvalidStorageConfigs)
		}
	}

	return nil
}
