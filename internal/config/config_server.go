// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"path/filepath"
	"time"
)

// Archive blob store backends.
const (
	FilesBackendDisk = "disk"
	FilesBackendS3   = "s3"
)

// Server defaults.
const (
	DefaultServerAddress  = ":8080"
	DefaultRequestTimeout = 10 * time.Minute
	DefaultMaxUploadBytes = int64(10 << 30)
	DefaultDataDir        = "data"
)

// ServerHTTP holds listener settings.
type ServerHTTP struct {
	HTTPAddress    string
	RequestTimeout time.Duration
	MaxUploadBytes int64
}

// ServerStorage holds slot registry and blob store settings.
type ServerStorage struct {
	DSN     string
	DataDir string
	Backend string
	S3      S3
}

// ServerConfig is the reference server view of [StructuredConfig].
type ServerConfig struct {
	Server  ServerHTTP
	Storage ServerStorage
}

// GetServerConfig loads the merged configuration and maps the server fields.
func GetServerConfig() (*ServerConfig, error) {
	cfg, err := GetStructuredConfig()
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	return NewServerConfig(cfg)
}

// NewServerConfig maps cfg onto a [ServerConfig], fills defaults and validates it.
func NewServerConfig(cfg *StructuredConfig) (*ServerConfig, error) {
	dataDir := withDefault(cfg.Storage.Files.BinaryDataDir, DefaultDataDir)

	serverCfg := &ServerConfig{
		Server: ServerHTTP{
			HTTPAddress:    withDefault(cfg.Server.HTTPAddress, DefaultServerAddress),
			RequestTimeout: withDefault(cfg.Server.RequestTimeout, DefaultRequestTimeout),
			MaxUploadBytes: withDefault(cfg.Server.MaxUploadBytes, DefaultMaxUploadBytes),
		},
		Storage: ServerStorage{
			DSN:     withDefault(cfg.Storage.DB.DSN, filepath.Join(dataDir, "slots.db")),
			DataDir: dataDir,
			Backend: withDefault(cfg.Storage.Files.Backend, FilesBackendDisk),
			S3:      cfg.Storage.S3,
		},
	}

	if err := serverCfg.validate(); err != nil {
		return nil, err
	}

	return serverCfg, nil
}
