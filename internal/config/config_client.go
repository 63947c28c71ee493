// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"time"
)

// Supported values of the string-typed settings.
const (
	ArchiverModeNative  = "native"
	ArchiverModeCommand = "command"

	CipherLegacy = "legacy"
	CipherSealed = "sealed"
)

// Client defaults.
const (
	DefaultPingTimeout     = 3 * time.Second
	DefaultTransferTimeout = 10 * time.Minute
	DefaultChunkSize       = 8192
	DefaultTarBinary       = "tar"
	DefaultStagingDir      = "."
	DefaultStaleAfter      = 24 * time.Hour
)

// ClientApp holds session defaults prefilled into the TUI or used by a
// headless run.
type ClientApp struct {
	Token     string
	Directory string
	Action    string
	Cipher    string
	LogFile   string
}

// ClientAdapter holds outbound transport settings.
type ClientAdapter struct {
	// HTTPAddress is the default server; the user may override it per session.
	HTTPAddress     string
	PingTimeout     time.Duration
	TransferTimeout time.Duration
	ChunkSize       int
}

// ClientArchiver selects and tunes the archiver.
type ClientArchiver struct {
	Mode      string
	TarBinary string
	ChunkSize int
}

// ClientStorage holds the location of backup staging files.
type ClientStorage struct {
	StagingDir string
}

// ClientWorkers holds background job settings.
type ClientWorkers struct {
	StaleAfter time.Duration
}

// ClientConfig is the client view of [StructuredConfig] with defaults applied.
type ClientConfig struct {
	App      ClientApp
	Adapter  ClientAdapter
	Archiver ClientArchiver
	Storage  ClientStorage
	Workers  ClientWorkers
}

// GetClientConfig loads the merged configuration and maps the client fields.
func GetClientConfig() (*ClientConfig, error) {
	cfg, err := GetStructuredConfig()
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	return NewClientConfig(cfg)
}

// NewClientConfig maps cfg onto a [ClientConfig], fills defaults and validates it.
func NewClientConfig(cfg *StructuredConfig) (*ClientConfig, error) {
	clientCfg := &ClientConfig{
		App: ClientApp{
			Token:     cfg.App.Token,
			Directory: cfg.App.Directory,
			Action:    cfg.App.Action,
			Cipher:    withDefault(cfg.App.Cipher, CipherLegacy),
			LogFile:   cfg.App.LogFile,
		},
		Adapter: ClientAdapter{
			HTTPAddress:     cfg.Adapter.HTTPAddress,
			PingTimeout:     withDefault(cfg.Adapter.PingTimeout, DefaultPingTimeout),
			TransferTimeout: withDefault(cfg.Adapter.TransferTimeout, DefaultTransferTimeout),
			ChunkSize:       withDefault(cfg.Transfer.ChunkSize, DefaultChunkSize),
		},
		Archiver: ClientArchiver{
			Mode:      withDefault(cfg.Archiver.Mode, ArchiverModeNative),
			TarBinary: withDefault(cfg.Archiver.TarBinary, DefaultTarBinary),
			ChunkSize: withDefault(cfg.Transfer.ChunkSize, DefaultChunkSize),
		},
		Storage: ClientStorage{
			StagingDir: withDefault(cfg.Storage.StagingDir, DefaultStagingDir),
		},
		Workers: ClientWorkers{
			StaleAfter: withDefault(cfg.Workers.StaleAfter, DefaultStaleAfter),
		},
	}

	if err := clientCfg.validate(); err != nil {
		return nil, err
	}

	return clientCfg, nil
}

func withDefault[T comparable](v, def T) T {
	var zero T
	if v == zero {
		return def
	}
	return v
}
