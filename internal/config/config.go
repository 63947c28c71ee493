// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"time"
)

// StructuredConfig is the merged configuration shared by the backup client
// and the reference server. It is populated from environment variables,
// command-line flags and an optional JSON file.
//
// Struct tags:
//   - envPrefix: prefix applied to nested env lookups (caarlos0/env).
//   - env:       environment variable name for scalar fields.
type StructuredConfig struct {
	// App holds the session defaults of the client: token, directory,
	// action and cipher scheme.
	App App `envPrefix:"APP_"`

	// Adapter holds the remote server address and outbound timeouts.
	Adapter Adapter `envPrefix:"ADAPTER_"`

	// Archiver selects how directories are packed and unpacked.
	Archiver Archiver `envPrefix:"ARCHIVER_"`

	// Transfer holds upload / download tuning.
	Transfer Transfer `envPrefix:"TRANSFER_"`

	// Storage holds client staging and server persistence settings.
	Storage Storage `envPrefix:"STORAGE_"`

	// Server holds listen address and limits of the reference server.
	Server Server `envPrefix:"SERVER_"`

	// Workers holds background worker settings.
	Workers Workers `envPrefix:"WORKERS_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	JSONFilePath string `env:"CONFIG"`
}

// App holds client session defaults.
type App struct {
	// Token is the opaque account token. It doubles as the encryption secret.
	// Env: APP_TOKEN
	Token string `env:"TOKEN"`

	// Directory is the backup source or the restore destination.
	// Environment references such as $HOME are expanded.
	// Env: APP_DIRECTORY
	Directory string `env:"DIRECTORY"`

	// Action runs one session without the TUI: ping, init, backup or restore.
	// Env: APP_ACTION
	Action string `env:"ACTION"`

	// Cipher selects the blob format: "legacy" (AES-ECB) or "sealed".
	// Env: APP_CIPHER
	Cipher string `env:"CIPHER"`

	// LogFile is where the client writes its JSON log.
	// Env: APP_LOG_FILE
	LogFile string `env:"LOG_FILE"`
}

// Adapter holds outbound transport settings of the client.
type Adapter struct {
	// HTTPAddress is the backup server, "host:port" or a full URL.
	// Env: ADAPTER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// PingTimeout bounds the health check request.
	// Env: ADAPTER_PING_TIMEOUT
	PingTimeout time.Duration `env:"PING_TIMEOUT"`

	// TransferTimeout bounds a whole upload or download, body included.
	// Env: ADAPTER_TRANSFER_TIMEOUT
	TransferTimeout time.Duration `env:"TRANSFER_TIMEOUT"`
}

// Archiver selects the archive implementation.
type Archiver struct {
	// Mode is "native" (in-process tar.gz) or "command" (external tar).
	// Env: ARCHIVER_MODE
	Mode string `env:"MODE"`

	// TarBinary is the executable used in "command" mode.
	// Env: ARCHIVER_TAR_BINARY
	TarBinary string `env:"TAR_BINARY"`
}

// Transfer holds streaming settings.
type Transfer struct {
	// ChunkSize is the read size used when streaming files, in bytes.
	// Env: TRANSFER_CHUNK_SIZE
	ChunkSize int `env:"CHUNK_SIZE"`
}

// Storage groups client staging and server persistence settings.
type Storage struct {
	// StagingDir holds backup staging files. Defaults to the working directory.
	// Env: STORAGE_STAGING_DIR
	StagingDir string `env:"STAGING_DIR"`

	// DB holds the slot registry connection settings.
	DB DB `envPrefix:"DB_"`

	// Files holds the archive blob store settings.
	Files Files `envPrefix:"FILES_"`

	// S3 holds the object storage settings used when Files.Backend is "s3".
	S3 S3 `envPrefix:"S3_"`
}

// DB holds slot registry connection settings.
type DB struct {
	// DSN is a PostgreSQL URL (postgres://...) or a SQLite file path.
	// Env: STORAGE_DB_DATABASE_URI
	DSN string `env:"DATABASE_URI"`
}

// Files holds archive blob store settings.
type Files struct {
	// BinaryDataDir is where the disk backend keeps one archive per token.
	// Env: STORAGE_FILES_BINARY_DATA_DIR
	BinaryDataDir string `env:"BINARY_DATA_DIR"`

	// Backend is "disk" or "s3".
	// Env: STORAGE_FILES_BACKEND
	Backend string `env:"BACKEND"`
}

// S3 holds object storage settings.
type S3 struct {
	Bucket          string `env:"BUCKET"`
	Region          string `env:"REGION"`
	Endpoint        string `env:"ENDPOINT"`
	AccessKeyID     string `env:"ACCESS_KEY_ID"`
	SecretAccessKey string `env:"SECRET_ACCESS_KEY"`
	UsePathStyle    bool   `env:"USE_PATH_STYLE"`
}

// Server holds the reference server settings.
type Server struct {
	// HTTPAddress is the listen address in "host:port" format.
	// Env: SERVER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// RequestTimeout bounds reading and writing of one request.
	// Env: SERVER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`

	// MaxUploadBytes caps the size of one uploaded archive.
	// Env: SERVER_MAX_UPLOAD_BYTES
	MaxUploadBytes int64 `env:"MAX_UPLOAD_BYTES"`
}

// Workers holds background worker settings.
type Workers struct {
	// StaleAfter is the age after which leftover staging files are swept.
	// Env: WORKERS_STALE_AFTER
	StaleAfter time.Duration `env:"STALE_AFTER"`
}

// GetStructuredConfig loads, merges and validates the configuration from all
// sources in the following priority order (later sources override earlier
// non-zero fields):
//  1. Environment variables
//  2. Command-line flags
//  3. JSON file (path resolved from sources 1 and 2)
func GetStructuredConfig() (*StructuredConfig, error) {
	return newConfigBuilder().
		withEnv().
		withFlags().
		withJSON().
		build()
}
