// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"errors"
	"flag"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// NetAddress holds a listen address split into host and port.
// It implements the flag.Value interface.
type NetAddress struct {
	Host string
	Port int
}

// ParseFlags parses the command-line arguments shared by both binaries.
//
// Flags:
//
//	-a                 server listen address in format [host]:port
//	-server            backup server address used by the client
//	-token             account token
//	-dir               backup source / restore destination
//	-action            headless action: ping, init, backup, restore
//	-cipher            blob format: legacy, sealed
//	-log-file          client log file
//	-archiver          archiver mode: native, command
//	-tar               tar executable for command mode
//	-chunk-size        streaming chunk size in bytes
//	-staging-dir       directory for backup staging files
//	-ping-timeout      health check timeout (e.g. "3s")
//	-transfer-timeout  upload / download timeout (e.g. "10m")
//	-stale-after       age of staging files swept at startup
//	-request-timeout   server request timeout
//	-max-upload-bytes  server upload size limit
//	-d                 slot registry DSN
//	-f                 archive data directory
//	-files-backend     archive blob store: disk, s3
//	-s3-bucket, -s3-region, -s3-endpoint, -s3-path-style
//	-c / -config       JSON config file path
func ParseFlags(args []string) (*StructuredConfig, error) {
	fs := flag.NewFlagSet(filepath.Base(os.Args[0]), flag.ContinueOnError)

	var (
		listenAddress   NetAddress
		cfg             StructuredConfig
		pingTimeout     time.Duration
		transferTimeout time.Duration
		staleAfter      time.Duration
		requestTimeout  time.Duration
	)

	fs.Var(&listenAddress, "a", "Server listen address host:port")
	fs.StringVar(&cfg.Adapter.HTTPAddress, "server", "", "Backup server address")
	fs.StringVar(&cfg.App.Token, "token", "", "Account token")
	fs.StringVar(&cfg.App.Directory, "dir", "", "Backup source or restore destination")
	fs.StringVar(&cfg.App.Action, "action", "", "Headless action: ping, init, backup, restore")
	fs.StringVar(&cfg.App.Cipher, "cipher", "", "Blob format: legacy, sealed")
	fs.StringVar(&cfg.App.LogFile, "log-file", "", "Client log file")
	fs.StringVar(&cfg.Archiver.Mode, "archiver", "", "Archiver mode: native, command")
	fs.StringVar(&cfg.Archiver.TarBinary, "tar", "", "tar executable for command mode")
	fs.IntVar(&cfg.Transfer.ChunkSize, "chunk-size", 0, "Streaming chunk size in bytes")
	fs.StringVar(&cfg.Storage.StagingDir, "staging-dir", "", "Directory for backup staging files")
	fs.DurationVar(&pingTimeout, "ping-timeout", 0, "Health check timeout (e.g. 3s)")
	fs.DurationVar(&transferTimeout, "transfer-timeout", 0, "Transfer timeout (e.g. 10m)")
	fs.DurationVar(&staleAfter, "stale-after", 0, "Age of staging files swept at startup")
	fs.DurationVar(&requestTimeout, "request-timeout", 0, "Server request timeout (e.g. 30s, 1m)")
	fs.Int64Var(&cfg.Server.MaxUploadBytes, "max-upload-bytes", 0, "Server upload size limit")
	fs.StringVar(&cfg.Storage.DB.DSN, "d", "", "Slot registry DSN")
	fs.StringVar(&cfg.Storage.Files.BinaryDataDir, "f", "", "Archive data directory")
	fs.StringVar(&cfg.Storage.Files.Backend, "files-backend", "", "Archive blob store: disk, s3")
	fs.StringVar(&cfg.Storage.S3.Bucket, "s3-bucket", "", "S3 bucket")
	fs.StringVar(&cfg.Storage.S3.Region, "s3-region", "", "S3 region")
	fs.StringVar(&cfg.Storage.S3.Endpoint, "s3-endpoint", "", "S3 endpoint override")
	fs.BoolVar(&cfg.Storage.S3.UsePathStyle, "s3-path-style", false, "Use path-style S3 addressing")
	fs.StringVar(&cfg.JSONFilePath, "c", "", "JSON config file path")
	fs.StringVar(&cfg.JSONFilePath, "config", "", "JSON config file path (alias)")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("error parsing flags: %w", err)
	}

	cfg.Server.HTTPAddress = listenAddress.String()
	cfg.Server.RequestTimeout = requestTimeout
	cfg.Adapter.PingTimeout = pingTimeout
	cfg.Adapter.TransferTimeout = transferTimeout
	cfg.Workers.StaleAfter = staleAfter

	return &cfg, nil
}

// String returns host:port, or "" when nothing was set.
func (a *NetAddress) String() string {
	if a.Host == "" && a.Port == 0 {
		return ""
	}

	return net.JoinHostPort(a.Host, strconv.Itoa(a.Port))
}

// Set parses host:port. The host may be empty (all interfaces), "localhost"
// or an IP address.
func (a *NetAddress) Set(s string) error {
	host, rawPort, err := net.SplitHostPort(s)
	if err != nil {
		return errors.New("need address in a form `host:port`")
	}

	port, err := strconv.Atoi(rawPort)
	if err != nil {
		return err
	}

	if port < 1 || port > 65535 {
		return errors.New("port number must be in range 1-65535")
	}

	if host != "" && host != "localhost" && net.ParseIP(host) == nil {
		return errors.New("incorrect IP-address provided")
	}

	a.Host = host
	a.Port = port
	return nil
}
