// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/MKhiriev/go-dir-backup/internal/config"
	"github.com/MKhiriev/go-dir-backup/internal/logger"
	"github.com/MKhiriev/go-dir-backup/internal/utils"
	"github.com/MKhiriev/go-dir-backup/models"
)

// Pong is the exact body a healthy server returns from GET /ping.
const Pong = "PONG!!!"

// MultipartField is the form field carrying the uploaded archive.
const MultipartField = "file"

type httpServerAdapter struct {
	client *utils.HTTPClient

	pingTimeout     time.Duration
	transferTimeout time.Duration
	chunkSize       int

	logger *logger.Logger
}

// NewHTTPServerAdapter builds the HTTP implementation of [ServerAdapter] for
// address. The address may be "host:port" or a full URL; "http://" is
// assumed when no scheme is given and a trailing slash is dropped.
func NewHTTPServerAdapter(address string, cfg config.ClientAdapter, log *logger.Logger) (ServerAdapter, error) {
	baseURL, err := normalizeBaseURL(address)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidAddress, err)
	}

	return &httpServerAdapter{
		client:          utils.NewHTTPClient(baseURL),
		pingTimeout:     cfg.PingTimeout,
		transferTimeout: cfg.TransferTimeout,
		chunkSize:       cfg.ChunkSize,
		logger:          log,
	}, nil
}

// NewFactory returns a [Factory] creating adapters with cfg.
func NewFactory(cfg config.ClientAdapter, log *logger.Logger) Factory {
	return func(address string) (ServerAdapter, error) {
		return NewHTTPServerAdapter(address, cfg, log)
	}
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

// Ping implements [ServerAdapter].
func (h *httpServerAdapter) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, h.pingTimeout)
	defer cancel()

	resp, err := h.client.R().
		SetContext(ctx).
		Get("/ping")
	if err != nil {
		return mapTransportError("ping", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return err
	}

	if body := strings.TrimSpace(resp.String()); body != Pong {
		return fmt.Errorf("%w: ping answered %q", ErrUnexpectedResponse, body)
	}

	return nil
}

// InitToken implements [ServerAdapter].
func (h *httpServerAdapter) InitToken(ctx context.Context) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, h.pingTimeout)
	defer cancel()

	resp, err := h.client.R().
		SetContext(ctx).
		Get("/init-uuid")
	if err != nil {
		return "", mapTransportError("init token", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return "", err
	}

	token := strings.TrimSpace(resp.String())
	if token == "" {
		return "", ErrEmptyToken
	}

	return token, nil
}

// Upload implements [ServerAdapter]. resty assembles the multipart body in
// memory, so progress tracks the copy into that buffer and peak memory is
// about the blob size.
func (h *httpServerAdapter) Upload(ctx context.Context, path, token string, progress models.ProgressFunc) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open upload file: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return fmt.Errorf("stat upload file: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, h.transferTimeout)
	defer cancel()

	body := utils.NewProgressReader(f, h.chunkSize, info.Size(), progress)

	resp, err := h.client.R().
		SetContext(ctx).
		SetQueryParam("uuid", token).
		SetMultipartField(MultipartField, filepath.Base(path), "application/octet-stream", body).
		Post("/upload")
	if err != nil {
		return mapTransportError("upload", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return err
	}

	h.logger.Debug().
		Int64("bytes", body.Done()).
		Msg("upload finished")

	return nil
}

// Download implements [ServerAdapter].
func (h *httpServerAdapter) Download(ctx context.Context, token, dest string, progress models.ProgressFunc) (err error) {
	ctx, cancel := context.WithTimeout(ctx, h.transferTimeout)
	defer cancel()

	resp, err := h.client.R().
		SetContext(ctx).
		SetQueryParam("uuid", token).
		SetDoNotParseResponse(true).
		Get("/download")
	if err != nil {
		return mapTransportError("download", err)
	}

	raw := resp.RawBody()
	defer raw.Close()

	if err = mapStreamError(resp.StatusCode(), raw); err != nil {
		return err
	}

	out, err := os.OpenFile(dest, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o600)
	if err != nil {
		return fmt.Errorf("create download file: %w", err)
	}
	defer func() {
		if cerr := out.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close download file: %w", cerr)
		}
		if err != nil {
			_ = os.Remove(dest)
		}
	}()

	var total int64
	if resp.RawResponse != nil && resp.RawResponse.ContentLength > 0 {
		total = resp.RawResponse.ContentLength
	}

	w := utils.NewProgressWriter(out, total, progress)
	n, err := utils.CopyChunks(w, raw, h.chunkSize)
	if err != nil {
		var pathErr *os.PathError
		if errors.As(err, &pathErr) {
			return fmt.Errorf("write download file: %w", err)
		}
		return mapTransportError("download", err)
	}

	if total > 0 && n != total {
		return mapTransportError("download", fmt.Errorf("body cut short: %d of %d bytes", n, total))
	}

	h.logger.Debug().
		Int64("bytes", n).
		Msg("download finished")

	return nil
}
