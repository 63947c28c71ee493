// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/MKhiriev/go-dir-backup/internal/logger"
)

// ArchiveFileName is the name of the stored archive inside a token's folder.
const ArchiveFileName = "archive.enc"

// diskArchiveStorage keeps archives at <root>/<token>/archive.enc.
type diskArchiveStorage struct {
	root   string
	logger *logger.Logger
}

func NewDiskArchiveStorage(root string, logger *logger.Logger) (ArchiveStorage, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("error creating data dir: %w", err)
	}

	logger.Debug().Str("root", root).Msg("creating disk archive storage")
	return &diskArchiveStorage{root: root, logger: logger}, nil
}

// Save writes into a temporary file next to the archive and renames it into
// place once r is drained, so a broken upload never replaces a good archive.
func (d *diskArchiveStorage) Save(ctx context.Context, token string, r io.Reader) (int64, error) {
	dir, err := d.folder(token)
	if err != nil {
		return 0, err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return 0, fmt.Errorf("error creating slot dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ArchiveFileName+".*.part")
	if err != nil {
		return 0, fmt.Errorf("error creating temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer func() {
		// no-op after a successful rename
		_ = os.Remove(tmpName)
	}()

	n, err := io.Copy(tmp, contextReader{ctx: ctx, r: r})
	if err != nil {
		_ = tmp.Close()
		return n, fmt.Errorf("error writing archive: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return n, fmt.Errorf("error closing archive: %w", err)
	}

	if err := os.Rename(tmpName, filepath.Join(dir, ArchiveFileName)); err != nil {
		return n, fmt.Errorf("error moving archive into place: %w", err)
	}

	return n, nil
}

func (d *diskArchiveStorage) Open(_ context.Context, token string) (io.ReadCloser, int64, error) {
	dir, err := d.folder(token)
	if err != nil {
		return nil, 0, err
	}

	f, err := os.Open(filepath.Join(dir, ArchiveFileName))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, 0, ErrArchiveNotFound
	}
	if err != nil {
		return nil, 0, fmt.Errorf("error opening archive: %w", err)
	}

	info, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, 0, fmt.Errorf("error reading archive info: %w", err)
	}

	return f, info.Size(), nil
}

func (d *diskArchiveStorage) folder(token string) (string, error) {
	if token == "" || token == "." || token == ".." || strings.ContainsAny(token, `/\`) {
		return "", fmt.Errorf("%w: %q", ErrInvalidKey, token)
	}

	return filepath.Join(d.root, token), nil
}

// contextReader stops reading once ctx is done.
type contextReader struct {
	ctx context.Context
	r   io.Reader
}

func (c contextReader) Read(p []byte) (int, error) {
	if err := c.ctx.Err(); err != nil {
		return 0, err
	}
	return c.r.Read(p)
}
