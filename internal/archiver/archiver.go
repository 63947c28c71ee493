// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package archiver

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/MKhiriev/go-dir-backup/internal/config"
	"github.com/MKhiriev/go-dir-backup/internal/logger"
)

// New returns the archiver selected by cfg.Mode.
func New(cfg config.ClientArchiver, log *logger.Logger) (Archiver, error) {
	switch cfg.Mode {
	case "", config.ArchiverModeNative:
		return NewTarArchiver(cfg.ChunkSize, log), nil
	case config.ArchiverModeCommand:
		return NewCommandArchiver(cfg.TarBinary, log), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownMode, cfg.Mode)
	}
}

// sourceRoot resolves sourceDir to an absolute, existing directory.
func sourceRoot(sourceDir string) (string, error) {
	if strings.TrimSpace(sourceDir) == "" {
		return "", fmt.Errorf("%w: empty source directory", ErrArchiveFailed)
	}

	root, err := filepath.Abs(sourceDir)
	if err != nil {
		return "", fmt.Errorf("%w: resolve %s: %v", ErrArchiveFailed, sourceDir, err)
	}

	info, err := os.Stat(root)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrArchiveFailed, err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("%w: %s is not a directory", ErrArchiveFailed, root)
	}

	return root, nil
}

// extractionRoot creates destDir if needed and returns its absolute parent.
func extractionRoot(destDir string) (string, error) {
	if strings.TrimSpace(destDir) == "" {
		return "", fmt.Errorf("%w: empty destination directory", ErrExtractFailed)
	}

	dest, err := filepath.Abs(destDir)
	if err != nil {
		return "", fmt.Errorf("%w: resolve %s: %v", ErrExtractFailed, destDir, err)
	}

	if err := os.MkdirAll(dest, 0o755); err != nil {
		return "", fmt.Errorf("%w: %v", ErrExtractFailed, err)
	}

	return filepath.Dir(dest), nil
}

// safeJoin resolves an archive entry name under root. It rejects names that
// leave root lexically and names whose parent directories already exist as
// symlinks, so an earlier entry cannot redirect a later write.
func safeJoin(root, name string) (string, error) {
	target := filepath.Join(root, filepath.FromSlash(name))
	if !within(root, target) {
		return "", fmt.Errorf("%w: %w: %s", ErrExtractFailed, ErrUnsafePath, name)
	}

	linked, err := symlinkOnPath(root, filepath.Dir(target))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrExtractFailed, err)
	}
	if linked {
		return "", fmt.Errorf("%w: %w: %s", ErrExtractFailed, ErrUnsafePath, name)
	}

	return target, nil
}

// symlinkOnPath reports whether any existing component of path below root is
// a symlink. Components after the first missing one cannot be links.
func symlinkOnPath(root, path string) (bool, error) {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return false, err
	}
	if rel == "." {
		return false, nil
	}

	cur := root
	for _, part := range strings.Split(rel, string(filepath.Separator)) {
		cur = filepath.Join(cur, part)
		fi, err := os.Lstat(cur)
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		if err != nil {
			return false, err
		}
		if fi.Mode()&fs.ModeSymlink != 0 {
			return true, nil
		}
	}

	return false, nil
}

// linkEscapes reports whether a symlink created at target with the given
// link text would resolve outside root. The text is walked one component at
// a time; passing through an existing symlink counts as an escape.
func linkEscapes(root, target, linkname string) bool {
	cur, rest := filepath.Dir(target), filepath.ToSlash(linkname)
	if filepath.IsAbs(linkname) {
		clean := filepath.Clean(linkname)
		if !within(root, clean) {
			return true
		}
		rel, err := filepath.Rel(root, clean)
		if err != nil {
			return true
		}
		cur, rest = root, filepath.ToSlash(rel)
	}

	parts := strings.Split(rest, "/")
	for i, part := range parts {
		switch part {
		case "", ".":
			continue
		case "..":
			cur = filepath.Dir(cur)
		default:
			cur = filepath.Join(cur, part)
			if i < len(parts)-1 {
				if fi, err := os.Lstat(cur); err == nil && fi.Mode()&fs.ModeSymlink != 0 {
					return true
				}
			}
		}
		if !within(root, cur) {
			return true
		}
	}

	return false
}
