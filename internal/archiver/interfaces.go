// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package archiver packs a directory into a gzip-compressed tar archive and
// unpacks it again.
//
// Entries are rooted at the base name of the source directory: packing
// /home/u/docs yields entries "docs/...". Unpacking extracts into the parent
// of the destination directory, so the destination's base name must match
// the archived root to land inside it.
package archiver

import (
	"context"

	"github.com/MKhiriev/go-dir-backup/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/archiver_mock.go -package=mock

// Archiver packs and unpacks directory trees.
type Archiver interface {
	// Pack writes a tar.gz of sourceDir to archivePath, replacing any file
	// already there. Progress reports bytes of file content read so far.
	// Fails with [ErrArchiveFailed] if sourceDir is missing, not a directory
	// or unreadable; a partial archive is removed.
	Pack(ctx context.Context, sourceDir, archivePath string, progress models.ProgressFunc) error

	// Unpack extracts archivePath into the parent of destDir, creating
	// destDir first if absent. Fails with [ErrExtractFailed] on a corrupt
	// archive, an unwritable destination or an entry escaping the parent.
	Unpack(ctx context.Context, archivePath, destDir string) error
}
