// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package archiver

import (
	"archive/tar"
	"compress/gzip"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/MKhiriev/go-dir-backup/internal/logger"
	"github.com/MKhiriev/go-dir-backup/internal/utils"
	"github.com/MKhiriev/go-dir-backup/models"
)

// tarArchiver packs and unpacks in-process with archive/tar and compress/gzip.
type tarArchiver struct {
	chunkSize int
	logger    *logger.Logger
}

// NewTarArchiver returns the in-process [Archiver].
func NewTarArchiver(chunkSize int, log *logger.Logger) Archiver {
	return &tarArchiver{chunkSize: chunkSize, logger: log}
}

// Pack implements [Archiver]. Regular files, directories and symlinks are
// stored; sockets, devices and pipes are skipped. If archivePath lies inside
// sourceDir it is left out of the archive.
func (a *tarArchiver) Pack(ctx context.Context, sourceDir, archivePath string, progress models.ProgressFunc) (err error) {
	root, err := sourceRoot(sourceDir)
	if err != nil {
		return err
	}

	outPath, err := filepath.Abs(archivePath)
	if err != nil {
		return fmt.Errorf("%w: resolve %s: %v", ErrArchiveFailed, archivePath, err)
	}

	total, err := treeSize(root, outPath)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrArchiveFailed, err)
	}

	out, err := os.OpenFile(outPath, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o600)
	if err != nil {
		return fmt.Errorf("%w: create archive: %v", ErrArchiveFailed, err)
	}
	defer func() {
		if err != nil {
			_ = os.Remove(outPath)
		}
	}()

	gz := gzip.NewWriter(out)
	tw := tar.NewWriter(gz)
	parent := filepath.Dir(root)
	var done int64

	walkErr := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if path == outPath {
			return nil
		}

		info, err := d.Info()
		if err != nil {
			return err
		}

		var link string
		switch {
		case info.Mode().IsRegular(), info.IsDir():
		case info.Mode()&fs.ModeSymlink != 0:
			if link, err = os.Readlink(path); err != nil {
				return err
			}
		default:
			a.logger.Debug().Str("path", path).Msg("skipping special file")
			return nil
		}

		hdr, err := tar.FileInfoHeader(info, link)
		if err != nil {
			return err
		}

		rel, err := filepath.Rel(parent, path)
		if err != nil {
			return err
		}
		hdr.Name = filepath.ToSlash(rel)
		if info.IsDir() {
			hdr.Name += "/"
		}

		if err := tw.WriteHeader(hdr); err != nil {
			return err
		}

		if !info.Mode().IsRegular() {
			return nil
		}

		n, err := copyFile(tw, path, a.chunkSize, func(chunk int64) {
			done += chunk
			if progress != nil {
				progress(done, total)
			}
		})
		if err != nil {
			return err
		}
		if n != info.Size() {
			return fmt.Errorf("%s changed size while archiving", path)
		}

		return nil
	})

	closeErr := errors.Join(tw.Close(), gz.Close(), out.Close())
	if walkErr != nil {
		return fmt.Errorf("%w: %v", ErrArchiveFailed, walkErr)
	}
	if closeErr != nil {
		return fmt.Errorf("%w: finish archive: %v", ErrArchiveFailed, closeErr)
	}

	a.logger.Debug().
		Str("source", root).
		Int64("bytes", done).
		Msg("archive packed")

	return nil
}

// Unpack implements [Archiver].
func (a *tarArchiver) Unpack(ctx context.Context, archivePath, destDir string) error {
	root, err := extractionRoot(destDir)
	if err != nil {
		return err
	}

	f, err := os.Open(archivePath)
	if err != nil {
		return fmt.Errorf("%w: open archive: %v", ErrExtractFailed, err)
	}
	defer f.Close()

	gz, err := gzip.NewReader(f)
	if err != nil {
		return fmt.Errorf("%w: corrupt archive: %v", ErrExtractFailed, err)
	}
	defer gz.Close()

	tr := tar.NewReader(gz)
	entries := 0
	for {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("%w: %v", ErrExtractFailed, err)
		}

		hdr, err := tr.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return fmt.Errorf("%w: corrupt archive: %v", ErrExtractFailed, err)
		}

		if err := a.extractEntry(root, hdr, tr); err != nil {
			return err
		}
		entries++
	}

	// drain to the end so the gzip trailer checksum is verified
	if _, err := io.Copy(io.Discard, gz); err != nil {
		return fmt.Errorf("%w: corrupt archive: %v", ErrExtractFailed, err)
	}

	a.logger.Debug().
		Str("root", root).
		Int("entries", entries).
		Msg("archive unpacked")

	return nil
}

func (a *tarArchiver) extractEntry(root string, hdr *tar.Header, r io.Reader) error {
	target, err := safeJoin(root, hdr.Name)
	if err != nil {
		return err
	}

	mode := hdr.FileInfo().Mode().Perm()

	switch hdr.Typeflag {
	case tar.TypeDir:
		if err := os.MkdirAll(target, mode|0o700); err != nil {
			return fmt.Errorf("%w: %v", ErrExtractFailed, err)
		}

	case tar.TypeReg:
		if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
			return fmt.Errorf("%w: %v", ErrExtractFailed, err)
		}
		if err := writeFile(target, mode, r, a.chunkSize); err != nil {
			return fmt.Errorf("%w: %v", ErrExtractFailed, err)
		}
		_ = os.Chtimes(target, hdr.ModTime, hdr.ModTime)

	case tar.TypeSymlink:
		if linkEscapes(root, target, hdr.Linkname) {
			a.logger.Warn().
				Str("name", hdr.Name).
				Str("link", hdr.Linkname).
				Msg("skipping symlink pointing outside the extraction root")
			return nil
		}
		if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
			return fmt.Errorf("%w: %v", ErrExtractFailed, err)
		}
		_ = os.Remove(target)
		if err := os.Symlink(hdr.Linkname, target); err != nil {
			return fmt.Errorf("%w: %v", ErrExtractFailed, err)
		}

	default:
		a.logger.Debug().
			Str("name", hdr.Name).
			Str("type", string(hdr.Typeflag)).
			Msg("skipping unsupported entry")
	}

	return nil
}

func copyFile(dst io.Writer, path string, chunk int, onChunk func(int64)) (int64, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	return utils.CopyChunks(chunkWriter{w: dst, onWrite: onChunk}, f, chunk)
}

func writeFile(path string, mode fs.FileMode, r io.Reader, chunk int) error {
	// never write through a symlink left by an earlier entry
	if fi, err := os.Lstat(path); err == nil && fi.Mode()&fs.ModeSymlink != 0 {
		if err := os.Remove(path); err != nil {
			return err
		}
	}

	out, err := os.OpenFile(path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, mode)
	if err != nil {
		return err
	}

	if _, err := utils.CopyChunks(out, r, chunk); err != nil {
		_ = out.Close()
		return err
	}

	return out.Close()
}

// treeSize sums the sizes of regular files under root, skipping skip.
func treeSize(root, skip string) (int64, error) {
	var total int64
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if path == skip || !d.Type().IsRegular() {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		total += info.Size()
		return nil
	})

	return total, err
}

func within(root, target string) bool {
	rel, err := filepath.Rel(root, target)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

type chunkWriter struct {
	w       io.Writer
	onWrite func(int64)
}

func (c chunkWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	if n > 0 {
		c.onWrite(int64(n))
	}
	return n, err
}
