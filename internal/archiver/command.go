// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package archiver

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/MKhiriev/go-dir-backup/internal/logger"
	"github.com/MKhiriev/go-dir-backup/models"
)

// commandArchiver shells out to an external tar binary:
//
//	pack:   tar -czf <archive> -C <parent> <base>
//	unpack: tar -xzf <archive> -C <parent of dest>
//
// It produces the same layout as the in-process archiver but reports
// progress only once, when the archive is complete.
type commandArchiver struct {
	binary string
	logger *logger.Logger
}

// NewCommandArchiver returns an [Archiver] that runs binary (e.g. "tar").
func NewCommandArchiver(binary string, log *logger.Logger) Archiver {
	return &commandArchiver{binary: binary, logger: log}
}

// Pack implements [Archiver].
func (a *commandArchiver) Pack(ctx context.Context, sourceDir, archivePath string, progress models.ProgressFunc) error {
	root, err := sourceRoot(sourceDir)
	if err != nil {
		return err
	}

	outPath, err := filepath.Abs(archivePath)
	if err != nil {
		return fmt.Errorf("%w: resolve %s: %v", ErrArchiveFailed, archivePath, err)
	}

	args := []string{"-czf", outPath}
	if rel, err := filepath.Rel(filepath.Dir(root), outPath); err == nil && within(root, outPath) {
		args = append(args, "--exclude="+filepath.ToSlash(rel))
	}
	args = append(args, "-C", filepath.Dir(root), filepath.Base(root))

	if err := a.run(ctx, args...); err != nil {
		_ = os.Remove(outPath)
		return fmt.Errorf("%w: %v", ErrArchiveFailed, err)
	}

	if progress != nil {
		if info, err := os.Stat(outPath); err == nil {
			progress(info.Size(), info.Size())
		}
	}

	return nil
}

// Unpack implements [Archiver].
func (a *commandArchiver) Unpack(ctx context.Context, archivePath, destDir string) error {
	root, err := extractionRoot(destDir)
	if err != nil {
		return err
	}

	inPath, err := filepath.Abs(archivePath)
	if err != nil {
		return fmt.Errorf("%w: resolve %s: %v", ErrExtractFailed, archivePath, err)
	}

	if err := a.run(ctx, "-xzf", inPath, "-C", root); err != nil {
		return fmt.Errorf("%w: %v", ErrExtractFailed, err)
	}

	return nil
}

func (a *commandArchiver) run(ctx context.Context, args ...string) error {
	cmd := exec.CommandContext(ctx, a.binary, args...)

	a.logger.Debug().
		Str("cmd", a.binary).
		Strs("args", args).
		Msg("running archiver command")

	output, err := cmd.CombinedOutput()
	if err != nil {
		msg := strings.TrimSpace(string(output))
		if msg == "" {
			return err
		}
		return fmt.Errorf("%v: %s", err, msg)
	}

	return nil
}
