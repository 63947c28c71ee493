// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

// StagingPrefix starts the name of every staging file, so leftovers from a
// crashed session can be found and swept.
const StagingPrefix = ".gdb-"

// Staging file kinds.
const (
	StagingArchive   = "archive.tar.gz"
	StagingEncrypted = "archive.enc"
)

// StagingName returns the file name of a staging file: .gdb-<session>.<kind>.
func StagingName(sessionID, kind string) string {
	return StagingPrefix + sessionID + "." + kind
}

// StagingArea hands out per-session staging paths in one directory and
// removes every path it handed out on Cleanup.
type StagingArea struct {
	dir       string
	sessionID string

	mu    sync.Mutex
	paths []string
}

// NewStagingArea creates dir if needed and returns an area for sessionID.
func NewStagingArea(dir, sessionID string) (*StagingArea, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create staging dir: %w", err)
	}

	return &StagingArea{dir: dir, sessionID: sessionID}, nil
}

// Dir returns the directory holding the staging files.
func (s *StagingArea) Dir() string {
	return s.dir
}

// Path returns the staging path for kind and registers it for cleanup.
func (s *StagingArea) Path(kind string) string {
	p := filepath.Join(s.dir, StagingName(s.sessionID, kind))

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, known := range s.paths {
		if known == p {
			return p
		}
	}
	s.paths = append(s.paths, p)

	return p
}

// Cleanup removes every registered path. Missing files are not an error.
// It is safe to call more than once.
func (s *StagingArea) Cleanup() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var errs []error
	for _, p := range s.paths {
		if err := os.Remove(p); err != nil && !errors.Is(err, fs.ErrNotExist) {
			errs = append(errs, err)
		}
	}
	s.paths = nil

	return errors.Join(errs...)
}

// SweepStaging removes staging files in dir last modified before now-olderThan
// and returns the removed paths. A missing dir is not an error.
func SweepStaging(dir string, olderThan time.Duration, now time.Time) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read staging dir: %w", err)
	}

	cutoff := now.Add(-olderThan)
	var removed []string
	var errs []error

	for _, e := range entries {
		if !e.Type().IsRegular() || !isStagingName(e.Name()) {
			continue
		}

		info, err := e.Info()
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if !info.ModTime().Before(cutoff) {
			continue
		}

		p := filepath.Join(dir, e.Name())
		if err := os.Remove(p); err != nil && !errors.Is(err, fs.ErrNotExist) {
			errs = append(errs, err)
			continue
		}
		removed = append(removed, p)
	}

	return removed, errors.Join(errs...)
}

func isStagingName(name string) bool {
	if !strings.HasPrefix(name, StagingPrefix) {
		return false
	}
	return strings.HasSuffix(name, "."+StagingArchive) || strings.HasSuffix(name, "."+StagingEncrypted)
}
