// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"github.com/MKhiriev/go-dir-backup/internal/config"
	"github.com/MKhiriev/go-dir-backup/internal/logger"
)

type Workers struct {
	workers []Worker
}

// NewClientWorkers returns the jobs run once at client start. Staging files
// are swept from the configured staging dir and, when set, the default
// restore destination.
func NewClientWorkers(cfg *config.ClientConfig, log *logger.Logger) *Workers {
	dirs := []string{cfg.Storage.StagingDir}
	if cfg.App.Directory != "" && cfg.App.Directory != cfg.Storage.StagingDir {
		dirs = append(dirs, cfg.App.Directory)
	}

	return &Workers{workers: []Worker{
		NewStagingSweeper(dirs, cfg.Workers.StaleAfter, log),
	}}
}

func (w *Workers) Run() {
	for _, worker := range w.workers {
		worker.Run()
	}
}
