// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/MKhiriev/go-dir-backup/internal/client"
	"github.com/MKhiriev/go-dir-backup/internal/config"
	"github.com/MKhiriev/go-dir-backup/internal/logger"
	"github.com/MKhiriev/go-dir-backup/internal/service"
	"github.com/MKhiriev/go-dir-backup/internal/tui"
	"github.com/MKhiriev/go-dir-backup/internal/workers"
	"github.com/MKhiriev/go-dir-backup/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	buildInfo := models.NewAppBuildInfo(buildVersion, buildDate, buildCommit)

	cfg, err := config.GetClientConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error getting configs: %v\n", err)
		os.Exit(2)
	}

	log := logger.NewClientLogger("go-dir-backup-client", cfg.App.LogFile)
	log.Info().Str("build", buildInfo.String()).Msg("client starting")

	services, err := service.NewClientServices(cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("create client services")
	}

	ui := tui.New(services.BackupService, client.Prefill(cfg), buildInfo, log)
	app := client.NewApp(cfg, services, ui, workers.NewClientWorkers(cfg, log), log)

	if err = app.Run(); err != nil {
		log.Error().Err(err).Msg("client run error")
		if !errors.Is(err, client.ErrSessionFailed) {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}
