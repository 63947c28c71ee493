// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"github.com/MKhiriev/go-dir-backup/internal/config"
	"github.com/MKhiriev/go-dir-backup/internal/logger"
	"github.com/MKhiriev/go-dir-backup/internal/service"
	"github.com/prometheus/client_golang/prometheus"
)

type Handler struct {
	services       *service.Services
	metrics        *Metrics
	maxUploadBytes int64

	logger *logger.Logger
}

func NewHandler(services *service.Services, cfg config.ServerHTTP, logger *logger.Logger) *Handler {
	logger.Info().Msg("http handler created")
	return &Handler{
		services:       services,
		metrics:        NewMetrics(prometheus.NewRegistry()),
		maxUploadBytes: cfg.MaxUploadBytes,
		logger:         logger,
	}
}
