// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"github.com/MKhiriev/go-dir-backup/internal/logger"
	"github.com/MKhiriev/go-dir-backup/internal/store"
)

type Services struct {
	SlotService SlotService
}

func NewServices(storages *store.Storages, logger *logger.Logger) *Services {
	slots := NewSlotService(storages.SlotRepository, storages.ArchiveStorage, logger)

	return &Services{
		SlotService: NewSlotValidationService().Wrap(slots),
	}
}
