// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/MKhiriev/go-dir-backup/internal/logger"
	"github.com/MKhiriev/go-dir-backup/internal/store"
	"github.com/MKhiriev/go-dir-backup/internal/utils"
	"github.com/MKhiriev/go-dir-backup/models"
)

// issueAttempts bounds how often Issue draws a new token after a collision.
const issueAttempts = 3

type slotService struct {
	slots    store.SlotRepository
	archives store.ArchiveStorage
	tokens   utils.TokenGenerator
	now      func() time.Time
	logger   *logger.Logger
}

func NewSlotService(slots store.SlotRepository, archives store.ArchiveStorage, logger *logger.Logger) SlotService {
	return &slotService{
		slots:    slots,
		archives: archives,
		tokens:   utils.RandomTokens{},
		now:      time.Now,
		logger:   logger,
	}
}

func (s *slotService) Issue(ctx context.Context) (string, error) {
	log := logger.FromContext(ctx)

	for attempt := 1; attempt <= issueAttempts; attempt++ {
		token := s.tokens.Generate()

		err := s.slots.Create(ctx, models.Slot{Token: token, CreatedAt: s.now()})
		if err == nil {
			log.Info().Str("func", "*slotService.Issue").Msg("slot issued")
			return token, nil
		}
		if !errors.Is(err, store.ErrSlotAlreadyExists) {
			return "", fmt.Errorf("%w: %w", ErrIssueFailed, err)
		}

		log.Warn().Str("func", "*slotService.Issue").Int("attempt", attempt).Msg("token collision")
	}

	return "", fmt.Errorf("%w: too many token collisions", ErrIssueFailed)
}

func (s *slotService) Store(ctx context.Context, token string, r io.Reader) (int64, error) {
	log := logger.FromContext(ctx)

	if _, err := s.slots.Get(ctx, token); err != nil {
		if errors.Is(err, store.ErrSlotNotFound) {
			return 0, ErrSlotNotFound
		}
		return 0, fmt.Errorf("error looking up slot: %w", err)
	}

	n, err := s.archives.Save(ctx, token, r)
	if err != nil {
		log.Err(err).Str("func", "*slotService.Store").Int64("received", n).Msg("error saving archive")
		return n, fmt.Errorf("error saving archive: %w", err)
	}
	if n == 0 {
		log.Warn().Str("func", "*slotService.Store").Msg("empty archive stored")
	}

	if err := s.slots.MarkUploaded(ctx, token, n, s.now()); err != nil {
		return n, fmt.Errorf("error recording upload: %w", err)
	}

	log.Info().Str("func", "*slotService.Store").Int64("size", n).Msg("archive stored")
	return n, nil
}

func (s *slotService) Open(ctx context.Context, token string) (io.ReadCloser, int64, error) {
	slot, err := s.slots.Get(ctx, token)
	if errors.Is(err, store.ErrSlotNotFound) {
		return nil, 0, ErrArchiveAbsent
	}
	if err != nil {
		return nil, 0, fmt.Errorf("error looking up slot: %w", err)
	}
	if !slot.HasArchive() {
		return nil, 0, ErrArchiveAbsent
	}

	rc, size, err := s.archives.Open(ctx, token)
	if errors.Is(err, store.ErrArchiveNotFound) {
		return nil, 0, ErrArchiveAbsent
	}
	if err != nil {
		return nil, 0, fmt.Errorf("error opening archive: %w", err)
	}

	return rc, size, nil
}
