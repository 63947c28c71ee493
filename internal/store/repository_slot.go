// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-dir-backup/internal/logger"
	"github.com/MKhiriev/go-dir-backup/models"
)

// slotRepository is the SQL implementation of [SlotRepository] over the
// "slots" table. It works on PostgreSQL and SQLite alike.
type slotRepository struct {
	db     *DB
	logger *logger.Logger
}

func NewSlotRepository(db *DB, logger *logger.Logger) SlotRepository {
	logger.Debug().Str("dialect", db.dialect).Msg("creating slot repository")
	return &slotRepository{
		db:     db,
		logger: logger,
	}
}

func (r *slotRepository) Create(ctx context.Context, slot models.Slot) error {
	log := logger.FromContext(ctx)

	query, args, err := buildInsertSlotQuery(r.db.builder(), slot)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBuildingSQLQuery, err)
	}

	err = r.db.withRetry(ctx, func() error {
		_, err := r.db.ExecContext(ctx, query, args...)
		return err
	})
	if err != nil {
		log.Err(err).Str("func", "*slotRepository.Create").Msg("error inserting slot")
		if r.db.isUniqueViolation(err) {
			return ErrSlotAlreadyExists
		}
		return fmt.Errorf("%w: %v", ErrExecutingStatement, err)
	}

	return nil
}

func (r *slotRepository) Get(ctx context.Context, token string) (models.Slot, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildSelectSlotQuery(r.db.builder(), token)
	if err != nil {
		return models.Slot{}, fmt.Errorf("%w: %v", ErrBuildingSQLQuery, err)
	}

	var (
		slot       models.Slot
		uploadedAt sql.NullTime
	)
	err = r.db.withRetry(ctx, func() error {
		return r.db.QueryRowContext(ctx, query, args...).
			Scan(&slot.Token, &slot.CreatedAt, &uploadedAt, &slot.SizeBytes)
	})
	if errors.Is(err, sql.ErrNoRows) {
		return models.Slot{}, ErrSlotNotFound
	}
	if err != nil {
		log.Err(err).Str("func", "*slotRepository.Get").Msg("error selecting slot")
		return models.Slot{}, fmt.Errorf("%w: %v", ErrScanningRow, err)
	}

	if uploadedAt.Valid {
		t := uploadedAt.Time
		slot.UploadedAt = &t
	}

	return slot, nil
}

func (r *slotRepository) MarkUploaded(ctx context.Context, token string, size int64, at time.Time) error {
	log := logger.FromContext(ctx)

	query, args, err := buildMarkUploadedQuery(r.db.builder(), token, size, at)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBuildingSQLQuery, err)
	}

	var res sql.Result
	err = r.db.withRetry(ctx, func() error {
		var err error
		res, err = r.db.ExecContext(ctx, query, args...)
		return err
	})
	if err != nil {
		log.Err(err).Str("func", "*slotRepository.MarkUploaded").Msg("error updating slot")
		return fmt.Errorf("%w: %v", ErrExecutingStatement, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrExecutingStatement, err)
	}
	if affected == 0 {
		return ErrSlotNotFound
	}

	return nil
}
