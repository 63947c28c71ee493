// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-dir-backup/models"
)

const slotsTable = "slots"

var slotColumns = []string{"token", "created_at", "uploaded_at", "size_bytes"}

func buildInsertSlotQuery(b sq.StatementBuilderType, slot models.Slot) (string, []any, error) {
	return b.Insert(slotsTable).
		Columns("token", "created_at", "size_bytes").
		Values(slot.Token, slot.CreatedAt.UTC(), slot.SizeBytes).
		ToSql()
}

func buildSelectSlotQuery(b sq.StatementBuilderType, token string) (string, []any, error) {
	return b.Select(slotColumns...).
		From(slotsTable).
		Where(sq.Eq{"token": token}).
		ToSql()
}

func buildMarkUploadedQuery(b sq.StatementBuilderType, token string, size int64, at time.Time) (string, []any, error) {
	return b.Update(slotsTable).
		Set("uploaded_at", at.UTC()).
		Set("size_bytes", size).
		Where(sq.Eq{"token": token}).
		ToSql()
}
