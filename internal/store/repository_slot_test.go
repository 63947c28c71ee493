// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"errors"
	"path/filepath"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/MKhiriev/go-dir-backup/internal/logger"
	"github.com/MKhiriev/go-dir-backup/models"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testToken = "e3b0c442-98fc-4c14-9afb-f4c8996fb924"

func newTestSlotRepo(t *testing.T) (*slotRepository, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	l := logger.Nop()
	repo := &slotRepository{
		db: &DB{
			DB:                 db,
			dialect:            DialectPostgres,
			errorClassificator: NewPostgresErrorClassifier(),
			logger:             l,
		},
		logger: l,
	}
	return repo, mock
}

func pgError(code string) error {
	return &pgconn.PgError{Code: code}
}

func TestSlotRepository_Create(t *testing.T) {
	repo, mock := newTestSlotRepo(t)
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	mock.ExpectExec("INSERT INTO slots").
		WithArgs(testToken, now, int64(0)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Create(context.Background(), models.Slot{Token: testToken, CreatedAt: now})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSlotRepository_Create_UniqueViolation(t *testing.T) {
	repo, mock := newTestSlotRepo(t)

	mock.ExpectExec("INSERT INTO slots").
		WillReturnError(pgError(pgerrcode.UniqueViolation))

	err := repo.Create(context.Background(), models.Slot{Token: testToken, CreatedAt: time.Now()})
	assert.ErrorIs(t, err, ErrSlotAlreadyExists)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSlotRepository_Create_RetriesTransientError(t *testing.T) {
	repo, mock := newTestSlotRepo(t)

	mock.ExpectExec("INSERT INTO slots").
		WillReturnError(pgError(pgerrcode.SerializationFailure))
	mock.ExpectExec("INSERT INTO slots").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Create(context.Background(), models.Slot{Token: testToken, CreatedAt: time.Now()})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSlotRepository_Create_OtherError(t *testing.T) {
	repo, mock := newTestSlotRepo(t)

	mock.ExpectExec("INSERT INTO slots").
		WillReturnError(errors.New("disk I/O error"))

	err := repo.Create(context.Background(), models.Slot{Token: testToken, CreatedAt: time.Now()})
	assert.ErrorIs(t, err, ErrExecutingStatement)
}

func TestSlotRepository_Get(t *testing.T) {
	selectQuery := regexp.QuoteMeta("SELECT token, created_at, uploaded_at, size_bytes FROM slots WHERE token = $1")
	created := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	uploaded := created.Add(time.Hour)

	t.Run("uploaded", func(t *testing.T) {
		repo, mock := newTestSlotRepo(t)
		mock.ExpectQuery(selectQuery).
			WithArgs(testToken).
			WillReturnRows(sqlmock.NewRows(slotColumns).AddRow(testToken, created, uploaded, int64(2048)))

		slot, err := repo.Get(context.Background(), testToken)
		require.NoError(t, err)
		assert.Equal(t, testToken, slot.Token)
		assert.Equal(t, created, slot.CreatedAt)
		require.NotNil(t, slot.UploadedAt)
		assert.Equal(t, uploaded, *slot.UploadedAt)
		assert.Equal(t, int64(2048), slot.SizeBytes)
		assert.True(t, slot.HasArchive())
	})

	t.Run("never uploaded", func(t *testing.T) {
		repo, mock := newTestSlotRepo(t)
		mock.ExpectQuery(selectQuery).
			WithArgs(testToken).
			WillReturnRows(sqlmock.NewRows(slotColumns).AddRow(testToken, created, nil, int64(0)))

		slot, err := repo.Get(context.Background(), testToken)
		require.NoError(t, err)
		assert.Nil(t, slot.UploadedAt)
		assert.False(t, slot.HasArchive())
	})

	t.Run("missing", func(t *testing.T) {
		repo, mock := newTestSlotRepo(t)
		mock.ExpectQuery(selectQuery).
			WithArgs("nope").
			WillReturnRows(sqlmock.NewRows(slotColumns))

		_, err := repo.Get(context.Background(), "nope")
		assert.ErrorIs(t, err, ErrSlotNotFound)
	})
}

func TestSlotRepository_MarkUploaded(t *testing.T) {
	at := time.Date(2026, 3, 2, 8, 30, 0, 0, time.UTC)

	t.Run("updated", func(t *testing.T) {
		repo, mock := newTestSlotRepo(t)
		mock.ExpectExec("UPDATE slots SET").
			WithArgs(at, int64(4096), testToken).
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, repo.MarkUploaded(context.Background(), testToken, 4096, at))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("unknown token", func(t *testing.T) {
		repo, mock := newTestSlotRepo(t)
		mock.ExpectExec("UPDATE slots SET").
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.MarkUploaded(context.Background(), "nope", 1, at)
		assert.ErrorIs(t, err, ErrSlotNotFound)
	})
}

func TestSlotRepository_SQLite(t *testing.T) {
	ctx := context.Background()
	db, err := NewConnectSQLite(ctx, filepath.Join(t.TempDir(), "nested", "slots.db"), logger.Nop())
	require.NoError(t, err)
	defer db.Close()
	require.NoError(t, db.Migrate())

	repo := NewSlotRepository(db, logger.Nop())
	created := time.Now().UTC().Truncate(time.Second)

	require.NoError(t, repo.Create(ctx, models.Slot{Token: testToken, CreatedAt: created}))
	assert.ErrorIs(t, repo.Create(ctx, models.Slot{Token: testToken, CreatedAt: created}), ErrSlotAlreadyExists)

	slot, err := repo.Get(ctx, testToken)
	require.NoError(t, err)
	assert.WithinDuration(t, created, slot.CreatedAt, time.Second)
	assert.False(t, slot.HasArchive())

	require.NoError(t, repo.MarkUploaded(ctx, testToken, 123, created.Add(time.Minute)))
	slot, err = repo.Get(ctx, testToken)
	require.NoError(t, err)
	assert.True(t, slot.HasArchive())
	assert.Equal(t, int64(123), slot.SizeBytes)

	_, err = repo.Get(ctx, "missing")
	assert.ErrorIs(t, err, ErrSlotNotFound)
}
