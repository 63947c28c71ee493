// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"strings"
	"testing"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/MKhiriev/go-dir-backup/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_buildInsertSlotQuery(t *testing.T) {
	created := time.Date(2026, 1, 2, 3, 4, 5, 0, time.FixedZone("MSK", 3*3600))

	query, args, err := buildInsertSlotQuery(sq.StatementBuilder.PlaceholderFormat(sq.Dollar), models.Slot{Token: "tok", CreatedAt: created})
	require.NoError(t, err)

	assert.Equal(t, "INSERT INTO slots (token,created_at,size_bytes) VALUES ($1,$2,$3)", query)
	require.Len(t, args, 3)
	assert.Equal(t, "tok", args[0])
	// stored in UTC
	assert.Equal(t, created.UTC(), args[1])
	assert.Equal(t, time.UTC, args[1].(time.Time).Location())
	assert.Equal(t, int64(0), args[2])
}

func Test_buildSelectSlotQuery_Placeholders(t *testing.T) {
	tests := []struct {
		name        string
		builder     sq.StatementBuilderType
		placeholder string
	}{
		{"postgres", sq.StatementBuilder.PlaceholderFormat(sq.Dollar), "$1"},
		{"sqlite", sq.StatementBuilder.PlaceholderFormat(sq.Question), "?"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			query, args, err := buildSelectSlotQuery(tt.builder, "tok")
			require.NoError(t, err)

			q := strings.ToLower(query)
			for _, c := range slotColumns {
				assert.Contains(t, q, c)
			}
			assert.Contains(t, q, "from slots")
			assert.True(t, strings.HasSuffix(query, "token = "+tt.placeholder))
			assert.Equal(t, []any{"tok"}, args)
		})
	}
}

func Test_buildMarkUploadedQuery(t *testing.T) {
	at := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	query, args, err := buildMarkUploadedQuery(sq.StatementBuilder.PlaceholderFormat(sq.Dollar), "tok", 42, at)
	require.NoError(t, err)

	assert.Equal(t, "UPDATE slots SET uploaded_at = $1, size_bytes = $2 WHERE token = $3", query)
	assert.Equal(t, []any{at, int64(42), "tok"}, args)
}

func TestDB_Builder(t *testing.T) {
	pg := &DB{dialect: DialectPostgres}
	lite := &DB{dialect: DialectSQLite}

	q, _, err := buildSelectSlotQuery(pg.builder(), "x")
	require.NoError(t, err)
	assert.Contains(t, q, "$1")

	q, _, err = buildSelectSlotQuery(lite.builder(), "x")
	require.NoError(t, err)
	assert.Contains(t, q, "?")
}
