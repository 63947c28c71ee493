// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import "errors"

// Sentinel errors returned by repositories and archive storages.
// Callers should use [errors.Is] to match against these values.
var (
	// ErrSlotNotFound is returned when no slot is registered for a token.
	ErrSlotNotFound = errors.New("slot not found")

	// ErrSlotAlreadyExists is returned when a token is registered twice.
	ErrSlotAlreadyExists = errors.New("slot already exists")

	// ErrArchiveNotFound is returned when a token has no stored archive yet.
	ErrArchiveNotFound = errors.New("archive not found")

	// ErrInvalidKey is returned when a token cannot be used as a storage key.
	ErrInvalidKey = errors.New("invalid storage key")

	// ErrUnknownBackend is returned for an unsupported archive storage backend.
	ErrUnknownBackend = errors.New("unknown archive storage backend")
)

// Low-level database operation errors.
var (
	// ErrBuildingSQLQuery is returned when constructing a SQL query fails.
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when a SELECT fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrExecutingStatement is returned when an INSERT or UPDATE fails.
	ErrExecutingStatement = errors.New("failed to executing statement")

	// ErrScanningRow is returned when scanning a slot row fails.
	ErrScanningRow = errors.New("failed to scan slot row")
)
