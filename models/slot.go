// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// Slot is the server-side record of an issued token and its stored archive.
type Slot struct {
	Token      string     `db:"token"`
	CreatedAt  time.Time  `db:"created_at"`
	UploadedAt *time.Time `db:"uploaded_at"`
	SizeBytes  int64      `db:"size_bytes"`
}

// HasArchive reports whether an archive has been uploaded into the slot.
func (s Slot) HasArchive() bool {
	return s.UploadedAt != nil
}
