// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// Stage names a pipeline step that reports byte progress.
type Stage string

const (
	StageArchiving   Stage = "archiving"
	StageUploading   Stage = "uploading"
	StageDownloading Stage = "downloading"
)

// ProgressEvent reports how many bytes a stage has processed so far.
// Bytes is cumulative and never decreases within one stage.
// Total is zero when the stage does not know the final size.
type ProgressEvent struct {
	Stage Stage
	Bytes int64
	Total int64
}

// Percent returns completion in the range [0, 100], or -1 when Total is unknown.
func (p ProgressEvent) Percent() float64 {
	if p.Total <= 0 {
		return -1
	}
	pct := float64(p.Bytes) * 100 / float64(p.Total)
	if pct > 100 {
		return 100
	}
	return pct
}

// ProgressFunc receives cumulative byte counts from archivers and transfers.
// total is zero when unknown. A nil ProgressFunc is allowed everywhere.
type ProgressFunc func(done, total int64)
