// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package archiver

import "errors"

var (
	ErrArchiveFailed = errors.New("archive failed")
	ErrExtractFailed = errors.New("extract failed")

	// ErrUnsafePath marks an archive entry that would be written outside the
	// extraction root. It is always wrapped together with ErrExtractFailed.
	ErrUnsafePath = errors.New("archive entry escapes extraction root")

	ErrUnknownMode = errors.New("unknown archiver mode")
)
