// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"errors"

	"github.com/MKhiriev/go-dir-backup/internal/adapter"
	"github.com/MKhiriev/go-dir-backup/internal/archiver"
	"github.com/MKhiriev/go-dir-backup/internal/crypto"
	"github.com/MKhiriev/go-dir-backup/models"
)

// mapFailure translates a component error into the failure reported to the user.
// Errors no component claims are reported as internal.
func mapFailure(action models.Action, err error) models.Outcome {
	out := models.Outcome{Action: action, Kind: models.FailureInternal, Err: err}

	var rejected *adapter.RejectedError
	switch {
	case errors.As(err, &rejected):
		out.Kind = models.FailureTransferRejected
		out.StatusCode = rejected.StatusCode
		out.Body = rejected.Body
	case errors.Is(err, adapter.ErrConnectionFailed):
		out.Kind = models.FailureTransferConnection
	case errors.Is(err, archiver.ErrExtractFailed):
		out.Kind = models.FailureExtract
	case errors.Is(err, archiver.ErrArchiveFailed):
		out.Kind = models.FailureArchive
	case errors.Is(err, crypto.ErrDecryptFailed):
		out.Kind = models.FailureDecrypt
	case errors.Is(err, ErrInvalidRequest),
		errors.Is(err, adapter.ErrInvalidAddress),
		errors.Is(err, crypto.ErrEmptyToken):
		out.Kind = models.FailureInputInvalid
	}

	return out
}

// mapPingFailure reports any failed health check as unreachable. A non-200
// answer keeps its status and body for the log.
func mapPingFailure(action models.Action, err error) models.Outcome {
	out := models.Outcome{Action: action, Kind: models.FailureUnreachable, Err: err}

	var rejected *adapter.RejectedError
	if errors.As(err, &rejected) {
		out.StatusCode = rejected.StatusCode
		out.Body = rejected.Body
	}

	return out
}
