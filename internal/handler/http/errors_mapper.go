// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/go-dir-backup/internal/service"
)

type errorResponse struct {
	status  int
	message string
}

// errorStatusMap holds the response texts of the wire protocol, which
// clients show to users verbatim.
var errorStatusMap = map[error]errorResponse{
	service.ErrInvalidToken:  {http.StatusBadRequest, "UUID is required"},
	service.ErrSlotNotFound:  {http.StatusNotFound, "slot not found"},
	service.ErrArchiveAbsent: {http.StatusNotFound, "File not found"},
	service.ErrIssueFailed:   {http.StatusInternalServerError, "Error creating slot"},
	ErrNoFilePart:            {http.StatusBadRequest, "Error retrieving the file"},
	ErrNotMultipart:          {http.StatusBadRequest, "Error retrieving the file"},
}

// mapServiceError picks the status and body for err.
func mapServiceError(err error) (int, string) {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return http.StatusRequestEntityTooLarge, "File too large"
	}

	for target, resp := range errorStatusMap {
		if errors.Is(err, target) {
			return resp.status, resp.message
		}
	}

	return http.StatusInternalServerError, "Internal server error"
}
