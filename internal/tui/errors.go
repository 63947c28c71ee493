// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import "github.com/MKhiriev/go-dir-backup/models"

// outcomeOverlay turns a failed outcome into the error window. The raw error
// is already in the log file; the window shows the summary and the advice.
func outcomeOverlay(out models.Outcome) *errorOverlayModel {
	message := out.Kind.String()
	if out.Kind == models.FailureTransferRejected || out.StatusCode != 0 {
		message = out.Message()
	} else if out.Err != nil {
		message = fitText(out.Message(), 200)
	}

	return &errorOverlayModel{
		message: message,
		advice:  out.Advice(),
	}
}
