// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/MKhiriev/go-dir-backup/internal/logger"
)

const (
	// Pong is the body of a healthy /ping answer.
	Pong = "PONG!!!"

	uploadField       = "file"
	tokenQueryParam   = "uuid"
	downloadFileName  = "archive.enc"
	uploadSuccessText = "File uploaded successfully"
)

func (h *Handler) ping(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = fmt.Fprintln(w, Pong)
}

func (h *Handler) initUUID(w http.ResponseWriter, r *http.Request) {
	token, err := h.services.SlotService.Issue(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.metrics.tokensIssued.Inc()

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(token))
}

// upload streams the "file" part straight into storage without buffering
// the whole archive in memory.
func (h *Handler) upload(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get(tokenQueryParam)
	if token == "" {
		http.Error(w, "UUID is required", http.StatusBadRequest)
		return
	}

	if h.maxUploadBytes > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes)
	}

	part, err := filePart(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	defer part.Close()

	n, err := h.services.SlotService.Store(r.Context(), token, part)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.metrics.bytesReceived.Add(float64(n))

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(uploadSuccessText))
}

func (h *Handler) download(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	token := r.URL.Query().Get(tokenQueryParam)
	if token == "" {
		http.Error(w, "UUID is required", http.StatusBadRequest)
		return
	}

	archive, size, err := h.services.SlotService.Open(r.Context(), token)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	defer archive.Close()

	w.Header().Set("Content-Disposition", "attachment; filename="+downloadFileName)
	w.Header().Set("Content-Type", "application/octet-stream")
	if size > 0 {
		w.Header().Set("Content-Length", strconv.FormatInt(size, 10))
	}
	w.WriteHeader(http.StatusOK)

	n, err := io.Copy(w, archive)
	h.metrics.bytesSent.Add(float64(n))
	if err != nil {
		// headers are gone; the client sees a short body
		log.Err(err).Str("func", "*Handler.download").Int64("sent", n).Msg("error writing archive to response")
	}
}

// filePart returns the first multipart part named "file".
func filePart(r *http.Request) (*multipart.Part, error) {
	mr, err := r.MultipartReader()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotMultipart, err)
	}

	for {
		part, err := mr.NextPart()
		if errors.Is(err, io.EOF) {
			return nil, ErrNoFilePart
		}
		if err != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				return nil, err
			}
			return nil, fmt.Errorf("%w: %v", ErrNoFilePart, err)
		}
		if part.FormName() == uploadField {
			return part, nil
		}
		_ = part.Close()
	}
}

func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status, message := mapServiceError(err)

	log := logger.FromRequest(r)
	if status >= http.StatusInternalServerError {
		log.Err(err).Int("status", status).Msg("request failed")
	} else {
		log.Debug().Err(err).Int("status", status).Msg("request rejected")
	}

	http.Error(w, message, status)
}
