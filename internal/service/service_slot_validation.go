// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/MKhiriev/go-dir-backup/internal/validators"
)

// SlotValidationService rejects requests with an empty token and treats a
// token that is not a UUID as unknown, before any storage is touched.
type SlotValidationService struct {
	inner     SlotService
	validator validators.Validator
}

func NewSlotValidationService() SlotServiceWrapper {
	return &SlotValidationService{
		validator: validators.NewTokenValidator(),
	}
}

func (v *SlotValidationService) Wrap(inner SlotService) SlotService {
	return &SlotValidationService{inner: inner, validator: v.validator}
}

func (v *SlotValidationService) Issue(ctx context.Context) (string, error) {
	return v.inner.Issue(ctx)
}

func (v *SlotValidationService) Store(ctx context.Context, token string, r io.Reader) (int64, error) {
	if err := v.validator.Validate(ctx, token); err != nil {
		return 0, v.mapError(err, ErrSlotNotFound)
	}

	return v.inner.Store(ctx, token, r)
}

func (v *SlotValidationService) Open(ctx context.Context, token string) (io.ReadCloser, int64, error) {
	if err := v.validator.Validate(ctx, token); err != nil {
		return nil, 0, v.mapError(err, ErrArchiveAbsent)
	}

	return v.inner.Open(ctx, token)
}

func (v *SlotValidationService) mapError(err, unknown error) error {
	if errors.Is(err, validators.ErrEmptyToken) {
		return fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}
	return unknown
}
