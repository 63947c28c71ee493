// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package validators

import (
	"context"
	"fmt"
	"strings"

	"github.com/MKhiriev/go-dir-backup/internal/utils"
	"github.com/MKhiriev/go-dir-backup/models"
)

const (
	FieldToken = "token"
	FieldSize  = "size_bytes"
)

// TokenValidator checks account tokens, either bare strings or inside a
// [models.Slot].
type TokenValidator struct{}

func NewTokenValidator() Validator {
	return &TokenValidator{}
}

func (v *TokenValidator) Validate(_ context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case string:
		return validateToken(value)
	case models.Slot:
		return v.validateSlot(value, fields...)
	case *models.Slot:
		return v.validateSlot(*value, fields...)
	default:
		return fmt.Errorf("%w: %T", ErrUnsupportedType, obj)
	}
}

func (v *TokenValidator) validateSlot(slot models.Slot, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldToken, FieldSize}
	}

	for _, field := range fields {
		switch field {
		case FieldToken:
			if err := validateToken(slot.Token); err != nil {
				return err
			}
		case FieldSize:
			if slot.SizeBytes < 0 {
				return ErrNegativeSize
			}
		default:
			return fmt.Errorf("%w: %s", ErrUnknownField, field)
		}
	}

	return nil
}

func validateToken(token string) error {
	if strings.TrimSpace(token) == "" {
		return ErrEmptyToken
	}
	if !utils.IsToken(token) {
		return ErrMalformedToken
	}
	return nil
}
