// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"errors"
	"fmt"
)

// ErrInvalidRequest is wrapped by every input validation error of a session.
var ErrInvalidRequest = errors.New("invalid request")

var (
	ErrNoAddress     = fmt.Errorf("%w: server address is empty", ErrInvalidRequest)
	ErrNoToken       = fmt.Errorf("%w: token is empty", ErrInvalidRequest)
	ErrNoDirectory   = fmt.Errorf("%w: directory is empty", ErrInvalidRequest)
	ErrNoSuchDir     = fmt.Errorf("%w: directory does not exist", ErrInvalidRequest)
	ErrNotADirectory = fmt.Errorf("%w: path is not a directory", ErrInvalidRequest)
	ErrUnknownAction = fmt.Errorf("%w: unknown action", ErrInvalidRequest)
)

// Server-side errors.
var (
	ErrInvalidToken  = errors.New("invalid token")
	ErrSlotNotFound  = errors.New("slot not found")
	ErrIssueFailed   = errors.New("token issuance failed")
	ErrArchiveAbsent = errors.New("no archive stored for token")
)
