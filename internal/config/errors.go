// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import "errors"

// Validation errors returned when a configuration group is incomplete or
// holds an unsupported value. They are wrapped with details, so match them
// with [errors.Is].
var (
	ErrInvalidAppConfigs      = errors.New("invalid app configuration")
	ErrInvalidAdapterConfigs  = errors.New("invalid adapter configuration")
	ErrInvalidArchiverConfigs = errors.New("invalid archiver configuration")
	ErrInvalidTransferConfigs = errors.New("invalid transfer configuration")
	ErrInvalidStorageConfigs  = errors.New("invalid storage configuration")
	ErrInvalidServerConfigs   = errors.New("invalid server configuration")
	ErrInvalidWorkerConfigs   = errors.New("invalid worker configuration")
)
