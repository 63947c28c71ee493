// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import "errors"

var (
	// ErrDecryptFailed is returned when a blob cannot be decrypted with the
	// given key: wrong length, bad padding or failed authentication.
	ErrDecryptFailed = errors.New("decrypt failed")

	// ErrEmptyToken is returned by [DeriveKeyChecked] for an empty token.
	ErrEmptyToken = errors.New("empty token")

	// ErrUnknownScheme is returned by [NewCipher] for an unsupported scheme name.
	ErrUnknownScheme = errors.New("unknown cipher scheme")
)
