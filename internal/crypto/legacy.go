// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"bytes"
	"crypto/aes"
	"fmt"
)

// legacyCipher is AES in ECB mode with PKCS#7 padding.
//
// It is deterministic and unauthenticated: equal inputs give equal blobs and
// tampering is only noticed when it breaks the padding. It stays the default
// because blobs already stored on servers use it.
type legacyCipher struct{}

// NewLegacyCipher returns the AES-ECB / PKCS#7 [Cipher].
func NewLegacyCipher() Cipher {
	return legacyCipher{}
}

// Scheme implements [Cipher].
func (legacyCipher) Scheme() string {
	return SchemeLegacy
}

// Encrypt implements [Cipher]. The blob length is always a positive multiple
// of the block size; empty input yields one full padding block.
func (legacyCipher) Encrypt(key, plaintext []byte) ([]byte, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("create cipher: %w", err)
	}

	padded := pkcs7Pad(plaintext, aes.BlockSize)
	out := make([]byte, len(padded))
	for i := 0; i < len(padded); i += aes.BlockSize {
		block.Encrypt(out[i:i+aes.BlockSize], padded[i:i+aes.BlockSize])
	}

	return out, nil
}

// Decrypt implements [Cipher].
func (legacyCipher) Decrypt(key, blob []byte) ([]byte, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("create cipher: %w", err)
	}

	if len(blob) == 0 || len(blob)%aes.BlockSize != 0 {
		return nil, fmt.Errorf("%w: blob length %d is not a multiple of %d", ErrDecryptFailed, len(blob), aes.BlockSize)
	}

	out := make([]byte, len(blob))
	for i := 0; i < len(blob); i += aes.BlockSize {
		block.Decrypt(out[i:i+aes.BlockSize], blob[i:i+aes.BlockSize])
	}

	plain, err := pkcs7Unpad(out, aes.BlockSize)
	if err != nil {
		return nil, err
	}

	return plain, nil
}

func pkcs7Pad(data []byte, blockSize int) []byte {
	n := blockSize - len(data)%blockSize
	out := make([]byte, len(data), len(data)+n)
	copy(out, data)
	return append(out, bytes.Repeat([]byte{byte(n)}, n)...)
}

func pkcs7Unpad(data []byte, blockSize int) ([]byte, error) {
	if len(data) == 0 || len(data)%blockSize != 0 {
		return nil, fmt.Errorf("%w: bad padded length", ErrDecryptFailed)
	}

	n := int(data[len(data)-1])
	if n == 0 || n > blockSize {
		return nil, fmt.Errorf("%w: bad padding", ErrDecryptFailed)
	}

	for _, b := range data[len(data)-n:] {
		if int(b) != n {
			return nil, fmt.Errorf("%w: bad padding", ErrDecryptFailed)
		}
	}

	return data[:len(data)-n], nil
}
