// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"bytes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"fmt"
	"io"

	"golang.org/x/crypto/chacha20poly1305"
	"golang.org/x/crypto/hkdf"
)

const (
	sealedMagic = "GDB1"
	sealedInfo  = "go-dir-backup sealed v1"
)

// sealedCipher is XChaCha20-Poly1305 under a subkey expanded from the
// derived key with HKDF-SHA256.
//
// Blob layout: "GDB1" || 24-byte nonce || ciphertext+tag.
// The magic is bound as additional data.
type sealedCipher struct{}

// NewSealedCipher returns the authenticated [Cipher].
func NewSealedCipher() Cipher {
	return sealedCipher{}
}

// Scheme implements [Cipher].
func (sealedCipher) Scheme() string {
	return SchemeSealed
}

// Encrypt implements [Cipher]. Every call draws a fresh random nonce, so
// equal inputs give different blobs.
func (sealedCipher) Encrypt(key, plaintext []byte) ([]byte, error) {
	aead, err := newSealedAEAD(key)
	if err != nil {
		return nil, err
	}

	nonce := make([]byte, aead.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, fmt.Errorf("read nonce: %w", err)
	}

	out := make([]byte, 0, len(sealedMagic)+len(nonce)+len(plaintext)+aead.Overhead())
	out = append(out, sealedMagic...)
	out = append(out, nonce...)

	return aead.Seal(out, nonce, plaintext, []byte(sealedMagic)), nil
}

// Decrypt implements [Cipher].
func (sealedCipher) Decrypt(key, blob []byte) ([]byte, error) {
	aead, err := newSealedAEAD(key)
	if err != nil {
		return nil, err
	}

	header := len(sealedMagic) + aead.NonceSize()
	if len(blob) < header+aead.Overhead() || !bytes.HasPrefix(blob, []byte(sealedMagic)) {
		return nil, fmt.Errorf("%w: not a sealed blob", ErrDecryptFailed)
	}

	nonce := blob[len(sealedMagic):header]
	plain, err := aead.Open(nil, nonce, blob[header:], []byte(sealedMagic))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecryptFailed, err)
	}

	return plain, nil
}

func newSealedAEAD(key []byte) (cipher.AEAD, error) {
	if len(key) == 0 {
		return nil, fmt.Errorf("create cipher: empty key")
	}

	subkey := make([]byte, chacha20poly1305.KeySize)
	if _, err := io.ReadFull(hkdf.New(sha256.New, key, nil, []byte(sealedInfo)), subkey); err != nil {
		return nil, fmt.Errorf("expand key: %w", err)
	}

	aead, err := chacha20poly1305.NewX(subkey)
	if err != nil {
		return nil, fmt.Errorf("create cipher: %w", err)
	}

	return aead, nil
}
