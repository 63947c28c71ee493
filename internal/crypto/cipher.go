// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"fmt"
	"os"
)

// Scheme names accepted by [NewCipher].
const (
	SchemeLegacy = "legacy"
	SchemeSealed = "sealed"
)

// NewCipher returns the [Cipher] for scheme. An empty scheme selects legacy.
func NewCipher(scheme string) (Cipher, error) {
	switch scheme {
	case "", SchemeLegacy:
		return NewLegacyCipher(), nil
	case SchemeSealed:
		return NewSealedCipher(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownScheme, scheme)
	}
}

// EncryptFile reads src whole, encrypts it and writes the blob to dst with
// mode 0600. dst is replaced if it exists.
func EncryptFile(c Cipher, key []byte, src, dst string) error {
	plain, err := os.ReadFile(src)
	if err != nil {
		return fmt.Errorf("read %s: %w", src, err)
	}

	blob, err := c.Encrypt(key, plain)
	if err != nil {
		return fmt.Errorf("encrypt %s: %w", src, err)
	}

	if err := os.WriteFile(dst, blob, 0o600); err != nil {
		return fmt.Errorf("write %s: %w", dst, err)
	}

	return nil
}

// DecryptFile reverses EncryptFile. Nothing is written to dst when the blob
// does not decrypt.
func DecryptFile(c Cipher, key []byte, src, dst string) error {
	blob, err := os.ReadFile(src)
	if err != nil {
		return fmt.Errorf("read %s: %w", src, err)
	}

	plain, err := c.Decrypt(key, blob)
	if err != nil {
		return err
	}

	if err := os.WriteFile(dst, plain, 0o600); err != nil {
		return fmt.Errorf("write %s: %w", dst, err)
	}

	return nil
}
