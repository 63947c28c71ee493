// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"crypto/md5"
	"crypto/sha512"
	"encoding/hex"
)

// KeySize is the length of a derived key in bytes (AES-128).
const KeySize = md5.Size

// DeriveKey turns a token into a symmetric key:
//
//	MD5( lowercase-hex( SHA-512(token) ) )
//
// The hex step is part of the format. Hashing the raw digest instead would
// produce different keys and break every existing backup.
func DeriveKey(token string) []byte {
	digest := sha512.Sum512([]byte(token))
	key := md5.Sum([]byte(hex.EncodeToString(digest[:])))
	return key[:]
}

// DeriveKeyChecked is DeriveKey that refuses an empty token.
func DeriveKeyChecked(token string) ([]byte, error) {
	if token == "" {
		return nil, ErrEmptyToken
	}
	return DeriveKey(token), nil
}
