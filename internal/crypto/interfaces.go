// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

//go:generate mockgen -source=interfaces.go -destination=../mock/cipher_mock.go -package=mock

// Cipher превращает архив в зашифрованный blob и обратно.
// Он ничего не знает о сети и файловой системе: на вход байты и ключ,
// на выход байты.
//
// Ключ всегда получается через [DeriveKey] из токена пользователя, поэтому
// один и тот же токен восстанавливает всё, что им было зашифровано.
type Cipher interface {
	// Scheme returns the configured name of the blob format, e.g. "legacy".
	Scheme() string

	// Encrypt returns the blob for plaintext under key.
	// Returns an error only if key has an unsupported length.
	Encrypt(key, plaintext []byte) ([]byte, error)

	// Decrypt reverses Encrypt. Any malformed, truncated or tampered blob and
	// any wrong key that is detected yields an error wrapping [ErrDecryptFailed].
	Decrypt(key, blob []byte) ([]byte, error)
}
