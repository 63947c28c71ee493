// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package utils

import "github.com/google/uuid"

// TokenGenerator issues identifiers.
type TokenGenerator interface {
	Generate() string
}

// RandomTokens issues random (version 4) UUIDs. Account tokens double as
// encryption secrets, so they must not carry a timestamp.
type RandomTokens struct{}

// Generate implements [TokenGenerator].
func (RandomTokens) Generate() string {
	return uuid.NewString()
}

// SessionIDs issues time-ordered (version 7) UUIDs for pipeline sessions, so
// staging file names sort by creation time.
type SessionIDs struct{}

// Generate implements [TokenGenerator].
func (SessionIDs) Generate() string {
	v7, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}

	return v7.String()
}

// IsToken reports whether s is a well-formed UUID token.
func IsToken(s string) bool {
	return uuid.Validate(s) == nil
}
