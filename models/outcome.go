// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "fmt"

// FailureKind classifies why a session failed.
type FailureKind int

const (
	FailureNone FailureKind = iota
	FailureInputInvalid
	FailureUnreachable
	FailureArchive
	FailureExtract
	FailureDecrypt
	FailureTransferRejected
	FailureTransferConnection
	FailureInternal
)

func (k FailureKind) String() string {
	switch k {
	case FailureNone:
		return "none"
	case FailureInputInvalid:
		return "input invalid"
	case FailureUnreachable:
		return "server unreachable"
	case FailureArchive:
		return "archive failed"
	case FailureExtract:
		return "extract failed"
	case FailureDecrypt:
		return "decrypt failed"
	case FailureTransferRejected:
		return "transfer rejected"
	case FailureTransferConnection:
		return "transfer connection failed"
	default:
		return "internal error"
	}
}

// Outcome is the terminal result of a session.
type Outcome struct {
	Action Action
	Kind   FailureKind

	// StatusCode and Body are set for FailureTransferRejected and for a
	// health check answered with a non-200 status.
	StatusCode int
	Body       string

	// Token is the identity issued by an init session.
	Token string

	Err error
}

// OK reports whether the session succeeded.
func (o Outcome) OK() bool {
	return o.Kind == FailureNone
}

// Message is a one-line summary suitable for logs and the status bar.
func (o Outcome) Message() string {
	if o.OK() {
		switch o.Action {
		case ActionPing:
			return "server is reachable"
		case ActionInit:
			return "new token issued"
		case ActionBackup:
			return "backup uploaded"
		case ActionRestore:
			return "backup restored"
		}
		return "done"
	}
	if o.Kind == FailureTransferRejected {
		return fmt.Sprintf("%s: server answered %d: %s", o.Kind, o.StatusCode, o.Body)
	}
	if o.Err != nil {
		return fmt.Sprintf("%s: %v", o.Kind, o.Err)
	}
	return o.Kind.String()
}

// Advice tells the user what to try next.
func (o Outcome) Advice() string {
	switch o.Kind {
	case FailureNone:
		if o.Action == ActionInit {
			return "Keep this token safe: it is both your account and your encryption key."
		}
		return ""
	case FailureInputInvalid:
		return "Check the server address, token and directory fields."
	case FailureUnreachable:
		return "Check the server address and that the server is running."
	case FailureArchive:
		return "Make sure the directory exists and is readable."
	case FailureExtract:
		return "Make sure the destination directory is writable."
	case FailureDecrypt:
		return "The token does not match this backup, or the backup is corrupted."
	case FailureTransferRejected:
		if o.StatusCode == 404 {
			return "No backup is stored for this token yet."
		}
		return "The server refused the transfer; check the token."
	case FailureTransferConnection:
		return "The connection dropped; check the network and retry."
	default:
		return "Unexpected error; see the log file for details."
	}
}
