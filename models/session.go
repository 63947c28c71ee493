// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// Action is the user-facing operation a session runs.
type Action string

const (
	ActionPing    Action = "ping"
	ActionInit    Action = "init"
	ActionBackup  Action = "backup"
	ActionRestore Action = "restore"
)

// ParseAction reports whether s names a known action.
func ParseAction(s string) (Action, bool) {
	switch a := Action(s); a {
	case ActionPing, ActionInit, ActionBackup, ActionRestore:
		return a, true
	default:
		return "", false
	}
}

// SessionState is a step of the backup / restore pipeline.
//
// Backup:  Idle -> Checking -> Archiving -> Transforming -> Uploading -> Done
// Restore: Idle -> Checking -> Downloading -> Transforming -> Extracting -> Done
// Init:    Idle -> Checking -> Issuing -> Done
//
// Any state may move to Failed.
type SessionState int

const (
	StateIdle SessionState = iota
	StateChecking
	StateArchiving
	StateDownloading
	StateTransforming
	StateUploading
	StateExtracting
	StateIssuing
	StateDone
	StateFailed
)

var stateNames = [...]string{
	StateIdle:         "idle",
	StateChecking:     "checking",
	StateArchiving:    "archiving",
	StateDownloading:  "downloading",
	StateTransforming: "transforming",
	StateUploading:    "uploading",
	StateExtracting:   "extracting",
	StateIssuing:      "issuing",
	StateDone:         "done",
	StateFailed:       "failed",
}

func (s SessionState) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return "unknown"
	}
	return stateNames[s]
}

// Terminal reports whether no further transitions follow s.
func (s SessionState) Terminal() bool {
	return s == StateDone || s == StateFailed
}

// SessionEvent is one message of a session's event stream. Exactly one of
// Progress and Outcome is set, or neither for a plain state transition.
// The event carrying Outcome is always the last one.
type SessionEvent struct {
	SessionID string
	Action    Action
	State     SessionState
	Progress  *ProgressEvent
	Outcome   *Outcome
}
