// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"github.com/MKhiriev/go-dir-backup/models"
	tea "github.com/charmbracelet/bubbletea"
)

// sessionEventMsg carries one event of the running session.
type sessionEventMsg struct {
	event models.SessionEvent
}

// sessionClosedMsg is sent once the event channel is drained.
type sessionClosedMsg struct{}

// waitForEvent reads the next event of a session. Each sessionEventMsg must be
// followed by another waitForEvent until sessionClosedMsg arrives.
func waitForEvent(events <-chan models.SessionEvent) tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-events
		if !ok {
			return sessionClosedMsg{}
		}
		return sessionEventMsg{event: ev}
	}
}
