// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

type errorOverlayModel struct {
	message string
	advice  string
}

func (m errorOverlayModel) View() string {
	content := errorStyle.Render("Error") + "\n\n" + m.message
	if m.advice != "" {
		content += "\n\n" + m.advice
	}
	content += "\n\nenter / esc close"
	return overlayBoxStyle.Render(content)
}
