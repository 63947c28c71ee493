// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

// confirmModel asks before an init session overwrites the token in the form.
type confirmModel struct {
	token string
}

func (m confirmModel) View() string {
	content := "Replace the current token \"" + fitText(m.token, 40) + "\"?\n\n"
	content += "The old token is the only key to its backup.\n\n"
	content += "y yes    n no"
	return overlayBoxStyle.Render(content)
}
