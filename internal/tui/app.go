// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/MKhiriev/go-dir-backup/internal/logger"
	"github.com/MKhiriev/go-dir-backup/internal/service"
	"github.com/MKhiriev/go-dir-backup/models"
	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// copyToClipboard is swapped in tests.
var copyToClipboard = clipboard.WriteAll

// appModel is the single screen of the client:
// 1) a form with server, token and directory
// 2) an action row
// 3) the running session's state and progress
// 4) overlays for errors, confirmation and build info
type appModel struct {
	ctx     context.Context
	service service.BackupService
	logger  *logger.Logger

	inputs    []textinput.Model
	focus     int
	actionIdx int

	running  bool
	action   models.Action
	state    models.SessionState
	progress *models.ProgressEvent
	events   <-chan models.SessionEvent
	spinner  spinner.Model
	bar      progress.Model

	status  string
	overlay *errorOverlayModel
	confirm *confirmModel

	buildInfo     models.AppBuildInfo
	showBuildInfo bool
}

func newAppModel(ctx context.Context, svc service.BackupService, prefill service.Request, buildInfo models.AppBuildInfo, log *logger.Logger) appModel {
	sp := spinner.New()
	sp.Spinner = spinner.Dot

	m := appModel{
		ctx:       ctx,
		service:   svc,
		logger:    log,
		inputs:    newInputs(prefill),
		spinner:   sp,
		bar:       progress.New(progress.WithDefaultGradient(), progress.WithWidth(40)),
		buildInfo: buildInfo,
	}

	if prefill.Action != "" {
		for i, a := range formActions {
			if a == prefill.Action {
				m.actionIdx = i
			}
		}
	}
	m.inputs[fieldAddress].Focus()

	return m
}

func (m appModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case sessionEventMsg:
		return m.handleEvent(msg.event)
	case sessionClosedMsg:
		m.running = false
		m.events = nil
		return m, nil
	case spinner.TickMsg:
		if !m.running {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case tea.WindowSizeMsg:
		m.bar.Width = min(max(msg.Width-20, 10), 60)
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m.updateFocusedInput(msg)
}

func (m appModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, keys.quit) {
		return m, tea.Quit
	}

	switch {
	case m.showBuildInfo:
		if key.Matches(msg, keys.esc) || key.Matches(msg, keys.version) {
			m.showBuildInfo = false
		}
		return m, nil
	case m.overlay != nil:
		if key.Matches(msg, keys.enter) || key.Matches(msg, keys.esc) {
			m.overlay = nil
		}
		return m, nil
	case m.confirm != nil:
		switch {
		case key.Matches(msg, keys.yes):
			m.confirm = nil
			return m.startSession(models.ActionInit)
		case key.Matches(msg, keys.no), key.Matches(msg, keys.esc):
			m.confirm = nil
			m.status = "Token kept."
		}
		return m, nil
	case m.running:
		// no cancellation: the session runs to a terminal state
		return m, nil
	}

	switch {
	case key.Matches(msg, keys.esc):
		return m, tea.Quit
	case key.Matches(msg, keys.down):
		cmd := m.setFocus(m.focus + 1)
		return m, cmd
	case key.Matches(msg, keys.up):
		cmd := m.setFocus(m.focus - 1)
		return m, cmd
	case key.Matches(msg, keys.enter):
		if m.focus < fieldActions {
			cmd := m.setFocus(m.focus + 1)
			return m, cmd
		}
		return m.runSelected()
	}

	if m.focus == fieldActions {
		switch {
		case key.Matches(msg, keys.left):
			m.actionIdx = (m.actionIdx + len(formActions) - 1) % len(formActions)
		case key.Matches(msg, keys.right):
			m.actionIdx = (m.actionIdx + 1) % len(formActions)
		case key.Matches(msg, keys.version):
			m.showBuildInfo = true
		}
		return m, nil
	}

	return m.updateFocusedInput(msg)
}

func (m *appModel) setFocus(focus int) tea.Cmd {
	rows := fieldActions + 1
	m.focus = (focus%rows + rows) % rows

	var cmd tea.Cmd
	for i := range m.inputs {
		if i == m.focus {
			cmd = m.inputs[i].Focus()
			continue
		}
		m.inputs[i].Blur()
	}
	return cmd
}

func (m appModel) updateFocusedInput(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.focus >= fieldActions || m.running {
		return m, nil
	}
	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

func (m appModel) runSelected() (tea.Model, tea.Cmd) {
	action := formActions[m.actionIdx]

	if action == models.ActionInit {
		if token := strings.TrimSpace(m.inputs[fieldToken].Value()); token != "" {
			m.confirm = &confirmModel{token: token}
			return m, nil
		}
	}

	return m.startSession(action)
}

func (m appModel) startSession(action models.Action) (tea.Model, tea.Cmd) {
	m.running = true
	m.action = action
	m.state = models.StateIdle
	m.progress = nil
	m.status = ""
	m.events = m.service.Start(m.ctx, request(action, m.inputs))

	return m, tea.Batch(m.spinner.Tick, waitForEvent(m.events))
}

func (m appModel) handleEvent(ev models.SessionEvent) (tea.Model, tea.Cmd) {
	next := waitForEvent(m.events)

	switch {
	case ev.Outcome != nil:
		m.state = ev.State
		m.finish(*ev.Outcome)
	case ev.Progress != nil:
		p := *ev.Progress
		m.progress = &p
	default:
		if ev.State != m.state {
			m.progress = nil
		}
		m.state = ev.State
	}

	return m, next
}

func (m *appModel) finish(out models.Outcome) {
	if !out.OK() {
		m.status = errorStyle.Render(out.Kind.String())
		m.overlay = outcomeOverlay(out)
		return
	}

	m.status = okStyle.Render(out.Message())
	if out.Action != models.ActionInit {
		return
	}

	m.inputs[fieldToken].SetValue(out.Token)
	if err := copyToClipboard(out.Token); err != nil {
		m.logger.Warn().Err(err).Msg("could not copy token to clipboard")
		m.status += "\n" + out.Advice() + " Copy it from the Token field."
		return
	}
	m.status += " (copied to clipboard)\n" + out.Advice()
}

func (m appModel) View() string {
	switch {
	case m.showBuildInfo:
		return renderBuildInfoWindow(m.buildInfo)
	case m.overlay != nil:
		return m.overlay.View()
	case m.confirm != nil:
		return m.confirm.View()
	}

	var b strings.Builder

	for i, in := range m.inputs {
		cursor := "  "
		if i == m.focus {
			cursor = "> "
		}
		b.WriteString(cursor)
		b.WriteString(labelStyle.Render(fieldLabels[i]))
		b.WriteString(in.View())
		b.WriteString("\n")
	}
	b.WriteString("\n")

	cursor := "  "
	if m.focus == fieldActions {
		cursor = "> "
	}
	b.WriteString(cursor)
	for i, a := range formActions {
		label := "[ " + actionLabels[a] + " ]"
		if i == m.actionIdx {
			label = selectedStyle.Render(label)
		}
		b.WriteString(label)
		b.WriteString(" ")
	}
	b.WriteString("\n\n")

	if m.running {
		b.WriteString(m.spinner.View())
		b.WriteString(" ")
		b.WriteString(m.state.String())
		if m.progress != nil {
			b.WriteString("\n")
			b.WriteString(m.renderProgress(*m.progress))
		}
		b.WriteString("\n")
	}
	if m.status != "" {
		b.WriteString(m.status)
		b.WriteString("\n")
	}

	hotKeys := "tab/↑/↓: move │ ←/→: action │ enter: run │ v: version │ esc: quit"
	if m.running {
		hotKeys = "session running..."
	}

	return renderPage("GO-DIR-BACKUP", strings.TrimRight(b.String(), "\n"), hotKeys)
}

func (m appModel) renderProgress(p models.ProgressEvent) string {
	if pct := p.Percent(); pct >= 0 {
		return fmt.Sprintf("%s %s / %s", m.bar.ViewAs(pct/100), formatBytes(p.Bytes), formatBytes(p.Total))
	}
	return fmt.Sprintf("%s: %s", p.Stage, formatBytes(p.Bytes))
}
