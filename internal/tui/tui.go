// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"context"
	"errors"

	"github.com/MKhiriev/go-dir-backup/internal/logger"
	"github.com/MKhiriev/go-dir-backup/internal/service"
	"github.com/MKhiriev/go-dir-backup/models"
	tea "github.com/charmbracelet/bubbletea"
)

var ErrUserQuit = errors.New("user quit")

// TUI is the interactive front-end. It owns no session state of its own:
// every action turns the form into a service.Request and consumes the
// session's event stream.
type TUI struct {
	service   service.BackupService
	prefill   service.Request
	buildInfo models.AppBuildInfo

	logger *logger.Logger
}

// New returns a TUI whose form starts filled with prefill.
func New(svc service.BackupService, prefill service.Request, buildInfo models.AppBuildInfo, log *logger.Logger) *TUI {
	return &TUI{
		service:   svc,
		prefill:   prefill,
		buildInfo: buildInfo,
		logger:    log,
	}
}

// Run blocks until the user quits. A session still running at that moment
// is abandoned together with ctx.
func (t *TUI) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	root := newAppModel(ctx, t.service, t.prefill, t.buildInfo, t.logger)
	finalModel, err := tea.NewProgram(root, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	if err != nil {
		return err
	}

	if result, ok := finalModel.(appModel); ok && result.running {
		return ErrUserQuit
	}
	return nil
}
