// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/MKhiriev/go-dir-backup/internal/config"
	"github.com/MKhiriev/go-dir-backup/internal/logger"
	"github.com/MKhiriev/go-dir-backup/internal/service"
	"github.com/MKhiriev/go-dir-backup/models"
	"golang.org/x/term"
)

type App struct {
	services *service.ClientServices
	ui       UI
	worker   Worker
	prefill  service.Request

	out         io.Writer
	interactive func() bool

	logger *logger.Logger
}

func NewApp(cfg *config.ClientConfig, services *service.ClientServices, ui UI, worker Worker, log *logger.Logger) *App {
	return &App{
		services:    services,
		ui:          ui,
		worker:      worker,
		prefill:     Prefill(cfg),
		out:         os.Stdout,
		interactive: stdinIsTerminal,
		logger:      log,
	}
}

// Prefill maps the configured session defaults onto a request.
func Prefill(cfg *config.ClientConfig) service.Request {
	return service.Request{
		Action:    models.Action(cfg.App.Action),
		Address:   cfg.Adapter.HTTPAddress,
		Token:     cfg.App.Token,
		Directory: cfg.App.Directory,
	}
}

func (a *App) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	return a.run(ctx)
}

func (a *App) run(ctx context.Context) error {
	if a.worker != nil {
		a.worker.Run()
	}

	if a.prefill.Action != "" || !a.interactive() {
		return a.runHeadless(ctx)
	}

	a.logger.Info().Msg("starting interactive UI")
	return a.ui.Run(ctx)
}

// runHeadless runs the configured action once, printing state changes and
// the outcome to stdout.
func (a *App) runHeadless(ctx context.Context) error {
	if a.prefill.Action == "" {
		return ErrNoAction
	}
	if _, ok := models.ParseAction(string(a.prefill.Action)); !ok {
		return fmt.Errorf("%w: %q", ErrUnknownAction, a.prefill.Action)
	}

	a.logger.Info().Str("action", string(a.prefill.Action)).Msg("starting headless session")

	out := a.services.BackupService.Run(ctx, a.prefill, func(ev models.SessionEvent) {
		if ev.Progress != nil || ev.Outcome != nil {
			return
		}
		_, _ = fmt.Fprintf(a.out, "%s...\n", ev.State)
	})

	a.printOutcome(out)
	if !out.OK() {
		return fmt.Errorf("%w: %s", ErrSessionFailed, out.Kind)
	}
	return nil
}

func (a *App) printOutcome(out models.Outcome) {
	if out.OK() {
		_, _ = fmt.Fprintf(a.out, "OK: %s\n", out.Message())
	} else {
		_, _ = fmt.Fprintf(a.out, "FAILED: %s\n", out.Message())
	}
	if out.Token != "" {
		_, _ = fmt.Fprintf(a.out, "token: %s\n", out.Token)
	}
	if advice := out.Advice(); advice != "" {
		_, _ = fmt.Fprintln(a.out, advice)
	}
}

func stdinIsTerminal() bool {
	return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
}
