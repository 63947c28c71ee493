// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package server

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/MKhiriev/go-dir-backup/internal/config"
	"github.com/MKhiriev/go-dir-backup/internal/handler"
	"github.com/MKhiriev/go-dir-backup/internal/logger"
)

type server struct {
	httpServer *httpServer
	logger     *logger.Logger

	// ctx is the parent of the signal context; tests cancel it to stop run.
	ctx context.Context
}

func NewServer(handlers *handler.Handlers, cfg config.ServerHTTP, logger *logger.Logger) (Server, error) {
	return newServer(context.Background(), handlers, cfg, logger)
}

func newServer(ctx context.Context, handlers *handler.Handlers, cfg config.ServerHTTP, logger *logger.Logger) (*server, error) {
	logger.Info().Msg("creating new server...")

	if handlers == nil || handlers.HTTP == nil || cfg.HTTPAddress == "" {
		return nil, errNoServersAreCreated
	}

	return &server{
		httpServer: newHTTPServer(handlers.HTTP.Init(), cfg, logger),
		logger:     logger,
		ctx:        ctx,
	}, nil
}

func (s *server) RunServer() {
	if err := s.run(); err != nil {
		s.logger.Error().Err(err).Msg("error running server")
	}
}

func (s *server) Shutdown() {
	s.httpServer.Shutdown()
}

func (s *server) run() error {
	if s.httpServer.listener == nil {
		if err := s.httpServer.listen(); err != nil {
			return fmt.Errorf("error binding %s: %w", s.httpServer.server.Addr, err)
		}
	}

	ctx, stop := signal.NotifyContext(s.ctx, syscall.SIGTERM, syscall.SIGINT, syscall.SIGQUIT)
	defer stop()

	served := make(chan struct{})
	go func() {
		defer close(served)
		s.httpServer.RunServer()
	}()
	s.logger.Info().Str("address", s.httpServer.Addr()).Msg("launching HTTP server")

	<-ctx.Done()
	s.Shutdown()
	<-served

	s.logger.Info().Msg("server shutdown gracefully")
	return nil
}
