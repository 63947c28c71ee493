// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"github.com/MKhiriev/go-dir-backup/internal/logger"
	"github.com/MKhiriev/go-dir-backup/internal/store"
	"github.com/MKhiriev/go-dir-backup/models"
)

// session tracks one pipeline run: its state, its staging files and the
// observer that receives its events. It is used from a single goroutine.
type session struct {
	id      string
	action  models.Action
	state   models.SessionState
	observe Observer
	log     *logger.Logger
	staging *store.StagingArea

	// last reported byte count per stage, to keep progress monotonic
	reported map[models.Stage]int64
}

func newSession(id string, action models.Action, observe Observer, log *logger.Logger) *session {
	return &session{
		id:       id,
		action:   action,
		state:    models.StateIdle,
		observe:  observe,
		log:      log.WithSession(id, string(action)),
		reported: make(map[models.Stage]int64),
	}
}

func (s *session) emit(ev models.SessionEvent) {
	if s.observe == nil {
		return
	}
	ev.SessionID = s.id
	ev.Action = s.action
	ev.State = s.state
	s.observe(ev)
}

// enter moves the session to state and announces it.
func (s *session) enter(state models.SessionState) {
	s.state = state
	s.log.Debug().Str("state", state.String()).Msg("session state changed")
	s.emit(models.SessionEvent{})
}

// progress returns a callback that turns byte counts of stage into events.
// Counts that do not advance are dropped.
func (s *session) progress(stage models.Stage) models.ProgressFunc {
	return func(done, total int64) {
		if last, ok := s.reported[stage]; ok && done <= last {
			return
		}
		s.reported[stage] = done
		s.emit(models.SessionEvent{Progress: &models.ProgressEvent{Stage: stage, Bytes: done, Total: total}})
	}
}

// finish removes the staging files, moves the session to its terminal state
// and emits the final event. Cleanup always runs before the outcome is
// reported.
func (s *session) finish(out models.Outcome) models.Outcome {
	if s.staging != nil {
		if err := s.staging.Cleanup(); err != nil {
			s.log.Warn().Err(err).Msg("failed to remove staging files")
		}
	}

	out.Action = s.action
	if out.OK() {
		s.state = models.StateDone
		s.log.Info().Str("state", s.state.String()).Msg(out.Message())
	} else {
		s.state = models.StateFailed
		s.log.Error().Err(out.Err).
			Str("state", s.state.String()).
			Str("kind", out.Kind.String()).
			Int("status", out.StatusCode).
			Msg("session failed")
	}

	s.emit(models.SessionEvent{Outcome: &out})
	return out
}
