// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"os"
	"time"

	"github.com/MKhiriev/go-dir-backup/internal/logger"
	"github.com/MKhiriev/go-dir-backup/internal/store"
)

// StagingSweeper removes staging files left behind by sessions that never
// reached a terminal state.
type StagingSweeper struct {
	dirs       []string
	staleAfter time.Duration
	now        func() time.Time

	logger *logger.Logger
}

func NewStagingSweeper(dirs []string, staleAfter time.Duration, log *logger.Logger) *StagingSweeper {
	return &StagingSweeper{
		dirs:       dirs,
		staleAfter: staleAfter,
		now:        time.Now,
		logger:     log,
	}
}

func (s *StagingSweeper) Run() {
	for _, dir := range s.dirs {
		dir = os.ExpandEnv(dir)

		removed, err := store.SweepStaging(dir, s.staleAfter, s.now())
		if err != nil {
			s.logger.Warn().Err(err).Str("dir", dir).Msg("staging sweep incomplete")
		}
		if len(removed) > 0 {
			s.logger.Info().Str("dir", dir).Strs("removed", removed).Msg("removed stale staging files")
		}
	}
}
