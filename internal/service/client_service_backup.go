// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/MKhiriev/go-dir-backup/internal/adapter"
	"github.com/MKhiriev/go-dir-backup/internal/archiver"
	"github.com/MKhiriev/go-dir-backup/internal/crypto"
	"github.com/MKhiriev/go-dir-backup/internal/logger"
	"github.com/MKhiriev/go-dir-backup/internal/store"
	"github.com/MKhiriev/go-dir-backup/internal/utils"
	"github.com/MKhiriev/go-dir-backup/models"
)

// eventBuffer is the capacity of the channel returned by Start.
const eventBuffer = 64

type clientBackupService struct {
	newAdapter adapter.Factory
	archiver   archiver.Archiver
	cipher     crypto.Cipher
	stagingDir string
	sessionIDs utils.TokenGenerator
	logger     *logger.Logger
}

// BackupDeps are the collaborators of the backup service.
type BackupDeps struct {
	NewAdapter adapter.Factory
	Archiver   archiver.Archiver
	Cipher     crypto.Cipher

	// StagingDir holds backup staging files. Restore stages inside the
	// destination directory instead.
	StagingDir string

	// SessionIDs defaults to time-ordered UUIDs.
	SessionIDs utils.TokenGenerator
}

// NewBackupService wires deps into a [BackupService].
func NewBackupService(deps BackupDeps, log *logger.Logger) BackupService {
	ids := deps.SessionIDs
	if ids == nil {
		ids = utils.SessionIDs{}
	}

	return &clientBackupService{
		newAdapter: deps.NewAdapter,
		archiver:   deps.Archiver,
		cipher:     deps.Cipher,
		stagingDir: deps.StagingDir,
		sessionIDs: ids,
		logger:     log,
	}
}

func (s *clientBackupService) Start(ctx context.Context, req Request) <-chan models.SessionEvent {
	events := make(chan models.SessionEvent, eventBuffer)

	go func() {
		defer close(events)
		s.Run(ctx, req, func(ev models.SessionEvent) {
			events <- ev
		})
	}()

	return events
}

func (s *clientBackupService) Run(ctx context.Context, req Request, observe Observer) models.Outcome {
	switch req.Action {
	case models.ActionPing:
		return s.CheckServer(ctx, req, observe)
	case models.ActionInit:
		return s.InitIdentity(ctx, req, observe)
	case models.ActionBackup:
		return s.Backup(ctx, req, observe)
	case models.ActionRestore:
		return s.Restore(ctx, req, observe)
	default:
		sess := s.begin(req.Action, observe)
		return sess.finish(mapFailure(req.Action, fmt.Errorf("%w: %q", ErrUnknownAction, req.Action)))
	}
}

func (s *clientBackupService) CheckServer(ctx context.Context, req Request, observe Observer) models.Outcome {
	sess := s.begin(models.ActionPing, observe)
	req = req.normalized()

	if err := req.validate(models.ActionPing); err != nil {
		return sess.finish(mapFailure(sess.action, err))
	}
	if _, out := s.connect(ctx, sess, req.Address); out != nil {
		return sess.finish(*out)
	}

	return sess.finish(models.Outcome{})
}

func (s *clientBackupService) InitIdentity(ctx context.Context, req Request, observe Observer) models.Outcome {
	sess := s.begin(models.ActionInit, observe)
	req = req.normalized()

	if err := req.validate(models.ActionInit); err != nil {
		return sess.finish(mapFailure(sess.action, err))
	}
	srv, out := s.connect(ctx, sess, req.Address)
	if out != nil {
		return sess.finish(*out)
	}

	sess.enter(models.StateIssuing)
	token, err := srv.InitToken(ctx)
	if err != nil {
		return sess.finish(mapFailure(sess.action, err))
	}

	return sess.finish(models.Outcome{Token: token})
}

func (s *clientBackupService) Backup(ctx context.Context, req Request, observe Observer) models.Outcome {
	sess := s.begin(models.ActionBackup, observe)
	req = req.normalized()

	if err := req.validate(models.ActionBackup); err != nil {
		return sess.finish(mapFailure(sess.action, err))
	}
	srv, out := s.connect(ctx, sess, req.Address)
	if out != nil {
		return sess.finish(*out)
	}

	staging, err := store.NewStagingArea(s.stagingDir, sess.id)
	if err != nil {
		return sess.finish(mapFailure(sess.action, err))
	}
	sess.staging = staging
	archivePath := staging.Path(store.StagingArchive)
	blobPath := staging.Path(store.StagingEncrypted)

	sess.enter(models.StateArchiving)
	if err := s.archiver.Pack(ctx, req.Directory, archivePath, sess.progress(models.StageArchiving)); err != nil {
		return sess.finish(mapFailure(sess.action, err))
	}

	sess.enter(models.StateTransforming)
	key, err := crypto.DeriveKeyChecked(req.Token)
	if err != nil {
		return sess.finish(mapFailure(sess.action, err))
	}
	if err := crypto.EncryptFile(s.cipher, key, archivePath, blobPath); err != nil {
		return sess.finish(mapFailure(sess.action, err))
	}
	sess.log.Debug().Str("scheme", s.cipher.Scheme()).Msg("archive encrypted")

	sess.enter(models.StateUploading)
	if err := srv.Upload(ctx, blobPath, req.Token, sess.progress(models.StageUploading)); err != nil {
		return sess.finish(mapFailure(sess.action, err))
	}

	return sess.finish(models.Outcome{})
}

func (s *clientBackupService) Restore(ctx context.Context, req Request, observe Observer) models.Outcome {
	sess := s.begin(models.ActionRestore, observe)
	req = req.normalized()

	if err := req.validate(models.ActionRestore); err != nil {
		return sess.finish(mapFailure(sess.action, err))
	}
	srv, out := s.connect(ctx, sess, req.Address)
	if out != nil {
		return sess.finish(*out)
	}

	staging, err := store.NewStagingArea(req.Directory, sess.id)
	if err != nil {
		return sess.finish(mapFailure(sess.action, fmt.Errorf("%w: %v", archiver.ErrExtractFailed, err)))
	}
	sess.staging = staging
	blobPath := staging.Path(store.StagingEncrypted)
	archivePath := staging.Path(store.StagingArchive)

	sess.enter(models.StateDownloading)
	if err := srv.Download(ctx, req.Token, blobPath, sess.progress(models.StageDownloading)); err != nil {
		return sess.finish(mapFailure(sess.action, err))
	}

	sess.enter(models.StateTransforming)
	key, err := crypto.DeriveKeyChecked(req.Token)
	if err != nil {
		return sess.finish(mapFailure(sess.action, err))
	}
	if err := crypto.DecryptFile(s.cipher, key, blobPath, archivePath); err != nil {
		return sess.finish(mapFailure(sess.action, err))
	}

	sess.enter(models.StateExtracting)
	if err := s.archiver.Unpack(ctx, archivePath, req.Directory); err != nil {
		return sess.finish(mapFailure(sess.action, err))
	}

	return sess.finish(models.Outcome{})
}

func (s *clientBackupService) begin(action models.Action, observe Observer) *session {
	sess := newSession(s.sessionIDs.Generate(), action, observe, s.logger)
	sess.log.Info().Msg("session started")
	return sess
}

// connect builds the adapter for address and runs the health check.
// A non-nil Outcome means the session must end with it.
func (s *clientBackupService) connect(ctx context.Context, sess *session, address string) (adapter.ServerAdapter, *models.Outcome) {
	srv, err := s.newAdapter(address)
	if err != nil {
		out := mapFailure(sess.action, err)
		return nil, &out
	}

	sess.enter(models.StateChecking)
	if err := srv.Ping(ctx); err != nil {
		out := mapPingFailure(sess.action, err)
		return nil, &out
	}

	return srv, nil
}

func (r Request) normalized() Request {
	r.Address = strings.TrimSpace(r.Address)
	r.Token = strings.TrimSpace(r.Token)
	r.Directory = os.ExpandEnv(strings.TrimSpace(r.Directory))
	return r
}

func (r Request) validate(action models.Action) error {
	if r.Address == "" {
		return ErrNoAddress
	}
	if action == models.ActionPing || action == models.ActionInit {
		return nil
	}

	if r.Token == "" {
		return ErrNoToken
	}
	if r.Directory == "" {
		return ErrNoDirectory
	}

	if action == models.ActionBackup {
		info, err := os.Stat(r.Directory)
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%w: %s", ErrNoSuchDir, r.Directory)
		}
		if err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidRequest, err)
		}
		if !info.IsDir() {
			return fmt.Errorf("%w: %s", ErrNotADirectory, r.Directory)
		}
	}

	return nil
}
