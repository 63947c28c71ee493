// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/MKhiriev/go-dir-backup/internal/adapter"
	"github.com/MKhiriev/go-dir-backup/internal/archiver"
	"github.com/MKhiriev/go-dir-backup/internal/crypto"
	"github.com/MKhiriev/go-dir-backup/internal/logger"
	"github.com/MKhiriev/go-dir-backup/internal/mock"
	"github.com/MKhiriev/go-dir-backup/internal/store"
	"github.com/MKhiriev/go-dir-backup/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const (
	testAddress = "127.0.0.1:8080"
	testToken   = "abc123"
	testSession = "0192f2d4-7c1e-7000-8000-000000000001"
)

type fixedIDs string

func (f fixedIDs) Generate() string { return string(f) }

// recorder collects the events of one session.
type recorder struct {
	events []models.SessionEvent
}

func (r *recorder) observe(ev models.SessionEvent) {
	r.events = append(r.events, ev)
}

func (r *recorder) states() []models.SessionState {
	var states []models.SessionState
	for _, ev := range r.events {
		if ev.Progress == nil {
			states = append(states, ev.State)
		}
	}
	return states
}

func (r *recorder) progress(stage models.Stage) []int64 {
	var bytes []int64
	for _, ev := range r.events {
		if ev.Progress != nil && ev.Progress.Stage == stage {
			bytes = append(bytes, ev.Progress.Bytes)
		}
	}
	return bytes
}

type testEnv struct {
	svc        BackupService
	adapter    *mock.MockServerAdapter
	stagingDir string
	dialed     []string
}

func newTestEnv(t *testing.T, ctrl *gomock.Controller, arch archiver.Archiver, cipher crypto.Cipher) *testEnv {
	t.Helper()

	env := &testEnv{
		adapter:    mock.NewMockServerAdapter(ctrl),
		stagingDir: filepath.Join(t.TempDir(), "staging"),
	}
	env.svc = NewBackupService(BackupDeps{
		NewAdapter: func(address string) (adapter.ServerAdapter, error) {
			env.dialed = append(env.dialed, address)
			return env.adapter, nil
		},
		Archiver:   arch,
		Cipher:     cipher,
		StagingDir: env.stagingDir,
		SessionIDs: fixedIDs(testSession),
	}, logger.Nop())

	return env
}

func stagingLeft(t *testing.T, dir string) []string {
	t.Helper()

	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return nil
	}
	require.NoError(t, err)

	var left []string
	for _, e := range entries {
		if strings.HasPrefix(e.Name(), store.StagingPrefix) {
			left = append(left, e.Name())
		}
	}
	return left
}

func makeSource(t *testing.T) string {
	t.Helper()

	src := filepath.Join(t.TempDir(), "docs")
	require.NoError(t, os.MkdirAll(src, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(src, "notes.txt"), []byte("0123456789"), 0o644))
	return src
}

func TestBackupThenRestore_RoundTrip(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	env := newTestEnv(t, ctrl, archiver.NewTarArchiver(8192, logger.Nop()), crypto.NewLegacyCipher())
	src := makeSource(t)

	var uploaded []byte
	env.adapter.EXPECT().Ping(gomock.Any()).Return(nil).Times(2)
	env.adapter.EXPECT().
		Upload(gomock.Any(), gomock.Any(), testToken, gomock.Any()).
		DoAndReturn(func(_ context.Context, path, _ string, progress models.ProgressFunc) error {
			data, err := os.ReadFile(path)
			if err != nil {
				return err
			}
			uploaded = data
			progress(int64(len(data)), int64(len(data)))
			return nil
		})

	out := env.svc.Backup(context.Background(), Request{Address: testAddress, Token: testToken, Directory: src}, nil)
	require.True(t, out.OK(), out.Message())
	require.NotEmpty(t, uploaded)
	assert.Zero(t, len(uploaded)%16)
	assert.Empty(t, stagingLeft(t, env.stagingDir))

	dest := filepath.Join(t.TempDir(), "docs")
	env.adapter.EXPECT().
		Download(gomock.Any(), testToken, gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _, path string, _ models.ProgressFunc) error {
			assert.Equal(t, dest, filepath.Dir(path))
			return os.WriteFile(path, uploaded, 0o600)
		})

	out = env.svc.Restore(context.Background(), Request{Address: testAddress, Token: testToken, Directory: dest}, nil)
	require.True(t, out.OK(), out.Message())

	got, err := os.ReadFile(filepath.Join(dest, "notes.txt"))
	require.NoError(t, err)
	assert.Equal(t, "0123456789", string(got))
	assert.Empty(t, stagingLeft(t, dest))
}

func TestBackup_EventOrder(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	arch := mock.NewMockArchiver(ctrl)
	env := newTestEnv(t, ctrl, arch, crypto.NewLegacyCipher())
	src := makeSource(t)

	gomock.InOrder(
		env.adapter.EXPECT().Ping(gomock.Any()).Return(nil),
		arch.EXPECT().
			Pack(gomock.Any(), src, gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _, archivePath string, progress models.ProgressFunc) error {
				progress(4, 10)
				progress(4, 10)
				progress(10, 10)
				return os.WriteFile(archivePath, []byte("tar-gz-bytes"), 0o600)
			}),
		env.adapter.EXPECT().
			Upload(gomock.Any(), gomock.Any(), testToken, gomock.Any()).
			DoAndReturn(func(_ context.Context, _, _ string, progress models.ProgressFunc) error {
				progress(8, 16)
				progress(16, 16)
				return nil
			}),
	)

	rec := &recorder{}
	out := env.svc.Backup(context.Background(), Request{Address: testAddress, Token: testToken, Directory: src}, rec.observe)
	require.True(t, out.OK(), out.Message())

	assert.Equal(t, []models.SessionState{
		models.StateChecking,
		models.StateArchiving,
		models.StateTransforming,
		models.StateUploading,
		models.StateDone,
	}, rec.states())
	assert.Equal(t, []int64{4, 10}, rec.progress(models.StageArchiving))
	assert.Equal(t, []int64{8, 16}, rec.progress(models.StageUploading))

	last := rec.events[len(rec.events)-1]
	require.NotNil(t, last.Outcome)
	assert.Equal(t, models.ActionBackup, last.Outcome.Action)
	for _, ev := range rec.events {
		assert.Equal(t, testSession, ev.SessionID)
	}
}

func TestBackup_ServerRejectsUpload(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	env := newTestEnv(t, ctrl, archiver.NewTarArchiver(8192, logger.Nop()), crypto.NewLegacyCipher())
	src := makeSource(t)

	env.adapter.EXPECT().Ping(gomock.Any()).Return(nil)
	env.adapter.EXPECT().
		Upload(gomock.Any(), gomock.Any(), testToken, gomock.Any()).
		DoAndReturn(func(_ context.Context, path, _ string, _ models.ProgressFunc) error {
			assert.FileExists(t, path)
			return &adapter.RejectedError{StatusCode: 500, Body: "disk full"}
		})

	rec := &recorder{}
	out := env.svc.Backup(context.Background(), Request{Address: testAddress, Token: testToken, Directory: src}, rec.observe)

	assert.Equal(t, models.FailureTransferRejected, out.Kind)
	assert.Equal(t, 500, out.StatusCode)
	assert.Equal(t, "disk full", out.Body)
	assert.Empty(t, stagingLeft(t, env.stagingDir))

	last := rec.events[len(rec.events)-1]
	assert.Equal(t, models.StateFailed, last.State)
	require.NotNil(t, last.Outcome)
}

func TestBackup_UploadConnectionDrop(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	env := newTestEnv(t, ctrl, archiver.NewTarArchiver(8192, logger.Nop()), crypto.NewLegacyCipher())
	src := makeSource(t)

	env.adapter.EXPECT().Ping(gomock.Any()).Return(nil)
	env.adapter.EXPECT().
		Upload(gomock.Any(), gomock.Any(), testToken, gomock.Any()).
		Return(fmt.Errorf("%w: connection reset by peer", adapter.ErrConnectionFailed))

	out := env.svc.Backup(context.Background(), Request{Address: testAddress, Token: testToken, Directory: src}, nil)

	assert.Equal(t, models.FailureTransferConnection, out.Kind)
	assert.Empty(t, stagingLeft(t, env.stagingDir))
}

func TestBackup_ArchiveFailureCleansUp(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	arch := mock.NewMockArchiver(ctrl)
	env := newTestEnv(t, ctrl, arch, mock.NewMockCipher(ctrl))
	src := makeSource(t)

	env.adapter.EXPECT().Ping(gomock.Any()).Return(nil)
	arch.EXPECT().
		Pack(gomock.Any(), src, gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _, archivePath string, _ models.ProgressFunc) error {
			_ = os.WriteFile(archivePath, []byte("partial"), 0o600)
			return fmt.Errorf("%w: permission denied", archiver.ErrArchiveFailed)
		})

	out := env.svc.Backup(context.Background(), Request{Address: testAddress, Token: testToken, Directory: src}, nil)

	assert.Equal(t, models.FailureArchive, out.Kind)
	assert.Empty(t, stagingLeft(t, env.stagingDir))
}

func TestSessions_PingGatesPipeline(t *testing.T) {
	tests := []struct {
		name string
		run  func(BackupService, Request) models.Outcome
	}{
		{name: "backup", run: func(s BackupService, r Request) models.Outcome { return s.Backup(context.Background(), r, nil) }},
		{name: "restore", run: func(s BackupService, r Request) models.Outcome { return s.Restore(context.Background(), r, nil) }},
		{name: "init", run: func(s BackupService, r Request) models.Outcome { return s.InitIdentity(context.Background(), r, nil) }},
		{name: "ping", run: func(s BackupService, r Request) models.Outcome { return s.CheckServer(context.Background(), r, nil) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			env := newTestEnv(t, ctrl, mock.NewMockArchiver(ctrl), mock.NewMockCipher(ctrl))
			env.adapter.EXPECT().
				Ping(gomock.Any()).
				Return(fmt.Errorf("%w: connection refused", adapter.ErrConnectionFailed))

			dest := filepath.Join(t.TempDir(), "docs")
			out := tt.run(env.svc, Request{Address: testAddress, Token: testToken, Directory: makeSource(t)})

			assert.Equal(t, models.FailureUnreachable, out.Kind)
			assert.NoDirExists(t, env.stagingDir)
			assert.NoDirExists(t, dest)
		})
	}
}

func TestCheckServer_NonPongIsUnreachable(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	env := newTestEnv(t, ctrl, mock.NewMockArchiver(ctrl), mock.NewMockCipher(ctrl))
	env.adapter.EXPECT().Ping(gomock.Any()).Return(&adapter.RejectedError{StatusCode: 503, Body: "maintenance"})

	out := env.svc.CheckServer(context.Background(), Request{Address: testAddress}, nil)

	assert.Equal(t, models.FailureUnreachable, out.Kind)
	assert.Equal(t, 503, out.StatusCode)
}

func TestRestore_UnknownToken(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	// no expectations: nothing may be decrypted or extracted
	arch := mock.NewMockArchiver(ctrl)
	cipher := mock.NewMockCipher(ctrl)
	env := newTestEnv(t, ctrl, arch, cipher)
	dest := filepath.Join(t.TempDir(), "docs")

	env.adapter.EXPECT().Ping(gomock.Any()).Return(nil)
	env.adapter.EXPECT().
		Download(gomock.Any(), "unknown", gomock.Any(), gomock.Any()).
		Return(&adapter.RejectedError{StatusCode: 404, Body: "File not found"})

	rec := &recorder{}
	out := env.svc.Restore(context.Background(), Request{Address: testAddress, Token: "unknown", Directory: dest}, rec.observe)

	assert.Equal(t, models.FailureTransferRejected, out.Kind)
	assert.Equal(t, 404, out.StatusCode)
	assert.Equal(t, "No backup is stored for this token yet.", out.Advice())
	assert.Empty(t, stagingLeft(t, dest))
	assert.NotContains(t, rec.states(), models.StateTransforming)
}

func TestRestore_CorruptBlob(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	env := newTestEnv(t, ctrl, mock.NewMockArchiver(ctrl), crypto.NewLegacyCipher())
	dest := filepath.Join(t.TempDir(), "docs")

	env.adapter.EXPECT().Ping(gomock.Any()).Return(nil)
	env.adapter.EXPECT().
		Download(gomock.Any(), testToken, gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _, path string, _ models.ProgressFunc) error {
			return os.WriteFile(path, []byte("seventeen bytes!!"), 0o600)
		})

	out := env.svc.Restore(context.Background(), Request{Address: testAddress, Token: testToken, Directory: dest}, nil)

	assert.Equal(t, models.FailureDecrypt, out.Kind)
	assert.DirExists(t, dest)
	assert.Empty(t, stagingLeft(t, dest))
}

func TestRestore_ExtractFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	arch := mock.NewMockArchiver(ctrl)
	cipher := crypto.NewLegacyCipher()
	env := newTestEnv(t, ctrl, arch, cipher)
	dest := filepath.Join(t.TempDir(), "docs")

	blob, err := cipher.Encrypt(crypto.DeriveKey(testToken), []byte("not really a tarball"))
	require.NoError(t, err)

	env.adapter.EXPECT().Ping(gomock.Any()).Return(nil)
	env.adapter.EXPECT().
		Download(gomock.Any(), testToken, gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _, path string, _ models.ProgressFunc) error {
			return os.WriteFile(path, blob, 0o600)
		})
	arch.EXPECT().
		Unpack(gomock.Any(), gomock.Any(), dest).
		Return(fmt.Errorf("%w: gzip: invalid header", archiver.ErrExtractFailed))

	out := env.svc.Restore(context.Background(), Request{Address: testAddress, Token: testToken, Directory: dest}, nil)

	assert.Equal(t, models.FailureExtract, out.Kind)
	assert.Empty(t, stagingLeft(t, dest))
}

func TestRestore_WrongTokenWithLegacyCipher(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	env := newTestEnv(t, ctrl, archiver.NewTarArchiver(8192, logger.Nop()), crypto.NewLegacyCipher())
	src := makeSource(t)

	var uploaded []byte
	env.adapter.EXPECT().Ping(gomock.Any()).Return(nil).Times(2)
	env.adapter.EXPECT().
		Upload(gomock.Any(), gomock.Any(), testToken, gomock.Any()).
		DoAndReturn(func(_ context.Context, path, _ string, _ models.ProgressFunc) error {
			data, err := os.ReadFile(path)
			uploaded = data
			return err
		})

	out := env.svc.Backup(context.Background(), Request{Address: testAddress, Token: testToken, Directory: src}, nil)
	require.True(t, out.OK(), out.Message())

	const otherToken = "def456"
	dest := filepath.Join(t.TempDir(), "docs")
	env.adapter.EXPECT().
		Download(gomock.Any(), otherToken, gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _, path string, _ models.ProgressFunc) error {
			return os.WriteFile(path, uploaded, 0o600)
		})

	out = env.svc.Restore(context.Background(), Request{Address: testAddress, Token: otherToken, Directory: dest}, nil)

	require.False(t, out.OK())
	assert.Contains(t, []models.FailureKind{models.FailureDecrypt, models.FailureExtract}, out.Kind)
	assert.NoFileExists(t, filepath.Join(dest, "notes.txt"))
	assert.Empty(t, stagingLeft(t, dest))
}

func TestBackup_ConcurrentSessionsShareStagingDir(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	srv := mock.NewMockServerAdapter(ctrl)
	arch := archiver.NewTarArchiver(8192, logger.Nop())
	cipher := crypto.NewLegacyCipher()
	stagingDir := filepath.Join(t.TempDir(), "staging")

	svc := NewBackupService(BackupDeps{
		NewAdapter: func(string) (adapter.ServerAdapter, error) { return srv, nil },
		Archiver:   arch,
		Cipher:     cipher,
		StagingDir: stagingDir,
	}, logger.Nop())

	var (
		mu    sync.Mutex
		blobs = map[string][]byte{}
	)
	srv.EXPECT().Ping(gomock.Any()).Return(nil).Times(2)
	srv.EXPECT().
		Upload(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, path, token string, _ models.ProgressFunc) error {
			data, err := os.ReadFile(path)
			if err != nil {
				return err
			}
			mu.Lock()
			blobs[token] = data
			mu.Unlock()
			return nil
		}).
		Times(2)

	sources := map[string]string{
		testToken: strings.Repeat("first session ", 4096),
		"def456":  strings.Repeat("second session ", 4096),
	}

	var wg sync.WaitGroup
	outcomes := make(chan models.Outcome, len(sources))
	for token, body := range sources {
		src := filepath.Join(t.TempDir(), "docs")
		require.NoError(t, os.MkdirAll(src, 0o755))
		require.NoError(t, os.WriteFile(filepath.Join(src, "notes.txt"), []byte(body), 0o644))

		wg.Add(1)
		go func(token, src string) {
			defer wg.Done()
			outcomes <- svc.Backup(context.Background(), Request{Address: testAddress, Token: token, Directory: src}, nil)
		}(token, src)
	}
	wg.Wait()
	close(outcomes)

	for out := range outcomes {
		require.True(t, out.OK(), out.Message())
	}
	assert.Empty(t, stagingLeft(t, stagingDir))

	for token, body := range sources {
		work := t.TempDir()
		blobPath := filepath.Join(work, "blob")
		archivePath := filepath.Join(work, "archive.tar.gz")
		require.NoError(t, os.WriteFile(blobPath, blobs[token], 0o600))
		require.NoError(t, crypto.DecryptFile(cipher, crypto.DeriveKey(token), blobPath, archivePath))

		dest := filepath.Join(work, "docs")
		require.NoError(t, arch.Unpack(context.Background(), archivePath, dest))

		got, err := os.ReadFile(filepath.Join(dest, "notes.txt"))
		require.NoError(t, err)
		assert.Equal(t, body, string(got), "token %s", token)
	}
}

func TestSessions_InputValidation(t *testing.T) {
	src := makeSource(t)
	file := filepath.Join(src, "notes.txt")

	tests := []struct {
		name    string
		req     Request
		wantErr error
	}{
		{name: "ping without address", req: Request{Action: models.ActionPing}, wantErr: ErrNoAddress},
		{name: "blank address", req: Request{Action: models.ActionInit, Address: "   "}, wantErr: ErrNoAddress},
		{name: "backup without token", req: Request{Action: models.ActionBackup, Address: testAddress, Directory: src}, wantErr: ErrNoToken},
		{name: "restore without directory", req: Request{Action: models.ActionRestore, Address: testAddress, Token: testToken}, wantErr: ErrNoDirectory},
		{name: "backup of missing dir", req: Request{Action: models.ActionBackup, Address: testAddress, Token: testToken, Directory: filepath.Join(src, "missing")}, wantErr: ErrNoSuchDir},
		{name: "backup of a file", req: Request{Action: models.ActionBackup, Address: testAddress, Token: testToken, Directory: file}, wantErr: ErrNotADirectory},
		{name: "unknown action", req: Request{Action: "sync", Address: testAddress}, wantErr: ErrUnknownAction},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			env := newTestEnv(t, ctrl, mock.NewMockArchiver(ctrl), mock.NewMockCipher(ctrl))

			out := env.svc.Run(context.Background(), tt.req, nil)

			assert.Equal(t, models.FailureInputInvalid, out.Kind)
			assert.ErrorIs(t, out.Err, tt.wantErr)
			assert.Empty(t, env.dialed)
		})
	}
}

func TestBackup_ExpandsEnvironmentInDirectory(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	arch := mock.NewMockArchiver(ctrl)
	env := newTestEnv(t, ctrl, arch, crypto.NewLegacyCipher())
	src := makeSource(t)
	t.Setenv("GDB_TEST_ROOT", filepath.Dir(src))

	env.adapter.EXPECT().Ping(gomock.Any()).Return(nil)
	arch.EXPECT().
		Pack(gomock.Any(), src, gomock.Any(), gomock.Any()).
		Return(fmt.Errorf("%w: stop here", archiver.ErrArchiveFailed))

	out := env.svc.Backup(context.Background(), Request{
		Address:   " " + testAddress + " ",
		Token:     testToken,
		Directory: filepath.Join("$GDB_TEST_ROOT", "docs"),
	}, nil)

	assert.Equal(t, models.FailureArchive, out.Kind)
	assert.Equal(t, []string{testAddress}, env.dialed)
}

func TestInitIdentity(t *testing.T) {
	t.Run("issues token", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		env := newTestEnv(t, ctrl, mock.NewMockArchiver(ctrl), mock.NewMockCipher(ctrl))
		env.adapter.EXPECT().Ping(gomock.Any()).Return(nil)
		env.adapter.EXPECT().InitToken(gomock.Any()).Return("e3b0c442-98fc-4c14-9afb-f4c8996fb924", nil)

		rec := &recorder{}
		out := env.svc.InitIdentity(context.Background(), Request{Address: testAddress}, rec.observe)

		require.True(t, out.OK())
		assert.Equal(t, "e3b0c442-98fc-4c14-9afb-f4c8996fb924", out.Token)
		assert.Equal(t, []models.SessionState{models.StateChecking, models.StateIssuing, models.StateDone}, rec.states())
	})

	t.Run("server refuses", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		env := newTestEnv(t, ctrl, mock.NewMockArchiver(ctrl), mock.NewMockCipher(ctrl))
		env.adapter.EXPECT().Ping(gomock.Any()).Return(nil)
		env.adapter.EXPECT().InitToken(gomock.Any()).Return("", &adapter.RejectedError{StatusCode: 500, Body: "oops"})

		out := env.svc.InitIdentity(context.Background(), Request{Address: testAddress}, nil)

		assert.Equal(t, models.FailureTransferRejected, out.Kind)
		assert.Empty(t, out.Token)
	})
}

func TestStart_StreamsEventsAndCloses(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	env := newTestEnv(t, ctrl, mock.NewMockArchiver(ctrl), mock.NewMockCipher(ctrl))
	env.adapter.EXPECT().Ping(gomock.Any()).Return(nil)

	var events []models.SessionEvent
	for ev := range env.svc.Start(context.Background(), Request{Action: models.ActionPing, Address: testAddress}) {
		events = append(events, ev)
	}

	require.Len(t, events, 2)
	assert.Equal(t, models.StateChecking, events[0].State)
	assert.Nil(t, events[0].Outcome)
	assert.Equal(t, models.StateDone, events[1].State)
	require.NotNil(t, events[1].Outcome)
	assert.True(t, events[1].Outcome.OK())
}

func TestSessions_InvalidAddressFromFactory(t *testing.T) {
	svc := NewBackupService(BackupDeps{
		NewAdapter: func(string) (adapter.ServerAdapter, error) {
			return nil, fmt.Errorf("%w: bad port", adapter.ErrInvalidAddress)
		},
	}, logger.Nop())

	out := svc.CheckServer(context.Background(), Request{Address: "host:99999"}, nil)

	assert.Equal(t, models.FailureInputInvalid, out.Kind)
}
