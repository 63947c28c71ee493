// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/MKhiriev/go-dir-backup/internal/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiskArchiveStorage_SaveOpen(t *testing.T) {
	root := t.TempDir()
	st, err := NewDiskArchiveStorage(root, logger.Nop())
	require.NoError(t, err)
	ctx := context.Background()

	_, _, err = st.Open(ctx, testToken)
	assert.ErrorIs(t, err, ErrArchiveNotFound)

	n, err := st.Save(ctx, testToken, bytes.NewReader([]byte("first blob")))
	require.NoError(t, err)
	assert.Equal(t, int64(10), n)
	assert.FileExists(t, filepath.Join(root, testToken, ArchiveFileName))

	n, err = st.Save(ctx, testToken, bytes.NewReader([]byte("second")))
	require.NoError(t, err)
	assert.Equal(t, int64(6), n)

	rc, size, err := st.Open(ctx, testToken)
	require.NoError(t, err)
	defer rc.Close()
	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, "second", string(data))
	assert.Equal(t, int64(6), size)
}

type failingReader struct{ after []byte }

func (f *failingReader) Read(p []byte) (int, error) {
	if len(f.after) > 0 {
		n := copy(p, f.after)
		f.after = f.after[n:]
		return n, nil
	}
	return 0, errors.New("connection reset")
}

func TestDiskArchiveStorage_BrokenUploadKeepsPrevious(t *testing.T) {
	root := t.TempDir()
	st, err := NewDiskArchiveStorage(root, logger.Nop())
	require.NoError(t, err)
	ctx := context.Background()

	_, err = st.Save(ctx, testToken, bytes.NewReader([]byte("good")))
	require.NoError(t, err)

	_, err = st.Save(ctx, testToken, &failingReader{after: []byte("partial")})
	require.Error(t, err)

	data, err := os.ReadFile(filepath.Join(root, testToken, ArchiveFileName))
	require.NoError(t, err)
	assert.Equal(t, "good", string(data))

	entries, err := os.ReadDir(filepath.Join(root, testToken))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp file must be removed")
}

func TestDiskArchiveStorage_RejectsPathTokens(t *testing.T) {
	st, err := NewDiskArchiveStorage(t.TempDir(), logger.Nop())
	require.NoError(t, err)

	for _, token := range []string{"", ".", "..", "../etc", `a\b`} {
		_, err := st.Save(context.Background(), token, bytes.NewReader(nil))
		assert.ErrorIs(t, err, ErrInvalidKey, token)

		_, _, err = st.Open(context.Background(), token)
		assert.ErrorIs(t, err, ErrInvalidKey, token)
	}
}

type fakeS3 struct {
	objects map[string][]byte
	putErr  error
}

func (f *fakeS3) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	if f.putErr != nil {
		return nil, f.putErr
	}
	data, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}
	if aws.ToInt64(in.ContentLength) != int64(len(data)) {
		return nil, errors.New("content length mismatch")
	}
	f.objects[aws.ToString(in.Bucket)+"/"+aws.ToString(in.Key)] = data
	return &s3.PutObjectOutput{}, nil
}

func (f *fakeS3) GetObject(_ context.Context, in *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	data, ok := f.objects[aws.ToString(in.Bucket)+"/"+aws.ToString(in.Key)]
	if !ok {
		return nil, &types.NoSuchKey{}
	}
	return &s3.GetObjectOutput{
		Body:          io.NopCloser(bytes.NewReader(data)),
		ContentLength: aws.Int64(int64(len(data))),
	}, nil
}

func TestS3ArchiveStorage_SaveOpen(t *testing.T) {
	client := &fakeS3{objects: map[string][]byte{}}
	spool := filepath.Join(t.TempDir(), "spool")
	st, err := newS3ArchiveStorage(client, "backups", spool, logger.Nop())
	require.NoError(t, err)
	ctx := context.Background()

	_, _, err = st.Open(ctx, testToken)
	assert.ErrorIs(t, err, ErrArchiveNotFound)

	n, err := st.Save(ctx, testToken, bytes.NewReader([]byte("encrypted")))
	require.NoError(t, err)
	assert.Equal(t, int64(9), n)
	assert.Contains(t, client.objects, "backups/"+testToken+"/"+ArchiveFileName)

	rc, size, err := st.Open(ctx, testToken)
	require.NoError(t, err)
	defer rc.Close()
	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, "encrypted", string(data))
	assert.Equal(t, int64(9), size)

	entries, err := os.ReadDir(spool)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestS3ArchiveStorage_PutFailure(t *testing.T) {
	client := &fakeS3{objects: map[string][]byte{}, putErr: errors.New("access denied")}
	st, err := newS3ArchiveStorage(client, "backups", t.TempDir(), logger.Nop())
	require.NoError(t, err)

	_, err = st.Save(context.Background(), testToken, bytes.NewReader([]byte("x")))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "access denied")

	_, err = st.Save(context.Background(), "a/b", bytes.NewReader(nil))
	assert.ErrorIs(t, err, ErrInvalidKey)
}
