// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package utils holds small helpers shared by the client and the server:
// the resty wrapper, identifier generators and progress-reporting streams.
package utils

import (
	"io"

	"github.com/MKhiriev/go-dir-backup/models"
)

// ProgressReader reads from an underlying reader at most chunk bytes at a
// time and reports the cumulative count after every read.
type ProgressReader struct {
	r      io.Reader
	chunk  int
	done   int64
	total  int64
	report models.ProgressFunc
}

// NewProgressReader wraps r. total may be zero when unknown; report may be nil.
func NewProgressReader(r io.Reader, chunk int, total int64, report models.ProgressFunc) *ProgressReader {
	if chunk <= 0 {
		chunk = 32 * 1024
	}
	return &ProgressReader{r: r, chunk: chunk, total: total, report: report}
}

// Read implements io.Reader.
func (p *ProgressReader) Read(b []byte) (int, error) {
	if len(b) > p.chunk {
		b = b[:p.chunk]
	}

	n, err := p.r.Read(b)
	if n > 0 {
		p.done += int64(n)
		if p.report != nil {
			p.report(p.done, p.total)
		}
	}

	return n, err
}

// Done returns the number of bytes read so far.
func (p *ProgressReader) Done() int64 {
	return p.done
}

// ProgressWriter counts bytes written through it and reports after every write.
type ProgressWriter struct {
	w      io.Writer
	done   int64
	total  int64
	report models.ProgressFunc
}

// NewProgressWriter wraps w. total may be zero when unknown; report may be nil.
func NewProgressWriter(w io.Writer, total int64, report models.ProgressFunc) *ProgressWriter {
	return &ProgressWriter{w: w, total: total, report: report}
}

// Write implements io.Writer.
func (p *ProgressWriter) Write(b []byte) (int, error) {
	n, err := p.w.Write(b)
	if n > 0 {
		p.done += int64(n)
		if p.report != nil {
			p.report(p.done, p.total)
		}
	}

	return n, err
}

// CopyChunks copies src to dst through a buffer of chunk bytes. Unlike
// io.CopyBuffer it never hands the copy to ReaderFrom / WriterTo, so wrapping
// writers see every chunk.
func CopyChunks(dst io.Writer, src io.Reader, chunk int) (int64, error) {
	if chunk <= 0 {
		chunk = 32 * 1024
	}

	buf := make([]byte, chunk)
	var written int64
	for {
		nr, rerr := src.Read(buf)
		if nr > 0 {
			nw, werr := dst.Write(buf[:nr])
			written += int64(nw)
			if werr != nil {
				return written, werr
			}
			if nw != nr {
				return written, io.ErrShortWrite
			}
		}
		if rerr == io.EOF {
			return written, nil
		}
		if rerr != nil {
			return written, rerr
		}
	}
}
