// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package workers runs the client's background housekeeping jobs.
//
// It defines the Worker interface and a Workers aggregate that runs several
// workers in a unified way.
package workers

// Worker is implemented by every background job.
//
// Run is expected to block for the duration of the job.
type Worker interface {
	Run()
}
