// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package server runs the reference backup server's HTTP listener.
//
// It handles startup, signal handling and graceful shutdown.
package server
