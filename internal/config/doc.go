// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package config loads, merges and validates settings for the backup client
// and the reference server.
//
// Values come from three sources; later sources override earlier non-zero
// fields:
//  1. Environment variables
//  2. Command-line flags
//  3. JSON config file
//
// [GetClientConfig] and [GetServerConfig] return views with defaults applied.
package config
