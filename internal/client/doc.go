// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package client implements the client process lifecycle.
//
// It runs the startup housekeeping jobs and then either one headless session
// (when an action is configured or stdin is not a terminal) or the
// interactive TUI.
package client
