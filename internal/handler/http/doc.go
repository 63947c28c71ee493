// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package http implements the HTTP transport of the reference backup server.
//
// Routes:
//
//	GET  /ping              -> "PONG!!!"
//	GET  /init-uuid         -> a newly issued token
//	POST /upload?uuid=...   -> stores the multipart field "file"
//	GET  /download?uuid=... -> streams the stored archive
//	GET  /metrics           -> Prometheus metrics
//
// Request tracing, access logging, metrics and panic recovery are handled by
// middleware before requests reach the service layer.
package http
