// Package server implements the HTTP server using Echo framework.
//
// Routes: status (public secret presence report), gated API (config view,
// key verification), health probes, metrics, version. The API key gate in
// gate.go wraps the gated routes uniformly and carries no business logic.
package server
