// Package server runs the control API of the sync daemon.
//
// The HTTP server is a long-lived worker: it serves until its context is
// cancelled and then shuts down gracefully, letting in-flight requests
// finish within a bounded grace period.
package server
