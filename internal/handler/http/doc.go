// Package http implements the control API of the sync daemon.
//
// It exposes route wiring, request handlers and middleware. Request tracing,
// access logging and the optional bearer-token check run here before a call
// reaches the sync service.
package http
