// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import "errors"

// Sentinel errors used by the authentication middleware when parsing the
// "Authorization" HTTP header.
var (
	// ErrEmptyAuthorizationHeader is returned when the request carries no
	// "Authorization" header at all.
	ErrEmptyAuthorizationHeader = errors.New("empty `Authorization` header")

	// ErrInvalidAPIToken is returned when the bearer token does not match the
	// configured API token.
	ErrInvalidAPIToken = errors.New("invalid api token")
)

// ErrMethodNotAllowed is reported when a route exists but not for the
// request method.
var ErrMethodNotAllowed = errors.New("method not allowed")

var errInvalidJSON = errors.New("invalid JSON was passed")
