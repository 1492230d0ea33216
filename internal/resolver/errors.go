package resolver

import "errors"

// ErrUnknownResolver is returned by [FromName] for an unrecognized name.
var ErrUnknownResolver = errors.New("unknown conflict resolver")
