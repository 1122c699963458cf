package resource

import "errors"

// Error kinds surfaced by resource reads. Every surfaced error wraps one of
// these sentinels along with the resource name and the attempted path or URL,
// so callers can branch with errors.Is and operators can diagnose from the
// message alone.
//
// Parse failures additionally wrap the codec package's sentinels
// (codec.ErrMalformed, codec.ErrUnsupportedFormat), so either taxonomy works
// with errors.Is.
var (
	// ErrNotFound reports that the local path or remote resource is absent.
	ErrNotFound = errors.New("resource: not found")
	// ErrTransport reports a network-level fetch failure.
	ErrTransport = errors.New("resource: transport failure")
	// ErrIO reports a local read or snapshot write failure.
	ErrIO = errors.New("resource: io failure")
	// ErrParse reports that fetched bytes did not conform to the declared
	// format.
	ErrParse = errors.New("resource: parse failure")
)
