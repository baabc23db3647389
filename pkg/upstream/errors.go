package upstream

import "errors"

var (
	// ErrUpstream covers transport failures and non-success responses from
	// the timetable or live-position provider
	ErrUpstream = errors.New("upstream provider unavailable")

	// ErrMalformedData covers success responses missing the expected nested
	// payload fields
	ErrMalformedData = errors.New("malformed upstream data")
)
