package catalog

import "errors"

// ErrUnavailable reports that the catalog could not be queried: the request failed in transit,
// the catalog answered with an unexpected status, or the payload could not be decoded.
// A missing record is not an error.
var ErrUnavailable = errors.New("catalog unavailable")
