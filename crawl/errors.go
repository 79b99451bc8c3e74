package crawl

import "errors"

// ErrFetch wraps any network, parse or status failure while retrieving a
// page. Callers match it with errors.Is.
var ErrFetch = errors.New("page fetch failed")
