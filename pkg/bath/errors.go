package bath

import "errors"

// ErrInvalidParam is returned when a bath is constructed from physical
// parameters outside their validity domain (non-positive temperature,
// cutoff, coupling or truncation order) or from malformed expansion lists.
var ErrInvalidParam = errors.New("invalid bath parameter")
