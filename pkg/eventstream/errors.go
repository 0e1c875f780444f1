package eventstream

import "errors"

// ErrNilTaskEvent indicates a nil task event payload was provided to a publisher.
var ErrNilTaskEvent = errors.New("nil task event")
