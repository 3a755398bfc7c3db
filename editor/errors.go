package editor

import "errors"

// ErrNoParent is returned by New when no mount target is supplied.
var ErrNoParent = errors.New("editor: no parent to mount into")
