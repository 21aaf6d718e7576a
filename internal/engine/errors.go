package engine

import "errors"

// ErrParameterMissing is reported when an intent needs a filename and the
// utterance did not contain one. It is turned into a guidance reply and
// never returned to callers.
var ErrParameterMissing = errors.New("parameter missing")
