package voicespec

import "fmt"

// ParseError reports a malformed voice spec. It is returned before any
// provider call is made.
type ParseError struct {
	Spec   string // input as given by the caller
	Key    string // offending setting key, empty for structural errors
	Value  string
	Reason string
	Err    error
}

func (e *ParseError) Error() string {
	msg := fmt.Sprintf("voicespec: parse %q: %s", e.Spec, e.Reason)
	if e.Key != "" {
		msg = fmt.Sprintf("voicespec: parse %q: %s: %s=%q", e.Spec, e.Reason, e.Key, e.Value)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
