package engine

// configError signals an invalid option combination detected before any
// resource is allocated.
type configError struct{ msg string }

func (e configError) Error() string { return "engine config: " + e.msg }

// ErrConfig constructs a configError.
func ErrConfig(msg string) error { return configError{msg: msg} }

// IsConfigError reports whether err is a configuration error (as opposed to
// a loader or materialization failure).
func IsConfigError(err error) bool {
	_, ok := err.(configError)
	return ok
}
