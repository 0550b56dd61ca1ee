package loader

// unknownArchitectureError signals that the loader type could not be
// determined, before any model I/O is attempted.
type unknownArchitectureError struct{ arch string }

func (e unknownArchitectureError) Error() string { return "unknown architecture: " + e.arch }

// ErrUnknownArchitecture constructs an unknownArchitectureError.
func ErrUnknownArchitecture(arch string) error { return unknownArchitectureError{arch: arch} }

// IsUnknownArchitecture reports whether err indicates an undeterminable
// loader type.
func IsUnknownArchitecture(err error) bool {
	_, ok := err.(unknownArchitectureError)
	return ok
}

// artifactNotFoundError signals that no local artifact matched the model id.
type artifactNotFoundError struct{ id string }

func (e artifactNotFoundError) Error() string { return "model artifact not found: " + e.id }

// ErrArtifactNotFound constructs an artifactNotFoundError.
func ErrArtifactNotFound(id string) error { return artifactNotFoundError{id: id} }

// IsArtifactNotFound reports whether err indicates a missing model artifact.
func IsArtifactNotFound(err error) bool {
	_, ok := err.(artifactNotFoundError)
	return ok
}

// dependencyUnavailableError signals a backend compiled out of this build.
type dependencyUnavailableError struct{ msg string }

func (e dependencyUnavailableError) Error() string { return e.msg }

// ErrDependencyUnavailable constructs a dependencyUnavailableError.
func ErrDependencyUnavailable(msg string) error { return dependencyUnavailableError{msg: msg} }

// IsDependencyUnavailable reports whether err indicates a missing backend.
func IsDependencyUnavailable(err error) bool {
	_, ok := err.(dependencyUnavailableError)
	return ok
}
