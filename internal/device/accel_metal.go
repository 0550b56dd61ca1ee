//go:build metal && !cuda

package device

// Metal build: paged attention is implemented for the Metal backend.
var (
	accelAvailable = true
	accelDevice    = Metal(0)
	pagedAttnBuilt = true
)
