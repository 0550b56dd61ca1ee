//go:build cuda

package device

// CUDA build: device 0 is the anchor for automatic mapping.
var (
	accelAvailable = true
	accelDevice    = CUDA(0)
	pagedAttnBuilt = true
)
