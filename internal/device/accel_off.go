//go:build !cuda && !metal

package device

// CPU-only build: no accelerator device, no paged-attention support.
var (
	accelAvailable = false
	accelDevice    = CPU()
	pagedAttnBuilt = false
)
