package device

// pagedAttnProbe reports whether the paged-attention cache kernels are
// available in this build. Swappable so the capability-dependent scheduler
// decision can be exercised without accelerator hardware.
var pagedAttnProbe = func() bool { return pagedAttnBuilt }

// PagedAttnSupported reports whether paged attention can be used at all.
func PagedAttnSupported() bool { return pagedAttnProbe() }

// SetPagedAttnProbe replaces the capability probe and returns the previous
// one so callers can restore it.
func SetPagedAttnProbe(f func() bool) func() bool {
	prev := pagedAttnProbe
	pagedAttnProbe = f
	return prev
}
