package engine

import (
	"fmt"
	"math"

	"engined/internal/device"
	"engined/internal/loader"
	"engined/internal/runtime"
)

// resolveDevice picks the anchor device: an explicit device wins, otherwise
// the best device for this build subject to the CPU-forced flag.
func (b *TextModelBuilder) resolveDevice() device.Device {
	if b.deviceSet {
		return b.device
	}
	return device.Best(b.forceCPU)
}

// resolveDeviceMap defaults an unset mapping to automatic mapping with
// text-workload capacity parameters.
func (b *TextModelBuilder) resolveDeviceMap() device.MapSetting {
	if b.deviceMapping.IsSet() {
		return b.deviceMapping
	}
	return device.MapAuto(device.DefaultTextParams())
}

// checkCalibrationSources rejects supplying both an importance matrix and a
// calibration corpus; at most one quantization-calibration input may be set.
func (b *TextModelBuilder) checkCalibrationSources() error {
	if b.imatrix != "" && b.calibration != "" {
		return ErrConfig("imatrix and calibration file are mutually exclusive")
	}
	return nil
}

// resolveScheduler makes the two-stage capability decision: a requested
// paged-attention config is honored only when the materialized pipeline
// reports a cache layout. Every other case gets the fixed-capacity default
// scheduler.
func resolveScheduler(pagedRequested bool, cache *loader.CacheConfig, maxNumSeqs int) (runtime.SchedulerConfig, error) {
	n, err := seqLimit(maxNumSeqs)
	if err != nil {
		return runtime.SchedulerConfig{}, err
	}
	if pagedRequested && cache != nil {
		return runtime.PagedAttentionMeta(n, *cache), nil
	}
	return runtime.DefaultScheduler(n), nil
}

// seqLimit converts the configured max sequence count to the scheduler's
// integer width.
func seqLimit(n int) (uint32, error) {
	if n <= 0 || int64(n) > math.MaxUint32 {
		return 0, fmt.Errorf("max_num_seqs out of range: %d", n)
	}
	return uint32(n), nil
}
