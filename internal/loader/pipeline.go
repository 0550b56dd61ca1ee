package loader

import (
	"context"

	"engined/internal/device"
)

// LoadParams carries the per-load arguments into Loader.Load.
type LoadParams struct {
	// Revision of the remote model; empty means the default branch.
	Revision string
	// Token locates the hub credential.
	Token TokenSource
	// DType is the numeric precision to load in.
	DType DType
	// Device is the resolved anchor device.
	Device device.Device
	// Quiet suppresses per-load progress output.
	Quiet bool
	// DeviceMap is the resolved device-mapping strategy.
	DeviceMap device.MapSetting
	// ISQ applies in-place quantization of this type; empty disables ISQ.
	ISQ ISQType
	// PagedAttn requests a paged KV cache; nil loads without one.
	PagedAttn *PagedAttentionConfig
}

// Metadata describes a materialized pipeline.
type Metadata struct {
	ModelID   string
	Arch      ArchKind
	MaxSeqLen int
	// CacheConfig is non-nil exactly when a paged KV cache was allocated.
	CacheConfig *CacheConfig
}

// Pipeline is a materialized, runnable model.
type Pipeline interface {
	Metadata() Metadata
	ModelID() string
	Close() error
}

// Loader materializes a pipeline from local or remote artifacts. Load
// performs disk and network I/O and is the expensive step of assembly.
type Loader interface {
	Load(ctx context.Context, params LoadParams) (Pipeline, error)
}
