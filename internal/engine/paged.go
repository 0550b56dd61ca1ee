package engine

import "engined/internal/loader"

// PagedAttentionMetaBuilder accumulates paged-attention cache parameters.
// Defaults: engine-chosen block size, 64 MB of host memory, a device budget
// sized for a 4096-token context, and an automatically selected cache
// element type.
type PagedAttentionMetaBuilder struct {
	blockSize int
	memCPUMB  int
	memGPU    loader.MemoryGPUConfig
	cacheType loader.PagedCacheType
}

func NewPagedAttentionMetaBuilder() *PagedAttentionMetaBuilder {
	return &PagedAttentionMetaBuilder{
		memCPUMB:  64,
		memGPU:    loader.MemoryGPUContextSize(4096),
		cacheType: loader.PagedCacheAuto,
	}
}

// WithBlockSize sets the KV block granularity in tokens.
func (b *PagedAttentionMetaBuilder) WithBlockSize(blockSize int) *PagedAttentionMetaBuilder {
	b.blockSize = blockSize
	return b
}

// WithGPUMemory sets the device memory budget.
func (b *PagedAttentionMetaBuilder) WithGPUMemory(memGPU loader.MemoryGPUConfig) *PagedAttentionMetaBuilder {
	b.memGPU = memGPU
	return b
}

// WithPagedCacheType sets the cache element type.
func (b *PagedAttentionMetaBuilder) WithPagedCacheType(t loader.PagedCacheType) *PagedAttentionMetaBuilder {
	b.cacheType = t
	return b
}

// Build converts the accumulated values into a validated paged-attention
// configuration. This is the one fallible step before assembly.
func (b *PagedAttentionMetaBuilder) Build() (loader.PagedAttentionConfig, error) {
	return loader.NewPagedAttentionConfig(b.blockSize, b.memCPUMB, b.memGPU, b.cacheType)
}
