package loader

import "fmt"

// DefaultBlockSize is used when a paged-attention config leaves the block
// size unset.
const DefaultBlockSize = 32

// PagedCacheType selects the element type of the paged KV cache.
type PagedCacheType string

const (
	// PagedCacheAuto matches the cache type to the model activation dtype.
	PagedCacheAuto   PagedCacheType = "auto"
	PagedCacheF8E4M3 PagedCacheType = "f8e4m3"
)

// MemoryGPUConfig expresses the device-memory budget for the paged KV cache,
// either as an absolute MB amount or as "enough for this many context
// tokens". Exactly one of the two is set.
type MemoryGPUConfig struct {
	contextSize int
	amountMB    int
}

// MemoryGPUContextSize budgets the cache for a token context of n.
func MemoryGPUContextSize(n int) MemoryGPUConfig { return MemoryGPUConfig{contextSize: n} }

// MemoryGPUAmountMB budgets the cache with an absolute MB amount.
func MemoryGPUAmountMB(mb int) MemoryGPUConfig { return MemoryGPUConfig{amountMB: mb} }

func (m MemoryGPUConfig) ContextSize() (int, bool) { return m.contextSize, m.contextSize > 0 }

func (m MemoryGPUConfig) AmountMB() (int, bool) { return m.amountMB, m.amountMB > 0 }

func (m MemoryGPUConfig) isZero() bool { return m.contextSize <= 0 && m.amountMB <= 0 }

// PagedAttentionConfig is the validated paged-attention cache request handed
// to the loader. Construct via NewPagedAttentionConfig.
type PagedAttentionConfig struct {
	// BlockSize is the KV block granularity in tokens; 0 means
	// DefaultBlockSize.
	BlockSize int
	// MemCPUMB is the host (swap-out) memory budget in MB.
	MemCPUMB int
	// MemGPU is the device memory budget.
	MemGPU MemoryGPUConfig
	// CacheType is the cache element type.
	CacheType PagedCacheType
}

// NewPagedAttentionConfig validates the parameters. A set block size must be
// a power of two; the device budget must be non-empty.
func NewPagedAttentionConfig(blockSize, memCPUMB int, memGPU MemoryGPUConfig, cacheType PagedCacheType) (PagedAttentionConfig, error) {
	if blockSize < 0 || (blockSize > 0 && blockSize&(blockSize-1) != 0) {
		return PagedAttentionConfig{}, fmt.Errorf("paged attention block size must be a power of two, got %d", blockSize)
	}
	if memCPUMB <= 0 {
		return PagedAttentionConfig{}, fmt.Errorf("paged attention cpu memory must be positive, got %d", memCPUMB)
	}
	if memGPU.isZero() {
		return PagedAttentionConfig{}, fmt.Errorf("paged attention gpu memory budget is empty")
	}
	if cacheType == "" {
		cacheType = PagedCacheAuto
	}
	return PagedAttentionConfig{BlockSize: blockSize, MemCPUMB: memCPUMB, MemGPU: memGPU, CacheType: cacheType}, nil
}

// CacheConfig is the concrete paged cache layout a pipeline reports after
// materialization. Its presence in pipeline metadata confirms that paged
// attention is active.
type CacheConfig struct {
	BlockSize    int
	NumGPUBlocks int
	CacheType    PagedCacheType
}
