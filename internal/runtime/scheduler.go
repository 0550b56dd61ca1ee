package runtime

import (
	"fmt"

	"engined/internal/loader"
)

// schedulerKind discriminates the two scheduler policies.
type schedulerKind int

const (
	schedulerDefault schedulerKind = iota
	schedulerPaged
)

// SchedulerConfig is the scheduling policy the engine runs with: either the
// fixed-capacity default scheduler or the paged-attention block scheduler.
// Construct via DefaultScheduler or PagedAttentionMeta.
type SchedulerConfig struct {
	kind       schedulerKind
	maxNumSeqs uint32
	cache      loader.CacheConfig
}

// DefaultScheduler is the fixed-capacity policy: at most maxNumSeqs
// sequences run concurrently, each with its own contiguous KV cache.
func DefaultScheduler(maxNumSeqs uint32) SchedulerConfig {
	return SchedulerConfig{kind: schedulerDefault, maxNumSeqs: maxNumSeqs}
}

// PagedAttentionMeta is the block-allocating policy carrying the cache
// layout the pipeline reported after materialization.
func PagedAttentionMeta(maxNumSeqs uint32, cache loader.CacheConfig) SchedulerConfig {
	return SchedulerConfig{kind: schedulerPaged, maxNumSeqs: maxNumSeqs, cache: cache}
}

// IsPaged reports whether the paged-attention policy was selected.
func (s SchedulerConfig) IsPaged() bool { return s.kind == schedulerPaged }

// MaxNumSeqs is the concurrent-sequence limit for either policy.
func (s SchedulerConfig) MaxNumSeqs() uint32 { return s.maxNumSeqs }

// CacheConfig returns the paged cache layout; ok is false for the default
// policy.
func (s SchedulerConfig) CacheConfig() (loader.CacheConfig, bool) {
	return s.cache, s.kind == schedulerPaged
}

func (s SchedulerConfig) String() string {
	if s.IsPaged() {
		return fmt.Sprintf("paged_attention(max_num_seqs=%d, blocks=%d*%d)",
			s.maxNumSeqs, s.cache.NumGPUBlocks, s.cache.BlockSize)
	}
	return fmt.Sprintf("default(max_num_seqs=%d)", s.maxNumSeqs)
}
