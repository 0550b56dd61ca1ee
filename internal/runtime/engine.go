package runtime

import (
	"sync"
	"time"

	"engined/internal/loader"
	"engined/pkg/types"
)

// Engine is the finalized runtime handle. It owns the pipeline and the
// scheduler slots; registries are frozen at Build time.
type Engine struct {
	pipeline          loader.Pipeline
	sched             SchedulerConfig
	throughputLogging bool
	searchEmbedModel  string

	searchCallback types.SearchCallback
	toolCallbacks  map[string]types.ToolCallback
	toolsWithDefs  map[string]ToolCallbackWithTool
	mcpConfig      *types.MCPClientConfig

	noKVCache     bool
	noPrefixCache bool
	prefixCacheN  int

	// seqSlots bounds concurrently running sequences per the scheduler
	// policy.
	seqSlots  chan struct{}
	startTime time.Time

	closeOnce sync.Once
	closeErr  error
}

// SchedulerConfig returns the policy the engine was provisioned with.
func (e *Engine) SchedulerConfig() SchedulerConfig { return e.sched }

// ModelID returns the pipeline's model identifier.
func (e *Engine) ModelID() string { return e.pipeline.ModelID() }

// Metadata exposes the pipeline metadata.
func (e *Engine) Metadata() loader.Metadata { return e.pipeline.Metadata() }

// ToolCallback looks up a plain tool callback by name.
func (e *Engine) ToolCallback(name string) (types.ToolCallback, bool) {
	cb, ok := e.toolCallbacks[name]
	return cb, ok
}

// ToolWithDefinition looks up a callback+definition pair by name.
func (e *Engine) ToolWithDefinition(name string) (ToolCallbackWithTool, bool) {
	t, ok := e.toolsWithDefs[name]
	return t, ok
}

// AdvertisedTools returns every Tool definition registered for automatic
// advertisement.
func (e *Engine) AdvertisedTools() []types.Tool {
	out := make([]types.Tool, 0, len(e.toolsWithDefs))
	for _, t := range e.toolsWithDefs {
		out = append(out, t.Tool)
	}
	return out
}

// SearchCallback returns the search override, if any.
func (e *Engine) SearchCallback() (types.SearchCallback, bool) {
	return e.searchCallback, e.searchCallback != nil
}

// SearchEnabled reports whether web search was enabled at build time.
func (e *Engine) SearchEnabled() bool { return e.searchEmbedModel != "" }

// SearchEmbedModel returns the embedding model selector for web search.
func (e *Engine) SearchEmbedModel() string { return e.searchEmbedModel }

// MCPConfig returns the external tool-server configuration, if any.
func (e *Engine) MCPConfig() (types.MCPClientConfig, bool) {
	if e.mcpConfig == nil {
		return types.MCPClientConfig{}, false
	}
	return *e.mcpConfig, true
}

// KVCacheDisabled reports whether the KV cache was disabled.
func (e *Engine) KVCacheDisabled() bool { return e.noKVCache }

// PrefixCacheN returns the prefix-cache retention count; ok is false when
// the prefix cacher is disabled.
func (e *Engine) PrefixCacheN() (int, bool) {
	if e.noPrefixCache {
		return 0, false
	}
	return e.prefixCacheN, true
}

// ThroughputLogging reports whether throughput counters are exported.
func (e *Engine) ThroughputLogging() bool { return e.throughputLogging }

// Uptime is the time since the engine handle was finalized.
func (e *Engine) Uptime() time.Duration { return time.Since(e.startTime) }

// AcquireSeq claims a scheduler slot, blocking while maxNumSeqs sequences
// are already running. The returned release must be called exactly once.
func (e *Engine) AcquireSeq() (release func()) {
	e.seqSlots <- struct{}{}
	var once sync.Once
	return func() { once.Do(func() { <-e.seqSlots }) }
}

// Close releases the pipeline. Idempotent.
func (e *Engine) Close() error {
	e.closeOnce.Do(func() {
		e.closeErr = e.pipeline.Close()
		activeEngines.Dec()
	})
	return e.closeErr
}
