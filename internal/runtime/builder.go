package runtime

import (
	"context"
	"fmt"
	"time"

	"engined/internal/loader"
	"engined/pkg/types"
)

// ToolCallbackWithTool pairs a tool callback with the Tool definition that
// is auto-advertised to the model while the callback is registered.
type ToolCallbackWithTool struct {
	Callback types.ToolCallback
	Tool     types.Tool
}

// Builder wires a materialized pipeline and a scheduler policy into a
// running engine. All registration methods are pure: they mutate the
// builder's registries and have no side effect until Build.
type Builder struct {
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
}

// NewBuilder starts runtime construction. searchEmbedModel enables the
// built-in web search with the given embedding model; empty disables it.
func NewBuilder(pipeline loader.Pipeline, sched SchedulerConfig, throughputLogging bool, searchEmbedModel string) *Builder {
	return &Builder{
		pipeline:          pipeline,
		sched:             sched,
		throughputLogging: throughputLogging,
		searchEmbedModel:  searchEmbedModel,
		toolCallbacks:     make(map[string]types.ToolCallback),
		toolsWithDefs:     make(map[string]ToolCallbackWithTool),
	}
}

// WithSearchCallback overrides the built-in web-search function.
func (b *Builder) WithSearchCallback(cb types.SearchCallback) *Builder {
	b.searchCallback = cb
	return b
}

// WithToolCallback registers a callback for a specific tool name.
func (b *Builder) WithToolCallback(name string, cb types.ToolCallback) *Builder {
	b.toolCallbacks[name] = cb
	return b
}

// WithToolCallbackAndTool registers a callback together with a Tool
// definition that is advertised automatically. The definition registry is
// distinct from the plain-callback registry; the same name may exist in
// both.
func (b *Builder) WithToolCallbackAndTool(name string, cb types.ToolCallback, tool types.Tool) *Builder {
	b.toolsWithDefs[name] = ToolCallbackWithTool{Callback: cb, Tool: tool}
	return b
}

// WithMCPClient records the external tool-server configuration.
func (b *Builder) WithMCPClient(cfg types.MCPClientConfig) *Builder {
	b.mcpConfig = &cfg
	return b
}

// WithNoKVCache disables the KV cache, trading speed for memory.
func (b *Builder) WithNoKVCache(noKV bool) *Builder {
	b.noKVCache = noKV
	return b
}

// WithNoPrefixCache disables the prefix cacher.
func (b *Builder) WithNoPrefixCache(disable bool) *Builder {
	b.noPrefixCache = disable
	return b
}

// WithPrefixCacheN sets how many sequences the prefix cacher retains.
func (b *Builder) WithPrefixCacheN(n int) *Builder {
	b.prefixCacheN = n
	return b
}

// Build finalizes the runtime. This is the asynchronous completion point of
// assembly: the scheduler is provisioned before the handle is returned.
func (b *Builder) Build(ctx context.Context) (*Engine, error) {
	start := time.Now()
	if b.pipeline == nil {
		buildsTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("runtime builder: nil pipeline")
	}
	if b.sched.MaxNumSeqs() == 0 {
		buildsTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("runtime builder: scheduler allows zero sequences")
	}
	if err := ctx.Err(); err != nil {
		buildsTotal.WithLabelValues("error").Inc()
		return nil, err
	}
	e := &Engine{
		pipeline:          b.pipeline,
		sched:             b.sched,
		throughputLogging: b.throughputLogging,
		searchEmbedModel:  b.searchEmbedModel,
		searchCallback:    b.searchCallback,
		toolCallbacks:     b.toolCallbacks,
		toolsWithDefs:     b.toolsWithDefs,
		mcpConfig:         b.mcpConfig,
		noKVCache:         b.noKVCache,
		noPrefixCache:     b.noPrefixCache,
		prefixCacheN:      b.prefixCacheN,
		seqSlots:          make(chan struct{}, int(b.sched.MaxNumSeqs())),
		startTime:         start,
	}
	buildsTotal.WithLabelValues("ok").Inc()
	buildDuration.Observe(time.Since(start).Seconds())
	activeEngines.Inc()
	return e, nil
}
