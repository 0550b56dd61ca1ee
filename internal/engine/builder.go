package engine

import (
	"engined/internal/device"
	"engined/internal/loader"
	"engined/pkg/types"
)

// toolEntry pairs a callback with its auto-advertised Tool definition.
type toolEntry struct {
	callback types.ToolCallback
	tool     types.Tool
}

// TextModelBuilder accumulates every loading and runtime option for a text
// model. Setters only record values; illegal combinations are rejected at
// Build. A builder must not be shared across goroutines and is consumed by
// Build.
type TextModelBuilder struct {
	// Loading identity
	modelID       string
	tokenSource   loader.TokenSource
	hfRevision    string
	writeUQFF     string
	fromUQFF      []string
	imatrix       string
	calibration   string
	chatTemplate  string
	jinjaExplicit string
	tokenizerJSON string
	hfCachePath   string

	// Model running
	promptChunkSize int
	topology        *loader.Topology
	organization    loader.ISQOrganization
	loaderType      loader.ArchKind
	dtype           loader.DType
	forceCPU        bool
	isq             loader.ISQType
	deviceSet       bool
	device          device.Device
	deviceMapping   device.MapSetting

	// Serving shape
	pagedAttnCfg      *loader.PagedAttentionConfig
	maxNumSeqs        int
	noKVCache         bool
	prefixCacheN      int
	prefixCacheOff    bool
	withLogging       bool
	throughputLogging bool

	// Extensions
	searchEmbedModel string
	searchCallback   types.SearchCallback
	toolCallbacks    map[string]types.ToolCallback
	toolsWithDefs    map[string]toolEntry
	mcpConfig        *types.MCPClientConfig

	// Test seam: when set, Build skips the loader factory and loads through
	// this loader directly.
	loadWith loader.Loader
}

// NewTextModelBuilder applies the defaults: default ISQ organization, token
// from the credential cache, 32 max sequences, prefix cache holding 16
// sequences, automatic device mapping, web search disabled.
func NewTextModelBuilder(modelID string) *TextModelBuilder {
	return &TextModelBuilder{
		modelID:       modelID,
		tokenSource:   loader.TokenFromCache(),
		organization:  loader.OrgDefault,
		dtype:         loader.DTypeAuto,
		maxNumSeqs:    32,
		prefixCacheN:  16,
		toolCallbacks: make(map[string]types.ToolCallback),
		toolsWithDefs: make(map[string]toolEntry),
	}
}

// WithSearch enables web searching compatible with the OpenAI
// `web_search_options` setting, using the given embedding model.
func (b *TextModelBuilder) WithSearch(embedModel string) *TextModelBuilder {
	b.searchEmbedModel = embedModel
	return b
}

// WithSearchCallback overrides the search function used when web search is
// enabled.
func (b *TextModelBuilder) WithSearchCallback(cb types.SearchCallback) *TextModelBuilder {
	b.searchCallback = cb
	return b
}

// WithToolCallback registers a callback for a specific tool name.
func (b *TextModelBuilder) WithToolCallback(name string, cb types.ToolCallback) *TextModelBuilder {
	b.toolCallbacks[name] = cb
	return b
}

// WithToolCallbackAndTool registers a callback with an associated Tool
// definition that is automatically advertised while tool callbacks are
// active.
func (b *TextModelBuilder) WithToolCallbackAndTool(name string, cb types.ToolCallback, tool types.Tool) *TextModelBuilder {
	b.toolsWithDefs[name] = toolEntry{callback: cb, tool: tool}
	return b
}

// WithMCPClient configures connections to external MCP servers whose tools
// are registered for automatic tool calling.
func (b *TextModelBuilder) WithMCPClient(cfg types.MCPClientConfig) *TextModelBuilder {
	b.mcpConfig = &cfg
	return b
}

// WithThroughputLogging enables runner throughput logging.
func (b *TextModelBuilder) WithThroughputLogging() *TextModelBuilder {
	b.throughputLogging = true
	return b
}

// WithJinjaExplicit sets an explicit .jinja chat template file, overriding
// every other template source.
func (b *TextModelBuilder) WithJinjaExplicit(path string) *TextModelBuilder {
	b.jinjaExplicit = path
	return b
}

// WithPromptChunkSize sets the prompt batch size used during prefill.
func (b *TextModelBuilder) WithPromptChunkSize(n int) *TextModelBuilder {
	b.promptChunkSize = n
	return b
}

// WithTopology sets the per-layer placement/precision override. Where it
// overlaps the ISQ setting, the topology wins.
func (b *TextModelBuilder) WithTopology(t *loader.Topology) *TextModelBuilder {
	b.topology = t
	return b
}

// WithMixtureQExpertsISQ organizes ISQ to quantize mixture-of-experts
// layers only (MoQE).
func (b *TextModelBuilder) WithMixtureQExpertsISQ() *TextModelBuilder {
	b.organization = loader.OrgMoQE
	return b
}

// WithChatTemplate sets a literal chat template or a path (ending in .json)
// to one.
func (b *TextModelBuilder) WithChatTemplate(t string) *TextModelBuilder {
	b.chatTemplate = t
	return b
}

// WithTokenizerJSON sets the path to a discrete tokenizer.json file.
func (b *TextModelBuilder) WithTokenizerJSON(path string) *TextModelBuilder {
	b.tokenizerJSON = path
	return b
}

// WithLoaderType pins the model architecture instead of auto-detecting it.
func (b *TextModelBuilder) WithLoaderType(arch loader.ArchKind) *TextModelBuilder {
	b.loaderType = arch
	return b
}

// WithDType loads the model in the given numeric precision.
func (b *TextModelBuilder) WithDType(dt loader.DType) *TextModelBuilder {
	b.dtype = dt
	return b
}

// WithForceCPU forces the CPU device. Do not combine with paged attention.
func (b *TextModelBuilder) WithForceCPU() *TextModelBuilder {
	b.forceCPU = true
	return b
}

// WithTokenSource sets where the hub credential comes from.
func (b *TextModelBuilder) WithTokenSource(src loader.TokenSource) *TextModelBuilder {
	b.tokenSource = src
	return b
}

// WithHFRevision sets the remote revision to load.
func (b *TextModelBuilder) WithHFRevision(rev string) *TextModelBuilder {
	b.hfRevision = rev
	return b
}

// WithISQ applies in-place quantization of the given type. Where the
// topology overlaps, the topology wins.
func (b *TextModelBuilder) WithISQ(t loader.ISQType) *TextModelBuilder {
	b.isq = t
	return b
}

// WithIMatrix uses a precomputed importance matrix during ISQ. Incompatible
// with WithCalibrationFile; the combination fails at Build.
func (b *TextModelBuilder) WithIMatrix(path string) *TextModelBuilder {
	b.imatrix = path
	return b
}

// WithCalibrationFile collects an importance matrix from this calibration
// corpus during ISQ. Incompatible with WithIMatrix; the combination fails
// at Build.
func (b *TextModelBuilder) WithCalibrationFile(path string) *TextModelBuilder {
	b.calibration = path
	return b
}

// WithPagedAttn enables paged attention with the configuration produced by
// cfg (typically PagedAttentionMetaBuilder.Build). When paged attention is
// not supported in this build, the request is dropped and the default
// scheduler is used; this is deliberate and not an error.
func (b *TextModelBuilder) WithPagedAttn(cfg func() (loader.PagedAttentionConfig, error)) (*TextModelBuilder, error) {
	if !device.PagedAttnSupported() {
		b.pagedAttnCfg = nil
		return b, nil
	}
	c, err := cfg()
	if err != nil {
		return nil, err
	}
	b.pagedAttnCfg = &c
	return b, nil
}

// WithMaxNumSeqs sets the maximum number of sequences that run at once.
func (b *TextModelBuilder) WithMaxNumSeqs(n int) *TextModelBuilder {
	b.maxNumSeqs = n
	return b
}

// WithNoKVCache disables the KV cache, trading performance for memory.
func (b *TextModelBuilder) WithNoKVCache() *TextModelBuilder {
	b.noKVCache = true
	return b
}

// WithPrefixCacheN sets how many sequences the prefix cacher retains.
func (b *TextModelBuilder) WithPrefixCacheN(n int) *TextModelBuilder {
	b.prefixCacheN = n
	b.prefixCacheOff = false
	return b
}

// WithNoPrefixCache disables the prefix cacher.
func (b *TextModelBuilder) WithNoPrefixCache() *TextModelBuilder {
	b.prefixCacheOff = true
	return b
}

// WithLogging enables process-wide logging during assembly and serving.
func (b *TextModelBuilder) WithLogging() *TextModelBuilder {
	b.withLogging = true
	return b
}

// WithDeviceMapping provides the device-mapping strategy. Unset resolves to
// automatic mapping with text-workload defaults.
func (b *TextModelBuilder) WithDeviceMapping(m device.MapSetting) *TextModelBuilder {
	b.deviceMapping = m
	return b
}

// WithDevice sets the main device to load onto. Automatic device mapping
// starts from this device.
func (b *TextModelBuilder) WithDevice(d device.Device) *TextModelBuilder {
	b.device = d
	b.deviceSet = true
	return b
}

// FromUQFF reads the model from precompiled artifacts instead of
// quantizing at load time.
func (b *TextModelBuilder) FromUQFF(paths []string) *TextModelBuilder {
	b.fromUQFF = paths
	return b
}

// WriteUQFF writes a precompiled artifact to this path after load. The
// parent directory also receives the residual files needed to reload the
// artifact standalone.
func (b *TextModelBuilder) WriteUQFF(path string) *TextModelBuilder {
	b.writeUQFF = path
	return b
}

// FromHFCachePath overrides the hub download cache directory.
func (b *TextModelBuilder) FromHFCachePath(path string) *TextModelBuilder {
	b.hfCachePath = path
	return b
}
