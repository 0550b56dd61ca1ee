package engine

import (
	"context"

	"engined/internal/loader"
	"engined/internal/logging"
	"engined/internal/runtime"
)

// Model is the public handle around a finalized runtime.
type Model struct {
	rt *runtime.Engine
}

// Runtime exposes the underlying engine.
func (m *Model) Runtime() *runtime.Engine { return m.rt }

// ModelID returns the identifier the model was built for.
func (m *Model) ModelID() string { return m.rt.ModelID() }

// Close releases the runtime and its pipeline.
func (m *Model) Close() error { return m.rt.Close() }

// Build consumes the builder and assembles the runtime: resolve option
// conflicts, construct the loader, materialize the pipeline, select the
// scheduler from the reported capabilities, wire the extension hooks, and
// finalize. Fails fast; nothing is retried and no partial runtime is
// returned. The builder must not be reused afterwards.
func (b *TextModelBuilder) Build(ctx context.Context) (*Model, error) {
	if err := b.checkCalibrationSources(); err != nil {
		return nil, err
	}
	dev := b.resolveDevice()
	devMap := b.resolveDeviceMap()

	cfg := loader.Config{
		PromptChunkSize: b.promptChunkSize,
		Topology:        b.topology,
		Organization:    b.organization,
		WriteUQFF:       b.writeUQFF,
		FromUQFF:        b.fromUQFF,
		IMatrix:         b.imatrix,
		CalibrationFile: b.calibration,
		HFCachePath:     b.hfCachePath,
	}

	if b.withLogging {
		logging.Initialize()
	}
	log := logging.Logger()

	ld := b.loadWith
	if ld == nil {
		factory := loader.NewFactory(cfg, b.chatTemplate, b.tokenizerJSON, b.modelID, b.noKVCache, b.jinjaExplicit)
		var err error
		ld, err = factory.Build(b.loaderType)
		if err != nil {
			return nil, err
		}
	}

	log.Info().Str("model", b.modelID).Str("device", dev.String()).Msg("loading model")
	pipeline, err := ld.Load(ctx, loader.LoadParams{
		Revision:  b.hfRevision,
		Token:     b.tokenSource,
		DType:     b.dtype,
		Device:    dev,
		Quiet:     !b.withLogging,
		DeviceMap: devMap,
		ISQ:       b.isq,
		PagedAttn: b.pagedAttnCfg,
	})
	if err != nil {
		return nil, err
	}

	sched, err := resolveScheduler(b.pagedAttnCfg != nil, pipeline.Metadata().CacheConfig, b.maxNumSeqs)
	if err != nil {
		pipeline.Close()
		return nil, err
	}
	log.Info().Stringer("scheduler", sched).Msg("scheduler selected")

	runner := runtime.NewBuilder(pipeline, sched, b.throughputLogging, b.searchEmbedModel)
	if b.searchCallback != nil {
		runner = runner.WithSearchCallback(b.searchCallback)
	}
	for name, cb := range b.toolCallbacks {
		runner = runner.WithToolCallback(name, cb)
	}
	for name, entry := range b.toolsWithDefs {
		runner = runner.WithToolCallbackAndTool(name, entry.callback, entry.tool)
	}
	if b.mcpConfig != nil {
		runner = runner.WithMCPClient(*b.mcpConfig)
	}
	runner = runner.
		WithNoKVCache(b.noKVCache).
		WithNoPrefixCache(b.prefixCacheOff)
	if !b.prefixCacheOff {
		runner = runner.WithPrefixCacheN(b.prefixCacheN)
	}

	rt, err := runner.Build(ctx)
	if err != nil {
		pipeline.Close()
		return nil, err
	}
	return &Model{rt: rt}, nil
}
