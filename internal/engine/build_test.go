package engine

import (
	"context"
	"errors"
	"testing"

	"engined/internal/device"
	"engined/internal/loader"
	"engined/pkg/types"
)

// fakePipeline satisfies loader.Pipeline without touching disk.
type fakePipeline struct {
	meta   loader.Metadata
	closed bool
}

func (p *fakePipeline) Metadata() loader.Metadata { return p.meta }
func (p *fakePipeline) ModelID() string           { return p.meta.ModelID }
func (p *fakePipeline) Close() error              { p.closed = true; return nil }

// fakeLoader records Load calls and hands back a canned pipeline.
type fakeLoader struct {
	pipe   *fakePipeline
	err    error
	called bool
	params loader.LoadParams
}

func (l *fakeLoader) Load(ctx context.Context, params loader.LoadParams) (loader.Pipeline, error) {
	l.called = true
	l.params = params
	if l.err != nil {
		return nil, l.err
	}
	return l.pipe, nil
}

func newFakeLoader(modelID string, cache *loader.CacheConfig) *fakeLoader {
	return &fakeLoader{pipe: &fakePipeline{meta: loader.Metadata{
		ModelID:     modelID,
		Arch:        loader.ArchLlama,
		MaxSeqLen:   4096,
		CacheConfig: cache,
	}}}
}

func TestBuildFixedScheduler(t *testing.T) {
	fl := newFakeLoader("m", nil)
	b := NewTextModelBuilder("m").WithMaxNumSeqs(8)
	b.loadWith = fl
	model, err := b.Build(context.Background())
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	defer model.Close()
	sched := model.Runtime().SchedulerConfig()
	if sched.IsPaged() {
		t.Fatalf("expected fixed scheduler")
	}
	if sched.MaxNumSeqs() != 8 {
		t.Fatalf("expected limit 8 got %d", sched.MaxNumSeqs())
	}
}

func TestBuildPagedRequestedButUnsupported(t *testing.T) {
	restore := device.SetPagedAttnProbe(func() bool { return false })
	defer device.SetPagedAttnProbe(restore)

	b, err := NewTextModelBuilder("m").WithPagedAttn(NewPagedAttentionMetaBuilder().Build)
	if err != nil {
		t.Fatalf("paged attn request: %v", err)
	}
	fl := newFakeLoader("m", nil)
	b.loadWith = fl
	model, err := b.Build(context.Background())
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	defer model.Close()
	if fl.params.PagedAttn != nil {
		t.Fatalf("dropped paged request must not reach the loader")
	}
	if model.Runtime().SchedulerConfig().IsPaged() {
		t.Fatalf("expected fixed scheduler when probe reports unsupported")
	}
}

func TestBuildPagedConfirmedByPipeline(t *testing.T) {
	restore := device.SetPagedAttnProbe(func() bool { return true })
	defer device.SetPagedAttnProbe(restore)

	cc := loader.CacheConfig{BlockSize: 32, NumGPUBlocks: 128, CacheType: loader.PagedCacheAuto}
	b, err := NewTextModelBuilder("m").WithMaxNumSeqs(16).WithPagedAttn(NewPagedAttentionMetaBuilder().Build)
	if err != nil {
		t.Fatalf("paged attn request: %v", err)
	}
	fl := newFakeLoader("m", &cc)
	b.loadWith = fl
	model, err := b.Build(context.Background())
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	defer model.Close()
	sched := model.Runtime().SchedulerConfig()
	if !sched.IsPaged() {
		t.Fatalf("expected paged scheduler")
	}
	got, _ := sched.CacheConfig()
	if got != cc {
		t.Fatalf("cache config must be carried exactly: %+v", got)
	}
	if sched.MaxNumSeqs() != 16 {
		t.Fatalf("max seqs: %d", sched.MaxNumSeqs())
	}
}

func TestBuildPagedRequestedPipelineReportsNoCache(t *testing.T) {
	restore := device.SetPagedAttnProbe(func() bool { return true })
	defer device.SetPagedAttnProbe(restore)

	b, err := NewTextModelBuilder("m").WithPagedAttn(NewPagedAttentionMetaBuilder().Build)
	if err != nil {
		t.Fatalf("paged attn request: %v", err)
	}
	fl := newFakeLoader("m", nil)
	b.loadWith = fl
	model, err := b.Build(context.Background())
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	defer model.Close()
	if model.Runtime().SchedulerConfig().IsPaged() {
		t.Fatalf("pipeline without cache metadata must select the default scheduler")
	}
}

func TestBuildRejectsBothCalibrationSources(t *testing.T) {
	fl := newFakeLoader("m", nil)
	b := NewTextModelBuilder("m").WithIMatrix("a.imatrix").WithCalibrationFile("c.txt")
	b.loadWith = fl
	if _, err := b.Build(context.Background()); err == nil || !IsConfigError(err) {
		t.Fatalf("expected config error, got %v", err)
	}
	if fl.called {
		t.Fatalf("loader must not run after a config error")
	}
}

func TestBuildUnresolvableLoaderTypeFailsBeforeLoad(t *testing.T) {
	b := NewTextModelBuilder("m").WithLoaderType(loader.ArchKind("starcoder"))
	_, err := b.Build(context.Background())
	if err == nil {
		t.Fatalf("expected unknown architecture error")
	}
	if !loader.IsUnknownArchitecture(err) {
		t.Fatalf("expected IsUnknownArchitecture, got %v", err)
	}
}

func TestBuildPropagatesLoadError(t *testing.T) {
	fl := &fakeLoader{err: errors.New("download failed")}
	b := NewTextModelBuilder("m")
	b.loadWith = fl
	if _, err := b.Build(context.Background()); err == nil {
		t.Fatalf("expected load error")
	}
}

func TestBuildQuietFollowsLoggingFlag(t *testing.T) {
	fl := newFakeLoader("m", nil)
	b := NewTextModelBuilder("m")
	b.loadWith = fl
	model, err := b.Build(context.Background())
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	defer model.Close()
	if !fl.params.Quiet {
		t.Fatalf("loads without WithLogging must be quiet")
	}
}

func TestBuildWiresToolRegistries(t *testing.T) {
	cb := func(ctx context.Context, call types.ToolCall) (string, error) { return "ok", nil }
	tool := types.Tool{Type: "function", Function: types.ToolFunction{Name: "N"}}
	fl := newFakeLoader("m", nil)
	b := NewTextModelBuilder("m").
		WithToolCallback("N", cb).
		WithToolCallbackAndTool("N", cb, tool)
	b.loadWith = fl
	model, err := b.Build(context.Background())
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	defer model.Close()
	rt := model.Runtime()
	if _, ok := rt.ToolCallback("N"); !ok {
		t.Fatalf("plain callback registry lost %q", "N")
	}
	got, ok := rt.ToolWithDefinition("N")
	if !ok {
		t.Fatalf("definition registry lost %q", "N")
	}
	if got.Tool.Function.Name != "N" {
		t.Fatalf("wrong tool definition: %+v", got.Tool)
	}
}

func TestBuildAppliesPrefixCacheSettings(t *testing.T) {
	fl := newFakeLoader("m", nil)
	b := NewTextModelBuilder("m").WithPrefixCacheN(4)
	b.loadWith = fl
	model, err := b.Build(context.Background())
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	defer model.Close()
	if n, ok := model.Runtime().PrefixCacheN(); !ok || n != 4 {
		t.Fatalf("prefix cache: n=%d ok=%v", n, ok)
	}

	fl2 := newFakeLoader("m", nil)
	b2 := NewTextModelBuilder("m").WithNoPrefixCache()
	b2.loadWith = fl2
	model2, err := b2.Build(context.Background())
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	defer model2.Close()
	if _, ok := model2.Runtime().PrefixCacheN(); ok {
		t.Fatalf("prefix cache should be disabled")
	}
}
