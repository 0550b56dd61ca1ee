package loader

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"engined/internal/device"
	"engined/internal/registry"
)

// kvBytesPerToken is the planning estimate for one token of KV state
// (fp16, 7B-class geometry). Used to size the paged cache from an absolute
// memory budget when the backend does not report exact layer geometry.
const kvBytesPerToken = 512 << 10

// localLoader materializes pipelines from local artifacts (gguf or uqff),
// resolving them through the artifact cache directory.
type localLoader struct {
	factory *Factory
	arch    ArchKind
}

func (l *localLoader) Load(ctx context.Context, params LoadParams) (Pipeline, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	path, err := l.resolveArtifact()
	if err != nil {
		return nil, err
	}
	arch := l.arch
	if arch == ArchAuto {
		arch, err = detectArch(path)
		if err != nil {
			return nil, err
		}
	}
	be, err := openBackend(ctx, path, l.factory, params)
	if err != nil {
		return nil, err
	}
	meta := Metadata{
		ModelID:   l.factory.modelID,
		Arch:      arch,
		MaxSeqLen: params.DeviceMap.AutoParams().MaxSeqLen,
	}
	if meta.MaxSeqLen == 0 {
		meta.MaxSeqLen = device.DefaultTextParams().MaxSeqLen
	}
	if params.PagedAttn != nil {
		cc, err := planCache(*params.PagedAttn)
		if err != nil {
			be.Close()
			return nil, err
		}
		meta.CacheConfig = &cc
	}
	return &pipeline{meta: meta, backend: be}, nil
}

// resolveArtifact picks the concrete file to load: explicit UQFF paths win,
// then a model id that is itself a file path, then a cache-directory scan.
func (l *localLoader) resolveArtifact() (string, error) {
	if len(l.factory.cfg.FromUQFF) > 0 {
		p := l.factory.cfg.FromUQFF[0]
		if _, err := os.Stat(p); err != nil {
			return "", ErrArtifactNotFound(p)
		}
		return p, nil
	}
	id := l.factory.modelID
	if fi, err := os.Stat(id); err == nil && !fi.IsDir() {
		return id, nil
	}
	dir := l.factory.cfg.HFCachePath
	if dir == "" {
		return "", ErrArtifactNotFound(id)
	}
	arts, err := registry.LoadDir(dir)
	if err != nil {
		return "", err
	}
	for _, a := range arts {
		if a.ID == id || a.Name == id || strings.TrimSuffix(a.ID, filepath.Ext(a.ID)) == id {
			return a.Path, nil
		}
	}
	return "", ErrArtifactNotFound(id)
}

// detectArch reads config.json next to the artifact, falling back to
// filename tokens, mirroring hub auto-detection.
func detectArch(artifact string) (ArchKind, error) {
	cfgPath := filepath.Join(filepath.Dir(artifact), "config.json")
	if b, err := os.ReadFile(cfgPath); err == nil {
		var cfg struct {
			ModelType string `json:"model_type"`
		}
		if err := json.Unmarshal(b, &cfg); err != nil {
			return ArchAuto, fmt.Errorf("parse %s: %w", cfgPath, err)
		}
		return ParseArchKind(cfg.ModelType)
	}
	name := strings.ToLower(filepath.Base(artifact))
	for _, k := range []ArchKind{ArchMixtral, ArchMistral, ArchLlama, ArchPhi3, ArchQwen2, ArchGemma2} {
		if strings.Contains(name, string(k)) {
			return k, nil
		}
	}
	return ArchAuto, ErrUnknownArchitecture(name)
}

// planCache converts the requested paged-attention budget into a concrete
// block layout.
func planCache(cfg PagedAttentionConfig) (CacheConfig, error) {
	bs := cfg.BlockSize
	if bs == 0 {
		bs = DefaultBlockSize
	}
	var blocks int
	if n, ok := cfg.MemGPU.ContextSize(); ok {
		blocks = (n + bs - 1) / bs
	} else if mb, ok := cfg.MemGPU.AmountMB(); ok {
		blockBytes := int64(bs) * kvBytesPerToken
		blocks = int(int64(mb) << 20 / blockBytes)
	}
	if blocks <= 0 {
		return CacheConfig{}, fmt.Errorf("paged attention budget yields no cache blocks")
	}
	return CacheConfig{BlockSize: bs, NumGPUBlocks: blocks, CacheType: cfg.CacheType}, nil
}

// pipeline is the materialized model handle.
type pipeline struct {
	meta    Metadata
	backend backend
}

func (p *pipeline) Metadata() Metadata { return p.meta }

func (p *pipeline) ModelID() string { return p.meta.ModelID }

func (p *pipeline) Close() error { return p.backend.Close() }
