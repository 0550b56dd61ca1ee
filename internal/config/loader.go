package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"engined/internal/device"
	"engined/internal/engine"
	"engined/internal/loader"
)

// PagedAttn configures the paged KV cache request.
type PagedAttn struct {
	Enable    bool   `json:"enable" yaml:"enable" toml:"enable"`
	BlockSize int    `json:"block_size" yaml:"block_size" toml:"block_size"`
	CtxSize   int    `json:"ctx_size" yaml:"ctx_size" toml:"ctx_size"`
	MemGPUMB  int    `json:"mem_gpu_mb" yaml:"mem_gpu_mb" toml:"mem_gpu_mb"`
	CacheType string `json:"cache_type" yaml:"cache_type" toml:"cache_type"`
}

// Config holds daemon and model-build parameters. Zero values mean
// "unspecified" and keep the builder defaults.
type Config struct {
	Addr      string `json:"addr" yaml:"addr" toml:"addr"`
	ModelsDir string `json:"models_dir" yaml:"models_dir" toml:"models_dir"`

	ModelID       string   `json:"model_id" yaml:"model_id" toml:"model_id"`
	Revision      string   `json:"revision" yaml:"revision" toml:"revision"`
	TokenSource   string   `json:"token_source" yaml:"token_source" toml:"token_source"`
	ChatTemplate  string   `json:"chat_template" yaml:"chat_template" toml:"chat_template"`
	JinjaExplicit string   `json:"jinja_explicit" yaml:"jinja_explicit" toml:"jinja_explicit"`
	TokenizerJSON string   `json:"tokenizer_json" yaml:"tokenizer_json" toml:"tokenizer_json"`
	LoaderType    string   `json:"loader_type" yaml:"loader_type" toml:"loader_type"`
	DType         string   `json:"dtype" yaml:"dtype" toml:"dtype"`
	ISQ           string   `json:"isq" yaml:"isq" toml:"isq"`
	MoQE          bool     `json:"moqe" yaml:"moqe" toml:"moqe"`
	IMatrix       string   `json:"imatrix" yaml:"imatrix" toml:"imatrix"`
	Calibration   string   `json:"calibration_file" yaml:"calibration_file" toml:"calibration_file"`
	TopologyFile  string   `json:"topology" yaml:"topology" toml:"topology"`
	ForceCPU      bool     `json:"force_cpu" yaml:"force_cpu" toml:"force_cpu"`
	Device        string   `json:"device" yaml:"device" toml:"device"`
	FromUQFF      []string `json:"from_uqff" yaml:"from_uqff" toml:"from_uqff"`
	WriteUQFF     string   `json:"write_uqff" yaml:"write_uqff" toml:"write_uqff"`
	HFCachePath   string   `json:"hf_cache_path" yaml:"hf_cache_path" toml:"hf_cache_path"`

	PromptChunkSize   int       `json:"prompt_chunk_size" yaml:"prompt_chunk_size" toml:"prompt_chunk_size"`
	MaxNumSeqs        int       `json:"max_num_seqs" yaml:"max_num_seqs" toml:"max_num_seqs"`
	NoKVCache         bool      `json:"no_kv_cache" yaml:"no_kv_cache" toml:"no_kv_cache"`
	PrefixCacheN      *int      `json:"prefix_cache_n" yaml:"prefix_cache_n" toml:"prefix_cache_n"`
	Paged             PagedAttn `json:"paged_attn" yaml:"paged_attn" toml:"paged_attn"`
	Logging           bool      `json:"logging" yaml:"logging" toml:"logging"`
	ThroughputLogging bool      `json:"throughput_logging" yaml:"throughput_logging" toml:"throughput_logging"`
	SearchEmbedModel  string    `json:"search_embed_model" yaml:"search_embed_model" toml:"search_embed_model"`
}

// Load reads a configuration file based on its extension.
// Supports: .yaml/.yml, .json, .toml
func Load(path string) (Config, error) {
	var cfg Config
	if path == "" {
		return cfg, fmt.Errorf("empty config path")
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return cfg, err
		}
	case ".json":
		if err := json.Unmarshal(b, &cfg); err != nil {
			return cfg, err
		}
	case ".toml":
		if err := toml.Unmarshal(b, &cfg); err != nil {
			return cfg, err
		}
	default:
		return cfg, fmt.Errorf("unsupported config extension: %s", ext)
	}
	return cfg, nil
}

// Builder translates the file configuration into a TextModelBuilder.
func (c Config) Builder() (*engine.TextModelBuilder, error) {
	if strings.TrimSpace(c.ModelID) == "" {
		return nil, fmt.Errorf("model_id is required")
	}
	var b *engine.TextModelBuilder
	if len(c.FromUQFF) > 0 {
		b = engine.NewUQFFTextModelBuilder(c.ModelID, c.FromUQFF).Inner()
	} else {
		b = engine.NewTextModelBuilder(c.ModelID)
	}
	if c.Revision != "" {
		b = b.WithHFRevision(c.Revision)
	}
	if src, err := parseTokenSource(c.TokenSource); err != nil {
		return nil, err
	} else if src != nil {
		b = b.WithTokenSource(*src)
	}
	if c.ChatTemplate != "" {
		b = b.WithChatTemplate(c.ChatTemplate)
	}
	if c.JinjaExplicit != "" {
		b = b.WithJinjaExplicit(c.JinjaExplicit)
	}
	if c.TokenizerJSON != "" {
		b = b.WithTokenizerJSON(c.TokenizerJSON)
	}
	if c.LoaderType != "" {
		arch, err := loader.ParseArchKind(c.LoaderType)
		if err != nil {
			return nil, err
		}
		b = b.WithLoaderType(arch)
	}
	if c.DType != "" {
		b = b.WithDType(loader.DType(c.DType))
	}
	if c.ISQ != "" {
		b = b.WithISQ(loader.ISQType(c.ISQ))
	}
	if c.MoQE {
		b = b.WithMixtureQExpertsISQ()
	}
	if c.IMatrix != "" {
		b = b.WithIMatrix(c.IMatrix)
	}
	if c.Calibration != "" {
		b = b.WithCalibrationFile(c.Calibration)
	}
	if c.TopologyFile != "" {
		t, err := loader.LoadTopology(c.TopologyFile)
		if err != nil {
			return nil, err
		}
		b = b.WithTopology(t)
	}
	if c.ForceCPU {
		b = b.WithForceCPU()
	}
	if c.Device != "" {
		d, err := device.Parse(c.Device)
		if err != nil {
			return nil, err
		}
		b = b.WithDevice(d)
	}
	if c.WriteUQFF != "" {
		b = b.WriteUQFF(c.WriteUQFF)
	}
	if c.HFCachePath != "" {
		b = b.FromHFCachePath(c.HFCachePath)
	}
	if c.PromptChunkSize > 0 {
		b = b.WithPromptChunkSize(c.PromptChunkSize)
	}
	if c.MaxNumSeqs > 0 {
		b = b.WithMaxNumSeqs(c.MaxNumSeqs)
	}
	if c.NoKVCache {
		b = b.WithNoKVCache()
	}
	if c.PrefixCacheN != nil {
		if *c.PrefixCacheN <= 0 {
			b = b.WithNoPrefixCache()
		} else {
			b = b.WithPrefixCacheN(*c.PrefixCacheN)
		}
	}
	if c.Logging {
		b = b.WithLogging()
	}
	if c.ThroughputLogging {
		b = b.WithThroughputLogging()
	}
	if c.SearchEmbedModel != "" {
		b = b.WithSearch(c.SearchEmbedModel)
	}
	if c.Paged.Enable {
		meta := engine.NewPagedAttentionMetaBuilder()
		if c.Paged.BlockSize > 0 {
			meta = meta.WithBlockSize(c.Paged.BlockSize)
		}
		if c.Paged.MemGPUMB > 0 {
			meta = meta.WithGPUMemory(loader.MemoryGPUAmountMB(c.Paged.MemGPUMB))
		} else if c.Paged.CtxSize > 0 {
			meta = meta.WithGPUMemory(loader.MemoryGPUContextSize(c.Paged.CtxSize))
		}
		if c.Paged.CacheType != "" {
			meta = meta.WithPagedCacheType(loader.PagedCacheType(c.Paged.CacheType))
		}
		var err error
		b, err = b.WithPagedAttn(meta.Build)
		if err != nil {
			return nil, err
		}
	}
	return b, nil
}

func parseTokenSource(s string) (*loader.TokenSource, error) {
	if s == "" {
		return nil, nil
	}
	kind, val, _ := strings.Cut(s, ":")
	var src loader.TokenSource
	switch loader.TokenSourceKind(kind) {
	case loader.TokenKindCache:
		src = loader.TokenFromCache()
	case loader.TokenKindNone:
		src = loader.TokenNone()
	case loader.TokenKindLiteral:
		src = loader.TokenLiteral(val)
	case loader.TokenKindEnv:
		src = loader.TokenFromEnv(val)
	case loader.TokenKindPath:
		src = loader.TokenFromPath(val)
	default:
		return nil, fmt.Errorf("unknown token source %q", s)
	}
	return &src, nil
}
