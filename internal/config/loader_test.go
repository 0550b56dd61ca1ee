package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(p, []byte(body), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return p
}

func TestLoadYAML(t *testing.T) {
	p := writeFile(t, "cfg.yaml", `
addr: ":9090"
model_id: "org/model"
isq: q4k
max_num_seqs: 16
paged_attn:
  enable: true
  ctx_size: 8192
`)
	cfg, err := Load(p)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Addr != ":9090" || cfg.ModelID != "org/model" || cfg.ISQ != "q4k" {
		t.Fatalf("parsed: %+v", cfg)
	}
	if !cfg.Paged.Enable || cfg.Paged.CtxSize != 8192 {
		t.Fatalf("paged: %+v", cfg.Paged)
	}
}

func TestLoadJSON(t *testing.T) {
	p := writeFile(t, "cfg.json", `{"model_id":"m","dtype":"bf16","no_kv_cache":true}`)
	cfg, err := Load(p)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.ModelID != "m" || cfg.DType != "bf16" || !cfg.NoKVCache {
		t.Fatalf("parsed: %+v", cfg)
	}
}

func TestLoadTOML(t *testing.T) {
	p := writeFile(t, "cfg.toml", `
model_id = "m"
force_cpu = true
prefix_cache_n = 8
`)
	cfg, err := Load(p)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.ModelID != "m" || !cfg.ForceCPU {
		t.Fatalf("parsed: %+v", cfg)
	}
	if cfg.PrefixCacheN == nil || *cfg.PrefixCacheN != 8 {
		t.Fatalf("prefix_cache_n: %v", cfg.PrefixCacheN)
	}
}

func TestLoadRejectsUnknownExtension(t *testing.T) {
	p := writeFile(t, "cfg.ini", "model_id=m")
	if _, err := Load(p); err == nil {
		t.Fatalf("unknown extension must fail")
	}
}

func TestLoadEmptyPath(t *testing.T) {
	if _, err := Load(""); err == nil {
		t.Fatalf("empty path must fail")
	}
}

func TestBuilderRequiresModelID(t *testing.T) {
	if _, err := (Config{}).Builder(); err == nil {
		t.Fatalf("missing model_id must fail")
	}
}

func TestBuilderRejectsBadLoaderType(t *testing.T) {
	cfg := Config{ModelID: "m", LoaderType: "starcoder"}
	if _, err := cfg.Builder(); err == nil {
		t.Fatalf("unknown loader type must fail")
	}
}

func TestBuilderRejectsBadDevice(t *testing.T) {
	cfg := Config{ModelID: "m", Device: "tpu:0"}
	if _, err := cfg.Builder(); err == nil {
		t.Fatalf("unknown device must fail")
	}
}

func TestBuilderRejectsBadTokenSource(t *testing.T) {
	cfg := Config{ModelID: "m", TokenSource: "keychain"}
	if _, err := cfg.Builder(); err == nil {
		t.Fatalf("unknown token source must fail")
	}
}

func TestBuilderAcceptsFullConfig(t *testing.T) {
	n := 4
	cfg := Config{
		ModelID:           "org/model",
		Revision:          "main",
		TokenSource:       "env:HF_TOKEN",
		LoaderType:        "llama",
		DType:             "f16",
		ISQ:               "q4k",
		MoQE:              true,
		ForceCPU:          true,
		MaxNumSeqs:        16,
		PrefixCacheN:      &n,
		Logging:           true,
		ThroughputLogging: true,
		SearchEmbedModel:  "embed",
	}
	if _, err := cfg.Builder(); err != nil {
		t.Fatalf("builder: %v", err)
	}
}

func TestParseTokenSource(t *testing.T) {
	for _, s := range []string{"cache", "none", "literal:tok", "env:HF_TOKEN", "path:/tmp/token"} {
		src, err := parseTokenSource(s)
		if err != nil || src == nil {
			t.Fatalf("parseTokenSource(%q): %v %v", s, src, err)
		}
	}
	if src, err := parseTokenSource(""); err != nil || src != nil {
		t.Fatalf("empty must mean unset: %v %v", src, err)
	}
}
