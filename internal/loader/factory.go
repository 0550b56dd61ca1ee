package loader

import (
	"fmt"
	"strings"
)

// Factory builds a Loader from the loader-facing config subset and the
// template/tokenizer sources. Construction is pure; no I/O happens until
// Loader.Load.
type Factory struct {
	cfg           Config
	chatTemplate  string
	tokenizerJSON string
	modelID       string
	noKVCache     bool
	jinjaExplicit string
}

// NewFactory captures the loader inputs. chatTemplate is either a literal
// template or a path ending in .json; jinjaExplicit is a .jinja file path
// that overrides every other template source.
func NewFactory(cfg Config, chatTemplate, tokenizerJSON, modelID string, noKVCache bool, jinjaExplicit string) *Factory {
	return &Factory{
		cfg:           cfg,
		chatTemplate:  chatTemplate,
		tokenizerJSON: tokenizerJSON,
		modelID:       modelID,
		noKVCache:     noKVCache,
		jinjaExplicit: jinjaExplicit,
	}
}

// Build resolves the loader type and returns a Loader. An explicit arch that
// is not recognized fails here, before any model I/O. ArchAuto defers
// detection to load time, when the model config is on disk.
func (f *Factory) Build(arch ArchKind) (Loader, error) {
	if strings.TrimSpace(f.modelID) == "" {
		return nil, fmt.Errorf("model id is empty")
	}
	if _, err := ParseArchKind(string(arch)); err != nil {
		return nil, err
	}
	if f.jinjaExplicit != "" && !strings.HasSuffix(f.jinjaExplicit, ".jinja") {
		return nil, fmt.Errorf("explicit chat template must be a .jinja file: %s", f.jinjaExplicit)
	}
	if t := f.chatTemplate; t != "" && looksLikePath(t) && !strings.HasSuffix(t, ".json") {
		return nil, fmt.Errorf("chat template path must end in .json: %s", t)
	}
	return &localLoader{factory: f, arch: arch}, nil
}

// looksLikePath distinguishes a template file reference from a literal
// template body. Literal templates contain jinja braces.
func looksLikePath(s string) bool {
	return !strings.ContainsAny(s, "{}\n")
}
