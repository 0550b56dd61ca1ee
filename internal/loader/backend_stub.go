//go:build !llama

package loader

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// This file compiles when the 'llama' build tag is NOT set, keeping default
// builds and CI CGO-free. The real backend lives in backend_llama.go.

// backend owns the loaded weights for one pipeline.
type backend interface {
	Close() error
}

// stubBackend validates and holds the artifact without a token runtime.
// Generation is refused elsewhere; assembly and scheduling are fully
// functional so the daemon surface can be exercised without CGO.
type stubBackend struct{ path string }

func (b *stubBackend) Close() error { return nil }

var ggufMagic = []byte("GGUF")

// openBackend verifies the artifact header. gguf files must carry the GGUF
// magic; uqff artifacts are accepted by extension.
func openBackend(ctx context.Context, path string, f *Factory, params LoadParams) (backend, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".gguf":
		fh, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer fh.Close()
		magic := make([]byte, 4)
		if _, err := fh.Read(magic); err != nil || !bytes.Equal(magic, ggufMagic) {
			return nil, fmt.Errorf("not a gguf file: %s", path)
		}
	case ".uqff":
		// Precompiled artifact; header layout is backend-defined.
	default:
		return nil, fmt.Errorf("unsupported artifact format: %s", path)
	}
	if f.cfg.WriteUQFF != "" {
		return nil, ErrDependencyUnavailable("writing uqff requires the 'llama' build tag")
	}
	return &stubBackend{path: path}, nil
}
