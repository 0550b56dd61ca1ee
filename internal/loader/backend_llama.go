//go:build llama

package loader

import (
	"context"
	"strconv"

	llama "github.com/go-skynet/go-llama.cpp"

	"engined/internal/device"
)

// llamaBuilt indicates this binary was compiled with real llama support.
var llamaBuilt = true

// allGPULayers asks llama.cpp to offload every layer it can.
const allGPULayers = 1 << 30

// backend owns the loaded weights for one pipeline.
type backend interface {
	Close() error
}

// llamaBackend wraps a go-llama.cpp model handle.
type llamaBackend struct {
	model *llama.LLama
}

func (b *llamaBackend) Close() error {
	if b.model != nil {
		b.model.Free()
		b.model = nil
	}
	return nil
}

// openBackend loads the artifact through go-llama.cpp. The context size
// follows the device-map capacity params; GPU offload follows the anchor
// device.
func openBackend(ctx context.Context, path string, f *Factory, params LoadParams) (backend, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	ctxSize := params.DeviceMap.AutoParams().MaxSeqLen
	if ctxSize == 0 {
		ctxSize = device.DefaultTextParams().MaxSeqLen
	}
	mo := []llama.ModelOption{
		llama.SetContext(ctxSize),
	}
	if n := f.cfg.PromptChunkSize; n > 0 {
		mo = append(mo, llama.SetNBatch(n))
	}
	if !params.Device.IsCPU() {
		mo = append(mo,
			llama.SetGPULayers(allGPULayers),
			llama.SetMainGPU(strconv.Itoa(params.Device.Ordinal())),
		)
	}
	if params.DType == DTypeF16 || params.DType == DTypeAuto {
		mo = append(mo, llama.EnableF16Memory)
	}
	m, err := llama.New(path, mo...)
	if err != nil {
		return nil, err
	}
	return &llamaBackend{model: m}, nil
}
