package device

// AutoMapParams bounds the automatic device mapper's capacity planning.
type AutoMapParams struct {
	// MaxSeqLen is the longest sequence the mapper plans memory for.
	MaxSeqLen int
	// MaxBatchSize is the largest concurrent batch planned for.
	MaxBatchSize int
}

// DefaultTextParams returns the capacity parameters used for text workloads
// when the caller does not supply a mapping.
func DefaultTextParams() AutoMapParams {
	return AutoMapParams{MaxSeqLen: 4096, MaxBatchSize: 1}
}

// LayerAssignment pins an inclusive layer range onto one device.
type LayerAssignment struct {
	Start  int
	End    int
	Device Device
}

// MapSetting selects between automatic capacity-driven device mapping and an
// explicit per-layer assignment. The zero value is "unset" and is resolved
// to MapAuto(DefaultTextParams()) during assembly.
type MapSetting struct {
	set    bool
	auto   bool
	params AutoMapParams
	layers []LayerAssignment
}

// MapAuto requests automatic device mapping with the given capacity params.
func MapAuto(params AutoMapParams) MapSetting {
	return MapSetting{set: true, auto: true, params: params}
}

// MapExplicit pins layers to devices directly.
func MapExplicit(layers []LayerAssignment) MapSetting {
	return MapSetting{set: true, layers: layers}
}

func (m MapSetting) IsSet() bool { return m.set }

func (m MapSetting) IsAuto() bool { return m.auto }

func (m MapSetting) AutoParams() AutoMapParams { return m.params }

func (m MapSetting) Layers() []LayerAssignment { return m.layers }
