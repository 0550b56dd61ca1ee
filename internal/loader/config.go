package loader

// Config is the loader-facing subset of the build configuration, derived by
// the assembly layer before loader construction.
type Config struct {
	// PromptChunkSize batches prompt tokens during prefill; 0 means the
	// backend default.
	PromptChunkSize int
	// Topology overrides quantization/placement per layer range; where it
	// overlaps ISQ, the topology wins.
	Topology *Topology
	// Organization selects which modules ISQ applies to.
	Organization ISQOrganization
	// WriteUQFF writes a precompiled artifact to this path after load.
	WriteUQFF string
	// FromUQFF reads precompiled artifacts instead of quantizing at load.
	FromUQFF []string
	// IMatrix is a precomputed importance matrix used during ISQ.
	IMatrix string
	// CalibrationFile is a calibration corpus used to collect an importance
	// matrix during ISQ.
	CalibrationFile string
	// HFCachePath overrides the hub download cache directory.
	HFCachePath string
}
