package loader

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// TopologyEntry overrides quantization and/or placement for an inclusive
// layer range.
type TopologyEntry struct {
	Start int `yaml:"start"`
	End   int `yaml:"end"`
	// ISQ overrides the quantization type for the range; empty keeps weights
	// unquantized regardless of the global ISQ setting.
	ISQ ISQType `yaml:"isq,omitempty"`
	// Device pins the range onto a device ("cpu", "cuda:0", ...).
	Device string `yaml:"device,omitempty"`
}

// Topology is an explicit per-layer-range placement and precision override.
// Where a range overlaps the global ISQ setting, the topology entry wins.
type Topology struct {
	Entries []TopologyEntry `yaml:"layers"`
}

// LoadTopology reads a topology override from a YAML file.
func LoadTopology(path string) (*Topology, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var t Topology
	if err := yaml.Unmarshal(b, &t); err != nil {
		return nil, fmt.Errorf("parse topology %s: %w", path, err)
	}
	for _, e := range t.Entries {
		if e.Start < 0 || e.End < e.Start {
			return nil, fmt.Errorf("topology %s: invalid layer range %d..%d", path, e.Start, e.End)
		}
	}
	return &t, nil
}
