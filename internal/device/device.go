package device

import (
	"fmt"
	"strconv"
	"strings"
)

// Kind identifies a compute backend.
type Kind string

const (
	KindCPU   Kind = "cpu"
	KindCUDA  Kind = "cuda"
	KindMetal Kind = "metal"
)

// Device is a concrete compute device (backend + ordinal).
// The zero value is the CPU.
type Device struct {
	kind    Kind
	ordinal int
}

func CPU() Device { return Device{kind: KindCPU} }

func CUDA(ordinal int) Device { return Device{kind: KindCUDA, ordinal: ordinal} }

func Metal(ordinal int) Device { return Device{kind: KindMetal, ordinal: ordinal} }

func (d Device) Kind() Kind {
	if d.kind == "" {
		return KindCPU
	}
	return d.kind
}

func (d Device) Ordinal() int { return d.ordinal }

func (d Device) IsCPU() bool { return d.Kind() == KindCPU }

func (d Device) String() string {
	if d.IsCPU() {
		return string(KindCPU)
	}
	return fmt.Sprintf("%s:%d", d.kind, d.ordinal)
}

// Parse converts strings like "cpu", "cuda:0", "metal:1" into a Device.
// A bare backend name means ordinal 0.
func Parse(s string) (Device, error) {
	name, ord, hasOrd := strings.Cut(strings.ToLower(strings.TrimSpace(s)), ":")
	n := 0
	if hasOrd {
		v, err := strconv.Atoi(ord)
		if err != nil || v < 0 {
			return Device{}, fmt.Errorf("invalid device ordinal in %q", s)
		}
		n = v
	}
	switch Kind(name) {
	case KindCPU:
		if hasOrd {
			return Device{}, fmt.Errorf("cpu device takes no ordinal: %q", s)
		}
		return CPU(), nil
	case KindCUDA:
		return CUDA(n), nil
	case KindMetal:
		return Metal(n), nil
	default:
		return Device{}, fmt.Errorf("unknown device %q", s)
	}
}

// Best returns the preferred device for this build: the first accelerator
// when one is compiled in, otherwise the CPU. forceCPU always wins.
func Best(forceCPU bool) Device {
	if forceCPU || !accelAvailable {
		return CPU()
	}
	return accelDevice
}
