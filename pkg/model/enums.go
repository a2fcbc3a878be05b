package model

import "fmt"

// WeightWidth is the bit precision of crossbar weight storage.
type WeightWidth int64

const (
	// WeightWidth1Bit .. WeightWidth8Bit are the supported precisions.
	WeightWidth1Bit WeightWidth = 1
	WeightWidth2Bit WeightWidth = 2
	WeightWidth4Bit WeightWidth = 4
	WeightWidth8Bit WeightWidth = 8
)

// String returns the precision as "N-bit".
func (w WeightWidth) String() string {
	return fmt.Sprintf("%d-bit", int64(w))
}

// Valid reports whether w is a supported precision.
func (w WeightWidth) Valid() bool {
	switch w {
	case WeightWidth1Bit, WeightWidth2Bit, WeightWidth4Bit, WeightWidth8Bit:
		return true
	default:
		return false
	}
}

// LCN is the fan-in extension factor of a core.
type LCN int64

const (
	// LCN1X .. LCN64X are the supported extension factors. In SNN-like
	// modes LCN1X means 1152 fan-in; with 8-bit input it means 144.
	LCN1X  LCN = 1
	LCN2X  LCN = 2
	LCN4X  LCN = 4
	LCN8X  LCN = 8
	LCN16X LCN = 16
	LCN32X LCN = 32
	LCN64X LCN = 64
)

// String returns the factor as "Nx".
func (l LCN) String() string {
	return fmt.Sprintf("%dx", int64(l))
}

// SpikeWidth is the bit width of an input or output spike.
type SpikeWidth int64

const (
	// SpikeWidth1Bit is a plain spike.
	SpikeWidth1Bit SpikeWidth = 1

	// SpikeWidth8Bit is an 8-bit activation.
	SpikeWidth8Bit SpikeWidth = 8
)

// String returns the width as "N-bit".
func (s SpikeWidth) String() string {
	return fmt.Sprintf("%d-bit", int64(s))
}

// MaxPoolingEnable switches max pooling in 8-bit input format.
type MaxPoolingEnable int64

const (
	// MaxPoolingDisable turns pooling off.
	MaxPoolingDisable MaxPoolingEnable = 0

	// MaxPoolingEnabled turns pooling on. Only meaningful with 8-bit input.
	MaxPoolingEnabled MaxPoolingEnable = 1
)

// SNNModeEnable switches SNN mode of a core.
type SNNModeEnable int64

const (
	// SNNModeDisable turns SNN mode off.
	SNNModeDisable SNNModeEnable = 0

	// SNNModeEnabled turns SNN mode on.
	SNNModeEnabled SNNModeEnable = 1
)

// CoreMode is the working mode of a core, decided by the input width,
// spike width and SNN enable fields together.
type CoreMode uint8

const (
	// ModeBANN: 1-bit input, 1-bit spike, SNN disabled.
	ModeBANN CoreMode = iota

	// ModeSNN: 1-bit input, 1-bit spike, SNN enabled.
	ModeSNN

	// ModeBANNOrSNNToANN: 1-bit input, 8-bit spike, SNN disabled.
	ModeBANNOrSNNToANN

	// ModeBANNOrSNNToSNN: 1-bit input, 8-bit spike, SNN enabled.
	ModeBANNOrSNNToSNN

	// ModeANNToBANNOrSNN: 8-bit input, 1-bit spike, SNN disabled.
	ModeANNToBANNOrSNN

	// ModeANN: 8-bit input, 8-bit spike, SNN disabled.
	ModeANN
)

// String returns the mode name.
func (m CoreMode) String() string {
	switch m {
	case ModeBANN:
		return "BANN"
	case ModeSNN:
		return "SNN"
	case ModeBANNOrSNNToANN:
		return "BANN/SNN_to_ANN"
	case ModeBANNOrSNNToSNN:
		return "BANN/SNN_to_SNN"
	case ModeANNToBANNOrSNN:
		return "ANN_to_BANN/SNN"
	case ModeANN:
		return "ANN"
	default:
		return "UNKNOWN"
	}
}

// IsSNN reports whether the mode integrates spikes the SNN way, which
// bounds the dendrite count at the SNN limit.
func (m CoreMode) IsSNN() bool {
	return m == ModeSNN || m == ModeBANNOrSNNToSNN
}

// CoreModeOf derives the core mode from the three deciding fields.
// Unlisted combinations have no hardware meaning and fail.
func CoreModeOf(inputWidth, spikeWidth SpikeWidth, snn SNNModeEnable) (CoreMode, error) {
	type conf struct {
		iw  SpikeWidth
		sw  SpikeWidth
		snn SNNModeEnable
	}

	modes := map[conf]CoreMode{
		{SpikeWidth1Bit, SpikeWidth1Bit, SNNModeDisable}: ModeBANN,
		{SpikeWidth1Bit, SpikeWidth1Bit, SNNModeEnabled}: ModeSNN,
		{SpikeWidth1Bit, SpikeWidth8Bit, SNNModeDisable}: ModeBANNOrSNNToANN,
		{SpikeWidth1Bit, SpikeWidth8Bit, SNNModeEnabled}: ModeBANNOrSNNToSNN,
		{SpikeWidth8Bit, SpikeWidth1Bit, SNNModeDisable}: ModeANNToBANNOrSNN,
		{SpikeWidth8Bit, SpikeWidth8Bit, SNNModeDisable}: ModeANN,
	}

	m, ok := modes[conf{inputWidth, spikeWidth, snn}]
	if !ok {
		return 0, fmt.Errorf("invalid mode conf: (input_width, spike_width, snn_en) = (%d, %d, %d)",
			inputWidth, spikeWidth, snn)
	}
	return m, nil
}
