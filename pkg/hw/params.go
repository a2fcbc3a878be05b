package hw

// Basic chip geometry.
const (
	// NChipMax is the maximum number of chips in a system.
	NChipMax = 1024

	// NBitCoreX is the width of the X component of a core coordinate.
	NBitCoreX = 5

	// NBitCoreY is the width of the Y component of a core coordinate.
	NBitCoreY = 5

	// CoreXMax is the highest valid X coordinate.
	CoreXMax = (1 << NBitCoreX) - 1

	// CoreYMax is the highest valid Y coordinate.
	CoreYMax = (1 << NBitCoreY) - 1

	// NCoreMaxInChip is the number of cores on one chip.
	NCoreMaxInChip = 1024

	// NCoreOffline is the number of offline (inference) cores per chip.
	NCoreOffline = 1008

	// NCoreOnline is the number of online (learning) cores per chip.
	NCoreOnline = NCoreMaxInChip - NCoreOffline

	// CoreXOnlineMin and CoreYOnlineMin bound the online core corner.
	// Online cores live at X in [28, 31], Y in [28, 31].
	CoreXOnlineMin = 0b11100
	CoreYOnlineMin = 0b11100
)

// Fan-in and storage limits.
const (
	// NFaninPerDendriteSNN is the fan-in of one dendrite in SNN mode.
	NFaninPerDendriteSNN = 1152

	// NFaninPerDendriteANN is the fan-in of one dendrite with 8-bit input.
	NFaninPerDendriteANN = 144

	// NDendriteMaxSNN is the dendrite capacity of a core in SNN-like modes.
	NDendriteMaxSNN = 512

	// NDendriteMaxANN is the dendrite capacity of a core in ANN-like modes.
	NDendriteMaxANN = 4096

	// NNeuronMaxSNN is the neuron capacity of a core in SNN-like modes.
	NNeuronMaxSNN = 512

	// NNeuronMaxANN is the neuron capacity of a core in ANN-like modes.
	NNeuronMaxANN = 1888

	// AddrRAMMax is the highest neuron RAM address.
	AddrRAMMax = NNeuronMaxSNN - 1

	// AddrAxonMax is the highest axon address.
	AddrAxonMax = NFaninPerDendriteSNN - 1

	// NTimeslotMax is the number of timeslots per sync window.
	NTimeslotMax = 256
)

// Routing tree shape.
const (
	// NRoutingPathLengthMax is the depth of the routing tree (L5 exclusive).
	NRoutingPathLengthMax = 5

	// NSubRoutingNode is the number of children of a routing cluster.
	NSubRoutingNode = 4
)

// FanoutIW8 is the fan-out with 8-bit input width, indexed by the combination
// rate of dendrites (LCN extension + weight width).
var FanoutIW8 = [...]int{NNeuronMaxANN, 1364, 876, 512, 256, 128, 64, 32, 16, 8}
