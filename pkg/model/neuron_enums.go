package model

// Value types of the neuron RAM fields. All of these are closed choice
// sets; the schema layouts reject anything outside them.

// ResetMode is the membrane reset behavior after a spike.
type ResetMode int64

const (
	// ResetModeNormal resets to the reset potential.
	ResetModeNormal ResetMode = 0

	// ResetModeLinear subtracts the threshold.
	ResetModeLinear ResetMode = 1

	// ResetModeNonReset leaves the potential unchanged.
	ResetModeNonReset ResetMode = 2
)

// LeakComparisonMode orders leak against threshold comparison.
type LeakComparisonMode int64

const (
	// LeakBeforeComparison applies leak before comparing.
	LeakBeforeComparison LeakComparisonMode = 0

	// LeakAfterComparison applies leak after comparing.
	LeakAfterComparison LeakComparisonMode = 1
)

// NegativeThresholdMode selects the behavior at the negative threshold.
type NegativeThresholdMode int64

const (
	// NegativeThresholdReset resets on crossing.
	NegativeThresholdReset NegativeThresholdMode = 0

	// NegativeThresholdSaturation floors at the threshold.
	NegativeThresholdSaturation NegativeThresholdMode = 1
)

// LeakDirectionMode is the direction of leak.
type LeakDirectionMode int64

const (
	// LeakForward leaks toward the resting potential.
	LeakForward LeakDirectionMode = 0

	// LeakReversal leaks away from it.
	LeakReversal LeakDirectionMode = 1
)

// LeakIntegrationMode selects deterministic or stochastic leak.
type LeakIntegrationMode int64

const (
	// LeakDeterministic applies the exact leak value.
	LeakDeterministic LeakIntegrationMode = 0

	// LeakStochastic applies a randomized leak.
	LeakStochastic LeakIntegrationMode = 1
)

// SynapticIntegrationMode selects deterministic or stochastic weights.
type SynapticIntegrationMode int64

const (
	// SynapticDeterministic integrates exact weights.
	SynapticDeterministic SynapticIntegrationMode = 0

	// SynapticStochastic integrates randomized weights.
	SynapticStochastic SynapticIntegrationMode = 1
)
