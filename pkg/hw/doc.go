// Package hw describes the fixed physical properties of a PAICORE 2.0 chip.
//
// # Coordinates
//
// Every compute core is addressed by a 10-bit coordinate: 5 bits of X and
// 5 bits of Y. Left to right is +X, top to bottom is +Y, and arithmetic on
// coordinates carries in Y-priority order (X overflows into Y). The online
// learning cores occupy the 28..31 corner of the grid; everything else is
// offline.
//
// # Replication IDs
//
// A replication ID is the XOR fold of a set of core coordinates. Together
// with a base coordinate it describes the multicast group the hardware
// router expands a single frame into.
//
// # Routing
//
// The router is a 4-ary tree of depth 5 (L5 down to L0). An L0 cluster is
// a physical core; a routing coordinate names a core by the direction taken
// at each level. RoutingConsumption reports how many clusters of each level
// a placement of N cores occupies.
package hw
