package hw

import (
	"errors"
	"fmt"
)

// Routing errors.
var (
	ErrRoutingUnspecified = errors.New("routing direction not specified")
	ErrRoutingLevel       = errors.New("routing level out of range")
)

// RoutingLevel is the depth of a cluster in the routing tree. L0 clusters
// are leaves; an L0 cluster is a physical core.
type RoutingLevel int

// Routing levels, leaf to root.
const (
	RoutingL0 RoutingLevel = iota
	RoutingL1
	RoutingL2
	RoutingL3
	RoutingL4
	RoutingL5
)

// String returns the level name.
func (l RoutingLevel) String() string {
	if l < RoutingL0 || l > RoutingL5 {
		return "L?"
	}
	return fmt.Sprintf("L%d", int(l))
}

// RoutingDirection selects one of the four children of a routing cluster.
type RoutingDirection int

const (
	// DirectionX0Y0 .. DirectionX1Y1 are the four concrete children.
	DirectionX0Y0 RoutingDirection = iota
	DirectionX0Y1
	DirectionX1Y0
	DirectionX1Y1

	// DirectionAny marks a level that is not yet specified.
	DirectionAny
)

// String returns the direction name.
func (d RoutingDirection) String() string {
	switch d {
	case DirectionX0Y0:
		return "X0Y0"
	case DirectionX0Y1:
		return "X0Y1"
	case DirectionX1Y0:
		return "X1Y0"
	case DirectionX1Y1:
		return "X1Y1"
	case DirectionAny:
		return "ANY"
	default:
		return "UNKNOWN"
	}
}

// xy returns the direction's X and Y bits.
func (d RoutingDirection) xy() (int, int, error) {
	switch d {
	case DirectionX0Y0:
		return 0, 0, nil
	case DirectionX0Y1:
		return 0, 1, nil
	case DirectionX1Y0:
		return 1, 0, nil
	case DirectionX1Y1:
		return 1, 1, nil
	default:
		return 0, 0, ErrRoutingUnspecified
	}
}

// Index returns the direction's index in a cluster's child list
// (Y-priority order).
func (d RoutingDirection) Index() (int, error) {
	x, y, err := d.xy()
	if err != nil {
		return 0, err
	}
	return x<<1 | y, nil
}

// routingDirectionsIdx lists directions in child-index order.
var routingDirectionsIdx = [NSubRoutingNode]RoutingDirection{
	DirectionX0Y0, DirectionX0Y1, DirectionX1Y0, DirectionX1Y1,
}

// RoutingCoord names a cluster by the direction taken at each level,
// L4 first. Trailing DirectionAny entries identify a cluster above L0.
type RoutingCoord [NRoutingPathLengthMax]RoutingDirection

// Level returns the level of the cluster the coordinate names.
func (rc RoutingCoord) Level() RoutingLevel {
	for i := 0; i < NRoutingPathLengthMax; i++ {
		if rc[i] == DirectionAny {
			return RoutingLevel(NRoutingPathLengthMax - i)
		}
	}
	return RoutingL0
}

// Coord converts a fully specified L0 routing coordinate to a core
// coordinate.
func (rc RoutingCoord) Coord() (Coord, error) {
	if lv := rc.Level(); lv > RoutingL0 {
		return Coord{}, fmt.Errorf("%w: coordinate is %s, want L0", ErrRoutingLevel, lv)
	}

	var x, y int
	for i := 0; i < NRoutingPathLengthMax; i++ {
		dx, dy, err := rc[i].xy()
		if err != nil {
			return Coord{}, err
		}
		x |= dx << (NRoutingPathLengthMax - 1 - i)
		y |= dy << (NRoutingPathLengthMax - 1 - i)
	}
	return Coord{X: x, Y: y}, nil
}

// RoutingPathForCores returns the L4..L0 routing coordinate assigned to the
// n-th core of a placement, filling from the X0Y0 corner.
func RoutingPathForCores(n int) RoutingCoord {
	var rc RoutingCoord
	// L0 digit lands at the end of the coordinate.
	for i := NRoutingPathLengthMax - 1; i >= 0; i-- {
		rc[i] = routingDirectionsIdx[n%NSubRoutingNode]
		n /= NSubRoutingNode
	}
	return rc
}

// RoutingCost counts routing clusters consumed per level.
type RoutingCost struct {
	NL0 int
	NL1 int
	NL2 int
	NL3 int
	NL4 int
	NL5 int
}

// Level returns the level of the cluster needed to contain the cost: the
// level above the highest one consumed more than once.
func (rc RoutingCost) Level() (RoutingLevel, error) {
	if rc.NL5 > 1 {
		return 0, fmt.Errorf("%w: %d L5 clusters", ErrRoutingLevel, rc.NL5)
	}

	per := [...]int{rc.NL0, rc.NL1, rc.NL2, rc.NL3, rc.NL4}
	for i := len(per) - 1; i >= 0; i-- {
		if per[i] > 1 {
			return RoutingLevel(i + 1), nil
		}
	}
	return RoutingL1, nil
}

// RoutingConsumption returns the number of clusters each level consumes to
// place nCores cores. L0 consumption rounds up to a power of two.
func RoutingConsumption(nCores int) RoutingCost {
	n := 1
	for n < nCores {
		n <<= 1
	}

	per := [6]int{n}
	for i := 0; i < 5; i++ {
		if per[i] < NSubRoutingNode {
			per[i+1] = 1
		} else {
			per[i+1] = per[i] / NSubRoutingNode
		}
	}

	return RoutingCost{
		NL0: per[0], NL1: per[1], NL2: per[2],
		NL3: per[3], NL4: per[4], NL5: per[5],
	}
}
