package hw

import (
	"errors"
	"fmt"
	"math"
)

// Coordinate errors.
var (
	ErrCoordOutOfRange  = errors.New("coordinate out of range")
	ErrOffsetOutOfRange = errors.New("coordinate offset out of range")
)

// Coord is the coordinate of a core: 5-bit X and 5-bit Y.
type Coord struct {
	X int
	Y int
}

// NewCoord validates and builds a coordinate.
func NewCoord(x, y int) (Coord, error) {
	if x < 0 || x > CoreXMax || y < 0 || y > CoreYMax {
		return Coord{}, fmt.Errorf("%w: (%d, %d)", ErrCoordOutOfRange, x, y)
	}
	return Coord{X: x, Y: y}, nil
}

// CoordFromAddr rebuilds a coordinate from its 10-bit address.
func CoordFromAddr(addr int) (Coord, error) {
	if addr < 0 || addr >= 1<<(NBitCoreX+NBitCoreY) {
		return Coord{}, fmt.Errorf("%w: address %d", ErrCoordOutOfRange, addr)
	}
	return Coord{X: addr >> NBitCoreY, Y: addr & CoreYMax}, nil
}

// Address returns the packed 10-bit address, X in the high bits.
func (c Coord) Address() int {
	return c.X<<NBitCoreY | c.Y
}

// IsOnline reports whether the coordinate lies in the online core corner.
func (c Coord) IsOnline() bool {
	return c.X >= CoreXOnlineMin && c.Y >= CoreYOnlineMin
}

// Add applies an offset, carrying X overflow into Y (Y-priority order).
func (c Coord) Add(off CoordOffset) (Coord, error) {
	x, y, err := sumCarry(c.X+off.DeltaX, c.Y+off.DeltaY)
	if err != nil {
		return Coord{}, err
	}
	return Coord{X: x, Y: y}, nil
}

// Sub returns the offset from other to c.
func (c Coord) Sub(other Coord) CoordOffset {
	return CoordOffset{DeltaX: c.X - other.X, DeltaY: c.Y - other.Y}
}

// Xor folds two coordinates into a replication ID.
func (c Coord) Xor(other Coord) ReplicationID {
	return ReplicationID{X: c.X ^ other.X, Y: c.Y ^ other.Y}
}

// String renders the coordinate as "(x, y)".
func (c Coord) String() string {
	return fmt.Sprintf("(%d, %d)", c.X, c.Y)
}

// CoordOffset is the difference between two coordinates. Either component
// may be negative; both are bounded by the grid size.
type CoordOffset struct {
	DeltaX int
	DeltaY int
}

// NewCoordOffset validates and builds an offset.
func NewCoordOffset(dx, dy int) (CoordOffset, error) {
	if dx < -CoreXMax || dx > CoreXMax || dy < -CoreYMax || dy > CoreYMax {
		return CoordOffset{}, fmt.Errorf("%w: (%d, %d)", ErrOffsetOutOfRange, dx, dy)
	}
	return CoordOffset{DeltaX: dx, DeltaY: dy}, nil
}

// Add combines two offsets without carrying.
func (o CoordOffset) Add(other CoordOffset) (CoordOffset, error) {
	return NewCoordOffset(o.DeltaX+other.DeltaX, o.DeltaY+other.DeltaY)
}

// EuclideanDistance returns sqrt(dx^2 + dy^2).
func (o CoordOffset) EuclideanDistance() float64 {
	return math.Sqrt(float64(o.DeltaX*o.DeltaX + o.DeltaY*o.DeltaY))
}

// ManhattanDistance returns |dx| + |dy|.
func (o CoordOffset) ManhattanDistance() int {
	return absInt(o.DeltaX) + absInt(o.DeltaY)
}

// ChebyshevDistance returns max(|dx|, |dy|).
func (o CoordOffset) ChebyshevDistance() int {
	return max(absInt(o.DeltaX), absInt(o.DeltaY))
}

// ReplicationID is an XOR-derived multicast mask over core coordinates.
// Each set bit doubles the multicast group along that axis.
type ReplicationID struct {
	X int
	Y int
}

// And intersects two replication IDs.
func (r ReplicationID) And(other ReplicationID) ReplicationID {
	return ReplicationID{X: r.X & other.X, Y: r.Y & other.Y}
}

// Or unions two replication IDs.
func (r ReplicationID) Or(other ReplicationID) ReplicationID {
	return ReplicationID{X: r.X | other.X, Y: r.Y | other.Y}
}

// Xor folds another ID into r.
func (r ReplicationID) Xor(other ReplicationID) ReplicationID {
	return ReplicationID{X: r.X ^ other.X, Y: r.Y ^ other.Y}
}

// String renders the ID as "(x, y)".
func (r ReplicationID) String() string {
	return fmt.Sprintf("(%d, %d)", r.X, r.Y)
}

// ReplicationIDOf derives the replication ID covering all given coordinates.
// The first coordinate is the multicast base.
func ReplicationIDOf(coords ...Coord) (ReplicationID, error) {
	if len(coords) == 0 {
		return ReplicationID{}, errors.New("at least one coordinate required")
	}

	base := coords[0]
	rid := ReplicationID{}
	for _, c := range coords[1:] {
		rid = rid.Or(base.Xor(c))
	}
	return rid, nil
}

// MulticastCoords expands a base coordinate and replication ID into the full
// set of cores the router will deliver to.
func MulticastCoords(base Coord, rid ReplicationID) []Coord {
	xs := expandAxis(base.X, rid.X)
	ys := expandAxis(base.Y, rid.Y)

	coords := make([]Coord, 0, len(xs)*len(ys))
	for _, x := range xs {
		for _, y := range ys {
			coords = append(coords, Coord{X: x, Y: y})
		}
	}
	return coords
}

// expandAxis doubles the component set once per set mask bit.
func expandAxis(component, mask int) []int {
	set := []int{component}
	for bit := 0; bit < NBitCoreX; bit++ {
		if mask>>bit&1 == 0 {
			continue
		}
		doubled := make([]int, 0, 2*len(set))
		for _, v := range set {
			doubled = append(doubled, v, v^(1<<bit))
		}
		set = doubled
	}
	return set
}

// sumCarry normalizes an out-of-range X by carrying into Y.
func sumCarry(cx, cy int) (int, int, error) {
	const xRange = CoreXMax + 1

	switch {
	case cx > CoreXMax:
		if cy >= CoreYMax {
			return 0, 0, fmt.Errorf("%w: Y carry above %d", ErrCoordOutOfRange, CoreYMax)
		}
		cx -= xRange
		cy++
	case cx < 0:
		if cy <= 0 {
			return 0, 0, fmt.Errorf("%w: Y carry below 0", ErrCoordOutOfRange)
		}
		cx += xRange
		cy--
	}

	if cy < 0 || cy > CoreYMax {
		return 0, 0, fmt.Errorf("%w: Y = %d", ErrCoordOutOfRange, cy)
	}
	return cx, cy, nil
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
