package hw

import (
	"errors"
	"testing"
)

func TestRoutingConsumption(t *testing.T) {
	tests := []struct {
		nCores int
		want   RoutingCost
	}{
		{1, RoutingCost{1, 1, 1, 1, 1, 1}},
		{2, RoutingCost{2, 1, 1, 1, 1, 1}},
		{3, RoutingCost{4, 1, 1, 1, 1, 1}},
		{4, RoutingCost{4, 1, 1, 1, 1, 1}},
		{7, RoutingCost{8, 2, 1, 1, 1, 1}},
		{12, RoutingCost{16, 4, 1, 1, 1, 1}},
		{20, RoutingCost{32, 8, 2, 1, 1, 1}},
		{32, RoutingCost{32, 8, 2, 1, 1, 1}},
		{33, RoutingCost{64, 16, 4, 1, 1, 1}},
		{64, RoutingCost{64, 16, 4, 1, 1, 1}},
		{65, RoutingCost{128, 32, 8, 2, 1, 1}},
		{128, RoutingCost{128, 32, 8, 2, 1, 1}},
		{1023, RoutingCost{1024, 256, 64, 16, 4, 1}},
		{1024, RoutingCost{1024, 256, 64, 16, 4, 1}},
	}

	for _, tt := range tests {
		if got := RoutingConsumption(tt.nCores); got != tt.want {
			t.Errorf("RoutingConsumption(%d) = %+v, want %+v", tt.nCores, got, tt.want)
		}
	}
}

func TestRoutingCostLevel(t *testing.T) {
	lv, err := RoutingConsumption(20).Level()
	if err != nil {
		t.Fatalf("Level failed: %v", err)
	}
	if lv != RoutingL3 {
		t.Fatalf("Level = %v, want L3", lv)
	}

	lv, err = RoutingConsumption(1).Level()
	if err != nil {
		t.Fatalf("Level failed: %v", err)
	}
	if lv != RoutingL1 {
		t.Fatalf("Level = %v, want L1", lv)
	}

	if _, err := (RoutingCost{NL5: 2}).Level(); !errors.Is(err, ErrRoutingLevel) {
		t.Fatalf("Level with 2 L5 clusters = %v, want ErrRoutingLevel", err)
	}
}

func TestRoutingCoord(t *testing.T) {
	origin := RoutingCoord{
		DirectionX0Y0, DirectionX0Y0, DirectionX0Y0, DirectionX0Y0, DirectionX0Y0,
	}
	if lv := origin.Level(); lv != RoutingL0 {
		t.Fatalf("Level = %v, want L0", lv)
	}
	c, err := origin.Coord()
	if err != nil {
		t.Fatalf("Coord failed: %v", err)
	}
	if c != (Coord{0, 0}) {
		t.Fatalf("Coord = %v, want (0, 0)", c)
	}

	mixed := RoutingCoord{
		DirectionX0Y1, DirectionX1Y1, DirectionX0Y0, DirectionX0Y1, DirectionX0Y1,
	}
	c, err = mixed.Coord()
	if err != nil {
		t.Fatalf("Coord failed: %v", err)
	}
	if c != (Coord{0b01000, 0b11011}) {
		t.Fatalf("Coord = %v, want (0b01000, 0b11011)", c)
	}

	partial := RoutingCoord{
		DirectionX0Y0, DirectionX1Y1, DirectionX0Y0, DirectionAny, DirectionX0Y1,
	}
	if lv := partial.Level(); lv != RoutingL2 {
		t.Fatalf("Level = %v, want L2", lv)
	}
	if _, err := partial.Coord(); !errors.Is(err, ErrRoutingLevel) {
		t.Fatalf("Coord on L2 coordinate = %v, want ErrRoutingLevel", err)
	}

	top := RoutingCoord{
		DirectionAny, DirectionX1Y1, DirectionX0Y0, DirectionAny, DirectionX0Y1,
	}
	if lv := top.Level(); lv != RoutingL5 {
		t.Fatalf("Level = %v, want L5", lv)
	}
}

func TestRoutingPathForCores(t *testing.T) {
	// Core 0 sits at the X0Y0 corner at every level.
	rc := RoutingPathForCores(0)
	c, err := rc.Coord()
	if err != nil {
		t.Fatalf("Coord failed: %v", err)
	}
	if c != (Coord{0, 0}) {
		t.Fatalf("Coord = %v, want (0, 0)", c)
	}

	// Core 5 = base-4 digits 11: L1 and L0 both take the second child.
	rc = RoutingPathForCores(5)
	want := RoutingCoord{
		DirectionX0Y0, DirectionX0Y0, DirectionX0Y0, DirectionX0Y1, DirectionX0Y1,
	}
	if rc != want {
		t.Fatalf("RoutingPathForCores(5) = %v, want %v", rc, want)
	}
}

func TestRoutingDirectionIndex(t *testing.T) {
	tests := []struct {
		dir  RoutingDirection
		want int
	}{
		{DirectionX0Y0, 0},
		{DirectionX0Y1, 1},
		{DirectionX1Y0, 2},
		{DirectionX1Y1, 3},
	}
	for _, tt := range tests {
		got, err := tt.dir.Index()
		if err != nil {
			t.Fatalf("Index(%v) failed: %v", tt.dir, err)
		}
		if got != tt.want {
			t.Errorf("Index(%v) = %d, want %d", tt.dir, got, tt.want)
		}
	}

	if _, err := DirectionAny.Index(); !errors.Is(err, ErrRoutingUnspecified) {
		t.Fatalf("Index(ANY) = %v, want ErrRoutingUnspecified", err)
	}
}
