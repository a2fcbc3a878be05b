package hw

import (
	"errors"
	"testing"
)

func TestNewCoordBounds(t *testing.T) {
	tests := []struct {
		name    string
		x, y    int
		wantErr bool
	}{
		{name: "origin", x: 0, y: 0},
		{name: "max corner", x: 31, y: 31},
		{name: "negative x", x: -1, y: 1, wantErr: true},
		{name: "x too large", x: 32, y: 0, wantErr: true},
		{name: "y too large", x: 0, y: 32, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewCoord(tt.x, tt.y)
			if tt.wantErr {
				if !errors.Is(err, ErrCoordOutOfRange) {
					t.Fatalf("NewCoord(%d, %d) = %v, want ErrCoordOutOfRange", tt.x, tt.y, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("NewCoord(%d, %d) failed: %v", tt.x, tt.y, err)
			}
		})
	}
}

func TestCoordAddress(t *testing.T) {
	c := Coord{X: 12, Y: 13}
	if got := c.Address(); got != 12<<5|13 {
		t.Fatalf("Address() = %d, want %d", got, 12<<5|13)
	}

	back, err := CoordFromAddr(c.Address())
	if err != nil {
		t.Fatalf("CoordFromAddr failed: %v", err)
	}
	if back != c {
		t.Fatalf("round-trip = %v, want %v", back, c)
	}

	if _, err := CoordFromAddr(1 << 10); !errors.Is(err, ErrCoordOutOfRange) {
		t.Fatalf("CoordFromAddr(1024) = %v, want ErrCoordOutOfRange", err)
	}
}

func TestCoordAddCarry(t *testing.T) {
	tests := []struct {
		name    string
		start   Coord
		off     CoordOffset
		want    Coord
		wantErr bool
	}{
		{name: "plain", start: Coord{12, 13}, off: CoordOffset{1, -2}, want: Coord{13, 11}},
		{name: "carry up", start: Coord{12, 13}, off: CoordOffset{21, 2}, want: Coord{1, 16}},
		{name: "carry down", start: Coord{12, 13}, off: CoordOffset{-13, 2}, want: Coord{31, 14}},
		{name: "overflow y", start: Coord{30, 30}, off: CoordOffset{12, 1}, wantErr: true},
		{name: "underflow y", start: Coord{30, 30}, off: CoordOffset{2, -32}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.start.Add(tt.off)
			if tt.wantErr {
				if !errors.Is(err, ErrCoordOutOfRange) {
					t.Fatalf("Add = %v, want ErrCoordOutOfRange", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Add failed: %v", err)
			}
			if got != tt.want {
				t.Fatalf("Add = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCoordSub(t *testing.T) {
	got := Coord{12, 13}.Sub(Coord{10, 20})
	want := CoordOffset{DeltaX: 2, DeltaY: -7}
	if got != want {
		t.Fatalf("Sub = %v, want %v", got, want)
	}
}

func TestCoordOffsetDistances(t *testing.T) {
	o := CoordOffset{DeltaX: 3, DeltaY: -4}
	if d := o.EuclideanDistance(); d != 5 {
		t.Fatalf("EuclideanDistance = %v, want 5", d)
	}
	if d := o.ManhattanDistance(); d != 7 {
		t.Fatalf("ManhattanDistance = %d, want 7", d)
	}
	if d := o.ChebyshevDistance(); d != 4 {
		t.Fatalf("ChebyshevDistance = %d, want 4", d)
	}
}

func TestCoordIsOnline(t *testing.T) {
	if (Coord{X: 27, Y: 31}).IsOnline() {
		t.Fatal("(27, 31) must be offline")
	}
	if !(Coord{X: 28, Y: 28}).IsOnline() {
		t.Fatal("(28, 28) must be online")
	}
}

func TestReplicationIDOf(t *testing.T) {
	tests := []struct {
		name   string
		coords []Coord
		want   ReplicationID
	}{
		{
			name:   "adjacent pair plus diagonal",
			coords: []Coord{{0b00000, 0b00000}, {0b00001, 0b00000}, {0b00001, 0b00001}},
			want:   ReplicationID{X: 0b00001, Y: 0b00001},
		},
		{
			name:   "opposite corners",
			coords: []Coord{{0b11111, 0b11111}, {0b00000, 0b00000}},
			want:   ReplicationID{X: 0b11111, Y: 0b11111},
		},
		{
			name:   "duplicate member",
			coords: []Coord{{0b10000, 0b10000}, {0b00001, 0b10000}, {0b00001, 0b10000}},
			want:   ReplicationID{X: 0b10001, Y: 0b00000},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ReplicationIDOf(tt.coords...)
			if err != nil {
				t.Fatalf("ReplicationIDOf failed: %v", err)
			}
			if got != tt.want {
				t.Fatalf("ReplicationIDOf = %v, want %v", got, tt.want)
			}
		})
	}

	if _, err := ReplicationIDOf(); err == nil {
		t.Fatal("ReplicationIDOf() with no coords must fail")
	}
}

func TestMulticastCoordsLength(t *testing.T) {
	tests := []struct {
		base Coord
		rid  ReplicationID
		num  int
	}{
		{Coord{0b00110, 0b01000}, ReplicationID{0b11100, 0b00000}, 8},
		{Coord{0b00001, 0b00000}, ReplicationID{0b00011, 0b00001}, 8},
		{Coord{0b11111, 0b00000}, ReplicationID{0b01001, 0b00011}, 16},
		{Coord{0b00000, 0b00000}, ReplicationID{0b00001, 0b00010}, 4},
		{Coord{0b00010, 0b00111}, ReplicationID{0b00000, 0b00000}, 1},
		{Coord{0b11111, 0b00111}, ReplicationID{0b00001, 0b00000}, 2},
		{Coord{0b10010, 0b10011}, ReplicationID{0b11111, 0b11111}, 1024},
		{Coord{0b11111, 0b11111}, ReplicationID{0b00011, 0b11100}, 32},
	}

	for _, tt := range tests {
		if got := len(MulticastCoords(tt.base, tt.rid)); got != tt.num {
			t.Errorf("MulticastCoords(%v, %v) has %d members, want %d", tt.base, tt.rid, got, tt.num)
		}
	}
}

func TestMulticastCoordsMembers(t *testing.T) {
	got := MulticastCoords(Coord{0b00000, 0b00000}, ReplicationID{0b00001, 0b00010})

	want := map[Coord]bool{
		{0b00000, 0b00000}: true,
		{0b00001, 0b00000}: true,
		{0b00000, 0b00010}: true,
		{0b00001, 0b00010}: true,
	}
	if len(got) != len(want) {
		t.Fatalf("got %d members, want %d", len(got), len(want))
	}
	for _, c := range got {
		if !want[c] {
			t.Fatalf("unexpected member %v", c)
		}
	}
}
