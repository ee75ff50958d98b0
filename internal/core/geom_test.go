package core

import "testing"

func TestPointAdd(t *testing.T) {
	tests := []struct {
		name string
		p    Point
		d    Direction
		want Point
	}{
		{"up", Point{5, 5}, DirUp, Point{5, 4}},
		{"down", Point{5, 5}, DirDown, Point{5, 6}},
		{"left", Point{5, 5}, DirLeft, Point{4, 5}},
		{"right", Point{5, 5}, DirRight, Point{6, 5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.p.Add(tt.d); got != tt.want {
				t.Errorf("Add(%v) = %v, want %v", tt.d, got, tt.want)
			}
		})
	}
}

func TestManhattan(t *testing.T) {
	tests := []struct {
		p, q Point
		want int
	}{
		{Point{0, 0}, Point{0, 0}, 0},
		{Point{1, 1}, Point{4, 5}, 7},
		{Point{4, 5}, Point{1, 1}, 7},
		{Point{-2, 3}, Point{2, -3}, 10},
	}

	for _, tt := range tests {
		if got := tt.p.Manhattan(tt.q); got != tt.want {
			t.Errorf("Manhattan(%v, %v) = %d, want %d", tt.p, tt.q, got, tt.want)
		}
	}
}

func TestOpposite(t *testing.T) {
	pairs := map[Direction]Direction{
		DirUp:    DirDown,
		DirDown:  DirUp,
		DirLeft:  DirRight,
		DirRight: DirLeft,
	}

	for d, want := range pairs {
		if got := d.Opposite(); got != want {
			t.Errorf("%v.Opposite() = %v, want %v", d, got, want)
		}
		// Opposite is an involution
		if got := d.Opposite().Opposite(); got != d {
			t.Errorf("%v.Opposite().Opposite() = %v", d, got)
		}
	}
}

func TestDirectionValid(t *testing.T) {
	for _, d := range Directions {
		if !d.Valid() {
			t.Errorf("%v should be valid", d)
		}
	}
	if Direction(-1).Valid() {
		t.Error("Direction(-1) should be invalid")
	}
	if Direction(4).Valid() {
		t.Error("Direction(4) should be invalid")
	}
}

func TestClamp(t *testing.T) {
	if got := Clamp(5, 0, 10); got != 5 {
		t.Errorf("Clamp(5, 0, 10) = %d", got)
	}
	if got := Clamp(-3, 0, 10); got != 0 {
		t.Errorf("Clamp(-3, 0, 10) = %d", got)
	}
	if got := Clamp(42, 0, 10); got != 10 {
		t.Errorf("Clamp(42, 0, 10) = %d", got)
	}
}

func TestMinMaxAbs(t *testing.T) {
	if Min(3, 7) != 3 || Min(7, 3) != 3 {
		t.Error("Min broken")
	}
	if Max(3, 7) != 7 || Max(7, 3) != 7 {
		t.Error("Max broken")
	}
	if Abs(-4) != 4 || Abs(4) != 4 {
		t.Error("Abs broken")
	}
}
