package geom

import (
	"math"
	"testing"
)

func TestPointEqualTolerance(t *testing.T) {
	tests := []struct {
		name string
		p, q Point
		want bool
	}{
		{"identical", Pt(1, 2), Pt(1, 2), true},
		{"within granularity", Pt(1, 2), Pt(1.005, 1.995), true},
		{"x out of tolerance", Pt(1, 2), Pt(1.02, 2), false},
		{"y out of tolerance", Pt(1, 2), Pt(1, 2.02), false},
		{"altitude ignored", Pt(1, 2, 30), Pt(1, 2, 90), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.p.Equal(tt.q); got != tt.want {
				t.Errorf("Equal(%v, %v) = %v, want %v", tt.p, tt.q, got, tt.want)
			}
		})
	}
}

func TestPointBearing(t *testing.T) {
	tests := []struct {
		name string
		p, q Point
		want float64
	}{
		{"right", Pt(0, 0), Pt(1, 0), 0},
		{"down", Pt(0, 0), Pt(0, 1), math.Pi / 2},
		{"left", Pt(0, 0), Pt(-1, 0), math.Pi},
		{"up", Pt(0, 0), Pt(0, -1), 3 * math.Pi / 2},
		{"down-right diagonal", Pt(0, 0), Pt(1, 1), math.Pi / 4},
		{"up-left diagonal", Pt(0, 0), Pt(-1, -1), 5 * math.Pi / 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.p.Bearing(tt.q); math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("Bearing = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPointRotate(t *testing.T) {
	p := Pt(1, 0, 30).Rotate(math.Pi / 2)
	if math.Abs(p.X()) > 1e-9 || math.Abs(p.Y()-1) > 1e-9 {
		t.Errorf("Rotate(pi/2) = %v, want (0, 1)", p)
	}
	if p.Z() != 30 {
		t.Errorf("Rotate dropped altitude: z = %v, want 30", p.Z())
	}

	q := Pt(2, 1).RotateAbout(math.Pi, Pt(1, 1))
	if !q.Equal(Pt(0, 1)) {
		t.Errorf("RotateAbout(pi, (1,1)) = %v, want (0, 1)", q)
	}
}

func TestPointDistToLine(t *testing.T) {
	horizontal := Seg(Pt(0, 0), Pt(10, 0))
	tests := []struct {
		name string
		p    Point
		l    Line
		want float64
	}{
		{"above segment interior", Pt(5, 3), horizontal, 3},
		{"past segment end clamps", Pt(14, 3), horizontal, 5},
		{"past ray start clamps", Pt(-4, 3), NewLine(Pt(0, 0), Pt(10, 0), Ray), 5},
		{"past ray end extends", Pt(14, 3), NewLine(Pt(0, 0), Pt(10, 0), Ray), 3},
		{"infinite extends both ways", Pt(-4, 3), NewLine(Pt(0, 0), Pt(10, 0), Infinite), 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.p.DistToLine(tt.l); math.Abs(got-tt.want) > 1e-6 {
				t.Errorf("DistToLine = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPointExtend(t *testing.T) {
	p := Pt(1, 2).Extend(50)
	if p.Dim() != 3 || p.Z() != 50 {
		t.Errorf("Extend(50) = %v (dim %d), want (1, 2, 50)", p, p.Dim())
	}
	// Missing coordinates read as zero.
	if Pt(1, 2).Z() != 0 {
		t.Errorf("Z of 2D point = %v, want 0", Pt(1, 2).Z())
	}
}

func TestUtilHelpers(t *testing.T) {
	if got := Det([][]float64{{1, 2}, {3, 4}}); got != -2 {
		t.Errorf("Det = %v, want -2", got)
	}
	if got := Det([][]float64{{2, 0, 0}, {0, 3, 0}, {0, 0, 4}}); got != 24 {
		t.Errorf("Det 3x3 = %v, want 24", got)
	}
	if !Within(0, 10, 5) || Within(0, 10, 11) {
		t.Error("Within bounds check failed")
	}
	if !WithinTol(0, 10, 10.4, 0.5) {
		t.Error("WithinTol should accept values just past the bound")
	}
	if Constrain(15, 0, 10) != 10 || Constrain(-1, 0, 10) != 0 || Constrain(5, 0, 10) != 5 {
		t.Error("Constrain clamping failed")
	}
}
