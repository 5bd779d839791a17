package phys

import (
	"math"
	"testing"

	"github.com/mmkrusniak/yale22-uav-diversity/internal/geom"
)

func TestRouteToDefaultAltitude(t *testing.T) {
	r := NewRouteTo(geom.Pt(1, 2), Gains{KP: 0.008})
	if got := r.Target().Z(); got != defaultAltitude {
		t.Errorf("target altitude = %v, want %v", got, defaultAltitude)
	}
	r = NewRouteTo(geom.Pt(1, 2, 30), Gains{KP: 0.008})
	if got := r.Target().Z(); got != 30 {
		t.Errorf("explicit target altitude = %v, want 30", got)
	}
}

func TestRouteToAcceleration(t *testing.T) {
	ms := MotionFrom(geom.Pt(0, 0, 50), 3, 0.0461)

	// Far away the squared-distance demand saturates the 20 m/s² cap.
	far := NewRouteTo(geom.Pt(100, 0, 50), Gains{KP: 0.008})
	far.Apply(ms, 0.2)
	if got := ms.AccX(); math.Abs(got-20) > 1e-9 {
		t.Errorf("accX toward far target = %v, want 20", got)
	}
	if got := ms.AccY(); math.Abs(got) > 1e-9 {
		t.Errorf("accY toward target on +x axis = %v, want 0", got)
	}

	// Close in the demand falls below the cap: kp * 5² = 0.2.
	near := NewRouteTo(geom.Pt(5, 0, 50), Gains{KP: 0.008})
	near.Apply(ms, 0.2)
	if got := ms.AccX(); math.Abs(got-0.2) > 1e-9 {
		t.Errorf("accX toward near target = %v, want 0.2", got)
	}

	// The demand points along the bearing to the target.
	diag := NewRouteTo(geom.Pt(100, 100, 50), Gains{KP: 0.008})
	diag.Apply(ms, 0.2)
	if dir := math.Atan2(ms.AccY(), ms.AccX()); math.Abs(dir-math.Pi/4) > 1e-9 {
		t.Errorf("acceleration direction = %v, want pi/4", dir)
	}
}

func TestAltitudeRamp(t *testing.T) {
	cases := []struct {
		name     string
		z        float64
		targetZ  float64
		wantVelZ float64
	}{
		{"climb far", 30, 50, 2},
		{"climb close", 49, 50, 1},
		{"descend far", 80, 50, -2},
		{"descend close", 50.8, 50, -0.8},
		{"within deadband above", 50.4, 50, 0},
		{"within deadband below", 49.6, 50, 0},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			ms := MotionFrom(geom.Pt(0, 0, c.z), 3, 0.0461)
			r := NewRouteTo(geom.Pt(10, 0, c.targetZ), Gains{KP: 0.008})
			r.Apply(ms, 0.2)
			if got := ms.VelZ(); math.Abs(got-c.wantVelZ) > 1e-9 {
				t.Errorf("velZ = %v, want %v", got, c.wantVelZ)
			}
		})
	}
}

func TestRouteThrough(t *testing.T) {
	ms := MotionFrom(geom.Pt(0, 0, 50), 3, 0.0461)
	r := NewRouteThrough(geom.Pt(0, 30, 50))
	r.Apply(ms, 0.2)
	if got := ms.AccY(); math.Abs(got-20) > 1e-9 {
		t.Errorf("accY = %v, want full 20 toward target below", got)
	}
	if got := ms.AccX(); math.Abs(got) > 1e-9 {
		t.Errorf("accX = %v, want 0", got)
	}

	// No slowing on approach: demand is the same a meter out.
	ms2 := MotionFrom(geom.Pt(0, 29, 50), 3, 0.0461)
	r.Apply(ms2, 0.2)
	if got := ms2.AccY(); math.Abs(got-20) > 1e-9 {
		t.Errorf("accY close to target = %v, want 20", got)
	}
}

func TestRouteHead(t *testing.T) {
	ms := MotionFrom(geom.Pt(0, 0, 50), 3, 0.0461)
	r := NewRouteHead(math.Pi / 3)
	if r.Target() != nil {
		t.Fatal("heading route should have no target")
	}
	r.Apply(ms, 0.2)
	if got := ms.Heading(); got != math.Pi/3 {
		t.Errorf("heading = %v, want pi/3", got)
	}
	if ms.AccX() != 0 || ms.AccY() != 0 {
		t.Error("heading route should not touch acceleration")
	}
}
