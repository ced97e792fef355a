package geom

import (
	"math"
	"testing"
)

func near(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func TestWrapAngle(t *testing.T) {
	cases := []struct {
		in, want float64
	}{
		{0, 0},
		{math.Pi, math.Pi},
		{-math.Pi, math.Pi},
		{math.Pi / 2, math.Pi / 2},
		{3 * math.Pi / 2, -math.Pi / 2},
		{-3 * math.Pi / 2, math.Pi / 2},
		{2 * math.Pi, 0},
		{-7 * math.Pi / 4, math.Pi / 4},
	}
	for _, tc := range cases {
		got := WrapAngle(tc.in)
		if !near(got, tc.want) {
			t.Errorf("WrapAngle(%v) = %v, want %v", tc.in, got, tc.want)
		}
		if got <= -math.Pi || got > math.Pi {
			t.Errorf("WrapAngle(%v) = %v out of (-pi, pi]", tc.in, got)
		}
	}
}

func TestTowardsTakesShortestArc(t *testing.T) {
	deg := func(d float64) Yaw { return Yaw(d * math.Pi / 180) }
	cases := []struct {
		from, to Yaw
		t        float64
		want     Yaw
	}{
		{deg(0), deg(90), 0.5, deg(45)},
		{deg(170), deg(-170), 0.5, deg(180)}, // across +-pi, not through 0
		{deg(-170), deg(170), 0.5, deg(180)},
		{deg(10), deg(-10), 0.5, deg(0)},
		{deg(30), deg(90), 0, deg(30)},
		{deg(30), deg(90), 1, deg(90)},
		{deg(30), deg(90), 2, deg(90)}, // t clamps
		{deg(30), deg(90), -1, deg(30)},
	}
	for _, tc := range cases {
		got := tc.from.Towards(tc.to, tc.t)
		if d := WrapAngle(float64(got - tc.want)); math.Abs(d) > 1e-9 {
			t.Errorf("%.1f towards %.1f at %v = %.4f deg, want %.4f",
				tc.from.Degrees(), tc.to.Degrees(), tc.t, got.Degrees(), tc.want.Degrees())
		}
	}
}

func TestLookYaw(t *testing.T) {
	cases := []struct {
		dir  Vec3
		want Yaw
		ok   bool
	}{
		{V(0, 0, 1), 0, true},
		{V(1, 0, 0), math.Pi / 2, true},
		{V(0, 0, -2), math.Pi, true},
		{V(-1, 3, 0), -math.Pi / 2, true}, // height ignored
		{V(0, 5, 0), 0, false},
	}
	for _, tc := range cases {
		got, ok := LookYaw(tc.dir)
		if ok != tc.ok || !near(float64(got), float64(tc.want)) {
			t.Errorf("LookYaw(%v) = %v, %v", tc.dir, got, ok)
		}
		if ok {
			f := got.Forward()
			if f.Dist(tc.dir.Flat().Norm()) > 1e-9 {
				t.Errorf("Forward(%v) = %v", got, f)
			}
		}
	}
}

func TestSmoothDampNeverOvershoots(t *testing.T) {
	cases := []struct {
		name             string
		from, to         float64
		smoothTime, step float64
	}{
		{"up", 0, 10, 0.3, 1.0 / 60},
		{"down", 10, -5, 0.3, 1.0 / 60},
		{"coarse step", 0, 1, 0.05, 0.5},
		{"tiny smooth time", 3, 4, 0, 1.0 / 60},
	}
	for _, tc := range cases {
		cur, vel := tc.from, 0.0
		up := tc.to > tc.from
		for i := 0; i < 600; i++ {
			cur = SmoothDamp(cur, tc.to, &vel, tc.smoothTime, tc.step)
			if (up && cur > tc.to) || (!up && cur < tc.to) {
				t.Fatalf("%s: overshot to %v at step %d", tc.name, cur, i)
			}
		}
		if math.Abs(cur-tc.to) > 1e-3 {
			t.Errorf("%s: settled at %v, want %v", tc.name, cur, tc.to)
		}
	}
}

func TestSmoothDampZeroStep(t *testing.T) {
	vel := 2.0
	if got := SmoothDamp(1, 5, &vel, 0.3, 0); got != 1 || vel != 2 {
		t.Errorf("got %v vel %v", got, vel)
	}
}

func TestMoveTowards(t *testing.T) {
	cases := []struct {
		cur, target Vec3
		max         float64
		want        Vec3
	}{
		{V(0, 0, 0), V(10, 0, 0), 3, V(3, 0, 0)},
		{V(0, 0, 0), V(10, 0, 0), 20, V(10, 0, 0)},
		{V(0, 0, 0), V(3, 0, 4), 2.5, V(1.5, 0, 2)},
		{V(1, 1, 1), V(1, 1, 1), 1, V(1, 1, 1)},
	}
	for _, tc := range cases {
		got := MoveTowards(tc.cur, tc.target, tc.max)
		if got.Dist(tc.want) > 1e-9 {
			t.Errorf("MoveTowards(%v, %v, %v) = %v, want %v", tc.cur, tc.target, tc.max, got, tc.want)
		}
	}
}

func TestClampLen(t *testing.T) {
	if got := V(3, 0, 4).ClampLen(2.5); got.Dist(V(1.5, 0, 2)) > 1e-9 {
		t.Errorf("ClampLen = %v", got)
	}
	if got := V(1, 0, 0).ClampLen(2); got != V(1, 0, 0) {
		t.Errorf("short vector changed: %v", got)
	}
}
