package engine

import "testing"

func TestColorFromString(t *testing.T) {
	for _, tc := range []struct {
		in   string
		want color
		ok   bool
	}{
		{"#fff", color{a: 255, r: 255, g: 255, b: 255}, true},
		{"#000", color{a: 255, r: 0, g: 0, b: 0}, true},
		{"#ff8800", color{a: 255, r: 255, g: 136, b: 0}, true},
		{"#80ff8800", color{a: 128, r: 255, g: 136, b: 0}, true},
		{"#zzz", color{}, false},
		{"#12", color{}, false},
	} {
		got, ok := colorFromString(tc.in)
		if ok != tc.ok {
			t.Errorf("colorFromString(%q) ok = %v, want %v", tc.in, ok, tc.ok)
			continue
		}
		if ok && got != tc.want {
			t.Errorf("colorFromString(%q) = %+v, want %+v", tc.in, got, tc.want)
		}
	}
}

func TestColorPackARGBRoundTrip(t *testing.T) {
	c := color{a: 0x12, r: 0x34, g: 0x56, b: 0x78}
	packed := c.packARGB()
	if want := uint32(0x12345678); packed != want {
		t.Fatalf("packARGB() = %#x, want %#x", packed, want)
	}

	back := colorFromARGBUint(float64(packed))
	if back != c {
		t.Errorf("colorFromARGBUint(packARGB(c)) = %+v, want %+v", back, c)
	}
}

func TestColorInterpolateEndpoints(t *testing.T) {
	a := color{a: 255, r: 0, g: 0, b: 0}
	b := color{a: 255, r: 200, g: 100, b: 50}

	if got := colorInterpolate(a, b, 0); got != a {
		t.Errorf("colorInterpolate(a, b, 0) = %+v, want %+v", got, a)
	}
	if got := colorInterpolate(a, b, 1); got != b {
		t.Errorf("colorInterpolate(a, b, 1) = %+v, want %+v", got, b)
	}
}

func TestClampChannel(t *testing.T) {
	for _, tc := range []struct {
		in   float64
		want uint8
	}{
		{-10, 0},
		{0, 0},
		{128, 128},
		{255, 255},
		{400, 255},
	} {
		if got := clampChannel(tc.in); got != tc.want {
			t.Errorf("clampChannel(%v) = %d, want %d", tc.in, got, tc.want)
		}
	}
}
