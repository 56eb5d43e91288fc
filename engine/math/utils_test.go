package math

import "testing"

func TestClamp(t *testing.T) {
	if got := Clamp(5, 1, 10); got != 5 {
		t.Errorf("Clamp(5,1,10) = %d", got)
	}
	if got := Clamp(-3, 1, 10); got != 1 {
		t.Errorf("Clamp(-3,1,10) = %d", got)
	}
	if got := Clamp(42, 1, 10); got != 10 {
		t.Errorf("Clamp(42,1,10) = %d", got)
	}
	if got := Clamp(uint32(700), uint32(1), uint32(4096)); got != 700 {
		t.Errorf("Clamp(700,1,4096) = %d", got)
	}
	if got := Clamp(1.5, 0.0, 1.0); got != 1.0 {
		t.Errorf("Clamp(1.5,0,1) = %f", got)
	}
}

func TestMipLevels(t *testing.T) {
	cases := []struct {
		w, h, want uint32
	}{
		{1, 1, 1},
		{2, 2, 2},
		{512, 512, 10},
		{1024, 512, 11},
		{800, 600, 10},
	}
	for _, c := range cases {
		if got := MipLevels(c.w, c.h); got != c.want {
			t.Errorf("MipLevels(%d,%d) = %d, want %d", c.w, c.h, got, c.want)
		}
	}
}
