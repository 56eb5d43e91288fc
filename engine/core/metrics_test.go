package core

import (
	"math"
	"testing"
)

func TestMetricsFrameTimeAverage(t *testing.T) {
	if err := MetricsInitialize(); err != nil {
		t.Fatalf("failed to initialize metrics: %s", err)
	}
	metricsState = &MetricsState{}

	// A full averaging window of 16ms frames.
	for i := uint8(0); i < AVG_COUNT; i++ {
		MetricsUpdate(0.016)
	}
	if got := MetricsFrameTime(); math.Abs(got-16.0) > 1e-6 {
		t.Errorf("expected 16ms average, got %f", got)
	}
}

func TestMetricsFPS(t *testing.T) {
	if err := MetricsInitialize(); err != nil {
		t.Fatalf("failed to initialize metrics: %s", err)
	}
	metricsState = &MetricsState{}

	// 60 frames of ~16.7ms cross the one-second accumulator.
	for i := 0; i < 61; i++ {
		MetricsUpdate(1.0 / 60.0)
	}
	fps, _ := MetricsFrame()
	if fps < 59 || fps > 61 {
		t.Errorf("expected roughly 60 fps, got %f", fps)
	}
}
