package matching

import (
	"math"
	"testing"
)

func TestDistanceKm(t *testing.T) {
	tests := []struct {
		name       string
		lat1, lon1 float64
		lat2, lon2 float64
		wantKm     float64
		tolerance  float64
	}{
		{
			name: "same point",
			lat1: 45.4642, lon1: 9.1900,
			lat2: 45.4642, lon2: 9.1900,
			wantKm:    0,
			tolerance: 0.001,
		},
		{
			name: "one degree of latitude",
			lat1: 45.0, lon1: 9.0,
			lat2: 46.0, lon2: 9.0,
			wantKm:    111.19,
			tolerance: 0.5,
		},
		{
			name: "milan to turin",
			lat1: 45.4642, lon1: 9.1900,
			lat2: 45.0703, lon2: 7.6869,
			wantKm:    125.6,
			tolerance: 1.5,
		},
		{
			name: "paris to london",
			lat1: 48.8566, lon1: 2.3522,
			lat2: 51.5074, lon2: -0.1278,
			wantKm:    343.5,
			tolerance: 2.0,
		},
		{
			name: "across the equator",
			lat1: -0.5, lon1: 0,
			lat2: 0.5, lon2: 0,
			wantKm:    111.19,
			tolerance: 0.5,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DistanceKm(tt.lat1, tt.lon1, tt.lat2, tt.lon2)
			if math.Abs(got-tt.wantKm) > tt.tolerance {
				t.Errorf("DistanceKm() = %.2f, want %.2f +/- %.2f", got, tt.wantKm, tt.tolerance)
			}
		})
	}
}

func TestDistanceKmSymmetric(t *testing.T) {
	pairs := [][4]float64{
		{45.4642, 9.1900, 41.9028, 12.4964},
		{48.8566, 2.3522, 51.5074, -0.1278},
		{-33.8688, 151.2093, 35.6762, 139.6503},
	}

	for _, p := range pairs {
		forward := DistanceKm(p[0], p[1], p[2], p[3])
		backward := DistanceKm(p[2], p[3], p[0], p[1])
		if math.Abs(forward-backward) > 1e-9 {
			t.Errorf("DistanceKm not symmetric: %.9f vs %.9f", forward, backward)
		}
	}
}

func TestRoundKm(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{0, 0},
		{3.14, 3.1},
		{3.16, 3.2},
		{12.349, 12.3},
		{99.96, 100},
	}

	for _, tt := range tests {
		if got := roundKm(tt.in); got != tt.want {
			t.Errorf("roundKm(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
