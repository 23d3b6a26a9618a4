package spatial

import (
	"math"
	"testing"
)

func TestHaversineDistance(t *testing.T) {
	tests := []struct {
		name                   string
		lat1, lon1, lat2, lon2 float64
		want                   float64
		tolerance              float64
	}{
		{
			name: "same point",
			lat1: -12.0464, lon1: -77.0428,
			lat2: -12.0464, lon2: -77.0428,
			want: 0, tolerance: 0.001,
		},
		{
			name: "lima to callao",
			lat1: -12.0464, lon1: -77.0428,
			lat2: -12.0566, lon2: -77.1181,
			want: 8270, tolerance: 100,
		},
		{
			name: "one degree of latitude",
			lat1: 0, lon1: 0,
			lat2: 1, lon2: 0,
			want: 111195, tolerance: 200,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := HaversineDistance(tt.lat1, tt.lon1, tt.lat2, tt.lon2)
			if math.Abs(got-tt.want) > tt.tolerance {
				t.Errorf("HaversineDistance = %f, want %f ± %f", got, tt.want, tt.tolerance)
			}
		})
	}
}

func TestPathDistance(t *testing.T) {
	if d := PathDistance(nil); d != 0 {
		t.Errorf("empty path distance = %f, want 0", d)
	}
	if d := PathDistance([]Point{{Lat: -12.04, Lon: -77.04}}); d != 0 {
		t.Errorf("single point distance = %f, want 0", d)
	}

	path := []Point{
		{Lat: 0, Lon: 0},
		{Lat: 0.5, Lon: 0},
		{Lat: 1, Lon: 0},
	}
	direct := HaversineDistance(0, 0, 1, 0)
	if d := PathDistance(path); math.Abs(d-direct) > 1 {
		t.Errorf("segmented path distance = %f, want %f", d, direct)
	}
}
