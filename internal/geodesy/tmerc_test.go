package geodesy

import (
	"math"
	"testing"
)

// utm30N and utm31N are the two UTM zones covering Ghana.
func utm30N() *TransverseMercator {
	return NewTransverseMercator(WGS84, 0, -3, 0.9996, 500000, 0)
}

func utm31N() *TransverseMercator {
	return NewTransverseMercator(WGS84, 0, 3, 0.9996, 500000, 0)
}

func TestTransverseMercatorForward(t *testing.T) {
	tests := []struct {
		name     string
		proj     *TransverseMercator
		lon, lat float64
		wantE    float64
		wantN    float64
	}{
		{
			name: "Accra UTM 30N",
			proj: utm30N(),
			lon:  -0.1870, lat: 5.6037,
			wantE: 811654.205308, wantN: 620144.518038,
		},
		{
			name: "Accra UTM 31N",
			proj: utm31N(),
			lon:  -0.1870, lat: 5.6037,
			wantE: 146870.314480, wantN: 620356.773003,
		},
		{
			name: "Kumasi UTM 30N",
			proj: utm30N(),
			lon:  -1.6244, lat: 6.6885,
			wantE: 652049.263980, wantN: 739526.465995,
		},
		{
			name: "central meridian on the equator",
			proj: utm30N(),
			lon:  -3, lat: 0,
			wantE: 500000, wantN: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, n := tt.proj.Forward(tt.lon, tt.lat)
			if math.Abs(e-tt.wantE) > 1e-3 || math.Abs(n-tt.wantN) > 1e-3 {
				t.Errorf("Forward(%v, %v) = (%.6f, %.6f), want (%.6f, %.6f)",
					tt.lon, tt.lat, e, n, tt.wantE, tt.wantN)
			}
		})
	}
}

func TestTransverseMercatorRoundTrip(t *testing.T) {
	proj := utm30N()

	// Sweep a grid covering Ghana and its surroundings. Round-trip error
	// must stay far below the 1 meter accuracy claim (1e-7 deg is ~1 cm).
	for lon := -5.5; lon <= 0.5; lon += 0.5 {
		for lat := 4.0; lat <= 11.5; lat += 0.5 {
			e, n := proj.Forward(lon, lat)
			gotLon, gotLat := proj.Inverse(e, n)
			if math.Abs(gotLon-lon) > 1e-7 || math.Abs(gotLat-lat) > 1e-7 {
				t.Fatalf("round trip (%v, %v) -> (%v, %v) drifted to (%v, %v)",
					lon, lat, e, n, gotLon, gotLat)
			}
		}
	}
}

func TestTransverseMercatorClarke1880(t *testing.T) {
	// Ghana national grid parameters on Clarke 1880; round trip only,
	// datum handling is exercised separately.
	proj := NewTransverseMercator(Clarke80, 4.666666666666667, -1, 0.99975, 274319.51, 0)

	e, n := proj.Forward(-0.18728296, 5.60123834)
	gotLon, gotLat := proj.Inverse(e, n)
	if math.Abs(gotLon+0.18728296) > 1e-7 || math.Abs(gotLat-5.60123834) > 1e-7 {
		t.Errorf("round trip drifted to (%v, %v)", gotLon, gotLat)
	}
}
