package crs

import "math"

// Metadata carries the derived quantities reported when the target of a
// transformation is a UTM zone.
type Metadata struct {
	Zone        string  `json:"zone"`
	Convergence float64 `json:"convergence"`
	ScaleFactor float64 `json:"scale_factor"`
}

// utmScaleK0 is the scale factor on the central meridian of every UTM zone.
const utmScaleK0 = 0.9996

// centralMeridians of the supported UTM zones, degrees.
var centralMeridians = map[string]float64{
	UTM30N: -3,
	UTM31N: 3,
}

// ZoneMetadata computes convergence and point scale factor for a WGS84
// point projected into the given UTM zone. Returns false when the
// target is not a UTM zone.
func ZoneMetadata(targetKey string, lon, lat float64) (Metadata, bool) {
	cm, ok := centralMeridians[targetKey]
	if !ok {
		return Metadata{}, false
	}
	return Metadata{
		Zone:        targetKey,
		Convergence: convergence(lat, lon, cm),
		ScaleFactor: scaleFactor(lat, lon, cm),
	}, true
}

// convergence returns the grid convergence angle in degrees: the angle
// between grid north and true north at the point.
func convergence(lat, lon, centralMeridian float64) float64 {
	latRad := radians(lat)
	deltaLon := lon - centralMeridian
	return degrees(math.Atan(math.Tan(radians(deltaLon)) * math.Sin(latRad)))
}

// scaleFactor returns the point scale factor of the UTM projection via
// a truncated series in the longitude offset. Good to a few parts in
// 1e8 within a zone width.
func scaleFactor(lat, lon, centralMeridian float64) float64 {
	const e2 = 0.00669438 // WGS84 first eccentricity squared

	latRad := radians(lat)
	deltaLonRad := radians(lon - centralMeridian)

	cos := math.Cos(latRad)
	t := math.Tan(latRad) * math.Tan(latRad)
	c := e2 * cos * cos / (1 - e2)
	aa := deltaLonRad * cos

	return utmScaleK0 * (1 + (1+c)*aa*aa/2 +
		(5-4*t+42*c+13*c*c-28*e2)*aa*aa*aa*aa/24)
}

func radians(deg float64) float64 { return deg * math.Pi / 180 }
func degrees(rad float64) float64 { return rad * 180 / math.Pi }
