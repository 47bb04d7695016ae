package geodesy

import "math"

// DatumShift is a 3-parameter geocentric translation from a local datum
// to WGS84 (the towgs84 convention: X_wgs = X_local + DX).
type DatumShift struct {
	DX, DY, DZ float64
}

// ToWGS84 shifts geodetic lon/lat (degrees) on the local ellipsoid to
// WGS84 lon/lat, going through geocentric cartesian coordinates at
// ellipsoid height zero.
func (d DatumShift) ToWGS84(local Ellipsoid, lon, lat float64) (float64, float64) {
	x, y, z := geodeticToGeocentric(local, lon, lat)
	return geocentricToGeodetic(WGS84, x+d.DX, y+d.DY, z+d.DZ)
}

// FromWGS84 shifts WGS84 lon/lat (degrees) onto the local ellipsoid.
func (d DatumShift) FromWGS84(local Ellipsoid, lon, lat float64) (float64, float64) {
	x, y, z := geodeticToGeocentric(WGS84, lon, lat)
	return geocentricToGeodetic(local, x-d.DX, y-d.DY, z-d.DZ)
}

// geodeticToGeocentric converts lon/lat degrees at height zero to
// earth-centered cartesian meters.
func geodeticToGeocentric(ell Ellipsoid, lon, lat float64) (x, y, z float64) {
	phi := radians(lat)
	lam := radians(lon)
	sinPhi, cosPhi := math.Sincos(phi)
	n := ell.primeVerticalRadius(phi)
	x = n * cosPhi * math.Cos(lam)
	y = n * cosPhi * math.Sin(lam)
	z = n * (1 - ell.e2) * sinPhi
	return x, y, z
}

// geocentricToGeodetic converts earth-centered cartesian meters to
// lon/lat degrees by fixed-point iteration on the latitude. Ten rounds
// converge far below a millimeter for points near the surface.
func geocentricToGeodetic(ell Ellipsoid, x, y, z float64) (lon, lat float64) {
	lam := math.Atan2(y, x)
	p := math.Hypot(x, y)
	phi := math.Atan2(z, p*(1-ell.e2))
	for i := 0; i < 10; i++ {
		n := ell.primeVerticalRadius(phi)
		h := p/math.Cos(phi) - n
		phi = math.Atan2(z, p*(1-ell.e2*n/(n+h)))
	}
	return degrees(lam), degrees(phi)
}
