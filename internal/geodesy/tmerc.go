package geodesy

import "math"

// TransverseMercator holds the defining parameters of a transverse
// Mercator projection on a given ellipsoid.
type TransverseMercator struct {
	Ellipsoid Ellipsoid
	Lat0      float64 // latitude of origin, degrees
	Lon0      float64 // central meridian, degrees
	K0        float64 // scale factor at the central meridian
	FalseE    float64 // false easting, meters
	FalseN    float64 // false northing, meters

	m0 float64 // meridional arc at Lat0, cached
}

// NewTransverseMercator builds a projection and caches the meridional arc
// at the latitude of origin.
func NewTransverseMercator(ell Ellipsoid, lat0, lon0, k0, falseE, falseN float64) *TransverseMercator {
	tm := &TransverseMercator{
		Ellipsoid: ell,
		Lat0:      lat0,
		Lon0:      lon0,
		K0:        k0,
		FalseE:    falseE,
		FalseN:    falseN,
	}
	tm.m0 = ell.meridionalArc(radians(lat0))
	return tm
}

// Forward projects geodetic lon/lat (degrees, on the projection's own
// ellipsoid) to easting/northing in meters.
//
// Uses the Snyder/Redfearn series (Map Projections: A Working Manual,
// eqs. 8-9 to 8-15), accurate to well under a millimeter within a UTM
// zone width.
func (tm *TransverseMercator) Forward(lon, lat float64) (easting, northing float64) {
	ep2 := tm.Ellipsoid.ep2

	phi := radians(lat)
	sin, cos := math.Sincos(phi)
	tan := sin / cos

	n := tm.Ellipsoid.primeVerticalRadius(phi)
	t := tan * tan
	c := ep2 * cos * cos
	a := cos * radians(lon-tm.Lon0)

	a2 := a * a
	a3 := a2 * a
	a4 := a2 * a2
	a5 := a4 * a
	a6 := a4 * a2

	m := tm.Ellipsoid.meridionalArc(phi)

	easting = tm.K0*n*(a+(1-t+c)*a3/6+
		(5-18*t+t*t+72*c-58*ep2)*a5/120) + tm.FalseE
	northing = tm.K0*(m-tm.m0+n*tan*(a2/2+
		(5-t+9*c+4*c*c)*a4/24+
		(61-58*t+t*t+600*c-330*ep2)*a6/720)) + tm.FalseN

	return easting, northing
}

// Inverse converts easting/northing in meters back to geodetic lon/lat
// in degrees on the projection's ellipsoid.
func (tm *TransverseMercator) Inverse(easting, northing float64) (lon, lat float64) {
	e2 := tm.Ellipsoid.e2
	ep2 := tm.Ellipsoid.ep2
	a := tm.Ellipsoid.A

	// Footpoint latitude from the rectified meridional arc.
	m := tm.m0 + (northing-tm.FalseN)/tm.K0
	mu := m / (a * (1 - e2/4 - 3*e2*e2/64 - 5*e2*e2*e2/256))

	sqrt1e2 := math.Sqrt(1 - e2)
	e1 := (1 - sqrt1e2) / (1 + sqrt1e2)
	e1sq := e1 * e1

	phi1 := mu +
		(3*e1/2-27*e1*e1sq/32)*math.Sin(2*mu) +
		(21*e1sq/16-55*e1sq*e1sq/32)*math.Sin(4*mu) +
		(151*e1*e1sq/96)*math.Sin(6*mu) +
		(1097*e1sq*e1sq/512)*math.Sin(8*mu)

	sin1, cos1 := math.Sincos(phi1)
	tan1 := sin1 / cos1

	n1 := tm.Ellipsoid.primeVerticalRadius(phi1)
	r1 := a * (1 - e2) / math.Pow(1-e2*sin1*sin1, 1.5)
	t1 := tan1 * tan1
	c1 := ep2 * cos1 * cos1
	d := (easting - tm.FalseE) / (n1 * tm.K0)

	d2 := d * d
	d3 := d2 * d
	d4 := d2 * d2
	d5 := d4 * d
	d6 := d4 * d2

	phi := phi1 - (n1*tan1/r1)*(d2/2-
		(5+3*t1+10*c1-4*c1*c1-9*ep2)*d4/24 +
		(61+90*t1+298*c1+45*t1*t1-252*ep2-3*c1*c1)*d6/720)
	lam := radians(tm.Lon0) + (d-(1+2*t1+c1)*d3/6+
		(5-2*c1+28*t1-3*c1*c1+8*ep2+24*t1*t1)*d5/120)/cos1

	return degrees(lam), degrees(phi)
}

// meridionalArc returns the distance along the meridian from the equator
// to latitude phi (radians), per Snyder eq. 3-21.
func (e Ellipsoid) meridionalArc(phi float64) float64 {
	e2 := e.e2
	e4 := e2 * e2
	e6 := e4 * e2
	return e.A * ((1-e2/4-3*e4/64-5*e6/256)*phi -
		(3*e2/8+3*e4/32+45*e6/1024)*math.Sin(2*phi) +
		(15*e4/256+45*e6/1024)*math.Sin(4*phi) -
		(35*e6/3072)*math.Sin(6*phi))
}

func radians(deg float64) float64 { return deg * math.Pi / 180 }
func degrees(rad float64) float64 { return rad * 180 / math.Pi }
