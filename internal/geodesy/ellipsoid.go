// Package geodesy implements the projection primitives behind the
// coordinate transformation service: ellipsoidal transverse Mercator
// forward/inverse, spherical Web Mercator, and geocentric datum shifts.
//
// Everything here is pure computation on float64 pairs. CRS selection,
// path composition, and derived metadata live in the crs package.
package geodesy

import "math"

// Ellipsoid describes a reference ellipsoid by its semi-major axis (meters)
// and inverse flattening. Derived eccentricity terms are precomputed because
// every projection formula needs them.
type Ellipsoid struct {
	Name string
	A    float64 // semi-major axis
	RF   float64 // inverse flattening 1/f

	e2  float64 // first eccentricity squared
	ep2 float64 // second eccentricity squared e'^2 = e^2/(1-e^2)
}

// NewEllipsoid precomputes eccentricity terms for the given axis and
// inverse flattening.
func NewEllipsoid(name string, a, rf float64) Ellipsoid {
	f := 1 / rf
	e2 := f * (2 - f)
	return Ellipsoid{
		Name: name,
		A:    a,
		RF:   rf,
		e2:   e2,
		ep2:  e2 / (1 - e2),
	}
}

// E2 returns the first eccentricity squared.
func (e Ellipsoid) E2() float64 { return e.e2 }

// Reference ellipsoids used by the supported coordinate systems.
// Clarke 1880 (modified) carries the parameters of the War Office
// survey underlying the Ghana national grid.
var (
	WGS84    = NewEllipsoid("WGS 84", 6378137.0, 298.257223563)
	Clarke80 = NewEllipsoid("Clarke 1880 mod.", 6378249.145, 293.4663)
)

// primeVerticalRadius returns N, the radius of curvature in the prime
// vertical at geodetic latitude phi (radians).
func (e Ellipsoid) primeVerticalRadius(phi float64) float64 {
	s := math.Sin(phi)
	return e.A / math.Sqrt(1-e.e2*s*s)
}
