// Package crs defines the coordinate reference systems supported by the
// service and computes transformations between any pair of them.
//
// Every projected system knows how to convert to and from WGS84
// geographic coordinates, so an arbitrary transformation is the source
// system's inverse composed with the target system's forward. The set
// of systems is static and read-only after package initialization.
package crs

import (
	"sort"

	"github.com/danquah/gridpoint/internal/geodesy"
)

// Supported CRS keys. AutoUTM is a pseudo-target resolved to UTM30N or
// UTM31N from the point's longitude.
const (
	WGS84       = "WGS84"
	UTM30N      = "UTM_30N"
	UTM31N      = "UTM_31N"
	GhanaGrid   = "GHANA_GRID"
	WebMercator = "WEB_MERCATOR"
	AutoUTM     = "UTM_AUTO"
)

// Descriptor is the public, wire-facing description of a CRS.
type Descriptor struct {
	Name        string `json:"name"`
	Type        string `json:"type"`
	Units       string `json:"units"`
	Description string `json:"description"`
	EPSG        string `json:"epsg,omitempty"`
	Datum       string `json:"datum,omitempty"`
	Projection  string `json:"projection,omitempty"`
}

// projection converts between a system's native coordinates and WGS84
// geographic degrees.
type projection interface {
	toWGS84(x, y float64) (lon, lat float64)
	fromWGS84(lon, lat float64) (x, y float64)
}

// System pairs a descriptor with its projection. The zero value is not
// usable; obtain instances through Lookup.
type System struct {
	Key        string
	Descriptor Descriptor

	proj       projection
	geographic bool
}

// Geographic reports whether the system's coordinates are lon/lat
// degrees rather than easting/northing meters.
func (s System) Geographic() bool { return s.geographic }

// ToWGS84 converts native coordinates to WGS84 lon/lat degrees.
func (s System) ToWGS84(x, y float64) (lon, lat float64) {
	return s.proj.toWGS84(x, y)
}

// accraShift is the War Office datum to WGS84 geocentric translation.
var accraShift = geodesy.DatumShift{DX: -199, DY: 32, DZ: 322}

var systems = map[string]System{
	WGS84: {
		Key: WGS84,
		Descriptor: Descriptor{
			Name:        "World Geodetic System 1984",
			Type:        "Geographic",
			Units:       "Degrees",
			Description: "Global standard for GPS and international mapping",
			EPSG:        "EPSG:4326",
		},
		proj:       identity{},
		geographic: true,
	},
	UTM30N: {
		Key: UTM30N,
		Descriptor: Descriptor{
			Name:        "UTM Zone 30 North",
			Type:        "Projected",
			Units:       "Meters",
			Description: "Universal Transverse Mercator projection for Western Ghana (6°W - 0°)",
			EPSG:        "EPSG:32630",
		},
		proj: &utmZone{tm: geodesy.NewTransverseMercator(geodesy.WGS84, 0, -3, 0.9996, 500000, 0)},
	},
	UTM31N: {
		Key: UTM31N,
		Descriptor: Descriptor{
			Name:        "UTM Zone 31 North",
			Type:        "Projected",
			Units:       "Meters",
			Description: "Universal Transverse Mercator projection for Eastern Ghana (0° - 6°E)",
			EPSG:        "EPSG:32631",
		},
		proj: &utmZone{tm: geodesy.NewTransverseMercator(geodesy.WGS84, 0, 3, 0.9996, 500000, 0)},
	},
	GhanaGrid: {
		Key: GhanaGrid,
		Descriptor: Descriptor{
			Name:        "Ghana National Grid (War Office)",
			Type:        "Projected",
			Units:       "Meters",
			Description: "National coordinate system based on Clarke 1880 ellipsoid",
			Datum:       "Accra Datum",
			Projection:  "Transverse Mercator",
		},
		proj: &ghanaGrid{
			tm:    geodesy.NewTransverseMercator(geodesy.Clarke80, 4.666666666666667, -1, 0.99975, 274319.51, 0),
			shift: accraShift,
		},
	},
	WebMercator: {
		Key: WebMercator,
		Descriptor: Descriptor{
			Name:        "Web Mercator",
			Type:        "Projected",
			Units:       "Meters",
			Description: "Spherical Mercator projection used by web mapping services",
			EPSG:        "EPSG:3857",
		},
		proj: sphericalMercator{},
	},
}

// Lookup resolves a CRS key. The boolean is false for unknown keys and
// for the UTM_AUTO pseudo-key, which has no fixed definition.
func Lookup(key string) (System, bool) {
	s, ok := systems[key]
	return s, ok
}

// Keys returns the supported CRS keys in sorted order.
func Keys() []string {
	keys := make([]string, 0, len(systems))
	for k := range systems {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Info returns the descriptor map served by the crs-info endpoint.
func Info() map[string]Descriptor {
	info := make(map[string]Descriptor, len(systems))
	for k, s := range systems {
		info[k] = s.Descriptor
	}
	return info
}

// AutoZone picks the UTM zone covering the given WGS84 longitude.
// Ghana straddles the 30N/31N boundary at the prime meridian; points
// outside either zone default to 30N.
func AutoZone(lon float64) string {
	if lon >= 0 && lon <= 6 {
		return UTM31N
	}
	return UTM30N
}

// Transform converts a point from the source system to the target
// system, passing through WGS84 when the systems differ.
func Transform(source, target System, x, y float64) (float64, float64) {
	if source.Key == target.Key {
		return x, y
	}
	lon, lat := source.proj.toWGS84(x, y)
	return target.proj.fromWGS84(lon, lat)
}

// identity is the projection of a geographic CRS: coordinates already
// are WGS84 lon/lat.
type identity struct{}

func (identity) toWGS84(x, y float64) (float64, float64) { return x, y }
func (identity) fromWGS84(lon, lat float64) (float64, float64) { return lon, lat }

// utmZone projects WGS84 directly, no datum shift involved.
type utmZone struct {
	tm *geodesy.TransverseMercator
}

func (u *utmZone) toWGS84(x, y float64) (float64, float64) { return u.tm.Inverse(x, y) }
func (u *utmZone) fromWGS84(lon, lat float64) (float64, float64) { return u.tm.Forward(lon, lat) }

// ghanaGrid composes the Accra datum shift with a transverse Mercator
// projection on Clarke 1880.
type ghanaGrid struct {
	tm    *geodesy.TransverseMercator
	shift geodesy.DatumShift
}

func (g *ghanaGrid) toWGS84(x, y float64) (float64, float64) {
	lon, lat := g.tm.Inverse(x, y)
	return g.shift.ToWGS84(geodesy.Clarke80, lon, lat)
}

func (g *ghanaGrid) fromWGS84(lon, lat float64) (float64, float64) {
	llon, llat := g.shift.FromWGS84(geodesy.Clarke80, lon, lat)
	return g.tm.Forward(llon, llat)
}

type sphericalMercator struct{}

func (sphericalMercator) toWGS84(x, y float64) (float64, float64) {
	return geodesy.WebMercatorInverse(x, y)
}

func (sphericalMercator) fromWGS84(lon, lat float64) (float64, float64) {
	return geodesy.WebMercatorForward(lon, lat)
}
