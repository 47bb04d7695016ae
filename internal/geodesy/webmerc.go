package geodesy

import "math"

// webMercatorRadius is the sphere radius used by EPSG:3857 (the WGS84
// semi-major axis; the projection ignores flattening).
const webMercatorRadius = 6378137.0

// webMercatorMaxLat is the latitude at which the projection's square
// world extent is cut off.
const webMercatorMaxLat = 85.06

// WebMercatorForward projects WGS84 lon/lat (degrees) to EPSG:3857
// meters. Latitudes beyond the projection cutoff are clamped.
func WebMercatorForward(lon, lat float64) (x, y float64) {
	if lat > webMercatorMaxLat {
		lat = webMercatorMaxLat
	} else if lat < -webMercatorMaxLat {
		lat = -webMercatorMaxLat
	}
	x = webMercatorRadius * radians(lon)
	y = webMercatorRadius * math.Log(math.Tan(math.Pi/4+radians(lat)/2))
	return x, y
}

// WebMercatorInverse converts EPSG:3857 meters back to WGS84 lon/lat
// in degrees.
func WebMercatorInverse(x, y float64) (lon, lat float64) {
	lon = degrees(x / webMercatorRadius)
	lat = degrees(2*math.Atan(math.Exp(y/webMercatorRadius)) - math.Pi/2)
	return lon, lat
}
