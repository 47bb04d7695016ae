package crs

// Validation is the result of a plausibility check on a coordinate pair.
// Errors make the pair unusable; warnings flag points that are valid but
// outside the region the system is meant for.
type Validation struct {
	Valid    bool     `json:"valid"`
	Warnings []string `json:"warnings"`
	Errors   []string `json:"errors"`
}

// Approximate bounding boxes used for range warnings.
const (
	ghanaLonMin, ghanaLonMax = -4, 2
	ghanaLatMin, ghanaLatMax = 4, 12
)

// Validate checks a coordinate pair against the hard limits and typical
// working ranges of the given system.
func Validate(key string, x, y float64) Validation {
	v := Validation{Valid: true, Warnings: []string{}, Errors: []string{}}

	switch key {
	case WGS84:
		if x < -180 || x > 180 {
			v.Valid = false
			v.Errors = append(v.Errors, "Longitude must be between -180 and 180 degrees")
		}
		if y < -90 || y > 90 {
			v.Valid = false
			v.Errors = append(v.Errors, "Latitude must be between -90 and 90 degrees")
		}
		if x < ghanaLonMin || x > ghanaLonMax {
			v.Warnings = append(v.Warnings, "Longitude outside Ghana bounds (approximately -4° to 2°)")
		}
		if y < ghanaLatMin || y > ghanaLatMax {
			v.Warnings = append(v.Warnings, "Latitude outside Ghana bounds (approximately 4° to 12°)")
		}

	case UTM30N, UTM31N:
		if x < 160000 || x > 840000 {
			v.Warnings = append(v.Warnings, "Easting outside typical UTM zone range")
		}
		if y < 0 || y > 10000000 {
			v.Warnings = append(v.Warnings, "Northing outside typical Northern hemisphere range")
		}

	case GhanaGrid:
		if x < 0 || x > 500000 {
			v.Warnings = append(v.Warnings, "Easting outside typical Ghana Grid range")
		}
		if y < 0 || y > 1000000 {
			v.Warnings = append(v.Warnings, "Northing outside typical Ghana Grid range")
		}
	}

	return v
}
