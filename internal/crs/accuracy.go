package crs

// Accuracy describes the expected quality of a transformation class and
// when to use it.
type Accuracy struct {
	Accuracy    string `json:"accuracy"`
	Description string `json:"description"`
	UseCase     string `json:"use_case"`
}

// accuracyTable is keyed by "<sourceClass>_to_<targetClass>" where the
// class collapses both UTM zones into "UTM". Pairs without an entry get
// the generic fallback.
var accuracyTable = map[string]Accuracy{
	"WGS84_to_UTM": {
		Accuracy:    "< 1 meter",
		Description: "High accuracy transformation using standard UTM projection parameters",
		UseCase:     "Engineering surveys, cadastral mapping, GIS applications",
	},
	"WGS84_to_GHANA_GRID": {
		Accuracy:    "1-5 meters",
		Description: "Uses Helmert transformation with 7 parameters. Accuracy depends on the datum shift parameters",
		UseCase:     "Land surveying in Ghana, integration with national mapping systems",
	},
	"UTM_to_GHANA_GRID": {
		Accuracy:    "1-5 meters",
		Description: "Involves datum transformation via WGS84. Compound transformation may introduce small errors",
		UseCase:     "Converting international survey data to Ghana national system",
	},
	"GHANA_GRID_to_WGS84": {
		Accuracy:    "1-5 meters",
		Description: "Reverse Helmert transformation. Accuracy similar to forward transformation",
		UseCase:     "Publishing Ghana survey data in international standard format",
	},
}

// genericAccuracy covers transformation pairs with no dedicated entry.
var genericAccuracy = Accuracy{
	Accuracy:    "1-5 meters",
	Description: "Standard transformation accuracy for properly defined CRS",
	UseCase:     "General GIS and surveying applications",
}

// AccuracyFor returns the accuracy statement for a source/target pair.
func AccuracyFor(sourceKey, targetKey string) Accuracy {
	key := accuracyClass(sourceKey) + "_to_" + accuracyClass(targetKey)
	if a, ok := accuracyTable[key]; ok {
		return a
	}
	return genericAccuracy
}

// AccuracyTable returns the dedicated entries, for the accuracy-info
// endpoint.
func AccuracyTable() map[string]Accuracy {
	table := make(map[string]Accuracy, len(accuracyTable))
	for k, v := range accuracyTable {
		table[k] = v
	}
	return table
}

func accuracyClass(key string) string {
	switch key {
	case UTM30N, UTM31N:
		return "UTM"
	default:
		return key
	}
}
