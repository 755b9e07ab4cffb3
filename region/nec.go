package region

// Northeast Corridor station codes, Boston through Washington.
var necStationCodes = []string{
	"BOS", "BBY", "RTE", "PVD", "KIN", "WLY", "MYS", "NLC", "OSB", "NHV",
	"BRP", "STM", "NRO", "NYP", "NWK", "EWR", "MET", "NBK", "PJC", "TRE",
	"CWH", "PHN", "PHL", "WIL", "NRK", "ABD", "EDW", "BWI", "BAL", "NCR",
	"WAS",
}

// Rough bounding rectangle covering the corridor, used as a fallback when a
// train names no whitelisted station.
var necBBox = BBox{MinLat: 38.0, MaxLat: 43.6, MinLon: -77.6, MaxLon: -70.5}

// Route names of services that run on the corridor. Matched as
// case-insensitive substrings of a payload's route label.
var necRouteNameHints = []string{
	"Acela",
	"Northeast Regional",
	"Keystone Service",
	"Cardinal",
	"Carolinian",
	"Crescent",
	"Palmetto",
	"Silver Meteor",
	"Silver Star",
	"Vermonter",
}

// NEC returns the Northeast Corridor engine. Datasets that need a join
// against trip metadata side-load tripmap.json from dataDir.
func NEC(dataDir string) *Engine {
	return New(necStationCodes, necBBox, necRouteNameHints, dataDir)
}
