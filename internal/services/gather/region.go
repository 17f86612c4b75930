package gather

import (
	"regexp"

	"github.com/Shauntjh92/Wifey-app/internal/models"
)

// postalPrefixRegion maps the first two digits of a Singapore postal code to
// a region. Sourced from URA postal district groupings; prefixes absent from
// the table (e.g. 74, 85+) are unassigned and resolve to no region.
var postalPrefixRegion = map[string]models.Region{
	"01": models.RegionCentral, "02": models.RegionCentral, "03": models.RegionCentral, "04": models.RegionCentral,
	"05": models.RegionCentral, "06": models.RegionCentral, "07": models.RegionCentral, "08": models.RegionCentral,
	"09": models.RegionCentral, "10": models.RegionCentral, "11": models.RegionCentral, "12": models.RegionCentral,
	"13": models.RegionCentral, "14": models.RegionCentral, "15": models.RegionCentral, "16": models.RegionEast,
	"17": models.RegionCentral, "18": models.RegionEast, "19": models.RegionEast, "20": models.RegionCentral,
	"21": models.RegionCentral, "22": models.RegionCentral, "23": models.RegionCentral, "24": models.RegionWest,
	"25": models.RegionWest, "26": models.RegionWest, "27": models.RegionWest, "28": models.RegionNorth,
	"29": models.RegionNorth, "30": models.RegionNorth, "31": models.RegionNorth, "32": models.RegionNorth,
	"33": models.RegionNorth, "34": models.RegionNorth, "35": models.RegionNorth, "36": models.RegionNorth,
	"37": models.RegionNorth, "38": models.RegionNorth, "39": models.RegionNorth, "40": models.RegionNorth,
	"41": models.RegionNorth, "42": models.RegionEast, "43": models.RegionEast, "44": models.RegionEast,
	"45": models.RegionEast, "46": models.RegionEast, "47": models.RegionEast, "48": models.RegionEast,
	"49": models.RegionWest, "50": models.RegionCentral, "51": models.RegionCentral, "52": models.RegionCentral,
	"53": models.RegionNorthEast, "54": models.RegionNorthEast, "55": models.RegionNorthEast,
	"56": models.RegionNorthEast, "57": models.RegionNorthEast, "58": models.RegionWest, "59": models.RegionWest,
	"60": models.RegionWest, "61": models.RegionWest, "62": models.RegionWest, "63": models.RegionWest, "64": models.RegionWest,
	"65": models.RegionWest, "66": models.RegionWest, "67": models.RegionWest, "68": models.RegionWest, "69": models.RegionWest,
	"70": models.RegionSouth, "71": models.RegionSouth, "72": models.RegionEast, "73": models.RegionEast,
	"75": models.RegionEast, "76": models.RegionEast, "77": models.RegionEast, "78": models.RegionEast,
	"79": models.RegionNorthEast, "80": models.RegionNorthEast, "81": models.RegionEast,
	"82": models.RegionNorthEast, "83": models.RegionCentral, "84": models.RegionCentral,
}

// postalCodePattern matches a six-digit postal code, optionally preceded by
// "Singapore ". The first match in the address is used.
var postalCodePattern = regexp.MustCompile(`(?:Singapore\s+)?(\d{6})`)

// InferRegionFromAddress derives a region from the postal code embedded in a
// free-text address. Returns "" when no postal code is found or its prefix
// is unassigned.
func InferRegionFromAddress(address string) models.Region {
	m := postalCodePattern.FindStringSubmatch(address)
	if m == nil {
		return ""
	}
	return postalPrefixRegion[m[1][:2]]
}

// ResolveRegion applies the region priority chain: a curated region map hit
// on the mall's normalized name wins, then postal-code inference from the
// address, then empty.
func ResolveRegion(regionMap map[string]models.Region, normalizedMallName, address string) models.Region {
	if region, ok := regionMap[normalizedMallName]; ok && region != "" {
		return region
	}
	return InferRegionFromAddress(address)
}
