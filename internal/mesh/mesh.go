// Package mesh implements the Japanese Standard Regional Mesh code system
// (JIS X 0410): deterministic conversion between WGS84 coordinates and
// hierarchical grid codes at five nested resolutions (80 km down to 250 m),
// plus neighbor expansion used to prefetch adjacent PLATEAU tilesets.
//
// Mesh codes are plain decimal digit strings whose length encodes the
// resolution level. Codes at a coarser level are always a strict string
// prefix of the codes computed from the same coordinate at finer levels.
package mesh

import (
	"fmt"
	"math"
)

// Level identifies one of the five mesh resolutions.
type Level string

const (
	// Level1st is the 80 km primary mesh (4 digits).
	Level1st Level = "mesh1st"
	// Level2nd is the 10 km secondary mesh (6 digits).
	Level2nd Level = "mesh2nd"
	// Level3rd is the 1 km tertiary mesh (8 digits).
	Level3rd Level = "mesh3rd"
	// LevelHalf is the 500 m half mesh (9 digits).
	LevelHalf Level = "meshHalf"
	// LevelQuarter is the 250 m quarter mesh (10 digits).
	LevelQuarter Level = "meshQuarter"
)

// Cell extents in degrees. Latitude steps are expressed in minutes/60 to
// keep the exact arithmetic of the standard.
const (
	lat1stDeg = 40.0 / 60 // 40 arc minutes
	lon1stDeg = 1.0
	lat2ndDeg = 5.0 / 60
	lon2ndDeg = 7.5 / 60
	lat3rdDeg = 0.5 / 60
	lon3rdDeg = 0.75 / 60
)

// lonOffset is the fixed 100-degree offset the standard subtracts from
// longitude before gridding, keeping the index two digits for Japan.
const lonOffset = 100.0

// Encode1st returns the 4-digit primary mesh code for a coordinate.
//
// Out-of-domain coordinates are not rejected; they silently produce digits
// outside the ranges the standard guarantees for Japan. Use IsValid3rd on
// the final code when the input is untrusted.
func Encode1st(lat, lon float64) string {
	code, _, _ := encode1st(lat, lon)
	return code
}

// Encode2nd returns the 6-digit secondary mesh code for a coordinate.
func Encode2nd(lat, lon float64) string {
	code, _, _ := encode2nd(lat, lon)
	return code
}

// Encode3rd returns the 8-digit tertiary (1 km) mesh code for a coordinate.
func Encode3rd(lat, lon float64) string {
	code, _, _ := encode3rd(lat, lon)
	return code
}

// EncodeHalf returns the 9-digit half (500 m) mesh code for a coordinate.
func EncodeHalf(lat, lon float64) string {
	code, _, _ := encodeHalf(lat, lon)
	return code
}

// EncodeQuarter returns the 10-digit quarter (250 m) mesh code for a coordinate.
func EncodeQuarter(lat, lon float64) string {
	code, latRem, lonRem := encodeHalf(lat, lon)
	qLat := int(math.Floor(latRem / (lat3rdDeg / 4)))
	qLon := int(math.Floor(lonRem / (lon3rdDeg / 4)))
	return fmt.Sprintf("%s%d", code, qLat*2+qLon+1)
}

// Each unexported encoder consumes the previous level's remainder and
// returns the remainder for the next, so the prefix property holds by
// construction.

func encode1st(lat, lon float64) (string, float64, float64) {
	p := math.Floor(lat / lat1stDeg)
	q := math.Floor(lon - lonOffset)
	latRem := lat - p*lat1stDeg
	lonRem := lon - (lonOffset + q)
	return fmt.Sprintf("%02d%02d", int(p), int(q)), latRem, lonRem
}

func encode2nd(lat, lon float64) (string, float64, float64) {
	code, latRem, lonRem := encode1st(lat, lon)
	r := math.Floor(latRem / lat2ndDeg)
	s := math.Floor(lonRem / lon2ndDeg)
	latRem -= r * lat2ndDeg
	lonRem -= s * lon2ndDeg
	return fmt.Sprintf("%s%d%d", code, int(r), int(s)), latRem, lonRem
}

func encode3rd(lat, lon float64) (string, float64, float64) {
	code, latRem, lonRem := encode2nd(lat, lon)
	t := math.Floor(latRem / lat3rdDeg)
	u := math.Floor(lonRem / lon3rdDeg)
	latRem -= t * lat3rdDeg
	lonRem -= u * lon3rdDeg
	return fmt.Sprintf("%s%d%d", code, int(t), int(u)), latRem, lonRem
}

func encodeHalf(lat, lon float64) (string, float64, float64) {
	code, latRem, lonRem := encode3rd(lat, lon)
	// Quadrant digit: 1=SW, 2=SE, 3=NW, 4=NE.
	halfLat := math.Floor(latRem / (lat3rdDeg / 2))
	halfLon := math.Floor(lonRem / (lon3rdDeg / 2))
	latRem -= halfLat * (lat3rdDeg / 2)
	lonRem -= halfLon * (lon3rdDeg / 2)
	return fmt.Sprintf("%s%d", code, int(halfLat)*2+int(halfLon)+1), latRem, lonRem
}

// DetectLevel infers the resolution of a mesh code from its length alone.
// Any unrecognized length, including the empty string, falls back to
// Level3rd: callers reading codes of unknown provenance assume 1 km
// granularity when uncertain.
func DetectLevel(code string) Level {
	switch len(code) {
	case 4:
		return Level1st
	case 6:
		return Level2nd
	case 8:
		return Level3rd
	case 9:
		return LevelHalf
	case 10:
		return LevelQuarter
	default:
		return Level3rd
	}
}

// EncodeAtLevel encodes a coordinate at the requested level. An unknown
// level falls back to Level3rd, mirroring DetectLevel.
func EncodeAtLevel(lat, lon float64, level Level) string {
	switch level {
	case Level1st:
		return Encode1st(lat, lon)
	case Level2nd:
		return Encode2nd(lat, lon)
	case Level3rd:
		return Encode3rd(lat, lon)
	case LevelHalf:
		return EncodeHalf(lat, lon)
	case LevelQuarter:
		return EncodeQuarter(lat, lon)
	default:
		return Encode3rd(lat, lon)
	}
}

// ResolveFromCoordinates returns the mesh3rd codes the tile loader should
// fetch for a point: the containing cell, optionally surrounded by its
// 3x3 neighborhood.
func ResolveFromCoordinates(lat, lon float64, includeNeighbors bool) []string {
	code := Encode3rd(lat, lon)
	if !includeNeighbors {
		return []string{code}
	}

	neighbors, err := ExpandNeighbors(code)
	if err != nil {
		// Only reachable for out-of-domain coordinates whose encoded
		// digits are not parseable; fall back to the center cell.
		return []string{code}
	}

	return neighbors
}
