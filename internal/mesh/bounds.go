package mesh

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/paulmach/orb"
)

// ErrMeshCodeQuadrant is returned when a half or quarter mesh digit is
// outside the 1-4 quadrant range.
var ErrMeshCodeQuadrant = errors.New("mesh code quadrant digit out of range")

// CellBounds returns the geographic bounding box of a mesh cell at any of
// the five levels, as an orb.Bound (min/max points in lon/lat order). The
// tileset layer uses it to attach a bbox hint to prefetch requests.
func CellBounds(code string) (orb.Bound, error) {
	level := len(code)
	switch level {
	case 4, 6, 8, 9, 10:
	default:
		return orb.Bound{}, fmt.Errorf(
			"%w: expected 4, 6, 8, 9 or 10 digits, got %d", ErrMeshCodeLength, level)
	}

	for i := 0; i < level; i++ {
		if code[i] < '0' || code[i] > '9' {
			return orb.Bound{}, fmt.Errorf("%w: %q", ErrMeshCodeDigit, code)
		}
	}

	p, _ := strconv.Atoi(code[:2])
	q, _ := strconv.Atoi(code[2:4])
	lat := float64(p) * lat1stDeg
	lon := lonOffset + float64(q)
	height, width := lat1stDeg, lon1stDeg

	if level >= 6 {
		lat += float64(code[4]-'0') * lat2ndDeg
		lon += float64(code[5]-'0') * lon2ndDeg
		height, width = lat2ndDeg, lon2ndDeg
	}
	if level >= 8 {
		lat += float64(code[6]-'0') * lat3rdDeg
		lon += float64(code[7]-'0') * lon3rdDeg
		height, width = lat3rdDeg, lon3rdDeg
	}

	// Half and quarter levels append one quadrant digit each: 1=SW, 2=SE,
	// 3=NW, 4=NE, halving the cell both ways.
	for i := 9; i <= level; i++ {
		quad := int(code[i-1] - '0')
		if quad < 1 || quad > 4 {
			return orb.Bound{}, fmt.Errorf("%w: got %d, expected 1-4", ErrMeshCodeQuadrant, quad)
		}
		height /= 2
		width /= 2
		lat += float64((quad-1)/2) * height
		lon += float64((quad-1)%2) * width
	}

	return orb.Bound{
		Min: orb.Point{lon, lat},
		Max: orb.Point{lon + width, lat + height},
	}, nil
}
