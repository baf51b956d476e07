package mesh

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/paper-plateau/meshgrid/internal/models"
)

// mesh3rdLen is the digit count of a tertiary (1 km) mesh code.
const mesh3rdLen = 8

// mesh2ndDiv is the subdivision factor of the secondary mesh: the r and s
// indices live in [0, 8).
const mesh2ndDiv = 8

// mesh3rdDiv is the subdivision factor of the tertiary mesh.
const mesh3rdDiv = 10

// Common errors for mesh code parsing.
var (
	ErrMeshCodeLength = errors.New("mesh code has wrong length")
	ErrMeshCodeDigit  = errors.New("mesh code contains a non-digit character")
)

// parse3rd splits an 8-digit mesh code into its primary-mesh prefix and
// the four subdivision indices.
func parse3rd(code string) (mesh1 string, r, s, t, u int, err error) {
	if len(code) != mesh3rdLen {
		return "", 0, 0, 0, 0, fmt.Errorf(
			"%w: expected %d digits, got %d", ErrMeshCodeLength, mesh3rdLen, len(code))
	}

	for i := 0; i < mesh3rdLen; i++ {
		if code[i] < '0' || code[i] > '9' {
			return "", 0, 0, 0, 0, fmt.Errorf("%w: %q", ErrMeshCodeDigit, code)
		}
	}

	return code[:4],
		int(code[4] - '0'),
		int(code[5] - '0'),
		int(code[6] - '0'),
		int(code[7] - '0'),
		nil
}

// DecodeCenter recovers the center coordinate of a tertiary mesh cell.
// Only 8-digit codes are supported; the surrounding application never
// decodes the other levels.
func DecodeCenter(code string) (models.Coordinates, error) {
	_, r, s, t, u, err := parse3rd(code)
	if err != nil {
		return models.Coordinates{}, err
	}

	// The first four digits are two 2-digit band indices.
	p, _ := strconv.Atoi(code[:2])
	q, _ := strconv.Atoi(code[2:4])

	// South-west corner of the cell, then half a cell to reach the center.
	lat := float64(p)*lat1stDeg + float64(r)*lat2ndDeg + float64(t)*lat3rdDeg + lat3rdDeg/2
	lon := lonOffset + float64(q) + float64(s)*lon2ndDeg + float64(u)*lon3rdDeg + lon3rdDeg/2

	return models.Coordinates{Latitude: lat, Longitude: lon}, nil
}

// ExpandNeighbors returns the 3x3 grid of tertiary mesh codes around and
// including the given center code, in row-major order (south to north,
// west to east).
//
// Crossing a tertiary digit boundary borrows from or carries into the
// secondary indices. Candidates whose secondary index would leave [0, 8)
// are silently dropped rather than wrapped, so the result holds between
// 1 and 9 codes; the center code itself is always present.
func ExpandNeighbors(code string) ([]string, error) {
	mesh1, r, s, t, u, err := parse3rd(code)
	if err != nil {
		return nil, err
	}

	neighbors := make([]string, 0, 9)
	for dt := -1; dt <= 1; dt++ {
		for du := -1; du <= 1; du++ {
			newR, newS := r, s
			newT, newU := t+dt, u+du

			if newT < 0 {
				newT += mesh3rdDiv
				newR--
			}
			if newT >= mesh3rdDiv {
				newT -= mesh3rdDiv
				newR++
			}
			if newU < 0 {
				newU += mesh3rdDiv
				newS--
			}
			if newU >= mesh3rdDiv {
				newU -= mesh3rdDiv
				newS++
			}

			if newR < 0 || newR >= mesh2ndDiv || newS < 0 || newS >= mesh2ndDiv {
				continue
			}

			neighbors = append(neighbors, fmt.Sprintf("%s%d%d%d%d", mesh1, newR, newS, newT, newU))
		}
	}

	return neighbors, nil
}

// IsValid3rd reports whether code is a syntactically and range-valid
// tertiary mesh code: exactly 8 ASCII digits with the secondary indices
// in [0, 7]. It is a predicate and never panics or errors.
func IsValid3rd(code string) bool {
	_, r, s, _, _, err := parse3rd(code)
	if err != nil {
		return false
	}

	return r < mesh2ndDiv && s < mesh2ndDiv
}
