package models

// Coordinates represents a WGS84 geographic point in decimal degrees.
type Coordinates struct {
	Latitude  float64 // Latitude of the geographic point.
	Longitude float64 // Longitude of the geographic point.
}
