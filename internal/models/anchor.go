package models

// Anchor represents a building-search anchor awaiting tile prefetch.
// The query is a free-form Japanese address or landmark name entered in
// the search UI; resolution fills in its mesh code and tileset URLs.
type Anchor struct {
	ID    int    // ID is the unique identifier for the anchor.
	Query string // Query is the address or landmark to resolve.
}

// TilesetRef links one regional mesh code to the 3D Tiles tileset URLs
// that cover its cell.
type TilesetRef struct {
	MeshCode string   // MeshCode is the 8-digit mesh3rd code of the cell.
	URLs     []string // URLs are the tileset.json endpoints for the cell.
}
