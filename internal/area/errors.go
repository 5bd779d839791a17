package area

import "errors"

var (
	// ErrNoCoordinates indicates a KML file with no <coordinates>
	// block to read a boundary from.
	ErrNoCoordinates = errors.New("area: kml contains no coordinates block")

	// ErrNoRegion indicates a GeoJSON file with no polygon feature.
	ErrNoRegion = errors.New("area: geojson contains no polygon feature")
)
