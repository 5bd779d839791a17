package export

import (
	"fmt"
	"os"
	"strings"

	"github.com/mmkrusniak/yale22-uav-diversity/internal/area"
	"github.com/mmkrusniak/yale22-uav-diversity/internal/geom"
)

// PathKML renders a flight path as a KML document viewable in Google
// Earth. The transform is the inverse of the KML import: x maps back to
// negated longitude and y to latitude at [area.CoordScale] meters per
// degree, and altitudes are lifted by the site elevation.
func PathKML(name string, points []geom.Point) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<kml xmlns="http://www.opengis.net/kml/2.2">
  <Document>
    <name>%s</name>
    <Style id="flightPath">
      <LineStyle>
        <color>ff0000ff</color>
        <width>10</width>
      </LineStyle>
    </Style>
    <Placemark>
      <name>%s</name>
      <styleUrl>#flightPath</styleUrl>
      <LineString>
        <tessellate>1</tessellate>
        <altitudeMode>relativeToGround</altitudeMode>
        <coordinates>
`, name, name))

	for _, p := range points {
		lon := -p.X() / area.CoordScale
		lat := p.Y() / area.CoordScale
		alt := p.Z() + area.AbsAltitude
		sb.WriteString(fmt.Sprintf("          %f,%f,%f\n", lon, lat, alt))
	}

	sb.WriteString(`        </coordinates>
      </LineString>
    </Placemark>
  </Document>
</kml>
`)
	return sb.String()
}

// WriteKML writes a flight path to a KML file.
func WriteKML(path, name string, points []geom.Point) error {
	return os.WriteFile(path, []byte(PathKML(name, points)), 0644)
}
