package export

import (
	"fmt"
	"strings"

	"github.com/mmkrusniak/yale22-uav-diversity/internal/area"
	"github.com/mmkrusniak/yale22-uav-diversity/internal/drone"
)

var traceColors = []string{
	"#00ff00", "#00ccff", "#ffcc00", "#ff66cc", "#ff4444", "#aa88ff",
}

// TraceSVG renders the survey region, its objects, and every drone's
// flown trace as a standalone SVG image. Coordinates are fit to the
// image with a 10% margin; the scene's y-down convention matches SVG's,
// so no flip is needed.
func TraceSVG(a *area.Area, drones []*drone.Drone, width, height int) string {
	hull := a.Hull()
	minX, maxX := hull.Leftmost().X(), hull.Rightmost().X()
	minY, maxY := hull.Topmost().Y(), hull.Bottommost().Y()

	rangeX := maxX - minX
	rangeY := maxY - minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	minX -= rangeX * 0.1
	minY -= rangeY * 0.1
	rangeX *= 1.2
	rangeY *= 1.2

	toX := func(x float64) float64 { return (x - minX) / rangeX * float64(width) }
	toY := func(y float64) float64 { return (y - minY) / rangeY * float64(height) }

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
`, width, height, width, height))

	sb.WriteString(`<path fill="none" stroke="#888888" stroke-width="1.5" d="M`)
	for i, p := range hull.Vertices() {
		if i == 0 {
			sb.WriteString(fmt.Sprintf("%.1f,%.1f", toX(p.X()), toY(p.Y())))
		} else {
			sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", toX(p.X()), toY(p.Y())))
		}
	}
	sb.WriteString(" Z\"/>\n")

	for _, det := range a.Detectables() {
		fill := "#555555"
		if det.Real() {
			fill = "#dddddd"
		}
		sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="2" fill="%s"/>
`, toX(det.X()), toY(det.Y()), fill))
	}

	for _, d := range drones {
		trace := d.Trace()
		if len(trace) < 2 {
			continue
		}
		color := traceColors[d.ID()%len(traceColors)]
		sb.WriteString(fmt.Sprintf(`<path fill="none" stroke="%s" stroke-width="1" d="M`, color))
		for i, p := range trace {
			if i == 0 {
				sb.WriteString(fmt.Sprintf("%.1f,%.1f", toX(p.X()), toY(p.Y())))
			} else {
				sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", toX(p.X()), toY(p.Y())))
			}
		}
		sb.WriteString("\"/>\n")
	}

	sb.WriteString("</svg>\n")
	return sb.String()
}
