package area

import (
	"encoding/xml"
	"fmt"
	"io"
	"math/rand"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"github.com/mmkrusniak/yale22-uav-diversity/internal/geom"
)

const (
	// CoordScale converts imported lat/lon degrees into scene meters.
	CoordScale = 10000

	// AbsAltitude is the ground elevation of the survey site above sea
	// level, for altitude-referenced exports.
	AbsAltitude = 228
)

// Options configure area construction. The zero value gives a
// time-seeded, uniformly populated area with a default object count.
type Options struct {
	// Name labels the area in summaries; constructors that can invent
	// a better one do so when it is empty.
	Name string

	// Objects is how many detectable objects to scatter. Exactly half
	// of them are true positives. Defaults to 20.
	Objects int

	// Distribution draws object locations and defines the density
	// field. Nil means uniform over the hull.
	Distribution *SpatialDistribution

	// Rand drives object placement. Nil means time-seeded.
	Rand *rand.Rand
}

// An Area is a polygonal region of interest populated with detectable
// objects. It is the shared world model: vehicles read from it
// concurrently and never write to it after construction, except for
// the explicit Redistribute and SetDistribution calls between runs.
type Area struct {
	name    string
	hull    *geom.Polygon
	dist    *SpatialDistribution
	rng     *rand.Rand
	count   int
	objects []Detectable
}

// New builds an area over an explicit hull.
func New(hull *geom.Polygon, opts Options) *Area {
	a := &Area{
		name:  opts.Name,
		hull:  hull,
		dist:  opts.Distribution,
		rng:   opts.Rand,
		count: opts.Objects,
	}
	if a.rng == nil {
		a.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if a.count == 0 {
		a.count = 20
	}
	if a.dist == nil {
		a.dist = Pseudorandom(a.rng, hull)
	}
	if a.name == "" {
		a.name = fmt.Sprintf("Custom %d-gon", hull.Len())
	}
	a.Redistribute()
	return a
}

// Random builds an area over a randomly generated n-gon. Size is the
// approximate width in meters; jaggedness in [0,1] scales how far
// vertices stray from a regular polygon.
func Random(n int, size, jaggedness float64, opts Options) *Area {
	rng := opts.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
		opts.Rand = rng
	}
	hull := geom.RandomPolygon(rng, n, size/2, jaggedness*size/2)
	if opts.Name == "" {
		opts.Name = fmt.Sprintf("Random %d-gon", n)
	}
	return New(hull, opts)
}

// FromKML imports a boundary from a KML file. The first coordinates
// block found is taken as the region outline; longitude maps to -x and
// latitude to y at [CoordScale] meters per degree, matching how the
// field boundaries for the original surveys were drawn.
func FromKML(path string, opts Options) (*Area, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("area: reading kml: %w", err)
	}
	body, err := kmlCoordinates(data)
	if err != nil {
		return nil, err
	}

	var points []geom.Point
	for _, field := range strings.Fields(body) {
		coords := strings.Split(field, ",")
		if len(coords) < 2 {
			continue
		}
		lon, err := strconv.ParseFloat(coords[0], 64)
		if err != nil {
			return nil, fmt.Errorf("area: parsing kml coordinate %q: %w", field, err)
		}
		lat, err := strconv.ParseFloat(coords[1], 64)
		if err != nil {
			return nil, fmt.Errorf("area: parsing kml coordinate %q: %w", field, err)
		}
		points = append(points, geom.Pt(-CoordScale*lon, CoordScale*lat))
	}
	points = dropClosingPoint(points)

	hull, err := geom.NewPolygon(points...)
	if err != nil {
		return nil, fmt.Errorf("area: kml boundary: %w", err)
	}
	if opts.Name == "" {
		opts.Name = fmt.Sprintf("Imported area [%s]", filepath.Base(path))
	}
	return New(hull, opts), nil
}

// FromGeoJSON imports a boundary from a GeoJSON feature collection. The
// outer ring of the first polygon (or multipolygon) feature becomes the
// region outline, scaled the same way as KML import.
func FromGeoJSON(path string, opts Options) (*Area, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("area: reading geojson: %w", err)
	}
	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, fmt.Errorf("area: parsing geojson: %w", err)
	}

	var ring orb.Ring
	for _, f := range fc.Features {
		switch g := f.Geometry.(type) {
		case orb.Polygon:
			if len(g) > 0 {
				ring = g[0]
			}
		case orb.MultiPolygon:
			if len(g) > 0 && len(g[0]) > 0 {
				ring = g[0][0]
			}
		}
		if ring != nil {
			break
		}
	}
	if ring == nil {
		return nil, ErrNoRegion
	}

	points := make([]geom.Point, 0, len(ring))
	for _, pt := range ring {
		points = append(points, geom.Pt(-CoordScale*pt[0], CoordScale*pt[1]))
	}
	points = dropClosingPoint(points)

	hull, err := geom.NewPolygon(points...)
	if err != nil {
		return nil, fmt.Errorf("area: geojson boundary: %w", err)
	}
	if opts.Name == "" {
		opts.Name = fmt.Sprintf("Imported area [%s]", filepath.Base(path))
	}
	return New(hull, opts), nil
}

// kmlCoordinates returns the text of the first <coordinates> element.
func kmlCoordinates(data []byte) (string, error) {
	dec := xml.NewDecoder(strings.NewReader(string(data)))
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			return "", ErrNoCoordinates
		}
		if err != nil {
			return "", fmt.Errorf("area: parsing kml: %w", err)
		}
		if se, ok := tok.(xml.StartElement); ok && se.Name.Local == "coordinates" {
			var body string
			if err := dec.DecodeElement(&body, &se); err != nil {
				return "", fmt.Errorf("area: parsing kml: %w", err)
			}
			return body, nil
		}
	}
}

// dropClosingPoint trims the repeated final vertex of an explicitly
// closed ring; polygons here are implicitly closed.
func dropClosingPoint(points []geom.Point) []geom.Point {
	if len(points) > 1 && points[0].Equal(points[len(points)-1]) {
		return points[:len(points)-1]
	}
	return points
}

// Hull is the region boundary.
func (a *Area) Hull() *geom.Polygon { return a.hull }

// Name labels the area in run summaries.
func (a *Area) Name() string { return a.name }

// Width is the cartesian width of the region in meters.
func (a *Area) Width() float64 { return a.hull.CartesianWidth() }

// Height is the cartesian height of the region in meters.
func (a *Area) Height() float64 { return a.hull.CartesianHeight() }

// Contains reports whether p lies inside the region.
func (a *Area) Contains(p geom.Point) bool { return a.hull.Encloses(p) }

// Start is where the given vehicle begins its traversal: just inside
// the leftmost vertex.
func (a *Area) Start(id int) geom.Point { return a.hull.Leftish(5) }

// Destination is where the given vehicle should end: just inside the
// rightmost vertex.
func (a *Area) Destination(id int) geom.Point { return a.hull.Rightish(5) }

// Detectables returns a copy of every object in the area, true and
// false positives both, as originally observed.
func (a *Area) Detectables() []Detectable {
	out := make([]Detectable, len(a.objects))
	copy(out, a.objects)
	return out
}

// DetectablesIn re-observes from the given altitude every object whose
// location falls inside the footprint, dropping those whose confidence
// comes back zero. This is what a camera pass over the footprint sees.
func (a *Area) DetectablesIn(footprint *geom.Polygon, altitude float64) []Detectable {
	var out []Detectable
	for _, d := range a.objects {
		if !footprint.Encloses(d.Point) {
			continue
		}
		seen := d.AtHeight(altitude)
		if seen.Confidence() > 0 {
			out = append(out, seen)
		}
	}
	return out
}

// Density evaluates the object distribution's density at p.
func (a *Area) Density(p geom.Point) float64 { return a.dist.Density(p) }

// Redistribute rescatters the objects from the current distribution.
// Exactly half are true positives.
func (a *Area) Redistribute() {
	objects := make([]Detectable, 0, a.count)
	for i := 0; i < a.count; i++ {
		p := a.dist.Point()
		truth := i < a.count/2
		objects = append(objects, NewDetectable(p.X(), p.Y(), 0, a.rng.Float64()*0.2+1.0, truth))
	}
	a.objects = objects
}

// SetDistribution swaps the object distribution and rescatters.
func (a *Area) SetDistribution(d *SpatialDistribution) {
	a.dist = d
	a.Redistribute()
}
