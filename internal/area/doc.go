// Package area describes the region a team of vehicles is asked to
// cover: a polygonal hull, a population of [Detectable] objects
// scattered over it, and the [SpatialDistribution] those objects were
// drawn from.
//
// An Area is the world model. Vehicles query it for what their camera
// footprint would see at a given altitude ([Area.DetectablesIn]) and
// for the object density under their current position ([Area.Density]);
// they never mutate it. Regions come from explicit vertices, from a
// random generator, or imported from KML or GeoJSON boundary files.
package area
