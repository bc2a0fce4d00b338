// Package loader provides the feature registration system.
//
// Each feature (alignment, sync, bom, catalog, integrity) implements Feature and
// registers its own routes. The start command registers features on a
// Manager and loads them onto the Fiber app in registration order.
package loader
