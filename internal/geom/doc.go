/*
Package geom provides the float 2-space primitives the world and the raycaster
are built from: vectors, line segments, and axis-aligned boxes.

World coordinates grow right (+X) and down (+Y), the same orientation as
image.Point, so an angle of 0 faces +X and π/2 faces +Y. Like the standard
library's image.Point, every Vec method works on a copy and returns it.
*/
package geom
