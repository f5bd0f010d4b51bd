/*
Package raycast produces a pseudo-3D first-person view from a 2D map of wall
segments by casting one ray per screen column.

For column i of a view W columns wide, the ray leaves the viewer at

	rayAngle = angle - fov/2 + fov*i/W

and is marched outward in fixed steps; at each step the distance from the
ray's point to every wall is measured, and the ray stops at the first step
that comes within the hit threshold. The recorded distance is then corrected
for fisheye distortion by projecting it onto the view direction (multiplying
by cos(rayAngle - angle)), and the corrected distance sets both the height of
the column's wall slice (inversely, clamped to the view height) and its
brightness (a linear falloff down to a minimum).

An exact method, solving ray/segment intersection in closed form, produces the
same columns without the marching error and is much cheaper for large maps.
*/
package raycast
