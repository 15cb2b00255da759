// Package csg implements Constructive Solid Geometry on polygonal boundary
// meshes. Two solids, each represented as a list of convex polygons, are
// compiled into binary space partitioning (BSP) trees and combined with
// boolean union, difference, and intersection; the surviving tree is
// flattened back into a polygon list.
//
// The algorithm follows the classic csg.js construction: polygons are split
// against node planes, trees are inverted to swap solid and empty space, and
// clipTo removes the parts of one boundary that lie inside the other solid.
package csg
