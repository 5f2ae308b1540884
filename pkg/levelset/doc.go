// Package levelset builds dense signed distance fields from triangle meshes
// sampled on regular grids.
//
// Construction runs in four stages: exact distances are seeded in a narrow
// band around every triangle, fast sweeps propagate them across the rest of
// the grid by letting nodes adopt a neighbor's closest triangle, grid-line
// ray casting classifies every node as inside or outside, and the two fields
// combine into the signed result. Distances are exact near the surface and
// tight upper bounds far from it; the sign is reliable for closed,
// consistently oriented meshes and best-effort otherwise.
//
// For fixed input the output is deterministic: rerunning with any worker
// count produces bit-identical fields.
package levelset
