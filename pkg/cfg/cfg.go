package cfg

// ParallelEpsilon is the cross-product magnitude below which two segment
// directions are treated as parallel and their intersection is discarded.
// This is a correctness/robustness knob: raising it drops more near-parallel
// intersections, lowering it admits intersections computed from
// ill-conditioned divisions.
var ParallelEpsilon = 1e-10

// GeomEpsilon is the general tolerance for treating a coordinate difference
// or a vector magnitude as zero in offset/normal math.
var GeomEpsilon = 1e-9

// FlattenSteps is the number of line segments used to approximate one curve
// segment when flattening a path to a polygon for boolean operations.
// 16 trades fidelity against the O(n*m) segment intersection cost.
var FlattenSteps = 16

// DefaultHandleLength is the handle length, in document units, given to a
// corner anchor converted to a smooth one.
var DefaultHandleLength = 30.0

// MergeMaxDistance is the maximum gap between two open-path endpoints for
// MergeNearby to join them.
var MergeMaxDistance = 0.01

// TraversalCapFactor bounds the boolean traversal loop: the iteration cap is
// (lenA + lenB + intersections) * TraversalCapFactor. Exceeding the cap ends
// the traversal with whatever partial ring was built so far.
var TraversalCapFactor = 2
