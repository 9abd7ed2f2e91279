package core

// PointID is a dense, internal identifier for a point within a dataset.
// It indexes directly into the external dataset/matrix storage, so it is
// strictly 32-bit: at most 4 billion points per index.
type PointID uint32

// MaxPointID is the maximum representable PointID.
const MaxPointID = ^PointID(0)
