// Package l6segindex owns Layer 6 (η-φ Segment Index) of the track
// reconstruction core.
//
// Responsibilities: binning a layer's hits into an (η-bin × φ-bin) grid,
// sorting the layer's hit vector so each cell's hits are contiguous, and
// gathering candidate hit indices for a search-window rectangle,
// including φ-seam wraparound.
// Key types: Index.
//
// Dependency rule: L6 may depend on L1-L3, but never on L7+.
package l6segindex
