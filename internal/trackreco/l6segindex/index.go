package l6segindex

import (
	"fmt"

	"github.com/heptrack/trackcore/internal/trackreco/l3state"
)

// Index is a layer's flat (η-bin × φ-bin) cell-offset table: First holds
// nEtaPart*nPhiPart+1 cumulative offsets into the layer's sorted hit
// vector, so CellCount(e,p) = First[next] - First[this] without a
// separate count array.
type Index struct {
	NEtaPart int
	NPhiPart int
	First    []int
}

func cellOf(e, p, nPhiPart int) int { return e*nPhiPart + p }

// CellStart returns the offset of cell (e,p) in the sorted hit vector.
func (idx *Index) CellStart(e, p int) int {
	return idx.First[cellOf(e, p, idx.NPhiPart)]
}

// CellCount returns the number of hits in cell (e,p).
func (idx *Index) CellCount(e, p int) int {
	c := cellOf(e, p, idx.NPhiPart)
	return idx.First[c+1] - idx.First[c]
}

// rowStart/rowEnd bound the contiguous span of all φ bins of η row e.
func (idx *Index) rowStart(e int) int { return idx.First[e*idx.NPhiPart] }
func (idx *Index) rowEnd(e int) int   { return idx.First[e*idx.NPhiPart+idx.NPhiPart] }

// Build sorts a layer's hits into (η-bin, φ-bin) order and returns the
// sorted hit vector (stamped with LayerID and its position within this
// vector, since hit indices used throughout the core refer to positions
// in this sorted vector) alongside the Index. Uses a counting sort,
// which is exact and linear since the number of cells is fixed and known
// up front.
func Build(hits []l3state.Hit, layerID, nEtaPart, nPhiPart int, etaDet float64, etaSeg bool) ([]l3state.Hit, *Index, error) {
	if nEtaPart <= 0 || nPhiPart <= 0 {
		return nil, nil, fmt.Errorf("l6segindex: nEtaPart=%d nPhiPart=%d must be positive", nEtaPart, nPhiPart)
	}
	numCells := nEtaPart * nPhiPart

	cellOfHit := make([]int, len(hits))
	counts := make([]int, numCells)
	for i, h := range hits {
		e := GetEtaBin(h.Eta(), etaDet, nEtaPart, etaSeg)
		p := GetPhiBin(h.Phi(), nPhiPart)
		c := cellOf(e, p, nPhiPart)
		cellOfHit[i] = c
		counts[c]++
	}

	first := make([]int, numCells+1)
	for c := 0; c < numCells; c++ {
		first[c+1] = first[c] + counts[c]
	}

	cursor := append([]int(nil), first...)
	sorted := make([]l3state.Hit, len(hits))
	for i, h := range hits {
		c := cellOfHit[i]
		pos := cursor[c]
		cursor[c]++
		h.LayerID = layerID
		h.Index = pos
		sorted[pos] = h
	}

	return sorted, &Index{NEtaPart: nEtaPart, NPhiPart: nPhiPart, First: first}, nil
}

// Gather walks the η row range [etaBinMin, etaBinMax] and, within each
// row, returns the hit-index span(s) covered by [phiBinMin, phiBinMax].
// When phiBinMin <= phiBinMax the span is a single contiguous range;
// when the window crosses the φ seam (phiBinMin > phiBinMax) it is the
// concatenation of [phiBinMin, nPhiPart) and [0, phiBinMax], each bounded
// within the row's own span.
func (idx *Index) Gather(etaBinMin, etaBinMax, phiBinMin, phiBinMax int) []int {
	var out []int
	for e := etaBinMin; e <= etaBinMax; e++ {
		if phiBinMin <= phiBinMax {
			lo := idx.CellStart(e, phiBinMin)
			hi := idx.CellStart(e, phiBinMax) + idx.CellCount(e, phiBinMax)
			out = appendRange(out, lo, hi)
			continue
		}
		lo1 := idx.CellStart(e, phiBinMin)
		hi1 := idx.rowEnd(e)
		out = appendRange(out, lo1, hi1)

		lo2 := idx.rowStart(e)
		hi2 := idx.CellStart(e, phiBinMax) + idx.CellCount(e, phiBinMax)
		out = appendRange(out, lo2, hi2)
	}
	return out
}

func appendRange(out []int, lo, hi int) []int {
	for i := lo; i < hi; i++ {
		out = append(out, i)
	}
	return out
}
