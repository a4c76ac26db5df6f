package sfs

import "gonum.org/v1/gonum/mat"

// Fold returns the folded form of s. Bin i of the result is the sum of bins
// i and len(s)-1-i, for i below the midpoint. An odd-sized spectrum keeps its
// centre bin unchanged. Bins past the midpoint are zero. s is not modified.
func Fold(s Spectrum1D) Spectrum1D {
	size := len(s)
	folded := make(Spectrum1D, size)
	for i := 0; i < size/2; i++ {
		folded[i] = s[i] + s[size-1-i]
	}
	if size%2 == 1 {
		folded[size/2] = s[size/2]
	}
	return folded
}

// FoldJoint returns the folded form of a joint spectrum with the same
// dimensions. With mid = (rows+cols)/2 - 1, cells with i+j > mid are zero and
// every other cell is summed with its mirror (rows-1-i, cols-1-j). A cell
// with i+j == mid has its mirror on the same anti-diagonal, so the pair is
// counted twice and the cell is halved when non-zero. When rows+cols is odd
// no cell lies on mid.
func FoldJoint(j *Spectrum2D) *FoldedSpectrum2D {
	rows, cols := j.Dims()
	mid := float64(rows+cols)/2 - 1

	m := mat.NewDense(rows, cols, nil)
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			d := float64(r + c)
			if d > mid {
				continue
			}
			v := float64(j.At(r, c) + j.At(rows-1-r, cols-1-c))
			if d == mid && v != 0 {
				v /= 2
			}
			m.Set(r, c, v)
		}
	}
	return &FoldedSpectrum2D{m: m}
}

// Folded holds the folded counterparts of a set of spectra. Pop2 and Joint
// are nil when only one population is configured.
type Folded struct {
	Pop1  Spectrum1D
	Pop2  Spectrum1D
	Joint *FoldedSpectrum2D
}

// FoldSpectra folds every spectrum in s.
func FoldSpectra(s Spectra) *Folded {
	switch s := s.(type) {
	case *TwoPopulations:
		return &Folded{
			Pop1:  Fold(s.Pop1),
			Pop2:  Fold(s.Pop2),
			Joint: FoldJoint(s.Joint),
		}
	case *OnePopulation:
		return &Folded{Pop1: Fold(s.Pop1)}
	default:
		return nil
	}
}
