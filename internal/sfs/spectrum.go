// Package sfs accumulates site frequency spectra from genotype calls and
// derives their folded forms.
package sfs

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Spectrum1D counts sites by the number of alternate alleles observed in one
// population. Bin k holds the sites with exactly k alternate alleles, so a
// population of N diploid individuals has 2N+1 bins.
type Spectrum1D []int

// NewSpectrum1D returns a zeroed spectrum for a population of the given size.
func NewSpectrum1D(individuals int) Spectrum1D {
	return make(Spectrum1D, 2*individuals+1)
}

// Total returns the number of sites in the spectrum.
func (s Spectrum1D) Total() int {
	n := 0
	for _, c := range s {
		n += c
	}
	return n
}

func (s Spectrum1D) add(o Spectrum1D) {
	for i, c := range o {
		s[i] += c
	}
}

// Spectrum2D is the joint spectrum of two populations: cell (i, j) counts the
// sites with i alternate alleles in population 1 and j in population 2.
type Spectrum2D struct {
	rows, cols int
	counts     []int // row-major
}

// NewSpectrum2D returns a zeroed joint spectrum with the given dimensions.
func NewSpectrum2D(rows, cols int) *Spectrum2D {
	return &Spectrum2D{
		rows:   rows,
		cols:   cols,
		counts: make([]int, rows*cols),
	}
}

// Dims returns the number of rows (population 1 bins) and columns
// (population 2 bins).
func (s *Spectrum2D) Dims() (rows, cols int) {
	return s.rows, s.cols
}

// At returns the count in cell (i, j).
func (s *Spectrum2D) At(i, j int) int {
	return s.counts[i*s.cols+j]
}

// Total returns the number of sites in the spectrum.
func (s *Spectrum2D) Total() int {
	n := 0
	for _, c := range s.counts {
		n += c
	}
	return n
}

func (s *Spectrum2D) inc(i, j int) {
	s.counts[i*s.cols+j]++
}

func (s *Spectrum2D) add(o *Spectrum2D) {
	for i, c := range o.counts {
		s.counts[i] += c
	}
}

// FoldedSpectrum2D is a folded joint spectrum. Cells on the anti-diagonal
// through the centre are halved, so values may be half counts.
type FoldedSpectrum2D struct {
	m *mat.Dense
}

// Dims returns the dimensions of the folded spectrum, which match the
// unfolded joint spectrum it was derived from.
func (f *FoldedSpectrum2D) Dims() (rows, cols int) {
	return f.m.Dims()
}

// At returns the value of cell (i, j).
func (f *FoldedSpectrum2D) At(i, j int) float64 {
	return f.m.At(i, j)
}

// Total returns the sum of all cells.
func (f *FoldedSpectrum2D) Total() float64 {
	return mat.Sum(f.m)
}

// Matrix exposes the folded spectrum as a read-only gonum matrix.
func (f *FoldedSpectrum2D) Matrix() mat.Matrix {
	return f.m
}

// dimensionError reports shards whose spectra cannot be summed.
func dimensionError(what string, got, want int) error {
	return fmt.Errorf("merge spectra: %s has %d bins, want %d", what, got, want)
}
