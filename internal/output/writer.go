// Package output provides spectrum output formatters.
package output

import (
	"fmt"
	"io"
	"strconv"

	"github.com/inodb/vcf2sfs/internal/sfs"
)

// Supported output formats.
const (
	FormatDadi = "dadi"
	FormatFsc  = "fsc"
)

// Formats lists every supported output format.
var Formats = []string{FormatDadi, FormatFsc}

// SpectrumWriter writes spectra in one text format.
type SpectrumWriter interface {
	WriteSpectrum(s sfs.Spectrum1D, folded bool) error
	WriteJoint(j *sfs.Spectrum2D) error
	WriteFoldedJoint(f *sfs.FoldedSpectrum2D) error
	Flush() error
}

// NewWriter returns the SpectrumWriter for format.
func NewWriter(format string, w io.Writer) (SpectrumWriter, error) {
	switch format {
	case FormatDadi:
		return NewDadiWriter(w), nil
	case FormatFsc:
		return NewFscWriter(w), nil
	default:
		return nil, fmt.Errorf("unknown output format %q", format)
	}
}

// Write writes the main spectrum of res: the joint spectrum with two
// populations, the population 1 spectrum otherwise.
func Write(w SpectrumWriter, res *sfs.Result, folded bool) error {
	switch s := res.Spectra.(type) {
	case *sfs.TwoPopulations:
		if folded {
			return w.WriteFoldedJoint(res.Folded.Joint)
		}
		return w.WriteJoint(s.Joint)
	case *sfs.OnePopulation:
		if folded {
			return w.WriteSpectrum(res.Folded.Pop1, true)
		}
		return w.WriteSpectrum(s.Pop1, false)
	default:
		return fmt.Errorf("unsupported spectra %T", res.Spectra)
	}
}

// grid is a rectangular view over a spectrum.
type grid interface {
	Dims() (rows, cols int)
	cell(i, j int) string
}

type spectrumGrid sfs.Spectrum1D

func (g spectrumGrid) Dims() (int, int)     { return 1, len(g) }
func (g spectrumGrid) cell(_, j int) string { return strconv.Itoa(g[j]) }

type jointGrid struct{ *sfs.Spectrum2D }

func (g jointGrid) cell(i, j int) string { return strconv.Itoa(g.At(i, j)) }

type foldedGrid struct{ *sfs.FoldedSpectrum2D }

func (g foldedGrid) cell(i, j int) string { return formatCount(g.At(i, j)) }

// formatCount prints whole counts without a decimal point and half counts in
// shortest form.
func formatCount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
