package output

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/inodb/vcf2sfs/internal/sfs"
)

// DadiWriter writes spectra in the dadi text format: a line with the
// dimensions and the fold state, then every value in row-major order.
type DadiWriter struct {
	w *bufio.Writer
}

// NewDadiWriter creates a new dadi writer.
func NewDadiWriter(w io.Writer) *DadiWriter {
	return &DadiWriter{w: bufio.NewWriter(w)}
}

// WriteSpectrum writes a one-population spectrum.
func (dw *DadiWriter) WriteSpectrum(s sfs.Spectrum1D, folded bool) error {
	return dw.write([]int{len(s)}, spectrumGrid(s), folded)
}

// WriteJoint writes an unfolded joint spectrum.
func (dw *DadiWriter) WriteJoint(j *sfs.Spectrum2D) error {
	rows, cols := j.Dims()
	return dw.write([]int{rows, cols}, jointGrid{j}, false)
}

// WriteFoldedJoint writes a folded joint spectrum.
func (dw *DadiWriter) WriteFoldedJoint(f *sfs.FoldedSpectrum2D) error {
	rows, cols := f.Dims()
	return dw.write([]int{rows, cols}, foldedGrid{f}, true)
}

func (dw *DadiWriter) write(dims []int, g grid, folded bool) error {
	header := make([]string, 0, len(dims)+1)
	for _, d := range dims {
		header = append(header, strconv.Itoa(d))
	}
	if folded {
		header = append(header, "folded")
	} else {
		header = append(header, "unfolded")
	}
	if _, err := dw.w.WriteString(strings.Join(header, " ") + "\n"); err != nil {
		return err
	}

	rows, cols := g.Dims()
	values := make([]string, 0, rows*cols)
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			values = append(values, g.cell(i, j))
		}
	}
	_, err := dw.w.WriteString(strings.Join(values, " ") + "\n")
	return err
}

// Flush flushes any buffered data to the underlying writer.
func (dw *DadiWriter) Flush() error {
	return dw.w.Flush()
}
