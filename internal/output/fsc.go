package output

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/inodb/vcf2sfs/internal/sfs"
)

// observationsLine opens every fastsimcoal2 observed SFS file.
const observationsLine = "1 observations"

// FscWriter writes spectra in the fastsimcoal2 observed SFS format.
type FscWriter struct {
	w *bufio.Writer
}

// NewFscWriter creates a new fastsimcoal2 writer.
func NewFscWriter(w io.Writer) *FscWriter {
	return &FscWriter{w: bufio.NewWriter(w)}
}

// WriteSpectrum writes a one-population spectrum as a header row of bin
// names (d0_0, d0_1, ...) followed by the counts. The fold state is carried
// by the file name only.
func (fw *FscWriter) WriteSpectrum(s sfs.Spectrum1D, _ bool) error {
	names := make([]string, len(s))
	values := make([]string, len(s))
	for i, c := range s {
		names[i] = "d0_" + strconv.Itoa(i)
		values[i] = strconv.Itoa(c)
	}

	lines := []string{
		observationsLine,
		strings.Join(names, "\t"),
		strings.Join(values, "\t"),
	}
	_, err := fw.w.WriteString(strings.Join(lines, "\n") + "\n")
	return err
}

// WriteJoint writes an unfolded joint spectrum.
func (fw *FscWriter) WriteJoint(j *sfs.Spectrum2D) error {
	return fw.writeGrid(jointGrid{j})
}

// WriteFoldedJoint writes a folded joint spectrum.
func (fw *FscWriter) WriteFoldedJoint(f *sfs.FoldedSpectrum2D) error {
	return fw.writeGrid(foldedGrid{f})
}

// writeGrid writes a joint matrix: population 2 bins across (d_0, d_1, ...)
// and one row per population 1 bin.
func (fw *FscWriter) writeGrid(g grid) error {
	rows, cols := g.Dims()

	var b strings.Builder
	b.WriteString(observationsLine)
	b.WriteByte('\n')
	for j := 0; j < cols; j++ {
		b.WriteString("\td_")
		b.WriteString(strconv.Itoa(j))
	}
	b.WriteByte('\n')

	for i := 0; i < rows; i++ {
		b.WriteString("d_")
		b.WriteString(strconv.Itoa(i))
		for j := 0; j < cols; j++ {
			b.WriteByte('\t')
			b.WriteString(g.cell(i, j))
		}
		b.WriteByte('\n')
	}

	_, err := fw.w.WriteString(b.String())
	return err
}

// Flush flushes any buffered data to the underlying writer.
func (fw *FscWriter) Flush() error {
	return fw.w.Flush()
}
