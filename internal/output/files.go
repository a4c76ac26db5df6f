package output

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"go.uber.org/multierr"

	"github.com/inodb/vcf2sfs/internal/sfs"
)

// fileJob is one output file and the spectrum written to it.
type fileJob struct {
	path   string
	format string
	write  func(SpectrumWriter) error
}

// FileName returns the output file name for a format, e.g. "dadi_folded_result.out".
// A non-empty part (such as "pop1") is inserted before name.
func FileName(format string, folded bool, part, name string) string {
	prefix := format + "_"
	if folded {
		prefix += "folded_"
	}
	if part != "" {
		prefix += part + "_"
	}
	return prefix + name
}

// WriteFiles writes the unfolded and folded spectra of res in every format
// to dir. The main files hold the joint spectrum when two populations are
// configured and the population 1 spectrum otherwise; with two populations
// the marginal spectra are written as well under "pop1" and "pop2" names.
// It returns the paths written.
func WriteFiles(dir, name string, formats []string, res *sfs.Result) ([]string, error) {
	for _, format := range formats {
		if !slices.Contains(Formats, format) {
			return nil, fmt.Errorf("unknown output format %q", format)
		}
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create output directory: %w", err)
	}

	var jobs []fileJob
	for _, format := range formats {
		for _, folded := range []bool{false, true} {
			folded := folded // per-iteration copy for the closures below (go < 1.22 loop semantics)
			jobs = append(jobs, fileJob{
				path:   filepath.Join(dir, FileName(format, folded, "", name)),
				format: format,
				write:  func(w SpectrumWriter) error { return Write(w, res, folded) },
			})

			two, ok := res.Spectra.(*sfs.TwoPopulations)
			if !ok {
				continue
			}
			pop1, pop2 := two.Pop1, two.Pop2
			if folded {
				pop1, pop2 = res.Folded.Pop1, res.Folded.Pop2
			}
			jobs = append(jobs,
				fileJob{
					path:   filepath.Join(dir, FileName(format, folded, "pop1", name)),
					format: format,
					write:  func(w SpectrumWriter) error { return w.WriteSpectrum(pop1, folded) },
				},
				fileJob{
					path:   filepath.Join(dir, FileName(format, folded, "pop2", name)),
					format: format,
					write:  func(w SpectrumWriter) error { return w.WriteSpectrum(pop2, folded) },
				},
			)
		}
	}

	paths := make([]string, 0, len(jobs))
	for _, job := range jobs {
		if err := writeFile(job); err != nil {
			return paths, fmt.Errorf("write %s: %w", job.path, err)
		}
		paths = append(paths, job.path)
	}
	return paths, nil
}

func writeFile(job fileJob) (err error) {
	f, err := os.Create(job.path)
	if err != nil {
		return err
	}
	defer multierr.AppendInvoke(&err, multierr.Close(f))

	w, err := NewWriter(job.format, f)
	if err != nil {
		return err
	}
	if err := job.write(w); err != nil {
		return err
	}
	return w.Flush()
}
