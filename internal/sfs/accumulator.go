package sfs

import (
	"fmt"

	"github.com/inodb/vcf2sfs/internal/population"
	"github.com/inodb/vcf2sfs/internal/vcf"
)

// Spectra is the set of unfolded spectra of a run. It is either
// *OnePopulation or *TwoPopulations, chosen once from the population
// assignment.
type Spectra interface {
	// Populations returns 1 or 2.
	Populations() int
	isSpectra()
}

// OnePopulation holds the spectrum of a run with at most one population.
// With no population at all Pop1 has a single bin.
type OnePopulation struct {
	Pop1 Spectrum1D
}

func (*OnePopulation) Populations() int { return 1 }
func (*OnePopulation) isSpectra()       {}

// TwoPopulations holds both marginal spectra and the joint spectrum.
type TwoPopulations struct {
	Pop1  Spectrum1D
	Pop2  Spectrum1D
	Joint *Spectrum2D
}

func (*TwoPopulations) Populations() int { return 2 }
func (*TwoPopulations) isSpectra()       {}

// Accumulator counts alternate alleles per population for each observed site
// and bins the site into the spectra.
type Accumulator struct {
	assignment *population.Assignment
	spectra    Spectra
	record     func(alt1, alt2 int) error
	sites      int
}

// NewAccumulator creates an accumulator with zeroed spectra sized from a.
func NewAccumulator(a *population.Assignment) *Accumulator {
	acc := &Accumulator{assignment: a}
	pop1 := NewSpectrum1D(a.Size(population.First))

	if a.Count() == population.MaxPopulations {
		pop2 := NewSpectrum1D(a.Size(population.Second))
		two := &TwoPopulations{
			Pop1:  pop1,
			Pop2:  pop2,
			Joint: NewSpectrum2D(len(pop1), len(pop2)),
		}
		acc.spectra = two
		acc.record = two.record
		return acc
	}

	one := &OnePopulation{Pop1: pop1}
	acc.spectra = one
	acc.record = func(alt1, _ int) error { return one.record(alt1) }
	return acc
}

// Observe adds one site to the spectra. Only alternate alleles are counted;
// reference and unknown alleles contribute nothing. Individuals outside both
// populations are ignored.
func (acc *Accumulator) Observe(v *vcf.Variant) error {
	var alt1, alt2 int
	for i, call := range v.Calls {
		n := call.AltCount()
		if n == 0 {
			continue
		}
		switch acc.assignment.Of(i) {
		case population.First:
			alt1 += n
		case population.Second:
			alt2 += n
		}
	}

	if err := acc.record(alt1, alt2); err != nil {
		return err
	}
	acc.sites++
	return nil
}

// Merge adds the spectra of another accumulator built from an assignment of
// the same shape. Shards must be merged before folding.
func (acc *Accumulator) Merge(o *Accumulator) error {
	switch s := acc.spectra.(type) {
	case *OnePopulation:
		t, ok := o.spectra.(*OnePopulation)
		if !ok {
			return fmt.Errorf("merge spectra: population count %d, want 1", o.spectra.Populations())
		}
		if len(t.Pop1) != len(s.Pop1) {
			return dimensionError("population 1", len(t.Pop1), len(s.Pop1))
		}
		s.Pop1.add(t.Pop1)

	case *TwoPopulations:
		t, ok := o.spectra.(*TwoPopulations)
		if !ok {
			return fmt.Errorf("merge spectra: population count %d, want 2", o.spectra.Populations())
		}
		if len(t.Pop1) != len(s.Pop1) {
			return dimensionError("population 1", len(t.Pop1), len(s.Pop1))
		}
		if len(t.Pop2) != len(s.Pop2) {
			return dimensionError("population 2", len(t.Pop2), len(s.Pop2))
		}
		s.Pop1.add(t.Pop1)
		s.Pop2.add(t.Pop2)
		s.Joint.add(t.Joint)
	}

	acc.sites += o.sites
	return nil
}

// Spectra returns the accumulated spectra. Callers must not modify them.
func (acc *Accumulator) Spectra() Spectra {
	return acc.spectra
}

// Sites returns the number of observed sites.
func (acc *Accumulator) Sites() int {
	return acc.sites
}

func (s *OnePopulation) record(alt1 int) error {
	if err := checkBin(population.First, alt1, len(s.Pop1)); err != nil {
		return err
	}
	s.Pop1[alt1]++
	return nil
}

// record bins a site into both marginals and the joint spectrum. Nothing is
// incremented unless every index is in range.
func (s *TwoPopulations) record(alt1, alt2 int) error {
	if err := checkBin(population.First, alt1, len(s.Pop1)); err != nil {
		return err
	}
	if err := checkBin(population.Second, alt2, len(s.Pop2)); err != nil {
		return err
	}
	s.Pop1[alt1]++
	s.Pop2[alt2]++
	s.Joint.inc(alt1, alt2)
	return nil
}

func checkBin(pop population.Membership, count, size int) error {
	if count < 0 || count >= size {
		return &InternalInvariantError{Population: pop, Count: count, Size: size}
	}
	return nil
}

// InternalInvariantError reports an alternate allele count that does not fit
// the population's spectrum. It means the assignment and the spectrum sizes
// disagree.
type InternalInvariantError struct {
	Population population.Membership
	Count      int
	Size       int
}

func (e *InternalInvariantError) Error() string {
	return fmt.Sprintf("sfs invariant violated: %s alt count %d outside spectrum of %d bins",
		e.Population, e.Count, e.Size)
}
