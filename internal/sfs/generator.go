package sfs

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/inodb/vcf2sfs/internal/population"
	"github.com/inodb/vcf2sfs/internal/vcf"
)

// DefaultProgressInterval is the number of sites between progress messages.
const DefaultProgressInterval = 10000

// ErrFinalized is returned when a finalized generator is used again.
var ErrFinalized = errors.New("sfs: generator already finalized")

// State is the lifecycle stage of a Generator.
type State int

const (
	StateConfigured State = iota
	StateAccumulating
	StateFinalized
)

func (s State) String() string {
	switch s {
	case StateConfigured:
		return "configured"
	case StateAccumulating:
		return "accumulating"
	case StateFinalized:
		return "finalized"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Result is the output of a finalized run.
type Result struct {
	Populations []string // population labels, in assignment order
	Sites       int      // sites binned into the spectra
	Skipped     int      // invalid records skipped
	Spectra     Spectra
	Folded      *Folded
}

// Generator drives a run: it feeds variants to an Accumulator, reports
// progress and produces the folded spectra once all input is consumed.
// A Generator cannot be reused after Finalize.
type Generator struct {
	assignment       *population.Assignment
	acc              *Accumulator
	state            State
	skipInvalid      bool
	progressInterval int
	skipped          int
	logger           *zap.Logger
}

// NewGenerator creates a generator for the given population assignment.
func NewGenerator(a *population.Assignment) *Generator {
	return &Generator{
		assignment:       a,
		acc:              NewAccumulator(a),
		progressInterval: DefaultProgressInterval,
		logger:           zap.NewNop(),
	}
}

// SetLogger sets the logger for progress and warning messages.
func (g *Generator) SetLogger(l *zap.Logger) {
	g.logger = l
}

// SetSkipInvalid configures whether malformed records are skipped with a
// warning instead of aborting the run.
func (g *Generator) SetSkipInvalid(skip bool) {
	g.skipInvalid = skip
}

// SetProgressInterval sets how many sites pass between progress messages.
// Zero disables progress messages.
func (g *Generator) SetProgressInterval(n int) {
	g.progressInterval = n
}

// State returns the current lifecycle stage.
func (g *Generator) State() State {
	return g.state
}

// Observe adds a single variant to the spectra.
func (g *Generator) Observe(v *vcf.Variant) error {
	if g.state == StateFinalized {
		return ErrFinalized
	}
	g.state = StateAccumulating

	if err := g.acc.Observe(v); err != nil {
		return fmt.Errorf("observe %s: %w", v.Location(), err)
	}
	return nil
}

// ObserveAll reads every variant from parser. Record format and parse errors
// abort the run unless skipping is enabled; read errors always abort.
// Cancelling ctx stops the run between records and leaves the spectra
// consistent but incomplete.
func (g *Generator) ObserveAll(ctx context.Context, parser vcf.VariantParser) error {
	if g.state == StateFinalized {
		return ErrFinalized
	}
	g.logPopulations()

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		v, err := parser.Next()
		if err != nil {
			if g.skipInvalid && g.skip(err, parser.LineNumber()) {
				continue
			}
			return fmt.Errorf("read variant: %w", err)
		}
		if v == nil {
			break
		}

		if err := g.Observe(v); err != nil {
			return err
		}

		if n := g.acc.Sites(); g.progressInterval > 0 && n%g.progressInterval == 0 {
			g.logger.Info("accumulating",
				zap.Int("sites", n),
				zap.Int("line", parser.LineNumber()))
		}
	}

	return nil
}

// skip logs and counts a malformed record. It reports false for errors that
// are not confined to a single record.
func (g *Generator) skip(err error, line int) bool {
	var rfe *vcf.RecordFormatError
	var pe *vcf.ParseError
	switch {
	case errors.As(err, &rfe):
		g.logger.Warn("skipping invalid record",
			zap.String("chrom", rfe.Chrom),
			zap.Int64("pos", rfe.Pos),
			zap.Int("line", line),
			zap.Error(err))
	case errors.As(err, &pe):
		g.logger.Warn("skipping unparsable line",
			zap.Int("line", line),
			zap.Error(err))
	default:
		return false
	}
	g.skipped++
	return true
}

func (g *Generator) logPopulations() {
	names := g.assignment.Names()
	switch len(names) {
	case 0:
		g.logger.Warn("no population configured, every site falls in bin 0",
			zap.Int("individuals", g.assignment.Len()))
	case 1:
		g.logger.Info("single population",
			zap.String("population", names[0]),
			zap.Ints("indices", g.assignment.Indices(population.First)))
	default:
		g.logger.Info("two populations",
			zap.Strings("populations", names),
			zap.Ints("pop1_indices", g.assignment.Indices(population.First)),
			zap.Ints("pop2_indices", g.assignment.Indices(population.Second)))
	}
}

// Merge adds the spectra accumulated by another generator over a disjoint
// part of the input. Both generators must still be accumulating or
// configured.
func (g *Generator) Merge(o *Generator) error {
	if g.state == StateFinalized || o.state == StateFinalized {
		return ErrFinalized
	}
	if err := g.acc.Merge(o.acc); err != nil {
		return err
	}
	g.skipped += o.skipped
	if o.state == StateAccumulating {
		g.state = StateAccumulating
	}
	return nil
}

// Finalize computes the folded spectra and ends the run.
func (g *Generator) Finalize() (*Result, error) {
	if g.state == StateFinalized {
		return nil, ErrFinalized
	}
	g.state = StateFinalized

	spectra := g.acc.Spectra()
	res := &Result{
		Populations: g.assignment.Names(),
		Sites:       g.acc.Sites(),
		Skipped:     g.skipped,
		Spectra:     spectra,
		Folded:      FoldSpectra(spectra),
	}

	g.logger.Info("spectra finalized",
		zap.Int("sites", res.Sites),
		zap.Int("skipped", res.Skipped),
		zap.Int("populations", spectra.Populations()))

	return res, nil
}
