// Package population assigns the individuals of a VCF cohort to at most two
// populations.
//
// Assignment is positional: row i of the population file describes the
// individual in sample column i of every VCF record. Names are carried for
// reporting only.
package population

import (
	"fmt"
	"strings"
)

// Excluded is the label that removes an individual from both populations.
const Excluded = "N/A"

// MaxPopulations is the number of distinct populations a spectrum can hold.
const MaxPopulations = 2

// Membership is the population an individual belongs to.
type Membership uint8

const (
	None Membership = iota
	First
	Second
)

func (m Membership) String() string {
	switch m {
	case First:
		return "population 1"
	case Second:
		return "population 2"
	default:
		return "excluded"
	}
}

// Row is one line of the population file.
type Row struct {
	Name  string
	Label string
}

// Assignment maps individual indices to populations. It is immutable once
// built.
type Assignment struct {
	names      []string     // distinct labels in first-seen order
	samples    []string     // individual names by index
	membership []Membership // by individual index
	indices    [MaxPopulations][]int
}

// Build creates an Assignment from rows in cohort order. The first distinct
// label becomes population 1 and the second population 2. It returns a
// *ConfigError for a row missing its name or label and for a third label.
func Build(rows []Row) (*Assignment, error) {
	a := &Assignment{
		samples:    make([]string, len(rows)),
		membership: make([]Membership, len(rows)),
	}

	for i, row := range rows {
		if row.Name == "" || row.Label == "" {
			return nil, &ConfigError{
				Line:    i + 1,
				Message: fmt.Sprintf("expected individual and population, found %q", strings.TrimSpace(row.Name+"\t"+row.Label)),
			}
		}
		a.samples[i] = row.Name

		if row.Label == Excluded {
			continue
		}

		pop := -1
		for j, name := range a.names {
			if name == row.Label {
				pop = j
				break
			}
		}
		if pop < 0 {
			if len(a.names) == MaxPopulations {
				return nil, &ConfigError{
					Line: i + 1,
					Message: fmt.Sprintf("population %q: at most %d populations are supported (have %s)",
						row.Label, MaxPopulations, strings.Join(a.names, ", ")),
				}
			}
			a.names = append(a.names, row.Label)
			pop = len(a.names) - 1
		}

		a.membership[i] = Membership(pop + 1)
		a.indices[pop] = append(a.indices[pop], i)
	}

	return a, nil
}

// Count returns the number of distinct populations (0, 1 or 2).
func (a *Assignment) Count() int {
	return len(a.names)
}

// Names returns the population labels in assignment order.
func (a *Assignment) Names() []string {
	return append([]string(nil), a.names...)
}

// Samples returns the individual names in cohort order.
func (a *Assignment) Samples() []string {
	return append([]string(nil), a.samples...)
}

// Len returns the number of rows the assignment was built from.
func (a *Assignment) Len() int {
	return len(a.membership)
}

// Of returns the membership of the individual at index i. Indices outside
// the population file are excluded.
func (a *Assignment) Of(i int) Membership {
	if i < 0 || i >= len(a.membership) {
		return None
	}
	return a.membership[i]
}

// Indices returns the individual indices of population m in ascending order.
func (a *Assignment) Indices(m Membership) []int {
	if m != First && m != Second {
		return nil
	}
	return append([]int(nil), a.indices[m-1]...)
}

// Size returns the number of individuals in population m.
func (a *Assignment) Size(m Membership) int {
	if m != First && m != Second {
		return 0
	}
	return len(a.indices[m-1])
}

// CheckSamples compares the population file names with the sample names of
// a VCF header. Because assignment is positional, a mismatch usually means
// the file rows are out of order. It returns nil when they agree.
func (a *Assignment) CheckSamples(vcfSamples []string) error {
	if len(vcfSamples) != len(a.samples) {
		return fmt.Errorf("population file lists %d individuals, VCF header has %d samples",
			len(a.samples), len(vcfSamples))
	}
	for i, name := range a.samples {
		if vcfSamples[i] != name {
			return fmt.Errorf("individual %d is %q in the population file but %q in the VCF header",
				i, name, vcfSamples[i])
		}
	}
	return nil
}

// ConfigError reports an invalid population file. It is fatal to the run.
type ConfigError struct {
	Line    int
	Message string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("population config error at line %d: %s", e.Line, e.Message)
}
