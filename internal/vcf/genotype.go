package vcf

// Genotype is the allele state of one genome copy at a site.
type Genotype uint8

const (
	GenotypeUnknown Genotype = iota
	GenotypeReference
	GenotypeAlternate
)

// ParseGenotype maps a single allele token to a Genotype.
// "0" is the reference allele, "1" the alternate allele, and anything else
// (missing calls, higher allele indices) is unknown.
func ParseGenotype(token string) Genotype {
	switch token {
	case "0":
		return GenotypeReference
	case "1":
		return GenotypeAlternate
	default:
		return GenotypeUnknown
	}
}

func (g Genotype) String() string {
	switch g {
	case GenotypeReference:
		return "REF"
	case GenotypeAlternate:
		return "ALT"
	default:
		return "UNKNOWN"
	}
}

// IndividualCall is one individual's diploid genotype at a site.
// A and B keep the order of the input token.
type IndividualCall struct {
	A      Genotype
	B      Genotype
	Phased bool
}

// AltCount returns how many of the two slots carry the alternate allele.
func (c IndividualCall) AltCount() int {
	n := 0
	if c.A == GenotypeAlternate {
		n++
	}
	if c.B == GenotypeAlternate {
		n++
	}
	return n
}

// parseCall parses the GT component of a sample column, e.g. "0|1" or "./.".
// The token must be exactly two alleles joined by '/' (unphased) or '|' (phased).
func parseCall(token string) (IndividualCall, bool) {
	if len(token) != 3 {
		return IndividualCall{}, false
	}
	var phased bool
	switch token[1] {
	case '|':
		phased = true
	case '/':
	default:
		return IndividualCall{}, false
	}
	return IndividualCall{
		A:      ParseGenotype(token[0:1]),
		B:      ParseGenotype(token[2:3]),
		Phased: phased,
	}, true
}
