package vcf

import (
	"fmt"
	"strings"
)

// Variant represents a single genomic site from a VCF file together with
// the genotype calls of every individual in the cohort.
type Variant struct {
	Chrom  string                 // Chromosome name (e.g., "12", "chr12")
	Pos    int64                  // 1-based genomic position
	ID     string                 // Variant identifier (e.g., rs ID)
	Ref    string                 // Reference allele
	Alt    string                 // Alternate allele
	Qual   float64                // Quality score
	Filter string                 // Filter status (PASS or filter name)
	Info   map[string]interface{} // INFO field key-value pairs
	Format string                 // FORMAT descriptor (e.g., "GT:DP")

	// Calls holds one entry per individual, in sample column order.
	// The slice index is the individual index.
	Calls []IndividualCall
}

// Validate checks that the FORMAT descriptor declares GT as its first key.
func (v *Variant) Validate() error {
	if v.Format != "GT" && !strings.HasPrefix(v.Format, "GT:") {
		return &RecordFormatError{
			Chrom:   v.Chrom,
			Pos:     v.Pos,
			Message: fmt.Sprintf("FORMAT %q does not start with a GT field", v.Format),
		}
	}
	return nil
}

// Location returns the site as "chrom:pos".
func (v *Variant) Location() string {
	return fmt.Sprintf("%s:%d", v.Chrom, v.Pos)
}

// RecordFormatError reports a structurally invalid record. It is fatal to the
// record only; the caller decides whether to skip it or abort.
type RecordFormatError struct {
	Line    int
	Chrom   string
	Pos     int64
	Message string
}

func (e *RecordFormatError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("vcf record error at line %d (%s:%d): %s", e.Line, e.Chrom, e.Pos, e.Message)
	}
	return fmt.Sprintf("vcf record error at %s:%d: %s", e.Chrom, e.Pos, e.Message)
}
