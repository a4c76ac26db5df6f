package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/inodb/vcf2sfs/internal/population"
	"github.com/inodb/vcf2sfs/internal/vcf"
)

func newPopulationsCmd() *cobra.Command {
	var vcfPath string

	cmd := &cobra.Command{
		Use:   "populations <popfile>",
		Short: "Show how a population file assigns individuals",
		Long: `Show the populations read from a population file, the individual indices
in each, and the spectrum sizes they lead to. With --vcf the names are
checked against the sample columns of the VCF header.`,
		Example: `  vcf2sfs populations popfile.txt
  vcf2sfs populations --vcf input.vcf popfile.txt`,
		Args: exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPopulations(cmd.OutOrStdout(), args[0], vcfPath)
		},
	}

	cmd.Flags().StringVar(&vcfPath, "vcf", "", "VCF file whose sample names are checked")

	return cmd
}

func runPopulations(w io.Writer, popPath, vcfPath string) error {
	a, err := population.ReadFile(popPath)
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "Individuals: %d\n", a.Len())
	fmt.Fprintf(w, "Populations: %d\n", a.Count())
	for i, name := range a.Names() {
		m := population.Membership(i + 1)
		fmt.Fprintf(w, "  %s (%s): %d individuals, %d spectrum bins, indices %v\n",
			name, m, a.Size(m), 2*a.Size(m)+1, a.Indices(m))
	}

	excluded := 0
	for i := 0; i < a.Len(); i++ {
		if a.Of(i) == population.None {
			excluded++
		}
	}
	fmt.Fprintf(w, "Excluded: %d\n", excluded)

	if vcfPath == "" {
		return nil
	}

	parser, err := vcf.NewParser(vcfPath)
	if err != nil {
		return err
	}
	defer parser.Close()

	if err := a.CheckSamples(parser.SampleNames()); err != nil {
		fmt.Fprintf(w, "Sample check: %v\n", err)
		return nil
	}
	fmt.Fprintf(w, "Sample check: OK\n")
	return nil
}
