package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/inodb/vcf2sfs/internal/output"
	"github.com/inodb/vcf2sfs/internal/population"
	"github.com/inodb/vcf2sfs/internal/sfs"
	"github.com/inodb/vcf2sfs/internal/vcf"
)

// exactArgs wraps cobra.ExactArgs so that a wrong argument count exits with
// the usage code.
func exactArgs(n int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := cobra.ExactArgs(n)(cmd, args); err != nil {
			return usageError{err}
		}
		return nil
	}
}

func newGenerateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate [flags] <input.vcf>",
		Short: "Compute unfolded and folded spectra from a VCF file",
		Long: `Compute site frequency spectra from the genotypes of a VCF file.

The population file has one tab-separated row per VCF sample, in sample
column order: the individual name and its population label, or N/A to leave
the individual out. At most two populations are supported. With two
populations the joint spectrum is written along with each population's own
spectrum.

Output files are named <format>_<name> and <format>_folded_<name>.`,
		Example: `  vcf2sfs generate -p popfile.txt input.vcf
  vcf2sfs generate -p popfile.txt -o results -n chr22.sfs input.vcf.gz
  vcf2sfs generate -p popfile.txt --formats dadi --skip-invalid input.vcf
  cat input.vcf | vcf2sfs generate -p popfile.txt -`,
		Args: exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(cmd.Context(), args[0])
		},
	}

	f := cmd.Flags()
	f.StringP("populations", "p", "", "Population file (required)")
	f.StringP("output-dir", "o", ".", "Output directory")
	f.StringP("name", "n", "result.out", "Base name of the output files")
	f.StringSlice("formats", output.Formats, "Output formats: dadi, fsc")
	f.Bool("skip-invalid", false, "Skip malformed records with a warning instead of failing")
	f.Bool("strict-samples", false, "Fail when population file names differ from the VCF header")
	f.Int("progress", sfs.DefaultProgressInterval, "Log progress every N sites (0 disables)")

	bindFlags(cmd, map[string]string{
		"input.populations":     "populations",
		"input.skip_invalid":    "skip-invalid",
		"input.strict_samples":  "strict-samples",
		"output.dir":            "output-dir",
		"output.name":           "name",
		"output.formats":        "formats",
		"log.progress_interval": "progress",
	})

	return cmd
}

// bindFlags binds config keys to the command's flags.
func bindFlags(cmd *cobra.Command, keys map[string]string) {
	for key, flag := range keys {
		_ = viper.BindPFlag(key, cmd.Flags().Lookup(flag))
	}
}

func runGenerate(ctx context.Context, inputPath string) error {
	popPath := viper.GetString("input.populations")
	if popPath == "" {
		return usageError{errors.New("a population file is required (--populations)")}
	}

	logger, err := newLogger(viper.GetBool("log.verbose"))
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}
	defer logger.Sync() //nolint:errcheck

	assignment, err := population.ReadFile(popPath)
	if err != nil {
		return err
	}
	logger.Debug("population file read",
		zap.String("path", popPath),
		zap.Int("individuals", assignment.Len()),
		zap.Strings("populations", assignment.Names()))

	parser, err := vcf.NewParser(inputPath)
	if err != nil {
		return err
	}
	defer parser.Close()

	if err := assignment.CheckSamples(parser.SampleNames()); err != nil {
		if viper.GetBool("input.strict_samples") {
			return fmt.Errorf("population file does not match VCF samples: %w", err)
		}
		logger.Warn("population file does not match VCF samples; individuals are matched by column order",
			zap.Error(err))
	}

	gen := sfs.NewGenerator(assignment)
	gen.SetLogger(logger.Named("sfs"))
	gen.SetSkipInvalid(viper.GetBool("input.skip_invalid"))
	gen.SetProgressInterval(viper.GetInt("log.progress_interval"))

	logger.Info("reading variants", zap.String("input", inputPath))
	if err := gen.ObserveAll(ctx, parser); err != nil {
		return err
	}

	res, err := gen.Finalize()
	if err != nil {
		return err
	}

	paths, err := output.WriteFiles(
		viper.GetString("output.dir"),
		viper.GetString("output.name"),
		viper.GetStringSlice("output.formats"),
		res,
	)
	if err != nil {
		return err
	}
	for _, p := range paths {
		logger.Info("wrote spectrum", zap.String("path", p))
	}

	return nil
}
