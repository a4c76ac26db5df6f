package vcf

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParser_TwoPopulationFixture(t *testing.T) {
	testFile := findTestFile(t, "two_populations.vcf")

	parser, err := NewParser(testFile)
	if err != nil {
		t.Fatalf("Failed to create parser: %v", err)
	}
	defer parser.Close()

	v, err := parser.Next()
	if err != nil {
		t.Fatalf("Failed to read variant: %v", err)
	}
	if v == nil {
		t.Fatal("Expected a variant, got nil")
	}

	if v.Chrom != "1" {
		t.Errorf("Expected chrom 1, got %s", v.Chrom)
	}
	if v.Pos != 1000 {
		t.Errorf("Expected pos 1000, got %d", v.Pos)
	}
	if v.Ref != "A" || v.Alt != "G" {
		t.Errorf("Expected A>G, got %s>%s", v.Ref, v.Alt)
	}
	if len(v.Calls) != 4 {
		t.Fatalf("Expected 4 calls, got %d", len(v.Calls))
	}

	want := []IndividualCall{
		{A: GenotypeReference, B: GenotypeAlternate},
		{A: GenotypeReference, B: GenotypeReference},
		{A: GenotypeAlternate, B: GenotypeAlternate},
		{A: GenotypeAlternate, B: GenotypeReference},
	}
	assert.Equal(t, want, v.Calls)

	// Count the remaining variants
	count := 1
	for {
		v, err := parser.Next()
		require.NoError(t, err)
		if v == nil {
			break
		}
		count++
	}
	assert.Equal(t, 4, count)
}

func TestParser_Header(t *testing.T) {
	testFile := findTestFile(t, "two_populations.vcf")

	parser, err := NewParser(testFile)
	require.NoError(t, err)
	defer parser.Close()

	header := parser.Header()
	require.NotEmpty(t, header)
	assert.Equal(t, "##fileformat=VCFv4.2", header[0])
	assert.True(t, strings.HasPrefix(header[len(header)-1], "#CHROM"))
	assert.Equal(t, []string{"a", "b", "c", "d"}, parser.SampleNames())
}

func TestParser_PhasedAndFormatFields(t *testing.T) {
	parser, err := NewParser(findTestFile(t, "two_populations.vcf"))
	require.NoError(t, err)
	defer parser.Close()

	var variants []*Variant
	for {
		v, err := parser.Next()
		require.NoError(t, err)
		if v == nil {
			break
		}
		variants = append(variants, v)
	}
	require.Len(t, variants, 4)

	phased := variants[1]
	for i, c := range phased.Calls {
		assert.True(t, c.Phased, "call %d should be phased", i)
	}

	withDepth := variants[2]
	assert.Equal(t, "GT:DP", withDepth.Format)
	assert.Equal(t, 12.5, withDepth.Qual)
	assert.Equal(t, "q10", withDepth.Filter)
	assert.Equal(t, true, withDepth.Info["DB"])
	assert.Equal(t, "7", withDepth.Info["DP"])
	assert.Equal(t, IndividualCall{A: GenotypeUnknown, B: GenotypeUnknown}, withDepth.Calls[2])
	assert.Equal(t, 1, withDepth.Calls[1].AltCount())
}

func TestParser_SpaceDelimited(t *testing.T) {
	parser, err := NewParser(findTestFile(t, "space_delimited.vcf"))
	require.NoError(t, err)
	defer parser.Close()

	assert.Equal(t, []string{"s1", "s2"}, parser.SampleNames())

	v, err := parser.Next()
	require.NoError(t, err)
	require.NotNil(t, v)
	assert.Equal(t, int64(10), v.Pos)
	require.Len(t, v.Calls, 2)
	assert.Equal(t, 2, v.Calls[1].AltCount())

	v, err = parser.Next()
	require.NoError(t, err)
	require.NotNil(t, v)
	assert.True(t, v.Calls[1].Phased)
}

func TestParser_InvalidRecords(t *testing.T) {
	parser, err := NewParser(findTestFile(t, "invalid_records.vcf"))
	require.NoError(t, err)
	defer parser.Close()

	v, err := parser.Next()
	require.NoError(t, err)
	require.NotNil(t, v)

	// FORMAT does not start with GT
	_, err = parser.Next()
	var rfe *RecordFormatError
	require.True(t, errors.As(err, &rfe), "expected RecordFormatError, got %v", err)
	assert.Equal(t, "1", rfe.Chrom)
	assert.Equal(t, int64(200), rfe.Pos)
	assert.Equal(t, 4, rfe.Line)

	// Haploid genotype token
	_, err = parser.Next()
	require.True(t, errors.As(err, &rfe), "expected RecordFormatError, got %v", err)
	assert.Equal(t, int64(300), rfe.Pos)
	assert.Contains(t, rfe.Error(), `"1"`)

	// A bad record does not poison the following ones
	v, err = parser.Next()
	require.NoError(t, err)
	require.NotNil(t, v)
	assert.Equal(t, int64(400), v.Pos)
}

func TestParser_TooFewColumns(t *testing.T) {
	input := "#CHROM\tPOS\tID\tREF\tALT\tQUAL\tFILTER\tINFO\n1\t100\t.\tA\tG\t10\tPASS\t.\n"
	parser, err := NewParserFromReader(strings.NewReader(input))
	require.NoError(t, err)

	_, err = parser.Next()
	var pe *ParseError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, 2, pe.Line)
}

func TestParser_InvalidPosition(t *testing.T) {
	input := "#CHROM\tPOS\tID\tREF\tALT\tQUAL\tFILTER\tINFO\tFORMAT\ta\n1\tabc\t.\tA\tG\t10\tPASS\t.\tGT\t0/1\n"
	parser, err := NewParserFromReader(strings.NewReader(input))
	require.NoError(t, err)

	_, err = parser.Next()
	var pe *ParseError
	require.True(t, errors.As(err, &pe))
	assert.Contains(t, pe.Message, "invalid position")
}

func TestParser_MissingHeader(t *testing.T) {
	_, err := NewParserFromReader(strings.NewReader("1\t100\t.\tA\tG\t10\tPASS\t.\tGT\t0/1\n"))
	var pe *ParseError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, "expected #CHROM header line", pe.Message)

	_, err = NewParserFromReader(strings.NewReader("##fileformat=VCFv4.2\n"))
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, "no #CHROM header line found", pe.Message)
}

func TestParser_NoTrailingNewline(t *testing.T) {
	input := "#CHROM\tPOS\tID\tREF\tALT\tQUAL\tFILTER\tINFO\tFORMAT\ta\n\n1\t100\t.\tA\tG\t10\tPASS\t.\tGT\t1/1"
	parser, err := NewParserFromReader(strings.NewReader(input))
	require.NoError(t, err)

	v, err := parser.Next()
	require.NoError(t, err)
	require.NotNil(t, v)
	assert.Equal(t, 2, v.Calls[0].AltCount())

	v, err = parser.Next()
	require.NoError(t, err)
	assert.Nil(t, v)
}

func TestParser_Gzipped(t *testing.T) {
	plain, err := os.ReadFile(findTestFile(t, "two_populations.vcf"))
	require.NoError(t, err)

	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	_, err = zw.Write(plain)
	require.NoError(t, err)
	require.NoError(t, zw.Close())

	path := filepath.Join(t.TempDir(), "two_populations.vcf.gz")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))

	parser, err := NewParser(path)
	require.NoError(t, err)
	defer parser.Close()

	count := 0
	for {
		v, err := parser.Next()
		require.NoError(t, err)
		if v == nil {
			break
		}
		count++
	}
	assert.Equal(t, 4, count)
}

func TestParseError(t *testing.T) {
	err := &ParseError{
		Line:    42,
		Message: "expected at least 9 columns, found 7",
	}

	expected := "vcf parse error at line 42: expected at least 9 columns, found 7"
	if err.Error() != expected {
		t.Errorf("Error message mismatch: got %q, want %q", err.Error(), expected)
	}
}

// findTestFile locates a test file in the testdata directory.
func findTestFile(t *testing.T, name string) string {
	t.Helper()

	// Try different relative paths
	paths := []string{
		filepath.Join("testdata", name),
		filepath.Join("..", "..", "testdata", name),
	}

	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}

	t.Fatalf("Test file not found: %s", name)
	return ""
}
