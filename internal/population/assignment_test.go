package population

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuild_TwoPopulations(t *testing.T) {
	a, err := Build([]Row{
		{"a", "P1"},
		{"b", "P2"},
		{"c", "N/A"},
		{"d", "P1"},
	})
	require.NoError(t, err)

	assert.Equal(t, 2, a.Count())
	assert.Equal(t, []string{"P1", "P2"}, a.Names())
	assert.Equal(t, []int{0, 3}, a.Indices(First))
	assert.Equal(t, []int{1}, a.Indices(Second))
	assert.Equal(t, None, a.Of(2))
	assert.Equal(t, 2, a.Size(First))
	assert.Equal(t, 1, a.Size(Second))
	assert.Equal(t, 4, a.Len())
}

func TestBuild_Membership(t *testing.T) {
	a, err := Build([]Row{{"a", "YRI"}, {"b", "CEU"}, {"c", "N/A"}})
	require.NoError(t, err)

	tests := []struct {
		index int
		want  Membership
	}{
		{0, First},
		{1, Second},
		{2, None},
		{3, None},
		{-1, None},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, a.Of(tt.index), "index %d", tt.index)
	}
}

func TestBuild_OnePopulation(t *testing.T) {
	a, err := Build([]Row{{"a", "N/A"}, {"b", "P1"}, {"c", "P1"}})
	require.NoError(t, err)

	assert.Equal(t, 1, a.Count())
	assert.Equal(t, []int{1, 2}, a.Indices(First))
	assert.Empty(t, a.Indices(Second))
	assert.Equal(t, 0, a.Size(Second))
}

func TestBuild_NoPopulations(t *testing.T) {
	a, err := Build([]Row{{"a", "N/A"}, {"b", "N/A"}})
	require.NoError(t, err)

	assert.Equal(t, 0, a.Count())
	assert.Empty(t, a.Names())
	assert.Empty(t, a.Indices(First))
	assert.Equal(t, 2, a.Len())
}

func TestBuild_ThirdPopulation(t *testing.T) {
	a, err := Build([]Row{{"a", "P1"}, {"b", "P2"}, {"c", "P1"}, {"d", "P3"}})
	assert.Nil(t, a)

	var ce *ConfigError
	require.True(t, errors.As(err, &ce))
	assert.Equal(t, 4, ce.Line)
	assert.Contains(t, ce.Message, "P3")
}

func TestBuild_MissingField(t *testing.T) {
	for _, row := range []Row{{"a", ""}, {"", "P1"}} {
		a, err := Build([]Row{{"x", "P1"}, row})
		assert.Nil(t, a)

		var ce *ConfigError
		require.True(t, errors.As(err, &ce))
		assert.Equal(t, 2, ce.Line)
	}
}

func TestBuild_AccessorsReturnCopies(t *testing.T) {
	a, err := Build([]Row{{"a", "P1"}, {"b", "P1"}})
	require.NoError(t, err)

	idx := a.Indices(First)
	idx[0] = 99
	names := a.Names()
	names[0] = "changed"

	assert.Equal(t, []int{0, 1}, a.Indices(First))
	assert.Equal(t, []string{"P1"}, a.Names())
	assert.Nil(t, a.Indices(None))
}

func TestCheckSamples(t *testing.T) {
	a, err := Build([]Row{{"a", "P1"}, {"b", "P2"}})
	require.NoError(t, err)

	assert.NoError(t, a.CheckSamples([]string{"a", "b"}))
	assert.ErrorContains(t, a.CheckSamples([]string{"b", "a"}), `individual 0 is "a"`)
	assert.ErrorContains(t, a.CheckSamples([]string{"a"}), "lists 2 individuals")
}

func TestMembership_String(t *testing.T) {
	assert.Equal(t, "population 1", First.String())
	assert.Equal(t, "population 2", Second.String())
	assert.Equal(t, "excluded", None.String())
}

func TestReadRows(t *testing.T) {
	input := "a\tP1\nb\t\tP2\textra\n\nc\tN/A\r\n"
	rows, err := ReadRows(strings.NewReader(input))
	require.NoError(t, err)

	assert.Equal(t, []Row{{"a", "P1"}, {"b", "P2"}, {"c", "N/A"}}, rows)
}

func TestReadRows_SingleColumn(t *testing.T) {
	_, err := ReadRows(strings.NewReader("a\tP1\nb P2\n"))

	var ce *ConfigError
	require.True(t, errors.As(err, &ce))
	assert.Equal(t, 2, ce.Line)
	assert.Equal(t, `population config error at line 2: expected individual and population separated by a tab, found "b P2"`, ce.Error())
}

func TestReadFile(t *testing.T) {
	a, err := ReadFile(filepath.Join("..", "..", "testdata", "two_populations.pop"))
	require.NoError(t, err)

	assert.Equal(t, []string{"P1", "P2"}, a.Names())
	assert.Equal(t, []string{"a", "b", "c", "d"}, a.Samples())
	assert.Equal(t, []int{0, 3}, a.Indices(First))
}

func TestReadFile_Missing(t *testing.T) {
	_, err := ReadFile(filepath.Join(t.TempDir(), "missing.pop"))
	assert.True(t, errors.Is(err, os.ErrNotExist))
}
