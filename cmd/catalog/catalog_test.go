package catalog

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommentString(t *testing.T) {
	tests := []struct {
		names []string
		out   string
	}{
		{[]string{}, "# Column contents:"},
		{[]string{"z"}, "# Column contents: z(0)"},
		{[]string{"z", "H", "age"}, "# Column contents: z(0) H(1) age(2)"},
	}

	for i, test := range tests {
		out := CommentString(test.names)
		if out != test.out {
			t.Errorf("%d) Expected '%s', got '%s'.", i, test.out, out)
		}
	}
}

func TestFormatCols(t *testing.T) {
	lines := FormatCols([][]float64{{0, 10}, {1.5, -2}})
	require.Len(t, lines, 2)
	assert.Equal(t, " 0 1.5", lines[0])
	assert.Equal(t, "10  -2", lines[1])

	assert.Empty(t, FormatCols(nil))
	assert.Panics(t, func() { FormatCols([][]float64{{1}, {1, 2}}) })
}

func TestParse(t *testing.T) {
	text := `# z  weight
0    1
0.5  2 # trailing

  1e3 3
`
	cols, err := Parse([]byte(text), []int{0, 1})
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 0.5, 1e3}, cols[0])
	assert.Equal(t, []float64{1, 2, 3}, cols[1])

	cols, err = Read(strings.NewReader("1\n2"), []int{0})
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 2}, cols[0])

	cols, err = Parse([]byte("# only a comment\n"), []int{0})
	require.NoError(t, err)
	assert.Empty(t, cols[0])
}

func TestParseErrors(t *testing.T) {
	tests := []string{
		"1 2\n3\n",
		"x\n",
	}
	for i := range tests {
		if _, err := Parse([]byte(tests[i]), []int{1}); err == nil {
			t.Errorf("%d) Expected error parsing %q.", i, tests[i])
		}
	}
}
