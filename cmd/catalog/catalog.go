/*package catalog reads whitespace-separated numeric columns, like the
redshift lists flrw takes on stdin, and formats result columns as aligned
text.*/
package catalog

import (
	"bytes"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// CommentString returns the header line describing the given columns.
func CommentString(names []string) string {
	tokens := []string{"# Column contents:"}
	for i := range names {
		tokens = append(tokens, fmt.Sprintf("%s(%d)", names[i], i))
	}
	return strings.Join(tokens, " ")
}

// FormatCols formats columns of equal height into lines of aligned text.
func FormatCols(cols [][]float64) []string {
	if len(cols) == 0 || len(cols[0]) == 0 {
		return []string{}
	}

	height := len(cols[0])
	formatted := make([][]string, len(cols))
	for i := range cols {
		if len(cols[i]) != height {
			panic("Columns of unequal height.")
		}
		formatted[i] = formatFloatCol(cols[i])
	}

	lines := make([]string, height)
	tokens := make([]string, len(cols))
	for i := 0; i < height; i++ {
		for j := range formatted {
			tokens[j] = formatted[j][i]
		}
		lines[i] = strings.Join(tokens, " ")
	}

	return lines
}

func formatFloatCol(col []float64) []string {
	width := 0
	out := make([]string, len(col))
	for i := range col {
		out[i] = strconv.FormatFloat(col[i], 'g', 8, 64)
		if len(out[i]) > width {
			width = len(out[i])
		}
	}
	for i := range out {
		out[i] = fmt.Sprintf("%*s", width, out[i])
	}
	return out
}

// Parse parses the specified columns in a block of text. Everything after a
// '#' on a line is ignored, as are blank lines.
func Parse(data []byte, colIdxs []int) ([][]float64, error) {
	lines, nComm := split(data, '\n', '#')
	lines = uncomment(lines, '#', nComm)
	lines = trim(lines)
	return parse(lines, colIdxs)
}

// Read parses the specified columns of everything in r.
func Read(r io.Reader, colIdxs []int) ([][]float64, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return Parse(data, colIdxs)
}

// split splits a byte slice at each separator without copying. The number
// of comment characters is counted on the same pass.
func split(data []byte, sep, comm byte) (lines [][]byte, nComm int) {
	n := 0
	for _, c := range data {
		if c == sep {
			n++
		}
		if c == comm {
			nComm++
		}
	}

	tokens := make([][]byte, n+1)
	for j := 0; j < n; j++ {
		idx := bytes.IndexByte(data, sep)
		tokens[j] = data[:idx]
		data = data[idx+1:]
	}
	tokens[n] = data

	return tokens, nComm
}

// uncomment removes comments in the form of "data # comment". Optimized
// for the common case where comments are rare and at the start of the text.
func uncomment(lines [][]byte, comm byte, nComm int) [][]byte {
	if nComm == 0 {
		return lines
	}

	for i, line := range lines {
		commentStart := bytes.IndexByte(line, comm)
		if commentStart == -1 {
			continue
		}
		lines[i] = line[:commentStart]

		nComm -= bytes.Count(line[commentStart:], []byte{comm})
		if nComm == 0 {
			return lines
		}
	}

	return lines
}

// trim removes blank lines.
func trim(lines [][]byte) [][]byte {
	j := 0
	for _, line := range lines {
		if len(bytes.TrimSpace(line)) > 0 {
			lines[j] = line
			j++
		}
	}
	return lines[:j]
}

func parse(lines [][]byte, colIdxs []int) ([][]float64, error) {
	cols := make([][]float64, len(colIdxs))
	for i := range cols {
		cols[i] = make([]float64, len(lines))
	}

	var err error
	for i, line := range lines {
		words := bytes.Fields(line)
		for j, idx := range colIdxs {
			if idx < 0 || idx >= len(words) {
				return nil, fmt.Errorf("data line %d has %d columns, so "+
					"column %d can't be read", i+1, len(words), idx)
			}
			cols[j][i], err = strconv.ParseFloat(string(words[idx]), 64)
			if err != nil {
				return nil, fmt.Errorf("data line %d, column %d: %w",
					i+1, idx, err)
			}
		}
	}

	return cols, nil
}
