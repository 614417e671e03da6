/*package version tracks the semantic version of flrw and checks config files
against it.*/
package version

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// SourceVersion is the semantic version number of the source code.
const SourceVersion = "0.1.0"

var errFormat = errors.New("version string does not take the form of " +
	"three period-separated non-negative numbers")

// Parse parses a semantic version number string and returns an error if
// the string is invalid.
func Parse(s string) (major, minor, patch int, err error) {
	toks := strings.Split(strings.TrimSpace(s), ".")
	if len(toks) != 3 {
		return -1, -1, -1, errFormat
	}

	out := [3]int{}
	for i := range toks {
		out[i], err = strconv.Atoi(toks[i])
		if err != nil || out[i] < 0 {
			return -1, -1, -1, errFormat
		}
	}

	return out[0], out[1], out[2], nil
}

// Later returns true if s1 represents a later version of the source than
// s2. An error is returned if either is invalid.
func Later(s1, s2 string) (bool, error) {
	major1, minor1, patch1, err := Parse(s1)
	if err != nil {
		return false, err
	}
	major2, minor2, patch2, err := Parse(s2)
	if err != nil {
		return false, err
	}

	switch {
	case major1 != major2:
		return major1 > major2, nil
	case minor1 != minor2:
		return minor1 > minor2, nil
	default:
		return patch1 > patch2, nil
	}
}

// Check returns an error if a config file written for version s cannot be
// read by this source. Configs match when the major and minor numbers agree
// and the config is not from a later patch.
func Check(s string) error {
	major, minor, _, err := Parse(s)
	if err != nil {
		return fmt.Errorf("couldn't parse the 'Version' variable: %w", err)
	}
	smajor, sminor, _, _ := Parse(SourceVersion)
	later, _ := Later(s, SourceVersion)
	if major != smajor || minor != sminor || later {
		return fmt.Errorf("the 'Version' variable is set to %s, but the "+
			"version of the source is %s", s, SourceVersion)
	}
	return nil
}
