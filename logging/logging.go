/*package logging contains the structured logger used by flrw and the global
run mode which decides how verbose it is.*/
package logging

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/rs/zerolog"
)

type Flag int

const (
	Nil Flag = iota
	Performance
	Debug
)

// This is handled this way so that the run mode doesn't need to be passed
// to every function in the project.
var (
	Mode Flag = Nil
)

// ParseFlag converts the name of a run mode into a Flag.
func ParseFlag(s string) (Flag, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "nil":
		return Nil, nil
	case "performance":
		return Performance, nil
	case "debug":
		return Debug, nil
	}
	return Nil, fmt.Errorf("unrecognized log mode '%s' (expected nil, "+
		"performance, or debug)", s)
}

func (f Flag) String() string {
	switch f {
	case Nil:
		return "nil"
	case Performance:
		return "performance"
	case Debug:
		return "debug"
	}
	return fmt.Sprintf("Flag(%d)", int(f))
}

// Level is the zerolog level that corresponds to a run mode.
func (f Flag) Level() zerolog.Level {
	switch f {
	case Performance:
		return zerolog.InfoLevel
	case Debug:
		return zerolog.DebugLevel
	}
	return zerolog.WarnLevel
}

// MemString returns a string containing various statistics on the current
// memory usage of the process.
func MemString() string {
	ms := runtime.MemStats{}
	runtime.ReadMemStats(&ms)
	return fmt.Sprintf(
		"Alloc - %d MB; Sys - %d MB Integrated - %d MB",
		ms.Alloc>>20, ms.Sys>>20, ms.TotalAlloc>>20,
	)
}
