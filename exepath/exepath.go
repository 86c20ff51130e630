// Package exepath records how the current process was invoked.
//
// The invocation is captured at init()-time, before the program has had a
// chance to change its working directory (daemons typically chdir("/") very
// early), so that a relative argv[0] can still be interpreted later on.
package exepath

import (
	"os"
	"path/filepath"
	"strings"
)

// An Invocation describes the inputs available for locating an executable from
// its command line: the name it was invoked as, the working directory at that
// time and the PATH search list.
type Invocation struct {
	Arg0 string // argv[0], verbatim
	Dir  string // Working directory at start time. May be empty if it could not be determined.
	Path string // Value of the PATH environment variable at start time.
}

// The invocation of the current process. This is set at init()-time.
var Startup Invocation

// Absolute path to EXE which was invoked, if argv[0] named it by path. This is
// set at init()-time and is empty if argv[0] was a bare name.
var Abs string

// Capture returns the invocation of the current process as it is right now.
func Capture() Invocation {
	inv := Invocation{
		Path: os.Getenv("PATH"),
	}

	if len(os.Args) > 0 {
		inv.Arg0 = os.Args[0]
	}

	wd, err := os.Getwd()
	if err == nil {
		inv.Dir = wd
	}

	return inv
}

// HasSeparator reports whether Arg0 names a path rather than a bare command
// name which must be looked up in PATH.
func (inv Invocation) HasSeparator() bool {
	return strings.ContainsRune(inv.Arg0, '/') || strings.ContainsRune(inv.Arg0, filepath.Separator)
}

// Abs returns Arg0 made absolute against Dir. It returns "" if Arg0 is a bare
// name, or if it is relative and Dir is unknown.
func (inv Invocation) Abs() string {
	if inv.Arg0 == "" || !inv.HasSeparator() {
		return ""
	}

	if filepath.IsAbs(inv.Arg0) {
		return filepath.Clean(inv.Arg0)
	}

	if inv.Dir == "" {
		return ""
	}

	return filepath.Join(inv.Dir, inv.Arg0)
}

// SearchDirs returns the PATH entries in order. Relative entries, including
// the empty entry which POSIX treats as the current directory, are made
// absolute against Dir; they are dropped if Dir is unknown.
func (inv Invocation) SearchDirs() []string {
	if inv.Path == "" {
		return nil
	}

	var dirs []string
	for _, d := range filepath.SplitList(inv.Path) {
		if d == "" {
			d = "."
		}

		if !filepath.IsAbs(d) {
			if inv.Dir == "" {
				continue
			}
			d = filepath.Join(inv.Dir, d)
		}

		dirs = append(dirs, filepath.Clean(d))
	}

	return dirs
}

func init() {
	Startup = Capture()
	Abs = Startup.Abs()
}
