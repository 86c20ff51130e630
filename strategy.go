package reloc

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/hlandau/reloc.v1/exepath"
)

// A Strategy is one technique for finding the file of the running executable.
//
// Locate returns the path to the executable file, which need not be absolute
// or canonical; the Resolver takes care of that. It returns an error wrapping
// ErrUnavailable if the technique is not supported by the host.
type Strategy interface {
	Name() string
	Locate() (string, error)
}

// Returned (wrapped) by a Strategy whose mechanism the host does not provide.
var ErrUnavailable = errors.New("strategy not available on this host")

type funcStrategy struct {
	name string
	fn   func() (string, error)
}

func (s funcStrategy) Name() string            { return s.name }
func (s funcStrategy) Locate() (string, error) { return s.fn() }

// StrategyFunc makes a Strategy out of an ordinary function.
func StrategyFunc(name string, fn func() (string, error)) Strategy {
	return funcStrategy{name: name, fn: fn}
}

// RuntimeExecutable asks the Go runtime for the path of the main executable.
// The runtime in turn uses the OS loader (_NSGetExecutablePath on macOS, the
// kern.proc.pathname sysctl on FreeBSD, and so on).
type RuntimeExecutable struct{}

func (RuntimeExecutable) Name() string { return "runtime" }

func (RuntimeExecutable) Locate() (string, error) {
	p, err := os.Executable()
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	return p, nil
}

// Argv0 interprets the name the program was invoked as.
//
// If argv[0] contains a path separator it is resolved against the working
// directory at start time. Otherwise each PATH directory is searched, in
// order, for an executable file of that name and the first match wins.
type Argv0 struct {
	Invocation exepath.Invocation
}

func (Argv0) Name() string { return "argv0" }

func (s Argv0) Locate() (string, error) {
	inv := s.Invocation
	if inv.Arg0 == "" {
		return "", fmt.Errorf("%w: argv[0] is empty", ErrUnavailable)
	}

	if inv.HasSeparator() {
		p := inv.Abs()
		if p == "" {
			return "", fmt.Errorf("relative argv[0] %q and unknown start directory", inv.Arg0)
		}

		if c := executableCandidate(p); c != "" {
			return c, nil
		}

		return "", fmt.Errorf("argv[0] %q does not name an executable file", inv.Arg0)
	}

	dirs := inv.SearchDirs()
	if len(dirs) == 0 {
		return "", fmt.Errorf("%w: bare argv[0] %q and empty PATH", ErrUnavailable, inv.Arg0)
	}

	for _, dir := range dirs {
		if c := executableCandidate(filepath.Join(dir, inv.Arg0)); c != "" {
			return c, nil
		}
	}

	return "", fmt.Errorf("%q not found in PATH", inv.Arg0)
}

// © 2015 Hugo Landau <hlandau@devever.net>  ISC License
