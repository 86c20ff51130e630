//go:build !linux && !netbsd && !dragonfly && !solaris && !windows

package reloc

import "gopkg.in/hlandau/reloc.v1/exepath"

// macOS, FreeBSD, OpenBSD and the rest have no procfs link worth reading; the
// runtime already knows the loader call for each of them.
func platformStrategies() []Strategy {
	return []Strategy{
		RuntimeExecutable{},
		Argv0{Invocation: exepath.Startup},
	}
}
