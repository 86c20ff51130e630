package reloc

import "gopkg.in/hlandau/reloc.v1/exepath"

// Also used on illumos, which implies the solaris build tag.
func platformStrategies() []Strategy {
	return []Strategy{
		ProcLink{Path: "/proc/self/path/a.out"},
		RuntimeExecutable{},
		Argv0{Invocation: exepath.Startup},
	}
}
