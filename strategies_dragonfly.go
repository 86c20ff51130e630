package reloc

import "gopkg.in/hlandau/reloc.v1/exepath"

func platformStrategies() []Strategy {
	return []Strategy{
		ProcLink{Path: "/proc/curproc/file"},
		RuntimeExecutable{},
		Argv0{Invocation: exepath.Startup},
	}
}
