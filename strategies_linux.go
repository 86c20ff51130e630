package reloc

import "gopkg.in/hlandau/reloc.v1/exepath"

// Also used on Android, which implies the linux build tag.
func platformStrategies() []Strategy {
	return []Strategy{
		ProcLink{Path: "/proc/self/exe"},
		ProcMaps{Mount: "/proc"},
		Argv0{Invocation: exepath.Startup},
	}
}
