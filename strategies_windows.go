package reloc

import "gopkg.in/hlandau/reloc.v1/exepath"

func platformStrategies() []Strategy {
	return []Strategy{
		ModuleFileName{},
		Argv0{Invocation: exepath.Startup},
	}
}
